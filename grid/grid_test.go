package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrid_Equal(t *testing.T) {
	a := Grid{{"a", "b"}, {"c"}}

	assert.True(t, a.Equal(Grid{{"a", "b"}, {"c"}}))
	assert.False(t, a.Equal(Grid{{"a", "b"}}))
	assert.False(t, a.Equal(Grid{{"a", "b"}, {"d"}}))
	assert.False(t, a.Equal(Grid{{"a"}, {"c"}}))
	assert.True(t, Grid(nil).Equal(Grid{}))
}

func TestGrid_Pad(t *testing.T) {
	g := Grid{{"a", "b", "c"}, {"d"}}

	padded := g.Pad("")
	assert.Equal(t, Grid{{"a", "b", "c"}, {"d", "", ""}}, padded)
	assert.Equal(t, Row{"d"}, g[1], "Pad must not modify the receiver")
	assert.Equal(t, 3, g.Width())
}

func TestGrid_Clone(t *testing.T) {
	g := Grid{{"a"}}
	clone := g.Clone()
	clone[0][0] = "z"

	assert.Equal(t, "a", g[0][0])
	assert.Nil(t, Grid(nil).Clone())
}

func TestGrid_Strings(t *testing.T) {
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, Grid{{"a", "b"}, {"c"}}.Strings())
	assert.Nil(t, Grid(nil).Strings())
}

func TestGrid_Last(t *testing.T) {
	assert.Nil(t, Grid{}.Last())
	assert.Equal(t, Row{"b"}, Grid{{"a"}, {"b"}}.Last())
}

func TestGrid_Cast(t *testing.T) {
	g := Grid{{"Ann", "42", "true", "2024-01-05"}}

	assert.Equal(t, [][]any{{"Ann", float64(42), true, "2024-01-05"}}, g.Cast())
}
