package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tsawler/spangrid/format"
)

const scoresHTML = `<table id="scores">
	<thead>
		<tr><th rowspan="2">Name</th><th colspan="2">Score</th></tr>
		<tr><th>Math</th><th>Art</th></tr>
	</thead>
	<tbody>
		<tr><td rowspan="2">Ann</td><td>90</td><td>80</td></tr>
		<tr><td>70</td><td>60</td></tr>
	</tbody>
</table>`

// run executes the CLI from an empty directory and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	chdir(t, t.TempDir())

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scores.html")
	require.NoError(t, os.WriteFile(path, []byte(scoresHTML), 0o600))
	return path
}

func TestExtract_JSON(t *testing.T) {
	out, err := run(t, "", "extract", writeFixture(t))
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"Name": "Ann", "Math": 90, "Art": 80},
		{"Name": "Ann", "Math": 70, "Art": 60}
	]`, out)
}

func TestExtract_CSVFromStdin(t *testing.T) {
	out, err := run(t, scoresHTML, "extract", "-", "--format", "csv", "--disable-colspan-suffix")
	require.NoError(t, err)
	assert.Equal(t, "Name,Score,Score\nName,Math,Art\nAnn,90,80\nAnn,70,60\n", out)
}

func TestExtract_RejectsNonHTMLStdin(t *testing.T) {
	for _, stdin := range []string{"", "Name,Math\nAnn,90\n", `{"rows": []}`} {
		_, err := run(t, stdin, "extract", "-")
		assert.ErrorIs(t, err, errNotHTML, stdin)
	}
}

func TestExtract_OutputFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "scores.xlsx")

	out, err := run(t, "", "extract", writeFixture(t), "-o", dest)
	require.NoError(t, err)
	assert.Empty(t, out)

	xls, err := excelize.OpenFile(dest)
	require.NoError(t, err)
	defer xls.Close()

	rows, err := xls.GetRows(format.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestExtract_TableNotFound(t *testing.T) {
	_, err := run(t, "", "extract", writeFixture(t), "--table", "#missing")
	assert.ErrorContains(t, err, "table not found")
}

func TestExtract_InvalidFormat(t *testing.T) {
	_, err := run(t, "", "extract", writeFixture(t), "-f", "pdf")
	assert.Error(t, err)
}

func TestExtract_RequiresSource(t *testing.T) {
	_, err := run(t, "", "extract")
	assert.Error(t, err)
}

func TestWait(t *testing.T) {
	out, err := run(t, "", "wait", writeFixture(t),
		"--stability", "40ms", "--interval", "10ms", "--timeout", "2s", "-f", "md")
	require.NoError(t, err)
	assert.Contains(t, out, "| Ann | 70 | 60 |")
}

func TestWait_InvalidTiming(t *testing.T) {
	_, err := run(t, "", "wait", writeFixture(t), "--stability", "1s", "--interval", "1s")
	assert.ErrorContains(t, err, "check interval")
}

func TestWait_RejectsStdin(t *testing.T) {
	_, err := run(t, scoresHTML, "wait", "-")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "spangrid version dev\n", out)
}

// chdir changes the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
