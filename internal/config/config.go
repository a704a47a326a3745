// Package config loads spangrid CLI configuration from an optional YAML file,
// .env files and SPANGRID_* environment variables.
//
// Keys mirror the YAML layout, so extract.table can be set in the file, as
// SPANGRID_EXTRACT_TABLE, or with the --table flag when the command binds it.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/tsawler/spangrid"
	"github.com/tsawler/spangrid/format"
	"github.com/tsawler/spangrid/grid"
	"github.com/tsawler/spangrid/logger"
	"github.com/tsawler/spangrid/markup"
	"github.com/tsawler/spangrid/poll"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SPANGRID"

// Config represents the CLI configuration.
type Config struct {
	Log     logger.Config `mapstructure:"log"`
	Extract ExtractConfig `mapstructure:"extract"`
	Wait    WaitConfig    `mapstructure:"wait"`
}

// ExtractConfig selects the table and shapes its header.
type ExtractConfig struct {
	Table       string `mapstructure:"table"`
	HeaderRows  string `mapstructure:"header_rows"`
	BodyRows    string `mapstructure:"body_rows"`
	HeaderCells string `mapstructure:"header_cells"`
	BodyCells   string `mapstructure:"body_cells"`

	// Content is "rendered" or "raw".
	Content string `mapstructure:"content"`
	// Format is the output format name; empty means detect from Output,
	// falling back to JSON.
	Format string `mapstructure:"format"`
	// Output is the destination file; empty writes to stdout.
	Output string `mapstructure:"output"`

	ReplaceEmpty         bool   `mapstructure:"replace_empty"`
	EmptyPlaceholder     string `mapstructure:"empty_placeholder"`
	SuffixDuplicates     bool   `mapstructure:"suffix_duplicates"`
	DisableColspan       bool   `mapstructure:"disable_colspan"`
	DisableColspanSuffix bool   `mapstructure:"disable_colspan_suffix"`
	LenientSpans         bool   `mapstructure:"lenient_spans"`
	RejectHeaderRowSpan  bool   `mapstructure:"reject_header_rowspan"`
	Concurrency          int    `mapstructure:"concurrency"`
}

// WaitConfig configures the wait command.
type WaitConfig struct {
	StabilityDuration time.Duration `mapstructure:"stability_duration"`
	CheckInterval     time.Duration `mapstructure:"check_interval"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

// setDefaults registers every key so that AutomaticEnv can see it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", logger.DefaultLevel)
	v.SetDefault("log.development", false)
	v.SetDefault("log.output_paths", logger.DefaultOutputPaths)

	v.SetDefault("extract.table", spangrid.DefaultTableSelector)
	v.SetDefault("extract.header_rows", spangrid.DefaultHeaderRowSelector)
	v.SetDefault("extract.body_rows", spangrid.DefaultBodyRowSelector)
	v.SetDefault("extract.header_cells", spangrid.DefaultHeaderCellSelector)
	v.SetDefault("extract.body_cells", spangrid.DefaultBodyCellSelector)
	v.SetDefault("extract.content", markup.Rendered.String())
	v.SetDefault("extract.format", "")
	v.SetDefault("extract.output", "")
	v.SetDefault("extract.replace_empty", false)
	v.SetDefault("extract.empty_placeholder", grid.DefaultEmptyPlaceholder)
	v.SetDefault("extract.suffix_duplicates", false)
	v.SetDefault("extract.disable_colspan", false)
	v.SetDefault("extract.disable_colspan_suffix", false)
	v.SetDefault("extract.lenient_spans", false)
	v.SetDefault("extract.reject_header_rowspan", false)
	v.SetDefault("extract.concurrency", grid.DefaultConcurrency)

	stable := poll.DefaultStableOptions()
	v.SetDefault("wait.stability_duration", stable.StabilityDuration)
	v.SetDefault("wait.check_interval", stable.CheckInterval)
	v.SetDefault("wait.timeout", stable.Timeout)
}

// loadEnvFiles loads .env.local then .env. Missing files are ignored and
// variables already set in the environment are never overwritten.
func loadEnvFiles() error {
	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

// New returns a viper instance with defaults and environment binding in
// place. Callers may bind command-line flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// Load reads configuration into a Config. When path is empty an optional
// spangrid.yaml in the working directory is used; a named file must exist.
func Load(v *viper.Viper, path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("load environment files: %w", err)
	}
	if v == nil {
		v = New()
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("spangrid")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Log.SetDefaults()
	return &cfg, nil
}

// Validate checks the extract settings.
func (c *ExtractConfig) Validate() error {
	if strings.TrimSpace(c.Table) == "" {
		return errors.New("table selector is required")
	}
	if _, err := markup.ParseContentMode(c.Content); err != nil {
		return err
	}
	if _, err := c.OutputFormat(); err != nil {
		return err
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	return nil
}

// OutputFormat resolves the output format: an explicit Format wins, then the
// Output extension, then JSON.
func (c *ExtractConfig) OutputFormat() (format.Format, error) {
	f := format.JSON
	switch {
	case c.Format != "":
		parsed, err := format.Parse(c.Format)
		if err != nil {
			return format.Unknown, err
		}
		f = parsed
	case c.Output != "":
		if detected := format.Detect(c.Output); detected != format.Unknown {
			f = detected
		}
	}
	if !f.Writable() {
		return format.Unknown, fmt.Errorf("cannot write tables as %s", f)
	}
	return f, nil
}

// Apply configures e with the extract settings.
func (c *ExtractConfig) Apply(e *spangrid.Extractor) (*spangrid.Extractor, error) {
	mode, err := markup.ParseContentMode(c.Content)
	if err != nil {
		return nil, err
	}

	e = e.Table(c.Table).
		HeaderRows(c.HeaderRows).
		BodyRows(c.BodyRows).
		HeaderCells(c.HeaderCells).
		BodyCells(c.BodyCells).
		Content(mode).
		Concurrency(c.Concurrency)

	if c.ReplaceEmpty {
		e = e.ReplaceEmptyCells(c.EmptyPlaceholder)
	}
	if c.SuffixDuplicates {
		e = e.SuffixDuplicates()
	}
	if c.DisableColspan {
		e = e.DisableColspan()
	}
	if c.DisableColspanSuffix {
		e = e.DisableColspanSuffix()
	}
	if c.LenientSpans {
		e = e.LenientSpans()
	}
	if c.RejectHeaderRowSpan {
		e = e.RejectHeaderRowSpan()
	}
	return e, nil
}

// StableOptions converts the wait settings for poll.WaitForStable.
func (c *WaitConfig) StableOptions() poll.StableOptions {
	return poll.StableOptions{
		StabilityDuration: c.StabilityDuration,
		CheckInterval:     c.CheckInterval,
		Timeout:           c.Timeout,
	}
}

// Validate checks the wait settings.
func (c *WaitConfig) Validate() error {
	return c.StableOptions().Validate()
}
