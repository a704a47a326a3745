package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tsawler/spangrid"
	"github.com/tsawler/spangrid/format"
	"github.com/tsawler/spangrid/internal/config"
	"github.com/tsawler/spangrid/logger"
	"github.com/tsawler/spangrid/model"
)

var errNotHTML = errors.New("stdin does not look like HTML")

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// app holds state shared by the subcommands.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	log     logger.Logger
}

// newRootCommand builds the command tree.
func newRootCommand() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:           "spangrid",
		Short:         "Materialize spanned HTML tables",
		Long:          `Read an HTML table whose cells span rows or columns and write it as a rectangular grid.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is ./spangrid.yaml)")
	flags.Bool("debug", false, "enable debug logging")
	flags.String("table", spangrid.DefaultTableSelector, "selector locating the table")
	flags.String("header-rows", spangrid.DefaultHeaderRowSelector, "selector for header rows within the table")
	flags.String("body-rows", spangrid.DefaultBodyRowSelector, "selector for body rows within the table")
	flags.String("header-cells", spangrid.DefaultHeaderCellSelector, "selector for cells within a header row")
	flags.String("body-cells", spangrid.DefaultBodyCellSelector, "selector for cells within a body row")
	flags.String("content", "rendered", "cell text mode: rendered or raw")
	flags.StringP("format", "f", "", "output format: json, csv, md or xlsx (default from --output, else json)")
	flags.StringP("output", "o", "", "output file (default stdout)")
	flags.Bool("replace-empty", false, "replace empty header cells with --empty-placeholder")
	flags.String("empty-placeholder", "{{Empty}}", "placeholder for empty header cells")
	flags.Bool("suffix-duplicates", false, "suffix repeated header names with __D<n>")
	flags.Bool("disable-colspan", false, "keep only the first column of a header colspan")
	flags.Bool("disable-colspan-suffix", false, "repeat plain header text across a colspan")
	flags.Bool("lenient-spans", false, "treat invalid rowspan/colspan values as 1")
	flags.Bool("reject-header-rowspan", false, "fail when a header cell spans rows")
	flags.Int("concurrency", 0, "concurrent cell reads per body row (0 uses the default)")

	root.AddCommand(newExtractCommand(a))
	root.AddCommand(newWaitCommand(a))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "spangrid version %s\n", version)
		},
	})

	a.bindFlags(root)
	return root
}

// bindFlags maps persistent flags onto config keys. Flags only override
// file and environment values when set explicitly.
func (a *app) bindFlags(root *cobra.Command) {
	keys := map[string]string{
		"debug":                  "debug",
		"table":                  "extract.table",
		"header-rows":            "extract.header_rows",
		"body-rows":              "extract.body_rows",
		"header-cells":           "extract.header_cells",
		"body-cells":             "extract.body_cells",
		"content":                "extract.content",
		"format":                 "extract.format",
		"output":                 "extract.output",
		"replace-empty":          "extract.replace_empty",
		"empty-placeholder":      "extract.empty_placeholder",
		"suffix-duplicates":      "extract.suffix_duplicates",
		"disable-colspan":        "extract.disable_colspan",
		"disable-colspan-suffix": "extract.disable_colspan_suffix",
		"lenient-spans":          "extract.lenient_spans",
		"reject-header-rowspan":  "extract.reject_header_rowspan",
		"concurrency":            "extract.concurrency",
	}
	for name, key := range keys {
		_ = a.v.BindPFlag(key, root.PersistentFlags().Lookup(name))
	}
}

// setup loads configuration and builds the logger.
func (a *app) setup() error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to initialize configuration: %w", err)
	}
	if a.v.GetBool("debug") {
		cfg.Log.Level = "debug"
	}
	a.cfg = cfg

	log, err := logger.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	a.log = log
	return nil
}

// extractor returns an Extractor for source, configured from a.cfg. A source
// of "-" reads standard input.
func (a *app) extractor(source string, stdin io.Reader) (*spangrid.Extractor, error) {
	if err := a.cfg.Extract.Validate(); err != nil {
		return nil, err
	}

	var e *spangrid.Extractor
	if source == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		if format.DetectFromMagic(data) != format.HTML {
			return nil, errNotHTML
		}
		e = spangrid.FromReader(bytes.NewReader(data))
	} else {
		e = spangrid.Open(source)
	}
	return a.cfg.Extract.Apply(e.WithLogger(a.log))
}

// write renders t to the configured output.
func (a *app) write(out io.Writer, t *model.Table) error {
	f, err := a.cfg.Extract.OutputFormat()
	if err != nil {
		return err
	}
	if a.cfg.Extract.Output == "" {
		return format.Write(out, f, t)
	}

	file, err := os.Create(a.cfg.Extract.Output)
	if err != nil {
		return err
	}
	if err := format.Write(file, f, t); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return err
	}

	a.log.Info("Wrote table",
		logger.String("output", a.cfg.Extract.Output),
		logger.String("format", f.String()),
		logger.Int("rows", t.RowCount()),
	)
	return nil
}
