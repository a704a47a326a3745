package main

import (
	"github.com/spf13/cobra"
)

func newExtractCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "extract <file|->",
		Short: "Write a table as JSON, CSV, Markdown or XLSX",
		Example: `  spangrid extract report.html --table "#scores" -f csv
  curl -s https://example.com/prices | spangrid extract - -o prices.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.extractor(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			t, err := e.Model(cmd.Context())
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), t)
		},
	}
}
