package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/tsawler/spangrid/logger"
)

func newWaitCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wait <file>",
		Short: "Wait until a table stops changing, then write it",
		Long: `Re-read the file until the table's headers and body stay unchanged for the
stability duration, then write the stable table. Fails if that does not
happen before the timeout.`,
		Example: `  spangrid wait live.html --stability 2s --timeout 1m -f md`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "-" {
				return errors.New("wait needs a file: standard input cannot change")
			}
			if err := a.cfg.Wait.Validate(); err != nil {
				return err
			}

			e, err := a.extractor(args[0], nil)
			if err != nil {
				return err
			}

			opts := a.cfg.Wait.StableOptions()
			opts.Source = args[0]
			start := time.Now()

			snap, err := e.WaitForStable(cmd.Context(), opts)
			if err != nil {
				return err
			}
			a.log.Debug("Table stable",
				logger.String("source", args[0]),
				logger.Duration("waited", time.Since(start)),
			)

			t := snap.Table()
			t.Source = args[0]
			return a.write(cmd.OutOrStdout(), t)
		},
	}

	flags := cmd.Flags()
	flags.Duration("stability", time.Second, "how long the table must stay unchanged")
	flags.Duration("interval", 100*time.Millisecond, "pause between reads")
	flags.Duration("timeout", 30*time.Second, "give up after this long")

	_ = a.v.BindPFlag("wait.stability_duration", flags.Lookup("stability"))
	_ = a.v.BindPFlag("wait.check_interval", flags.Lookup("interval"))
	_ = a.v.BindPFlag("wait.timeout", flags.Lookup("timeout"))
	return cmd
}
