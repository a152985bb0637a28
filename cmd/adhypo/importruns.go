package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"adhypo/app"
	apperrors "adhypo/internal/errors"
)

func newImportRunsCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import-runs [logs_dir]",
		Short: "Backfill the run ledger from run logs (defaults to logs_path)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cleanup, err := bootstrap(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			if c.Ledger == nil {
				return apperrors.ConfigInvalid("import-runs needs a ledger: set ledger.dsn or DATABASE_URL")
			}

			dir := c.Config.LogsPath
			if len(args) == 1 {
				dir = args[0]
			}

			stats, err := app.NewLedgerImporter(c.Ledger, c.Logger).Import(cmd.Context(), dir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Import complete: %d imported, %d skipped\n", stats.Imported, stats.Skipped)
			return nil
		},
	}
}
