package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"adhypo/internal/adforensics"
	apperrors "adhypo/internal/errors"
)

func newGenDataCmd() *cobra.Command {
	var (
		out    string
		days   int
		adsets int
		format string
		seed   int64
		start  string
	)

	cmd := &cobra.Command{
		Use:   "gen-data",
		Short: "Write a synthetic campaign dataset with planted low-CTR and low-ROAS campaigns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := time.ParseInLocation("2006-01-02", start, time.UTC)
			if err != nil {
				return apperrors.ConfigInvalid(fmt.Sprintf("invalid --start (expected YYYY-MM-DD): %v", err))
			}

			fmtName := strings.ToLower(strings.TrimSpace(format))
			if fmtName == "" {
				fmtName = "csv"
				if strings.EqualFold(filepath.Ext(out), ".xlsx") {
					fmtName = "xlsx"
				}
			}

			cfg := adforensics.DefaultConfig()
			cfg.Days = days
			cfg.AdsetsPerCampaign = adsets
			cfg.Seed = seed
			cfg.StartDate = startDate

			ds, err := adforensics.Generate(cfg)
			if err != nil {
				return apperrors.ConfigInvalid(err.Error())
			}

			switch fmtName {
			case "csv":
				err = adforensics.WriteCSV(out, ds)
			case "xlsx":
				err = adforensics.WriteXLSX(out, ds)
			default:
				return apperrors.ConfigInvalid("unsupported format: " + fmtName)
			}
			if err != nil {
				return fmt.Errorf("write %s: %w", fmtName, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Dataset written: %s\n", out)
			fmt.Fprintf(cmd.OutOrStdout(), "Columns: %d | Rows: %d\n", len(ds.Headers), len(ds.Rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "data/sample_ads.csv", "output file path")
	cmd.Flags().IntVar(&days, "days", 14, "number of days")
	cmd.Flags().IntVar(&adsets, "adsets", 2, "adsets per campaign")
	cmd.Flags().StringVar(&format, "format", "", "output format: csv or xlsx (default inferred from --out)")
	cmd.Flags().Int64Var(&seed, "seed", 42, "RNG seed (deterministic)")
	cmd.Flags().StringVar(&start, "start", "2025-01-01", "start date (YYYY-MM-DD)")

	return cmd
}
