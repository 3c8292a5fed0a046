package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pennywise-app/pennywise/internal/cli"
	"github.com/pennywise-app/pennywise/internal/config"
	"github.com/pennywise-app/pennywise/internal/model"
	"github.com/pennywise-app/pennywise/internal/report"
	"github.com/pennywise-app/pennywise/internal/sheets"
)

func exportCmd() *cobra.Command {
	var (
		fromStr string
		toStr   string
		month   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a report to Google Sheets",
		Long: `Export the period summary and transaction list to a Google Sheets
spreadsheet.

Requires Google Sheets credentials; run 'pennywise auth sheets' once to set
them up. Period flags work like 'pennywise report'.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			from, to, err := resolvePeriod(fromStr, toStr, month)
			if err != nil {
				return err
			}

			sheetsConfig, err := config.LoadSheetsConfig()
			if err != nil {
				return fmt.Errorf("sheets not configured: %w (run 'pennywise auth sheets')", err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			summary, err := report.NewBuilder(store).Build(ctx, from, to)
			if err != nil {
				return err
			}

			transactions, err := store.ListTransactions(ctx, 0)
			if err != nil {
				return fmt.Errorf("failed to load transactions: %w", err)
			}

			// Keep the sheet consistent with the summary period.
			inPeriod := make([]model.Transaction, 0, len(transactions))
			for _, txn := range transactions {
				if txn.Date.Before(from) {
					continue
				}
				if !to.IsZero() && !txn.Date.Before(to) {
					continue
				}
				inPeriod = append(inPeriod, txn)
			}

			writer, err := sheets.NewWriter(ctx, *sheetsConfig, slog.Default())
			if err != nil {
				return err
			}

			if err := writer.Write(ctx, inPeriod, summary); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d transactions to Google Sheets.", len(inPeriod))))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "Period start (inclusive, YYYY-MM-DD)")
	cmd.Flags().StringVar(&toStr, "to", "", "Period end (exclusive, YYYY-MM-DD)")
	cmd.Flags().StringVar(&month, "month", "", "Shorthand for one calendar month (YYYY-MM)")

	return cmd
}
