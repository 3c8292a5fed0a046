package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pennywise-app/pennywise/internal/cli"
	"github.com/pennywise-app/pennywise/internal/report"
)

func reportCmd() *cobra.Command {
	var (
		fromStr string
		toStr   string
		month   string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize income, spending, and budgets",
		Long: `Summarize income, spending by category, and budget status for a period.

Examples:
  # Current month (the default)
  pennywise report

  # A specific month
  pennywise report --month 2026-07

  # An arbitrary range
  pennywise report --from 2026-01-01 --to 2026-07-01`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			from, to, err := resolvePeriod(fromStr, toStr, month)
			if err != nil {
				return err
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

			printSummary(summary)
			return nil
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "Period start (inclusive, YYYY-MM-DD)")
	cmd.Flags().StringVar(&toStr, "to", "", "Period end (exclusive, YYYY-MM-DD)")
	cmd.Flags().StringVar(&month, "month", "", "Shorthand for one calendar month (YYYY-MM)")

	return cmd
}

// resolvePeriod turns flags into a [from, to) range, defaulting to the
// current calendar month.
func resolvePeriod(fromStr, toStr, month string) (time.Time, time.Time, error) {
	if month != "" {
		if fromStr != "" || toStr != "" {
			return time.Time{}, time.Time{}, fmt.Errorf("--month cannot be combined with --from/--to")
		}
		start, err := time.Parse("2006-01", month)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("unrecognized month %q (try YYYY-MM)", month)
		}
		return start, start.AddDate(0, 1, 0), nil
	}

	if fromStr == "" && toStr == "" {
		now := time.Now()
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0), nil
	}

	from, err := parseDate(fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseDate(toStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return from, to, nil
}

func printSummary(summary *report.Summary) {
	period := summary.From.Format("Jan 2, 2006")
	if summary.To.IsZero() {
		period += " onward"
	} else {
		period += " to " + summary.To.Format("Jan 2, 2006")
	}

	fmt.Println(cli.FormatTitle("Report: " + period))

	fmt.Printf("  Income    %s\n", cli.AmountIncomeStyle.Render("$"+summary.Income.StringFixed(2)))
	fmt.Printf("  Expenses  %s\n", cli.AmountExpenseStyle.Render("$"+summary.Expenses.StringFixed(2)))
	net := cli.AmountIncomeStyle
	if summary.Net.IsNegative() {
		net = cli.AmountExpenseStyle
	}
	fmt.Printf("  Net       %s\n", net.Render("$"+summary.Net.StringFixed(2)))

	if len(summary.ByCategory) > 0 {
		fmt.Println()
		fmt.Println(cli.SubtitleStyle.Render(cli.ChartIcon + " Spending by category"))

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, cat := range summary.ByCategory {
			fmt.Fprintf(w, "  %s\t$%s\t%s\n",
				cat.CategoryName,
				cat.Total.StringFixed(2),
				cli.SubtleStyle.Render(fmt.Sprintf("%d txns", cat.Count)))
		}
		w.Flush()
	}

	if len(summary.Budgets) > 0 {
		fmt.Println()
		fmt.Println(cli.SubtitleStyle.Render("Budgets"))

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, budget := range summary.Budgets {
			status := cli.SuccessStyle.Render(fmt.Sprintf("$%s left", budget.Remaining.StringFixed(2)))
			if budget.OverBudget {
				status = cli.ErrorStyle.Render(fmt.Sprintf("$%s over", budget.Remaining.Neg().StringFixed(2)))
			}
			fmt.Fprintf(w, "  %s\t$%s of $%s\t%s\n",
				budget.CategoryName,
				budget.Spent.StringFixed(2),
				budget.Budget.StringFixed(2),
				status)
		}
		w.Flush()
	}
}
