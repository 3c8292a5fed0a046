package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pennywise-app/pennywise/internal/cli"
	"github.com/pennywise-app/pennywise/internal/model"
)

func addCmd() *cobra.Command {
	var (
		amount     float64
		dateStr    string
		income     bool
		sourceName string
	)

	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Record a transaction",
		Long: `Record an income or expense transaction.

Expenses are categorized automatically. Income is filed under the Income
category with the source you name (or "Other" when you don't).

Examples:
  # Record an expense; the category is suggested for you
  pennywise add "Whole Foods groceries" --amount 54.20

  # Record income from a named source
  pennywise add "August paycheck" --amount 4200 --income --source Salary

  # Backdate a transaction
  pennywise add "Car insurance" --amount 120 --date 2026-08-01`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			date, err := parseDate(dateStr)
			if err != nil {
				return err
			}

			eng, cleanup, err := newEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			draft := model.Draft{
				Date:        date,
				Description: strings.Join(args, " "),
				Amount:      amount,
				Type:        model.TypeExpense,
			}
			if income {
				draft.Type = model.TypeIncome
				if sourceName != "" {
					sources, err := eng.GetIncomeSources(ctx)
					if err != nil {
						return fmt.Errorf("failed to load income sources: %w", err)
					}
					source, ok := findSourceByName(sources, sourceName)
					if !ok {
						return fmt.Errorf("no income source named %q; run 'pennywise sources list'", sourceName)
					}
					draft.SourceID = source.ID
				}
			} else if sourceName != "" {
				return fmt.Errorf("--source only applies to income; did you mean --income?")
			}

			txn, err := eng.CreateTransaction(ctx, draft)
			if err != nil {
				return err
			}

			switch txn.Type {
			case model.TypeIncome:
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded income %s from %s",
					cli.AmountIncomeStyle.Render(fmt.Sprintf("$%.2f", txn.Amount)),
					txn.Source.Name)))
			case model.TypeExpense:
				line := fmt.Sprintf("Recorded expense %s in %s",
					cli.AmountExpenseStyle.Render(fmt.Sprintf("$%.2f", txn.Amount)),
					cli.BoldStyle.Render(txn.Category.Name))
				if txn.AIConfidence != nil {
					line += cli.SubtleStyle.Render(fmt.Sprintf(" (%s %.0f%% confident)", cli.RobotIcon, *txn.AIConfidence*100))
				}
				fmt.Println(cli.FormatSuccess(line))
				fmt.Println(cli.SubtleStyle.Render(
					fmt.Sprintf("  Wrong category? Fix it with: pennywise transactions edit %s --category <name>", txn.ID)))
			}

			return nil
		},
	}

	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "Transaction amount (required)")
	cmd.Flags().StringVarP(&dateStr, "date", "d", "", "Transaction date (default: today)")
	cmd.Flags().BoolVar(&income, "income", false, "Record income instead of an expense")
	cmd.Flags().StringVar(&sourceName, "source", "", "Income source name (income only)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
