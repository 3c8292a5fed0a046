package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pennywise-app/pennywise/internal/cli"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage monthly category budgets",
		Long:  `Set, clear, and review monthly spending caps per category.`,
	}

	cmd.AddCommand(setBudgetCmd())
	cmd.AddCommand(listBudgetsCmd())

	return cmd
}

func setBudgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <category> <amount>",
		Short: "Set a category's monthly budget",
		Long: `Set the monthly budget for a category. Setting it again replaces the old
amount; a zero or negative amount clears the budget.

Examples:
  pennywise budget set Groceries 400
  pennywise budget set Groceries 0   # clear it`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}

			eng, cleanup, err := newEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			category, err := resolveCategoryArg(ctx, eng, args[0])
			if err != nil {
				return err
			}

			if err := eng.SetBudget(ctx, category.ID, amount); err != nil {
				return err
			}

			if amount <= 0 {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Cleared budget for %q", category.Name)))
			} else {
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Budget for %q set to $%.2f/month", category.Name, amount)))
			}
			return nil
		},
	}

	return cmd
}

func listBudgetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all budgets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			budgets, err := store.GetBudgets(ctx)
			if err != nil {
				return fmt.Errorf("failed to get budgets: %w", err)
			}

			if len(budgets) == 0 {
				fmt.Println(cli.InfoStyle.Render("No budgets set. Use 'pennywise budget set <category> <amount>'."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\n",
				cli.TableHeaderStyle.Render("Category"),
				cli.TableHeaderStyle.Render("Monthly Budget"))

			for _, budget := range budgets {
				name := budget.CategoryID
				if cat, catErr := store.GetCategoryByID(ctx, budget.CategoryID); catErr == nil && cat != nil {
					name = cat.Name
				}
				fmt.Fprintf(w, "%s\t$%.2f\n", name, budget.Amount)
			}

			return nil
		},
	}
}
