package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pennywise-app/pennywise/internal/cli"
	"github.com/pennywise-app/pennywise/internal/model"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"txns"},
		Short:   "List and edit transactions",
		Long:    `List, edit, and delete recorded transactions.`,
	}

	cmd.AddCommand(listTransactionsCmd())
	cmd.AddCommand(editTransactionCmd())
	cmd.AddCommand(deleteTransactionCmd())

	return cmd
}

func listTransactionsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			transactions, err := store.ListTransactions(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to list transactions: %w", err)
			}

			if len(transactions) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions yet. Record one with 'pennywise add'."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Date"),
				cli.TableHeaderStyle.Render("Description"),
				cli.TableHeaderStyle.Render("Amount"),
				cli.TableHeaderStyle.Render("Category"),
				cli.TableHeaderStyle.Render("Source"))

			for _, txn := range transactions {
				amount := cli.AmountExpenseStyle.Render(fmt.Sprintf("-$%.2f", txn.Amount))
				if txn.Type == model.TypeIncome {
					amount = cli.AmountIncomeStyle.Render(fmt.Sprintf("+$%.2f", txn.Amount))
				}

				category := txn.Category.Name
				if txn.AIConfidence != nil {
					category += cli.SubtleStyle.Render(fmt.Sprintf(" %s%.0f%%", cli.RobotIcon, *txn.AIConfidence*100))
				}

				source := ""
				if txn.Source != nil {
					source = txn.Source.Name
				}

				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					cli.SubtleStyle.Render(txn.ID),
					txn.Date.Format("2006-01-02"),
					txn.Description,
					amount,
					category,
					source)
			}

			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum transactions to show (0 for all)")

	return cmd
}

func editTransactionCmd() *cobra.Command {
	var (
		description  string
		amount       float64
		dateStr      string
		categoryName string
		sourceName   string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a transaction",
		Long: `Edit a transaction's description, amount, date, category, or income source.

Correcting the category of an automatically categorized expense teaches the
categorizer: the correction is remembered and applied to similar future
transactions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if description == "" && amount == 0 && dateStr == "" && categoryName == "" && sourceName == "" {
				return fmt.Errorf("nothing to change; pass --description, --amount, --date, --category, or --source")
			}

			eng, cleanup, err := newEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			txn, err := eng.GetTransaction(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to load transaction: %w", err)
			}
			if txn == nil {
				return fmt.Errorf("transaction %q not found", args[0])
			}

			wasClassified := txn.Type == model.TypeExpense && txn.AIConfidence != nil
			previousCategoryID := txn.Category.ID

			if description != "" {
				txn.Description = description
			}
			if amount != 0 {
				txn.Amount = amount
			}
			if dateStr != "" {
				date, err := parseDate(dateStr)
				if err != nil {
					return err
				}
				txn.Date = date
			}

			if categoryName != "" {
				if txn.Type == model.TypeIncome {
					return fmt.Errorf("income transactions always belong to the Income category")
				}
				categories, err := eng.GetCategories(ctx)
				if err != nil {
					return fmt.Errorf("failed to load categories: %w", err)
				}
				category, ok := findCategoryByName(categories, categoryName)
				if !ok {
					return fmt.Errorf("no category named %q; run 'pennywise categories list'", categoryName)
				}
				txn.Category = *category
			}

			if sourceName != "" {
				if txn.Type != model.TypeIncome {
					return fmt.Errorf("--source only applies to income transactions")
				}
				sources, err := eng.GetIncomeSources(ctx)
				if err != nil {
					return fmt.Errorf("failed to load income sources: %w", err)
				}
				source, ok := findSourceByName(sources, sourceName)
				if !ok {
					return fmt.Errorf("no income source named %q; run 'pennywise sources list'", sourceName)
				}
				txn.Source = source
			}

			updated, err := eng.UpdateTransaction(ctx, *txn)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated transaction %s", updated.ID)))
			if wasClassified && updated.Category.ID != previousCategoryID {
				fmt.Println(cli.SubtleStyle.Render("  Correction noted for future categorization."))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "New amount")
	cmd.Flags().StringVarP(&dateStr, "date", "d", "", "New date")
	cmd.Flags().StringVarP(&categoryName, "category", "c", "", "New category (expenses only)")
	cmd.Flags().StringVar(&sourceName, "source", "", "New income source (income only)")

	return cmd
}

func deleteTransactionCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !force {
				fmt.Printf("Delete transaction %s? (y/N): ", args[0])
				var response string
				fmt.Scanln(&response)
				if !strings.EqualFold(response, "y") {
					fmt.Println("Deletion cancelled.")
					return nil
				}
			}

			eng, cleanup, err := newEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := eng.DeleteTransaction(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted transaction %s", args[0])))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}
