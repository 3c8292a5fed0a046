package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/pennywise-app/pennywise/internal/cli"
	"github.com/pennywise-app/pennywise/internal/engine"
	"github.com/pennywise-app/pennywise/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage expense categories",
		Long:  `List, add, edit, and delete the categories expenses are filed under.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(editCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			categories, err := store.GetCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Name"),
				cli.TableHeaderStyle.Render("Color"))

			for _, cat := range categories {
				name := cat.Name
				if cat.IsDefault {
					name += cli.SubtleStyle.Render(" (built-in)")
				}
				swatch := cat.Color
				if cat.Color != "" {
					swatch = lipgloss.NewStyle().Foreground(lipgloss.Color(cat.Color)).Render("■ ") + cat.Color
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", cli.SubtleStyle.Render(cat.ID), name, swatch)
			}

			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := newEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			category, err := eng.CreateCategory(ctx, args[0], color)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created category %q (%s)", category.Name, category.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "Display color (hex, e.g. #FFB86C)")

	return cmd
}

func editCategoryCmd() *cobra.Command {
	var (
		newName string
		color   string
	)

	cmd := &cobra.Command{
		Use:   "edit <name>",
		Short: "Rename or recolor a category",
		Long: `Rename or recolor a category.

Existing transactions keep the category label they were recorded with; only
future assignments use the new name and color.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if newName == "" && color == "" {
				return fmt.Errorf("nothing to change; pass --name or --color")
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

			if newName != "" {
				category.Name = newName
			}
			if color != "" {
				category.Color = color
			}

			if err := eng.UpdateCategory(ctx, *category); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated category %q", category.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&newName, "name", "", "New category name")
	cmd.Flags().StringVar(&color, "color", "", "New display color")

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a category",
		Long: `Delete a category.

Expenses filed under the deleted category move to Other, and its budget is
removed with it. The built-in Other and Income categories cannot be deleted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := newEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			category, err := resolveCategoryArg(ctx, eng, args[0])
			if err != nil {
				return err
			}

			if !force {
				fmt.Printf("Delete category %q? Its expenses move to Other. (y/N): ", category.Name)
				var response string
				fmt.Scanln(&response)
				if !strings.EqualFold(response, "y") {
					fmt.Println("Deletion cancelled.")
					return nil
				}
			}

			if err := eng.DeleteCategory(ctx, category.ID); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted category %q", category.Name)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}

// resolveCategoryArg accepts either a category name or id.
func resolveCategoryArg(ctx context.Context, eng *engine.Engine, arg string) (*model.Category, error) {
	categories, err := eng.GetCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	for i := range categories {
		if categories[i].ID == arg {
			return &categories[i], nil
		}
	}
	if category, ok := findCategoryByName(categories, arg); ok {
		return category, nil
	}
	return nil, fmt.Errorf("no category named %q; run 'pennywise categories list'", arg)
}
