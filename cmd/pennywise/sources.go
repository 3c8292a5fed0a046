package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pennywise-app/pennywise/internal/cli"
	"github.com/pennywise-app/pennywise/internal/engine"
	"github.com/pennywise-app/pennywise/internal/model"
)

func sourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "Manage income sources",
		Long:  `List, add, edit, and delete the sources income is attributed to.`,
	}

	cmd.AddCommand(listSourcesCmd())
	cmd.AddCommand(addSourceCmd())
	cmd.AddCommand(editSourceCmd())
	cmd.AddCommand(deleteSourceCmd())

	return cmd
}

func listSourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all income sources",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			sources, err := store.GetIncomeSources(ctx)
			if err != nil {
				return fmt.Errorf("failed to get income sources: %w", err)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\n",
				cli.TableHeaderStyle.Render("ID"),
				cli.TableHeaderStyle.Render("Name"))

			for _, src := range sources {
				name := src.Name
				if src.IsDefault {
					name += cli.SubtleStyle.Render(" (built-in)")
				}
				fmt.Fprintf(w, "%s\t%s\n", cli.SubtleStyle.Render(src.ID), name)
			}

			return nil
		},
	}
}

func addSourceCmd() *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new income source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := newEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			source, err := eng.CreateIncomeSource(ctx, args[0], color)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created income source %q (%s)", source.Name, source.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "Display color (hex)")

	return cmd
}

func editSourceCmd() *cobra.Command {
	var (
		newName string
		color   string
	)

	cmd := &cobra.Command{
		Use:   "edit <name>",
		Short: "Rename or recolor an income source",
		Args:  cobra.ExactArgs(1),
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

			source, err := resolveSourceArg(ctx, eng, args[0])
			if err != nil {
				return err
			}

			if newName != "" {
				source.Name = newName
			}
			if color != "" {
				source.Color = color
			}

			if err := eng.UpdateIncomeSource(ctx, *source); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated income source %q", source.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&newName, "name", "", "New source name")
	cmd.Flags().StringVar(&color, "color", "", "New display color")

	return cmd
}

func deleteSourceCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete an income source",
		Long: `Delete an income source.

Income attributed to the deleted source moves to the built-in Other source,
which cannot be deleted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := newEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			source, err := resolveSourceArg(ctx, eng, args[0])
			if err != nil {
				return err
			}

			if !force {
				fmt.Printf("Delete income source %q? Its income moves to Other. (y/N): ", source.Name)
				var response string
				fmt.Scanln(&response)
				if !strings.EqualFold(response, "y") {
					fmt.Println("Deletion cancelled.")
					return nil
				}
			}

			if err := eng.DeleteIncomeSource(ctx, source.ID); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted income source %q", source.Name)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}

// resolveSourceArg accepts either an income source name or id.
func resolveSourceArg(ctx context.Context, eng *engine.Engine, arg string) (*model.IncomeSource, error) {
	sources, err := eng.GetIncomeSources(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load income sources: %w", err)
	}
	for i := range sources {
		if sources[i].ID == arg {
			return &sources[i], nil
		}
	}
	if source, ok := findSourceByName(sources, arg); ok {
		return source, nil
	}
	return nil, fmt.Errorf("no income source named %q; run 'pennywise sources list'", arg)
}
