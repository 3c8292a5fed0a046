package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pennywise-app/pennywise/internal/cli"
	"github.com/pennywise-app/pennywise/internal/model"
)

func goalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Manage savings goals",
		Long:  `Create savings goals, contribute toward them, and track progress.`,
	}

	cmd.AddCommand(listGoalsCmd())
	cmd.AddCommand(addGoalCmd())
	cmd.AddCommand(contributeGoalCmd())
	cmd.AddCommand(deleteGoalCmd())

	return cmd
}

func listGoalsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List savings goals with progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			goals, err := store.GetGoals(ctx)
			if err != nil {
				return fmt.Errorf("failed to get goals: %w", err)
			}

			if len(goals) == 0 {
				fmt.Println(cli.InfoStyle.Render("No savings goals. Use 'pennywise goals add' to create one."))
				return nil
			}

			fmt.Println(cli.FormatTitle("Savings Goals"))
			for _, goal := range goals {
				fmt.Println(renderGoal(goal))
			}

			return nil
		},
	}
}

// renderGoal formats one goal with a progress bar.
func renderGoal(goal model.Goal) string {
	progress := 0.0
	if goal.TargetAmount > 0 {
		progress = goal.CurrentAmount / goal.TargetAmount
	}

	const width = 30
	filled := int(progress * width)
	if filled > width {
		filled = width
	}
	bar := cli.SuccessStyle.Render(strings.Repeat("█", filled)) +
		cli.SubtleStyle.Render(strings.Repeat("░", width-filled))

	line := fmt.Sprintf("%s %s\n  %s %.0f%%  $%.2f of $%.2f",
		cli.GoalIcon, cli.BoldStyle.Render(goal.Name),
		bar, progress*100, goal.CurrentAmount, goal.TargetAmount)

	if !goal.Deadline.IsZero() {
		deadline := goal.Deadline.Format("Jan 2, 2006")
		if goal.Deadline.Before(time.Now()) && goal.CurrentAmount < goal.TargetAmount {
			deadline = cli.ErrorStyle.Render(deadline + " (past due)")
		}
		line += cli.SubtleStyle.Render("  by " + deadline)
	}
	line += cli.SubtleStyle.Render("  " + goal.ID)

	return line
}

func addGoalCmd() *cobra.Command {
	var (
		target      float64
		deadlineStr string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a savings goal",
		Long: `Create a savings goal with a target amount and an optional deadline.

Example:
  pennywise goals add "Emergency fund" --target 5000 --deadline 2027-01-01`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			deadline, err := parseDate(deadlineStr)
			if err != nil {
				return err
			}

			eng, cleanup, err := newEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			goal, err := eng.CreateGoal(ctx, strings.Join(args, " "), target, deadline)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created goal %q targeting $%.2f (%s)",
				goal.Name, goal.TargetAmount, goal.ID)))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&target, "target", "t", 0, "Target amount (required)")
	cmd.Flags().StringVarP(&deadlineStr, "deadline", "d", "", "Deadline (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func contributeGoalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contribute <id> <amount>",
		Short: "Contribute toward a goal",
		Long:  `Add money toward a savings goal. Contributions past the target are capped at it.`,
		Args:  cobra.ExactArgs(2),
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

			goal, err := eng.ContributeToGoal(ctx, args[0], amount)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Contributed $%.2f to %q", amount, goal.Name)))
			fmt.Println(renderGoal(*goal))
			if goal.CurrentAmount >= goal.TargetAmount {
				fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("%s Goal reached!", cli.GoalIcon)))
			}
			return nil
		},
	}
}

func deleteGoalCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a savings goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if !force {
				fmt.Printf("Delete goal %s? (y/N): ", args[0])
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

			if err := eng.DeleteGoal(ctx, args[0]); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted goal %s", args[0])))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}
