package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pennywise-app/pennywise/internal/cli"
)

func insightsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "insights",
		Short: "AI observations about recent spending",
		Long: `Ask for a handful of observations about your recent transactions.

Requires a configured Gemini API key; without one you get a friendly note
instead of analysis.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			eng, cleanup, err := newEngine(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			insights, err := eng.Insights(ctx)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle("Spending Insights"))
			for _, insight := range insights {
				fmt.Printf("  %s %s\n", cli.InfoStyle.Render("•"), insight)
			}

			return nil
		},
	}
}
