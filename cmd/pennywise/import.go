package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/pennywise-app/pennywise/internal/cli"
	"github.com/pennywise-app/pennywise/internal/model"
	"github.com/pennywise-app/pennywise/internal/ofx"
)

func importCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import transactions from OFX or QFX (Quicken) files exported from your bank.

Debits are recorded as expenses and categorized automatically; credits are
recorded as income under the Other source. Interrupting the import keeps
everything saved so far.

Examples:
  # Import a single file
  pennywise import ~/Downloads/checking_aug_2026.qfx

  # Import everything from a download batch
  pennywise import ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), args, dryRun)
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Parse and preview without saving")

	return cmd
}

func runImport(ctx context.Context, patterns []string, dryRun bool) error {
	// Expand globs and collect all files
	var allFiles []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			// If no glob matches, check if it's a direct file
			if _, err := os.Stat(pattern); err == nil {
				allFiles = append(allFiles, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			allFiles = append(allFiles, matches...)
		}
	}

	if len(allFiles) == 0 {
		return fmt.Errorf("no files found to import")
	}

	parser := ofx.NewParser()

	var drafts []model.Draft
	for _, filePath := range allFiles {
		f, err := os.Open(filePath) // #nosec G304
		if err != nil {
			slog.Error("Failed to open file", "file", filePath, "error", err)
			continue
		}

		parsed, err := parser.ParseFile(ctx, f)
		_ = f.Close()
		if err != nil {
			slog.Error("Failed to parse OFX file", "file", filePath, "error", err)
			continue
		}

		slog.Info("Parsed file", "file", filepath.Base(filePath), "transactions", len(parsed))
		drafts = append(drafts, parsed...)
	}

	if len(drafts) == 0 {
		fmt.Println(cli.FormatWarning("No transactions found in any file."))
		return nil
	}

	if dryRun {
		var income, expenses int
		for _, draft := range drafts {
			if draft.Type == model.TypeIncome {
				income++
			} else {
				expenses++
			}
		}
		fmt.Println(cli.FormatInfo(fmt.Sprintf(
			"Dry run: %d transactions would be imported (%d expenses, %d income).",
			len(drafts), expenses, income)))
		return nil
	}

	eng, cleanup, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	// Each draft commits independently so an interrupt keeps prior work.
	handler := cli.NewInterruptHandler(os.Stdout)
	ctx = handler.HandleInterrupts(ctx)

	bar := progressbar.NewOptions(len(drafts),
		progressbar.OptionSetDescription(cli.RobotIcon+" Categorizing"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	var imported, failed int
	for _, draft := range drafts {
		if ctx.Err() != nil {
			break
		}

		if _, err := eng.CreateTransaction(ctx, draft); err != nil {
			if errors.Is(err, context.Canceled) {
				break
			}
			failed++
			slog.Warn("Failed to import transaction",
				"description", draft.Description,
				"error", err)
		} else {
			imported++
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	if handler.WasInterrupted() {
		fmt.Println(cli.FormatInfo(fmt.Sprintf("Imported %d of %d transactions before the interrupt.", imported, len(drafts))))
		return nil
	}

	msg := fmt.Sprintf("Imported %d transactions.", imported)
	if failed > 0 {
		msg += fmt.Sprintf(" %d failed, see the log.", failed)
	}
	fmt.Println(cli.FormatSuccess(msg))

	return nil
}
