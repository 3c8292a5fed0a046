package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pennywise-app/pennywise/internal/model"
)

// UpsertCorrection records a user override. Any prior row with the
// identical description (exact, case-sensitive match) is removed first, so
// the ledger holds at most one row per unique description ordered by
// recency of write.
func (q queries) UpsertCorrection(ctx context.Context, corr model.Correction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(corr.Description, "correction description"); err != nil {
		return err
	}
	if err := validateString(corr.CategoryID, "correction category id"); err != nil {
		return err
	}

	// Delete-then-insert rather than ON CONFLICT so the row gets a fresh
	// pos and moves to the front of the recency window.
	if _, err := q.ext.ExecContext(ctx,
		`DELETE FROM corrections WHERE description = ?`, corr.Description); err != nil {
		return fmt.Errorf("failed to replace correction: %w", err)
	}

	if _, err := q.ext.ExecContext(ctx,
		`INSERT INTO corrections (description, category_id) VALUES (?, ?)`,
		corr.Description, corr.CategoryID); err != nil {
		return fmt.Errorf("failed to insert correction: %w", err)
	}

	slog.Debug("recorded correction",
		"description", corr.Description,
		"category_id", corr.CategoryID)
	return nil
}

// RecentCorrections returns the n most recently written corrections,
// newest-first. A non-positive n returns the whole ledger.
func (q queries) RecentCorrections(ctx context.Context, n int) ([]model.Correction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT description, category_id FROM corrections ORDER BY pos DESC`
	args := []any{}
	if n > 0 {
		query += ` LIMIT ?`
		args = append(args, n)
	}

	rows, err := q.ext.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query corrections: %w", err)
	}
	defer rows.Close()

	var corrections []model.Correction
	for rows.Next() {
		var c model.Correction
		if err := rows.Scan(&c.Description, &c.CategoryID); err != nil {
			return nil, fmt.Errorf("failed to scan correction: %w", err)
		}
		corrections = append(corrections, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating corrections: %w", err)
	}

	return corrections, nil
}
