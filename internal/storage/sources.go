package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pennywise-app/pennywise/internal/model"
)

// GetIncomeSources returns all income sources ordered by name.
func (q queries) GetIncomeSources(ctx context.Context) ([]model.IncomeSource, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := q.ext.QueryContext(ctx, `
		SELECT id, name, color, is_default
		FROM income_sources
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query income sources: %w", err)
	}
	defer rows.Close()

	var sources []model.IncomeSource
	for rows.Next() {
		var src model.IncomeSource
		if err := rows.Scan(&src.ID, &src.Name, &src.Color, &src.IsDefault); err != nil {
			return nil, fmt.Errorf("failed to scan income source: %w", err)
		}
		sources = append(sources, src)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating income sources: %w", err)
	}

	return sources, nil
}

// GetIncomeSourceByID returns an income source by id, or nil if it does
// not exist.
func (q queries) GetIncomeSourceByID(ctx context.Context, id string) (*model.IncomeSource, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var src model.IncomeSource
	err := q.ext.QueryRowContext(ctx, `
		SELECT id, name, color, is_default
		FROM income_sources
		WHERE id = ?`, id).Scan(&src.ID, &src.Name, &src.Color, &src.IsDefault)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query income source: %w", err)
	}

	return &src, nil
}

// GetIncomeSourceByName returns an income source by name
// (case-insensitive), or nil if it does not exist.
func (q queries) GetIncomeSourceByName(ctx context.Context, name string) (*model.IncomeSource, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	var src model.IncomeSource
	err := q.ext.QueryRowContext(ctx, `
		SELECT id, name, color, is_default
		FROM income_sources
		WHERE name = ? COLLATE NOCASE`, name).Scan(&src.ID, &src.Name, &src.Color, &src.IsDefault)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query income source: %w", err)
	}

	return &src, nil
}

// CreateIncomeSource inserts a new income source.
func (q queries) CreateIncomeSource(ctx context.Context, src model.IncomeSource) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(src.ID, "income source id"); err != nil {
		return err
	}
	if err := validateString(src.Name, "income source name"); err != nil {
		return err
	}

	_, err := q.ext.ExecContext(ctx, `
		INSERT INTO income_sources (id, name, color, is_default)
		VALUES (?, ?, ?, ?)`,
		src.ID, src.Name, src.Color, src.IsDefault)
	if err != nil {
		return fmt.Errorf("failed to create income source: %w", err)
	}

	slog.Info("created income source", "id", src.ID, "name", src.Name)
	return nil
}

// UpdateIncomeSource merges name and color by id.
func (q queries) UpdateIncomeSource(ctx context.Context, src model.IncomeSource) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(src.ID, "income source id"); err != nil {
		return err
	}
	if err := validateString(src.Name, "income source name"); err != nil {
		return err
	}

	_, err := q.ext.ExecContext(ctx, `
		UPDATE income_sources SET name = ?, color = ? WHERE id = ?`,
		src.Name, src.Color, src.ID)
	if err != nil {
		return fmt.Errorf("failed to update income source: %w", err)
	}

	return nil
}

// DeleteIncomeSource removes an income source row. Cascading of dependent
// transactions is the engine's responsibility.
func (q queries) DeleteIncomeSource(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	_, err := q.ext.ExecContext(ctx, `DELETE FROM income_sources WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete income source: %w", err)
	}

	return nil
}
