package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pennywise-app/pennywise/internal/model"
)

// GetCategories returns all categories ordered by name.
func (q queries) GetCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := q.ext.QueryContext(ctx, `
		SELECT id, name, color, is_default
		FROM categories
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var cat model.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Color, &cat.IsDefault); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// GetCategoryByID returns a category by id, or nil if it does not exist.
func (q queries) GetCategoryByID(ctx context.Context, id string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var cat model.Category
	err := q.ext.QueryRowContext(ctx, `
		SELECT id, name, color, is_default
		FROM categories
		WHERE id = ?`, id).Scan(&cat.ID, &cat.Name, &cat.Color, &cat.IsDefault)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &cat, nil
}

// GetCategoryByName returns a category by name (case-insensitive), or nil
// if it does not exist.
func (q queries) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	var cat model.Category
	err := q.ext.QueryRowContext(ctx, `
		SELECT id, name, color, is_default
		FROM categories
		WHERE name = ? COLLATE NOCASE`, name).Scan(&cat.ID, &cat.Name, &cat.Color, &cat.IsDefault)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &cat, nil
}

// CreateCategory inserts a new category.
func (q queries) CreateCategory(ctx context.Context, cat model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(cat.ID, "category id"); err != nil {
		return err
	}
	if err := validateString(cat.Name, "category name"); err != nil {
		return err
	}

	_, err := q.ext.ExecContext(ctx, `
		INSERT INTO categories (id, name, color, is_default)
		VALUES (?, ?, ?, ?)`,
		cat.ID, cat.Name, cat.Color, cat.IsDefault)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	slog.Info("created category", "id", cat.ID, "name", cat.Name)
	return nil
}

// UpdateCategory merges name and color by id. Transactions keep their
// value-copied snapshots; renames are not propagated.
func (q queries) UpdateCategory(ctx context.Context, cat model.Category) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(cat.ID, "category id"); err != nil {
		return err
	}
	if err := validateString(cat.Name, "category name"); err != nil {
		return err
	}

	_, err := q.ext.ExecContext(ctx, `
		UPDATE categories SET name = ?, color = ? WHERE id = ?`,
		cat.Name, cat.Color, cat.ID)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	return nil
}

// DeleteCategory removes a category row. Cascading of dependent
// transactions and budgets is the engine's responsibility.
func (q queries) DeleteCategory(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	_, err := q.ext.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	return nil
}
