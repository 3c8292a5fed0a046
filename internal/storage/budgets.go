package storage

import (
	"context"
	"fmt"

	"github.com/pennywise-app/pennywise/internal/model"
)

// GetBudgets returns all budgets.
func (q queries) GetBudgets(ctx context.Context) ([]model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := q.ext.QueryContext(ctx, `SELECT category_id, amount FROM budgets`)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	var budgets []model.Budget
	for rows.Next() {
		var b model.Budget
		if err := rows.Scan(&b.CategoryID, &b.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}

	return budgets, nil
}

// UpsertBudget inserts or replaces the single budget row for a category.
func (q queries) UpsertBudget(ctx context.Context, budget model.Budget) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(budget.CategoryID, "budget category id"); err != nil {
		return err
	}
	if budget.Amount <= 0 {
		return fmt.Errorf("%w: budget amount must be positive, got %f", ErrInvalidValue, budget.Amount)
	}

	_, err := q.ext.ExecContext(ctx, `
		INSERT INTO budgets (category_id, amount) VALUES (?, ?)
		ON CONFLICT(category_id) DO UPDATE SET amount = excluded.amount`,
		budget.CategoryID, budget.Amount)
	if err != nil {
		return fmt.Errorf("failed to upsert budget: %w", err)
	}

	return nil
}

// DeleteBudget removes the budget row for a category, if any.
func (q queries) DeleteBudget(ctx context.Context, categoryID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(categoryID, "categoryID"); err != nil {
		return err
	}

	_, err := q.ext.ExecContext(ctx, `DELETE FROM budgets WHERE category_id = ?`, categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}

	return nil
}
