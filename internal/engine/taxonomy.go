package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/pennywise-app/pennywise/internal/common"
	"github.com/pennywise-app/pennywise/internal/model"
)

// CreateCategory adds a user-defined expense category.
func (e *Engine) CreateCategory(ctx context.Context, name, color string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.NewUserError("category name cannot be empty", nil)
	}

	existing, err := e.storage.GetCategoryByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}
	if existing != nil {
		return nil, common.NewUserError(
			fmt.Sprintf("a category named %q already exists", existing.Name),
			common.ErrDuplicateEntry)
	}

	category := model.Category{
		ID:    newID("cat"),
		Name:  name,
		Color: color,
	}
	if err := e.storage.CreateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &category, nil
}

// UpdateCategory renames or recolors a category. Snapshots on existing
// transactions keep the old name and color; only new assignments pick up
// the change.
func (e *Engine) UpdateCategory(ctx context.Context, category model.Category) error {
	existing, err := e.requireCategory(ctx, category.ID)
	if err != nil {
		return err
	}

	if !strings.EqualFold(existing.Name, category.Name) {
		clash, err := e.storage.GetCategoryByName(ctx, category.Name)
		if err != nil {
			return fmt.Errorf("failed to check category name: %w", err)
		}
		if clash != nil && clash.ID != category.ID {
			return common.NewUserError(
				fmt.Sprintf("a category named %q already exists", clash.Name),
				common.ErrDuplicateEntry)
		}
	}

	return e.storage.UpdateCategory(ctx, category)
}

// DeleteCategory removes a category and cascades: its expense transactions
// are reassigned to Other and its budget is dropped, all in one storage
// transaction. Deleting the Other sentinel is a no-op.
func (e *Engine) DeleteCategory(ctx context.Context, id string) error {
	if id == model.CategoryIDOther {
		return nil
	}
	if id == model.CategoryIDIncome {
		return common.NewUserError("the Income category cannot be deleted", nil)
	}

	category, err := e.requireCategory(ctx, id)
	if err != nil {
		return err
	}
	other, err := e.requireCategory(ctx, model.CategoryIDOther)
	if err != nil {
		return err
	}

	tx, err := e.storage.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := tx.ReassignTransactionCategory(ctx, id, *other); err != nil {
		return fmt.Errorf("failed to reassign transactions: %w", err)
	}
	if err := tx.DeleteBudget(ctx, id); err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	if err := tx.DeleteCategory(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit category deletion: %w", err)
	}

	e.logger.Info("deleted category", "id", id, "name", category.Name)
	return nil
}

// GetCategories returns all categories.
func (e *Engine) GetCategories(ctx context.Context) ([]model.Category, error) {
	return e.storage.GetCategories(ctx)
}

// CreateIncomeSource adds a user-defined income source.
func (e *Engine) CreateIncomeSource(ctx context.Context, name, color string) (*model.IncomeSource, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.NewUserError("income source name cannot be empty", nil)
	}

	existing, err := e.storage.GetIncomeSourceByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to check income source name: %w", err)
	}
	if existing != nil {
		return nil, common.NewUserError(
			fmt.Sprintf("an income source named %q already exists", existing.Name),
			common.ErrDuplicateEntry)
	}

	source := model.IncomeSource{
		ID:    newID("src"),
		Name:  name,
		Color: color,
	}
	if err := e.storage.CreateIncomeSource(ctx, source); err != nil {
		return nil, fmt.Errorf("failed to create income source: %w", err)
	}
	return &source, nil
}

// UpdateIncomeSource renames or recolors an income source.
func (e *Engine) UpdateIncomeSource(ctx context.Context, source model.IncomeSource) error {
	existing, err := e.requireSource(ctx, source.ID)
	if err != nil {
		return err
	}

	if !strings.EqualFold(existing.Name, source.Name) {
		clash, err := e.storage.GetIncomeSourceByName(ctx, source.Name)
		if err != nil {
			return fmt.Errorf("failed to check income source name: %w", err)
		}
		if clash != nil && clash.ID != source.ID {
			return common.NewUserError(
				fmt.Sprintf("an income source named %q already exists", clash.Name),
				common.ErrDuplicateEntry)
		}
	}

	return e.storage.UpdateIncomeSource(ctx, source)
}

// DeleteIncomeSource removes a source and reassigns its income
// transactions to the Other sentinel. Deleting the sentinel is a no-op.
func (e *Engine) DeleteIncomeSource(ctx context.Context, id string) error {
	if id == model.SourceIDOther {
		return nil
	}

	source, err := e.requireSource(ctx, id)
	if err != nil {
		return err
	}
	other, err := e.requireSource(ctx, model.SourceIDOther)
	if err != nil {
		return err
	}

	tx, err := e.storage.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := tx.ReassignTransactionSource(ctx, id, *other); err != nil {
		return fmt.Errorf("failed to reassign transactions: %w", err)
	}
	if err := tx.DeleteIncomeSource(ctx, id); err != nil {
		return fmt.Errorf("failed to delete income source: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit income source deletion: %w", err)
	}

	e.logger.Info("deleted income source", "id", id, "name", source.Name)
	return nil
}

// GetIncomeSources returns all income sources.
func (e *Engine) GetIncomeSources(ctx context.Context) ([]model.IncomeSource, error) {
	return e.storage.GetIncomeSources(ctx)
}
