package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pennywise-app/pennywise/internal/common"
	"github.com/pennywise-app/pennywise/internal/model"
)

// CreateGoal adds a savings goal.
func (e *Engine) CreateGoal(ctx context.Context, name string, target float64, deadline time.Time) (*model.Goal, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.NewUserError("goal name cannot be empty", nil)
	}
	if target <= 0 {
		return nil, common.NewUserError("target amount must be positive", nil)
	}

	goal := model.Goal{
		ID:           newID("goal"),
		Name:         name,
		TargetAmount: target,
		Deadline:     deadline,
	}
	if err := e.storage.CreateGoal(ctx, goal); err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return &goal, nil
}

// ContributeToGoal adds to a goal's saved amount, capped at the target.
func (e *Engine) ContributeToGoal(ctx context.Context, id string, amount float64) (*model.Goal, error) {
	if amount <= 0 {
		return nil, common.NewUserError("contribution must be positive", nil)
	}

	goal, err := e.storage.GetGoal(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load goal: %w", err)
	}
	if goal == nil {
		return nil, fmt.Errorf("goal %s: %w", id, common.ErrNotFound)
	}

	goal.CurrentAmount += amount
	if goal.CurrentAmount > goal.TargetAmount {
		goal.CurrentAmount = goal.TargetAmount
	}

	if err := e.storage.UpdateGoal(ctx, *goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return goal, nil
}

// DeleteGoal removes a savings goal.
func (e *Engine) DeleteGoal(ctx context.Context, id string) error {
	goal, err := e.storage.GetGoal(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load goal: %w", err)
	}
	if goal == nil {
		return fmt.Errorf("goal %s: %w", id, common.ErrNotFound)
	}
	return e.storage.DeleteGoal(ctx, id)
}

// GetGoals returns all savings goals.
func (e *Engine) GetGoals(ctx context.Context) ([]model.Goal, error) {
	return e.storage.GetGoals(ctx)
}

// SetBudget sets the monthly budget for a category. A non-positive amount
// clears the budget instead.
func (e *Engine) SetBudget(ctx context.Context, categoryID string, amount float64) error {
	if _, err := e.requireCategory(ctx, categoryID); err != nil {
		return err
	}

	if amount <= 0 {
		return e.storage.DeleteBudget(ctx, categoryID)
	}
	return e.storage.UpsertBudget(ctx, model.Budget{
		CategoryID: categoryID,
		Amount:     amount,
	})
}

// GetBudgets returns all budgets.
func (e *Engine) GetBudgets(ctx context.Context) ([]model.Budget, error) {
	return e.storage.GetBudgets(ctx)
}
