package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pennywise-app/pennywise/internal/model"
)

// GetGoals returns all goals ordered by deadline.
func (q queries) GetGoals(ctx context.Context) ([]model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := q.ext.QueryContext(ctx, `
		SELECT id, name, target_amount, current_amount, deadline
		FROM goals
		ORDER BY deadline`)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	var goals []model.Goal
	for rows.Next() {
		var g model.Goal
		if err := rows.Scan(&g.ID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.Deadline); err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}

	return goals, nil
}

// GetGoal returns a goal by id, or nil if it does not exist.
func (q queries) GetGoal(ctx context.Context, id string) (*model.Goal, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var g model.Goal
	err := q.ext.QueryRowContext(ctx, `
		SELECT id, name, target_amount, current_amount, deadline
		FROM goals
		WHERE id = ?`, id).Scan(&g.ID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &g.Deadline)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query goal: %w", err)
	}

	return &g, nil
}

// CreateGoal inserts a new goal.
func (q queries) CreateGoal(ctx context.Context, goal model.Goal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateGoal(&goal); err != nil {
		return err
	}

	_, err := q.ext.ExecContext(ctx, `
		INSERT INTO goals (id, name, target_amount, current_amount, deadline)
		VALUES (?, ?, ?, ?, ?)`,
		goal.ID, goal.Name, goal.TargetAmount, goal.CurrentAmount, goal.Deadline)
	if err != nil {
		return fmt.Errorf("failed to create goal: %w", err)
	}

	return nil
}

// UpdateGoal replaces a stored goal by id.
func (q queries) UpdateGoal(ctx context.Context, goal model.Goal) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateGoal(&goal); err != nil {
		return err
	}

	_, err := q.ext.ExecContext(ctx, `
		UPDATE goals SET name = ?, target_amount = ?, current_amount = ?, deadline = ?
		WHERE id = ?`,
		goal.Name, goal.TargetAmount, goal.CurrentAmount, goal.Deadline, goal.ID)
	if err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}

	return nil
}

// DeleteGoal removes a goal by id.
func (q queries) DeleteGoal(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	_, err := q.ext.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	return nil
}
