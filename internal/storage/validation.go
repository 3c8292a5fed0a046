package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/pennywise-app/pennywise/internal/model"
)

// Validation errors returned before any SQL is executed.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyField   = errors.New("field cannot be empty")
	ErrInvalidValue = errors.New("invalid value")
)

func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

func validateString(value, field string) error {
	if value == "" {
		return fmt.Errorf("%w: %s", ErrEmptyField, field)
	}
	return nil
}

func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction cannot be nil", ErrInvalidValue)
	}
	if err := validateString(txn.ID, "transaction id"); err != nil {
		return err
	}
	if txn.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive, got %f", ErrInvalidValue, txn.Amount)
	}
	switch txn.Type {
	case model.TypeIncome, model.TypeExpense:
	default:
		return fmt.Errorf("%w: unknown transaction type %q", ErrInvalidValue, txn.Type)
	}
	if err := validateString(txn.Category.ID, "transaction category id"); err != nil {
		return err
	}
	return nil
}

func validateGoal(goal *model.Goal) error {
	if goal == nil {
		return fmt.Errorf("%w: goal cannot be nil", ErrInvalidValue)
	}
	if err := validateString(goal.ID, "goal id"); err != nil {
		return err
	}
	if goal.TargetAmount <= 0 {
		return fmt.Errorf("%w: target amount must be positive, got %f", ErrInvalidValue, goal.TargetAmount)
	}
	return nil
}
