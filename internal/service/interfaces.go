// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/pennywise-app/pennywise/internal/model"
)

// Store defines the persistence operations shared by the main storage
// handle and an open database transaction.
type Store interface {
	// Transaction operations. Inserts prepend: ListTransactions returns
	// newest-first, and updates/deletes preserve relative order.
	InsertTransaction(ctx context.Context, txn model.Transaction) error
	GetTransaction(ctx context.Context, id string) (*model.Transaction, error)
	ListTransactions(ctx context.Context, limit int) ([]model.Transaction, error)
	UpdateTransaction(ctx context.Context, txn model.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
	ReassignTransactionCategory(ctx context.Context, fromCategoryID string, to model.Category) error
	ReassignTransactionSource(ctx context.Context, fromSourceID string, to model.IncomeSource) error

	// Category operations. Name lookups are case-insensitive.
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryByID(ctx context.Context, id string) (*model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	CreateCategory(ctx context.Context, cat model.Category) error
	UpdateCategory(ctx context.Context, cat model.Category) error
	DeleteCategory(ctx context.Context, id string) error

	// Income source operations, symmetric with categories.
	GetIncomeSources(ctx context.Context) ([]model.IncomeSource, error)
	GetIncomeSourceByID(ctx context.Context, id string) (*model.IncomeSource, error)
	GetIncomeSourceByName(ctx context.Context, name string) (*model.IncomeSource, error)
	CreateIncomeSource(ctx context.Context, src model.IncomeSource) error
	UpdateIncomeSource(ctx context.Context, src model.IncomeSource) error
	DeleteIncomeSource(ctx context.Context, id string) error

	// Budget operations. At most one budget exists per category id.
	GetBudgets(ctx context.Context) ([]model.Budget, error)
	UpsertBudget(ctx context.Context, budget model.Budget) error
	DeleteBudget(ctx context.Context, categoryID string) error

	// Goal operations.
	GetGoals(ctx context.Context) ([]model.Goal, error)
	GetGoal(ctx context.Context, id string) (*model.Goal, error)
	CreateGoal(ctx context.Context, goal model.Goal) error
	UpdateGoal(ctx context.Context, goal model.Goal) error
	DeleteGoal(ctx context.Context, id string) error

	// Correction operations. UpsertCorrection removes any prior row with
	// the identical description before appending, so recency order is
	// write order. RecentCorrections returns newest-first.
	UpsertCorrection(ctx context.Context, corr model.Correction) error
	RecentCorrections(ctx context.Context, n int) ([]model.Correction, error)
}

// Storage is the contract for the persistence layer.
type Storage interface {
	Store

	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Transaction, error)
	Close() error
}

// Transaction represents an open database transaction. Mutations made
// through it become visible atomically on Commit.
type Transaction interface {
	Store

	Commit() error
	Rollback() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
