package report

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennywise-app/pennywise/internal/model"
	"github.com/pennywise-app/pennywise/internal/storage"
)

func newTestBuilder(t *testing.T) (*Builder, *storage.SQLiteStorage) {
	t.Helper()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate(context.Background()))

	return NewBuilder(store), store
}

func seedTransaction(t *testing.T, store *storage.SQLiteStorage, id string, date time.Time, amount float64, txnType model.TransactionType, cat model.Category) {
	t.Helper()
	txn := model.Transaction{
		ID: id, Date: date, Description: id,
		Amount: amount, Type: txnType, Category: cat,
	}
	if txnType == model.TypeIncome {
		txn.Source = &model.IncomeSource{ID: model.SourceIDOther, Name: "Other", Color: "#F1FA8C"}
	}
	require.NoError(t, store.InsertTransaction(context.Background(), txn))
}

func TestBuild_Summary(t *testing.T) {
	builder, store := newTestBuilder(t)
	ctx := context.Background()

	groceries := model.Category{ID: "cat-groceries", Name: "Groceries", Color: "#FFB86C"}
	transport := model.Category{ID: "cat-transport", Name: "Transport", Color: "#8BE9FD"}
	income := model.Category{ID: model.CategoryIDIncome, Name: "Income", Color: "#F1FA8C"}

	aug := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	seedTransaction(t, store, "txn-1", aug.AddDate(0, 0, 2), 50.10, model.TypeExpense, groceries)
	seedTransaction(t, store, "txn-2", aug.AddDate(0, 0, 5), 30.20, model.TypeExpense, groceries)
	seedTransaction(t, store, "txn-3", aug.AddDate(0, 0, 8), 40, model.TypeExpense, transport)
	seedTransaction(t, store, "txn-4", aug.AddDate(0, 0, 1), 4200, model.TypeIncome, income)
	// Outside the period.
	seedTransaction(t, store, "txn-5", aug.AddDate(0, -1, 0), 999, model.TypeExpense, groceries)

	summary, err := builder.Build(ctx, aug, aug.AddDate(0, 1, 0))
	require.NoError(t, err)

	assert.True(t, summary.Income.Equal(decimal.NewFromInt(4200)), "income = %s", summary.Income)
	assert.True(t, summary.Expenses.Equal(decimal.NewFromFloat(120.30)), "expenses = %s", summary.Expenses)
	assert.True(t, summary.Net.Equal(decimal.NewFromFloat(4079.70)), "net = %s", summary.Net)

	require.Len(t, summary.ByCategory, 2)
	assert.Equal(t, "Groceries", summary.ByCategory[0].CategoryName)
	assert.True(t, summary.ByCategory[0].Total.Equal(decimal.NewFromFloat(80.30)))
	assert.Equal(t, 2, summary.ByCategory[0].Count)
	assert.Equal(t, "Transport", summary.ByCategory[1].CategoryName)
}

func TestBuild_BudgetStatus(t *testing.T) {
	builder, store := newTestBuilder(t)
	ctx := context.Background()

	groceries := model.Category{ID: "cat-groceries", Name: "Groceries", Color: "#FFB86C"}
	aug := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	seedTransaction(t, store, "txn-1", aug.AddDate(0, 0, 2), 450, model.TypeExpense, groceries)

	require.NoError(t, store.UpsertBudget(ctx, model.Budget{CategoryID: "cat-groceries", Amount: 400}))
	require.NoError(t, store.UpsertBudget(ctx, model.Budget{CategoryID: "cat-transport", Amount: 150}))

	summary, err := builder.Build(ctx, aug, aug.AddDate(0, 1, 0))
	require.NoError(t, err)
	require.Len(t, summary.Budgets, 2)

	over := summary.Budgets[0]
	assert.Equal(t, "Groceries", over.CategoryName)
	assert.True(t, over.OverBudget)
	assert.True(t, over.Remaining.Equal(decimal.NewFromInt(-50)), "remaining = %s", over.Remaining)

	// No spend in the period still reports the budget, resolved to the
	// live category name.
	under := summary.Budgets[1]
	assert.Equal(t, "Transport", under.CategoryName)
	assert.False(t, under.OverBudget)
	assert.True(t, under.Spent.IsZero())
}

func TestBuild_EmptyPeriod(t *testing.T) {
	builder, _ := newTestBuilder(t)

	summary, err := builder.Build(context.Background(), time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.True(t, summary.Income.IsZero())
	assert.True(t, summary.Expenses.IsZero())
	assert.Empty(t, summary.ByCategory)
}
