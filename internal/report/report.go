// Package report computes spending summaries and budget comparisons.
// Money math uses decimals so per-category totals sum exactly.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pennywise-app/pennywise/internal/model"
	"github.com/pennywise-app/pennywise/internal/service"
)

// CategoryTotal is the spend in one category over the report period.
type CategoryTotal struct {
	CategoryID   string
	CategoryName string
	Total        decimal.Decimal
	Count        int
}

// BudgetStatus compares a category's budget to its actual spend.
type BudgetStatus struct {
	CategoryID   string
	CategoryName string
	Budget       decimal.Decimal
	Spent        decimal.Decimal
	Remaining    decimal.Decimal
	OverBudget   bool
}

// Summary aggregates a period of transactions.
type Summary struct {
	From       time.Time
	To         time.Time
	Income     decimal.Decimal
	Expenses   decimal.Decimal
	Net        decimal.Decimal
	ByCategory []CategoryTotal
	Budgets    []BudgetStatus
}

// Builder computes summaries from stored transactions and budgets.
type Builder struct {
	storage service.Storage
}

// NewBuilder creates a report builder.
func NewBuilder(storage service.Storage) *Builder {
	return &Builder{storage: storage}
}

// Build computes a summary for transactions dated within [from, to). A zero
// "to" means no upper bound.
func (b *Builder) Build(ctx context.Context, from, to time.Time) (*Summary, error) {
	transactions, err := b.storage.ListTransactions(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	summary := &Summary{
		From:     from,
		To:       to,
		Income:   decimal.Zero,
		Expenses: decimal.Zero,
	}

	type bucket struct {
		name  string
		total decimal.Decimal
		count int
	}
	buckets := make(map[string]*bucket)

	for _, txn := range transactions {
		if txn.Date.Before(from) {
			continue
		}
		if !to.IsZero() && !txn.Date.Before(to) {
			continue
		}

		amount := decimal.NewFromFloat(txn.Amount)
		switch txn.Type {
		case model.TypeIncome:
			summary.Income = summary.Income.Add(amount)
		case model.TypeExpense:
			summary.Expenses = summary.Expenses.Add(amount)

			bk, ok := buckets[txn.Category.ID]
			if !ok {
				bk = &bucket{name: txn.Category.Name}
				buckets[txn.Category.ID] = bk
			}
			bk.total = bk.total.Add(amount)
			bk.count++
		}
	}

	summary.Net = summary.Income.Sub(summary.Expenses)

	for id, bk := range buckets {
		summary.ByCategory = append(summary.ByCategory, CategoryTotal{
			CategoryID:   id,
			CategoryName: bk.name,
			Total:        bk.total,
			Count:        bk.count,
		})
	}
	// Largest spend first; stable name order for equal totals.
	sort.Slice(summary.ByCategory, func(i, j int) bool {
		if !summary.ByCategory[i].Total.Equal(summary.ByCategory[j].Total) {
			return summary.ByCategory[i].Total.GreaterThan(summary.ByCategory[j].Total)
		}
		return summary.ByCategory[i].CategoryName < summary.ByCategory[j].CategoryName
	})

	budgets, err := b.storage.GetBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load budgets: %w", err)
	}
	for _, budget := range budgets {
		spent := decimal.Zero
		name := budget.CategoryID
		if bk, ok := buckets[budget.CategoryID]; ok {
			spent = bk.total
			name = bk.name
		} else if cat, catErr := b.storage.GetCategoryByID(ctx, budget.CategoryID); catErr == nil && cat != nil {
			name = cat.Name
		}

		amount := decimal.NewFromFloat(budget.Amount)
		remaining := amount.Sub(spent)
		summary.Budgets = append(summary.Budgets, BudgetStatus{
			CategoryID:   budget.CategoryID,
			CategoryName: name,
			Budget:       amount,
			Spent:        spent,
			Remaining:    remaining,
			OverBudget:   remaining.IsNegative(),
		})
	}
	sort.Slice(summary.Budgets, func(i, j int) bool {
		return summary.Budgets[i].CategoryName < summary.Budgets[j].CategoryName
	})

	return summary, nil
}
