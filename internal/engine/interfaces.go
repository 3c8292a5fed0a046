package engine

import (
	"context"

	"github.com/pennywise-app/pennywise/internal/model"
)

// Classifier produces category suggestions and spending insights. The llm
// package provides the production implementation.
type Classifier interface {
	// Classify suggests a category for an expense description. It returns
	// an error only when ctx is canceled or times out; all other failures
	// resolve to a usable fallback suggestion.
	Classify(ctx context.Context, description string, candidates []model.Category, examples []model.CorrectionExample) (model.Suggestion, error)

	// GenerateInsights produces observations about recent transactions.
	GenerateInsights(ctx context.Context, transactions []model.Transaction) ([]string, error)

	// Invalidate drops any cached suggestion for a description.
	Invalidate(description string)
}
