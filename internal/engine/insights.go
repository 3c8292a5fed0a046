package engine

import (
	"context"
	"fmt"
)

// insightWindow is how many recent transactions inform the insights prompt.
const insightWindow = 20

// Insights asks the classifier for observations about recent spending.
func (e *Engine) Insights(ctx context.Context) ([]string, error) {
	transactions, err := e.storage.ListTransactions(ctx, insightWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	cctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	return e.classifier.GenerateInsights(cctx, transactions)
}
