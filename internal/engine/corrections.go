package engine

import (
	"context"

	"github.com/pennywise-app/pennywise/internal/model"
)

// correctionWindow is how many recent corrections are offered to the model
// as few-shot examples.
const correctionWindow = 10

// recentExamples loads the most recent corrections and resolves their
// category ids to names. Corrections pointing at a deleted category map to
// Other rather than being dropped, so the model still sees the description.
func (e *Engine) recentExamples(ctx context.Context, n int) []model.CorrectionExample {
	corrections, err := e.storage.RecentCorrections(ctx, n)
	if err != nil {
		e.logger.Warn("failed to load corrections, classifying without examples", "error", err)
		return nil
	}
	if len(corrections) == 0 {
		return nil
	}

	categories, err := e.storage.GetCategories(ctx)
	if err != nil {
		e.logger.Warn("failed to load categories for examples", "error", err)
		return nil
	}
	names := make(map[string]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = cat.Name
	}

	examples := make([]model.CorrectionExample, 0, len(corrections))
	for _, corr := range corrections {
		name, ok := names[corr.CategoryID]
		if !ok {
			name = "Other"
		}
		examples = append(examples, model.CorrectionExample{
			Description: corr.Description,
			Category:    name,
		})
	}
	return examples
}
