package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pennywise-app/pennywise/internal/model"
)

// buildClassifyPrompt assembles the classification prompt: the candidate
// category names (Income excluded), recent user corrections as few-shot
// examples, and the description to classify.
func buildClassifyPrompt(description string, candidates []model.Category, examples []model.CorrectionExample) string {
	names := make([]string, 0, len(candidates))
	for _, cat := range candidates {
		if cat.ID == model.CategoryIDIncome {
			continue
		}
		names = append(names, cat.Name)
	}

	var sb strings.Builder
	sb.WriteString("You are a personal finance assistant. Categorize the expense below.\n\n")
	sb.WriteString("Choose exactly one category from this list:\n")
	sb.WriteString(strings.Join(names, ", "))
	sb.WriteString("\n")

	if len(examples) > 0 {
		sb.WriteString("\nThe user has previously corrected these categorizations. Learn from them:\n")
		for _, ex := range examples {
			// Examples are already capped and ordered newest-first by the
			// caller; serialize them one per line.
			line, err := json.Marshal(ex)
			if err != nil {
				continue
			}
			sb.Write(line)
			sb.WriteString("\n")
		}
	}

	sb.WriteString(fmt.Sprintf("\nExpense description: %q\n", description))
	sb.WriteString("\nRespond with only a JSON object of the form ")
	sb.WriteString(`{"category": "<name from the list>", "confidence": <0.0 to 1.0>}`)
	sb.WriteString(" and nothing else.")

	return sb.String()
}

// buildInsightsPrompt assembles the spending-insights prompt from recent
// transactions.
func buildInsightsPrompt(transactions []model.Transaction) string {
	var sb strings.Builder
	sb.WriteString("You are a personal finance assistant. Here are the user's recent transactions, newest first:\n\n")

	for _, txn := range transactions {
		entry := map[string]any{
			"date":        txn.Date.Format("2006-01-02"),
			"description": txn.Description,
			"amount":      txn.Amount,
			"type":        string(txn.Type),
			"category":    txn.Category.Name,
		}
		line, err := json.Marshal(entry)
		if err != nil {
			continue
		}
		sb.Write(line)
		sb.WriteString("\n")
	}

	sb.WriteString("\nGive 3 to 5 short, actionable observations about spending habits.\n")
	sb.WriteString(`Respond with only a JSON array of strings, e.g. ["observation one", "observation two"], and nothing else.`)

	return sb.String()
}
