package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pennywise-app/pennywise/internal/model"
)

// cleanMarkdownWrapper strips a markdown code fence from around the model's
// reply. Models frequently wrap JSON in ```json ... ``` despite being told
// not to.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)

	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	return strings.TrimSpace(content)
}

// parseSuggestion extracts a category suggestion from the raw model reply.
func parseSuggestion(content string) (model.Suggestion, error) {
	var jsonResp struct {
		Category   string  `json:"category"`
		Confidence float64 `json:"confidence"`
	}

	content = cleanMarkdownWrapper(content)

	if err := json.Unmarshal([]byte(content), &jsonResp); err != nil {
		return model.Suggestion{}, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if jsonResp.Category == "" {
		return model.Suggestion{}, fmt.Errorf("no category found in response")
	}

	return model.Suggestion{
		Category:   jsonResp.Category,
		Confidence: jsonResp.Confidence,
	}, nil
}

// parseInsights extracts a list of observations from the raw model reply.
func parseInsights(content string) ([]string, error) {
	content = cleanMarkdownWrapper(content)

	var insights []string
	if err := json.Unmarshal([]byte(content), &insights); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if len(insights) == 0 {
		return nil, fmt.Errorf("no insights found in response")
	}

	return insights, nil
}
