package llm

import (
	"context"

	"github.com/pennywise-app/pennywise/internal/common"
	"github.com/pennywise-app/pennywise/internal/model"
)

// Canned replies shown when insight generation cannot reach the model.
var (
	insightsUnavailable = []string{"AI insights are unavailable. Add a Gemini API key to enable them."}
	insightsFailed      = []string{"Could not generate insights right now. Please try again later."}
)

// maxInsightTransactions bounds how much recent history is sent to the model.
const maxInsightTransactions = 20

// GenerateInsights produces a short list of observations about recent
// spending. Like Classify, it only returns an error on context
// cancellation; other failures produce a canned explanatory message.
func (c *Classifier) GenerateInsights(ctx context.Context, transactions []model.Transaction) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if c.client == nil {
		return insightsUnavailable, nil
	}

	if len(transactions) > maxInsightTransactions {
		transactions = transactions[:maxInsightTransactions]
	}

	if err := c.rateLimiter.wait(ctx); err != nil {
		return nil, err
	}

	prompt := buildInsightsPrompt(transactions)

	var content string
	err := common.WithRetry(ctx, func() error {
		var completeErr error
		content, completeErr = c.client.Complete(ctx, prompt)
		return completeErr
	}, c.retryOpts)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.Warn("insight generation failed", "error", err)
		return insightsFailed, nil
	}

	insights, err := parseInsights(content)
	if err != nil {
		c.logger.Warn("unparseable insights response", "error", err)
		return insightsFailed, nil
	}

	return insights, nil
}
