// Package llm provides transaction classification and insight generation
// backed by a hosted language model, with deterministic fallbacks when the
// model is unavailable or misbehaves.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pennywise-app/pennywise/internal/common"
	"github.com/pennywise-app/pennywise/internal/model"
	"github.com/pennywise-app/pennywise/internal/service"
)

// FallbackCategory is the category name assigned when no valid suggestion
// can be produced.
const FallbackCategory = "Other"

// FallbackConfidence marks suggestions where the model was skipped or its
// answer was unusable. It is distinct from zero, which the engine assigns
// when classification fails outright.
const FallbackConfidence = 0.5

// Classifier suggests expense categories for transaction descriptions.
type Classifier struct {
	client      Client
	cache       *suggestionCache
	logger      *slog.Logger
	rateLimiter *rateLimiter
	retryOpts   service.RetryOptions
}

// Config holds configuration for the LLM classifier.
type Config struct {
	APIKey     string
	Model      string
	MaxRetries int
	RetryDelay time.Duration
	CacheTTL   time.Duration
	RateLimit  int
}

// NewClassifier creates a new LLM-based classifier. An empty API key is not
// an error: the classifier runs in fallback-only mode and every suggestion
// is {Other, 0.5}.
func NewClassifier(ctx context.Context, cfg Config, logger *slog.Logger) (*Classifier, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var client Client
	if cfg.APIKey != "" {
		var err error
		client, err = newGeminiClient(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
	} else {
		logger.Warn("no API key configured, classification falls back to Other")
	}

	retryOpts := service.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 3
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}

	return &Classifier{
		client:      client,
		cache:       newSuggestionCache(cfg.CacheTTL),
		logger:      logger,
		retryOpts:   retryOpts,
		rateLimiter: newRateLimiter(cfg.RateLimit),
	}, nil
}

// Classify suggests a category for an expense description. candidates is
// the live category list; the Income sentinel is never offered to the
// model. examples are recent user corrections, most recent first.
//
// The returned error is non-nil only when ctx is canceled or its deadline
// passes. Every other failure mode (unconfigured client, API error,
// unparseable reply, hallucinated category) resolves to the fallback
// suggestion with a nil error.
func (c *Classifier) Classify(ctx context.Context, description string, candidates []model.Category, examples []model.CorrectionExample) (model.Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return model.Suggestion{}, err
	}

	if suggestion, found := c.cache.get(description); found {
		c.logger.Debug("cache hit for description", "description", description)
		return suggestion, nil
	}

	if c.client == nil {
		return fallbackSuggestion(), nil
	}

	if err := c.rateLimiter.wait(ctx); err != nil {
		return model.Suggestion{}, err
	}

	prompt := buildClassifyPrompt(description, candidates, examples)

	var content string
	err := common.WithRetry(ctx, func() error {
		var completeErr error
		content, completeErr = c.client.Complete(ctx, prompt)
		return completeErr
	}, c.retryOpts)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return model.Suggestion{}, ctxErr
		}
		c.logger.Warn("classification request failed, using fallback",
			"description", description,
			"error", err)
		return fallbackSuggestion(), nil
	}

	suggestion, err := parseSuggestion(content)
	if err != nil {
		c.logger.Warn("unparseable classification response, using fallback",
			"description", description,
			"error", err)
		return fallbackSuggestion(), nil
	}

	canonical, ok := matchCandidate(suggestion.Category, candidates)
	if !ok {
		c.logger.Warn("model suggested unknown category, using fallback",
			"description", description,
			"suggested", suggestion.Category)
		return fallbackSuggestion(), nil
	}

	suggestion.Category = canonical
	suggestion.Confidence = clampConfidence(suggestion.Confidence)

	c.cache.set(description, suggestion)
	return suggestion, nil
}

// Invalidate drops any cached suggestion for a description. Called when a
// user correction supersedes the cache.
func (c *Classifier) Invalidate(description string) {
	c.cache.invalidate(description)
}

// Close releases the client connection and background goroutines.
func (c *Classifier) Close() error {
	c.cache.Close()
	c.rateLimiter.Close()
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func fallbackSuggestion() model.Suggestion {
	return model.Suggestion{
		Category:   FallbackCategory,
		Confidence: FallbackConfidence,
	}
}

// matchCandidate resolves the model's category name against the candidate
// list, ignoring case, and returns the canonical stored spelling. The
// Income sentinel is never a valid expense suggestion.
func matchCandidate(name string, candidates []model.Category) (string, bool) {
	for _, cat := range candidates {
		if cat.ID == model.CategoryIDIncome {
			continue
		}
		if strings.EqualFold(cat.Name, name) {
			return cat.Name, true
		}
	}
	return "", false
}

func clampConfidence(confidence float64) float64 {
	if confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}
