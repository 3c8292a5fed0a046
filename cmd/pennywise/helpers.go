package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pennywise-app/pennywise/internal/config"
	"github.com/pennywise-app/pennywise/internal/engine"
	"github.com/pennywise-app/pennywise/internal/llm"
	"github.com/pennywise-app/pennywise/internal/model"
	"github.com/pennywise-app/pennywise/internal/service"
	"github.com/pennywise-app/pennywise/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	// Get database path from config
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/pennywise/pennywise.db"
	}

	// Expand tilde and environment variables
	dbPath = config.ExpandPath(dbPath)

	// Initialize storage
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// newClassifier builds the LLM classifier from config. A missing API key is
// fine; the classifier then answers every request with the fallback.
func newClassifier(ctx context.Context) (*llm.Classifier, error) {
	apiKey := viper.GetString("gemini.api_key")
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	cfg := llm.Config{
		APIKey:     apiKey,
		Model:      viper.GetString("gemini.model"),
		MaxRetries: viper.GetInt("gemini.max_retries"),
		RetryDelay: viper.GetDuration("gemini.retry_delay"),
		CacheTTL:   viper.GetDuration("gemini.cache_ttl"),
		RateLimit:  viper.GetInt("gemini.rate_limit"),
	}

	return llm.NewClassifier(ctx, cfg, slog.Default())
}

// newEngine wires storage and the classifier together. The returned cleanup
// function closes both.
func newEngine(ctx context.Context) (*engine.Engine, func(), error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, err
	}

	classifier, err := newClassifier(ctx)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	eng := engine.New(store, classifier)
	cleanup := func() {
		_ = classifier.Close()
		_ = store.Close()
	}

	return eng, cleanup, nil
}

// parseDate accepts the date formats users actually type.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{"2006-01-02", "2006/01/02", "Jan 2, 2006", "01/02/2006"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q (try YYYY-MM-DD)", value)
}

// findCategoryByName resolves a user-typed category name against the stored
// collection, ignoring case.
func findCategoryByName(categories []model.Category, name string) (*model.Category, bool) {
	for i := range categories {
		if strings.EqualFold(categories[i].Name, name) {
			return &categories[i], true
		}
	}
	return nil, false
}

// findSourceByName resolves a user-typed income source name, ignoring case.
func findSourceByName(sources []model.IncomeSource, name string) (*model.IncomeSource, bool) {
	for i := range sources {
		if strings.EqualFold(sources[i].Name, name) {
			return &sources[i], true
		}
	}
	return nil, false
}
