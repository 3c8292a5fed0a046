// Package engine orchestrates the transaction, taxonomy, budget and goal
// lifecycles on top of storage, wiring the classifier and the correction
// ledger together.
package engine

import (
	"log/slog"
	"time"

	"github.com/pennywise-app/pennywise/internal/service"
)

// Engine coordinates storage and the classifier.
type Engine struct {
	storage    service.Storage
	classifier Classifier
	logger     *slog.Logger
	timeout    time.Duration
}

// Config holds configuration options for the engine.
type Config struct {
	// ClassifyTimeout bounds a single classification. When it expires the
	// transaction is committed with the hard fallback instead of blocking
	// the caller.
	ClassifyTimeout time.Duration
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		ClassifyTimeout: 30 * time.Second,
	}
}

// New creates a new engine with the given dependencies.
func New(storage service.Storage, classifier Classifier) *Engine {
	return NewWithConfig(storage, classifier, DefaultConfig())
}

// NewWithConfig creates a new engine with custom configuration.
func NewWithConfig(storage service.Storage, classifier Classifier, config Config) *Engine {
	if config.ClassifyTimeout <= 0 {
		config.ClassifyTimeout = DefaultConfig().ClassifyTimeout
	}
	return &Engine{
		storage:    storage,
		classifier: classifier,
		logger:     slog.Default(),
		timeout:    config.ClassifyTimeout,
	}
}
