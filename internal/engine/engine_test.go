package engine

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pennywise-app/pennywise/internal/model"
	"github.com/pennywise-app/pennywise/internal/service"
	"github.com/pennywise-app/pennywise/internal/storage"
)

// mockClassifier implements Classifier for tests.
type mockClassifier struct {
	suggestion   model.Suggestion
	err          error
	insights     []string
	lastExamples []model.CorrectionExample
	invalidated  []string
	calls        int
}

func (m *mockClassifier) Classify(_ context.Context, _ string, _ []model.Category, examples []model.CorrectionExample) (model.Suggestion, error) {
	m.calls++
	m.lastExamples = examples
	if m.err != nil {
		return model.Suggestion{}, m.err
	}
	return m.suggestion, nil
}

func (m *mockClassifier) GenerateInsights(_ context.Context, _ []model.Transaction) ([]string, error) {
	return m.insights, nil
}

func (m *mockClassifier) Invalidate(description string) {
	m.invalidated = append(m.invalidated, description)
}

func newTestEngine(t *testing.T, classifier Classifier) (*Engine, service.Storage) {
	t.Helper()

	store, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return New(store, classifier), store
}
