package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pennywise-app/pennywise/internal/common"
	"github.com/pennywise-app/pennywise/internal/model"
)

// CreateTransaction records a new transaction from user input. Expenses are
// categorized automatically; income is assigned the Income category and the
// chosen source.
func (e *Engine) CreateTransaction(ctx context.Context, draft model.Draft) (*model.Transaction, error) {
	if strings.TrimSpace(draft.Description) == "" {
		return nil, common.NewUserError("description cannot be empty", nil)
	}
	if draft.Amount <= 0 {
		return nil, common.NewUserError("amount must be positive", nil)
	}

	date := draft.Date
	if date.IsZero() {
		date = time.Now()
	}

	txn := model.Transaction{
		ID:          newID("txn"),
		Date:        date,
		Description: strings.TrimSpace(draft.Description),
		Amount:      draft.Amount,
		Type:        draft.Type,
	}

	switch draft.Type {
	case model.TypeIncome:
		category, err := e.requireCategory(ctx, model.CategoryIDIncome)
		if err != nil {
			return nil, err
		}
		source, err := e.resolveSource(ctx, draft.SourceID)
		if err != nil {
			return nil, err
		}
		txn.Category = *category
		txn.Source = source

	case model.TypeExpense:
		category, confidence, err := e.categorizeExpense(ctx, txn.Description)
		if err != nil {
			return nil, err
		}
		txn.Category = *category
		txn.AIConfidence = &confidence

	default:
		return nil, common.NewUserError(fmt.Sprintf("unknown transaction type %q", draft.Type), nil)
	}

	if err := e.storage.InsertTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	e.logger.Info("created transaction",
		"id", txn.ID,
		"type", txn.Type,
		"category", txn.Category.Name)
	return &txn, nil
}

// categorizeExpense runs the classifier under the configured timeout. A
// classifier error (cancellation or deadline) does not fail the operation:
// the expense is committed to Other with zero confidence.
func (e *Engine) categorizeExpense(ctx context.Context, description string) (*model.Category, float64, error) {
	candidates, err := e.storage.GetCategories(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load categories: %w", err)
	}
	if len(candidates) == 0 {
		return nil, 0, fmt.Errorf("no categories found, run migrations first")
	}

	examples := e.recentExamples(ctx, correctionWindow)

	cctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	suggestion, err := e.classifier.Classify(cctx, description, candidates, examples)
	if err != nil {
		e.logger.Warn("classification aborted, committing with zero confidence",
			"description", description,
			"error", err)
		other := findCategory(candidates, model.CategoryIDOther)
		return other, 0, nil
	}

	for i := range candidates {
		if strings.EqualFold(candidates[i].Name, suggestion.Category) {
			return &candidates[i], suggestion.Confidence, nil
		}
	}

	// The classifier validates its answer against candidates, so this only
	// happens if the category list changed mid-flight.
	other := findCategory(candidates, model.CategoryIDOther)
	return other, suggestion.Confidence, nil
}

// UpdateTransaction applies a user edit. If the edit changes the category
// of an automatically categorized expense, the change is recorded in the
// correction ledger; the edit also clears the confidence marker since the
// row is now user-curated.
func (e *Engine) UpdateTransaction(ctx context.Context, txn model.Transaction) (*model.Transaction, error) {
	existing, err := e.storage.GetTransaction(ctx, txn.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transaction: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("transaction %s: %w", txn.ID, common.ErrNotFound)
	}

	// Refresh the category snapshot from the live row so edits carry
	// canonical name and color.
	category, err := e.requireCategory(ctx, txn.Category.ID)
	if err != nil {
		return nil, err
	}
	txn.Category = *category

	if txn.Type == model.TypeIncome {
		sourceID := model.SourceIDOther
		if txn.Source != nil {
			sourceID = txn.Source.ID
		}
		source, err := e.resolveSource(ctx, sourceID)
		if err != nil {
			return nil, err
		}
		txn.Source = source
	} else {
		txn.Source = nil
	}

	isCorrection := existing.Type == model.TypeExpense &&
		existing.AIConfidence != nil &&
		txn.Category.ID != existing.Category.ID

	// A manual edit makes the row user-curated.
	if txn.Type == model.TypeExpense {
		txn.AIConfidence = nil
	}

	tx, err := e.storage.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := tx.UpdateTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	if isCorrection {
		corr := model.Correction{
			Description: txn.Description,
			CategoryID:  txn.Category.ID,
		}
		if err := tx.UpsertCorrection(ctx, corr); err != nil {
			return nil, fmt.Errorf("failed to record correction: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit update: %w", err)
	}

	if isCorrection {
		e.classifier.Invalidate(txn.Description)
		e.logger.Info("recorded correction",
			"description", txn.Description,
			"category", txn.Category.Name)
	}

	return &txn, nil
}

// DeleteTransaction removes a transaction.
func (e *Engine) DeleteTransaction(ctx context.Context, id string) error {
	existing, err := e.storage.GetTransaction(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load transaction: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
	}
	return e.storage.DeleteTransaction(ctx, id)
}

// ListTransactions returns transactions newest-first.
func (e *Engine) ListTransactions(ctx context.Context, limit int) ([]model.Transaction, error) {
	return e.storage.ListTransactions(ctx, limit)
}

// GetTransaction returns a transaction by id.
func (e *Engine) GetTransaction(ctx context.Context, id string) (*model.Transaction, error) {
	return e.storage.GetTransaction(ctx, id)
}

func (e *Engine) requireCategory(ctx context.Context, id string) (*model.Category, error) {
	category, err := e.storage.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("category %s: %w", id, common.ErrNotFound)
	}
	return category, nil
}

// resolveSource loads the income source for an income transaction. A missing
// or unknown id resolves to the Other sentinel rather than failing the
// transaction; only a missing sentinel itself is an error.
func (e *Engine) resolveSource(ctx context.Context, id string) (*model.IncomeSource, error) {
	if id == "" {
		id = model.SourceIDOther
	}
	source, err := e.storage.GetIncomeSourceByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load income source: %w", err)
	}
	if source == nil && id != model.SourceIDOther {
		e.logger.Warn("unknown income source, falling back to Other", "id", id)
		source, err = e.storage.GetIncomeSourceByID(ctx, model.SourceIDOther)
		if err != nil {
			return nil, fmt.Errorf("failed to load income source: %w", err)
		}
	}
	if source == nil {
		return nil, fmt.Errorf("income source %s: %w", model.SourceIDOther, common.ErrNotFound)
	}
	return source, nil
}

// requireSource loads an income source strictly by id. Taxonomy operations
// use it so editing or deleting an unknown source reports an error instead
// of silently acting on the sentinel.
func (e *Engine) requireSource(ctx context.Context, id string) (*model.IncomeSource, error) {
	source, err := e.storage.GetIncomeSourceByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load income source: %w", err)
	}
	if source == nil {
		return nil, fmt.Errorf("income source %s: %w", id, common.ErrNotFound)
	}
	return source, nil
}

func findCategory(categories []model.Category, id string) *model.Category {
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i]
		}
	}
	// Synthesized snapshot for a missing sentinel. Should not happen on a
	// migrated database.
	return &model.Category{ID: model.CategoryIDOther, Name: "Other", Color: "#6272A4"}
}
