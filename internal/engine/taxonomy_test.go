package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/pennywise-app/pennywise/internal/common"
	"github.com/pennywise-app/pennywise/internal/model"
)

func TestCreateCategory(t *testing.T) {
	e, _ := newTestEngine(t, &mockClassifier{})
	ctx := context.Background()

	cat, err := e.CreateCategory(ctx, "Pets", "#AABBCC")
	if err != nil {
		t.Fatalf("CreateCategory() error = %v", err)
	}
	if cat.ID == "" || cat.Name != "Pets" {
		t.Errorf("CreateCategory() = %+v", cat)
	}

	// Duplicate names are rejected case-insensitively.
	if _, err := e.CreateCategory(ctx, "PETS", "#000000"); !errors.Is(err, common.ErrDuplicateEntry) {
		t.Errorf("duplicate create error = %v, want ErrDuplicateEntry", err)
	}
	if _, err := e.CreateCategory(ctx, "groceries", "#000000"); !errors.Is(err, common.ErrDuplicateEntry) {
		t.Errorf("clash with seeded category error = %v, want ErrDuplicateEntry", err)
	}
	if _, err := e.CreateCategory(ctx, "  ", "#000000"); err == nil {
		t.Error("blank name should fail")
	}
}

func TestDeleteCategory_Cascade(t *testing.T) {
	classifier := &mockClassifier{
		suggestion: model.Suggestion{Category: "Entertainment", Confidence: 0.9},
	}
	e, store := newTestEngine(t, classifier)
	ctx := context.Background()

	txn, err := e.CreateTransaction(ctx, model.Draft{
		Description: "NETFLIX.COM", Amount: 15, Type: model.TypeExpense,
	})
	if err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}
	if err := e.SetBudget(ctx, "cat-entertainment", 100); err != nil {
		t.Fatalf("SetBudget() error = %v", err)
	}

	if err := e.DeleteCategory(ctx, "cat-entertainment"); err != nil {
		t.Fatalf("DeleteCategory() error = %v", err)
	}

	// Transaction reassigned to the Other sentinel with a fresh snapshot.
	moved, err := e.GetTransaction(ctx, txn.ID)
	if err != nil {
		t.Fatalf("GetTransaction() error = %v", err)
	}
	if moved.Category.ID != model.CategoryIDOther || moved.Category.Name != "Other" {
		t.Errorf("transaction category = %+v, want Other", moved.Category)
	}

	// Budget removed.
	budgets, err := store.GetBudgets(ctx)
	if err != nil {
		t.Fatalf("GetBudgets() error = %v", err)
	}
	if len(budgets) != 0 {
		t.Errorf("budgets after cascade = %+v, want none", budgets)
	}

	// Category row gone.
	cat, err := store.GetCategoryByID(ctx, "cat-entertainment")
	if err != nil {
		t.Fatalf("GetCategoryByID() error = %v", err)
	}
	if cat != nil {
		t.Error("category row still present after delete")
	}
}

func TestDeleteCategory_Sentinels(t *testing.T) {
	e, store := newTestEngine(t, &mockClassifier{})
	ctx := context.Background()

	// Deleting Other is a silent no-op.
	if err := e.DeleteCategory(ctx, model.CategoryIDOther); err != nil {
		t.Errorf("DeleteCategory(Other) error = %v, want nil", err)
	}
	other, err := store.GetCategoryByID(ctx, model.CategoryIDOther)
	if err != nil {
		t.Fatalf("GetCategoryByID() error = %v", err)
	}
	if other == nil {
		t.Error("Other sentinel was deleted")
	}

	// Income cannot be deleted.
	if err := e.DeleteCategory(ctx, model.CategoryIDIncome); err == nil {
		t.Error("DeleteCategory(Income) should fail")
	}
}

func TestUpdateCategory_DoesNotRewriteSnapshots(t *testing.T) {
	classifier := &mockClassifier{
		suggestion: model.Suggestion{Category: "Groceries", Confidence: 0.9},
	}
	e, _ := newTestEngine(t, classifier)
	ctx := context.Background()

	txn, err := e.CreateTransaction(ctx, model.Draft{
		Description: "SAFEWAY", Amount: 30, Type: model.TypeExpense,
	})
	if err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}

	if err := e.UpdateCategory(ctx, model.Category{
		ID: "cat-groceries", Name: "Food", Color: "#111111",
	}); err != nil {
		t.Fatalf("UpdateCategory() error = %v", err)
	}

	// Existing snapshot keeps the name it was committed with.
	stored, err := e.GetTransaction(ctx, txn.ID)
	if err != nil {
		t.Fatalf("GetTransaction() error = %v", err)
	}
	if stored.Category.Name != "Groceries" {
		t.Errorf("snapshot name = %q, want Groceries", stored.Category.Name)
	}

	// New transactions pick up the live row.
	classifier.suggestion = model.Suggestion{Category: "Food", Confidence: 0.8}
	fresh, err := e.CreateTransaction(ctx, model.Draft{
		Description: "TRADER JOES", Amount: 20, Type: model.TypeExpense,
	})
	if err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}
	if fresh.Category.Name != "Food" {
		t.Errorf("fresh snapshot name = %q, want Food", fresh.Category.Name)
	}
}

func TestDeleteIncomeSource_Cascade(t *testing.T) {
	e, store := newTestEngine(t, &mockClassifier{})
	ctx := context.Background()

	txn, err := e.CreateTransaction(ctx, model.Draft{
		Description: "August payroll", Amount: 4200,
		Type: model.TypeIncome, SourceID: "src-salary",
	})
	if err != nil {
		t.Fatalf("CreateTransaction() error = %v", err)
	}

	if err := e.DeleteIncomeSource(ctx, "src-salary"); err != nil {
		t.Fatalf("DeleteIncomeSource() error = %v", err)
	}

	moved, err := e.GetTransaction(ctx, txn.ID)
	if err != nil {
		t.Fatalf("GetTransaction() error = %v", err)
	}
	if moved.Source == nil || moved.Source.ID != model.SourceIDOther {
		t.Errorf("transaction source = %+v, want Other sentinel", moved.Source)
	}

	src, err := store.GetIncomeSourceByID(ctx, "src-salary")
	if err != nil {
		t.Fatalf("GetIncomeSourceByID() error = %v", err)
	}
	if src != nil {
		t.Error("income source row still present after delete")
	}

	// Sentinel no-op.
	if err := e.DeleteIncomeSource(ctx, model.SourceIDOther); err != nil {
		t.Errorf("DeleteIncomeSource(Other) error = %v, want nil", err)
	}
}

func TestIncomeSourceEdits_UnknownIDErrors(t *testing.T) {
	e, _ := newTestEngine(t, &mockClassifier{})
	ctx := context.Background()

	// Unknown ids never silently act on the Other sentinel here; only the
	// transaction paths resolve referential gaps.
	err := e.UpdateIncomeSource(ctx, model.IncomeSource{ID: "src-missing", Name: "Ghost"})
	if !errors.Is(err, common.ErrNotFound) {
		t.Errorf("UpdateIncomeSource() error = %v, want ErrNotFound", err)
	}

	if err := e.DeleteIncomeSource(ctx, "src-missing"); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("DeleteIncomeSource() error = %v, want ErrNotFound", err)
	}
}
