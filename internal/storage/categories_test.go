package storage

import (
	"context"
	"testing"

	"github.com/pennywise-app/pennywise/internal/model"
)

func TestCategories_CRUD(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	custom := model.Category{ID: "cat-pets", Name: "Pets", Color: "#AABBCC"}
	if err := store.CreateCategory(ctx, custom); err != nil {
		t.Fatalf("CreateCategory() error = %v", err)
	}

	got, err := store.GetCategoryByID(ctx, custom.ID)
	if err != nil {
		t.Fatalf("GetCategoryByID() error = %v", err)
	}
	if got == nil || got.Name != "Pets" {
		t.Fatalf("GetCategoryByID() = %+v, want Pets", got)
	}
	if got.IsDefault {
		t.Error("user-created category should not be marked default")
	}

	custom.Name = "Pet Care"
	custom.Color = "#CCBBAA"
	if err := store.UpdateCategory(ctx, custom); err != nil {
		t.Fatalf("UpdateCategory() error = %v", err)
	}
	got, err = store.GetCategoryByID(ctx, custom.ID)
	if err != nil {
		t.Fatalf("GetCategoryByID() error = %v", err)
	}
	if got.Name != "Pet Care" || got.Color != "#CCBBAA" {
		t.Errorf("after update got %+v", got)
	}

	if err := store.DeleteCategory(ctx, custom.ID); err != nil {
		t.Fatalf("DeleteCategory() error = %v", err)
	}
	got, err = store.GetCategoryByID(ctx, custom.ID)
	if err != nil {
		t.Fatalf("GetCategoryByID() error = %v", err)
	}
	if got != nil {
		t.Error("deleted category still present")
	}
}

func TestGetCategoryByName_CaseInsensitive(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	tests := []struct {
		name   string
		lookup string
		wantID string
	}{
		{"exact casing", "Groceries", "cat-groceries"},
		{"upper casing", "GROCERIES", "cat-groceries"},
		{"lower casing", "groceries", "cat-groceries"},
		{"mixed casing", "gRoCeRiEs", "cat-groceries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.GetCategoryByName(ctx, tt.lookup)
			if err != nil {
				t.Fatalf("GetCategoryByName() error = %v", err)
			}
			if got == nil {
				t.Fatal("GetCategoryByName() returned nil")
			}
			if got.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", got.ID, tt.wantID)
			}
			// Lookup preserves canonical casing from the stored row.
			if got.Name != "Groceries" {
				t.Errorf("Name = %q, want canonical Groceries", got.Name)
			}
		})
	}

	missing, err := store.GetCategoryByName(ctx, "Nonexistent")
	if err != nil {
		t.Fatalf("GetCategoryByName() error = %v", err)
	}
	if missing != nil {
		t.Errorf("unknown name returned %+v, want nil", missing)
	}
}

func TestIncomeSources_CRUD(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	src := model.IncomeSource{ID: "src-rental", Name: "Rental", Color: "#123456"}
	if err := store.CreateIncomeSource(ctx, src); err != nil {
		t.Fatalf("CreateIncomeSource() error = %v", err)
	}

	got, err := store.GetIncomeSourceByName(ctx, "rental")
	if err != nil {
		t.Fatalf("GetIncomeSourceByName() error = %v", err)
	}
	if got == nil || got.ID != "src-rental" {
		t.Fatalf("GetIncomeSourceByName() = %+v", got)
	}

	src.Name = "Rental Income"
	if err := store.UpdateIncomeSource(ctx, src); err != nil {
		t.Fatalf("UpdateIncomeSource() error = %v", err)
	}

	if err := store.DeleteIncomeSource(ctx, src.ID); err != nil {
		t.Fatalf("DeleteIncomeSource() error = %v", err)
	}
	gone, err := store.GetIncomeSourceByID(ctx, src.ID)
	if err != nil {
		t.Fatalf("GetIncomeSourceByID() error = %v", err)
	}
	if gone != nil {
		t.Error("deleted income source still present")
	}
}
