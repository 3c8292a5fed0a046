package storage

import (
	"context"
	"fmt"
	"testing"

	"github.com/pennywise-app/pennywise/internal/model"
)

func TestUpsertCorrection_RefreshesRecency(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	seed := []model.Correction{
		{Description: "STARBUCKS #1234", CategoryID: "cat-groceries"},
		{Description: "SHELL OIL", CategoryID: "cat-transport"},
		{Description: "NETFLIX.COM", CategoryID: "cat-entertainment"},
	}
	for _, c := range seed {
		if err := store.UpsertCorrection(ctx, c); err != nil {
			t.Fatalf("UpsertCorrection() error = %v", err)
		}
	}

	// Re-correcting the oldest description moves it to the front and
	// replaces its category.
	if err := store.UpsertCorrection(ctx, model.Correction{
		Description: "STARBUCKS #1234",
		CategoryID:  "cat-entertainment",
	}); err != nil {
		t.Fatalf("UpsertCorrection() error = %v", err)
	}

	got, err := store.RecentCorrections(ctx, 0)
	if err != nil {
		t.Fatalf("RecentCorrections() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ledger has %d rows, want 3 (one per unique description)", len(got))
	}
	if got[0].Description != "STARBUCKS #1234" {
		t.Errorf("most recent = %q, want STARBUCKS #1234", got[0].Description)
	}
	if got[0].CategoryID != "cat-entertainment" {
		t.Errorf("re-corrected category = %q, want cat-entertainment", got[0].CategoryID)
	}
}

func TestUpsertCorrection_ExactMatchOnly(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	// Descriptions differing only by case are distinct entries.
	if err := store.UpsertCorrection(ctx, model.Correction{
		Description: "Whole Foods", CategoryID: "cat-groceries",
	}); err != nil {
		t.Fatalf("UpsertCorrection() error = %v", err)
	}
	if err := store.UpsertCorrection(ctx, model.Correction{
		Description: "WHOLE FOODS", CategoryID: "cat-shopping",
	}); err != nil {
		t.Fatalf("UpsertCorrection() error = %v", err)
	}

	got, err := store.RecentCorrections(ctx, 0)
	if err != nil {
		t.Fatalf("RecentCorrections() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("ledger has %d rows, want 2", len(got))
	}
}

func TestRecentCorrections_Limit(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		err := store.UpsertCorrection(ctx, model.Correction{
			Description: fmt.Sprintf("MERCHANT %02d", i),
			CategoryID:  "cat-other",
		})
		if err != nil {
			t.Fatalf("UpsertCorrection() error = %v", err)
		}
	}

	got, err := store.RecentCorrections(ctx, 10)
	if err != nil {
		t.Fatalf("RecentCorrections() error = %v", err)
	}
	if len(got) != 10 {
		t.Fatalf("RecentCorrections(10) returned %d rows", len(got))
	}
	if got[0].Description != "MERCHANT 14" {
		t.Errorf("newest = %q, want MERCHANT 14", got[0].Description)
	}
	if got[9].Description != "MERCHANT 05" {
		t.Errorf("oldest in window = %q, want MERCHANT 05", got[9].Description)
	}
}

func TestUpsertCorrection_Validation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.UpsertCorrection(ctx, model.Correction{CategoryID: "cat-other"}); err == nil {
		t.Error("empty description should fail")
	}
	if err := store.UpsertCorrection(ctx, model.Correction{Description: "X"}); err == nil {
		t.Error("empty category id should fail")
	}
}
