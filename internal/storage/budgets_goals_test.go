package storage

import (
	"context"
	"testing"
	"time"

	"github.com/pennywise-app/pennywise/internal/model"
)

func TestBudgets_UpsertAndDelete(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.UpsertBudget(ctx, model.Budget{CategoryID: "cat-groceries", Amount: 400}); err != nil {
		t.Fatalf("UpsertBudget() error = %v", err)
	}
	// Second upsert replaces rather than duplicates.
	if err := store.UpsertBudget(ctx, model.Budget{CategoryID: "cat-groceries", Amount: 550}); err != nil {
		t.Fatalf("UpsertBudget() error = %v", err)
	}

	budgets, err := store.GetBudgets(ctx)
	if err != nil {
		t.Fatalf("GetBudgets() error = %v", err)
	}
	if len(budgets) != 1 {
		t.Fatalf("GetBudgets() returned %d rows, want 1", len(budgets))
	}
	if budgets[0].Amount != 550 {
		t.Errorf("Amount = %f, want 550", budgets[0].Amount)
	}

	if err := store.UpsertBudget(ctx, model.Budget{CategoryID: "cat-groceries", Amount: 0}); err == nil {
		t.Error("non-positive budget amount should fail validation")
	}

	if err := store.DeleteBudget(ctx, "cat-groceries"); err != nil {
		t.Fatalf("DeleteBudget() error = %v", err)
	}
	budgets, err = store.GetBudgets(ctx)
	if err != nil {
		t.Fatalf("GetBudgets() error = %v", err)
	}
	if len(budgets) != 0 {
		t.Errorf("GetBudgets() after delete returned %d rows", len(budgets))
	}

	// Deleting a missing budget is a no-op.
	if err := store.DeleteBudget(ctx, "cat-missing"); err != nil {
		t.Errorf("DeleteBudget() on missing row error = %v", err)
	}
}

func TestGoals_CRUD(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	deadline := time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)
	goal := model.Goal{
		ID:            "goal-emergency",
		Name:          "Emergency fund",
		TargetAmount:  5000,
		CurrentAmount: 0,
		Deadline:      deadline,
	}
	if err := store.CreateGoal(ctx, goal); err != nil {
		t.Fatalf("CreateGoal() error = %v", err)
	}

	goal.CurrentAmount = 1200
	if err := store.UpdateGoal(ctx, goal); err != nil {
		t.Fatalf("UpdateGoal() error = %v", err)
	}

	got, err := store.GetGoal(ctx, goal.ID)
	if err != nil {
		t.Fatalf("GetGoal() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetGoal() returned nil")
	}
	if got.CurrentAmount != 1200 {
		t.Errorf("CurrentAmount = %f, want 1200", got.CurrentAmount)
	}
	if !got.Deadline.Equal(deadline) {
		t.Errorf("Deadline = %v, want %v", got.Deadline, deadline)
	}

	earlier := model.Goal{
		ID: "goal-vacation", Name: "Vacation", TargetAmount: 2000,
		Deadline: time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := store.CreateGoal(ctx, earlier); err != nil {
		t.Fatalf("CreateGoal() error = %v", err)
	}

	goals, err := store.GetGoals(ctx)
	if err != nil {
		t.Fatalf("GetGoals() error = %v", err)
	}
	if len(goals) != 2 {
		t.Fatalf("GetGoals() returned %d, want 2", len(goals))
	}
	if goals[0].ID != "goal-vacation" {
		t.Errorf("goals not ordered by deadline: first = %s", goals[0].ID)
	}

	if err := store.DeleteGoal(ctx, goal.ID); err != nil {
		t.Fatalf("DeleteGoal() error = %v", err)
	}
	gone, err := store.GetGoal(ctx, goal.ID)
	if err != nil {
		t.Fatalf("GetGoal() error = %v", err)
	}
	if gone != nil {
		t.Error("deleted goal still present")
	}
}

func TestCreateGoal_Validation(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.CreateGoal(ctx, model.Goal{Name: "No id", TargetAmount: 100}); err == nil {
		t.Error("goal without id should fail")
	}
	if err := store.CreateGoal(ctx, model.Goal{ID: "goal-x", Name: "Bad target"}); err == nil {
		t.Error("goal with non-positive target should fail")
	}
}
