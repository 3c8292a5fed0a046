package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pennywise-app/pennywise/internal/common"
)

func TestContributeToGoal_ClampsAtTarget(t *testing.T) {
	e, _ := newTestEngine(t, &mockClassifier{})
	ctx := context.Background()

	goal, err := e.CreateGoal(ctx, "Vacation", 1000, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("CreateGoal() error = %v", err)
	}

	updated, err := e.ContributeToGoal(ctx, goal.ID, 400)
	if err != nil {
		t.Fatalf("ContributeToGoal() error = %v", err)
	}
	if updated.CurrentAmount != 400 {
		t.Errorf("CurrentAmount = %f, want 400", updated.CurrentAmount)
	}

	// Overshooting clamps to the target.
	updated, err = e.ContributeToGoal(ctx, goal.ID, 5000)
	if err != nil {
		t.Fatalf("ContributeToGoal() error = %v", err)
	}
	if updated.CurrentAmount != 1000 {
		t.Errorf("CurrentAmount = %f, want clamped 1000", updated.CurrentAmount)
	}

	if _, err := e.ContributeToGoal(ctx, goal.ID, 0); err == nil {
		t.Error("non-positive contribution should fail")
	}
	if _, err := e.ContributeToGoal(ctx, "goal-missing", 10); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("missing goal error = %v, want ErrNotFound", err)
	}
}

func TestSetBudget(t *testing.T) {
	e, store := newTestEngine(t, &mockClassifier{})
	ctx := context.Background()

	if err := e.SetBudget(ctx, "cat-groceries", 400); err != nil {
		t.Fatalf("SetBudget() error = %v", err)
	}

	budgets, err := store.GetBudgets(ctx)
	if err != nil {
		t.Fatalf("GetBudgets() error = %v", err)
	}
	if len(budgets) != 1 || budgets[0].Amount != 400 {
		t.Errorf("budgets = %+v", budgets)
	}

	// Setting a non-positive amount clears the budget.
	if err := e.SetBudget(ctx, "cat-groceries", 0); err != nil {
		t.Fatalf("SetBudget(0) error = %v", err)
	}
	budgets, err = store.GetBudgets(ctx)
	if err != nil {
		t.Fatalf("GetBudgets() error = %v", err)
	}
	if len(budgets) != 0 {
		t.Errorf("budgets after clear = %+v", budgets)
	}

	// Unknown category is rejected.
	if err := e.SetBudget(ctx, "cat-missing", 100); !errors.Is(err, common.ErrNotFound) {
		t.Errorf("SetBudget(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestInsights(t *testing.T) {
	classifier := &mockClassifier{insights: []string{"You spend a lot on coffee."}}
	e, _ := newTestEngine(t, classifier)

	got, err := e.Insights(context.Background())
	if err != nil {
		t.Fatalf("Insights() error = %v", err)
	}
	if len(got) != 1 || got[0] != "You spend a lot on coffee." {
		t.Errorf("Insights() = %v", got)
	}
}
