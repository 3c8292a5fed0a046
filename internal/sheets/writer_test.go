package sheets

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/pennywise-app/pennywise/internal/model"
	"github.com/pennywise-app/pennywise/internal/report"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "no auth",
			mutate:  func(_ *Config) {},
			wantErr: true,
		},
		{
			name: "oauth only",
			mutate: func(c *Config) {
				c.ClientID = "id"
				c.ClientSecret = "secret"
				c.RefreshToken = "token"
			},
		},
		{
			name: "service account only",
			mutate: func(c *Config) {
				c.ServiceAccountPath = "/tmp/sa.json"
			},
		},
		{
			name: "both auth methods",
			mutate: func(c *Config) {
				c.ClientID = "id"
				c.ClientSecret = "secret"
				c.RefreshToken = "token"
				c.ServiceAccountPath = "/tmp/sa.json"
			},
			wantErr: true,
		},
		{
			name: "bad batch size",
			mutate: func(c *Config) {
				c.ServiceAccountPath = "/tmp/sa.json"
				c.BatchSize = 0
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPrepareReportData(t *testing.T) {
	conf := 0.9
	transactions := []model.Transaction{
		{
			ID:          "txn-1",
			Date:        time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
			Description: "WHOLE FOODS",
			Amount:      54.20,
			Type:        model.TypeExpense,
			Category:    model.Category{ID: "cat-groceries", Name: "Groceries"},
			AIConfidence: &conf,
		},
		{
			ID:          "txn-2",
			Date:        time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			Description: "Payroll",
			Amount:      4200,
			Type:        model.TypeIncome,
			Category:    model.Category{ID: model.CategoryIDIncome, Name: "Income"},
			Source:      &model.IncomeSource{ID: "src-salary", Name: "Salary"},
		},
	}

	summary := &report.Summary{
		From:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		To:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Income:   decimal.NewFromInt(4200),
		Expenses: decimal.NewFromFloat(54.20),
		Net:      decimal.NewFromFloat(4145.80),
		ByCategory: []report.CategoryTotal{
			{CategoryID: "cat-groceries", CategoryName: "Groceries", Total: decimal.NewFromFloat(54.20), Count: 1},
		},
		Budgets: []report.BudgetStatus{
			{CategoryID: "cat-groceries", CategoryName: "Groceries",
				Budget: decimal.NewFromInt(400), Spent: decimal.NewFromFloat(54.20),
				Remaining: decimal.NewFromFloat(345.80)},
		},
	}

	w := &Writer{config: DefaultConfig()}
	values := w.prepareReportData(transactions, summary)

	assert.Equal(t, "Pennywise Report", values[0][0])

	// The transaction detail rows come last, in the order given.
	last := values[len(values)-2]
	assert.Equal(t, "WHOLE FOODS", last[1])
	assert.Equal(t, "expense", last[2])
	assert.Equal(t, "0.90", last[6])

	income := values[len(values)-1]
	assert.Equal(t, "Payroll", income[1])
	assert.Equal(t, "Salary", income[5])
	assert.Equal(t, "", income[6])
}
