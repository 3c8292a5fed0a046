package model

import "time"

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	// TypeIncome marks a transaction as income.
	TypeIncome TransactionType = "income"
	// TypeExpense marks a transaction as an expense.
	TypeExpense TransactionType = "expense"
)

// Transaction represents a single committed financial transaction.
//
// Category is a snapshot copied at assignment time, not a live foreign key.
// Source is present iff Type is income. AIConfidence is present iff the
// transaction is an expense that was categorized by the classifier and has
// not been manually edited since; nil means "not machine-classified".
type Transaction struct {
	Date         time.Time
	ID           string
	Description  string
	Type         TransactionType
	Category     Category
	Source       *IncomeSource
	AIConfidence *float64
	Amount       float64
}

// Draft holds the user-supplied fields of a transaction before the
// lifecycle manager assigns identity and category.
type Draft struct {
	Date        time.Time
	Description string
	Type        TransactionType
	SourceID    string
	Amount      float64
}
