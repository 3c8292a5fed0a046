// Package model defines the core domain models used throughout the application.
package model

// Well-known identifiers assigned at seed time. Sentinel categories are
// always resolved by ID, never by name, so a user renaming an ordinary
// category to "Other" cannot hijack fallback behavior.
const (
	// CategoryIDIncome is the system-managed category assigned to every
	// income transaction. The classifier never resolves to it.
	CategoryIDIncome = "cat-income"
	// CategoryIDOther is the fallback target for classification failures
	// and category-delete cascades. It can never be deleted.
	CategoryIDOther = "cat-other"
	// SourceIDOther is the fallback income source for missing ids and
	// source-delete cascades. It can never be deleted.
	SourceIDOther = "src-other"
)

// Category represents an expense category. Transactions embed a value copy
// of the category at assignment time, so renaming a category does not
// relabel historical transactions.
type Category struct {
	ID        string
	Name      string
	Color     string
	IsDefault bool
}

// IncomeSource represents where income came from. It is structurally
// identical to Category but lives in an independent namespace.
type IncomeSource struct {
	ID        string
	Name      string
	Color     string
	IsDefault bool
}
