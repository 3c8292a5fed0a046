package model

// Correction records a user override of a machine-suggested category. The
// ledger holds at most one correction per distinct description; a newer
// write for the same description replaces the older one and refreshes its
// recency.
type Correction struct {
	Description string
	CategoryID  string
}

// CorrectionExample is a correction resolved against the current category
// collection, ready to be embedded in a classification prompt.
type CorrectionExample struct {
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Suggestion is the classifier's answer for an expense description.
type Suggestion struct {
	Category   string
	Confidence float64
}
