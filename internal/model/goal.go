package model

import "time"

// Goal represents a savings goal. CurrentAmount only grows, by non-negative
// contributions clamped so it never exceeds TargetAmount.
type Goal struct {
	Deadline      time.Time
	ID            string
	Name          string
	TargetAmount  float64
	CurrentAmount float64
}

// Budget is a monthly spending cap for a single category. At most one
// budget exists per category id; a non-positive amount deletes the entry.
type Budget struct {
	CategoryID string
	Amount     float64
}
