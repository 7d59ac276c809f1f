package models

import "time"

// Expense is a logged cost. Category is free text; SuggestedCategories feeds
// the entry form but is never enforced.
type Expense struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Category  string    `gorm:"not null;index" json:"category"`
	Amount    float64   `gorm:"not null" json:"amount"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"-"`
}

func SuggestedCategories() []string {
	return []string{"Rent", "Utilities", "Inventory", "Data", "Transport", "Marketing", "Salaries", "Other"}
}
