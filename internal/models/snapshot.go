package models

// Snapshot is the full persisted state handed to the reporting core. The core
// never mutates it; everything derived comes back as new values for the
// caller to render or persist.
type Snapshot struct {
	Profile   BusinessProfile `json:"profile"`
	Orders    []Order         `json:"orders"`
	Products  []Product       `json:"products"`
	Customers []Customer      `json:"customers"`
	Expenses  []Expense       `json:"expenses"`
}
