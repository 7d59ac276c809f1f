package models

import "time"

type Tier string

const (
	TierNew       Tier = "New"
	TierReturning Tier = "Returning"
	TierVIP       Tier = "VIP"
)

// Customer is a cached projection of per-name order history. Tier, totals and
// counts are recomputed from the order log on every sync; only the contact
// fields (phone, email) are independently editable. This table is never the
// source of truth for anything derived.
type Customer struct {
	ID            string     `gorm:"primaryKey" json:"id"`
	Name          string     `gorm:"not null;uniqueIndex" json:"name"`
	Phone         string     `json:"phone,omitempty"`
	Email         string     `json:"email,omitempty"`
	Tier          Tier       `gorm:"not null;default:'New'" json:"tier"`
	TotalSpent    float64    `gorm:"not null" json:"total_spent"`
	OrderCount    int        `gorm:"not null" json:"order_count"`
	LastOrderDate *time.Time `json:"last_order_date,omitempty"`
	UpdatedAt     time.Time  `json:"-"`
}
