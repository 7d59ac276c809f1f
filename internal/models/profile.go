package models

import "time"

// BusinessProfile is the single settings row (one business per device).
type BusinessProfile struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	Name         string    `json:"name"`
	Currency     string    `gorm:"not null;default:'NGN'" json:"currency"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	FooterNote   string    `json:"footer_note"`
	VIPThreshold int       `gorm:"not null;default:5" json:"vip_threshold"`
	UpdatedAt    time.Time `json:"-"`
}

// DefaultProfile seeds a fresh install.
func DefaultProfile() BusinessProfile {
	return BusinessProfile{
		Name:         "My Business",
		Currency:     "NGN",
		FooterNote:   "Thank you for shopping with us!",
		VIPThreshold: 5,
	}
}
