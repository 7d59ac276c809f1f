package models

import "time"

// Product is an inventory row. The reporting core only reads these; all
// edits come through the inventory endpoints.
type Product struct {
	ID                string    `gorm:"primaryKey" json:"id"`
	Name              string    `gorm:"not null;index" json:"name"`
	CostPrice         float64   `gorm:"not null" json:"cost_price"`
	SellingPrice      float64   `gorm:"not null" json:"selling_price"`
	Stock             int       `gorm:"not null;default:0" json:"stock"`
	LowStockThreshold int       `gorm:"not null;default:5" json:"low_stock_threshold"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// LowStock reports whether stock is at or below the alert threshold.
func (p *Product) LowStock() bool { return p.Stock <= p.LowStockThreshold }

// Margin returns selling price minus cost price for one unit.
func (p *Product) Margin() float64 { return p.SellingPrice - p.CostPrice }
