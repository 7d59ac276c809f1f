package models

import "time"

// SalesSource is the marketing channel an order came through.
type SalesSource string

const (
	SourceWhatsApp  SalesSource = "WhatsApp"
	SourceInstagram SalesSource = "Instagram"
	SourceFacebook  SalesSource = "Facebook"
	SourceTikTok    SalesSource = "TikTok"
	SourceWalkIn    SalesSource = "Walk-in"
	SourcePhoneCall SalesSource = "Phone Call"
	SourceOther     SalesSource = "Other"
)

// AllSources is the fixed channel set in display order. Revenue breakdowns
// report one row per entry here even when a channel has no orders yet.
func AllSources() []SalesSource {
	return []SalesSource{
		SourceWhatsApp, SourceInstagram, SourceFacebook, SourceTikTok,
		SourceWalkIn, SourcePhoneCall, SourceOther,
	}
}

func ValidSource(s SalesSource) bool {
	for _, known := range AllSources() {
		if s == known {
			return true
		}
	}
	return false
}

type OrderStatus string

const (
	StatusPaid    OrderStatus = "Paid"
	StatusPending OrderStatus = "Pending"
)

type PaymentMethod string

const (
	PayCash     PaymentMethod = "Cash"
	PayWallet   PaymentMethod = "Wallet"
	PayTransfer PaymentMethod = "Transfer"
)

func ValidPayment(m PaymentMethod) bool {
	return m == PayCash || m == PayWallet || m == PayTransfer
}

// Order is a recorded sale. Total always equals the line-item sum when items
// are present; an order without items is a quick sale whose total was entered
// directly. Orders are immutable once created (status changes excepted).
type Order struct {
	ID            string        `gorm:"primaryKey" json:"id"`
	CustomerID    string        `gorm:"index" json:"customer_id,omitempty"`
	CustomerName  string        `gorm:"not null;index" json:"customer_name"`
	Items         []OrderItem   `gorm:"foreignKey:OrderID" json:"items"`
	Total         float64       `gorm:"not null" json:"total"`
	Date          time.Time     `gorm:"not null;index" json:"date"`
	Status        OrderStatus   `gorm:"not null;default:'Paid'" json:"status"`
	Source        SalesSource   `gorm:"not null;index" json:"source"`
	PaymentMethod PaymentMethod `gorm:"not null" json:"payment_method"`
	Note          string        `json:"note,omitempty"`
	CreatedAt     time.Time     `json:"-"`
}

// QuickSale reports whether the order was recorded as a flat amount without
// itemized lines.
func (o *Order) QuickSale() bool { return len(o.Items) == 0 }

// OrderItem is one line of an order. Price is a snapshot of the product's
// selling price at sale time; later product edits never touch it. ProductID
// links back to inventory when the line was picked from a known product.
type OrderItem struct {
	ID        string  `gorm:"primaryKey" json:"id"`
	OrderID   string  `gorm:"not null;index" json:"-"`
	ProductID string  `gorm:"index" json:"product_id,omitempty"`
	Name      string  `gorm:"not null" json:"name"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
	Variant   string  `json:"variant,omitempty"`
}

func (it *OrderItem) LineTotal() float64 { return float64(it.Quantity) * it.Price }
