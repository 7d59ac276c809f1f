// Package extract turns free-text order descriptions ("2 Ankara heels to
// Lekki, 36000 transfer") into structured order drafts. Implementations are
// suggestion generators, never sources of truth: everything they return goes
// back through the order builder's validation and re-totaling.
package extract

import "context"

// Draft is the untrusted output of an extraction attempt.
type Draft struct {
	CustomerName string      `json:"customer_name"`
	Items        []DraftLine `json:"items"`
	TotalAmount  float64     `json:"total_amount"`
	DeliveryFee  float64     `json:"delivery_fee"`
	Source       string      `json:"source"`
}

// DraftLine is one proposed order line.
type DraftLine struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Extractor is the capability interface for the order-from-text service.
// Implementations must respect ctx deadlines and return an error rather than
// block or panic; callers treat any failure as "fall back to manual entry".
// One request is in flight at a time — no internal concurrency required.
type Extractor interface {
	Extract(ctx context.Context, text string) (*Draft, error)
}
