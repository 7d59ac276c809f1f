package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/booklyhq/bookly/internal/models"
	"github.com/booklyhq/bookly/validation"
)

// GuestName is the sentinel customer for walk-in sales with no name given.
const GuestName = "Guest"

// DraftItem is one proposed line in an order draft. ProductID, when known,
// links the line back to inventory so cost of goods can be attributed later.
type DraftItem struct {
	ProductID string  `json:"product_id,omitempty"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Variant   string  `json:"variant,omitempty"`
}

// DraftInput is an unvalidated order candidate, from manual entry or from the
// extraction service. Total, even if supplied by the client, is ignored: the
// builder always computes the authoritative amount itself.
type DraftInput struct {
	CustomerName  string      `json:"customer_name"`
	Items         []DraftItem `json:"items"`
	FlatAmount    float64     `json:"flat_amount"`
	Total         float64     `json:"total"`
	Source        string      `json:"source"`
	PaymentMethod string      `json:"payment_method"`
	Status        string      `json:"status"`
	Note          string      `json:"note"`
}

// ValidationError carries field-level violations for a rejected draft. The
// caller is expected to re-prompt; a draft is never silently coerced into a
// zero-value order.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid order draft: %d violation(s)", len(e.Violations))
}

// OrderService builds well-formed orders from untrusted draft input.
type OrderService struct {
	DefaultSource  models.SalesSource
	DefaultPayment models.PaymentMethod

	now func() time.Time
}

func NewOrderService(defaultSource models.SalesSource, defaultPayment models.PaymentMethod) *OrderService {
	if !models.ValidSource(defaultSource) {
		defaultSource = models.SourceWalkIn
	}
	if !models.ValidPayment(defaultPayment) {
		defaultPayment = models.PayCash
	}
	return &OrderService{DefaultSource: defaultSource, DefaultPayment: defaultPayment, now: time.Now}
}

// BuildOrder validates and normalizes a draft into a well-formed Order with a
// fresh id and timestamp. Two paths: line items (total = sum of lines), or a
// flat amount with an empty item list (quick sale). Rejects drafts that would
// produce a zero-value order.
func (s *OrderService) BuildOrder(in DraftInput) (models.Order, error) {
	v := validation.Violations{}
	if len(in.Items) == 0 {
		validation.PositiveFloat("flat_amount", in.FlatAmount, v)
	} else {
		for i, it := range in.Items {
			field := fmt.Sprintf("items[%d]", i)
			validation.Required(field+".name", it.Name, v)
			validation.MinInt(field+".quantity", it.Quantity, 1, v)
			validation.NonNegativeFloat(field+".price", it.Price, v)
		}
	}
	if !v.Empty() {
		return models.Order{}, &ValidationError{Violations: v}
	}

	name := strings.TrimSpace(in.CustomerName)
	if name == "" {
		name = GuestName
	}
	order := models.Order{
		ID:            uuid.NewString(),
		CustomerName:  name,
		Date:          s.now(),
		Status:        models.StatusPaid,
		Source:        s.DefaultSource,
		PaymentMethod: s.DefaultPayment,
		Note:          strings.TrimSpace(in.Note),
	}
	if models.OrderStatus(in.Status) == models.StatusPending {
		order.Status = models.StatusPending
	}
	if src := models.SalesSource(in.Source); models.ValidSource(src) {
		order.Source = src
	}
	if pm := models.PaymentMethod(in.PaymentMethod); models.ValidPayment(pm) {
		order.PaymentMethod = pm
	}

	if len(in.Items) == 0 {
		// Quick sale: the flat amount entered is the total.
		order.Total = in.FlatAmount
		return order, nil
	}

	items := make([]models.OrderItem, 0, len(in.Items))
	var total float64
	for _, it := range in.Items {
		item := models.OrderItem{
			ID:        uuid.NewString(),
			OrderID:   order.ID,
			ProductID: it.ProductID,
			Name:      strings.TrimSpace(it.Name),
			Quantity:  it.Quantity,
			Price:     it.Price,
			Variant:   strings.TrimSpace(it.Variant),
		}
		total += item.LineTotal()
		items = append(items, item)
	}
	order.Items = items
	order.Total = total
	return order, nil
}
