package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/booklyhq/bookly/httpx"
	"github.com/booklyhq/bookly/internal/export"
	"github.com/booklyhq/bookly/internal/models"
	"github.com/booklyhq/bookly/internal/services"
	"github.com/booklyhq/bookly/internal/store"
)

type OrderHandler struct {
	Store   *store.Store
	Orders  *services.OrderService
	Capture *services.CaptureService
}

func NewOrderHandler(st *store.Store, orders *services.OrderService, capture *services.CaptureService) *OrderHandler {
	return &OrderHandler{Store: st, Orders: orders, Capture: capture}
}

// writeDraftError maps a rejected draft to the standard validation payload.
func writeDraftError(w http.ResponseWriter, err error) bool {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", verr.Violations)
		return true
	}
	return false
}

// List: GET /orders?source=WhatsApp
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Store.Load()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_orders", nil)
		return
	}
	orders := snap.Orders
	if src := strings.TrimSpace(r.URL.Query().Get("source")); src != "" {
		filtered := make([]models.Order, 0, len(orders))
		for _, o := range orders {
			if string(o.Source) == src {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": orders, "total": len(orders)})
}

// Create: POST /orders – itemized or flat-amount draft.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in services.DraftInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	order, err := h.Orders.BuildOrder(in)
	if err != nil {
		if writeDraftError(w, err) {
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_build_order", nil)
		return
	}
	if err := h.Store.CreateOrder(&order); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_order", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}

// Quick: POST /orders/quick – flat amount, optional name and payment.
func (h *OrderHandler) Quick(w http.ResponseWriter, r *http.Request) {
	type quickReq struct {
		Amount        float64 `json:"amount"`
		CustomerName  string  `json:"customer_name"`
		Source        string  `json:"source"`
		PaymentMethod string  `json:"payment_method"`
		Note          string  `json:"note"`
	}
	var req quickReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	order, err := h.Orders.BuildOrder(services.DraftInput{
		CustomerName:  req.CustomerName,
		FlatAmount:    req.Amount,
		Source:        req.Source,
		PaymentMethod: req.PaymentMethod,
		Note:          req.Note,
	})
	if err != nil {
		if writeDraftError(w, err) {
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_build_order", nil)
		return
	}
	if err := h.Store.CreateOrder(&order); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_order", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}

// CaptureText: POST /orders/capture – free text in, recorded order out.
func (h *OrderHandler) CaptureText(w http.ResponseWriter, r *http.Request) {
	type captureReq struct {
		Text string `json:"text"`
	}
	var req captureReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"text": "required"})
		return
	}
	order, err := h.Capture.Capture(r.Context(), req.Text)
	if err != nil {
		if writeDraftError(w, err) {
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_capture_order", nil)
		return
	}
	if err := h.Store.CreateOrder(&order); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_order", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, order)
}

// Receipt: GET /orders/receipt?id=... – plain-text printable receipt.
func (h *OrderHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	order, err := h.Store.GetOrder(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_order", nil)
		return
	}
	profile, err := h.Store.Profile()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_profile", nil)
		return
	}
	httpx.Text(w, http.StatusOK, export.Receipt(profile, order))
}
