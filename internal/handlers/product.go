package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/booklyhq/bookly/httpx"
	"github.com/booklyhq/bookly/internal/models"
	"github.com/booklyhq/bookly/internal/report"
	"github.com/booklyhq/bookly/internal/store"
	"github.com/booklyhq/bookly/validation"
)

type ProductHandler struct {
	Store *store.Store
}

func NewProductHandler(st *store.Store) *ProductHandler { return &ProductHandler{Store: st} }

type productReq struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	CostPrice         float64 `json:"cost_price"`
	SellingPrice      float64 `json:"selling_price"`
	Stock             int     `json:"stock"`
	LowStockThreshold int     `json:"low_stock_threshold"`
}

func (req *productReq) validate() validation.Violations {
	v := validation.Violations{}
	req.Name = strings.TrimSpace(req.Name)
	validation.Required("name", req.Name, v)
	validation.NonNegativeFloat("cost_price", req.CostPrice, v)
	validation.NonNegativeFloat("selling_price", req.SellingPrice, v)
	validation.MinInt("stock", req.Stock, 0, v)
	validation.MinInt("low_stock_threshold", req.LowStockThreshold, 0, v)
	return v
}

// List: GET /products – inventory with low-stock flags.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Store.Load()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_products", nil)
		return
	}
	low := make([]string, 0)
	for _, p := range snap.Products {
		if p.LowStock() {
			low = append(low, p.ID)
		}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": snap.Products, "total": len(snap.Products), "low_stock": low})
}

// Create: POST /products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if v := req.validate(); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	p := models.Product{
		Name:              req.Name,
		CostPrice:         req.CostPrice,
		SellingPrice:      req.SellingPrice,
		Stock:             req.Stock,
		LowStockThreshold: req.LowStockThreshold,
	}
	if err := h.Store.SaveProduct(&p); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_product", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, p)
}

// Update: POST /products/update – full replacement by id.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if v := req.validate(); !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	p := models.Product{
		ID:                req.ID,
		Name:              req.Name,
		CostPrice:         req.CostPrice,
		SellingPrice:      req.SellingPrice,
		Stock:             req.Stock,
		LowStockThreshold: req.LowStockThreshold,
	}
	if err := h.Store.SaveProduct(&p); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_update_product", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

// Delete: POST /products/delete?id=...
// Past order lines keep their snapshot of the name and price; only the
// inventory entry goes away.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if err := h.Store.DeleteProduct(id); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_delete_product", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// AddStock: POST /products/stock – {"id": "...", "quantity": 5}
func (h *ProductHandler) AddStock(w http.ResponseWriter, r *http.Request) {
	type stockReq struct {
		ID       string `json:"id"`
		Quantity int    `json:"quantity"`
	}
	var req stockReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.ID == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	if req.Quantity < 1 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"quantity": "must be at least 1"})
		return
	}
	p, err := h.Store.AddStock(req.ID, req.Quantity)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_add_stock", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

// Valuation: GET /products/valuation – stock valued at cost and at retail.
func (h *ProductHandler) Valuation(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Store.Load()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_state", nil)
		return
	}
	cost, retail := report.InventoryValuation(snap.Products)
	httpx.JSON(w, http.StatusOK, map[string]any{
		"cost_value":   cost,
		"retail_value": retail,
		"currency":     snap.Profile.Currency,
	})
}
