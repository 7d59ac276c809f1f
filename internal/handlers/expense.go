package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/booklyhq/bookly/httpx"
	"github.com/booklyhq/bookly/internal/models"
	"github.com/booklyhq/bookly/internal/store"
	"github.com/booklyhq/bookly/validation"
)

type ExpenseHandler struct {
	Store *store.Store
}

func NewExpenseHandler(st *store.Store) *ExpenseHandler { return &ExpenseHandler{Store: st} }

// List: GET /expenses – entries plus the suggested category list for forms.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Store.Load()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_expenses", nil)
		return
	}
	var total float64
	for _, e := range snap.Expenses {
		total += e.Amount
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"items":      snap.Expenses,
		"total":      total,
		"categories": models.SuggestedCategories(),
	})
}

// Create: POST /expenses
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	type expenseReq struct {
		Category string  `json:"category"`
		Amount   float64 `json:"amount"`
		Date     string  `json:"date"`
		Note     string  `json:"note"`
	}
	var req expenseReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	req.Category = strings.TrimSpace(req.Category)
	validation.Required("category", req.Category, v)
	validation.PositiveFloat("amount", req.Amount, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	e := models.Expense{
		Category: req.Category,
		Amount:   req.Amount,
		Note:     strings.TrimSpace(req.Note),
	}
	// Free-form categories are allowed alongside the suggested list.
	if req.Date != "" {
		d, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"date": "must be YYYY-MM-DD"})
			return
		}
		e.Date = d
	}
	if err := h.Store.CreateExpense(&e); err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_create_expense", nil)
		return
	}
	httpx.JSON(w, http.StatusCreated, e)
}
