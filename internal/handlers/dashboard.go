package handlers

import (
	"net/http"

	"github.com/booklyhq/bookly/httpx"
	"github.com/booklyhq/bookly/internal/report"
	"github.com/booklyhq/bookly/internal/store"
)

type DashboardHandler struct {
	Store *store.Store
	// PaidOnly restricts revenue and cost of goods to settled orders.
	PaidOnly bool
}

func NewDashboardHandler(st *store.Store, paidOnly bool) *DashboardHandler {
	return &DashboardHandler{Store: st, PaidOnly: paidOnly}
}

const recentOrderCount = 3

// Summary: GET /dashboard – profit figures, channel split and recent orders.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Store.Load()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_state", nil)
		return
	}
	fin := report.ComputeFinancials(snap.Orders, snap.Products, snap.Expenses, report.Options{PaidOnly: h.PaidOnly})
	recent := snap.Orders
	if len(recent) > recentOrderCount {
		recent = recent[:recentOrderCount]
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"financials":    fin,
		"channels":      report.ChannelDistribution(snap.Orders),
		"recent_orders": recent,
		"order_count":   len(snap.Orders),
		"currency":      snap.Profile.Currency,
	})
}
