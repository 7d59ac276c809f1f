package handlers

import (
	"net/http"

	"github.com/booklyhq/bookly/httpx"
	"github.com/booklyhq/bookly/internal/export"
	"github.com/booklyhq/bookly/internal/report"
	"github.com/booklyhq/bookly/internal/store"
)

type CustomerHandler struct {
	Store *store.Store
}

func NewCustomerHandler(st *store.Store) *CustomerHandler { return &CustomerHandler{Store: st} }

// List: GET /customers – re-derives stats from the order history, refreshes
// the cached projection and returns it ranked by total spent.
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Store.Load()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_state", nil)
		return
	}
	stats := report.DeriveCustomerStats(snap.Orders, snap.Profile.VIPThreshold)
	rows, err := h.Store.SyncCustomers(report.RankCustomers(stats))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_sync_customers", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "total": len(rows)})
}

// ExportCSV: GET /customers/export – refreshed projection as a CSV download.
func (h *CustomerHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Store.Load()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_state", nil)
		return
	}
	stats := report.DeriveCustomerStats(snap.Orders, snap.Profile.VIPThreshold)
	rows, err := h.Store.SyncCustomers(report.RankCustomers(stats))
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_sync_customers", nil)
		return
	}
	body, err := export.CustomersCSV(rows)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_export_customers", nil)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="customers.csv"`)
	httpx.Text(w, http.StatusOK, body)
}
