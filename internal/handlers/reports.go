package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/booklyhq/bookly/httpx"
	"github.com/booklyhq/bookly/internal/export"
	"github.com/booklyhq/bookly/internal/models"
	"github.com/booklyhq/bookly/internal/report"
	"github.com/booklyhq/bookly/internal/store"
)

type ReportHandler struct {
	Store *store.Store
}

func NewReportHandler(st *store.Store) *ReportHandler { return &ReportHandler{Store: st} }

// Channels: GET /reports/channels – revenue and order count per sales channel.
// Every known channel gets a row even at zero so the breakdown is stable.
func (h *ReportHandler) Channels(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Store.Load()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_state", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"distribution": report.ChannelDistribution(snap.Orders),
		"revenue":      report.RevenueBySource(snap.Orders),
		"currency":     snap.Profile.Currency,
	})
}

// Sales: GET /reports/sales?source=Instagram – plain-text report download.
func (h *ReportHandler) Sales(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Store.Load()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_state", nil)
		return
	}
	orders := snap.Orders
	filter := "All"
	if src := strings.TrimSpace(r.URL.Query().Get("source")); src != "" {
		filter = src
		filtered := make([]models.Order, 0, len(orders))
		for _, o := range orders {
			if string(o.Source) == src {
				filtered = append(filtered, o)
			}
		}
		orders = filtered
	}
	body := export.SalesReport(snap.Profile, orders, filter, time.Now())
	w.Header().Set("Content-Disposition", `attachment; filename="sales-report.txt"`)
	httpx.Text(w, http.StatusOK, body)
}
