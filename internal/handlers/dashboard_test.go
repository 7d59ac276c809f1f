package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/booklyhq/bookly/internal/models"
	"github.com/booklyhq/bookly/internal/report"
	"github.com/booklyhq/bookly/internal/services"
)

func TestDashboardSummary(t *testing.T) {
	st := setupTestStore(t)
	h := NewDashboardHandler(st, false)

	seedOrder(t, st, "Ada", 35000, models.SourceWhatsApp, 0)
	seedOrder(t, st, "Bola", 6500, models.SourceWhatsApp, 1)
	seedOrder(t, st, "Chioma", 8500, models.SourceInstagram, 2)
	seedOrder(t, st, "Dayo", 1000, models.SourceWalkIn, 3)
	if err := st.CreateExpense(&models.Expense{Category: "Data", Amount: 5000}); err != nil {
		t.Fatalf("expense: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	w := httptest.NewRecorder()
	h.Summary(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Financials   report.Financials     `json:"financials"`
		Channels     []report.ChannelCount `json:"channels"`
		RecentOrders []models.Order        `json:"recent_orders"`
		OrderCount   int                   `json:"order_count"`
		Currency     string                `json:"currency"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Financials.Revenue != 51000 {
		t.Fatalf("revenue = %v, want 51000", resp.Financials.Revenue)
	}
	if resp.Financials.Expenses != 5000 || resp.Financials.Profit != 46000 {
		t.Fatalf("financials = %+v", resp.Financials)
	}
	if resp.OrderCount != 4 || len(resp.RecentOrders) != 3 {
		t.Fatalf("orders: count=%d recent=%d", resp.OrderCount, len(resp.RecentOrders))
	}
	// Newest first: seeded 0 days ago is Ada.
	if resp.RecentOrders[0].CustomerName != "Ada" {
		t.Fatalf("recent[0] = %+v", resp.RecentOrders[0])
	}
	if len(resp.Channels) != 3 || resp.Channels[0].Channel != "WhatsApp" || resp.Channels[0].Percentage != 50 {
		t.Fatalf("channels = %+v", resp.Channels)
	}
	if resp.Currency != "NGN" {
		t.Fatalf("currency = %q", resp.Currency)
	}
}

func TestDashboardPaidOnly(t *testing.T) {
	st := setupTestStore(t)
	h := NewDashboardHandler(st, true)

	seedOrder(t, st, "Ada", 10000, models.SourceWhatsApp, 0)
	pending, err := testOrderService().BuildOrder(services.DraftInput{
		CustomerName: "Bola",
		FlatAmount:   4000,
		Status:       "Pending",
	})
	if err != nil {
		t.Fatalf("build pending: %v", err)
	}
	if err := st.CreateOrder(&pending); err != nil {
		t.Fatalf("create pending: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	w := httptest.NewRecorder()
	h.Summary(w, req)
	var resp struct {
		Financials report.Financials `json:"financials"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Financials.Revenue != 10000 {
		t.Fatalf("revenue = %v, want 10000 (pending excluded)", resp.Financials.Revenue)
	}
}
