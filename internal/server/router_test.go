package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/booklyhq/bookly/internal/config"
	"github.com/booklyhq/bookly/internal/models"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.BusinessProfile{}, &models.Product{}, &models.Order{}, &models.OrderItem{}, &models.Expense{}, &models.Customer{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(db, config.Config{
		DefaultSource:  "Walk-in",
		DefaultPayment: "Cash",
		ExtractTimeout: 0,
	})
}

func TestHealthEndpoints(t *testing.T) {
	h := newTestHandler(t)
	for _, path := range []string{"/health", "/healthz"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, w.Code)
		}
		var resp map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("%s decode: %v", path, err)
		}
		if resp["status"] != "ok" {
			t.Fatalf("%s status = %q", path, resp["status"])
		}
	}
}

func TestRoutesRespondWithoutPINGate(t *testing.T) {
	// No ACCESS_PIN configured, so the gate is open and routes serve directly.
	h := newTestHandler(t)
	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/dashboard", http.StatusOK},
		{http.MethodGet, "/orders", http.StatusOK},
		{http.MethodGet, "/products", http.StatusOK},
		{http.MethodGet, "/products/valuation", http.StatusOK},
		{http.MethodGet, "/expenses", http.StatusOK},
		{http.MethodGet, "/customers", http.StatusOK},
		{http.MethodGet, "/customers/export", http.StatusOK},
		{http.MethodGet, "/reports/channels", http.StatusOK},
		{http.MethodGet, "/reports/sales", http.StatusOK},
		{http.MethodGet, "/settings", http.StatusOK},
		{http.MethodDelete, "/orders", http.StatusMethodNotAllowed},
		{http.MethodGet, "/does-not-exist", http.StatusNotFound},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
		if w.Code != tt.status {
			t.Fatalf("%s %s: expected %d got %d body=%s", tt.method, tt.path, tt.status, w.Code, w.Body.String())
		}
	}
}

func TestPINGateBlocksAndLoginOpens(t *testing.T) {
	t.Setenv("ACCESS_PIN", "4321")
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", w.Code)
	}

	bad := httptest.NewRecorder()
	h.ServeHTTP(bad, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"pin":"9999"}`)))
	if bad.Code != http.StatusUnauthorized {
		t.Fatalf("bad pin: expected 401 got %d", bad.Code)
	}

	login := httptest.NewRecorder()
	h.ServeHTTP(login, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"pin":"4321"}`)))
	if login.Code != http.StatusOK {
		t.Fatalf("login: expected 200 got %d body=%s", login.Code, login.Body.String())
	}
	cookies := login.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("no session cookie set")
	}

	authed := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	for _, c := range cookies {
		authed.AddCookie(c)
	}
	ok := httptest.NewRecorder()
	h.ServeHTTP(ok, authed)
	if ok.Code != http.StatusOK {
		t.Fatalf("authed dashboard: expected 200 got %d body=%s", ok.Code, ok.Body.String())
	}
}

func TestCreateOrderEndToEnd(t *testing.T) {
	h := newTestHandler(t)
	body := `{"customer_name":"Ada","items":[{"name":"Native Cap","quantity":1,"price":6500}],"source":"WhatsApp"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201 got %d body=%s", w.Code, w.Body.String())
	}

	dash := httptest.NewRecorder()
	h.ServeHTTP(dash, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	var resp struct {
		Financials struct {
			Revenue float64 `json:"revenue"`
		} `json:"financials"`
	}
	if err := json.Unmarshal(dash.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Financials.Revenue != 6500 {
		t.Fatalf("revenue = %v, want 6500", resp.Financials.Revenue)
	}
}
