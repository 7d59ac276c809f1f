package extract

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"
)

func TestHeuristicDeterministic(t *testing.T) {
	ex := Heuristic{}
	first, err := ex.Extract(context.Background(), "2 caps for 13000")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	second, _ := ex.Extract(context.Background(), "2 caps for 13000")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("heuristic not deterministic:\n%+v\n%+v", first, second)
	}
}

func TestHeuristicKeywordAndAmount(t *testing.T) {
	ex := Heuristic{}
	tests := []struct {
		text   string
		item   string
		amount float64
	}{
		{"one native cap please, 6500", "Native Cap", 6500},
		{"two shoes 18000", "Fashion Item", 18000},
		{"just something nice", "Fashion Item", 5000}, // no number -> default
	}
	for _, tt := range tests {
		d, err := ex.Extract(context.Background(), tt.text)
		if err != nil {
			t.Fatalf("extract %q: %v", tt.text, err)
		}
		if d.Items[0].Name != tt.item {
			t.Fatalf("%q item = %q, want %q", tt.text, d.Items[0].Name, tt.item)
		}
		if d.TotalAmount != tt.amount {
			t.Fatalf("%q amount = %v, want %v", tt.text, d.TotalAmount, tt.amount)
		}
	}
}

func TestHeuristicHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (Heuristic{}).Extract(ctx, "6500"); err == nil {
		t.Fatalf("expected context error")
	}
}

func geminiFixture(t *testing.T, handler http.HandlerFunc) *Gemini {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	g := NewGemini("test-key", 2*time.Second)
	g.BaseURL = srv.URL
	return g
}

func TestGeminiParsesDraft(t *testing.T) {
	g := geminiFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"customer_name\":\"Ada\",\"items\":[{\"name\":\"Heels\",\"quantity\":2,\"price\":18000}],\"total_amount\":36000,\"source\":\"Instagram\"}"}]}}]}`))
	})
	d, err := g.Extract(context.Background(), "2 heels for Ada on IG")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if d.CustomerName != "Ada" || d.TotalAmount != 36000 || d.Source != "Instagram" {
		t.Fatalf("draft = %+v", d)
	}
}

func TestGeminiRecoversMissingTotalFromLines(t *testing.T) {
	g := geminiFixture(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"items\":[{\"name\":\"Cap\",\"quantity\":3,\"price\":1000}]}"}]}}]}`))
	})
	d, err := g.Extract(context.Background(), "3 caps")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if d.TotalAmount != 3000 {
		t.Fatalf("total = %v, want 3000", d.TotalAmount)
	}
}

func TestGeminiErrorPaths(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"non-200 status", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}},
		{"empty candidates", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"candidates":[]}`))
		}},
		{"malformed draft JSON", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"not json"}]}}]}`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := geminiFixture(t, tt.handler)
			if _, err := g.Extract(context.Background(), "anything"); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestGeminiRequiresAPIKey(t *testing.T) {
	g := NewGemini("", time.Second)
	if _, err := g.Extract(context.Background(), "x"); err != ErrNoAPIKey {
		t.Fatalf("err = %v, want ErrNoAPIKey", err)
	}
}
