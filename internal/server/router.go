package server

import (
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/booklyhq/bookly/auth"
	"github.com/booklyhq/bookly/httpx"
	"github.com/booklyhq/bookly/internal/config"
	"github.com/booklyhq/bookly/internal/extract"
	"github.com/booklyhq/bookly/internal/handlers"
	"github.com/booklyhq/bookly/internal/models"
	"github.com/booklyhq/bookly/internal/services"
	"github.com/booklyhq/bookly/internal/store"
)

// New constructs the root http.Handler with all routes and middlewares applied.
func New(db *gorm.DB, cfg config.Config) http.Handler {
	mux := http.NewServeMux()

	st := store.New(db)
	orderSvc := services.NewOrderService(models.SalesSource(cfg.DefaultSource), models.PaymentMethod(cfg.DefaultPayment))
	captureSvc := services.NewCaptureService(newExtractor(cfg), orderSvc, cfg.ExtractTimeout)

	// --- Health endpoints ---
	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	handlers.NewAuthHandler().Register(mux)

	protect := func(h http.HandlerFunc) http.Handler {
		return auth.Middleware(auth.RequireAuth(h))
	}

	dh := handlers.NewDashboardHandler(st, cfg.PaidOnlyRevenue)
	mux.Handle("/dashboard", protect(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			httpx.MethodNotAllowed(w, "GET")
			return
		}
		dh.Summary(w, r)
	}))

	oh := handlers.NewOrderHandler(st, orderSvc, captureSvc)
	mux.Handle("/orders", protect(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			oh.List(w, r)
		case http.MethodPost:
			oh.Create(w, r)
		default:
			httpx.MethodNotAllowed(w, "GET,POST")
		}
	}))
	mux.Handle("/orders/quick", protect(oh.Quick))
	mux.Handle("/orders/capture", protect(oh.CaptureText))
	mux.Handle("/orders/receipt", protect(oh.Receipt))

	ph := handlers.NewProductHandler(st)
	mux.Handle("/products", protect(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			ph.List(w, r)
		case http.MethodPost:
			ph.Create(w, r)
		default:
			httpx.MethodNotAllowed(w, "GET,POST")
		}
	}))
	mux.Handle("/products/update", protect(ph.Update))
	mux.Handle("/products/delete", protect(ph.Delete))
	mux.Handle("/products/stock", protect(ph.AddStock))
	mux.Handle("/products/valuation", protect(ph.Valuation))

	eh := handlers.NewExpenseHandler(st)
	mux.Handle("/expenses", protect(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			eh.List(w, r)
		case http.MethodPost:
			eh.Create(w, r)
		default:
			httpx.MethodNotAllowed(w, "GET,POST")
		}
	}))

	ch := handlers.NewCustomerHandler(st)
	mux.Handle("/customers", protect(ch.List))
	mux.Handle("/customers/export", protect(ch.ExportCSV))

	rh := handlers.NewReportHandler(st)
	mux.Handle("/reports/channels", protect(rh.Channels))
	mux.Handle("/reports/sales", protect(rh.Sales))

	sh := handlers.NewSettingsHandler(st)
	mux.Handle("/settings", protect(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			sh.Get(w, r)
		case http.MethodPost:
			sh.Update(w, r)
		default:
			httpx.MethodNotAllowed(w, "GET,POST")
		}
	}))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		httpx.Text(w, http.StatusOK, "Bookly API - see /health")
	})
	//revive:enable:unused-parameter

	return withRecover(withLogging(mux))
}

// newExtractor picks the configured extraction backend, falling back to the
// offline heuristic when the hosted model is not usable.
func newExtractor(cfg config.Config) extract.Extractor {
	if cfg.Extractor == "gemini" {
		if cfg.GeminiAPIKey == "" {
			log.Println("EXTRACTOR=gemini but GEMINI_API_KEY is empty; using heuristic extractor")
			return extract.Heuristic{}
		}
		return extract.NewGemini(cfg.GeminiAPIKey, cfg.ExtractTimeout)
	}
	return extract.Heuristic{}
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic recovered: %v", rec)
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
