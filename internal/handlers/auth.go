package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/booklyhq/bookly/auth"
	"github.com/booklyhq/bookly/httpx"
)

// AuthHandler fronts the PIN gate. When no PIN is configured, login succeeds
// unconditionally so the client flow stays the same on an open device.
type AuthHandler struct{}

func NewAuthHandler() *AuthHandler { return &AuthHandler{} }

func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/login", h.Login)
	mux.HandleFunc("/logout", h.Logout)
	mux.HandleFunc("/session", h.Session)
}

// Login: POST /login – {"pin": "1234"}
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpx.MethodNotAllowed(w, "POST")
		return
	}
	type loginReq struct {
		PIN string `json:"pin"`
	}
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if auth.Enabled() && !auth.CheckPIN(req.PIN) {
		httpx.JSONError(w, http.StatusUnauthorized, "invalid_pin", nil)
		return
	}
	auth.CreateSession(w)
	httpx.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Logout: POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpx.MethodNotAllowed(w, "POST")
		return
	}
	auth.ClearSession(w)
	httpx.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Session: GET /session – whether the gate is on and whether we are inside.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]bool{
		"gate_enabled":  auth.Enabled(),
		"authenticated": !auth.Enabled() || auth.ParseSession(r),
	})
}
