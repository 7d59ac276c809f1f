package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/booklyhq/bookly/httpx"
	"github.com/booklyhq/bookly/internal/models"
	"github.com/booklyhq/bookly/internal/store"
	"github.com/booklyhq/bookly/validation"
)

type SettingsHandler struct {
	Store *store.Store
}

func NewSettingsHandler(st *store.Store) *SettingsHandler { return &SettingsHandler{Store: st} }

// Get: GET /settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.Store.Profile()
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_profile", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, p)
}

// Update: POST /settings – full replacement of the business profile.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	type settingsReq struct {
		Name         string `json:"name"`
		Currency     string `json:"currency"`
		Phone        string `json:"phone"`
		Email        string `json:"email"`
		FooterNote   string `json:"footer_note"`
		VIPThreshold int    `json:"vip_threshold"`
	}
	var req settingsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	v := validation.Violations{}
	req.Name = strings.TrimSpace(req.Name)
	validation.Required("name", req.Name, v)
	if !v.Empty() {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	p := models.BusinessProfile{
		Name:         req.Name,
		Currency:     strings.TrimSpace(req.Currency),
		Phone:        strings.TrimSpace(req.Phone),
		Email:        strings.TrimSpace(req.Email),
		FooterNote:   strings.TrimSpace(req.FooterNote),
		VIPThreshold: req.VIPThreshold,
	}
	if p.Currency == "" {
		p.Currency = "NGN"
	}
	saved, err := h.Store.SaveProfile(p)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_save_profile", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, saved)
}
