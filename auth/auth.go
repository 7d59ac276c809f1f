// Package auth implements the cosmetic login gate: a single access PIN and an
// HMAC-signed session cookie. This is a privacy screen for a shared device,
// not real authentication — one PIN, one implicit operator, no accounts.
package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type ctxKey string

const (
	sessionCookieName = "session"
	sessionCtxKey     = ctxKey("session")
	sessionValue      = "operator"
)

// Secret returns SESSION_SECRET or a default dev value.
func Secret() string {
	if s := os.Getenv("SESSION_SECRET"); s != "" {
		return s
	}
	return "devsessionsecret"
}

// Enabled reports whether a PIN is configured at all. With no PIN the gate is
// wide open and RequireAuth passes everything through.
func Enabled() bool {
	return os.Getenv("ACCESS_PIN") != "" || os.Getenv("ACCESS_PIN_HASH") != ""
}

// CheckPIN verifies the supplied PIN against ACCESS_PIN_HASH (bcrypt) or,
// failing that, a plain ACCESS_PIN. Returns false when no PIN is configured
// so an empty submission can never log in by accident.
func CheckPIN(pin string) bool {
	if pin == "" {
		return false
	}
	if h := os.Getenv("ACCESS_PIN_HASH"); h != "" {
		return bcrypt.CompareHashAndPassword([]byte(h), []byte(pin)) == nil
	}
	if p := os.Getenv("ACCESS_PIN"); p != "" {
		return pin == p
	}
	return false
}

func sign(value string) string {
	mac := hmac.New(sha256.New, []byte(Secret()))
	mac.Write([]byte(value))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// CreateSession sets the signed session cookie.
func CreateSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionValue + "." + sign(sessionValue),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(14 * 24 * time.Hour),
	})
}

// ClearSession deletes the session cookie.
func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// ParseSession validates the cookie signature.
func ParseSession(r *http.Request) bool {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return false
	}
	parts := strings.SplitN(c.Value, ".", 2)
	if len(parts) != 2 || parts[0] != sessionValue {
		return false
	}
	return hmac.Equal([]byte(parts[1]), []byte(sign(parts[0])))
}

// WithSession marks the context as authenticated.
func WithSession(ctx context.Context) context.Context {
	return context.WithValue(ctx, sessionCtxKey, true)
}

// FromContext reports whether the request carries a valid session.
func FromContext(ctx context.Context) bool {
	ok, _ := ctx.Value(sessionCtxKey).(bool)
	return ok
}

// Middleware attaches session state to the request context if present.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ParseSession(r) {
			r = r.WithContext(WithSession(r.Context()))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth returns 401 JSON for unauthenticated requests. A no-op while
// the gate is not configured.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if Enabled() && !FromContext(r.Context()) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			if _, err := w.Write([]byte(`{"error":"unauthorized"}`)); err != nil {
				_ = err
			}
			return
		}
		next.ServeHTTP(w, r)
	})
}
