package controller

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/api-sage/core-banking/internal/adapter/http/models"
	"github.com/api-sage/core-banking/internal/commons"
	"github.com/shopspring/decimal"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// statusForError maps the service error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, commons.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, commons.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, commons.ErrAccountInactive), errors.Is(err, commons.ErrCurrencyMismatch):
		return http.StatusConflict
	case errors.Is(err, commons.ErrInsufficientFunds):
		return http.StatusUnprocessableEntity
	case errors.Is(err, commons.ErrConcurrencyConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// actorFromRequest extracts the audit actor: the X-Actor-Id header and the
// origin address. Both are opaque metadata, never authorization input.
func actorFromRequest(r *http.Request) models.Actor {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		ip = host
	}
	if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); forwarded != "" {
		if first, _, found := strings.Cut(forwarded, ","); found || first != "" {
			ip = strings.TrimSpace(first)
		}
	}
	return models.Actor{
		UserID:    strings.TrimSpace(r.Header.Get("X-Actor-Id")),
		IPAddress: ip,
	}
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func queryTime(r *http.Request, name string) *time.Time {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil
	}
	value, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &value
}

func queryDecimal(r *http.Request, name string) *decimal.Decimal {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &value
}
