package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"fokus/internal/core"
	"fokus/internal/store"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// clientIP extracts the caller's address, preferring proxy headers.
func clientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		if idx := strings.IndexByte(ip, ','); idx > 0 {
			return strings.TrimSpace(ip[:idx])
		}
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// parseWindow reads the window query parameter. Anything unrecognized is
// passed through and resolves to the all-time window downstream.
func parseWindow(r *http.Request) core.Window {
	v := strings.TrimSpace(r.URL.Query().Get("window"))
	if v == "" {
		return core.WindowAll
	}
	return core.Window(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeDomainError maps domain sentinels onto HTTP statuses. Persistence
// failures get a body flag because the mutation itself went through.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrMissingDate),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidLimit),
		errors.Is(err, core.ErrInvalidDream),
		errors.Is(err, core.ErrInvalidTime):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, core.ErrDuplicateCategory),
		errors.Is(err, core.ErrLastCategory):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, core.ErrCategoryIndex):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, store.ErrPersistence):
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"error": err.Error(),
			"saved": false,
		})
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// mutationError writes err for a failed mutation. A save failure still
// leaves the mutation applied in memory, so cached views are dropped on that
// branch like on any successful mutation.
func (s *Server) mutationError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrPersistence) {
		s.invalidateViews()
	}
	writeDomainError(w, err)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}
