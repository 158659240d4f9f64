// Package server exposes the JSON API consumed by the SaveHaven clients.
// Handlers parse and validate input, delegate to the service layer, and map
// the error taxonomy onto HTTP status codes.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/scward0/SaveHaven/internal/apperr"
	"github.com/scward0/SaveHaven/internal/service"
)

// Server wires the service layer to HTTP routes.
type Server struct {
	transactions *service.TransactionService
	preferences  *service.PreferenceService
	users        *service.UserService
}

// New creates a Server over the given services.
func New(transactions *service.TransactionService, preferences *service.PreferenceService, users *service.UserService) *Server {
	return &Server{
		transactions: transactions,
		preferences:  preferences,
		users:        users,
	}
}

// Routes returns the authenticated API mux. The caller mounts it behind the
// auth middleware; public endpoints like /health live outside it.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("GET /api/transactions/{id}", s.handleGetTransaction)
	mux.HandleFunc("PUT /api/transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/overview", s.handleOverview)
	mux.HandleFunc("GET /api/categories", s.handleCategories)

	mux.HandleFunc("GET /api/preferences", s.handleGetPreferences)
	mux.HandleFunc("PUT /api/preferences/{key}", s.handleSetPreference)
	mux.HandleFunc("GET /api/tips", s.handleTip)

	mux.HandleFunc("GET /api/me", s.handleMe)
	mux.HandleFunc("PUT /api/me", s.handleUpdateProfile)

	return mux
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// writeError maps the error taxonomy to HTTP statuses: Unauthenticated 401,
// InvalidArgument 400, backend failures 502, everything else 500.
func writeError(w http.ResponseWriter, err error) {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		slog.Error("unclassified error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Code:  "INTERNAL",
			Error: "internal error",
		})
		return
	}

	status := http.StatusInternalServerError
	switch ae.Code {
	case apperr.CodeUnauthenticated:
		status = http.StatusUnauthorized
	case apperr.CodeInvalidArgument:
		status = http.StatusBadRequest
	case apperr.CodeBackend:
		status = http.StatusBadGateway
	}

	if ae.Code == apperr.CodeBackend {
		slog.Error("backend failure", "op", ae.Message, "error", ae.Cause)
	}

	writeJSON(w, status, errorResponse{
		Code:  string(ae.Code),
		Error: ae.Error(),
	})
}
