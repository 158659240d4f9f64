package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/scward0/SaveHaven/internal/apperr"
	"github.com/scward0/SaveHaven/internal/finance"
	"github.com/scward0/SaveHaven/internal/model"
)

// transactionRequest is the create/update payload. Id and userId never come
// from the body; the id is path- or server-assigned and the owner comes from
// the verified identity.
type transactionRequest struct {
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        int64   `json:"date"`
	Type        string  `json:"type"`
}

// parseTransaction decodes and validates a transaction payload the way the
// entry form does: positive amount, known type, category from that type's
// registry list. A zero date defaults to now (entries may also be backdated).
func parseTransaction(r *http.Request) (model.Transaction, error) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return model.Transaction{}, apperr.InvalidArgument("invalid request body")
	}

	txType := model.TransactionType(req.Type)
	if !txType.Valid() {
		return model.Transaction{}, apperr.InvalidArgument("type must be INCOME or EXPENSE")
	}
	if req.Amount <= 0 {
		return model.Transaction{}, apperr.InvalidArgument("amount must be greater than zero")
	}
	if !model.ValidCategory(txType, req.Category) {
		return model.Transaction{}, apperr.InvalidArgument("unknown category for " + req.Type + ": " + req.Category)
	}

	date := req.Date
	if date == 0 {
		date = time.Now().UnixMilli()
	}

	return model.Transaction{
		Amount:      req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
		Type:        txType,
	}, nil
}

// parseFilter builds a Filter from query parameters. Absent parameters leave
// their dimension unconstrained; from/to are epoch milliseconds.
func parseFilter(r *http.Request) (finance.Filter, error) {
	var f finance.Filter
	q := r.URL.Query()

	if v := q.Get("type"); v != "" {
		t := model.TransactionType(v)
		if !t.Valid() {
			return f, apperr.InvalidArgument("type must be INCOME or EXPENSE")
		}
		f.Type = &t
	}
	f.Category = q.Get("category")

	if v := q.Get("from"); v != "" {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return f, apperr.InvalidArgument("from must be epoch milliseconds")
		}
		f.DateFrom = &ms
	}
	if v := q.Get("to"); v != "" {
		ms, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return f, apperr.InvalidArgument("to must be epoch milliseconds")
		}
		f.DateTo = &ms
	}
	return f, nil
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	txn, err := parseTransaction(r)
	if err != nil {
		writeError(w, err)
		return
	}

	created, err := s.transactions.Create(r.Context(), txn)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}

	txns, err := s.transactions.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	filtered := finance.Apply(txns, filter)
	writeJSON(w, http.StatusOK, struct {
		Transactions []model.Transaction `json:"transactions"`
		Summary      finance.Summary     `json:"summary"`
	}{
		Transactions: filtered,
		Summary:      finance.Totals(filtered),
	})
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	txn, err := s.transactions.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if txn == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Code:  "NOT_FOUND",
			Error: "transaction not found",
		})
		return
	}
	writeJSON(w, http.StatusOK, txn)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	// The record must already be visible to the caller; the update itself
	// trusts the caller and overwrites in place.
	existing, err := s.transactions.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{
			Code:  "NOT_FOUND",
			Error: "transaction not found",
		})
		return
	}

	txn, err := parseTransaction(r)
	if err != nil {
		writeError(w, err)
		return
	}
	txn.Id = existing.Id
	txn.UserId = existing.UserId

	if err := s.transactions.Update(r.Context(), txn); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, txn)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.transactions.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := s.transactions.Dashboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	txType := model.TransactionType(r.URL.Query().Get("type"))
	if !txType.Valid() {
		writeError(w, apperr.InvalidArgument("type must be INCOME or EXPENSE"))
		return
	}

	overview, err := s.transactions.Overview(r.Context(), txType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

// handleCategories returns the dropdown options for a type selection: the
// type's registry list, or the union of both lists when no type is given.
func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	var txType *model.TransactionType
	if v := r.URL.Query().Get("type"); v != "" {
		t := model.TransactionType(v)
		if !t.Valid() {
			writeError(w, apperr.InvalidArgument("type must be INCOME or EXPENSE"))
			return
		}
		txType = &t
	}

	writeJSON(w, http.StatusOK, struct {
		Categories []string `json:"categories"`
	}{
		Categories: finance.CategoryOptions(txType),
	})
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.preferences.Get(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

func (s *Server) handleSetPreference(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value bool `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.InvalidArgument("invalid request body"))
		return
	}

	if err := s.preferences.Set(r.Context(), r.PathValue("key"), req.Value); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleTip(w http.ResponseWriter, r *http.Request) {
	tip, ok, err := s.preferences.TipOfTheDay(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Enabled bool   `json:"enabled"`
		Tip     string `json:"tip,omitempty"`
	}{
		Enabled: ok,
		Tip:     tip,
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.Me(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperr.InvalidArgument("invalid request body"))
		return
	}

	user, err := s.users.UpdateProfile(r.Context(), req.Username)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
