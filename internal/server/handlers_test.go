package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scward0/SaveHaven/internal/auth"
	"github.com/scward0/SaveHaven/internal/finance"
	"github.com/scward0/SaveHaven/internal/model"
	"github.com/scward0/SaveHaven/internal/service"
	"github.com/scward0/SaveHaven/internal/store"
)

// newTestServer runs the full stack over the memory store with the local-dev
// identity, the same wiring cmd/server uses in local mode.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mem := store.NewMemoryStore()
	api := New(
		service.NewTransactionService(mem),
		service.NewPreferenceService(mem),
		service.NewUserService(mem),
	)
	ts := httptest.NewServer(auth.LocalDevMiddleware()(api.Routes()))
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body interface{}, as string) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if as != "" {
		req.Header.Set("X-Debug-Impersonate-User", as)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()

	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func createTxn(t *testing.T, ts *httptest.Server, as string, body map[string]interface{}) model.Transaction {
	t.Helper()

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/transactions", body, as)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decodeBody[model.Transaction](t, resp)
}

func TestCreateAndListTransactions(t *testing.T) {
	ts := newTestServer(t)

	created := createTxn(t, ts, "u1", map[string]interface{}{
		"amount":      50.0,
		"category":    "Food",
		"description": "groceries",
		"date":        1000,
		"type":        "EXPENSE",
	})
	assert.NotEmpty(t, created.Id)
	assert.Equal(t, "u1", created.UserId)

	createTxn(t, ts, "u1", map[string]interface{}{
		"amount":   200.0,
		"category": "Paycheck",
		"date":     2000,
		"type":     "INCOME",
	})

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/transactions", nil, "u1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeBody[struct {
		Transactions []model.Transaction `json:"transactions"`
		Summary      finance.Summary     `json:"summary"`
	}](t, resp)

	require.Len(t, list.Transactions, 2)
	assert.Equal(t, "Paycheck", list.Transactions[0].Category, "newest first")
	assert.Equal(t, 200.0, list.Summary.Income)
	assert.Equal(t, 50.0, list.Summary.Expenses)
	assert.Equal(t, 150.0, list.Summary.Net)
}

func TestCreateTransactionValidation(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{
			name: "zero amount",
			body: map[string]interface{}{"amount": 0.0, "category": "Food", "type": "EXPENSE"},
		},
		{
			name: "negative amount",
			body: map[string]interface{}{"amount": -5.0, "category": "Food", "type": "EXPENSE"},
		},
		{
			name: "bad type",
			body: map[string]interface{}{"amount": 5.0, "category": "Food", "type": "TRANSFER"},
		},
		{
			name: "category from wrong type",
			body: map[string]interface{}{"amount": 5.0, "category": "Paycheck", "type": "EXPENSE"},
		},
		{
			name: "unknown category",
			body: map[string]interface{}{"amount": 5.0, "category": "Crypto", "type": "EXPENSE"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, ts.URL+"/api/transactions", tt.body, "u1")
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestUserIsolation(t *testing.T) {
	ts := newTestServer(t)

	createTxn(t, ts, "alice", map[string]interface{}{
		"amount": 10.0, "category": "Food", "date": 1, "type": "EXPENSE",
	})

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/transactions", nil, "bob")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeBody[struct {
		Transactions []model.Transaction `json:"transactions"`
	}](t, resp)
	assert.Empty(t, list.Transactions, "bob cannot see alice's records")
}

func TestListTransactionsFiltered(t *testing.T) {
	ts := newTestServer(t)

	createTxn(t, ts, "u1", map[string]interface{}{"amount": 50.0, "category": "Food", "date": 1000, "type": "EXPENSE"})
	createTxn(t, ts, "u1", map[string]interface{}{"amount": 80.0, "category": "Rent", "date": 2000, "type": "EXPENSE"})
	createTxn(t, ts, "u1", map[string]interface{}{"amount": 200.0, "category": "Paycheck", "date": 3000, "type": "INCOME"})

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/transactions?type=EXPENSE&category=Food", nil, "u1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decodeBody[struct {
		Transactions []model.Transaction `json:"transactions"`
		Summary      finance.Summary     `json:"summary"`
	}](t, resp)

	require.Len(t, list.Transactions, 1)
	assert.Equal(t, "Food", list.Transactions[0].Category)
	assert.Equal(t, 50.0, list.Summary.Expenses, "summary reflects the filtered view")

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/transactions?from=1500&to=2500", nil, "u1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list = decodeBody[struct {
		Transactions []model.Transaction `json:"transactions"`
		Summary      finance.Summary     `json:"summary"`
	}](t, resp)
	assert.Len(t, list.Transactions, 2, "dateTo widens by a day")

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/transactions?type=SIDEWAYS", nil, "u1")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUpdateTransaction(t *testing.T) {
	ts := newTestServer(t)

	created := createTxn(t, ts, "u1", map[string]interface{}{
		"amount": 50.0, "category": "Food", "date": 1000, "type": "EXPENSE",
	})

	resp := doJSON(t, http.MethodPut, ts.URL+"/api/transactions/"+created.Id, map[string]interface{}{
		"amount": 75.0, "category": "Rent", "date": 1000, "type": "EXPENSE",
	}, "u1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody[model.Transaction](t, resp)

	assert.Equal(t, created.Id, updated.Id)
	assert.Equal(t, "u1", updated.UserId, "owner survives the overwrite")
	assert.Equal(t, 75.0, updated.Amount)

	// Updating a record the caller cannot see is a 404.
	resp = doJSON(t, http.MethodPut, ts.URL+"/api/transactions/"+created.Id, map[string]interface{}{
		"amount": 1.0, "category": "Food", "type": "EXPENSE",
	}, "mallory")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteTransaction(t *testing.T) {
	ts := newTestServer(t)

	created := createTxn(t, ts, "u1", map[string]interface{}{
		"amount": 50.0, "category": "Food", "date": 1000, "type": "EXPENSE",
	})

	resp := doJSON(t, http.MethodDelete, ts.URL+"/api/transactions/"+created.Id, nil, "u1")
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Idempotent: deleting again still succeeds.
	resp = doJSON(t, http.MethodDelete, ts.URL+"/api/transactions/"+created.Id, nil, "u1")
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/transactions/"+created.Id, nil, "u1")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDashboardEndpoint(t *testing.T) {
	ts := newTestServer(t)

	for i := 0; i < 7; i++ {
		createTxn(t, ts, "u1", map[string]interface{}{
			"amount": 10.0, "category": "Food", "date": 1000 + i, "type": "EXPENSE",
		})
	}

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/dashboard", nil, "u1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	dash := decodeBody[service.Dashboard](t, resp)

	assert.Equal(t, 70.0, dash.Summary.Expenses)
	assert.Equal(t, finance.StatusNegative, dash.Status)
	assert.Equal(t, "Consider reducing expenses", dash.StatusMessage)
	assert.Len(t, dash.Recent, 5)
	assert.Equal(t, 7, dash.TransactionCount)
}

func TestOverviewEndpoint(t *testing.T) {
	ts := newTestServer(t)

	createTxn(t, ts, "u1", map[string]interface{}{"amount": 30.0, "category": "Food", "date": 2000, "type": "EXPENSE"})
	createTxn(t, ts, "u1", map[string]interface{}{"amount": 20.0, "category": "Food", "date": 1000, "type": "EXPENSE"})

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/overview?type=EXPENSE", nil, "u1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	ov := decodeBody[service.Overview](t, resp)

	require.Len(t, ov.Segments, 1)
	assert.Equal(t, "Food", ov.Segments[0].Category)
	assert.Equal(t, 50.0, ov.Segments[0].Total)
	assert.Equal(t, "#F44336", ov.Segments[0].Color)

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/overview", nil, "u1")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "type is required")
}

func TestCategoriesEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/categories?type=INCOME", nil, "u1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeBody[struct {
		Categories []string `json:"categories"`
	}](t, resp)
	assert.Equal(t, model.IncomeCategories, got.Categories)

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/categories", nil, "u1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got = decodeBody[struct {
		Categories []string `json:"categories"`
	}](t, resp)
	assert.Len(t, got.Categories, len(model.IncomeCategories)+len(model.ExpenseCategories))
}

func TestPreferenceEndpoints(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, http.MethodPut, ts.URL+"/api/preferences/education_facts",
		map[string]interface{}{"value": false}, "u1")
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/preferences", nil, "u1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	prefs := decodeBody[map[string]bool](t, resp)
	assert.False(t, prefs["education_facts"])
	assert.True(t, prefs["weekly_summary"])

	// Tips honor the flag.
	resp = doJSON(t, http.MethodGet, ts.URL+"/api/tips", nil, "u1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tip := decodeBody[struct {
		Enabled bool   `json:"enabled"`
		Tip     string `json:"tip"`
	}](t, resp)
	assert.False(t, tip.Enabled)
	assert.Empty(t, tip.Tip)

	resp = doJSON(t, http.MethodPut, ts.URL+"/api/preferences/not_a_pref",
		map[string]interface{}{"value": true}, "u1")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMeEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, http.MethodPut, ts.URL+"/api/me", map[string]interface{}{"username": "saver_sam"}, "u1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodGet, ts.URL+"/api/me", nil, "u1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decodeBody[model.User](t, resp)
	assert.Equal(t, "u1", me.Uid)
	assert.Equal(t, "saver_sam", me.Username)
}

func TestUnauthenticatedRequests(t *testing.T) {
	// Routes mounted without any identity middleware: every operation that
	// requires a caller identity maps to 401.
	mem := store.NewMemoryStore()
	api := New(
		service.NewTransactionService(mem),
		service.NewPreferenceService(mem),
		service.NewUserService(mem),
	)
	ts := httptest.NewServer(api.Routes())
	defer ts.Close()

	for _, ep := range []struct{ method, path string }{
		{http.MethodGet, "/api/transactions"},
		{http.MethodGet, "/api/dashboard"},
		{http.MethodGet, "/api/overview?type=EXPENSE"},
		{http.MethodGet, "/api/preferences"},
		{http.MethodGet, "/api/me"},
	} {
		resp := doJSON(t, ep.method, ts.URL+ep.path, nil, "")
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
			fmt.Sprintf("%s %s", ep.method, ep.path))
	}
}
