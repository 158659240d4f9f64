// Package service implements the user-facing operations on top of the store:
// identity-scoped transaction CRUD, dashboard and overview aggregation,
// preferences, and tips. Dependencies are injected; nothing here reaches for
// ambient global state.
package service

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/scward0/SaveHaven/internal/apperr"
	"github.com/scward0/SaveHaven/internal/auth"
	"github.com/scward0/SaveHaven/internal/model"
	"github.com/scward0/SaveHaven/internal/store"
)

// TransactionService handles user-scoped transaction CRUD. Create and List
// require an authenticated caller; Update and Delete trust that the caller
// obtained the record through its own List call and only validate the id.
type TransactionService struct {
	store store.Store
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store store.Store) *TransactionService {
	return &TransactionService{store: store}
}

// Create persists a new transaction for the authenticated caller. The
// caller-supplied id and userId are ignored: a fresh id is assigned and the
// owner is stamped from the verified identity, so a caller can never write
// into another user's partition.
func (s *TransactionService) Create(ctx context.Context, txn model.Transaction) (*model.Transaction, error) {
	claims, err := auth.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}

	txn.Id = uuid.New().String()
	txn.UserId = claims.UID

	if err := s.store.CreateTransaction(ctx, &txn); err != nil {
		return nil, apperr.Backend("create transaction", err)
	}
	return &txn, nil
}

// List returns every transaction owned by the authenticated caller, sorted by
// date descending. The ordering is a hard contract: the dashboard's recent
// activity and the history view's default order both rely on it.
func (s *TransactionService) List(ctx context.Context) ([]model.Transaction, error) {
	claims, err := auth.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}

	txns, err := s.store.ListTransactions(ctx, claims.UID)
	if err != nil {
		return nil, apperr.Backend("list transactions", err)
	}

	sort.SliceStable(txns, func(i, j int) bool {
		return txns[i].Date > txns[j].Date
	})
	return txns, nil
}

// Get finds a single transaction in the caller's own list. Returns (nil, nil)
// when no record with that id is visible to the caller.
func (s *TransactionService) Get(ctx context.Context, id string) (*model.Transaction, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("invalid transaction ID")
	}

	txns, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range txns {
		if txns[i].Id == id {
			return &txns[i], nil
		}
	}
	return nil, nil
}

// Update overwrites the record at the transaction's id with all supplied
// fields. Last write wins; no conflict detection and no ownership re-check,
// since callers hold records obtained from their own List.
func (s *TransactionService) Update(ctx context.Context, txn model.Transaction) error {
	if txn.Id == "" {
		return apperr.InvalidArgument("invalid transaction ID")
	}

	if err := s.store.UpdateTransaction(ctx, txn); err != nil {
		return apperr.Backend("update transaction", err)
	}
	return nil
}

// Delete removes the record. Deleting a nonexistent id succeeds silently.
func (s *TransactionService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperr.InvalidArgument("invalid transaction ID")
	}

	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return apperr.Backend("delete transaction", err)
	}
	return nil
}
