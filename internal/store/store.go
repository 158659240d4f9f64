// Package store provides persistence for transactions, user profiles, and
// per-user preference flags. Two implementations exist: FirestoreStore for
// production and MemoryStore for local development and tests.
package store

import (
	"context"

	"github.com/scward0/SaveHaven/internal/model"
)

//go:generate mockgen -source=store.go -destination=store_mock.go -package=store

// Collection names in the document backend.
const (
	TransactionsCollection = "transactions"
	UsersCollection        = "users"
	PreferencesCollection  = "userPreferences"
)

// Store defines the database operations used by the service layer. All calls
// are single-attempt: no retry and no client-side caching, so a caller that
// needs a fresh view after a write re-invokes ListTransactions. None of the
// methods perform identity checks; that is the service layer's job.
type Store interface {
	// Transaction operations. CreateTransaction persists the record under
	// its Id (assigning one if empty). UpdateTransaction overwrites the full
	// field set at the record's Id via a field merge; last write wins.
	// DeleteTransaction of an unknown id succeeds silently.
	CreateTransaction(ctx context.Context, txn *model.Transaction) error
	ListTransactions(ctx context.Context, userID string) ([]model.Transaction, error)
	UpdateTransaction(ctx context.Context, txn model.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error

	// User profile operations.
	GetUser(ctx context.Context, uid string) (*model.User, error)
	PutUser(ctx context.Context, user *model.User) error

	// Preference operations: string keys to boolean values, merged per user.
	GetPreferences(ctx context.Context, userID string) (map[string]bool, error)
	SetPreference(ctx context.Context, userID, key string, value bool) error
}
