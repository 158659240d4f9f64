package store

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/scward0/SaveHaven/internal/model"
)

// FirestoreStore implements the Store interface using Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) Store {
	return &FirestoreStore{
		client: client,
	}
}

// CreateTransaction persists a new transaction document. When the record has
// no id yet, the backend-generated document id is assigned first so the id
// stored inside the document matches the document key.
func (s *FirestoreStore) CreateTransaction(ctx context.Context, txn *model.Transaction) error {
	if txn.Id == "" {
		txn.Id = s.client.Collection(TransactionsCollection).NewDoc().ID
	}
	_, err := s.client.Collection(TransactionsCollection).Doc(txn.Id).Set(ctx, txn.DocData())
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// ListTransactions returns all transactions owned by userID, in backend order.
// Each document is decoded defensively; a malformed field yields its default
// rather than dropping the record.
func (s *FirestoreStore) ListTransactions(ctx context.Context, userID string) ([]model.Transaction, error) {
	iter := s.client.Collection(TransactionsCollection).
		Where("userId", "==", userID).
		Documents(ctx)
	defer iter.Stop()

	var txns []model.Transaction
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list transactions: %w", err)
		}
		txns = append(txns, model.TransactionFromDoc(doc.Data(), doc.Ref.ID))
	}
	return txns, nil
}

// UpdateTransaction overwrites the document at the transaction's id with the
// full field set. The write is a field merge at the backend level, but every
// field is always supplied, so the effect is a full replace; last write wins.
func (s *FirestoreStore) UpdateTransaction(ctx context.Context, txn model.Transaction) error {
	_, err := s.client.Collection(TransactionsCollection).
		Doc(txn.Id).
		Set(ctx, txn.DocData(), firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	return nil
}

// DeleteTransaction removes the document. Deleting a nonexistent id is not an
// error; Firestore deletes are idempotent.
func (s *FirestoreStore) DeleteTransaction(ctx context.Context, id string) error {
	_, err := s.client.Collection(TransactionsCollection).Doc(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

// GetUser retrieves a user profile document. A missing profile returns
// (nil, nil) so callers can fall back to token claims.
func (s *FirestoreStore) GetUser(ctx context.Context, uid string) (*model.User, error) {
	doc, err := s.client.Collection(UsersCollection).Doc(uid).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var user model.User
	if err := doc.DataTo(&user); err != nil {
		slog.Warn("skipping malformed user document", "uid", uid, "error", err)
		return nil, nil
	}
	return &user, nil
}

// PutUser writes a user profile document keyed by uid.
func (s *FirestoreStore) PutUser(ctx context.Context, user *model.User) error {
	_, err := s.client.Collection(UsersCollection).Doc(user.Uid).Set(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to put user: %w", err)
	}
	return nil
}

// GetPreferences returns the stored boolean flags for a user. A missing
// preferences document yields an empty map; defaults are the caller's concern.
func (s *FirestoreStore) GetPreferences(ctx context.Context, userID string) (map[string]bool, error) {
	doc, err := s.client.Collection(PreferencesCollection).Doc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return map[string]bool{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}

	prefs := make(map[string]bool)
	for key, val := range doc.Data() {
		if b, ok := val.(bool); ok {
			prefs[key] = b
		}
	}
	return prefs, nil
}

// SetPreference merges a single flag into the user's preferences document,
// creating it if needed.
func (s *FirestoreStore) SetPreference(ctx context.Context, userID, key string, value bool) error {
	_, err := s.client.Collection(PreferencesCollection).
		Doc(userID).
		Set(ctx, map[string]interface{}{key: value}, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to set preference: %w", err)
	}
	return nil
}
