package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/scward0/SaveHaven/internal/model"
)

// MemoryStore implements the Store interface with in-memory maps. Used for
// local development and as the integration double in tests.
type MemoryStore struct {
	mu sync.RWMutex

	transactions map[string]model.Transaction
	users        map[string]*model.User
	preferences  map[string]map[string]bool
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		transactions: make(map[string]model.Transaction),
		users:        make(map[string]*model.User),
		preferences:  make(map[string]map[string]bool),
	}
}

func (m *MemoryStore) CreateTransaction(ctx context.Context, txn *model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if txn.Id == "" {
		txn.Id = uuid.New().String()
	}
	m.transactions[txn.Id] = *txn
	return nil
}

func (m *MemoryStore) ListTransactions(ctx context.Context, userID string) ([]model.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var txns []model.Transaction
	for _, t := range m.transactions {
		if t.UserId == userID {
			txns = append(txns, t)
		}
	}
	return txns, nil
}

func (m *MemoryStore) UpdateTransaction(ctx context.Context, txn model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Last write wins, no existence or ownership check.
	m.transactions[txn.Id] = txn
	return nil
}

func (m *MemoryStore) DeleteTransaction(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.transactions, id)
	return nil
}

func (m *MemoryStore) GetUser(ctx context.Context, uid string) (*model.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	user, ok := m.users[uid]
	if !ok {
		return nil, nil
	}
	u := *user
	return &u, nil
}

func (m *MemoryStore) PutUser(ctx context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := *user
	m.users[user.Uid] = &u
	return nil
}

func (m *MemoryStore) GetPreferences(ctx context.Context, userID string) (map[string]bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	prefs := make(map[string]bool, len(m.preferences[userID]))
	for k, v := range m.preferences[userID] {
		prefs[k] = v
	}
	return prefs, nil
}

func (m *MemoryStore) SetPreference(ctx context.Context, userID, key string, value bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.preferences[userID] == nil {
		m.preferences[userID] = make(map[string]bool)
	}
	m.preferences[userID][key] = value
	return nil
}
