package model

import "time"

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TypeIncome  TransactionType = "INCOME"
	TypeExpense TransactionType = "EXPENSE"
)

// ParseTransactionType converts a stored string to a TransactionType.
// Anything unrecognized falls back to EXPENSE, matching decode defaults.
func ParseTransactionType(s string) TransactionType {
	if s == string(TypeIncome) {
		return TypeIncome
	}
	return TypeExpense
}

// Valid reports whether t is one of the two known types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is the core entity: one income or expense record owned by a user.
// Date is milliseconds since epoch and is user-settable (backdated entries are
// allowed). Id and UserId are assigned by the service at creation time; an
// empty Id marks an unsaved record.
type Transaction struct {
	Id          string          `json:"id"`
	Amount      float64         `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        int64           `json:"date"`
	Type        TransactionType `json:"type"`
	UserId      string          `json:"userId"`
}

// DocData flattens the transaction into the loosely-typed field map persisted
// as a Firestore document. The enum is stored by name.
func (t Transaction) DocData() map[string]interface{} {
	return map[string]interface{}{
		"id":          t.Id,
		"amount":      t.Amount,
		"category":    t.Category,
		"description": t.Description,
		"date":        t.Date,
		"type":        string(t.Type),
		"userId":      t.UserId,
	}
}

// TransactionFromDoc rebuilds a Transaction from stored document data. The id
// is supplied out-of-band because the document key is authoritative, whatever
// the data claims. Decoding is defensive: a missing or wrongly-typed field
// yields its default (amount 0, empty strings, date now, type EXPENSE) rather
// than an error, so one corrupt record can never block loading a user's list.
func TransactionFromDoc(data map[string]interface{}, id string) Transaction {
	t := Transaction{
		Id:   id,
		Date: time.Now().UnixMilli(),
		Type: TypeExpense,
	}
	if v, ok := asFloat64(data["amount"]); ok {
		t.Amount = v
	}
	if v, ok := data["category"].(string); ok {
		t.Category = v
	}
	if v, ok := data["description"].(string); ok {
		t.Description = v
	}
	if v, ok := asFloat64(data["date"]); ok {
		t.Date = int64(v)
	}
	if v, ok := data["type"].(string); ok {
		t.Type = ParseTransactionType(v)
	}
	if v, ok := data["userId"].(string); ok {
		t.UserId = v
	}
	return t
}

// asFloat64 normalizes the numeric types Firestore may hand back.
func asFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	}
	return 0, false
}
