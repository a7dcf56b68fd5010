package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/fintakip/backend/internal/finance"
)

// MemoryStore implements Store with in-memory storage. It holds the only
// mutable copy of the list; callers always get defensive copies.
type MemoryStore struct {
	mu           sync.RWMutex
	transactions []finance.Transaction
}

// NewMemoryStore creates a new in-memory store seeded with the given
// records, most-recent-first as provided.
func NewMemoryStore(seed ...finance.Transaction) *MemoryStore {
	s := &MemoryStore{}
	s.transactions = append(s.transactions, seed...)
	return s
}

// AddTransaction assigns a uuid and prepends the record.
func (s *MemoryStore) AddTransaction(_ context.Context, draft finance.Draft) (finance.Transaction, error) {
	tx := finance.Transaction{
		ID:          uuid.New().String(),
		Kind:        draft.Kind,
		Category:    draft.Category,
		Amount:      draft.Amount,
		Date:        draft.Date,
		Description: draft.Description,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append([]finance.Transaction{tx}, s.transactions...)
	return tx, nil
}

// DeleteTransaction removes the record with the given id if present.
func (s *MemoryStore) DeleteTransaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, tx := range s.transactions {
		if tx.ID == id {
			s.transactions = append(s.transactions[:i:i], s.transactions[i+1:]...)
			return nil
		}
	}
	return nil
}

// ListTransactions returns a copy of the current list.
func (s *MemoryStore) ListTransactions(_ context.Context) ([]finance.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]finance.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out, nil
}
