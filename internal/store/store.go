// Package store owns the transaction list. All other components receive
// read-only snapshots or emit create/delete intents through it.
package store

import (
	"context"

	"github.com/fintakip/backend/internal/finance"
)

// Store defines the transaction operations used by the service layer.
// Records are immutable once created; there is no update operation.
type Store interface {
	// AddTransaction assigns a fresh identifier to the draft and prepends
	// the record, keeping the list most-recent-first.
	AddTransaction(ctx context.Context, draft finance.Draft) (finance.Transaction, error)

	// DeleteTransaction removes the record with the given identifier.
	// A missing identifier is a no-op, not an error.
	DeleteTransaction(ctx context.Context, id string) error

	// ListTransactions returns a snapshot of the current list in order.
	ListTransactions(ctx context.Context) ([]finance.Transaction, error)
}
