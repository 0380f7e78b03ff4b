// Package store is the persistence collaborator boundary: it accepts batches
// of categorized transactions and serves them back by time-ordered query.
// The pipeline makes no assumption about the backing schema beyond the four
// transaction fields.
package store

import (
	"context"
	"time"

	"github.com/insightdelivered/statement-extractor/internal/models"
)

// Store persists categorized transactions.
type Store interface {
	// SaveBatch stores one statement's transactions and returns the batch id.
	SaveBatch(ctx context.Context, bank models.BankType, txns []models.Transaction) (string, error)
	// ListByPeriod returns transactions dated within [from, to], ordered by
	// date ascending.
	ListByPeriod(ctx context.Context, from, to time.Time) ([]models.Transaction, error)
	// Refresh reloads state from the backing source; implementations without
	// one treat it as a no-op.
	Refresh(ctx context.Context) error
}
