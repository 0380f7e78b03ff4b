package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/insightdelivered/statement-extractor/internal/models"
)

// Loader reloads the full transaction set from a backing source. Injected so
// the refresh policy is explicit instead of a lazy module-level singleton.
type Loader func(ctx context.Context) ([]models.Transaction, error)

// Memory is an in-memory Store, safe for concurrent use. State is held
// behind an explicit staleness policy: reads older than MaxAge trigger a
// refresh through the injected loader before serving.
type Memory struct {
	mu          sync.RWMutex
	txns        []models.Transaction
	loader      Loader
	maxAge      time.Duration
	lastRefresh time.Time
	now         func() time.Time
}

// NewMemory builds an in-memory store. loader may be nil for a purely
// process-local store; maxAge <= 0 disables staleness checks.
func NewMemory(loader Loader, maxAge time.Duration) *Memory {
	return &Memory{
		loader: loader,
		maxAge: maxAge,
		now:    time.Now,
	}
}

// SaveBatch appends one statement's transactions and returns the batch id.
func (m *Memory) SaveBatch(ctx context.Context, bank models.BankType, txns []models.Transaction) (string, error) {
	if len(txns) == 0 {
		return "", errors.New("empty transaction batch")
	}
	id := uuid.NewString()

	m.mu.Lock()
	defer m.mu.Unlock()
	// copy so callers cannot mutate stored state afterwards
	m.txns = append(m.txns, append([]models.Transaction(nil), txns...)...)
	return id, nil
}

// ListByPeriod returns stored transactions dated within [from, to], ordered
// by date ascending. Transactions whose date never normalized to ISO-8601
// are excluded from period queries.
func (m *Memory) ListByPeriod(ctx context.Context, from, to time.Time) ([]models.Transaction, error) {
	if err := m.refreshIfStale(ctx); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	type dated struct {
		at  time.Time
		txn models.Transaction
	}
	var rows []dated
	for _, txn := range m.txns {
		at, err := time.Parse(time.RFC3339, txn.Date)
		if err != nil {
			continue
		}
		if at.Before(from) || at.After(to) {
			continue
		}
		rows = append(rows, dated{at: at, txn: txn})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].at.Before(rows[j].at) })

	out := make([]models.Transaction, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.txn)
	}
	return out, nil
}

// Refresh reloads state through the injected loader.
func (m *Memory) Refresh(ctx context.Context) error {
	if m.loader == nil {
		return nil
	}
	txns, err := m.loader(ctx)
	if err != nil {
		return errors.Wrap(err, "refresh store")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.txns = txns
	m.lastRefresh = m.now()
	return nil
}

func (m *Memory) refreshIfStale(ctx context.Context) error {
	if m.loader == nil || m.maxAge <= 0 {
		return nil
	}
	m.mu.RLock()
	stale := m.now().Sub(m.lastRefresh) > m.maxAge
	m.mu.RUnlock()
	if !stale {
		return nil
	}
	return m.Refresh(ctx)
}
