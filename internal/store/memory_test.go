package store

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/statement-extractor/internal/models"
)

func txn(date, desc string, amount string) models.Transaction {
	return models.Transaction{
		Date:        date,
		Description: desc,
		Type:        models.Debit,
		Amount:      decimal.RequireFromString(amount),
	}
}

func TestSaveBatch(t *testing.T) {
	m := NewMemory(nil, 0)

	id, err := m.SaveBatch(context.Background(), models.BankHDFC, []models.Transaction{
		txn("2024-04-01T00:00:00Z", "A", "100"),
		txn("2024-04-02T00:00:00Z", "B", "200"),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	id2, err := m.SaveBatch(context.Background(), models.BankHDFC, []models.Transaction{
		txn("2024-04-03T00:00:00Z", "C", "300"),
	})
	require.NoError(t, err)
	assert.NotEqual(t, id, id2)

	got, err := m.ListByPeriod(context.Background(), time.Time{}, time.Now())
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestSaveBatchRejectsEmpty(t *testing.T) {
	m := NewMemory(nil, 0)
	_, err := m.SaveBatch(context.Background(), models.BankHDFC, nil)
	assert.Error(t, err)
}

func TestListByPeriodFiltersAndSorts(t *testing.T) {
	m := NewMemory(nil, 0)
	_, err := m.SaveBatch(context.Background(), models.BankICICI, []models.Transaction{
		txn("2024-04-10T00:00:00Z", "LATE", "100"),
		txn("2024-04-01T00:00:00Z", "EARLY", "100"),
		txn("2024-05-01T00:00:00Z", "OUTSIDE", "100"),
		txn("01/04/24", "RAW DATE", "100"),
	})
	require.NoError(t, err)

	from := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)

	got, err := m.ListByPeriod(context.Background(), from, to)
	require.NoError(t, err)

	// the out-of-range row and the never-normalized date are excluded
	require.Len(t, got, 2)
	assert.Equal(t, "EARLY", got[0].Description)
	assert.Equal(t, "LATE", got[1].Description)
}

func TestRefreshOnStaleRead(t *testing.T) {
	loads := 0
	loader := func(ctx context.Context) ([]models.Transaction, error) {
		loads++
		return []models.Transaction{txn("2024-04-01T00:00:00Z", "LOADED", "100")}, nil
	}

	now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory(loader, time.Minute)
	m.now = func() time.Time { return now }

	// zero lastRefresh means the first read is always stale
	got, err := m.ListByPeriod(context.Background(), time.Time{}, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, loads)

	// within maxAge no reload happens
	_, err = m.ListByPeriod(context.Background(), time.Time{}, now)
	require.NoError(t, err)
	assert.Equal(t, 1, loads)

	now = now.Add(2 * time.Minute)
	_, err = m.ListByPeriod(context.Background(), time.Time{}, now)
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
}

func TestRefreshWithoutLoaderIsNoOp(t *testing.T) {
	m := NewMemory(nil, time.Minute)
	assert.NoError(t, m.Refresh(context.Background()))
}
