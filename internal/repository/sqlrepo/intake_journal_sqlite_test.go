// internal/repository/sqlrepo/intake_journal_sqlite_test.go
package sqlrepo

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hydroflow-bot/internal/domain"
	"hydroflow-bot/pkg/db"
)

// TestIntakeJournal_SQLite runs the journal against an in-memory SQLite database.
func TestIntakeJournal_SQLite(t *testing.T) {
	ctx := context.Background()
	conn, err := db.Open(db.Config{Driver: db.DriverSQLite, DSN: "file::memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	journal := NewIntakeJournal(conn, conn, db.BeginTx, db.CommitTx, db.RollbackTx)
	require.NoError(t, journal.EnsureSchema(ctx))
	require.NoError(t, journal.EnsureSchema(ctx), "schema creation must be idempotent")

	start := time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)
	amounts := []string{"0.25", "0.5", "0.33"}
	for i, liters := range amounts {
		ev := domain.NewIntakeEvent(1, decimal.RequireFromString(liters), start.Add(time.Duration(i)*time.Hour))
		require.NoError(t, journal.Append(ctx, ev))
	}
	require.NoError(t, journal.Append(ctx, domain.NewIntakeEvent(2, decimal.RequireFromString("1"), start)))

	page, total, err := journal.ListByUser(ctx, 1, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 2)
	assert.True(t, page[0].Liters.Equal(decimal.RequireFromString("0.33")), "newest first, got %s", page[0].Liters)
	assert.True(t, page[1].Liters.Equal(decimal.RequireFromString("0.5")))
	assert.True(t, page[0].RecordedAt.Equal(start.Add(2*time.Hour)))

	page, _, err = journal.ListByUser(ctx, 1, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.True(t, page[0].Liters.Equal(decimal.RequireFromString("0.25")))

	page, total, err = journal.ListByUser(ctx, 3, 10, 0)
	require.NoError(t, err)
	assert.Empty(t, page)
	assert.Zero(t, total)
}
