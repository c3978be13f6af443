// internal/repository/sqlrepo/intake_journal.go
package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hydroflow-bot/internal/domain"
	"hydroflow-bot/internal/repository"
	"hydroflow-bot/pkg/db"
)

// Queries use '?' placeholders and are rebound for the active driver.
const (
	createEventsTable = `CREATE TABLE IF NOT EXISTS intake_events (
		id            TEXT PRIMARY KEY,
		user_id       BIGINT NOT NULL,
		amount_liters NUMERIC(12, 4) NOT NULL,
		recorded_at   TIMESTAMP NOT NULL
	)`
	createEventsIndex = `CREATE INDEX IF NOT EXISTS idx_intake_events_user ON intake_events (user_id, recorded_at)`
	createTotalsTable = `CREATE TABLE IF NOT EXISTS intake_totals (
		user_id      BIGINT PRIMARY KEY,
		total_liters NUMERIC(14, 4) NOT NULL,
		event_count  BIGINT NOT NULL,
		updated_at   TIMESTAMP NOT NULL
	)`

	insertEvent = `INSERT INTO intake_events (id, user_id, amount_liters, recorded_at) VALUES (?, ?, ?, ?)`
	upsertTotal = `INSERT INTO intake_totals (user_id, total_liters, event_count, updated_at) VALUES (?, ?, 1, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			total_liters = intake_totals.total_liters + excluded.total_liters,
			event_count  = intake_totals.event_count + 1,
			updated_at   = excluded.updated_at`
	selectEvents = `SELECT id, user_id, amount_liters, recorded_at
		FROM intake_events
		WHERE user_id = ?
		ORDER BY recorded_at DESC, id DESC
		LIMIT ? OFFSET ?`
	selectEventCount = `SELECT event_count FROM intake_totals WHERE user_id = ?`
)

// IntakeJournal implements repository.IntakeJournal on top of sqlx.
type IntakeJournal struct {
	dbBeginner db.DBTxBeginner       // For starting transactions (e.g., *sqlx.DB)
	dbExecutor repository.DBExecutor // For non-transactional reads (e.g., *sqlx.DB)
	beginTx    db.BeginTxFunc
	commitTx   db.CommitTxFunc
	rollbackTx db.RollbackTxFunc
}

// NewIntakeJournal creates an IntakeJournal. The transaction functions are
// injected so tests can run without a database.
func NewIntakeJournal(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
) *IntakeJournal {
	return &IntakeJournal{
		dbBeginner: dbBeginner,
		dbExecutor: dbExecutor,
		beginTx:    beginTx,
		commitTx:   commitTx,
		rollbackTx: rollbackTx,
	}
}

// EnsureSchema creates the journal tables when they do not exist yet.
func (j *IntakeJournal) EnsureSchema(ctx context.Context) error {
	for _, stmt := range []string{createEventsTable, createEventsIndex, createTotalsTable} {
		if _, err := j.dbExecutor.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure journal schema: %w", err)
		}
	}
	return nil
}

// Append stores the event and bumps the user's running total in one transaction.
func (j *IntakeJournal) Append(ctx context.Context, event domain.IntakeEvent) error {
	txController, err := j.beginTx(ctx, j.dbBeginner)
	if err != nil {
		return fmt.Errorf("append intake: failed to begin transaction: %w", err)
	}
	defer j.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return fmt.Errorf("append intake: transaction controller does not implement DBExecutor")
	}

	if _, err := txExecutor.ExecContext(ctx, txExecutor.Rebind(insertEvent),
		event.ID, event.UserID, event.Liters, event.RecordedAt,
	); err != nil {
		return fmt.Errorf("append intake: failed to insert event %s: %w", event.ID, err)
	}

	if _, err := txExecutor.ExecContext(ctx, txExecutor.Rebind(upsertTotal),
		event.UserID, event.Liters, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("append intake: failed to update total for user %d: %w", event.UserID, err)
	}

	if err := j.commitTx(txController); err != nil {
		return fmt.Errorf("append intake: failed to commit transaction: %w", err)
	}
	return nil
}

// ListByUser returns a page of the user's events, newest first, and the total count.
func (j *IntakeJournal) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.IntakeEvent, int64, error) {
	events := []domain.IntakeEvent{}
	if err := j.dbExecutor.SelectContext(ctx, &events, j.dbExecutor.Rebind(selectEvents), userID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("failed to fetch intake events for user %d: %w", userID, err)
	}

	var total int64
	if err := j.dbExecutor.GetContext(ctx, &total, j.dbExecutor.Rebind(selectEventCount), userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return events, 0, nil
		}
		return nil, 0, fmt.Errorf("failed to count intake events for user %d: %w", userID, err)
	}
	return events, total, nil
}
