// backend-go/internal/repository/mysql/sync_journal.go
package mysql

import (
	"context"
	"fmt"

	"github.com/storedispatch/backend-go/internal/domain"
)

// syncJournalRepository records cross-database transition progress in the
// local database so a half-applied transition is detectable after a crash.
type syncJournalRepository struct {
	db *DB
}

func NewSyncJournalRepository(db *DB) *syncJournalRepository {
	return &syncJournalRepository{db: db}
}

func (r *syncJournalRepository) Begin(ctx context.Context, e *domain.SyncJournalEntry) error {
	ctx, cancel := r.db.StmtCtx(ctx)
	defer cancel()

	query := `
		INSERT INTO tblsync_journal (id, OrderNo, Transition, LastStep, StepIndex, TotalSteps, UpdatedAt)
		VALUES (?, ?, ?, ?, ?, ?, NOW())`
	_, err := r.db.ExecContext(ctx, query, e.ID, e.OrderNo, e.Transition, e.LastStep, e.StepIndex, e.TotalSteps)
	if err != nil {
		return fmt.Errorf("failed to begin sync journal entry: %w", err)
	}
	return nil
}

func (r *syncJournalRepository) Advance(ctx context.Context, id, lastStep string, stepIndex int) error {
	ctx, cancel := r.db.StmtCtx(ctx)
	defer cancel()

	query := `UPDATE tblsync_journal SET LastStep = ?, StepIndex = ?, UpdatedAt = NOW() WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, lastStep, stepIndex, id); err != nil {
		return fmt.Errorf("failed to advance sync journal entry: %w", err)
	}
	return nil
}

func (r *syncJournalRepository) ListPending(ctx context.Context) ([]*domain.SyncJournalEntry, error) {
	ctx, cancel := r.db.StmtCtx(ctx)
	defer cancel()

	var entries []*domain.SyncJournalEntry
	query := `
		SELECT id, OrderNo, Transition, LastStep, StepIndex, TotalSteps, UpdatedAt
		FROM tblsync_journal
		WHERE StepIndex < TotalSteps
		ORDER BY UpdatedAt`
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("failed to list pending sync entries: %w", err)
	}
	return entries, nil
}

func (r *syncJournalRepository) MarkComplete(ctx context.Context, id string) error {
	ctx, cancel := r.db.StmtCtx(ctx)
	defer cancel()

	query := `UPDATE tblsync_journal SET StepIndex = TotalSteps, UpdatedAt = NOW() WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to complete sync journal entry: %w", err)
	}
	return nil
}
