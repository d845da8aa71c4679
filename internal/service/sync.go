// backend-go/internal/service/sync.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/storedispatch/backend-go/internal/domain"
	"github.com/storedispatch/backend-go/internal/repository"
)

// SagaStep is one single-database statement of a cross-database transition.
type SagaStep struct {
	Target string
	Name   string
	Run    func(ctx context.Context) error
}

// Saga is an ordered list of steps implementing one lifecycle transition.
// Steps commit independently: there is no rollback of earlier steps when a
// later one fails, only a journal trail showing how far the run got.
type Saga struct {
	OrderNo    string
	Transition string
	Steps      []SagaStep
}

// SagaRunner executes sagas in their fixed step order and journals progress.
type SagaRunner struct {
	journal repository.SyncJournalRepository
}

func NewSagaRunner(journal repository.SyncJournalRepository) *SagaRunner {
	return &SagaRunner{journal: journal}
}

// Execute runs the saga's steps in order. The first failing step aborts the
// remainder and surfaces a PersistenceError naming the target store, unless
// the step already produced a typed domain error (NotFoundError from a
// zero-row update, for instance), which passes through unchanged. Journal
// writes are advisory: their failure is logged, never fatal.
func (r *SagaRunner) Execute(ctx context.Context, saga *Saga) error {
	entry := &domain.SyncJournalEntry{
		ID:         uuid.NewString(),
		OrderNo:    saga.OrderNo,
		Transition: saga.Transition,
		TotalSteps: len(saga.Steps),
	}
	if err := r.journal.Begin(ctx, entry); err != nil {
		log.Warn().Err(err).Str("order_no", saga.OrderNo).Str("transition", saga.Transition).
			Msg("could not journal transition start")
	}

	for i, step := range saga.Steps {
		if err := step.Run(ctx); err != nil {
			var nf *domain.NotFoundError
			var ve *domain.ValidationError
			var pe *domain.PersistenceError
			if errors.As(err, &nf) || errors.As(err, &ve) || errors.As(err, &pe) {
				return err
			}
			return domain.NewPersistenceError(step.Target, saga.Transition+"/"+step.Name, err)
		}
		if err := r.journal.Advance(ctx, entry.ID, step.Name, i+1); err != nil {
			log.Warn().Err(err).Str("order_no", saga.OrderNo).Str("step", step.Name).
				Msg("could not journal step completion")
		}
	}
	return nil
}

// StoreMirrorFactory resolves the dedicated mirror repository for a named
// store. Resolution happens lazily because store pools open on first use.
type StoreMirrorFactory func(ctx context.Context, storeName string) (repository.StoreOrderRepository, error)

// SyncService covers the secondary synchronization paths: the best-effort
// per-store dispatch mirror, the pending-transition report, and cloud replay
// of local orders the mirror write missed.
type SyncService struct {
	cloud   repository.CloudOrderRepository
	local   repository.LocalOrderRepository
	journal repository.SyncJournalRepository
	mirror  StoreMirrorFactory
}

func NewSyncService(
	cloud repository.CloudOrderRepository,
	local repository.LocalOrderRepository,
	journal repository.SyncJournalRepository,
	mirror StoreMirrorFactory,
) *SyncService {
	return &SyncService{cloud: cloud, local: local, journal: journal, mirror: mirror}
}

// MirrorDispatch replays a dispatch stamp onto the order's store database.
// Every failure path returns a SyncWarning rather than an error: the primary
// dispatch already committed and must not be reported as failed.
func (s *SyncService) MirrorDispatch(ctx context.Context, orderNo string) *domain.SyncWarning {
	header, err := s.local.GetHeader(ctx, orderNo)
	if err != nil {
		return domain.NewSyncWarning("store:?", "could not read order header: "+err.Error())
	}
	if header == nil || header.StoreName == "" {
		return domain.NewSyncWarning("store:?", "order has no store name")
	}
	target := repository.TargetStore(header.StoreName)

	repo, err := s.mirror(ctx, header.StoreName)
	if err != nil {
		return domain.NewSyncWarning(target, "could not reach store database: "+err.Error())
	}

	by := ""
	if header.DispatchBy != nil {
		by = *header.DispatchBy
	}
	if header.DispatchedDate == nil {
		return domain.NewSyncWarning(target, "order is not dispatched locally")
	}

	affected, err := repo.MirrorDispatch(ctx, orderNo, by, *header.DispatchedDate)
	if err != nil {
		return domain.NewSyncWarning(target, "mirror update failed: "+err.Error())
	}
	if affected == 0 {
		return domain.NewSyncWarning(target, "order not present in store database")
	}
	return nil
}

// Pending lists half-applied cross-database transitions from the journal.
func (s *SyncService) Pending(ctx context.Context) ([]*domain.SyncJournalEntry, error) {
	return s.journal.ListPending(ctx)
}

// Replay pushes local orders that never reached the cloud mirror back up:
// every local header missing from tblorders is re-inserted from its local
// header and line rows. Returns the number of orders synced.
func (s *SyncService) Replay(ctx context.Context) (int, error) {
	orders, err := s.local.ListOrders(ctx)
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, h := range orders {
		exists, err := s.cloud.OrderExists(ctx, h.OrderNo)
		if err != nil {
			return synced, err
		}
		if exists {
			continue
		}

		line, err := s.local.GetLine(ctx, h.OrderNo)
		if err != nil {
			return synced, err
		}
		if line == nil {
			// Header without a line is a known defect class; nothing usable
			// to mirror yet.
			log.Warn().Str("order_no", h.OrderNo).Msg("skipping replay of order without line row")
			continue
		}

		if err := s.cloud.InsertMirror(ctx, h, line); err != nil {
			return synced, domain.NewPersistenceError(repository.TargetCloud, "replay/insert mirror", err)
		}
		synced++
		log.Info().Str("order_no", h.OrderNo).Msg("replayed order to cloud mirror")
	}
	return synced, nil
}
