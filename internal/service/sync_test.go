// backend-go/internal/service/sync_test.go
package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/storedispatch/backend-go/internal/domain"
	"github.com/storedispatch/backend-go/internal/repository"
	"github.com/storedispatch/backend-go/internal/service"
)

func TestSagaRunner_RunsStepsInOrder(t *testing.T) {
	journal := &fakeJournal{}
	runner := service.NewSagaRunner(journal)

	var ran []string
	step := func(name string) service.SagaStep {
		return service.SagaStep{
			Target: repository.TargetLocal,
			Name:   name,
			Run: func(context.Context) error {
				ran = append(ran, name)
				return nil
			},
		}
	}

	saga := &service.Saga{
		OrderNo:    "ORD-1",
		Transition: "create",
		Steps:      []service.SagaStep{step("first"), step("second"), step("third")},
	}
	if err := runner.Execute(context.Background(), saga); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"first", "second", "third"}
	if len(ran) != len(want) {
		t.Fatalf("ran %v, want %v", ran, want)
	}
	for i := range want {
		if ran[i] != want[i] {
			t.Errorf("step %d: ran %s, want %s", i, ran[i], want[i])
		}
	}
	if len(journal.advances) != 3 {
		t.Errorf("journal advanced %d times, want 3", len(journal.advances))
	}
}

func TestSagaRunner_AbortsOnFirstFailure(t *testing.T) {
	runner := service.NewSagaRunner(&fakeJournal{})

	var ran []string
	boom := errors.New("connection reset")
	saga := &service.Saga{
		OrderNo:    "ORD-1",
		Transition: "approve",
		Steps: []service.SagaStep{
			{Target: repository.TargetCloud, Name: "stamp mirror", Run: func(context.Context) error {
				ran = append(ran, "stamp mirror")
				return boom
			}},
			{Target: repository.TargetLocal, Name: "stamp header", Run: func(context.Context) error {
				ran = append(ran, "stamp header")
				return nil
			}},
		},
	}

	err := runner.Execute(context.Background(), saga)
	if err == nil {
		t.Fatal("expected an error")
	}
	if len(ran) != 1 {
		t.Errorf("later steps must not run after a failure, ran %v", ran)
	}

	var pe *domain.PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PersistenceError, got %T", err)
	}
	if pe.Target != repository.TargetCloud {
		t.Errorf("error target = %s, want %s", pe.Target, repository.TargetCloud)
	}
	if !errors.Is(err, boom) {
		t.Error("underlying cause should be preserved")
	}
}

func TestSagaRunner_TypedErrorsPassThrough(t *testing.T) {
	runner := service.NewSagaRunner(&fakeJournal{})

	saga := &service.Saga{
		OrderNo:    "ORD-MISSING",
		Transition: "pack",
		Steps: []service.SagaStep{
			{Target: repository.TargetCloud, Name: "stamp mirror", Run: func(context.Context) error {
				return domain.NewNotFoundError("order", "ORD-MISSING")
			}},
		},
	}

	err := runner.Execute(context.Background(), saga)
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("NotFoundError should not be wrapped into a PersistenceError, got %T", err)
	}
}

func TestSagaRunner_JournalFailureIsNotFatal(t *testing.T) {
	journal := &fakeJournal{beginErr: errors.New("journal table missing")}
	runner := service.NewSagaRunner(journal)

	saga := &service.Saga{
		OrderNo:    "ORD-1",
		Transition: "create",
		Steps: []service.SagaStep{
			{Target: repository.TargetLocal, Name: "insert header", Run: func(context.Context) error {
				return nil
			}},
		},
	}
	if err := runner.Execute(context.Background(), saga); err != nil {
		t.Fatalf("journal failure must not fail the saga: %v", err)
	}
}

func newSyncService(cloud *fakeCloudRepo, local *fakeLocalRepo, mirror *fakeMirrorRepo, mirrorErr error) *service.SyncService {
	factory := func(context.Context, string) (repository.StoreOrderRepository, error) {
		if mirrorErr != nil {
			return nil, mirrorErr
		}
		return mirror, nil
	}
	return service.NewSyncService(cloud, local, &fakeJournal{}, factory)
}

func dispatchedHeader(orderNo, store string) *domain.Order {
	by := "warehouse"
	at := time.Now()
	return &domain.Order{
		OrderNo:        orderNo,
		StoreName:      store,
		DispatchBy:     &by,
		DispatchedDate: &at,
	}
}

func TestSyncService_MirrorDispatch(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		local := newFakeLocalRepo()
		local.headers["ORD-1"] = dispatchedHeader("ORD-1", "MAINSTREET")
		mirror := &fakeMirrorRepo{affected: 1}

		svc := newSyncService(newFakeCloudRepo(), local, mirror, nil)
		if w := svc.MirrorDispatch(context.Background(), "ORD-1"); w != nil {
			t.Fatalf("unexpected warning: %v", w)
		}
		if len(mirror.calls) != 1 {
			t.Errorf("mirror called %d times, want 1", len(mirror.calls))
		}
	})

	t.Run("missing store name warns", func(t *testing.T) {
		local := newFakeLocalRepo()
		local.headers["ORD-1"] = dispatchedHeader("ORD-1", "")

		svc := newSyncService(newFakeCloudRepo(), local, &fakeMirrorRepo{affected: 1}, nil)
		if w := svc.MirrorDispatch(context.Background(), "ORD-1"); w == nil {
			t.Fatal("expected a warning for a header without a store name")
		}
	})

	t.Run("unreachable store warns", func(t *testing.T) {
		local := newFakeLocalRepo()
		local.headers["ORD-1"] = dispatchedHeader("ORD-1", "MAINSTREET")

		svc := newSyncService(newFakeCloudRepo(), local, nil, errors.New("dial tcp: refused"))
		w := svc.MirrorDispatch(context.Background(), "ORD-1")
		if w == nil {
			t.Fatal("expected a warning when the store database is unreachable")
		}
		if w.Target != repository.TargetStore("MAINSTREET") {
			t.Errorf("warning target = %s, want %s", w.Target, repository.TargetStore("MAINSTREET"))
		}
	})

	t.Run("zero rows in store mirror warns", func(t *testing.T) {
		local := newFakeLocalRepo()
		local.headers["ORD-1"] = dispatchedHeader("ORD-1", "MAINSTREET")

		svc := newSyncService(newFakeCloudRepo(), local, &fakeMirrorRepo{affected: 0}, nil)
		if w := svc.MirrorDispatch(context.Background(), "ORD-1"); w == nil {
			t.Fatal("expected a warning when the store database has no such order")
		}
	})
}

func TestSyncService_Replay(t *testing.T) {
	cloud := newFakeCloudRepo("ORD-KNOWN")
	local := newFakeLocalRepo()

	// Known to the cloud already: skipped.
	local.headers["ORD-KNOWN"] = &domain.Order{OrderNo: "ORD-KNOWN", StoreName: "MAINSTREET"}
	local.lines["ORD-KNOWN"] = &domain.OrderLine{OrderNo: "ORD-KNOWN"}

	// Missing from the cloud with a full line: replayed.
	local.headers["ORD-LOST"] = &domain.Order{OrderNo: "ORD-LOST", StoreName: "MAINSTREET"}
	local.lines["ORD-LOST"] = &domain.OrderLine{OrderNo: "ORD-LOST", StockCode: "BEV001"}

	// Missing from the cloud without a line row: skipped with a warning.
	local.headers["ORD-BARE"] = &domain.Order{OrderNo: "ORD-BARE", StoreName: "MAINSTREET"}

	svc := newSyncService(cloud, local, &fakeMirrorRepo{affected: 1}, nil)
	synced, err := svc.Replay(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if synced != 1 {
		t.Errorf("synced = %d, want 1", synced)
	}
	if len(cloud.inserted) != 1 || cloud.inserted[0] != "ORD-LOST" {
		t.Errorf("replayed %v, want [ORD-LOST]", cloud.inserted)
	}
}
