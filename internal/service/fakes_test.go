// backend-go/internal/service/fakes_test.go
package service_test

import (
	"context"
	"time"

	"github.com/storedispatch/backend-go/internal/domain"
)

// fakeCloudRepo records calls against the cloud mirror. Orders present in
// the orders set exist; stamps against anything else affect zero rows.
type fakeCloudRepo struct {
	orders map[string]bool

	insertErr error
	stampErr  error

	inserted []string
	stamps   []string
}

func newFakeCloudRepo(orderNos ...string) *fakeCloudRepo {
	orders := make(map[string]bool)
	for _, no := range orderNos {
		orders[no] = true
	}
	return &fakeCloudRepo{orders: orders}
}

func (f *fakeCloudRepo) InsertMirror(_ context.Context, h *domain.Order, _ *domain.OrderLine) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.orders[h.OrderNo] = true
	f.inserted = append(f.inserted, h.OrderNo)
	return nil
}

func (f *fakeCloudRepo) OrderExists(_ context.Context, orderNo string) (bool, error) {
	return f.orders[orderNo], nil
}

func (f *fakeCloudRepo) stamp(name, orderNo string) (int64, error) {
	if f.stampErr != nil {
		return 0, f.stampErr
	}
	if !f.orders[orderNo] {
		return 0, nil
	}
	f.stamps = append(f.stamps, name+":"+orderNo)
	return 1, nil
}

func (f *fakeCloudRepo) StampApproved(_ context.Context, orderNo, _ string, _ time.Time, _ int) (int64, error) {
	return f.stamp("approved", orderNo)
}

func (f *fakeCloudRepo) StampPacked(_ context.Context, orderNo, _ string, _ time.Time, _ int) (int64, error) {
	return f.stamp("packed", orderNo)
}

func (f *fakeCloudRepo) StampDispatched(_ context.Context, orderNo, _ string, _ time.Time, _ int) (int64, error) {
	return f.stamp("dispatched", orderNo)
}

func (f *fakeCloudRepo) StampReceived(_ context.Context, orderNo string, _ time.Time, _ int) (int64, error) {
	return f.stamp("received", orderNo)
}

func (f *fakeCloudRepo) ListByStore(_ context.Context, _ string) ([]*domain.OrderView, error) {
	return nil, nil
}

// fakeLocalRepo mirrors fakeCloudRepo for the local database.
type fakeLocalRepo struct {
	headers map[string]*domain.Order
	lines   map[string]*domain.OrderLine
	boxes   []*domain.BoxInfo

	insertErr error
	stampErr  error

	stamps []string
}

func newFakeLocalRepo() *fakeLocalRepo {
	return &fakeLocalRepo{
		headers: make(map[string]*domain.Order),
		lines:   make(map[string]*domain.OrderLine),
	}
}

func (f *fakeLocalRepo) InsertHeader(_ context.Context, h *domain.Order) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.headers[h.OrderNo] = h
	return nil
}

func (f *fakeLocalRepo) InsertLine(_ context.Context, l *domain.OrderLine) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.lines[l.OrderNo] = l
	return nil
}

func (f *fakeLocalRepo) InsertBox(_ context.Context, b *domain.BoxInfo) error {
	f.boxes = append(f.boxes, b)
	return nil
}

func (f *fakeLocalRepo) CountBoxes(_ context.Context, orderNo string) (int, error) {
	n := 0
	for _, b := range f.boxes {
		if b.OrderNo == orderNo {
			n++
		}
	}
	return n, nil
}

func (f *fakeLocalRepo) stamp(name, orderNo string) (int64, error) {
	if f.stampErr != nil {
		return 0, f.stampErr
	}
	if _, ok := f.headers[orderNo]; !ok {
		return 0, nil
	}
	f.stamps = append(f.stamps, name+":"+orderNo)
	return 1, nil
}

func (f *fakeLocalRepo) ApproveHeader(_ context.Context, orderNo, _ string, _ time.Time) (int64, error) {
	return f.stamp("approve header", orderNo)
}

func (f *fakeLocalRepo) ApproveLine(_ context.Context, orderNo string, _ int) (int64, error) {
	return f.stamp("approve line", orderNo)
}

func (f *fakeLocalRepo) PackHeader(_ context.Context, orderNo, _ string, _ time.Time) (int64, error) {
	return f.stamp("pack header", orderNo)
}

func (f *fakeLocalRepo) PackLine(_ context.Context, orderNo string, _ int) (int64, error) {
	return f.stamp("pack line", orderNo)
}

func (f *fakeLocalRepo) DispatchHeader(_ context.Context, orderNo, by string, at time.Time) (int64, error) {
	n, err := f.stamp("dispatch header", orderNo)
	if n == 1 {
		f.headers[orderNo].DispatchBy = &by
		f.headers[orderNo].DispatchedDate = &at
	}
	return n, err
}

func (f *fakeLocalRepo) DispatchLine(_ context.Context, orderNo string, _ int) (int64, error) {
	return f.stamp("dispatch line", orderNo)
}

func (f *fakeLocalRepo) Receive(_ context.Context, orderNo string, _ time.Time, _ int) (int64, error) {
	return f.stamp("receive", orderNo)
}

func (f *fakeLocalRepo) GetHeader(_ context.Context, orderNo string) (*domain.Order, error) {
	return f.headers[orderNo], nil
}

func (f *fakeLocalRepo) GetLine(_ context.Context, orderNo string) (*domain.OrderLine, error) {
	return f.lines[orderNo], nil
}

func (f *fakeLocalRepo) ListOrders(_ context.Context) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, h := range f.headers {
		out = append(out, h)
	}
	return out, nil
}

func (f *fakeLocalRepo) ListByStore(_ context.Context, _ string) ([]*domain.OrderView, error) {
	return nil, nil
}

func (f *fakeLocalRepo) ListDiscrepancies(_ context.Context) ([]*domain.Discrepancy, error) {
	return nil, nil
}

// fakeStoreRepo knows a fixed set of stores.
type fakeStoreRepo struct {
	stores map[string]*domain.Store
}

func newFakeStoreRepo(names ...string) *fakeStoreRepo {
	stores := make(map[string]*domain.Store)
	for i, name := range names {
		stores[name] = &domain.Store{ID: int64(i + 1), StoreName: name}
	}
	return &fakeStoreRepo{stores: stores}
}

func (f *fakeStoreRepo) FindByName(_ context.Context, name string) (*domain.Store, error) {
	return f.stores[name], nil
}

func (f *fakeStoreRepo) List(_ context.Context) ([]*domain.Store, error) {
	var out []*domain.Store
	for _, s := range f.stores {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStoreRepo) CreateWithUser(_ context.Context, store *domain.Store, _ *domain.User) (int64, int64, error) {
	f.stores[store.StoreName] = store
	return int64(len(f.stores)), int64(len(f.stores)), nil
}

// fakeCatalogRepo serves a fixed product and pack-size set.
type fakeCatalogRepo struct {
	products  map[string]*domain.Product
	packSizes []domain.PackSize
}

func (f *fakeCatalogRepo) ListProducts(_ context.Context) ([]*domain.Product, error) {
	var out []*domain.Product
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeCatalogRepo) ListAvailableProducts(_ context.Context) ([]*domain.Product, error) {
	return f.ListProducts(context.Background())
}

func (f *fakeCatalogRepo) GetProduct(_ context.Context, stockCode string) (*domain.Product, error) {
	return f.products[stockCode], nil
}

func (f *fakeCatalogRepo) ListCategories(_ context.Context) ([]*domain.Category, error) {
	return nil, nil
}

func (f *fakeCatalogRepo) ListPackSizes(_ context.Context) ([]domain.PackSize, error) {
	return f.packSizes, nil
}

// fakeJournal records journal writes in memory.
type fakeJournal struct {
	begun    []*domain.SyncJournalEntry
	advances []string
	beginErr error
}

func (f *fakeJournal) Begin(_ context.Context, e *domain.SyncJournalEntry) error {
	if f.beginErr != nil {
		return f.beginErr
	}
	f.begun = append(f.begun, e)
	return nil
}

func (f *fakeJournal) Advance(_ context.Context, id, lastStep string, stepIndex int) error {
	f.advances = append(f.advances, lastStep)
	for _, e := range f.begun {
		if e.ID == id {
			e.LastStep = lastStep
			e.StepIndex = stepIndex
		}
	}
	return nil
}

func (f *fakeJournal) ListPending(_ context.Context) ([]*domain.SyncJournalEntry, error) {
	var pending []*domain.SyncJournalEntry
	for _, e := range f.begun {
		if e.StepIndex < e.TotalSteps {
			pending = append(pending, e)
		}
	}
	return pending, nil
}

func (f *fakeJournal) MarkComplete(_ context.Context, _ string) error {
	return nil
}

// fakeMirrorRepo is a per-store dispatch mirror.
type fakeMirrorRepo struct {
	affected int64
	err      error
	calls    []string
}

func (f *fakeMirrorRepo) MirrorDispatch(_ context.Context, orderNo, _ string, _ time.Time) (int64, error) {
	f.calls = append(f.calls, orderNo)
	return f.affected, f.err
}

// fakeGRNRepo records receipts.
type fakeGRNRepo struct {
	err      error
	grns     []*domain.GRN
	lines    [][]*domain.GRNLine
	complete []int
}

func (f *fakeGRNRepo) CreateReceipt(_ context.Context, grn *domain.GRN, lines []*domain.GRNLine, complete int) error {
	if f.err != nil {
		return f.err
	}
	f.grns = append(f.grns, grn)
	f.lines = append(f.lines, lines)
	f.complete = append(f.complete, complete)
	return nil
}

// fakeUserRepo stores users keyed by lowercase email.
type fakeUserRepo struct {
	users  map[string]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) (int64, error) {
	f.nextID++
	u.ID = f.nextID
	f.users[lower(u.Email)] = u
	return u.ID, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return f.users[lower(email)], nil
}

func lower(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
