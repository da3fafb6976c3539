package item

import (
	"context"
	"testing"

	"billbook/internal/core/apperror"
	"billbook/internal/core/id"
	"billbook/internal/core/types"
	"billbook/internal/domain"
)

// --- Fakes ---

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	items       map[id.ID]*Item
	refs        References
	cleared     bool
	deleted     []id.ID
	decremented map[id.ID]int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		items:       make(map[id.ID]*Item),
		decremented: make(map[id.ID]int),
	}
}

func (r *fakeRepo) Create(ctx context.Context, it *Item) error {
	r.items[it.ID] = it
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, itemID id.ID) (*Item, error) {
	it, ok := r.items[itemID]
	if !ok {
		return nil, apperror.NewNotFound("item", itemID.String())
	}
	return it, nil
}

func (r *fakeRepo) Update(ctx context.Context, it *Item) error {
	r.items[it.ID] = it
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, itemID id.ID) error {
	delete(r.items, itemID)
	r.deleted = append(r.deleted, itemID)
	return nil
}

func (r *fakeRepo) List(ctx context.Context, f domain.ListFilter) (domain.ListResult[*Item], error) {
	res := domain.ListResult[*Item]{Limit: f.Limit, Offset: f.Offset}
	for _, it := range r.items {
		res.Items = append(res.Items, it)
	}
	res.TotalCount = int64(len(res.Items))
	return res, nil
}

func (r *fakeRepo) Exists(ctx context.Context, itemID id.ID) (bool, error) {
	_, ok := r.items[itemID]
	return ok, nil
}

func (r *fakeRepo) FindByName(ctx context.Context, name string) (*Item, error) {
	for _, it := range r.items {
		if it.Name == name {
			return it, nil
		}
	}
	return nil, apperror.NewNotFound("item", name)
}

func (r *fakeRepo) GetForUpdate(ctx context.Context, itemID id.ID) (*Item, error) {
	return r.GetByID(ctx, itemID)
}

func (r *fakeRepo) DecrementStock(ctx context.Context, itemID id.ID, quantity int) (bool, error) {
	it, ok := r.items[itemID]
	if !ok || it.Stock < quantity {
		return false, nil
	}
	it.Stock -= quantity
	r.decremented[itemID] += quantity
	return true, nil
}

func (r *fakeRepo) CountReferences(ctx context.Context, itemID id.ID) (References, error) {
	return r.refs, nil
}

func (r *fakeRepo) ClearReferences(ctx context.Context, itemID id.ID) error {
	r.cleared = true
	r.refs = References{}
	return nil
}

type recordedChange struct {
	itemID    id.ID
	action    string
	oldValues map[string]any
	newValues map[string]any
}

type fakeRecorder struct {
	changes []recordedChange
}

func (f *fakeRecorder) RecordItemChange(ctx context.Context, itemID id.ID, action string, oldValues, newValues map[string]any) error {
	f.changes = append(f.changes, recordedChange{itemID, action, oldValues, newValues})
	return nil
}

func newTestService(repo *fakeRepo, rec *fakeRecorder) *Service {
	return NewService(repo, fakeTxManager{}, rec)
}

// --- Tests ---

func TestService_Update_RecordsHistory(t *testing.T) {
	repo := newFakeRepo()
	rec := &fakeRecorder{}
	svc := newTestService(repo, rec)
	ctx := context.Background()

	it := NewItem("Steel Pipe", types.MustMoney("150"))
	it.Stock = 10
	if err := svc.Create(ctx, it); err != nil {
		t.Fatalf("create: %v", err)
	}

	updated := *it
	updated.Price = types.MustMoney("175")
	updated.Stock = 8
	if err := svc.Update(ctx, &updated); err != nil {
		t.Fatalf("update: %v", err)
	}

	if len(rec.changes) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(rec.changes))
	}
	ch := rec.changes[0]
	if ch.action != "edit" {
		t.Errorf("action = %q, want edit", ch.action)
	}
	if ch.oldValues["stock"] != 10 || ch.newValues["stock"] != 8 {
		t.Errorf("stock snapshot mismatch: old=%v new=%v", ch.oldValues["stock"], ch.newValues["stock"])
	}
	oldPrice := ch.oldValues["price"].(types.Money)
	if !oldPrice.Equal(types.MustMoney("150")) {
		t.Errorf("old price = %s, want 150", oldPrice)
	}
}

func TestService_Create_RejectsDuplicateName(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeRecorder{})
	ctx := context.Background()

	if err := svc.Create(ctx, NewItem("Steel Pipe", types.MustMoney("150"))); err != nil {
		t.Fatalf("create: %v", err)
	}

	err := svc.Create(ctx, NewItem("Steel Pipe", types.MustMoney("99")))
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeDuplicate {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestService_Delete_BlockedByReferences(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeRecorder{})
	ctx := context.Background()

	it := NewItem("Steel Pipe", types.MustMoney("150"))
	if err := svc.Create(ctx, it); err != nil {
		t.Fatalf("create: %v", err)
	}
	repo.refs = References{BillLines: 2, HistoryEntries: 1}

	err := svc.Delete(ctx, it.ID)
	if !apperror.IsReferenced(err) {
		t.Fatalf("expected referenced error, got %v", err)
	}
	if len(repo.deleted) != 0 {
		t.Error("item must not be deleted while referenced")
	}
}

func TestService_Delete_UnreferencedSucceeds(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeRecorder{})
	ctx := context.Background()

	it := NewItem("Steel Pipe", types.MustMoney("150"))
	if err := svc.Create(ctx, it); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.Delete(ctx, it.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.deleted) != 1 {
		t.Error("expected item to be deleted")
	}
}

func TestService_ForceDelete_ClearsReferencesFirst(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeRecorder{})
	ctx := context.Background()

	it := NewItem("Steel Pipe", types.MustMoney("150"))
	if err := svc.Create(ctx, it); err != nil {
		t.Fatalf("create: %v", err)
	}
	repo.refs = References{BillLines: 3, QuotationLines: 1, HistoryEntries: 5}

	if err := svc.ForceDelete(ctx, it.ID); err != nil {
		t.Fatalf("force delete: %v", err)
	}
	if !repo.cleared {
		t.Error("expected references to be cleared")
	}
	if len(repo.deleted) != 1 {
		t.Error("expected item to be deleted after clearing references")
	}
}

func TestItem_Validate(t *testing.T) {
	ctx := context.Background()

	it := NewItem("", types.MustMoney("10"))
	if err := it.Validate(ctx); err == nil {
		t.Error("expected error for empty name")
	}

	it = NewItem("Pipe", types.MustMoney("-1"))
	if err := it.Validate(ctx); err == nil {
		t.Error("expected error for negative price")
	}

	it = NewItem("Pipe", types.MustMoney("10"))
	it.TaxRate = types.MustMoney("101")
	if err := it.Validate(ctx); err == nil {
		t.Error("expected error for tax rate above 100")
	}

	it = NewItem("Pipe", types.MustMoney("10"))
	it.TaxRate = types.MustMoney("18")
	if err := it.Validate(ctx); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
