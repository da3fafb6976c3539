package history

import (
	"context"
	"testing"

	appctx "billbook/internal/core/context"
	"billbook/internal/core/id"
	"billbook/internal/domain"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	entries []*Entry
}

func (r *fakeRepo) Create(ctx context.Context, entry *Entry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeRepo) List(ctx context.Context, f ListFilter) (domain.ListResult[*Entry], error) {
	return domain.ListResult[*Entry]{Items: r.entries, TotalCount: int64(len(r.entries))}, nil
}

func (r *fakeRepo) DeleteAll(ctx context.Context) (int64, error) {
	n := int64(len(r.entries))
	r.entries = nil
	return n, nil
}

func TestService_RecordItemChange_Anonymous(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, fakeTxManager{})

	itemID := id.New()
	err := svc.RecordItemChange(context.Background(), itemID, "edit",
		map[string]any{"stock": 10}, map[string]any{"stock": 8})
	if err != nil {
		t.Fatalf("record: %v", err)
	}

	entry := repo.entries[0]
	if entry.UserID != nil {
		t.Error("anonymous change must not be attributed")
	}
	if entry.ItemID == nil || *entry.ItemID != itemID {
		t.Error("item reference missing")
	}
	if entry.Action != "edit" {
		t.Errorf("action = %q", entry.Action)
	}
	if entry.OldValues["stock"] != 10 || entry.NewValues["stock"] != 8 {
		t.Errorf("snapshots: old=%v new=%v", entry.OldValues, entry.NewValues)
	}
}

func TestService_RecordItemChange_Attributed(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, fakeTxManager{})

	userID := id.New()
	ctx := appctx.WithUser(context.Background(), &appctx.UserContext{
		UserID:   userID.String(),
		Username: "admin",
	})

	if err := svc.RecordItemChange(ctx, id.New(), "edit", nil, nil); err != nil {
		t.Fatalf("record: %v", err)
	}

	entry := repo.entries[0]
	if entry.UserID == nil || *entry.UserID != userID {
		t.Error("expected entry attributed to the session user")
	}
}

func TestService_Reset(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo, fakeTxManager{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := svc.RecordItemChange(ctx, id.New(), "edit", nil, nil); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	removed, err := svc.Reset(ctx)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if removed != 3 {
		t.Errorf("removed = %d, want 3", removed)
	}
	if len(repo.entries) != 0 {
		t.Error("ledger must be empty after reset")
	}
}
