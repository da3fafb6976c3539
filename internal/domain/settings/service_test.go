package settings

import (
	"context"
	"testing"

	"billbook/internal/core/apperror"
)

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	row  *Settings
	gets int
}

func (r *fakeRepo) Get(ctx context.Context) (*Settings, error) {
	r.gets++
	if r.row == nil {
		return nil, apperror.NewNotFound("settings", nil)
	}
	return r.row, nil
}

func (r *fakeRepo) Upsert(ctx context.Context, s *Settings) error {
	r.row = s
	return nil
}

func TestService_Get_DefaultWhenUnset(t *testing.T) {
	svc := NewService(&fakeRepo{}, fakeTxManager{})

	got, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CompanyName != "" {
		t.Errorf("expected empty default, got %q", got.CompanyName)
	}
}

func TestService_Get_Cached(t *testing.T) {
	repo := &fakeRepo{row: &Settings{CompanyName: "SQ Enterprises"}}
	svc := NewService(repo, fakeTxManager{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := svc.Get(ctx)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.CompanyName != "SQ Enterprises" {
			t.Errorf("company = %q", got.CompanyName)
		}
	}
	if repo.gets != 1 {
		t.Errorf("expected a single repository read, got %d", repo.gets)
	}
}

func TestService_Update_InvalidatesCache(t *testing.T) {
	repo := &fakeRepo{row: &Settings{CompanyName: "Old Name"}}
	svc := NewService(repo, fakeTxManager{})
	ctx := context.Background()

	if _, err := svc.Get(ctx); err != nil {
		t.Fatalf("get: %v", err)
	}

	if err := svc.Update(ctx, &Settings{CompanyName: "New Name"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CompanyName != "New Name" {
		t.Errorf("company after update = %q, want New Name", got.CompanyName)
	}
}

func TestService_Update_KeepsSingletonID(t *testing.T) {
	existing := Default()
	existing.CompanyName = "Old"
	repo := &fakeRepo{row: existing}
	svc := NewService(repo, fakeTxManager{})

	updated := Default()
	updated.CompanyName = "New"
	if err := svc.Update(context.Background(), updated); err != nil {
		t.Fatalf("update: %v", err)
	}
	if repo.row.ID != existing.ID {
		t.Error("update must reuse the singleton row id")
	}
}

func TestService_Get_ReturnsCopy(t *testing.T) {
	repo := &fakeRepo{row: &Settings{CompanyName: "SQ Enterprises"}}
	svc := NewService(repo, fakeTxManager{})
	ctx := context.Background()

	got, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.CompanyName = "mutated"

	again, err := svc.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if again.CompanyName != "SQ Enterprises" {
		t.Error("callers must not be able to mutate the cached profile")
	}
}
