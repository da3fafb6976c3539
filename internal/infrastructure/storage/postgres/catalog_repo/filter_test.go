package catalog_repo

import (
	"testing"

	"billbook/internal/core/apperror"
)

func newTestRepo() *BaseCatalogRepo[any] {
	return NewBaseCatalogRepo[any](nil, "test_table", []string{"id", "name", "created_at"}, func() any { return nil })
}

func TestBaseCatalogRepo_SearchFilter_SQL(t *testing.T) {
	repo := newTestRepo()

	q := repo.baseSelect().
		Where("name ILIKE ?", "%pipe%")

	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "SELECT id, name, created_at FROM test_table WHERE name ILIKE $1"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if len(args) != 1 || args[0] != "%pipe%" {
		t.Errorf("Args mismatch\nwant: [%%pipe%%]\ngot:  %v", args)
	}
}

func TestParseOrderBy(t *testing.T) {
	repo := newTestRepo()

	tests := []struct {
		name    string
		orderBy string
		want    string
		wantErr bool
	}{
		{name: "Default", orderBy: "", want: "name ASC"},
		{name: "Ascending", orderBy: "created_at", want: "created_at ASC"},
		{name: "Descending", orderBy: "-created_at", want: "created_at DESC"},
		{name: "ExplicitPlus", orderBy: "+name", want: "name ASC"},
		{name: "UnknownColumn", orderBy: "password", wantErr: true},
		{name: "Injection", orderBy: "name; DROP TABLE test_table", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.parseOrderBy(tt.orderBy)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseOrderBy(%q) expected error, got %q", tt.orderBy, got)
				}
				if !apperror.IsAppError(err) {
					t.Errorf("parseOrderBy(%q) expected AppError, got %v", tt.orderBy, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseOrderBy(%q) failed: %v", tt.orderBy, err)
			}
			if got != tt.want {
				t.Errorf("parseOrderBy(%q)\nwant: %s\ngot:  %s", tt.orderBy, tt.want, got)
			}
		})
	}
}
