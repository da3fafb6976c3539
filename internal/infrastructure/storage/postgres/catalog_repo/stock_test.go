package catalog_repo

import (
	"testing"

	"github.com/Masterminds/squirrel"

	"billbook/internal/core/id"
)

func TestItemRepo_DecrementStock_SQL(t *testing.T) {
	repo := newTestRepo()
	itemID := id.New()

	q := repo.Builder().
		Update("items").
		Set("stock", squirrel.Expr("stock - ?", 3)).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": itemID}).
		Where(squirrel.GtOrEq{"stock": 3})

	sql, args, err := q.ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "UPDATE items SET stock = stock - $1, version = version + 1 WHERE id = $2 AND stock >= $3"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if len(args) != 3 || args[0] != 3 || args[1] != itemID || args[2] != 3 {
		t.Errorf("Args mismatch\ngot: %v", args)
	}
}
