package quotation

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"billbook/internal/core/apperror"
	"billbook/internal/core/id"
	"billbook/internal/core/types"
	"billbook/internal/domain"
	"billbook/internal/domain/catalogs/customer"
	"billbook/internal/domain/catalogs/item"
	"billbook/pkg/numerator"
)

// --- Fakes ---

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type seqRow struct{ val int64 }

func (r seqRow) Scan(dest ...any) error {
	*(dest[0].(*int64)) = r.val
	return nil
}

type fakeSequences struct{ counter int64 }

func (f *fakeSequences) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	f.counter++
	return seqRow{val: f.counter}
}

type fakeItems struct {
	items map[id.ID]*item.Item
}

func (f *fakeItems) GetByID(ctx context.Context, itemID id.ID) (*item.Item, error) {
	it, ok := f.items[itemID]
	if !ok {
		return nil, apperror.NewNotFound("item", itemID.String())
	}
	return it, nil
}

type fakeCustomers struct {
	customers map[id.ID]*customer.Customer
}

func (f *fakeCustomers) GetByID(ctx context.Context, customerID id.ID) (*customer.Customer, error) {
	c, ok := f.customers[customerID]
	if !ok {
		return nil, apperror.NewNotFound("customer", customerID.String())
	}
	return c, nil
}

type fakeRepo struct {
	docs  map[id.ID]*Quotation
	lines map[id.ID][]Line
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{docs: make(map[id.ID]*Quotation), lines: make(map[id.ID][]Line)}
}

func (r *fakeRepo) Create(ctx context.Context, doc *Quotation) error {
	r.docs[doc.ID] = doc
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, docID id.ID) (*Quotation, error) {
	doc, ok := r.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("quotation", docID.String())
	}
	return doc, nil
}

func (r *fakeRepo) GetByNumber(ctx context.Context, number string) (*Quotation, error) {
	for _, doc := range r.docs {
		if doc.Number == number {
			return doc, nil
		}
	}
	return nil, apperror.NewNotFound("quotation", number)
}

func (r *fakeRepo) Delete(ctx context.Context, docID id.ID) error {
	delete(r.docs, docID)
	delete(r.lines, docID)
	return nil
}

func (r *fakeRepo) GetLines(ctx context.Context, docID id.ID) ([]Line, error) {
	return r.lines[docID], nil
}

func (r *fakeRepo) SaveLines(ctx context.Context, docID id.ID, lines []Line) error {
	r.lines[docID] = lines
	return nil
}

func (r *fakeRepo) List(ctx context.Context, f ListFilter) (domain.ListResult[*Quotation], error) {
	res := domain.ListResult[*Quotation]{}
	for _, doc := range r.docs {
		res.Items = append(res.Items, doc)
	}
	res.TotalCount = int64(len(res.Items))
	return res, nil
}

type fixture struct {
	svc   *Service
	repo  *fakeRepo
	pipe  *item.Item
	buyer *customer.Customer
}

func newFixture() *fixture {
	pipe := item.NewItem("Steel Pipe", types.MustMoney("100"))
	pipe.Stock = 10
	pipe.TaxRate = types.MustMoney("18")

	buyer := customer.NewCustomer("Acme Traders")

	repo := newFakeRepo()
	svc := NewService(
		repo,
		&fakeItems{items: map[id.ID]*item.Item{pipe.ID: pipe}},
		&fakeCustomers{customers: map[id.ID]*customer.Customer{buyer.ID: buyer}},
		numerator.New(&fakeSequences{}),
		fakeTxManager{},
	)

	return &fixture{svc: svc, repo: repo, pipe: pipe, buyer: buyer}
}

// --- Tests ---

func TestParseValidUntil(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"31/12/2026", time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), true},
		{"2026-12-31", time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), true},
		{"12-31-2026", time.Time{}, false},
		{"not a date", time.Time{}, false},
		{"", time.Time{}, false},
	}

	for _, c := range cases {
		got, err := ParseValidUntil(c.in)
		if c.ok {
			if err != nil {
				t.Errorf("ParseValidUntil(%q): unexpected error %v", c.in, err)
				continue
			}
			if !got.Equal(c.want) {
				t.Errorf("ParseValidUntil(%q) = %v, want %v", c.in, got, c.want)
			}
			continue
		}

		appErr, isApp := apperror.AsAppError(err)
		if !isApp || appErr.Code != apperror.CodeDateParse {
			t.Errorf("ParseValidUntil(%q): expected date parse error, got %v", c.in, err)
		}
	}
}

func TestService_Create(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	doc := New()
	doc.CustomerID = &f.buyer.ID
	doc.ValidUntil = time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	if err := f.svc.ResolveLine(ctx, doc, f.pipe.ID, 2, nil); err != nil {
		t.Fatalf("resolve line: %v", err)
	}

	if err := f.svc.Create(ctx, doc); err != nil {
		t.Fatalf("create: %v", err)
	}

	if !strings.HasPrefix(doc.Number, "QTE-") {
		t.Errorf("number = %q, want QTE- prefix", doc.Number)
	}
	if doc.CustomerName != "Acme Traders" {
		t.Errorf("customer snapshot = %q", doc.CustomerName)
	}
	if !doc.TotalAmount.Equal(types.MustMoney("236")) {
		t.Errorf("total = %s, want 236", doc.TotalAmount)
	}
	// Quotations never affect stock.
	if f.pipe.Stock != 10 {
		t.Errorf("stock = %d, want 10", f.pipe.Stock)
	}
}

func TestService_ResolveLine_PriceOverride(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	doc := New()
	override := "80"
	if err := f.svc.ResolveLine(ctx, doc, f.pipe.ID, 1, &override); err != nil {
		t.Fatalf("resolve line: %v", err)
	}

	line := doc.Lines[0]
	if !line.Price.Equal(types.MustMoney("80")) {
		t.Errorf("price = %s, want override 80", line.Price)
	}
	// Tax rate still comes from the catalog.
	if !line.TaxRate.Equal(types.MustMoney("18")) {
		t.Errorf("tax rate = %s, want 18", line.TaxRate)
	}
}

func TestService_ResolveLine_BadOverride(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	doc := New()
	override := "eighty"
	err := f.svc.ResolveLine(ctx, doc, f.pipe.ID, 1, &override)
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestQuotation_Validate_RequiresValidity(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	doc := New()
	doc.CustomerID = &f.buyer.ID
	if err := f.svc.ResolveLine(ctx, doc, f.pipe.ID, 1, nil); err != nil {
		t.Fatalf("resolve line: %v", err)
	}

	err := f.svc.Create(ctx, doc)
	if err == nil {
		t.Fatal("expected validation error for missing validity date")
	}
}
