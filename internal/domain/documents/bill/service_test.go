package bill

import (
	"context"
	"strings"
	"testing"

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

type fakeInventory struct {
	items map[id.ID]*item.Item
}

func (f *fakeInventory) GetByID(ctx context.Context, itemID id.ID) (*item.Item, error) {
	it, ok := f.items[itemID]
	if !ok {
		return nil, apperror.NewNotFound("item", itemID.String())
	}
	return it, nil
}

func (f *fakeInventory) GetForUpdate(ctx context.Context, itemID id.ID) (*item.Item, error) {
	return f.GetByID(ctx, itemID)
}

func (f *fakeInventory) DecrementStock(ctx context.Context, itemID id.ID, quantity int) (bool, error) {
	it, ok := f.items[itemID]
	if !ok || it.Stock < quantity {
		return false, nil
	}
	it.Stock -= quantity
	return true, nil
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
	bills   map[id.ID]*Bill
	lines   map[id.ID][]Line
	deleted []id.ID
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bills: make(map[id.ID]*Bill), lines: make(map[id.ID][]Line)}
}

func (r *fakeRepo) Create(ctx context.Context, doc *Bill) error {
	r.bills[doc.ID] = doc
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, docID id.ID) (*Bill, error) {
	doc, ok := r.bills[docID]
	if !ok {
		return nil, apperror.NewNotFound("bill", docID.String())
	}
	return doc, nil
}

func (r *fakeRepo) GetByNumber(ctx context.Context, number string) (*Bill, error) {
	for _, doc := range r.bills {
		if doc.Number == number {
			return doc, nil
		}
	}
	return nil, apperror.NewNotFound("bill", number)
}

func (r *fakeRepo) Update(ctx context.Context, doc *Bill) error {
	r.bills[doc.ID] = doc
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, docID id.ID) error {
	delete(r.bills, docID)
	delete(r.lines, docID)
	r.deleted = append(r.deleted, docID)
	return nil
}

func (r *fakeRepo) GetLines(ctx context.Context, docID id.ID) ([]Line, error) {
	return r.lines[docID], nil
}

func (r *fakeRepo) SaveLines(ctx context.Context, docID id.ID, lines []Line) error {
	r.lines[docID] = lines
	return nil
}

func (r *fakeRepo) List(ctx context.Context, f ListFilter) (domain.ListResult[*Bill], error) {
	res := domain.ListResult[*Bill]{}
	for _, doc := range r.bills {
		res.Items = append(res.Items, doc)
	}
	res.TotalCount = int64(len(res.Items))
	return res, nil
}

func (r *fakeRepo) GetForUpdate(ctx context.Context, docID id.ID) (*Bill, error) {
	return r.GetByID(ctx, docID)
}

type fixture struct {
	svc       *Service
	repo      *fakeRepo
	inventory *fakeInventory
	customers *fakeCustomers
	pipe      *item.Item
	buyer     *customer.Customer
}

func newFixture() *fixture {
	pipe := item.NewItem("Steel Pipe", types.MustMoney("100"))
	pipe.Stock = 10
	pipe.TaxRate = types.MustMoney("18")

	buyer := customer.NewCustomer("Acme Traders")
	phone := "9876543210"
	buyer.Phone = &phone

	repo := newFakeRepo()
	inv := &fakeInventory{items: map[id.ID]*item.Item{pipe.ID: pipe}}
	custs := &fakeCustomers{customers: map[id.ID]*customer.Customer{buyer.ID: buyer}}
	num := numerator.New(&fakeSequences{})

	return &fixture{
		svc:       NewService(repo, inv, custs, num, fakeTxManager{}),
		repo:      repo,
		inventory: inv,
		customers: custs,
		pipe:      pipe,
		buyer:     buyer,
	}
}

// --- Tests ---

func TestService_Create(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	doc := New()
	doc.CustomerID = &f.buyer.ID
	doc.AddLine(&f.pipe.ID, 2, f.pipe.Price, f.pipe.TaxRate)

	if err := f.svc.Create(ctx, doc); err != nil {
		t.Fatalf("create: %v", err)
	}

	if !strings.HasPrefix(doc.Number, "SQE-") {
		t.Errorf("number = %q, want SQE- prefix", doc.Number)
	}
	if doc.CustomerName != "Acme Traders" {
		t.Errorf("customer snapshot name = %q", doc.CustomerName)
	}
	if doc.MobileNumber == nil || *doc.MobileNumber != "9876543210" {
		t.Error("customer snapshot phone missing")
	}
	if !doc.Subtotal.Equal(types.MustMoney("200")) {
		t.Errorf("subtotal = %s, want 200", doc.Subtotal)
	}
	if !doc.TaxTotal.Equal(types.MustMoney("36")) {
		t.Errorf("tax = %s, want 36", doc.TaxTotal)
	}
	if !doc.TotalAmount.Equal(types.MustMoney("236")) {
		t.Errorf("total = %s, want 236", doc.TotalAmount)
	}
	if doc.StockState != StockPending {
		t.Errorf("stock state = %s, want pending", doc.StockState)
	}
	// Stock is untouched until first render.
	if f.pipe.Stock != 10 {
		t.Errorf("stock = %d, want 10", f.pipe.Stock)
	}
}

func TestService_Create_InsufficientStock(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	doc := New()
	doc.CustomerID = &f.buyer.ID
	doc.AddLine(&f.pipe.ID, 11, f.pipe.Price, f.pipe.TaxRate)

	err := f.svc.Create(ctx, doc)
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeInsufficientStock {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if appErr.Details["requested"] != 11 || appErr.Details["available"] != 10 {
		t.Errorf("details = %v", appErr.Details)
	}
	if appErr.Details["item"] != "Steel Pipe" {
		t.Errorf("item detail = %v", appErr.Details["item"])
	}
	if len(f.repo.bills) != 0 {
		t.Error("bill must not be persisted on stock rejection")
	}
}

func TestService_Create_BoundaryQuantityAccepted(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	doc := New()
	doc.CustomerID = &f.buyer.ID
	doc.AddLine(&f.pipe.ID, 10, f.pipe.Price, f.pipe.TaxRate)

	if err := f.svc.Create(ctx, doc); err != nil {
		t.Fatalf("quantity equal to stock must be accepted: %v", err)
	}
}

func TestService_CommitStock(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	doc := New()
	doc.CustomerID = &f.buyer.ID
	doc.AddLine(&f.pipe.ID, 2, f.pipe.Price, f.pipe.TaxRate)
	if err := f.svc.Create(ctx, doc); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := f.svc.CommitStock(ctx, doc.ID); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if f.pipe.Stock != 8 {
		t.Errorf("stock = %d, want 8", f.pipe.Stock)
	}
	if !f.repo.bills[doc.ID].IsProcessed() {
		t.Error("bill must be committed")
	}

	// Second commit is a no-op.
	if err := f.svc.CommitStock(ctx, doc.ID); err != nil {
		t.Fatalf("repeat commit: %v", err)
	}
	if f.pipe.Stock != 8 {
		t.Errorf("stock = %d after repeat commit, want 8", f.pipe.Stock)
	}
}

func TestService_CommitStock_SkipsShortAndDetachedLines(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	doc := New()
	doc.CustomerID = &f.buyer.ID
	doc.AddLine(&f.pipe.ID, 2, f.pipe.Price, f.pipe.TaxRate)
	doc.AddLine(nil, 1, types.MustMoney("50"), types.Zero())
	if err := f.svc.Create(ctx, doc); err != nil {
		t.Fatalf("create: %v", err)
	}

	// A concurrent sale drained the stock after creation.
	f.pipe.Stock = 1

	if err := f.svc.CommitStock(ctx, doc.ID); err != nil {
		t.Fatalf("commit must not fail on stock race: %v", err)
	}
	if f.pipe.Stock != 1 {
		t.Errorf("short line must be skipped, stock = %d", f.pipe.Stock)
	}
	if !f.repo.bills[doc.ID].IsProcessed() {
		t.Error("bill must still be committed")
	}
}

func TestService_Delete_PendingBill(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	doc := New()
	doc.CustomerID = &f.buyer.ID
	doc.AddLine(&f.pipe.ID, 2, f.pipe.Price, f.pipe.TaxRate)
	if err := f.svc.Create(ctx, doc); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := f.svc.Delete(ctx, doc.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(f.repo.deleted) != 1 {
		t.Error("expected bill to be deleted")
	}
	// Pending bills never touched stock, so nothing to restore.
	if f.pipe.Stock != 10 {
		t.Errorf("stock = %d, want 10", f.pipe.Stock)
	}
}

func TestService_Delete_RejectedAfterCommit(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	doc := New()
	doc.CustomerID = &f.buyer.ID
	doc.AddLine(&f.pipe.ID, 2, f.pipe.Price, f.pipe.TaxRate)
	if err := f.svc.Create(ctx, doc); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := f.svc.CommitStock(ctx, doc.ID); err != nil {
		t.Fatalf("commit: %v", err)
	}

	err := f.svc.Delete(ctx, doc.ID)
	appErr, ok := apperror.AsAppError(err)
	if !ok || appErr.Code != apperror.CodeBillProcessed {
		t.Fatalf("expected bill processed error, got %v", err)
	}
	if len(f.repo.deleted) != 0 {
		t.Error("committed bill must not be deleted")
	}
}

func TestService_Create_SerialNumbers(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	var numbers []string
	for i := 0; i < 3; i++ {
		doc := New()
		doc.CustomerID = &f.buyer.ID
		doc.AddLine(&f.pipe.ID, 1, f.pipe.Price, f.pipe.TaxRate)
		if err := f.svc.Create(ctx, doc); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		numbers = append(numbers, doc.Number)
	}

	for i := 1; i < len(numbers); i++ {
		if numerator.ParseNumber(numbers[i]) != numerator.ParseNumber(numbers[i-1])+1 {
			t.Errorf("numbers not serial: %v", numbers)
		}
	}
}

func TestService_Create_WalkInCustomer(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	doc := New()
	doc.CustomerName = "Walk-in"
	doc.AddLine(&f.pipe.ID, 1, f.pipe.Price, f.pipe.TaxRate)

	if err := f.svc.Create(ctx, doc); err != nil {
		t.Fatalf("create: %v", err)
	}
	if doc.CustomerID != nil {
		t.Error("walk-in bill must not link a customer")
	}
}
