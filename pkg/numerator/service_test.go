package numerator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

// Mock objects
type mockRow struct {
	val int64
	err error
}

func (m *mockRow) Scan(dest ...any) error {
	if m.err != nil {
		return m.err
	}
	if len(dest) > 0 {
		if ptr, ok := dest[0].(*int64); ok {
			*ptr = m.val
		}
	}
	return nil
}

type mockQuerier struct {
	mu     sync.Mutex
	values map[string]int64 // Simulates per-key sequence rows
	calls  int
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.values == nil {
		m.values = make(map[string]int64)
	}
	m.calls++

	key, _ := args[0].(string)

	// Strict passes only the key (increment 1), cached passes (key, size).
	var increment int64 = 1
	if len(args) == 2 {
		if val, ok := args[1].(int64); ok {
			increment = val
		}
	}

	m.values[key] += increment
	return &mockRow{val: m.values[key]}
}

func TestGetNextNumber_Strict(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("SQE")
	period := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	num, err := svc.GetNextNumber(ctx, cfg, nil, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "SQE-2026-08-00001" {
		t.Errorf("expected SQE-2026-08-00001, got %s", num)
	}

	num, err = svc.GetNextNumber(ctx, cfg, nil, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "SQE-2026-08-00002" {
		t.Errorf("expected SQE-2026-08-00002, got %s", num)
	}
}

func TestGetNextNumber_Concurrent(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("SQE")
	period := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	const workers = 50
	results := make(chan string, workers)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			num, err := svc.GetNextNumber(ctx, cfg, nil, period)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}
			results <- num
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool, workers)
	for num := range results {
		if seen[num] {
			t.Errorf("number %s issued twice", num)
		}
		seen[num] = true
	}
	if len(seen) != workers {
		t.Errorf("expected %d distinct numbers, got %d", workers, len(seen))
	}
}

func TestGetNextNumber_MonthlyReset(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("SQE")

	august := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	september := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	// Counters for different months are independent rows.
	for i := 0; i < 3; i++ {
		if _, err := svc.GetNextNumber(ctx, cfg, nil, august); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	num, err := svc.GetNextNumber(ctx, cfg, nil, september)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "SQE-2026-09-00001" {
		t.Errorf("expected counter to restart in new month, got %s", num)
	}
}

func TestGetNextNumber_PrefixIsolation(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	period := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	if _, err := svc.GetNextNumber(ctx, DefaultConfig("SQE"), nil, period); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	num, err := svc.GetNextNumber(ctx, DefaultConfig("QTE"), nil, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "QTE-2026-08-00001" {
		t.Errorf("expected independent quotation counter, got %s", num)
	}
}

func TestGetNextNumber_Cached(t *testing.T) {
	q := &mockQuerier{}
	svc := New(q)
	ctx := context.Background()
	cfg := DefaultConfig("ORD")
	period := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	opts := &Options{
		Strategy:  StrategyCached,
		RangeSize: 10,
	}

	// First call reserves 1..10 in one DB round-trip.
	num, err := svc.GetNextNumber(ctx, cfg, opts, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "ORD-2026-08-00001" {
		t.Errorf("expected ORD-2026-08-00001, got %s", num)
	}
	if q.calls != 1 {
		t.Errorf("expected 1 DB call, got %d", q.calls)
	}

	// Second call is served from memory.
	num, err = svc.GetNextNumber(ctx, cfg, opts, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "ORD-2026-08-00002" {
		t.Errorf("expected ORD-2026-08-00002, got %s", num)
	}
	if q.calls != 1 {
		t.Errorf("expected DB calls to stay at 1, got %d", q.calls)
	}

	// Exhaust the range; the next call reserves 11..20.
	for i := 0; i < 8; i++ {
		_, _ = svc.GetNextNumber(ctx, cfg, opts, period)
	}

	num, err = svc.GetNextNumber(ctx, cfg, opts, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if num != "ORD-2026-08-00011" {
		t.Errorf("expected ORD-2026-08-00011, got %s", num)
	}
	if q.calls != 2 {
		t.Errorf("expected 2 DB calls, got %d", q.calls)
	}
}

func TestParseNumber(t *testing.T) {
	cases := map[string]int64{
		"SQE-2026-08-00012": 12,
		"QTE-2026-09-00003": 3,
		"garbage":           -1,
	}
	for in, want := range cases {
		if got := ParseNumber(in); got != want {
			t.Errorf("ParseNumber(%q) = %d, want %d", in, got, want)
		}
	}
}
