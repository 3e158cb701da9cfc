package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"waterbuddy/internal/models"
	"waterbuddy/internal/store"
)

// fakeLedger is an in-memory repository.Ledger with fault injection.
type fakeLedger struct {
	intake  map[string]int // "<uid>|<date>"
	legacy  map[string]int
	entries map[string][]models.LogEntry

	failDates map[string]bool // GetIntake fails for these dates
	readErr   error
	setErr    error
	appendErr error
	listErr   error
	clearErr  error

	nextKey int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{
		intake:    make(map[string]int),
		legacy:    make(map[string]int),
		entries:   make(map[string][]models.LogEntry),
		failDates: make(map[string]bool),
	}
}

func ledgerKey(uid, date string) string { return uid + "|" + date }

func (f *fakeLedger) GetIntake(ctx context.Context, uid, date string) (int, bool, error) {
	if f.readErr != nil {
		return 0, false, f.readErr
	}
	if f.failDates[date] {
		return 0, false, store.ErrUnavailable
	}
	ml, ok := f.intake[ledgerKey(uid, date)]
	return ml, ok, nil
}

func (f *fakeLedger) GetLegacyIntake(ctx context.Context, uid string) (int, bool, error) {
	ml, ok := f.legacy[uid]
	return ml, ok, nil
}

func (f *fakeLedger) SetIntake(ctx context.Context, uid, date string, ml int) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.intake[ledgerKey(uid, date)] = ml
	return nil
}

func (f *fakeLedger) AppendEntry(ctx context.Context, uid, date string, amountML int, loggedAt time.Time) (string, error) {
	if f.appendErr != nil {
		return "", f.appendErr
	}
	f.nextKey++
	key := fmt.Sprintf("k%03d", f.nextKey)
	f.entries[ledgerKey(uid, date)] = append(f.entries[ledgerKey(uid, date)], models.LogEntry{
		ID:       key,
		AmountML: amountML,
		LoggedAt: loggedAt,
	})
	return key, nil
}

func (f *fakeLedger) ListEntries(ctx context.Context, uid, date string) ([]models.LogEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.entries[ledgerKey(uid, date)], nil
}

func (f *fakeLedger) ClearEntries(ctx context.Context, uid, date string) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	delete(f.entries, ledgerKey(uid, date))
	return nil
}

// fixed clock for deterministic date keys
var testNow = time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

func newTestIntake(ledger *fakeLedger) *IntakeService {
	s := NewIntakeService(ledger, nil)
	s.now = func() time.Time { return testNow }
	return s
}

func TestIntake_SetThenTodayRoundTrip(t *testing.T) {
	ledger := newFakeLedger()
	s := newTestIntake(ledger)
	ctx := context.Background()

	written, err := s.Set(ctx, "u1", 1200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written != 1200 {
		t.Fatalf("Set returned %d, want 1200", written)
	}
	if got := s.Today(ctx, "u1"); got != 1200 {
		t.Fatalf("Today = %d, want 1200", got)
	}
}

func TestIntake_SetClampsNegativeToZero(t *testing.T) {
	ledger := newFakeLedger()
	s := newTestIntake(ledger)
	ctx := context.Background()

	written, err := s.Set(ctx, "u1", -500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written != 0 {
		t.Fatalf("Set returned %d, want 0", written)
	}
	if got := ledger.intake[ledgerKey("u1", "2026-08-23")]; got != 0 {
		t.Fatalf("stored intake = %d, want 0", got)
	}
}

func TestIntake_TodayMissingIsZeroNotError(t *testing.T) {
	s := newTestIntake(newFakeLedger())
	if got := s.Today(context.Background(), "nobody"); got != 0 {
		t.Fatalf("Today = %d, want 0 for missing ledger", got)
	}
}

func TestIntake_TodayFailsOpenToZero(t *testing.T) {
	ledger := newFakeLedger()
	ledger.readErr = store.ErrUnavailable
	s := newTestIntake(ledger)

	if got := s.Today(context.Background(), "u1"); got != 0 {
		t.Fatalf("Today = %d, want 0 when the store is unreachable", got)
	}
}

func TestIntake_TodayLegacyFallback(t *testing.T) {
	ledger := newFakeLedger()
	ledger.legacy["u1"] = 800
	s := newTestIntake(ledger)

	if got := s.Today(context.Background(), "u1"); got != 800 {
		t.Fatalf("Today = %d, want legacy 800", got)
	}

	// A per-day value wins over the legacy field.
	ledger.intake[ledgerKey("u1", "2026-08-23")] = 300
	if got := s.Today(context.Background(), "u1"); got != 300 {
		t.Fatalf("Today = %d, want 300 from the ledger", got)
	}
}

func TestIntake_LogAppendsEntryAndUpdatesAccumulator(t *testing.T) {
	ledger := newFakeLedger()
	s := newTestIntake(ledger)
	ctx := context.Background()

	total, err := s.Log(ctx, "u1", 250)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 250 {
		t.Fatalf("Log total = %d, want 250", total)
	}

	total, err = s.Log(ctx, "u1", 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 750 {
		t.Fatalf("Log total = %d, want 750", total)
	}

	// Accumulator equals the entry sum.
	if got := s.Today(ctx, "u1"); got != 750 {
		t.Fatalf("Today = %d, want 750", got)
	}
	entries, err := s.Entries(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sum := 0
	for _, e := range entries {
		sum += e.AmountML
	}
	if sum != 750 {
		t.Fatalf("entry sum = %d, want 750", sum)
	}
}

func TestIntake_LogRejectsNonPositiveAmounts(t *testing.T) {
	ledger := newFakeLedger()
	s := newTestIntake(ledger)
	ctx := context.Background()

	for _, amount := range []int{0, -1, -250} {
		if _, err := s.Log(ctx, "u1", amount); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("Log(%d) err = %v, want ErrInvalidAmount", amount, err)
		}
	}
	if len(ledger.entries) != 0 {
		t.Fatal("rejected log must not append entries")
	}
	if len(ledger.intake) != 0 {
		t.Fatal("rejected log must not touch the accumulator")
	}
}

func TestIntake_LogSurfacesWriteFailure(t *testing.T) {
	ledger := newFakeLedger()
	ledger.appendErr = store.ErrUnavailable
	s := newTestIntake(ledger)

	if _, err := s.Log(context.Background(), "u1", 250); !errors.Is(err, store.ErrUnavailable) {
		t.Fatalf("Log err = %v, want store.ErrUnavailable", err)
	}
}

func TestIntake_ResetZeroesAccumulatorAndClearsEntries(t *testing.T) {
	ledger := newFakeLedger()
	s := newTestIntake(ledger)
	ctx := context.Background()

	if _, err := s.Log(ctx, "u1", 400); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Reset(ctx, "u1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Today(ctx, "u1"); got != 0 {
		t.Fatalf("Today after reset = %d, want 0", got)
	}
	entries, err := s.Entries(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("entries after reset = %d, want 0", len(entries))
	}
}

func TestIntake_ResetFailsClosed(t *testing.T) {
	ledger := newFakeLedger()
	ledger.clearErr = store.ErrUnavailable
	s := newTestIntake(ledger)

	if err := s.Reset(context.Background(), "u1"); !errors.Is(err, store.ErrUnavailable) {
		t.Fatalf("Reset err = %v, want store.ErrUnavailable", err)
	}
}
