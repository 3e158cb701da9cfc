package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"waterbuddy/internal/models"
	"waterbuddy/internal/store"
)

// LedgerStore accesses the per-day intake records at
// <usersNode>/<uid>/days/<date>. A day record is created implicitly by the
// first write for that date.
type LedgerStore struct {
	store store.Client
	node  string
}

func NewLedgerStore(st store.Client, node string) *LedgerStore {
	return &LedgerStore{store: st, node: node}
}

var _ Ledger = (*LedgerStore)(nil)

type entryRecord struct {
	AmountML int    `json:"amount_ml"`
	LoggedAt string `json:"logged_at"` // RFC3339
}

func (s *LedgerStore) dayPath(uid, date string) string {
	return store.Join(s.node, uid, "days", date)
}

func (s *LedgerStore) GetIntake(ctx context.Context, uid, date string) (int, bool, error) {
	// Stored values may be float-typed after manual edits; coerce like the
	// dashboard always has.
	var value float64
	found, err := s.store.Get(ctx, store.Join(s.dayPath(uid, date), "intake"), &value)
	if err != nil {
		return 0, false, fmt.Errorf("get intake %s/%s: %w", uid, date, err)
	}
	if !found {
		return 0, false, nil
	}
	return int(value), true, nil
}

// GetLegacyIntake reads the old single-field accumulator kept at the user
// root by records that predate the per-day ledger.
func (s *LedgerStore) GetLegacyIntake(ctx context.Context, uid string) (int, bool, error) {
	var value float64
	found, err := s.store.Get(ctx, store.Join(s.node, uid, "todays_intake_ml"), &value)
	if err != nil {
		return 0, false, fmt.Errorf("get legacy intake %s: %w", uid, err)
	}
	if !found {
		return 0, false, nil
	}
	return int(value), true, nil
}

// SetIntake patches the day record so sibling fields (the entry log) are
// left alone.
func (s *LedgerStore) SetIntake(ctx context.Context, uid, date string, ml int) error {
	if err := s.store.Patch(ctx, s.dayPath(uid, date), map[string]any{"intake": ml}); err != nil {
		return fmt.Errorf("set intake %s/%s: %w", uid, date, err)
	}
	return nil
}

func (s *LedgerStore) AppendEntry(ctx context.Context, uid, date string, amountML int, loggedAt time.Time) (string, error) {
	rec := entryRecord{
		AmountML: amountML,
		LoggedAt: loggedAt.UTC().Format(time.RFC3339),
	}
	key, err := s.store.Push(ctx, store.Join(s.dayPath(uid, date), "entries"), rec)
	if err != nil {
		return "", fmt.Errorf("append entry %s/%s: %w", uid, date, err)
	}
	return key, nil
}

func (s *LedgerStore) ListEntries(ctx context.Context, uid, date string) ([]models.LogEntry, error) {
	var all map[string]entryRecord
	found, err := s.store.Get(ctx, store.Join(s.dayPath(uid, date), "entries"), &all)
	if err != nil {
		return nil, fmt.Errorf("list entries %s/%s: %w", uid, date, err)
	}
	if !found {
		return nil, nil
	}

	entries := make([]models.LogEntry, 0, len(all))
	for key, rec := range all {
		ts, err := time.Parse(time.RFC3339, rec.LoggedAt)
		if err != nil {
			// Skip entries with unreadable timestamps rather than failing
			// the whole read.
			continue
		}
		entries = append(entries, models.LogEntry{
			ID:       key,
			AmountML: rec.AmountML,
			LoggedAt: ts,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].LoggedAt.Equal(entries[j].LoggedAt) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].LoggedAt.Before(entries[j].LoggedAt)
	})
	return entries, nil
}

func (s *LedgerStore) ClearEntries(ctx context.Context, uid, date string) error {
	if err := s.store.Delete(ctx, store.Join(s.dayPath(uid, date), "entries")); err != nil {
		return fmt.Errorf("clear entries %s/%s: %w", uid, date, err)
	}
	return nil
}
