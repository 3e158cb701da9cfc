package service

import (
	"context"
	"errors"
	"time"

	"waterbuddy/internal/logger"
	"waterbuddy/internal/models"
	"waterbuddy/internal/repository"
)

const dateLayout = "2006-01-02"

// ErrInvalidAmount rejects non-positive log amounts.
var ErrInvalidAmount = errors.New("amount must be greater than zero")

// IntakeService reads and updates the accumulator for "today". The entry
// log is authoritative: Log rewrites the accumulator from the entry sum,
// so the pair stays consistent from the caller's perspective even though
// the store has no transactions.
type IntakeService struct {
	ledger repository.Ledger
	log    *logger.Logger
	now    func() time.Time
}

func NewIntakeService(ledger repository.Ledger, log *logger.Logger) *IntakeService {
	return &IntakeService{
		ledger: ledger,
		log:    log,
		now:    time.Now,
	}
}

func (s *IntakeService) today() string {
	return s.now().UTC().Format(dateLayout)
}

// Today returns the accumulator for today's date. Absent records and
// unreachable stores both come back as 0; "could not determine" is logged
// but never surfaced, because a read failure must not block the dashboard.
func (s *IntakeService) Today(ctx context.Context, uid string) int {
	date := s.today()

	ml, found, err := s.ledger.GetIntake(ctx, uid, date)
	if err != nil {
		if s.log != nil {
			s.log.Warnw("intake_read_unavailable", "uid", uid, "date", date, "err", err)
		}
		return 0
	}
	if found {
		return ml
	}

	// Records that predate the per-day ledger keep a single accumulator at
	// the user root.
	legacy, found, err := s.ledger.GetLegacyIntake(ctx, uid)
	if err != nil {
		if s.log != nil {
			s.log.Warnw("intake_legacy_read_unavailable", "uid", uid, "err", err)
		}
		return 0
	}
	if found {
		return legacy
	}
	return 0
}

// Set writes the accumulator directly, clamping negatives to zero, and
// returns the value written. A manual set detaches the accumulator from
// the entry log until the next Log or Reset.
func (s *IntakeService) Set(ctx context.Context, uid string, ml int) (int, error) {
	if ml < 0 {
		ml = 0
	}
	if err := s.ledger.SetIntake(ctx, uid, s.today(), ml); err != nil {
		return 0, err
	}
	return ml, nil
}

// Reset zeroes the accumulator and clears today's entry log so the two
// cannot drift apart.
func (s *IntakeService) Reset(ctx context.Context, uid string) error {
	date := s.today()
	if err := s.ledger.ClearEntries(ctx, uid, date); err != nil {
		return err
	}
	return s.ledger.SetIntake(ctx, uid, date, 0)
}

// Log appends a timestamped entry and rewrites the accumulator from the
// sum of today's entries. Returns the new total.
func (s *IntakeService) Log(ctx context.Context, uid string, amountML int) (int, error) {
	if amountML <= 0 {
		return 0, ErrInvalidAmount
	}
	date := s.today()

	if _, err := s.ledger.AppendEntry(ctx, uid, date, amountML, s.now()); err != nil {
		return 0, err
	}

	entries, err := s.ledger.ListEntries(ctx, uid, date)
	if err != nil {
		// The entry landed but the total could not be recomputed. Surface
		// the failure; the next successful Log recomputes from entries and
		// heals the accumulator.
		return 0, err
	}
	total := 0
	for _, e := range entries {
		total += e.AmountML
	}

	if err := s.ledger.SetIntake(ctx, uid, date, total); err != nil {
		return 0, err
	}
	return total, nil
}

// Entries returns today's log, ordered by timestamp.
func (s *IntakeService) Entries(ctx context.Context, uid string) ([]models.LogEntry, error) {
	return s.ledger.ListEntries(ctx, uid, s.today())
}
