package repository

import (
	"context"
	"time"

	"waterbuddy/internal/models"
	"waterbuddy/internal/store"
)

type Users interface {
	// Create inserts a new user record and returns the store-assigned id.
	Create(ctx context.Context, username, passwordHash, createdAt string, profile models.Profile) (string, error)
	// FindByUsername returns (nil, nil) when no user matches. Matching is
	// case-sensitive.
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	// Get returns (nil, nil) when the id has no record.
	Get(ctx context.Context, uid string) (*models.User, error)
}

type Profiles interface {
	// Get reads the raw stored profile. found=false means no profile
	// record exists; defaults are the service's concern.
	Get(ctx context.Context, uid string) (models.Profile, bool, error)
	// Patch merges fields into the profile without touching unnamed ones.
	Patch(ctx context.Context, uid string, fields map[string]any) error
}

type Ledger interface {
	// GetIntake reads the accumulator for one calendar date.
	GetIntake(ctx context.Context, uid, date string) (int, bool, error)
	// GetLegacyIntake reads the pre-ledger accumulator field some old
	// records still carry.
	GetLegacyIntake(ctx context.Context, uid string) (int, bool, error)
	SetIntake(ctx context.Context, uid, date string, ml int) error
	AppendEntry(ctx context.Context, uid, date string, amountML int, loggedAt time.Time) (string, error)
	// ListEntries returns the day's entries ordered by timestamp.
	ListEntries(ctx context.Context, uid, date string) ([]models.LogEntry, error)
	ClearEntries(ctx context.Context, uid, date string) error
}

type Repository struct {
	Users    Users
	Profiles Profiles
	Ledger   Ledger
}

// NewRepository wires the store client into the per-concern accessors.
// usersNode is the top-level path all user records live under.
func NewRepository(st store.Client, usersNode string) *Repository {
	return &Repository{
		Users:    NewUserStore(st, usersNode),
		Profiles: NewProfileStore(st, usersNode),
		Ledger:   NewLedgerStore(st, usersNode),
	}
}
