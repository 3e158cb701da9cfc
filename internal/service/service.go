package service

import (
	"context"
	"time"

	"waterbuddy/internal/logger"
	"waterbuddy/internal/models"
	"waterbuddy/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (string, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (string, error)
}

// Intake exposes the daily accumulator. Reads fail open to zero; writes
// return the failure so the caller can surface it.
type Intake interface {
	Today(ctx context.Context, uid string) int
	Set(ctx context.Context, uid string, ml int) (int, error)
	Reset(ctx context.Context, uid string) error
	Log(ctx context.Context, uid string, amountML int) (int, error)
	Entries(ctx context.Context, uid string) ([]models.LogEntry, error)
}

// Profile exposes per-user settings with documented defaults.
type Profile interface {
	Get(ctx context.Context, uid string) models.Profile
	Update(ctx context.Context, uid string, upd ProfileUpdate) error
}

// History aggregates recent daily ledger entries for charting.
type History interface {
	LastDays(ctx context.Context, uid string, n int) []models.DayIntake
}

// Dashboard assembles everything one render of the home screen needs.
type Dashboard interface {
	Summary(ctx context.Context, uid string) Summary
}

// Tips serves the rotating hydration tip. Run rotates it in the
// background until ctx is canceled.
type Tips interface {
	Current() string
	Next() string
	Run(ctx context.Context, tick time.Duration)
}

// Config carries the tunables the services need from the config file.
type Config struct {
	SigningKey    string
	TokenTTL      time.Duration
	DefaultGoalML int
}

type Service struct {
	Authorization
	Intake
	Profile
	History
	Dashboard
	Tips
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, log *logger.Logger, cfg Config) *Service {
	intake := NewIntakeService(repos.Ledger, log)
	profile := NewProfileService(repos.Profiles, log, cfg.DefaultGoalML)
	tips := NewTipsService()
	return &Service{
		Authorization: NewAuthService(repos.Users, cfg.SigningKey, cfg.TokenTTL),
		Intake:        intake,
		Profile:       profile,
		History:       NewHistoryService(repos.Ledger, log),
		Dashboard:     NewDashboardService(repos.Users, profile, intake, tips),
		Tips:          tips,
	}
}
