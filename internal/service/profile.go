package service

import (
	"context"
	"errors"
	"fmt"

	"waterbuddy/internal/logger"
	"waterbuddy/internal/models"
	"waterbuddy/internal/repository"
)

// Goal bounds from the settings screen.
const (
	minGoalML = 500
	maxGoalML = 10000
)

var ErrEmptyUpdate = errors.New("no profile fields to update")

// ProfileService serves settings with documented defaults: a missing
// record and an unreachable store both yield the adult profile with the
// configured default goal and the Light theme.
type ProfileService struct {
	profiles      repository.Profiles
	log           *logger.Logger
	defaultGoalML int
}

func NewProfileService(profiles repository.Profiles, log *logger.Logger, defaultGoalML int) *ProfileService {
	if defaultGoalML <= 0 {
		defaultGoalML = FallbackGoalML
	}
	return &ProfileService{
		profiles:      profiles,
		log:           log,
		defaultGoalML: defaultGoalML,
	}
}

func (s *ProfileService) defaults() models.Profile {
	return models.Profile{
		AgeGroup: models.AgeGroupAdult,
		GoalML:   s.defaultGoalML,
		Theme:    models.ThemeLight,
	}
}

// Get returns the user's settings, falling back to defaults field by
// field when the record is missing, partial, or unreadable.
func (s *ProfileService) Get(ctx context.Context, uid string) models.Profile {
	stored, found, err := s.profiles.Get(ctx, uid)
	if err != nil {
		if s.log != nil {
			s.log.Warnw("profile_read_unavailable", "uid", uid, "err", err)
		}
		return s.defaults()
	}
	if !found {
		return s.defaults()
	}

	p := s.defaults()
	if ValidAgeGroup(stored.AgeGroup) {
		p.AgeGroup = stored.AgeGroup
	}
	if stored.GoalML > 0 {
		p.GoalML = stored.GoalML
	}
	if ValidTheme(stored.Theme) {
		p.Theme = stored.Theme
	}
	return p
}

// Update validates and patches only the supplied fields.
func (s *ProfileService) Update(ctx context.Context, uid string, upd ProfileUpdate) error {
	fields := make(map[string]any, 3)

	if upd.AgeGroup != nil {
		if !ValidAgeGroup(*upd.AgeGroup) {
			return fmt.Errorf("unknown age group %q", *upd.AgeGroup)
		}
		fields["age_group"] = *upd.AgeGroup
	}
	if upd.GoalML != nil {
		if *upd.GoalML < minGoalML || *upd.GoalML > maxGoalML {
			return fmt.Errorf("daily goal must be between %d and %d ml", minGoalML, maxGoalML)
		}
		fields["user_goal_ml"] = *upd.GoalML
	}
	if upd.Theme != nil {
		if !ValidTheme(*upd.Theme) {
			return fmt.Errorf("unknown theme %q", *upd.Theme)
		}
		fields["theme"] = *upd.Theme
	}

	if len(fields) == 0 {
		return ErrEmptyUpdate
	}
	return s.profiles.Patch(ctx, uid, fields)
}
