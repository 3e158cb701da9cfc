package service

import (
	"context"
	"time"

	"waterbuddy/internal/repository"
)

// DashboardService composes profile, intake and goal math into the single
// summary a home-screen render needs.
type DashboardService struct {
	users   repository.Users
	profile Profile
	intake  Intake
	tips    Tips
	now     func() time.Time
}

func NewDashboardService(users repository.Users, profile Profile, intake Intake, tips Tips) *DashboardService {
	return &DashboardService{
		users:   users,
		profile: profile,
		intake:  intake,
		tips:    tips,
		now:     time.Now,
	}
}

// Summary never fails: every component degrades to its documented default
// so the dashboard always has something to render.
func (s *DashboardService) Summary(ctx context.Context, uid string) Summary {
	profile := s.profile.Get(ctx, uid)
	intake := s.intake.Today(ctx, uid)
	percent := PercentOfGoal(intake, profile.GoalML)

	username := "user"
	if u, err := s.users.Get(ctx, uid); err == nil && u != nil && u.Username != "" {
		username = u.Username
	}

	return Summary{
		Username:        username,
		Date:            s.now().UTC().Format(dateLayout),
		IntakeML:        intake,
		GoalML:          profile.GoalML,
		SuggestedGoalML: SuggestedGoal(profile.AgeGroup),
		RemainingML:     Remaining(intake, profile.GoalML),
		Percent:         percent,
		Milestone:       Milestone(percent),
		GoalReached:     GoalReached(intake, profile.GoalML),
		AgeGroup:        profile.AgeGroup,
		Theme:           profile.Theme,
		Tip:             s.tips.Current(),
	}
}
