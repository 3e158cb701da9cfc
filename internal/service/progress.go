package service

import "waterbuddy/internal/models"

// Pure goal math. No I/O in this file.

// CupsToML is the conversion factor used by the unit converter pane.
const CupsToML = 236.588

// FallbackGoalML is the adult recommendation, used whenever no better
// goal is known.
const FallbackGoalML = 2500

// ageGroupGoals maps each age group to its recommended daily goal.
var ageGroupGoals = map[string]int{
	models.AgeGroupChild:  1600,
	models.AgeGroupTeen:   2000,
	models.AgeGroupAdult:  2500,
	models.AgeGroupSenior: 2000,
}

// SuggestedGoal returns the recommended daily goal for an age group,
// falling back to the adult recommendation for unknown groups.
func SuggestedGoal(ageGroup string) int {
	if goal, ok := ageGroupGoals[ageGroup]; ok {
		return goal
	}
	return FallbackGoalML
}

// ValidAgeGroup reports whether the age group is one the profile accepts.
func ValidAgeGroup(ageGroup string) bool {
	_, ok := ageGroupGoals[ageGroup]
	return ok
}

// ValidTheme reports whether the theme is one the dashboard can render.
func ValidTheme(theme string) bool {
	switch theme {
	case models.ThemeLight, models.ThemeAqua, models.ThemeDark:
		return true
	}
	return false
}

// PercentOfGoal returns intake as a percentage of goal, clamped to
// [0, 100]. A non-positive goal yields 0.
func PercentOfGoal(intakeML, goalML int) float64 {
	if goalML <= 0 {
		return 0
	}
	pct := float64(intakeML) / float64(goalML) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// Remaining returns how much is left to the goal, never negative.
func Remaining(intakeML, goalML int) int {
	if rem := goalML - intakeML; rem > 0 {
		return rem
	}
	return 0
}

// GoalReached reports whether the accumulator covers the goal.
func GoalReached(intakeML, goalML int) bool {
	return goalML > 0 && intakeML >= goalML
}

// Milestone returns the encouragement shown at the 25/50/75/100 percent
// thresholds, or "" below the first one.
func Milestone(percent float64) string {
	switch {
	case percent >= 100:
		return "Amazing, you reached your daily goal!"
	case percent >= 75:
		return "Great, 75% reached!"
	case percent >= 50:
		return "Nice, 50% reached!"
	case percent >= 25:
		return "Good start, 25% reached!"
	default:
		return ""
	}
}

// MLFromCups converts cups to milliliters.
func MLFromCups(cups float64) float64 {
	return cups * CupsToML
}

// CupsFromML converts milliliters to cups.
func CupsFromML(ml float64) float64 {
	return ml / CupsToML
}
