package models

import "time"

// Age groups recognized by the profile settings.
const (
	AgeGroupChild  = "6-12"
	AgeGroupTeen   = "13-18"
	AgeGroupAdult  = "19-50"
	AgeGroupSenior = "65+"
)

// Themes the dashboard can render.
const (
	ThemeLight = "Light"
	ThemeAqua  = "Aqua"
	ThemeDark  = "Dark"
)

// User is an account record. The id is the opaque key assigned by the store.
type User struct {
	ID           string  `json:"id"`
	Username     string  `json:"username"`
	PasswordHash string  `json:"-"`          // never serialized
	CreatedAt    string  `json:"created_at"` // ISO date of signup
	Profile      Profile `json:"profile"`
}

// Profile holds per-user settings read on every dashboard render.
type Profile struct {
	AgeGroup string `json:"age_group"`
	GoalML   int    `json:"daily_goal_ml"`
	Theme    string `json:"theme"`
}

// LogEntry is one logged drink within a day's ledger.
type LogEntry struct {
	ID       string    `json:"id"`
	AmountML int       `json:"amount_ml"`
	LoggedAt time.Time `json:"logged_at"`
}

// DayIntake pairs a calendar date with its accumulator value.
type DayIntake struct {
	Date     string `json:"date"` // "2006-01-02"
	IntakeML int    `json:"intake_ml"`
}
