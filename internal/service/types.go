package service

// ProfileUpdate is a partial settings change: nil fields are left as they
// are in the store.
type ProfileUpdate struct {
	AgeGroup *string
	GoalML   *int
	Theme    *string
}

// Summary is one full dashboard render: today's accumulator, the goal
// math, and presentation extras.
type Summary struct {
	Username        string  `json:"username"`
	Date            string  `json:"date"`
	IntakeML        int     `json:"intake_ml"`
	GoalML          int     `json:"goal_ml"`
	SuggestedGoalML int     `json:"suggested_goal_ml"`
	RemainingML     int     `json:"remaining_ml"`
	Percent         float64 `json:"percent"`
	Milestone       string  `json:"milestone,omitempty"`
	GoalReached     bool    `json:"goal_reached"`
	AgeGroup        string  `json:"age_group"`
	Theme           string  `json:"theme"`
	Tip             string  `json:"tip"`
}
