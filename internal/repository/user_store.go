package repository

import (
	"context"
	"fmt"

	"waterbuddy/internal/models"
	"waterbuddy/internal/store"
)

// UserStore keeps user records under <usersNode>/<uid>. Field names follow
// the wire layout of the hosted database, so the password hash travels in
// a record struct and never rides on the API model.
type UserStore struct {
	store store.Client
	node  string
}

func NewUserStore(st store.Client, node string) *UserStore {
	return &UserStore{store: st, node: node}
}

var _ Users = (*UserStore)(nil)

type userRecord struct {
	Username  string        `json:"username"`
	Password  string        `json:"password"`
	CreatedAt string        `json:"created_at"`
	Profile   profileRecord `json:"profile"`
}

type profileRecord struct {
	AgeGroup string `json:"age_group,omitempty"`
	GoalML   int    `json:"user_goal_ml,omitempty"`
	Theme    string `json:"theme,omitempty"`
}

func (r userRecord) toModel(uid string) *models.User {
	return &models.User{
		ID:           uid,
		Username:     r.Username,
		PasswordHash: r.Password,
		CreatedAt:    r.CreatedAt,
		Profile: models.Profile{
			AgeGroup: r.Profile.AgeGroup,
			GoalML:   r.Profile.GoalML,
			Theme:    r.Profile.Theme,
		},
	}
}

// Create inserts a new user and returns the generated id.
func (s *UserStore) Create(ctx context.Context, username, passwordHash, createdAt string, profile models.Profile) (string, error) {
	rec := userRecord{
		Username:  username,
		Password:  passwordHash,
		CreatedAt: createdAt,
		Profile: profileRecord{
			AgeGroup: profile.AgeGroup,
			GoalML:   profile.GoalML,
			Theme:    profile.Theme,
		},
	}
	uid, err := s.store.Push(ctx, s.node, rec)
	if err != nil {
		return "", fmt.Errorf("create user %q: %w", username, err)
	}
	return uid, nil
}

// FindByUsername scans the whole users node; the store has no secondary
// index, so this is O(users) just like the dashboard it serves.
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var all map[string]userRecord
	found, err := s.store.Get(ctx, s.node, &all)
	if err != nil {
		return nil, fmt.Errorf("scan users for %q: %w", username, err)
	}
	if !found {
		return nil, nil
	}
	for uid, rec := range all {
		if rec.Username == username {
			return rec.toModel(uid), nil
		}
	}
	return nil, nil
}

// Get fetches a user record by id. Returns (nil, nil) if absent.
func (s *UserStore) Get(ctx context.Context, uid string) (*models.User, error) {
	var rec userRecord
	found, err := s.store.Get(ctx, store.Join(s.node, uid), &rec)
	if err != nil {
		return nil, fmt.Errorf("get user %q: %w", uid, err)
	}
	if !found {
		return nil, nil
	}
	return rec.toModel(uid), nil
}
