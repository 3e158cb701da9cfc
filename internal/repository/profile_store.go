package repository

import (
	"context"
	"fmt"

	"waterbuddy/internal/models"
	"waterbuddy/internal/store"
)

// ProfileStore reads and merges the settings record at
// <usersNode>/<uid>/profile.
type ProfileStore struct {
	store store.Client
	node  string
}

func NewProfileStore(st store.Client, node string) *ProfileStore {
	return &ProfileStore{store: st, node: node}
}

var _ Profiles = (*ProfileStore)(nil)

func (s *ProfileStore) path(uid string) string {
	return store.Join(s.node, uid, "profile")
}

func (s *ProfileStore) Get(ctx context.Context, uid string) (models.Profile, bool, error) {
	var rec profileRecord
	found, err := s.store.Get(ctx, s.path(uid), &rec)
	if err != nil {
		return models.Profile{}, false, fmt.Errorf("get profile %q: %w", uid, err)
	}
	if !found {
		return models.Profile{}, false, nil
	}
	return models.Profile{
		AgeGroup: rec.AgeGroup,
		GoalML:   rec.GoalML,
		Theme:    rec.Theme,
	}, true, nil
}

// Patch merges only the supplied fields; unnamed fields survive.
func (s *ProfileStore) Patch(ctx context.Context, uid string, fields map[string]any) error {
	if err := s.store.Patch(ctx, s.path(uid), fields); err != nil {
		return fmt.Errorf("patch profile %q: %w", uid, err)
	}
	return nil
}
