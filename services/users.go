// services/users.go
package services

import (
	"context"
	"errors"
	"fmt"

	"flavorquest-system/models"
	"flavorquest-system/store"
)

// UserService serves the local user snapshots (demo seed in memory mode,
// profile-sync mirror in postgres mode).
type UserService struct {
	Store store.UserStore
}

func NewUserService(st store.UserStore) *UserService {
	return &UserService{Store: st}
}

// GetUser fetches one user. store.ErrNotFound passes through for handlers
// to map to a 404.
func (s *UserService) GetUser(ctx context.Context, userID string) (models.AppUser, error) {
	u, err := s.Store.GetUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return models.AppUser{}, err
	}
	if err != nil {
		return models.AppUser{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return u, nil
}

// ListUsers returns all local users.
func (s *UserService) ListUsers(ctx context.Context) ([]models.AppUser, error) {
	users, err := s.Store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return users, nil
}

// DietaryFor returns a user's dietary restrictions. Unknown users get an
// empty list rather than an error; generation works without personalization.
func (s *UserService) DietaryFor(ctx context.Context, userID string) []string {
	u, err := s.Store.GetUser(ctx, userID)
	if err != nil {
		return nil
	}
	return u.Dietary
}
