package service

import (
	"context"

	"github.com/scward0/SaveHaven/internal/apperr"
	"github.com/scward0/SaveHaven/internal/auth"
	"github.com/scward0/SaveHaven/internal/model"
	"github.com/scward0/SaveHaven/internal/store"
)

// UserService serves the authenticated user's profile.
type UserService struct {
	store store.Store
}

// NewUserService creates a new UserService.
func NewUserService(store store.Store) *UserService {
	return &UserService{store: store}
}

// Me returns the caller's profile document, falling back to the identity
// provider's claims when no profile has been written yet.
func (s *UserService) Me(ctx context.Context) (*model.User, error) {
	claims, err := auth.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetUser(ctx, claims.UID)
	if err != nil {
		return nil, apperr.Backend("get user", err)
	}
	if user == nil {
		user = &model.User{
			Uid:      claims.UID,
			Username: claims.Name,
			Email:    claims.Email,
		}
	}
	return user, nil
}

// UpdateProfile writes the caller's profile document. The uid always comes
// from the verified identity, never from the request body.
func (s *UserService) UpdateProfile(ctx context.Context, username string) (*model.User, error) {
	claims, err := auth.RequireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if username == "" {
		return nil, apperr.InvalidArgument("username is required")
	}

	user := &model.User{
		Uid:      claims.UID,
		Username: username,
		Email:    claims.Email,
	}
	if err := s.store.PutUser(ctx, user); err != nil {
		return nil, apperr.Backend("put user", err)
	}
	return user, nil
}
