package service

import (
	"context"
	"errors"

	"github.com/taskdeck/taskdeck/internal/taskapi/domain"
	"github.com/taskdeck/taskdeck/internal/taskapi/store"
)

// UserService owns profile reads and writes.
type UserService struct {
	Store store.Store
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.NewNotFoundError("User not found")
		}
		return domain.User{}, domain.NewDatabaseError(err)
	}
	return user, nil
}

// GetActiveUser is the identity lookup behind the auth gate: the account
// must still exist and still be active for a token to resolve.
func (s *UserService) GetActiveUser(ctx context.Context, id string) (domain.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	if !user.IsActive {
		return domain.User{}, domain.NewAuthenticationError("Account is deactivated")
	}
	return user, nil
}

// UpdateProfile changes the caller's display names. Email and role are not
// updatable through this path.
func (s *UserService) UpdateProfile(ctx context.Context, userID, firstName, lastName string) (domain.User, error) {
	if err := s.Store.Users().UpdateProfile(ctx, userID, firstName, lastName); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.NewNotFoundError("User not found")
		}
		return domain.User{}, domain.NewDatabaseError(err)
	}
	return s.GetUserByID(ctx, userID)
}

// Deactivate soft-disables the account. Existing tokens stop resolving at
// the auth gate on their next use.
func (s *UserService) Deactivate(ctx context.Context, userID string) error {
	if err := s.Store.Users().SetActive(ctx, userID, false); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.NewNotFoundError("User not found")
		}
		return domain.NewDatabaseError(err)
	}
	return nil
}

// ListUsers pages through all accounts, newest first. Admin only, enforced
// at the router.
func (s *UserService) ListUsers(ctx context.Context, page, limit int) ([]domain.User, int, error) {
	users, total, err := s.Store.Users().ListUsers(ctx, page, limit)
	if err != nil {
		return nil, 0, domain.NewDatabaseError(err)
	}
	return users, total, nil
}
