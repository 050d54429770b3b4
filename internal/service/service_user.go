package service

import (
	"context"
	"fmt"

	"github.com/vkarimov/tokenwatch/internal/logger"
	"github.com/vkarimov/tokenwatch/internal/store"
	"github.com/vkarimov/tokenwatch/models"
)

// userService is the concrete implementation of UserService.
type userService struct {
	userRepository store.UserRepository
	logger         *logger.Logger
}

// NewUserService constructs a UserService backed by the given repository.
func NewUserService(userRepository store.UserRepository, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		logger:         logger,
	}
}

// GetUser resolves a user record by identifier, watchlist included.
//
// Returns a wrapped store.ErrNoUserWasFound when the subject no longer
// exists.
func (u *userService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := u.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return user, nil
}

// UpdateProfile applies the non-nil fields of patch to the user's record and
// returns the refreshed view.
//
// An empty patch is a no-op that still returns the current record, matching
// the update semantics of the profile endpoint: absent fields are left
// untouched.
func (u *userService) UpdateProfile(ctx context.Context, userID int64, patch models.ProfilePatch) (models.User, error) {
	log := logger.FromContext(ctx)

	if !patch.Empty() {
		if err := u.userRepository.UpdateProfile(ctx, userID, patch); err != nil {
			log.Err(err).Int64("user_id", userID).Msg("profile update failed")
			return models.User{}, fmt.Errorf("profile update failed: %w", err)
		}
	}

	return u.GetUser(ctx, userID)
}
