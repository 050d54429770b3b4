package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/vkarimov/tokenwatch/models"
)

// AuthService owns the authentication trust boundary: it turns plaintext
// credentials into stored digests, verifies credentials against digests, and
// manages the session token lifecycle.
type AuthService interface {
	// RegisterUser creates a new account from the registration request,
	// hashing the password before anything is persisted.
	RegisterUser(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Login authenticates an existing user by email and password.
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)

	// CreateToken issues a signed session token whose subject is the
	// given user's identifier.
	CreateToken(ctx context.Context, user models.User) (models.Token, error)

	// ParseToken validates a raw session token string and recovers the
	// subject user identifier.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// UserService exposes read and profile-update operations on user records.
type UserService interface {
	// GetUser resolves a user by identifier, watchlist included.
	GetUser(ctx context.Context, userID int64) (models.User, error)

	// UpdateProfile applies a partial profile update and returns the
	// refreshed user view.
	UpdateProfile(ctx context.Context, userID int64, patch models.ProfilePatch) (models.User, error)
}

// WatchlistService owns the three mutating operations on a user's watchlist.
// All operations key off the compound scope (userID, entryID); an entry id is
// never looked up globally, so one user cannot reference another user's
// entry.
type WatchlistService interface {
	// AppendEntry validates the draft, assigns a fresh entry id and
	// last-update instant, appends the entry at the end of the owner's
	// watchlist, and returns the refreshed user view.
	AppendEntry(ctx context.Context, userID int64, draft models.WatchlistEntryDraft) (models.User, error)

	// UpdateEntry patches the single entry matching (userID, entryID) and
	// returns the refreshed user view.
	UpdateEntry(ctx context.Context, userID int64, entryID string, patch models.WatchlistEntryPatch) (models.User, error)

	// RemoveEntry deletes at most one entry matching (userID, entryID).
	// Removing a well-formed but absent id is an idempotent success;
	// a malformed id is rejected before storage is touched.
	RemoveEntry(ctx context.Context, userID int64, entryID string) (models.User, error)
}
