package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/vkarimov/tokenwatch/internal/logger"
	"github.com/vkarimov/tokenwatch/models"
)

// UserRepository is the persistence contract for user account records.
//
// Reads that feed a password comparison (FindUserByEmail) return the stored
// digest; it is the caller's responsibility never to serialize it outward.
type UserRepository interface {
	// CreateUser persists a new user and returns it with server-assigned
	// fields populated. Fails with ErrEmailAlreadyExists when the email is
	// taken.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByEmail returns the user owning the given login email,
	// including the password digest. The watchlist is not loaded.
	FindUserByEmail(ctx context.Context, email string) (models.User, error)

	// FindUserByID returns the user with the given identifier together with
	// its full watchlist in insertion order.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// UpdateProfile applies the non-nil fields of patch to the user row and
	// refreshes its modification timestamp.
	UpdateProfile(ctx context.Context, userID int64, patch models.ProfilePatch) error
}

// WatchlistRepository is the persistence contract for the three mutating
// operations on a user's watchlist. Every mutation is a single conditional
// statement scoped by (entry_id, user_id); an entry id is never looked up
// globally.
type WatchlistRepository interface {
	// AppendEntry inserts a fully populated entry at the end of the owner's
	// watchlist. Fails with ErrNoUserWasFound when the owner vanished.
	AppendEntry(ctx context.Context, userID int64, entry models.WatchlistEntry) error

	// UpdateEntry applies the non-nil fields of patch to the single entry
	// matching (entryID, userID). Fails with ErrEntryNotFound when no such
	// entry exists; sibling entries are never touched.
	UpdateEntry(ctx context.Context, userID int64, entryID string, patch models.WatchlistEntryPatch) error

	// RemoveEntry deletes at most one entry matching (entryID, userID).
	// Removing a non-existent entry is a no-op success.
	RemoveEntry(ctx context.Context, userID int64, entryID string) error
}

// Repositories bundles all persistence contracts for injection into the
// service layer.
type Repositories struct {
	Users     UserRepository
	Watchlist WatchlistRepository
}

// NewRepositories constructs all repositories over a shared database
// connection.
func NewRepositories(db *DB, log *logger.Logger) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(db, log),
		Watchlist: NewWatchlistRepository(db, log),
	}
}
