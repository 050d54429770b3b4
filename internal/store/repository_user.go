package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/vkarimov/tokenwatch/internal/logger"
	"github.com/vkarimov/tokenwatch/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles user account creation, lookup, and profile updates against the
// "users" table, loading the owned watchlist where the contract requires it.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, timestamps, defaults).
//
// The INSERT uses the [createUser] query which returns all columns via a
// RETURNING clause, so the caller receives the canonical database
// representation of the newly created account.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → returned directly.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	pictureURL := user.PictureURL
	if pictureURL == "" {
		pictureURL = models.DefaultPictureURL
	}

	row := r.db.QueryRowContext(ctx, createUser, user.Name, user.Email, user.PasswordHash, user.Address, pictureURL)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: insert failed")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	var created models.User
	if err := row.Scan(&created.UserID, &created.Name, &created.Email, &created.PasswordHash, &created.Address, &created.IsAdmin, &created.PictureURL, &created.CreatedAt, &created.UpdatedAt); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error: scanning error")

		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.User{}, ErrEmailAlreadyExists
		}
		return models.User{}, err
	}

	created.Watchlist = []models.WatchlistEntry{}

	return created, nil
}

// FindUserByEmail retrieves the user record owning the given login email.
//
// The returned record includes the password digest because this lookup feeds
// the credential comparison during login. The watchlist is NOT loaded; login
// never needs it.
//
// Returns [ErrNoUserWasFound] when no user owns the email.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	var foundUser models.User
	row := r.db.QueryRowContext(ctx, findUserByEmail, email)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("error: query failed")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := row.Scan(&foundUser.UserID, &foundUser.Name, &foundUser.Email, &foundUser.PasswordHash, &foundUser.Address, &foundUser.IsAdmin, &foundUser.PictureURL, &foundUser.CreatedAt, &foundUser.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserByEmail").Msg("error: scanning error")
		return models.User{}, err
	}

	return foundUser, nil
}

// FindUserByID retrieves the user record with the given identifier together
// with its complete watchlist in insertion order.
//
// Returns [ErrNoUserWasFound] when the user does not exist.
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	var foundUser models.User
	row := r.db.QueryRowContext(ctx, findUserByID, userID)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByID").Msg("error: query failed")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	if err := row.Scan(&foundUser.UserID, &foundUser.Name, &foundUser.Email, &foundUser.PasswordHash, &foundUser.Address, &foundUser.IsAdmin, &foundUser.PictureURL, &foundUser.CreatedAt, &foundUser.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserByID").Msg("error: scanning error")
		return models.User{}, err
	}

	watchlist, err := r.findWatchlist(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	foundUser.Watchlist = watchlist

	return foundUser, nil
}

// findWatchlist loads every watchlist entry owned by the given user,
// ordered by insertion.
func (r *userRepository) findWatchlist(ctx context.Context, userID int64) ([]models.WatchlistEntry, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, findWatchlistByUserID, userID)
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.findWatchlist").
			Int64("user_id", userID).
			Msg("failed to execute query for loading watchlist")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	watchlist := make([]models.WatchlistEntry, 0, 8)

	for rows.Next() {
		var entry models.WatchlistEntry

		scanErr := rows.Scan(
			&entry.EntryID,
			&entry.Ticker,
			&entry.Blockchain,
			&entry.Logo,
			&entry.Contract,
			&entry.ToReceive,
			&entry.ReceivedAmount,
			&entry.Decimals,
			&entry.LastUpdate,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "*userRepository.findWatchlist").
				Int64("user_id", userID).
				Msg("failed to scan watchlist entry row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		watchlist = append(watchlist, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*userRepository.findWatchlist").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return watchlist, nil
}

// UpdateProfile applies the non-nil fields of patch to the user row
// identified by userID and refreshes its modification timestamp.
//
// The UPDATE is built dynamically via [buildUpdateProfileQuery] so that
// absent fields are never written.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) on email → [ErrEmailAlreadyExists].
//   - Zero rows affected → [ErrNoUserWasFound].
func (r *userRepository) UpdateProfile(ctx context.Context, userID int64, patch models.ProfilePatch) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateProfileQuery(userID, patch)
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.UpdateProfile").
			Int64("user_id", userID).
			Msg("failed to build update query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*userRepository.UpdateProfile").
			Int64("user_id", userID).
			Msg("failed to execute profile update")

		if postgresError(err) == pgerrcode.UniqueViolation {
			return ErrEmailAlreadyExists
		}
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		log.Warn().
			Str("func", "*userRepository.UpdateProfile").
			Int64("user_id", userID).
			Msg("user not found")
		return ErrNoUserWasFound
	}

	return nil
}
