package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/vkarimov/tokenwatch/internal/logger"
	"github.com/vkarimov/tokenwatch/models"
)

// watchlistRepository is the PostgreSQL-backed implementation of
// [WatchlistRepository]. It executes the three mutating watchlist operations
// directly against the "watchlist_entries" table.
//
// Every mutation is a single conditional statement keyed by
// (entry_id, user_id). A full read-modify-write cycle over the whole
// collection is deliberately absent: the compound key is the only stable
// handle on an entry, and single-statement targeting is what keeps racing
// operations on the same user from losing each other's updates.
type watchlistRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewWatchlistRepository constructs a [WatchlistRepository] backed by the
// provided database connection and logger.
func NewWatchlistRepository(db *DB, logger *logger.Logger) WatchlistRepository {
	logger.Debug().Msg("creating watchlist repository")
	return &watchlistRepository{
		db:     db,
		logger: logger,
	}
}

// AppendEntry inserts the fully populated entry at the end of the owner's
// watchlist. Insertion order is preserved by the table's sequence column;
// no reordering or deduplication is performed.
//
// Error handling:
//   - PostgreSQL foreign_key_violation (23503) → [ErrNoUserWasFound]
//     (the owner vanished between authentication and the mutation).
//   - Any other driver-level error → wrapped [ErrExecutingQuery].
func (w *watchlistRepository) AppendEntry(ctx context.Context, userID int64, entry models.WatchlistEntry) error {
	log := logger.FromContext(ctx)

	log.Debug().
		Str("func", "*watchlistRepository.AppendEntry").
		Str("entry_id", entry.EntryID).
		Int64("user_id", userID).
		Msg("appending watchlist entry")

	_, err := w.db.ExecContext(ctx, appendWatchlistEntry,
		entry.EntryID,
		userID,
		entry.Ticker,
		entry.Blockchain,
		entry.Logo,
		[]byte(entry.Contract),
		entry.ToReceive,
		entry.ReceivedAmount,
		[]byte(entry.Decimals),
		entry.LastUpdate,
	)
	if err != nil {
		log.Err(err).
			Str("func", "*watchlistRepository.AppendEntry").
			Str("entry_id", entry.EntryID).
			Int64("user_id", userID).
			Msg("failed to append watchlist entry")

		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return ErrNoUserWasFound
		}
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// UpdateEntry applies the non-nil fields of patch to the single entry
// matching (entryID, userID).
//
// The UPDATE is built dynamically via [buildUpdateEntryQuery]; absent fields
// are never written, so unspecified fields of the target entry and all
// sibling entries stay byte-identical. Zero rows affected means the id does
// not resolve under this user → [ErrEntryNotFound].
func (w *watchlistRepository) UpdateEntry(ctx context.Context, userID int64, entryID string, patch models.WatchlistEntryPatch) error {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateEntryQuery(userID, entryID, patch)
	if err != nil {
		log.Err(err).
			Str("func", "*watchlistRepository.UpdateEntry").
			Str("entry_id", entryID).
			Msg("failed to build update query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := w.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*watchlistRepository.UpdateEntry").
			Str("entry_id", entryID).
			Int64("user_id", userID).
			Msg("failed to execute targeted entry update")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		log.Warn().
			Str("func", "*watchlistRepository.UpdateEntry").
			Str("entry_id", entryID).
			Int64("user_id", userID).
			Msg("entry not found")
		return ErrEntryNotFound
	}

	log.Info().
		Str("func", "*watchlistRepository.UpdateEntry").
		Str("entry_id", entryID).
		Int64("user_id", userID).
		Msg("successfully updated watchlist entry")

	return nil
}

// RemoveEntry deletes at most one entry matching (entryID, userID) from the
// specified user's watchlist only.
//
// Removing a non-existent entry is an idempotent no-op success; the caller
// is expected to have validated the identifier's syntax before reaching
// storage.
func (w *watchlistRepository) RemoveEntry(ctx context.Context, userID int64, entryID string) error {
	log := logger.FromContext(ctx)

	result, err := w.db.ExecContext(ctx, removeWatchlistEntry, entryID, userID)
	if err != nil {
		log.Err(err).
			Str("func", "*watchlistRepository.RemoveEntry").
			Str("entry_id", entryID).
			Int64("user_id", userID).
			Msg("failed to execute targeted entry delete")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	rowsAffected, _ := result.RowsAffected()

	log.Info().
		Str("func", "*watchlistRepository.RemoveEntry").
		Str("entry_id", entryID).
		Int64("user_id", userID).
		Int64("rows_affected", rowsAffected).
		Msg("watchlist entry delete completed")

	return nil
}
