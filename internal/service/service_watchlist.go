package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vkarimov/tokenwatch/internal/logger"
	"github.com/vkarimov/tokenwatch/internal/store"
	"github.com/vkarimov/tokenwatch/internal/utils"
	"github.com/vkarimov/tokenwatch/models"
)

// watchlistService is the concrete implementation of WatchlistService.
//
// Every operation is scoped by the verified owner's user id; the service
// never resolves an entry id without it. After a successful mutation the
// owner's record is re-read so the caller receives the full updated view.
type watchlistService struct {
	watchlistRepository store.WatchlistRepository
	userRepository      store.UserRepository
	uuidGenerator       *utils.UUIDGenerator
	logger              *logger.Logger
}

// NewWatchlistService constructs a WatchlistService backed by the given
// repositories.
func NewWatchlistService(watchlistRepository store.WatchlistRepository, userRepository store.UserRepository, logger *logger.Logger) WatchlistService {
	return &watchlistService{
		watchlistRepository: watchlistRepository,
		userRepository:      userRepository,
		uuidGenerator:       utils.NewUUIDGenerator(),
		logger:              logger,
	}
}

// AppendEntry validates the draft's required fields, assigns a fresh entry
// id and a last-update instant of "now", and appends the entry at the end of
// the owner's watchlist.
//
// Returns the refreshed user view or:
//   - A *ValidationError naming the missing field (ticker, blockchain,
//     logo, contract, decimals).
//   - A wrapped storage error if the append fails.
func (s *watchlistService) AppendEntry(ctx context.Context, userID int64, draft models.WatchlistEntryDraft) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := validateStruct(draft); err != nil {
		log.Error().Int64("user_id", userID).Err(err).Msg("invalid watchlist entry draft")
		return models.User{}, err
	}

	entry := models.WatchlistEntry{
		EntryID:        s.uuidGenerator.Generate(),
		Ticker:         draft.Ticker,
		Blockchain:     draft.Blockchain,
		Logo:           draft.Logo,
		Contract:       draft.Contract,
		ToReceive:      draft.ToReceive,
		ReceivedAmount: draft.ReceivedAmount,
		Decimals:       draft.Decimals,
		LastUpdate:     time.Now(),
	}

	if err := s.watchlistRepository.AppendEntry(ctx, userID, entry); err != nil {
		log.Err(err).
			Int64("user_id", userID).
			Str("ticker", draft.Ticker).
			Msg("watchlist append failed")
		return models.User{}, fmt.Errorf("watchlist append failed: %w", err)
	}

	return s.refreshOwner(ctx, userID)
}

// UpdateEntry patches the single entry matching (userID, entryID), leaving
// sibling entries and unspecified fields untouched.
//
// A syntactically malformed entry id cannot resolve under any user, so it is
// reported as store.ErrEntryNotFound without touching storage. Returns the
// refreshed user view on success.
func (s *watchlistService) UpdateEntry(ctx context.Context, userID int64, entryID string, patch models.WatchlistEntryPatch) (models.User, error) {
	log := logger.FromContext(ctx)

	if !utils.IsWellFormedID(entryID) {
		log.Warn().Int64("user_id", userID).Str("entry_id", entryID).Msg("malformed entry id on update")
		return models.User{}, store.ErrEntryNotFound
	}

	if err := s.watchlistRepository.UpdateEntry(ctx, userID, entryID, patch); err != nil {
		log.Err(err).
			Int64("user_id", userID).
			Str("entry_id", entryID).
			Msg("watchlist update failed")
		return models.User{}, fmt.Errorf("watchlist update failed: %w", err)
	}

	return s.refreshOwner(ctx, userID)
}

// RemoveEntry deletes at most one entry matching (userID, entryID).
//
// A malformed id fails with ErrInvalidEntryID before any storage access;
// a well-formed id that matches nothing is an idempotent success. Returns
// the refreshed user view.
func (s *watchlistService) RemoveEntry(ctx context.Context, userID int64, entryID string) (models.User, error) {
	log := logger.FromContext(ctx)

	if !utils.IsWellFormedID(entryID) {
		log.Warn().Int64("user_id", userID).Str("entry_id", entryID).Msg("malformed entry id on remove")
		return models.User{}, ErrInvalidEntryID
	}

	if err := s.watchlistRepository.RemoveEntry(ctx, userID, entryID); err != nil {
		log.Err(err).
			Int64("user_id", userID).
			Str("entry_id", entryID).
			Msg("watchlist remove failed")
		return models.User{}, fmt.Errorf("watchlist remove failed: %w", err)
	}

	return s.refreshOwner(ctx, userID)
}

// refreshOwner re-reads the owner's record after a mutation so the caller
// receives the updated view including the full watchlist.
func (s *watchlistService) refreshOwner(ctx context.Context, userID int64) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("reloading user after watchlist mutation failed: %w", err)
	}

	return user, nil
}
