package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vkarimov/tokenwatch/internal/logger"
	"github.com/vkarimov/tokenwatch/internal/utils"
	"github.com/vkarimov/tokenwatch/models"
)

// appendEntry adds a monitored token to the authenticated user's watchlist
// and responds with the updated user.
func (h *Handler) appendEntry(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var draft models.WatchlistEntryDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		log.Error().Err(err).Msg("error decoding watchlist entry body")
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	user, err := h.services.WatchlistService.AppendEntry(r.Context(), userID, draft)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("error appending watchlist entry")
		writeDomainError(w, err)
		return
	}

	log.Info().Int64("user_id", userID).Str("ticker", draft.Ticker).Msg("watchlist entry added")
	if _, err = utils.WriteJSON(w, user, http.StatusOK); err != nil {
		log.Error().Err(err).Msg("error writing watchlist response")
	}
}

// updateEntry applies the posted fields to a single watchlist entry owned by
// the authenticated user and responds with the updated user. Targeting an
// entry owned by somebody else reports not-found, never touching their data.
func (h *Handler) updateEntry(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	entryID := chi.URLParam(r, "entryID")

	var patch models.WatchlistEntryPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Error().Err(err).Msg("error decoding watchlist patch body")
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	user, err := h.services.WatchlistService.UpdateEntry(r.Context(), userID, entryID, patch)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Str("entry_id", entryID).Msg("error updating watchlist entry")
		writeDomainError(w, err)
		return
	}

	log.Info().Int64("user_id", userID).Str("entry_id", entryID).Msg("watchlist entry updated")
	if _, err = utils.WriteJSON(w, user, http.StatusOK); err != nil {
		log.Error().Err(err).Msg("error writing watchlist response")
	}
}

// removeEntry deletes a single watchlist entry owned by the authenticated
// user and responds with the updated user. Removing an entry that is already
// gone succeeds, so retried deletes are harmless.
func (h *Handler) removeEntry(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	entryID := chi.URLParam(r, "entryID")

	user, err := h.services.WatchlistService.RemoveEntry(r.Context(), userID, entryID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Str("entry_id", entryID).Msg("error removing watchlist entry")
		writeDomainError(w, err)
		return
	}

	log.Info().Int64("user_id", userID).Str("entry_id", entryID).Msg("watchlist entry removed")
	if _, err = utils.WriteJSON(w, user, http.StatusOK); err != nil {
		log.Error().Err(err).Msg("error writing watchlist response")
	}
}
