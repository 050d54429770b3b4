package http

import (
	"encoding/json"
	"net/http"

	"github.com/vkarimov/tokenwatch/internal/logger"
	"github.com/vkarimov/tokenwatch/internal/utils"
	"github.com/vkarimov/tokenwatch/models"
)

// currentUser responds with the full profile of the authenticated user,
// watchlist included.
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	user, err := h.services.UserService.GetUser(r.Context(), userID)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("error getting user")
		writeDomainError(w, err)
		return
	}

	if _, err = utils.WriteJSON(w, user, http.StatusOK); err != nil {
		log.Error().Err(err).Msg("error writing user response")
	}
}

// updateProfile applies the posted profile fields to the authenticated user
// and responds with the updated profile. Absent fields are left untouched.
func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Error().Msg("no user id in request context")
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var patch models.ProfilePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Error().Err(err).Msg("error decoding profile patch body")
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	user, err := h.services.UserService.UpdateProfile(r.Context(), userID, patch)
	if err != nil {
		log.Error().Err(err).Int64("user_id", userID).Msg("error updating profile")
		writeDomainError(w, err)
		return
	}

	log.Info().Int64("user_id", userID).Msg("profile updated")
	if _, err = utils.WriteJSON(w, user, http.StatusOK); err != nil {
		log.Error().Err(err).Msg("error writing profile response")
	}
}
