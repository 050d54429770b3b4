package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vkarimov/tokenwatch/internal/logger"
	"github.com/vkarimov/tokenwatch/internal/store"
	"github.com/vkarimov/tokenwatch/internal/utils"
	"github.com/vkarimov/tokenwatch/models"
)

// register creates a new account from the posted credentials and profile
// fields and responds with the stored user. The password never appears in the
// response; only its bcrypt digest is persisted.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Error().Err(err).Msg("error decoding register request body")
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	user, err := h.services.AuthService.RegisterUser(r.Context(), request)
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			log.Info().Str("email", request.Email).Msg("registration rejected: email already taken")
		} else {
			log.Error().Err(err).Msg("error registering user")
		}
		writeDomainError(w, err)
		return
	}

	log.Info().Int64("user_id", user.UserID).Msg("user registered")
	if _, err = utils.WriteJSON(w, user, http.StatusCreated); err != nil {
		log.Error().Err(err).Msg("error writing register response")
	}
}

// login verifies the posted credentials and, on success, responds with a
// signed bearer token. An unknown email reports 404 while a wrong password
// reports 401, so a caller can tell a missing account from a bad password.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Error().Err(err).Msg("error decoding login request body")
		http.Error(w, "malformed request body", http.StatusBadRequest)
		return
	}

	user, err := h.services.AuthService.Login(r.Context(), request)
	if err != nil {
		log.Info().Err(err).Str("email", request.Email).Msg("login failed")
		writeDomainError(w, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(r.Context(), user)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.UserID).Msg("error creating token")
		writeDomainError(w, err)
		return
	}

	log.Info().Int64("user_id", user.UserID).Msg("user logged in")
	if _, err = utils.WriteJSON(w, models.LoginResponse{Token: token.SignedString}, http.StatusOK); err != nil {
		log.Error().Err(err).Msg("error writing login response")
	}
}

// logout acknowledges the end of a session. Bearer tokens are stateless, so
// there is nothing to revoke server-side; clients discard the token.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if _, err := utils.WriteJSON(w, models.MessageResponse{Message: "Successfully logged out"}, http.StatusOK); err != nil {
		log.Error().Err(err).Msg("error writing logout response")
	}
}
