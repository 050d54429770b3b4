// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vadim Karimov

package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/vkarimov/tokenwatch/internal/logger"
	"github.com/vkarimov/tokenwatch/internal/utils"
)

const bearerScheme = "Bearer"

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// validates it via [service.AuthService.ParseToken], confirms that the token's
// subject still exists, and — on success — stores the authenticated user's ID
// in the request context under [utils.UserIDCtxKey] before delegating to the
// next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized in the following cases:
//   - The "Authorization" header is absent ([ErrEmptyAuthorizationHeader]).
//   - The header value cannot be parsed as a bearer token
//     ([ErrInvalidAuthorizationHeader], [ErrInvalidAuthorizationScheme] or
//     [ErrEmptyToken]).
//   - The token is expired, forged, or otherwise unparsable.
//   - The account named by the token no longer exists.
//
// Every rejection responds with the same generic body regardless of cause, so
// the response gives an attacker no signal about which check failed. The real
// cause is logged via the context-scoped logger obtained through
// [logger.FromRequest].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			unauthorized(w)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			unauthorized(w)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			unauthorized(w)
			return
		}

		userID, err := token.GetUserID()
		if err != nil {
			log.Err(err).Msg("token subject is not a valid user id")
			unauthorized(w)
			return
		}

		// A token can outlive its account. Resolve the subject on every
		// request so a deleted user's tokens stop working immediately.
		if _, err = h.services.UserService.GetUser(ctx, userID); err != nil {
			log.Err(err).Int64("user_id", userID).Msg("token subject could not be resolved")
			unauthorized(w)
			return
		}

		// Store the authenticated user's ID in the context so that downstream
		// handlers can retrieve it without re-parsing the token.
		ctx = context.WithValue(ctx, utils.UserIDCtxKey, userID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter) {
	http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value.
//
// The header is expected to follow the standard format:
//
//	Authorization: Bearer <token>
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] — if the header cannot be split into
//     a scheme and a token.
//   - [ErrInvalidAuthorizationScheme] — if the scheme prefix is not "Bearer".
//   - [ErrEmptyToken] — if the token part exists but is an empty string.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	if parts[0] != bearerScheme {
		return "", ErrInvalidAuthorizationScheme
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
