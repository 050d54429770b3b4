package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vkarimov/tokenwatch/internal/logger"
	"github.com/vkarimov/tokenwatch/internal/mock"
	"github.com/vkarimov/tokenwatch/internal/service"
	"github.com/vkarimov/tokenwatch/internal/store"
	"github.com/vkarimov/tokenwatch/internal/utils"
	"github.com/vkarimov/tokenwatch/models"
)

// ---- Helpers ----

func newTestHandler(services *service.Services) *Handler {
	return &Handler{
		logger:   logger.Nop(),
		services: services,
	}
}

// injectNopLogger puts a nop logger into the request context so handlers can
// call logger.FromRequest without middleware.
func injectNopLogger(r *http.Request) *http.Request {
	nop := logger.Nop()
	ctx := nop.Logger.WithContext(r.Context())
	return r.WithContext(ctx)
}

func executeAuth(h *Handler, authHeader string, next http.Handler) *httptest.ResponseRecorder {
	middleware := h.auth(next)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = injectNopLogger(req)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	middleware.ServeHTTP(rr, req)
	return rr
}

// ---- getTokenFromAuthHeader unit tests ----

func TestGetTokenFromAuthHeader_TableTest(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantToken string
		wantErr   error
	}{
		{
			name:      "valid Bearer token",
			header:    "Bearer my-jwt-token",
			wantToken: "my-jwt-token",
		},
		{
			name:    "missing token part",
			header:  "Bearer",
			wantErr: ErrInvalidAuthorizationHeader,
		},
		{
			name:    "empty header",
			header:  "",
			wantErr: ErrInvalidAuthorizationHeader,
		},
		{
			name:    "non-Bearer scheme is rejected",
			header:  "Basic dXNlcjpwYXNz",
			wantErr: ErrInvalidAuthorizationScheme,
		},
		{
			name:    "lowercase scheme is rejected",
			header:  "bearer my-jwt-token",
			wantErr: ErrInvalidAuthorizationScheme,
		},
		{
			name:    "empty token after scheme",
			header:  "Bearer ",
			wantErr: ErrEmptyToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := getTokenFromAuthHeader(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
		})
	}
}

// ---- auth middleware tests ----

func TestAuthMiddleware_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mock.NewMockAuthService(ctrl)
	mockUsers := mock.NewMockUserService(ctrl)
	h := newTestHandler(&service.Services{AuthService: mockAuth, UserService: mockUsers})

	token := models.Token{}
	token.Subject = "7"

	mockAuth.EXPECT().
		ParseToken(gomock.Any(), "valid-token").
		Return(token, nil)
	mockUsers.EXPECT().
		GetUser(gomock.Any(), int64(7)).
		Return(models.User{UserID: 7}, nil)

	var gotUserID int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := utils.GetUserIDFromContext(r.Context())
		require.True(t, ok)
		gotUserID = id
		w.WriteHeader(http.StatusOK)
	})

	rr := executeAuth(h, "Bearer valid-token", next)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(7), gotUserID)
}

func TestAuthMiddleware_UniformRejection(t *testing.T) {
	// every failure mode must produce the exact same response, so a caller
	// cannot tell which check failed
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mock.NewMockAuthService(ctrl)
	mockUsers := mock.NewMockUserService(ctrl)
	h := newTestHandler(&service.Services{AuthService: mockAuth, UserService: mockUsers})

	mockAuth.EXPECT().
		ParseToken(gomock.Any(), "bad-token").
		Return(models.Token{}, service.ErrTokenIsExpiredOrInvalid).
		AnyTimes()

	vanished := models.Token{}
	vanished.Subject = "404"
	mockAuth.EXPECT().
		ParseToken(gomock.Any(), "vanished-user-token").
		Return(vanished, nil).
		AnyTimes()
	mockUsers.EXPECT().
		GetUser(gomock.Any(), int64(404)).
		Return(models.User{}, errors.New("user search by id failed: "+store.ErrNoUserWasFound.Error())).
		AnyTimes()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler must not run on rejected requests")
	})

	headers := []string{
		"",                            // no header
		"Bearer",                      // no token
		"Basic dXNlcjpwYXNz",          // wrong scheme
		"Bearer bad-token",            // invalid token
		"Bearer vanished-user-token",  // subject no longer exists
	}

	var bodies []string
	for _, header := range headers {
		rr := executeAuth(h, header, next)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "header %q", header)
		bodies = append(bodies, rr.Body.String())
	}

	for i := 1; i < len(bodies); i++ {
		assert.Equal(t, bodies[0], bodies[i], "rejection bodies must be indistinguishable")
	}
}

func TestAuthMiddleware_ContextUserIDIsAuthoritative(t *testing.T) {
	// a user id planted in the request context by anything other than the
	// middleware must not survive: the gate overwrites it from the token
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuth := mock.NewMockAuthService(ctrl)
	mockUsers := mock.NewMockUserService(ctrl)
	h := newTestHandler(&service.Services{AuthService: mockAuth, UserService: mockUsers})

	token := models.Token{}
	token.Subject = "7"

	mockAuth.EXPECT().
		ParseToken(gomock.Any(), "valid-token").
		Return(token, nil)
	mockUsers.EXPECT().
		GetUser(gomock.Any(), int64(7)).
		Return(models.User{UserID: 7}, nil)

	var gotUserID int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = utils.GetUserIDFromContext(r.Context())
	})

	middleware := h.auth(next)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = injectNopLogger(req)
	req = req.WithContext(context.WithValue(req.Context(), utils.UserIDCtxKey, int64(999)))
	req.Header.Set("Authorization", "Bearer valid-token")

	rr := httptest.NewRecorder()
	middleware.ServeHTTP(rr, req)

	assert.Equal(t, int64(7), gotUserID)
}
