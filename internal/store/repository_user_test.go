package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vkarimov/tokenwatch/internal/logger"
	"github.com/vkarimov/tokenwatch/models"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &userRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func userColumns() []string {
	return []string{"user_id", "name", "email", "password_hash", "address", "is_admin", "picture_url", "created_at", "updated_at"}
}

func entryColumns() []string {
	return []string{"entry_id", "ticker", "blockchain", "logo", "contract", "to_receive", "received_amount", "decimals", "last_update"}
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		Name:         "john",
		Email:        "john@example.com",
		PasswordHash: "$2a$10$digest",
		Address:      "221B Baker Street",
	}

	now := time.Now()

	rows := sqlmock.
		NewRows(userColumns()).
		AddRow(1, user.Name, user.Email, user.PasswordHash, user.Address, false, models.DefaultPictureURL, now, now)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Name, user.Email, user.PasswordHash, user.Address, models.DefaultPictureURL).
		WillReturnRows(rows)

	created, err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != 1 {
		t.Errorf("expected UserID=1, got %d", created.UserID)
	}
	if created.Email != user.Email {
		t.Errorf("expected email %s, got %s", user.Email, created.Email)
	}
	if created.PictureURL != models.DefaultPictureURL {
		t.Errorf("expected default picture url, got %s", created.PictureURL)
	}
	if created.Watchlist == nil || len(created.Watchlist) != 0 {
		t.Errorf("expected empty watchlist, got %v", created.Watchlist)
	}
}

func TestCreateUser_KeepsExplicitPicture(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		Name:         "john",
		Email:        "john@example.com",
		PasswordHash: "$2a$10$digest",
		PictureURL:   "https://example.com/avatar.png",
	}

	now := time.Now()

	rows := sqlmock.
		NewRows(userColumns()).
		AddRow(1, user.Name, user.Email, user.PasswordHash, "", false, user.PictureURL, now, now)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Name, user.Email, user.PasswordHash, "", user.PictureURL).
		WillReturnRows(rows)

	created, err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.PictureURL != user.PictureURL {
		t.Errorf("expected picture url %s, got %s", user.PictureURL, created.PictureURL)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{Email: "john@example.com"}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(ctx, user)
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestFindUserByEmail_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.
		NewRows(userColumns()).
		AddRow(7, "john", "john@example.com", "$2a$10$digest", "", false, models.DefaultPictureURL, now, now)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("john@example.com").
		WillReturnRows(rows)

	found, err := repo.FindUserByEmail(ctx, "john@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.UserID != 7 {
		t.Errorf("expected UserID=7, got %d", found.UserID)
	}
	if found.PasswordHash == "" {
		t.Error("expected password digest to be loaded for credential check")
	}
	if found.Watchlist != nil {
		t.Error("expected watchlist to be skipped on email lookup")
	}
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	// an empty result set, not a query error, is how a missing row surfaces
	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows(userColumns()))

	_, err := repo.FindUserByEmail(ctx, "ghost@example.com")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestFindUserByID_LoadsWatchlistInOrder(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()

	userRows := sqlmock.
		NewRows(userColumns()).
		AddRow(7, "john", "john@example.com", "$2a$10$digest", "", false, models.DefaultPictureURL, now, now)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(int64(7)).
		WillReturnRows(userRows)

	entryRows := sqlmock.
		NewRows(entryColumns()).
		AddRow("018f5a1e-0000-7000-8000-000000000001", "BTC", "bitcoin", "https://example.com/btc.png", []byte(`{}`), "1.5", "0", []byte(`{"btc":8}`), now).
		AddRow("018f5a1e-0000-7000-8000-000000000002", "ETH", "ethereum", "https://example.com/eth.png", []byte(`{}`), "2", "0.25", []byte(`{"eth":18}`), now)

	mock.ExpectQuery("SELECT (.+) FROM watchlist_entries").
		WithArgs(int64(7)).
		WillReturnRows(entryRows)

	found, err := repo.FindUserByID(ctx, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(found.Watchlist) != 2 {
		t.Fatalf("expected 2 watchlist entries, got %d", len(found.Watchlist))
	}
	if found.Watchlist[0].Ticker != "BTC" || found.Watchlist[1].Ticker != "ETH" {
		t.Errorf("expected insertion order BTC, ETH; got %s, %s", found.Watchlist[0].Ticker, found.Watchlist[1].Ticker)
	}
}

func TestFindUserByID_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(userColumns()))

	_, err := repo.FindUserByID(ctx, 404)
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}

func TestUpdateProfile_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	name := "johnny"

	mock.ExpectExec("UPDATE users").
		WithArgs(name, int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateProfile(ctx, 7, models.ProfilePatch{Name: &name})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateProfile_EmailTaken(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	email := "taken@example.com"

	mock.ExpectExec("UPDATE users").
		WithArgs(email, int64(7)).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	err := repo.UpdateProfile(ctx, 7, models.ProfilePatch{Email: &email})
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestUpdateProfile_UserGone(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	name := "ghost"

	mock.ExpectExec("UPDATE users").
		WithArgs(name, int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateProfile(ctx, 404, models.ProfilePatch{Name: &name})
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Fatalf("expected ErrNoUserWasFound, got %v", err)
	}
}
