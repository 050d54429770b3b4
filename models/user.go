package models

import "time"

// DefaultPictureURL is assigned to newly registered users that do not supply
// their own avatar.
const DefaultPictureURL = "https://bitcoin.org/img/icons/opengraph.png?1662473327"

// User represents a registered identity together with its owned watchlist.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user. It is assigned
	// by the persistence layer at creation time and is immutable afterwards;
	// it is also the subject of every session token issued for this user.
	UserID int64 `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the globally unique login key.
	Email string `json:"email"`

	// Address is an optional contact attribute.
	Address string `json:"address"`

	// PasswordHash stores the bcrypt digest of the user's password.
	// It is never serialized outward and is non-empty for every
	// persisted user.
	PasswordHash string `json:"-"`

	// IsAdmin defaults to false. No access-control logic keys off it yet;
	// it is a latent capability carried over from the data model.
	IsAdmin bool `json:"is_admin"`

	// PictureURL is a display attribute with a default
	// (see DefaultPictureURL).
	PictureURL string `json:"picture_url"`

	// Watchlist is the ordered collection of monitored-token entries owned
	// exclusively by this user. Insertion order is preserved.
	Watchlist []WatchlistEntry `json:"watchlist"`

	// CreatedAt and UpdatedAt are maintained automatically by the store.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// ProfilePatch describes a partial profile update. Each field is independently
// present-or-absent; nil fields are left untouched by the update.
type ProfilePatch struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

// Empty reports whether the patch carries no fields at all.
func (p ProfilePatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Address == nil
}
