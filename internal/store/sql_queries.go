package store

import (
	"github.com/Masterminds/squirrel"
	"github.com/vkarimov/tokenwatch/models"
)

const (
	createUser = `INSERT INTO users (name, email, password_hash, address, picture_url)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING user_id, name, email, password_hash, address, is_admin, picture_url, created_at, updated_at;`

	findUserByEmail = `SELECT user_id, name, email, password_hash, address, is_admin, picture_url, created_at, updated_at
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT user_id, name, email, password_hash, address, is_admin, picture_url, created_at, updated_at
    FROM users
    WHERE user_id = $1;`

	findWatchlistByUserID = `SELECT entry_id, ticker, blockchain, logo, contract, to_receive, received_amount, decimals, last_update
    FROM watchlist_entries
    WHERE user_id = $1
    ORDER BY seq;`

	appendWatchlistEntry = `INSERT INTO watchlist_entries (entry_id, user_id, ticker, blockchain, logo, contract, to_receive, received_amount, decimals, last_update)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`

	removeWatchlistEntry = `DELETE FROM watchlist_entries
    WHERE entry_id = $1 AND user_id = $2;`
)

// psql builds queries with PostgreSQL-style $N placeholders.
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// buildUpdateProfileQuery builds a dynamic UPDATE over the users table that
// sets only the fields present in the patch and always refreshes the
// modification timestamp. The WHERE clause targets exactly one user row.
func buildUpdateProfileQuery(userID int64, patch models.ProfilePatch) (string, []any, error) {
	builder := psql.Update((models.User{}).TableName()).
		Set("updated_at", squirrel.Expr("NOW()"))

	if patch.Name != nil {
		builder = builder.Set("name", *patch.Name)
	}
	if patch.Email != nil {
		builder = builder.Set("email", *patch.Email)
	}
	if patch.Address != nil {
		builder = builder.Set("address", *patch.Address)
	}

	return builder.Where(squirrel.Eq{"user_id": userID}).ToSql()
}

// buildUpdateEntryQuery builds a dynamic UPDATE over the watchlist_entries
// table that sets only the fields present in the patch. Absent fields — the
// entry's last_update included — are never written, so everything the patch
// does not name stays byte-identical.
//
// The WHERE clause targets the compound key (entry_id, user_id), so the
// statement mutates at most the one entry owned by the given user and never
// touches siblings.
//
// An empty patch reassigns the entry's own key to itself: a value-level
// no-op that still yields a row count, preserving the existence check.
func buildUpdateEntryQuery(userID int64, entryID string, patch models.WatchlistEntryPatch) (string, []any, error) {
	builder := psql.Update((models.WatchlistEntry{}).TableName())

	if patch.Ticker != nil {
		builder = builder.Set("ticker", *patch.Ticker)
	}
	if patch.Blockchain != nil {
		builder = builder.Set("blockchain", *patch.Blockchain)
	}
	if patch.ToReceive != nil {
		builder = builder.Set("to_receive", *patch.ToReceive)
	}
	if patch.ReceivedAmount != nil {
		builder = builder.Set("received_amount", *patch.ReceivedAmount)
	}
	if patch.Decimals != nil {
		builder = builder.Set("decimals", []byte(*patch.Decimals))
	}
	if patch.LastUpdate != nil {
		builder = builder.Set("last_update", *patch.LastUpdate)
	}

	if patch.Empty() {
		builder = builder.Set("entry_id", entryID)
	}

	return builder.Where(squirrel.Eq{"entry_id": entryID, "user_id": userID}).ToSql()
}
