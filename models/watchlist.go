// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vadim Karimov

package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// WatchlistEntry is one monitored token within a user's watchlist: a
// blockchain asset the user is tracking together with expected and received
// transfer amounts.
//
// An entry has no independent lifecycle. It is created only by appending to
// its owner's watchlist, mutated in place by a targeted update, and destroyed
// only by a targeted remove.
type WatchlistEntry struct {
	// EntryID is a UUID assigned at append time. It is the only stable key
	// for targeted update and remove operations; duplicate ticker/blockchain
	// pairs within one watchlist are legal.
	EntryID string `json:"entry_id"`

	// Ticker and Blockchain identify the tracked asset.
	Ticker     string `json:"ticker"`
	Blockchain string `json:"blockchain"`

	// Logo is a display string for the asset.
	Logo string `json:"logo"`

	// Contract is an opaque chain-specific contract descriptor.
	// It is required but may be an empty object.
	Contract json.RawMessage `json:"contract"`

	// ToReceive is the expected transfer quantity.
	ToReceive decimal.Decimal `json:"to_receive"`

	// ReceivedAmount is the observed transfer quantity.
	ReceivedAmount decimal.Decimal `json:"received_amount"`

	// Decimals is an opaque descriptor of the token decimal configuration.
	// It is required but may be an empty object.
	Decimals json.RawMessage `json:"decimals"`

	// LastUpdate is the instant of the last change to this entry.
	LastUpdate time.Time `json:"last_update"`
}

// TableName returns the name of the database table
// associated with the WatchlistEntry model.
func (e WatchlistEntry) TableName() string {
	return "watchlist_entries"
}

// WatchlistEntryDraft carries the client-supplied fields of a new watchlist
// entry. The server assigns EntryID and LastUpdate on append.
//
// Validation tags mirror the required-field rules of the entry schema:
// ticker, blockchain, logo, contract and decimals must be present; the two
// amounts default to zero when absent.
type WatchlistEntryDraft struct {
	Ticker         string          `json:"ticker" validate:"required"`
	Blockchain     string          `json:"blockchain" validate:"required"`
	Logo           string          `json:"logo" validate:"required"`
	Contract       json.RawMessage `json:"contract" validate:"required"`
	ToReceive      decimal.Decimal `json:"to_receive"`
	ReceivedAmount decimal.Decimal `json:"received_amount"`
	Decimals       json.RawMessage `json:"decimals" validate:"required"`
}

// WatchlistEntryPatch describes a partial update of a single watchlist entry.
// Each field is independently present-or-absent; nil fields are left
// untouched. The editable field set deliberately excludes Logo and Contract,
// which are fixed at append time.
type WatchlistEntryPatch struct {
	Ticker         *string          `json:"ticker"`
	Blockchain     *string          `json:"blockchain"`
	ToReceive      *decimal.Decimal `json:"to_receive"`
	ReceivedAmount *decimal.Decimal `json:"received_amount"`
	LastUpdate     *time.Time       `json:"last_update"`
	Decimals       *json.RawMessage `json:"decimals"`
}

// Empty reports whether the patch carries no fields at all.
func (p WatchlistEntryPatch) Empty() bool {
	return p.Ticker == nil && p.Blockchain == nil && p.ToReceive == nil &&
		p.ReceivedAmount == nil && p.LastUpdate == nil && p.Decimals == nil
}
