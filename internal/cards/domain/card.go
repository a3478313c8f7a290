// Package domain defines the card ledger domain model.
//
// A card is a versioned record keyed by the UID read from the physical medium.
// Every mutation bumps the version, which is the optimistic concurrency token
// the store's compare-and-swap write checks against.
package domain

import (
	"strings"
	"time"
)

// Status is the persisted card state.
type Status string

const (
	// StatusValid marks a card that can pay for trips.
	StatusValid Status = "VALID"

	// StatusInvalid marks a card that was administratively blocked or ran out
	// of credits. Only an administrative action brings it back to VALID.
	StatusInvalid Status = "INVALID"

	// StatusExpired marks a card whose expiration date has passed.
	StatusExpired Status = "EXPIRED"
)

// IsValid reports whether s is one of the persistable statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusValid, StatusInvalid, StatusExpired:
		return true
	}
	return false
}

// Card represents one physical card's ledger record.
type Card struct {
	// UID is the uppercase hex identifier read from the card, immutable once created.
	UID string
	// Status is the persisted card state (VALID, INVALID or EXPIRED).
	Status Status
	// Credits is the remaining trip balance, never negative.
	Credits int
	// ExpirationDate is the last calendar day the card is usable (nil means no expiry).
	ExpirationDate *time.Time
	// LastScanAt is the timestamp of the last scan that deducted a credit
	// (nil means never scanned). Repeat scans inside the cooldown window
	// leave it untouched.
	LastScanAt *time.Time
	// Name is a free-form display label, not involved in the scan decision.
	Name string
	// Version is the optimistic concurrency token, incremented on every mutation.
	Version uint64
	// CreatedAt is the UTC timestamp when the record was created.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the last mutation.
	UpdatedAt time.Time
}

// Clone returns an independent copy of the card. The validation engine
// mutates the copy and proposes it as the next state; the stored record is
// only replaced by the store's compare-and-swap write.
func (c *Card) Clone() *Card {
	if c == nil {
		return nil
	}
	clone := *c
	if c.ExpirationDate != nil {
		d := *c.ExpirationDate
		clone.ExpirationDate = &d
	}
	if c.LastScanAt != nil {
		ts := *c.LastScanAt
		clone.LastScanAt = &ts
	}
	return &clone
}

// ExpiredAt reports whether the card's expiration date lies strictly before
// now's UTC calendar date. A card expiring today is still usable all day.
func (c *Card) ExpiredAt(now time.Time) bool {
	if c.ExpirationDate == nil {
		return false
	}
	nowDate := truncateToDate(now.UTC())
	return truncateToDate(c.ExpirationDate.UTC()).Before(nowDate)
}

// truncateToDate drops the time-of-day component.
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// NormalizeUID canonicalizes a scanned UID for lookup: trimmed and uppercased,
// matching the form card records are keyed by.
func NormalizeUID(uid string) string {
	return strings.ToUpper(strings.TrimSpace(uid))
}
