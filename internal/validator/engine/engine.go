// Package engine implements the card validation decision logic.
//
// Decide is a pure function: given a card record, the scan time and the
// cooldown window it computes the scan outcome and the proposed next record
// state. It performs no I/O and never mutates its input, which is what makes
// it safe to re-run after a lost compare-and-swap and trivial to test.
package engine

import (
	"time"

	cardsDomain "github.com/ratt/validator/internal/cards/domain"
)

// Outcome is the terminal-facing result of a scan decision.
type Outcome string

const (
	// OutcomeValid: the trip is permitted. Either a credit was deducted or
	// the scan landed inside a previously paid cooldown window.
	OutcomeValid Outcome = "VALID"

	// OutcomeInvalid: the card is administratively blocked or drained; it
	// stays denied until an administrative reset.
	OutcomeInvalid Outcome = "INVALID"

	// OutcomeExpired: the card's expiration date has passed.
	OutcomeExpired Outcome = "EXPIRED"

	// OutcomeInsufficientCredits: the balance hit zero on this scan; the
	// card flips to INVALID so later scans short-circuit.
	OutcomeInsufficientCredits Outcome = "INSUFFICIENT_CREDITS"

	// OutcomeUnknown: no record exists for the scanned UID.
	OutcomeUnknown Outcome = "UNKNOWN"
)

// Decision carries the outcome plus the card fields the terminal displays.
type Decision struct {
	Outcome        Outcome
	Credits        int
	ExpirationDate *time.Time
	Name           string
}

// Decide computes the scan outcome for a card at the given time.
//
// It returns the decision and the proposed next record state, or nil when the
// stored record needs no update (the caller then skips the write entirely).
// The input card is never mutated.
//
// Decision order: missing record, terminal status, expiration, cooldown,
// credit deduction. The scan that discovers an expiration persists the status
// flip but deducts nothing; a scan inside the cooldown window is a free
// transfer and leaves the record untouched; exhausting the balance flips the
// card to INVALID so every later scan stops at the terminal-status check.
func Decide(card *cardsDomain.Card, now time.Time, cooldown time.Duration) (Decision, *cardsDomain.Card) {
	if card == nil {
		return Decision{Outcome: OutcomeUnknown}, nil
	}

	decision := Decision{
		Credits:        card.Credits,
		ExpirationDate: card.ExpirationDate,
		Name:           card.Name,
	}

	// A non-VALID card never re-evaluates expiration or credits; it must be
	// administratively reset first.
	if card.Status != cardsDomain.StatusValid {
		switch card.Status {
		case cardsDomain.StatusExpired:
			decision.Outcome = OutcomeExpired
		default:
			decision.Outcome = OutcomeInvalid
		}
		return decision, nil
	}

	if card.ExpiredAt(now) {
		updated := card.Clone()
		updated.Status = cardsDomain.StatusExpired
		decision.Outcome = OutcomeExpired
		return decision, updated
	}

	// Inside the cooldown window the rider is still on a paid trip: permit
	// without deducting and without moving the window.
	if card.LastScanAt != nil && now.Sub(*card.LastScanAt) < cooldown {
		decision.Outcome = OutcomeValid
		return decision, nil
	}

	if card.Credits > 0 {
		updated := card.Clone()
		updated.Credits--
		scanAt := now
		updated.LastScanAt = &scanAt
		decision.Outcome = OutcomeValid
		decision.Credits = updated.Credits
		return decision, updated
	}

	updated := card.Clone()
	updated.Status = cardsDomain.StatusInvalid
	decision.Outcome = OutcomeInsufficientCredits
	return decision, updated
}
