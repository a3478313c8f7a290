// Package usecase implements the scan validation flow. It ties the pure
// decision logic to the card store with version-checked commits, retrying a
// bounded number of times when concurrent scanners race on the same card.
package usecase

import (
	"context"
	"time"

	cardsDomain "github.com/ratt/validator/internal/cards/domain"
	"github.com/ratt/validator/internal/validator/engine"
)

// CardReader defines the card store operations the scan flow needs.
type CardReader interface {
	Get(ctx context.Context, uid string) (*cardsDomain.Card, error)
	CommitIfUnchanged(ctx context.Context, card *cardsDomain.Card, expectedVersion uint64) error
}

// ScanResult is the outcome of a scan as shown to the terminal.
type ScanResult struct {
	Outcome        engine.Outcome
	Credits        int
	ExpirationDate *time.Time
	Name           string
	// Retries counts the version races this scan lost before committing.
	Retries int
}

// ValidatorUseCase defines the interface for the terminal-facing scan flow.
type ValidatorUseCase interface {
	// Scan validates a card UID and applies any resulting state change.
	// A missing card is a normal result (Outcome UNKNOWN), not an error.
	Scan(ctx context.Context, uid string) (*ScanResult, error)

	// Ping records a terminal heartbeat and returns the server time the
	// terminal uses to gate its ready state.
	Ping(ctx context.Context, lineName string, at time.Time) time.Time
}
