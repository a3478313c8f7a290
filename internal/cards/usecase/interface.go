// Package usecase defines the interfaces and implementations for card
// management use cases. Use cases orchestrate operations between repositories
// and domain logic to implement administrative card provisioning, top-ups and
// status control on top of version-checked writes.
package usecase

import (
	"context"
	"time"

	cardsDomain "github.com/ratt/validator/internal/cards/domain"
)

// CardRepository defines the interface for card persistence operations.
//
// CommitIfUnchanged writes the card only if the stored version still equals
// expectedVersion, returning ErrConflict when another writer got there first.
type CardRepository interface {
	Get(ctx context.Context, uid string) (*cardsDomain.Card, error)
	Create(ctx context.Context, card *cardsDomain.Card) error
	CommitIfUnchanged(ctx context.Context, card *cardsDomain.Card, expectedVersion uint64) error
	Delete(ctx context.Context, uid string) error
	List(ctx context.Context, offset, limit int) ([]*cardsDomain.Card, error)
}

// CreateCardInput carries the fields for provisioning a new card.
type CreateCardInput struct {
	UID            string
	Name           string
	Credits        int
	ExpirationDate *time.Time
}

// CardUseCase defines the interface for administrative card management.
type CardUseCase interface {
	Create(ctx context.Context, input *CreateCardInput) (*cardsDomain.Card, error)
	Get(ctx context.Context, uid string) (*cardsDomain.Card, error)
	List(ctx context.Context, offset, limit int) ([]*cardsDomain.Card, error)
	Delete(ctx context.Context, uid string) error
	// TopUp adds credits to a card. A card that was drained to INVALID is
	// restored to VALID; an EXPIRED card keeps its status.
	TopUp(ctx context.Context, uid string, amount int) (*cardsDomain.Card, error)
	SetStatus(ctx context.Context, uid string, status cardsDomain.Status) (*cardsDomain.Card, error)
	SetExpiration(ctx context.Context, uid string, expiration *time.Time) (*cardsDomain.Card, error)
	Rename(ctx context.Context, uid string, name string) (*cardsDomain.Card, error)
}
