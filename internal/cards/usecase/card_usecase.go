package usecase

import (
	"context"
	"time"

	cardsDomain "github.com/ratt/validator/internal/cards/domain"
	"github.com/ratt/validator/internal/database"
	apperrors "github.com/ratt/validator/internal/errors"
)

// cardUseCase implements the CardUseCase interface.
type cardUseCase struct {
	txManager   database.TxManager
	cardRepo    CardRepository
	maxAttempts int
}

// Create provisions a new card. The UID is normalized before storage so scans
// and administrative calls agree on the key regardless of input casing.
func (c *cardUseCase) Create(ctx context.Context, input *CreateCardInput) (*cardsDomain.Card, error) {
	if input.Credits < 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "starting credits must not be negative")
	}

	now := time.Now().UTC()
	card := &cardsDomain.Card{
		UID:            cardsDomain.NormalizeUID(input.UID),
		Status:         cardsDomain.StatusValid,
		Credits:        input.Credits,
		ExpirationDate: input.ExpirationDate,
		Name:           input.Name,
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := c.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return c.cardRepo.Create(txCtx, card)
	})
	if err != nil {
		return nil, err
	}

	return card, nil
}

// Get retrieves a card by its UID.
func (c *cardUseCase) Get(ctx context.Context, uid string) (*cardsDomain.Card, error) {
	return c.cardRepo.Get(ctx, cardsDomain.NormalizeUID(uid))
}

// List retrieves cards ordered by UID with pagination.
func (c *cardUseCase) List(ctx context.Context, offset, limit int) ([]*cardsDomain.Card, error) {
	return c.cardRepo.List(ctx, offset, limit)
}

// Delete removes a card by its UID.
func (c *cardUseCase) Delete(ctx context.Context, uid string) error {
	return c.txManager.WithTx(ctx, func(txCtx context.Context) error {
		return c.cardRepo.Delete(txCtx, cardsDomain.NormalizeUID(uid))
	})
}

// TopUp adds credits to a card and restores a drained card to VALID.
func (c *cardUseCase) TopUp(ctx context.Context, uid string, amount int) (*cardsDomain.Card, error) {
	if amount <= 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "top-up amount must be positive")
	}

	return c.mutate(ctx, uid, func(card *cardsDomain.Card) {
		card.Credits += amount
		// Only the drained state is recoverable through payment: an expired
		// card needs a new expiration date first.
		if card.Status == cardsDomain.StatusInvalid {
			card.Status = cardsDomain.StatusValid
		}
	})
}

// SetStatus overrides a card's status.
func (c *cardUseCase) SetStatus(
	ctx context.Context,
	uid string,
	status cardsDomain.Status,
) (*cardsDomain.Card, error) {
	if !status.IsValid() {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "unknown card status")
	}

	return c.mutate(ctx, uid, func(card *cardsDomain.Card) {
		card.Status = status
	})
}

// SetExpiration sets or clears a card's expiration date.
func (c *cardUseCase) SetExpiration(
	ctx context.Context,
	uid string,
	expiration *time.Time,
) (*cardsDomain.Card, error) {
	return c.mutate(ctx, uid, func(card *cardsDomain.Card) {
		card.ExpirationDate = expiration
	})
}

// Rename changes a card's display name.
func (c *cardUseCase) Rename(ctx context.Context, uid string, name string) (*cardsDomain.Card, error) {
	return c.mutate(ctx, uid, func(card *cardsDomain.Card) {
		card.Name = name
	})
}

// mutate applies a read-modify-write under the version check, retrying a
// bounded number of times when a concurrent writer invalidates the read. Each
// attempt runs in its own transaction so a lost race leaves nothing behind.
func (c *cardUseCase) mutate(
	ctx context.Context,
	uid string,
	apply func(card *cardsDomain.Card),
) (*cardsDomain.Card, error) {
	uid = cardsDomain.NormalizeUID(uid)

	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		var result *cardsDomain.Card
		err := c.txManager.WithTx(ctx, func(txCtx context.Context) error {
			card, err := c.cardRepo.Get(txCtx, uid)
			if err != nil {
				return err
			}

			expected := card.Version
			apply(card)

			if err := c.cardRepo.CommitIfUnchanged(txCtx, card, expected); err != nil {
				return err
			}

			result = card
			return nil
		})
		if err == nil {
			return result, nil
		}
		if !apperrors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
	}

	return nil, apperrors.Wrap(apperrors.ErrContention, "card update lost too many version races")
}

// NewCardUseCase creates a new card use case instance with the provided
// dependencies. maxAttempts bounds the version-race retry loop.
func NewCardUseCase(txManager database.TxManager, cardRepo CardRepository, maxAttempts int) CardUseCase {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &cardUseCase{
		txManager:   txManager,
		cardRepo:    cardRepo,
		maxAttempts: maxAttempts,
	}
}
