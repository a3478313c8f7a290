package repository

import (
	"context"
	"time"

	cardsDomain "github.com/ratt/validator/internal/cards/domain"
	cardsUseCase "github.com/ratt/validator/internal/cards/usecase"
)

// TimeoutCardRepository bounds every store call with a deadline so a slow or
// unreachable backend turns into a storage error instead of a hung scan.
type TimeoutCardRepository struct {
	next    cardsUseCase.CardRepository
	timeout time.Duration
}

// NewTimeoutCardRepository wraps a repository with a per-call timeout.
func NewTimeoutCardRepository(next cardsUseCase.CardRepository, timeout time.Duration) *TimeoutCardRepository {
	return &TimeoutCardRepository{
		next:    next,
		timeout: timeout,
	}
}

func (r *TimeoutCardRepository) Get(ctx context.Context, uid string) (*cardsDomain.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.next.Get(ctx, uid)
}

func (r *TimeoutCardRepository) Create(ctx context.Context, card *cardsDomain.Card) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.next.Create(ctx, card)
}

func (r *TimeoutCardRepository) CommitIfUnchanged(
	ctx context.Context,
	card *cardsDomain.Card,
	expectedVersion uint64,
) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.next.CommitIfUnchanged(ctx, card, expectedVersion)
}

func (r *TimeoutCardRepository) Delete(ctx context.Context, uid string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.next.Delete(ctx, uid)
}

func (r *TimeoutCardRepository) List(ctx context.Context, offset, limit int) ([]*cardsDomain.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.next.List(ctx, offset, limit)
}
