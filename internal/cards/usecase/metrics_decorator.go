package usecase

import (
	"context"
	"time"

	cardsDomain "github.com/ratt/validator/internal/cards/domain"
	"github.com/ratt/validator/internal/metrics"
)

// cardUseCaseWithMetrics decorates CardUseCase with metrics instrumentation.
type cardUseCaseWithMetrics struct {
	next    CardUseCase
	metrics metrics.BusinessMetrics
}

// NewCardUseCaseWithMetrics wraps a CardUseCase with metrics recording.
func NewCardUseCaseWithMetrics(useCase CardUseCase, m metrics.BusinessMetrics) CardUseCase {
	return &cardUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *cardUseCaseWithMetrics) record(
	ctx context.Context,
	operation string,
	start time.Time,
	err error,
) {
	status := "success"
	if err != nil {
		status = "error"
	}

	c.metrics.RecordOperation(ctx, "cards", operation, status)
	c.metrics.RecordDuration(ctx, "cards", operation, time.Since(start), status)
}

// Create records metrics for card provisioning operations.
func (c *cardUseCaseWithMetrics) Create(
	ctx context.Context,
	input *CreateCardInput,
) (*cardsDomain.Card, error) {
	start := time.Now()
	card, err := c.next.Create(ctx, input)
	c.record(ctx, "card_create", start, err)
	return card, err
}

// Get records metrics for card retrieval operations.
func (c *cardUseCaseWithMetrics) Get(ctx context.Context, uid string) (*cardsDomain.Card, error) {
	start := time.Now()
	card, err := c.next.Get(ctx, uid)
	c.record(ctx, "card_get", start, err)
	return card, err
}

// List records metrics for card listing operations.
func (c *cardUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*cardsDomain.Card, error) {
	start := time.Now()
	cards, err := c.next.List(ctx, offset, limit)
	c.record(ctx, "card_list", start, err)
	return cards, err
}

// Delete records metrics for card deletion operations.
func (c *cardUseCaseWithMetrics) Delete(ctx context.Context, uid string) error {
	start := time.Now()
	err := c.next.Delete(ctx, uid)
	c.record(ctx, "card_delete", start, err)
	return err
}

// TopUp records metrics for top-up operations.
func (c *cardUseCaseWithMetrics) TopUp(
	ctx context.Context,
	uid string,
	amount int,
) (*cardsDomain.Card, error) {
	start := time.Now()
	card, err := c.next.TopUp(ctx, uid, amount)
	c.record(ctx, "card_topup", start, err)
	return card, err
}

// SetStatus records metrics for status override operations.
func (c *cardUseCaseWithMetrics) SetStatus(
	ctx context.Context,
	uid string,
	status cardsDomain.Status,
) (*cardsDomain.Card, error) {
	start := time.Now()
	card, err := c.next.SetStatus(ctx, uid, status)
	c.record(ctx, "card_set_status", start, err)
	return card, err
}

// SetExpiration records metrics for expiration update operations.
func (c *cardUseCaseWithMetrics) SetExpiration(
	ctx context.Context,
	uid string,
	expiration *time.Time,
) (*cardsDomain.Card, error) {
	start := time.Now()
	card, err := c.next.SetExpiration(ctx, uid, expiration)
	c.record(ctx, "card_set_expiration", start, err)
	return card, err
}

// Rename records metrics for rename operations.
func (c *cardUseCaseWithMetrics) Rename(
	ctx context.Context,
	uid string,
	name string,
) (*cardsDomain.Card, error) {
	start := time.Now()
	card, err := c.next.Rename(ctx, uid, name)
	c.record(ctx, "card_rename", start, err)
	return card, err
}
