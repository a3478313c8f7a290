package usecase

import (
	"context"
	"log/slog"
	"time"

	cardsDomain "github.com/ratt/validator/internal/cards/domain"
	apperrors "github.com/ratt/validator/internal/errors"
	"github.com/ratt/validator/internal/validator/engine"
)

// validatorUseCase implements the ValidatorUseCase interface.
type validatorUseCase struct {
	cardRepo    CardReader
	cooldown    time.Duration
	maxAttempts int
	now         func() time.Time
	logger      *slog.Logger
}

// Scan runs the read-decide-commit loop for a card scan.
//
// Each attempt reads the card, computes the decision against the current
// server time and commits the proposed state under the version read. A lost
// race means another terminal changed the card between our read and write, so
// the decision may no longer hold (the last credit may be gone); the attempt
// is discarded and the loop re-decides on fresh state. Decisions that change
// nothing return without writing at all.
func (v *validatorUseCase) Scan(ctx context.Context, uid string) (*ScanResult, error) {
	uid = cardsDomain.NormalizeUID(uid)
	if uid == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "card uid must not be empty")
	}

	// The scan timestamp is fixed once; retries re-read the card but keep
	// deciding against the moment the scan arrived.
	now := v.now()

	retries := 0
	for attempt := 0; attempt < v.maxAttempts; attempt++ {
		card, err := v.cardRepo.Get(ctx, uid)
		if err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}

		decision, updated := engine.Decide(card, now, v.cooldown)
		if updated == nil {
			return newScanResult(decision, retries), nil
		}

		err = v.cardRepo.CommitIfUnchanged(ctx, updated, card.Version)
		if err == nil {
			return newScanResult(decision, retries), nil
		}
		if apperrors.Is(err, apperrors.ErrConflict) || apperrors.Is(err, apperrors.ErrNotFound) {
			// Another writer changed or removed the card after our read;
			// re-read and decide again.
			retries++
			continue
		}
		return nil, err
	}

	return nil, apperrors.Wrap(apperrors.ErrContention, "scan lost too many version races")
}

// Ping records a terminal heartbeat. Terminals send the line they serve and
// their local clock; the returned server time lets them detect drift.
func (v *validatorUseCase) Ping(ctx context.Context, lineName string, at time.Time) time.Time {
	serverTime := v.now()
	v.logger.Info("terminal ping",
		slog.String("line_name", lineName),
		slog.Time("terminal_time", at),
		slog.Duration("clock_drift", serverTime.Sub(at)),
	)
	return serverTime
}

func newScanResult(decision engine.Decision, retries int) *ScanResult {
	return &ScanResult{
		Outcome:        decision.Outcome,
		Credits:        decision.Credits,
		ExpirationDate: decision.ExpirationDate,
		Name:           decision.Name,
		Retries:        retries,
	}
}

// NewValidatorUseCase creates a new validator use case instance. cooldown is
// the free-transfer window after a paid scan; maxAttempts bounds the
// version-race retry loop.
func NewValidatorUseCase(
	cardRepo CardReader,
	cooldown time.Duration,
	maxAttempts int,
	logger *slog.Logger,
) ValidatorUseCase {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &validatorUseCase{
		cardRepo:    cardRepo,
		cooldown:    cooldown,
		maxAttempts: maxAttempts,
		now:         func() time.Time { return time.Now().UTC() },
		logger:      logger,
	}
}
