package usecase

import (
	"context"
	"time"

	"github.com/ratt/validator/internal/metrics"
)

// validatorUseCaseWithMetrics decorates ValidatorUseCase with metrics instrumentation.
type validatorUseCaseWithMetrics struct {
	next    ValidatorUseCase
	metrics metrics.BusinessMetrics
}

// NewValidatorUseCaseWithMetrics wraps a ValidatorUseCase with metrics recording.
func NewValidatorUseCaseWithMetrics(useCase ValidatorUseCase, m metrics.BusinessMetrics) ValidatorUseCase {
	return &validatorUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Scan records metrics for scan operations, including the terminal-facing
// outcome and any lost-race retries.
func (v *validatorUseCaseWithMetrics) Scan(ctx context.Context, uid string) (*ScanResult, error) {
	start := time.Now()
	result, err := v.next.Scan(ctx, uid)

	status := "success"
	if err != nil {
		status = "error"
	}

	v.metrics.RecordOperation(ctx, "validator", "scan", status)
	v.metrics.RecordDuration(ctx, "validator", "scan", time.Since(start), status)
	if result != nil {
		v.metrics.RecordScan(ctx, string(result.Outcome), result.Retries)
	}

	return result, err
}

// Ping records metrics for terminal heartbeats.
func (v *validatorUseCaseWithMetrics) Ping(ctx context.Context, lineName string, at time.Time) time.Time {
	serverTime := v.next.Ping(ctx, lineName, at)
	v.metrics.RecordOperation(ctx, "validator", "ping", "success")
	return serverTime
}
