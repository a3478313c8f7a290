package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ratt/validator/internal/metrics"
	"github.com/ratt/validator/internal/validator/engine"
)

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func (m *mockBusinessMetrics) RecordScan(ctx context.Context, outcome string, retries int) {
	m.Called(ctx, outcome, retries)
}

var _ metrics.BusinessMetrics = (*mockBusinessMetrics)(nil)

// mockValidatorUseCase is a mock implementation of ValidatorUseCase for decorator tests.
type mockValidatorUseCase struct {
	mock.Mock
}

func (m *mockValidatorUseCase) Scan(ctx context.Context, uid string) (*ScanResult, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ScanResult), args.Error(1)
}

func (m *mockValidatorUseCase) Ping(ctx context.Context, lineName string, at time.Time) time.Time {
	args := m.Called(ctx, lineName, at)
	return args.Get(0).(time.Time)
}

var _ ValidatorUseCase = (*mockValidatorUseCase)(nil)

func TestNewValidatorUseCaseWithMetrics(t *testing.T) {
	t.Parallel()

	decorator := NewValidatorUseCaseWithMetrics(&mockValidatorUseCase{}, &mockBusinessMetrics{})

	assert.NotNil(t, decorator)
	assert.Implements(t, (*ValidatorUseCase)(nil), decorator)
}

func TestValidatorMetricsDecorator_Scan(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Success_RecordsOutcomeAndRetries", func(t *testing.T) {
		t.Parallel()
		mockUseCase := &mockValidatorUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		result := &ScanResult{Outcome: engine.OutcomeValid, Credits: 9, Retries: 1}
		mockUseCase.On("Scan", ctx, "04A1B2C3").Return(result, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "validator", "scan", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "validator", "scan", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()
		mockMetrics.On("RecordScan", ctx, "VALID", 1).Return().Once()

		decorator := NewValidatorUseCaseWithMetrics(mockUseCase, mockMetrics)
		got, err := decorator.Scan(ctx, "04A1B2C3")

		assert.NoError(t, err)
		assert.Equal(t, result, got)
		mockUseCase.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("UnknownCard_RecordsUnknownOutcome", func(t *testing.T) {
		t.Parallel()
		mockUseCase := &mockValidatorUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		result := &ScanResult{Outcome: engine.OutcomeUnknown}
		mockUseCase.On("Scan", ctx, "DEADBEEF").Return(result, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "validator", "scan", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "validator", "scan", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()
		mockMetrics.On("RecordScan", ctx, "UNKNOWN", 0).Return().Once()

		decorator := NewValidatorUseCaseWithMetrics(mockUseCase, mockMetrics)
		got, err := decorator.Scan(ctx, "DEADBEEF")

		assert.NoError(t, err)
		assert.Equal(t, result, got)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Error_SkipsOutcomeMetric", func(t *testing.T) {
		t.Parallel()
		mockUseCase := &mockValidatorUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		expectedError := errors.New("database error")
		mockUseCase.On("Scan", ctx, "04A1B2C3").Return(nil, expectedError).Once()
		mockMetrics.On("RecordOperation", ctx, "validator", "scan", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "validator", "scan", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		decorator := NewValidatorUseCaseWithMetrics(mockUseCase, mockMetrics)
		got, err := decorator.Scan(ctx, "04A1B2C3")

		assert.ErrorIs(t, err, expectedError)
		assert.Nil(t, got)
		mockMetrics.AssertNotCalled(t, "RecordScan")
		mockMetrics.AssertExpectations(t)
	})
}

func TestValidatorMetricsDecorator_Ping(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mockUseCase := &mockValidatorUseCase{}
	mockMetrics := &mockBusinessMetrics{}

	terminalTime := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	serverTime := terminalTime.Add(3 * time.Second)
	mockUseCase.On("Ping", ctx, "line-42", terminalTime).Return(serverTime).Once()
	mockMetrics.On("RecordOperation", ctx, "validator", "ping", "success").Return().Once()

	decorator := NewValidatorUseCaseWithMetrics(mockUseCase, mockMetrics)
	got := decorator.Ping(ctx, "line-42", terminalTime)

	assert.Equal(t, serverTime, got)
	mockUseCase.AssertExpectations(t)
	mockMetrics.AssertExpectations(t)
}
