// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	validatorUseCase "github.com/ratt/validator/internal/validator/usecase"
)

// MockValidatorUseCase is a mock implementation of ValidatorUseCase for testing.
type MockValidatorUseCase struct {
	mock.Mock
}

// Scan mocks the Scan method of ValidatorUseCase.
func (m *MockValidatorUseCase) Scan(
	ctx context.Context,
	uid string,
) (*validatorUseCase.ScanResult, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*validatorUseCase.ScanResult), args.Error(1)
}

// Ping mocks the Ping method of ValidatorUseCase.
func (m *MockValidatorUseCase) Ping(ctx context.Context, lineName string, at time.Time) time.Time {
	args := m.Called(ctx, lineName, at)
	return args.Get(0).(time.Time)
}
