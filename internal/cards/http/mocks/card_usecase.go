// Package mocks provides mock implementations for testing card HTTP handlers.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	cardsDomain "github.com/ratt/validator/internal/cards/domain"
	cardsUseCase "github.com/ratt/validator/internal/cards/usecase"
)

// MockCardUseCase is a mock implementation of the CardUseCase interface.
type MockCardUseCase struct {
	mock.Mock
}

func (m *MockCardUseCase) Create(ctx context.Context, input *cardsUseCase.CreateCardInput) (*cardsDomain.Card, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cardsDomain.Card), args.Error(1)
}

func (m *MockCardUseCase) Get(ctx context.Context, uid string) (*cardsDomain.Card, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cardsDomain.Card), args.Error(1)
}

func (m *MockCardUseCase) List(ctx context.Context, offset, limit int) ([]*cardsDomain.Card, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cardsDomain.Card), args.Error(1)
}

func (m *MockCardUseCase) Delete(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

func (m *MockCardUseCase) TopUp(ctx context.Context, uid string, amount int) (*cardsDomain.Card, error) {
	args := m.Called(ctx, uid, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cardsDomain.Card), args.Error(1)
}

func (m *MockCardUseCase) SetStatus(ctx context.Context, uid string, status cardsDomain.Status) (*cardsDomain.Card, error) {
	args := m.Called(ctx, uid, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cardsDomain.Card), args.Error(1)
}

func (m *MockCardUseCase) SetExpiration(ctx context.Context, uid string, expiration *time.Time) (*cardsDomain.Card, error) {
	args := m.Called(ctx, uid, expiration)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cardsDomain.Card), args.Error(1)
}

func (m *MockCardUseCase) Rename(ctx context.Context, uid string, name string) (*cardsDomain.Card, error) {
	args := m.Called(ctx, uid, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cardsDomain.Card), args.Error(1)
}
