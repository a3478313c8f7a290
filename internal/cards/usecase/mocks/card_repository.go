// Package mocks provides mock implementations for testing card use cases.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	cardsDomain "github.com/ratt/validator/internal/cards/domain"
)

// MockCardRepository is a mock implementation of CardRepository for testing.
type MockCardRepository struct {
	mock.Mock
}

// Get mocks the Get method of CardRepository.
func (m *MockCardRepository) Get(ctx context.Context, uid string) (*cardsDomain.Card, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cardsDomain.Card), args.Error(1)
}

// Create mocks the Create method of CardRepository.
func (m *MockCardRepository) Create(ctx context.Context, card *cardsDomain.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

// CommitIfUnchanged mocks the CommitIfUnchanged method of CardRepository.
func (m *MockCardRepository) CommitIfUnchanged(
	ctx context.Context,
	card *cardsDomain.Card,
	expectedVersion uint64,
) error {
	args := m.Called(ctx, card, expectedVersion)
	return args.Error(0)
}

// Delete mocks the Delete method of CardRepository.
func (m *MockCardRepository) Delete(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

// List mocks the List method of CardRepository.
func (m *MockCardRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*cardsDomain.Card, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cardsDomain.Card), args.Error(1)
}
