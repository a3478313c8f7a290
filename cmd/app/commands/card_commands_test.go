package commands

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cardsDomain "github.com/ratt/validator/internal/cards/domain"
	cardsMocks "github.com/ratt/validator/internal/cards/http/mocks"
	cardsUseCase "github.com/ratt/validator/internal/cards/usecase"
	apperrors "github.com/ratt/validator/internal/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func commandCard() *cardsDomain.Card {
	expiration := time.Date(2027, 3, 15, 0, 0, 0, 0, time.UTC)
	return &cardsDomain.Card{
		UID:            "04A1B2C3",
		Status:         cardsDomain.StatusValid,
		Credits:        10,
		ExpirationDate: &expiration,
		Name:           "Monthly Pass",
	}
}

func TestRunCreateCard(t *testing.T) {
	ctx := context.Background()

	t.Run("text", func(t *testing.T) {
		mockUseCase := &cardsMocks.MockCardUseCase{}
		expiration := time.Date(2027, 3, 15, 0, 0, 0, 0, time.UTC)
		mockUseCase.On("Create", ctx, &cardsUseCase.CreateCardInput{
			UID:            "04A1B2C3",
			Name:           "Monthly Pass",
			Credits:        10,
			ExpirationDate: &expiration,
		}).Return(commandCard(), nil)

		var out bytes.Buffer
		err := RunCreateCard(ctx, mockUseCase, testLogger(), &out,
			"04A1B2C3", "Monthly Pass", 10, "2027-03-15", "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "04A1B2C3")
		require.Contains(t, out.String(), "2027-03-15")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("json", func(t *testing.T) {
		mockUseCase := &cardsMocks.MockCardUseCase{}
		mockUseCase.On("Create", ctx, mock.Anything).Return(commandCard(), nil)

		var out bytes.Buffer
		err := RunCreateCard(ctx, mockUseCase, testLogger(), &out,
			"04A1B2C3", "", 10, "", "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"uid": "04A1B2C3"`)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("invalid-expiration-date", func(t *testing.T) {
		mockUseCase := &cardsMocks.MockCardUseCase{}

		var out bytes.Buffer
		err := RunCreateCard(ctx, mockUseCase, testLogger(), &out,
			"04A1B2C3", "", 10, "15/03/2027", "text")

		require.Error(t, err)
		mockUseCase.AssertNotCalled(t, "Create")
	})

	t.Run("use-case-error", func(t *testing.T) {
		mockUseCase := &cardsMocks.MockCardUseCase{}
		mockUseCase.On("Create", ctx, mock.Anything).Return(nil, apperrors.ErrAlreadyExists)

		var out bytes.Buffer
		err := RunCreateCard(ctx, mockUseCase, testLogger(), &out,
			"04A1B2C3", "", 10, "", "text")

		require.ErrorIs(t, err, apperrors.ErrAlreadyExists)
	})
}

func TestRunTopUpCard(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockUseCase := &cardsMocks.MockCardUseCase{}
		card := commandCard()
		card.Credits = 15
		mockUseCase.On("TopUp", ctx, "04A1B2C3", 5).Return(card, nil)

		var out bytes.Buffer
		err := RunTopUpCard(ctx, mockUseCase, testLogger(), &out, "04A1B2C3", 5, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "15")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("not-found", func(t *testing.T) {
		mockUseCase := &cardsMocks.MockCardUseCase{}
		mockUseCase.On("TopUp", ctx, "DEADBEEF", 5).Return(nil, apperrors.ErrNotFound)

		var out bytes.Buffer
		err := RunTopUpCard(ctx, mockUseCase, testLogger(), &out, "DEADBEEF", 5, "text")

		require.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestRunSetCardStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockUseCase := &cardsMocks.MockCardUseCase{}
		card := commandCard()
		card.Status = cardsDomain.StatusInvalid
		mockUseCase.On("SetStatus", ctx, "04A1B2C3", cardsDomain.StatusInvalid).Return(card, nil)

		var out bytes.Buffer
		err := RunSetCardStatus(ctx, mockUseCase, testLogger(), &out, "04A1B2C3", "INVALID", "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "INVALID")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("invalid-status", func(t *testing.T) {
		mockUseCase := &cardsMocks.MockCardUseCase{}

		var out bytes.Buffer
		err := RunSetCardStatus(ctx, mockUseCase, testLogger(), &out, "04A1B2C3", "BLOCKED", "text")

		require.Error(t, err)
		mockUseCase.AssertNotCalled(t, "SetStatus")
	})
}

func TestRunListCards(t *testing.T) {
	ctx := context.Background()

	t.Run("text", func(t *testing.T) {
		mockUseCase := &cardsMocks.MockCardUseCase{}
		mockUseCase.On("List", ctx, 0, 50).Return([]*cardsDomain.Card{commandCard()}, nil)

		var out bytes.Buffer
		err := RunListCards(ctx, mockUseCase, testLogger(), &out, 0, 50, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "04A1B2C3")
		require.Contains(t, out.String(), "VALID")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("empty", func(t *testing.T) {
		mockUseCase := &cardsMocks.MockCardUseCase{}
		mockUseCase.On("List", ctx, 0, 50).Return([]*cardsDomain.Card{}, nil)

		var out bytes.Buffer
		err := RunListCards(ctx, mockUseCase, testLogger(), &out, 0, 50, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "No cards found")
	})
}

func TestRunDeleteCard(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mockUseCase := &cardsMocks.MockCardUseCase{}
		mockUseCase.On("Delete", ctx, "04A1B2C3").Return(nil)

		var out bytes.Buffer
		err := RunDeleteCard(ctx, mockUseCase, testLogger(), &out, "04A1B2C3")

		require.NoError(t, err)
		require.Contains(t, out.String(), "deleted")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("not-found", func(t *testing.T) {
		mockUseCase := &cardsMocks.MockCardUseCase{}
		mockUseCase.On("Delete", ctx, "DEADBEEF").Return(apperrors.ErrNotFound)

		var out bytes.Buffer
		err := RunDeleteCard(ctx, mockUseCase, testLogger(), &out, "DEADBEEF")

		require.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestRunGetCard(t *testing.T) {
	ctx := context.Background()

	mockUseCase := &cardsMocks.MockCardUseCase{}
	mockUseCase.On("Get", ctx, "04A1B2C3").Return(commandCard(), nil)

	var out bytes.Buffer
	err := RunGetCard(ctx, mockUseCase, testLogger(), &out, "04A1B2C3", "json")

	require.NoError(t, err)
	require.Contains(t, out.String(), `"status": "VALID"`)
	mockUseCase.AssertExpectations(t)
}
