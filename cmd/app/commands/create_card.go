package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	cardsUseCase "github.com/ratt/validator/internal/cards/usecase"
)

// RunCreateCard provisions a new fare card.
// The expiration date is optional and accepted in YYYY-MM-DD format.
//
// Requirements: Database must be migrated and accessible.
func RunCreateCard(
	ctx context.Context,
	cardUseCase cardsUseCase.CardUseCase,
	logger *slog.Logger,
	writer io.Writer,
	uid string,
	name string,
	credits int,
	expirationDate string,
	format string,
) error {
	logger.Info("creating new card", slog.String("uid", uid))

	input := &cardsUseCase.CreateCardInput{
		UID:     uid,
		Name:    name,
		Credits: credits,
	}

	if expirationDate != "" {
		parsed, err := time.Parse(time.DateOnly, expirationDate)
		if err != nil {
			return fmt.Errorf("invalid expiration date %q (expected YYYY-MM-DD): %w", expirationDate, err)
		}
		input.ExpirationDate = &parsed
	}

	card, err := cardUseCase.Create(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}

	writeCard(card, format, writer)

	logger.Info("card created successfully",
		slog.String("uid", card.UID),
		slog.Int("credits", card.Credits),
	)

	return nil
}
