package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	cardsUseCase "github.com/ratt/validator/internal/cards/usecase"
)

// RunGetCard shows the stored record for a single card.
func RunGetCard(
	ctx context.Context,
	cardUseCase cardsUseCase.CardUseCase,
	logger *slog.Logger,
	writer io.Writer,
	uid string,
	format string,
) error {
	card, err := cardUseCase.Get(ctx, uid)
	if err != nil {
		return fmt.Errorf("failed to get card: %w", err)
	}

	writeCard(card, format, writer)

	logger.Debug("card retrieved", slog.String("uid", card.UID))
	return nil
}
