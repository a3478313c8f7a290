package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	cardsUseCase "github.com/ratt/validator/internal/cards/usecase"
)

// RunDeleteCard removes a card from the store. Scans of the UID afterwards
// report the card as unknown.
func RunDeleteCard(
	ctx context.Context,
	cardUseCase cardsUseCase.CardUseCase,
	logger *slog.Logger,
	writer io.Writer,
	uid string,
) error {
	logger.Info("deleting card", slog.String("uid", uid))

	if err := cardUseCase.Delete(ctx, uid); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "Card %s deleted.\n", uid)

	logger.Info("card deleted successfully", slog.String("uid", uid))
	return nil
}
