package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	cardsUseCase "github.com/ratt/validator/internal/cards/usecase"
)

// RunListCards lists cards ordered by UID with pagination.
func RunListCards(
	ctx context.Context,
	cardUseCase cardsUseCase.CardUseCase,
	logger *slog.Logger,
	writer io.Writer,
	offset, limit int,
	format string,
) error {
	cards, err := cardUseCase.List(ctx, offset, limit)
	if err != nil {
		return fmt.Errorf("failed to list cards: %w", err)
	}

	if format == "json" {
		for _, card := range cards {
			writeCardJSON(card, writer)
		}
		return nil
	}

	if len(cards) == 0 {
		_, _ = fmt.Fprintln(writer, "No cards found.")
		return nil
	}

	_, _ = fmt.Fprintf(writer, "%-32s %-8s %8s %12s %s\n", "UID", "STATUS", "CREDITS", "EXPIRES", "NAME")
	for _, card := range cards {
		expires := "never"
		if card.ExpirationDate != nil {
			expires = card.ExpirationDate.Format(time.DateOnly)
		}
		_, _ = fmt.Fprintf(writer, "%-32s %-8s %8d %12s %s\n",
			card.UID, card.Status, card.Credits, expires, card.Name)
	}

	logger.Info("cards listed", slog.Int("count", len(cards)))
	return nil
}
