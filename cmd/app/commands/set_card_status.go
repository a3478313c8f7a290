package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	cardsDomain "github.com/ratt/validator/internal/cards/domain"
	cardsUseCase "github.com/ratt/validator/internal/cards/usecase"
)

// RunSetCardStatus overrides a card's status. Valid statuses are VALID,
// INVALID and EXPIRED.
func RunSetCardStatus(
	ctx context.Context,
	cardUseCase cardsUseCase.CardUseCase,
	logger *slog.Logger,
	writer io.Writer,
	uid string,
	status string,
	format string,
) error {
	parsed := cardsDomain.Status(status)
	if !parsed.IsValid() {
		return fmt.Errorf("invalid status: %s (valid options: VALID, INVALID, EXPIRED)", status)
	}

	logger.Info("setting card status",
		slog.String("uid", uid),
		slog.String("status", status),
	)

	card, err := cardUseCase.SetStatus(ctx, uid, parsed)
	if err != nil {
		return fmt.Errorf("failed to set card status: %w", err)
	}

	writeCard(card, format, writer)

	logger.Info("card status updated successfully",
		slog.String("uid", card.UID),
		slog.String("status", string(card.Status)),
	)

	return nil
}
