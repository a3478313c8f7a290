package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	cardsUseCase "github.com/ratt/validator/internal/cards/usecase"
)

// RunTopUpCard adds credits to an existing card. A card that was drained to
// INVALID becomes VALID again once it holds credit.
func RunTopUpCard(
	ctx context.Context,
	cardUseCase cardsUseCase.CardUseCase,
	logger *slog.Logger,
	writer io.Writer,
	uid string,
	amount int,
	format string,
) error {
	logger.Info("topping up card",
		slog.String("uid", uid),
		slog.Int("amount", amount),
	)

	card, err := cardUseCase.TopUp(ctx, uid, amount)
	if err != nil {
		return fmt.Errorf("failed to top up card: %w", err)
	}

	writeCard(card, format, writer)

	logger.Info("card topped up successfully",
		slog.String("uid", card.UID),
		slog.Int("new_credits", card.Credits),
	)

	return nil
}
