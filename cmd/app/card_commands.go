package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/ratt/validator/cmd/app/commands"
	"github.com/ratt/validator/internal/app"
	cardsUseCase "github.com/ratt/validator/internal/cards/usecase"
	"github.com/ratt/validator/internal/config"
)

// withCardUseCase loads configuration, builds the DI container and hands the
// card use case to the action, shutting the container down afterwards.
func withCardUseCase(
	ctx context.Context,
	action func(ctx context.Context, container *app.Container, useCase cardsUseCase.CardUseCase) error,
) error {
	cfg := config.Load()
	container := app.NewContainer(cfg)
	defer func() { _ = container.Shutdown(ctx) }()

	useCase, err := container.CardUseCase()
	if err != nil {
		return err
	}

	return action(ctx, container, useCase)
}

func getCardCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-card",
			Usage: "Provision a new fare card",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "uid",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "Card UID (hex string as read from the card)",
				},
				&cli.StringFlag{
					Name:    "name",
					Aliases: []string{"n"},
					Usage:   "Display name for the card holder",
				},
				&cli.IntFlag{
					Name:    "credits",
					Aliases: []string{"c"},
					Value:   0,
					Usage:   "Initial credit balance",
				},
				&cli.StringFlag{
					Name:    "expiration-date",
					Aliases: []string{"e"},
					Usage:   "Expiration date in YYYY-MM-DD format (optional)",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withCardUseCase(ctx, func(ctx context.Context, container *app.Container, useCase cardsUseCase.CardUseCase) error {
					return commands.RunCreateCard(
						ctx,
						useCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("uid"),
						cmd.String("name"),
						int(cmd.Int("credits")),
						cmd.String("expiration-date"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "get-card",
			Usage: "Show a card record",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "uid",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "Card UID",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withCardUseCase(ctx, func(ctx context.Context, container *app.Container, useCase cardsUseCase.CardUseCase) error {
					return commands.RunGetCard(
						ctx,
						useCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("uid"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "list-cards",
			Usage: "List cards ordered by UID",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "offset",
					Value: 0,
					Usage: "Number of cards to skip",
				},
				&cli.IntFlag{
					Name:  "limit",
					Value: 50,
					Usage: "Maximum number of cards to return",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withCardUseCase(ctx, func(ctx context.Context, container *app.Container, useCase cardsUseCase.CardUseCase) error {
					return commands.RunListCards(
						ctx,
						useCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						int(cmd.Int("offset")),
						int(cmd.Int("limit")),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "topup-card",
			Usage: "Add credits to a card",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "uid",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "Card UID",
				},
				&cli.IntFlag{
					Name:     "amount",
					Aliases:  []string{"a"},
					Required: true,
					Usage:    "Number of credits to add",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withCardUseCase(ctx, func(ctx context.Context, container *app.Container, useCase cardsUseCase.CardUseCase) error {
					return commands.RunTopUpCard(
						ctx,
						useCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("uid"),
						int(cmd.Int("amount")),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "set-card-status",
			Usage: "Override a card's status",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "uid",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "Card UID",
				},
				&cli.StringFlag{
					Name:     "status",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "New status: VALID, INVALID or EXPIRED",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withCardUseCase(ctx, func(ctx context.Context, container *app.Container, useCase cardsUseCase.CardUseCase) error {
					return commands.RunSetCardStatus(
						ctx,
						useCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("uid"),
						cmd.String("status"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "delete-card",
			Usage: "Remove a card from the store",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "uid",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "Card UID",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withCardUseCase(ctx, func(ctx context.Context, container *app.Container, useCase cardsUseCase.CardUseCase) error {
					return commands.RunDeleteCard(
						ctx,
						useCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("uid"),
					)
				})
			},
		},
	}
}
