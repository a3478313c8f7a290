package app

import (
	"fmt"

	cardsHTTP "github.com/ratt/validator/internal/cards/http"
	cardsRepository "github.com/ratt/validator/internal/cards/repository"
	cardsUseCase "github.com/ratt/validator/internal/cards/usecase"
)

// cardComponents groups the lazily initialized card module dependencies.
type cardComponents struct {
	repository cardsUseCase.CardRepository
	useCase    cardsUseCase.CardUseCase
	handler    *cardsHTTP.CardHandler
}

// CardRepository returns the card repository based on database driver.
// Every backend is wrapped with the configured storage timeout.
func (c *Container) CardRepository() (cardsUseCase.CardRepository, error) {
	var err error
	c.cardRepoInit.Do(func() {
		c.cards.repository, err = c.initCardRepository()
		if err != nil {
			c.initErrors["cardRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["cardRepository"]; exists {
		return nil, storedErr
	}
	return c.cards.repository, nil
}

// CardUseCase returns the card management use case.
func (c *Container) CardUseCase() (cardsUseCase.CardUseCase, error) {
	var err error
	c.cardUseCaseInit.Do(func() {
		c.cards.useCase, err = c.initCardUseCase()
		if err != nil {
			c.initErrors["cardUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["cardUseCase"]; exists {
		return nil, storedErr
	}
	return c.cards.useCase, nil
}

// CardHandler returns the HTTP handler for card management operations.
func (c *Container) CardHandler() (*cardsHTTP.CardHandler, error) {
	var err error
	c.cardHandlerInit.Do(func() {
		c.cards.handler, err = c.initCardHandler()
		if err != nil {
			c.initErrors["cardHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["cardHandler"]; exists {
		return nil, storedErr
	}
	return c.cards.handler, nil
}

// initCardRepository creates the card repository based on the database driver.
func (c *Container) initCardRepository() (cardsUseCase.CardRepository, error) {
	var repo cardsUseCase.CardRepository

	switch c.config.DBDriver {
	case "postgres":
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for card repository: %w", err)
		}
		repo = cardsRepository.NewPostgreSQLCardRepository(db)
	case "mysql":
		db, err := c.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database for card repository: %w", err)
		}
		repo = cardsRepository.NewMySQLCardRepository(db)
	case "mongodb":
		mongoDB, err := c.MongoDatabase()
		if err != nil {
			return nil, fmt.Errorf("failed to get mongodb database for card repository: %w", err)
		}
		repo = cardsRepository.NewMongoDBCardRepository(mongoDB)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}

	return cardsRepository.NewTimeoutCardRepository(repo, c.config.StorageTimeout), nil
}

// initCardUseCase creates the card use case with all its dependencies.
func (c *Container) initCardUseCase() (cardsUseCase.CardUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for card use case: %w", err)
	}

	cardRepo, err := c.CardRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get card repository for card use case: %w", err)
	}

	baseUseCase := cardsUseCase.NewCardUseCase(txManager, cardRepo, c.config.ScanMaxAttempts)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for card use case: %w", err)
		}
		return cardsUseCase.NewCardUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initCardHandler creates the card HTTP handler with all its dependencies.
func (c *Container) initCardHandler() (*cardsHTTP.CardHandler, error) {
	useCase, err := c.CardUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get card use case for card handler: %w", err)
	}

	return cardsHTTP.NewCardHandler(useCase, c.Logger()), nil
}
