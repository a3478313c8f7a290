package app

import (
	"fmt"

	validatorHTTP "github.com/ratt/validator/internal/validator/http"
	validatorUseCase "github.com/ratt/validator/internal/validator/usecase"
)

// validatorComponents groups the lazily initialized validator module dependencies.
type validatorComponents struct {
	useCase validatorUseCase.ValidatorUseCase
	handler *validatorHTTP.ValidatorHandler
}

// ValidatorUseCase returns the scan decision use case.
func (c *Container) ValidatorUseCase() (validatorUseCase.ValidatorUseCase, error) {
	var err error
	c.validatorUCInit.Do(func() {
		c.validator.useCase, err = c.initValidatorUseCase()
		if err != nil {
			c.initErrors["validatorUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["validatorUseCase"]; exists {
		return nil, storedErr
	}
	return c.validator.useCase, nil
}

// ValidatorHandler returns the HTTP handler for the terminal-facing endpoints.
func (c *Container) ValidatorHandler() (*validatorHTTP.ValidatorHandler, error) {
	var err error
	c.validatorHInit.Do(func() {
		c.validator.handler, err = c.initValidatorHandler()
		if err != nil {
			c.initErrors["validatorHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["validatorHandler"]; exists {
		return nil, storedErr
	}
	return c.validator.handler, nil
}

// initValidatorUseCase creates the scan use case with all its dependencies.
func (c *Container) initValidatorUseCase() (validatorUseCase.ValidatorUseCase, error) {
	cardRepo, err := c.CardRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get card repository for validator use case: %w", err)
	}

	baseUseCase := validatorUseCase.NewValidatorUseCase(
		cardRepo,
		c.config.ScanCooldown,
		c.config.ScanMaxAttempts,
		c.Logger(),
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for validator use case: %w", err)
		}
		return validatorUseCase.NewValidatorUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initValidatorHandler creates the validator HTTP handler with all its dependencies.
func (c *Container) initValidatorHandler() (*validatorHTTP.ValidatorHandler, error) {
	useCase, err := c.ValidatorUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get validator use case for validator handler: %w", err)
	}

	return validatorHTTP.NewValidatorHandler(useCase, c.Logger()), nil
}
