// Package dto provides data transfer objects for the card management endpoints.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	customValidation "github.com/ratt/validator/internal/validation"
)

// CreateCardRequest contains the parameters for provisioning a new card.
type CreateCardRequest struct {
	UID            string `json:"uid"`
	Name           string `json:"name"`
	Credits        int    `json:"credits"`
	ExpirationDate string `json:"expiration_date"`
}

// Validate checks if the create card request is valid.
func (r *CreateCardRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UID,
			validation.Required,
			customValidation.CardUID,
		),
		validation.Field(&r.Name,
			validation.Length(0, 255),
		),
		validation.Field(&r.Credits,
			validation.Min(0),
		),
		validation.Field(&r.ExpirationDate,
			customValidation.DateOnly,
		),
	)
}

// ParsedExpiration returns the expiration date as a time, or nil when unset.
// Call after Validate; the format error is already caught there.
func (r *CreateCardRequest) ParsedExpiration() *time.Time {
	if r.ExpirationDate == "" {
		return nil
	}
	parsed, err := time.Parse(time.DateOnly, r.ExpirationDate)
	if err != nil {
		return nil
	}
	return &parsed
}

// TopUpRequest contains the parameters for adding credits to a card.
type TopUpRequest struct {
	Amount int `json:"amount"`
}

// Validate checks if the top-up request is valid.
func (r *TopUpRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Amount,
			validation.Required,
			validation.Min(1),
		),
	)
}

// SetStatusRequest contains the parameters for overriding a card's status.
type SetStatusRequest struct {
	Status string `json:"status"`
}

// Validate checks if the status request is valid.
func (r *SetStatusRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Status,
			validation.Required,
			customValidation.CardStatus,
		),
	)
}

// SetExpirationRequest contains the parameters for setting or clearing a
// card's expiration date. A null expiration_date clears it.
type SetExpirationRequest struct {
	ExpirationDate *string `json:"expiration_date"`
}

// Validate checks if the expiration request is valid.
func (r *SetExpirationRequest) Validate() error {
	if r.ExpirationDate == nil {
		return nil
	}
	return validation.Validate(*r.ExpirationDate,
		validation.Required,
		customValidation.DateOnly,
	)
}

// ParsedExpiration returns the expiration date as a time, or nil to clear.
func (r *SetExpirationRequest) ParsedExpiration() *time.Time {
	if r.ExpirationDate == nil {
		return nil
	}
	parsed, err := time.Parse(time.DateOnly, *r.ExpirationDate)
	if err != nil {
		return nil
	}
	return &parsed
}

// RenameRequest contains the parameters for changing a card's display name.
type RenameRequest struct {
	Name string `json:"name"`
}

// Validate checks if the rename request is valid.
func (r *RenameRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
	)
}
