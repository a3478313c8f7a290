package domain

import (
	"github.com/ratt/validator/internal/errors"
)

// Card storage errors.
var (
	// ErrCardNotFound indicates no card record exists for the requested UID.
	ErrCardNotFound = errors.Wrap(errors.ErrNotFound, "card not found")

	// ErrCardAlreadyExists indicates a card with the same UID is already registered.
	ErrCardAlreadyExists = errors.Wrap(errors.ErrAlreadyExists, "card already exists")
)
