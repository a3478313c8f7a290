// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	apperrors "github.com/ratt/validator/internal/errors"
)

var (
	// cardUIDRegex matches the serial numbers read from NFC cards: hex
	// digits, case-insensitive. Bounds cover 4 to 10 byte UIDs plus some
	// slack for vendor formats.
	cardUIDRegex = regexp.MustCompile(`^[0-9a-fA-F]{4,32}$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// CardUID validates that a string looks like an NFC card serial number.
var CardUID = validation.NewStringRuleWithError(
	func(s string) bool {
		return cardUIDRegex.MatchString(strings.TrimSpace(s))
	},
	validation.NewError("validation_card_uid", "must be a hexadecimal card uid"),
)

// CardStatus validates that a string is one of the known card statuses.
var CardStatus = validation.NewStringRuleWithError(
	func(s string) bool {
		switch s {
		case "VALID", "INVALID", "EXPIRED":
			return true
		}
		return false
	},
	validation.NewError("validation_card_status", "must be one of VALID, INVALID, EXPIRED"),
)

// DateOnly validates that a string is a calendar date in YYYY-MM-DD form.
var DateOnly = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_date_type", "must be a string")
	}
	if s == "" {
		return nil // Let Required handle empty strings
	}
	if _, err := time.Parse(time.DateOnly, s); err != nil {
		return validation.NewError("validation_date_format", "must be a date in YYYY-MM-DD format")
	}
	return nil
})

// NoWhitespace validates that string doesn't contain leading/trailing whitespace.
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
