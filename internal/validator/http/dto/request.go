// Package dto provides data transfer objects for the terminal-facing endpoints.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	customValidation "github.com/ratt/validator/internal/validation"
)

// ScanRequest is the payload a terminal sends after reading a card.
type ScanRequest struct {
	CardUID   string `json:"card_uid"`
	LineName  string `json:"line_name"`
	Timestamp string `json:"timestamp"`
}

// Validate checks if the scan request is valid.
func (r *ScanRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CardUID,
			validation.Required,
			customValidation.CardUID,
		),
		validation.Field(&r.LineName,
			validation.Length(0, 255),
		),
	)
}

// PingRequest is the heartbeat payload a terminal sends while idle.
type PingRequest struct {
	LineName  string `json:"line_name"`
	Timestamp string `json:"timestamp"`
}

// Validate checks if the ping request is valid.
func (r *PingRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.LineName,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
	)
}

// TerminalTime parses the terminal's clock from the request, falling back to
// the given default when absent or unparseable. Terminal clocks drift; a bad
// timestamp must not fail the heartbeat.
func (r *PingRequest) TerminalTime(fallback time.Time) time.Time {
	if r.Timestamp == "" {
		return fallback
	}
	at, err := time.Parse(time.RFC3339, r.Timestamp)
	if err != nil {
		return fallback
	}
	return at
}
