package dto

import (
	"time"

	validatorUseCase "github.com/ratt/validator/internal/validator/usecase"
)

// ScanResponse is the decision shown on the terminal display.
type ScanResponse struct {
	Status         string  `json:"status"`
	Credits        int     `json:"credits"`
	ExpirationDate *string `json:"expiration_date"`
	Name           string  `json:"name"`
}

// MapScanResultToResponse converts a scan result to the wire shape.
func MapScanResultToResponse(result *validatorUseCase.ScanResult) ScanResponse {
	var expirationDate *string
	if result.ExpirationDate != nil {
		formatted := result.ExpirationDate.Format(time.DateOnly)
		expirationDate = &formatted
	}

	return ScanResponse{
		Status:         string(result.Outcome),
		Credits:        result.Credits,
		ExpirationDate: expirationDate,
		Name:           result.Name,
	}
}

// CardNotFoundResponse is the fixed body returned for a scan of an unknown
// UID. Deployed terminals match this shape exactly, so it must not change.
type CardNotFoundResponse struct {
	Error          string  `json:"error"`
	Status         string  `json:"status"`
	Credits        int     `json:"credits"`
	ExpirationDate *string `json:"expiration_date"`
}

// NewCardNotFoundResponse builds the unknown-card body.
func NewCardNotFoundResponse() CardNotFoundResponse {
	return CardNotFoundResponse{
		Error:   "Card not found",
		Status:  "INVALID",
		Credits: 0,
	}
}

// PingResponse acknowledges a terminal heartbeat with the server time.
type PingResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// NewPingResponse builds a ping acknowledgement.
func NewPingResponse(serverTime time.Time) PingResponse {
	return PingResponse{
		Status:    "OK",
		Timestamp: serverTime.Format(time.RFC3339),
	}
}
