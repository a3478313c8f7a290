package dto

import (
	"time"

	cardsDomain "github.com/ratt/validator/internal/cards/domain"
)

// CardResponse represents a card in API responses.
type CardResponse struct {
	UID            string     `json:"uid"`
	Status         string     `json:"status"`
	Credits        int        `json:"credits"`
	ExpirationDate *string    `json:"expiration_date"`
	LastScanAt     *time.Time `json:"last_scan_at"`
	Name           string     `json:"name"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// MapCardToResponse converts a domain card to an API response.
func MapCardToResponse(card *cardsDomain.Card) CardResponse {
	var expirationDate *string
	if card.ExpirationDate != nil {
		formatted := card.ExpirationDate.Format(time.DateOnly)
		expirationDate = &formatted
	}

	return CardResponse{
		UID:            card.UID,
		Status:         string(card.Status),
		Credits:        card.Credits,
		ExpirationDate: expirationDate,
		LastScanAt:     card.LastScanAt,
		Name:           card.Name,
		CreatedAt:      card.CreatedAt,
		UpdatedAt:      card.UpdatedAt,
	}
}

// ListCardsResponse represents a paginated list of cards in API responses.
type ListCardsResponse struct {
	Data []CardResponse `json:"data"`
}

// MapCardsToListResponse converts a slice of domain cards to a list API response.
func MapCardsToListResponse(cards []*cardsDomain.Card) ListCardsResponse {
	cardResponses := make([]CardResponse, 0, len(cards))
	for _, card := range cards {
		cardResponses = append(cardResponses, MapCardToResponse(card))
	}
	return ListCardsResponse{
		Data: cardResponses,
	}
}

// TopUpResponse acknowledges a top-up with the resulting balance.
type TopUpResponse struct {
	Status     string `json:"status"`
	NewCredits int    `json:"new_credits"`
}

// NewTopUpResponse builds a top-up acknowledgement.
func NewTopUpResponse(card *cardsDomain.Card) TopUpResponse {
	return TopUpResponse{
		Status:     "OK",
		NewCredits: card.Credits,
	}
}

// SetStatusResponse acknowledges a status override with the resulting status.
type SetStatusResponse struct {
	Status    string `json:"status"`
	NewStatus string `json:"new_status"`
}

// NewSetStatusResponse builds a status override acknowledgement.
func NewSetStatusResponse(card *cardsDomain.Card) SetStatusResponse {
	return SetStatusResponse{
		Status:    "OK",
		NewStatus: string(card.Status),
	}
}
