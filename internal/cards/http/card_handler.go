// Package http provides HTTP handlers for administrative card management.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	cardsDomain "github.com/ratt/validator/internal/cards/domain"
	"github.com/ratt/validator/internal/cards/http/dto"
	cardsUseCase "github.com/ratt/validator/internal/cards/usecase"
	"github.com/ratt/validator/internal/httputil"
	customValidation "github.com/ratt/validator/internal/validation"
)

// CardHandler handles HTTP requests for card management operations.
type CardHandler struct {
	cardUseCase cardsUseCase.CardUseCase
	logger      *slog.Logger
}

// NewCardHandler creates a new card handler with required dependencies.
func NewCardHandler(cardUseCase cardsUseCase.CardUseCase, logger *slog.Logger) *CardHandler {
	return &CardHandler{
		cardUseCase: cardUseCase,
		logger:      logger,
	}
}

// ListHandler lists cards ordered by UID with pagination.
// GET /validator/cards?offset&limit
func (h *CardHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	cards, err := h.cardUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCardsToListResponse(cards))
}

// CreateHandler provisions a new card.
// POST /validator/cards - Returns 201 Created with the card.
func (h *CardHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateCardRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &cardsUseCase.CreateCardInput{
		UID:            req.UID,
		Name:           req.Name,
		Credits:        req.Credits,
		ExpirationDate: req.ParsedExpiration(),
	}

	card, err := h.cardUseCase.Create(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCardToResponse(card))
}

// GetHandler retrieves a card by its UID.
// GET /validator/cards/:uid
func (h *CardHandler) GetHandler(c *gin.Context) {
	card, err := h.cardUseCase.Get(c.Request.Context(), c.Param("uid"))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCardToResponse(card))
}

// DeleteHandler removes a card.
// DELETE /validator/cards/:uid - Returns 204 No Content.
func (h *CardHandler) DeleteHandler(c *gin.Context) {
	if err := h.cardUseCase.Delete(c.Request.Context(), c.Param("uid")); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// TopUpHandler adds credits to a card.
// POST /validator/cards/:uid/topup - Returns the resulting balance.
func (h *CardHandler) TopUpHandler(c *gin.Context) {
	var req dto.TopUpRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	card, err := h.cardUseCase.TopUp(c.Request.Context(), c.Param("uid"), req.Amount)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewTopUpResponse(card))
}

// StatusHandler overrides a card's status.
// POST /validator/cards/:uid/status
func (h *CardHandler) StatusHandler(c *gin.Context) {
	var req dto.SetStatusRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	card, err := h.cardUseCase.SetStatus(c.Request.Context(), c.Param("uid"), cardsDomain.Status(req.Status))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewSetStatusResponse(card))
}

// ExpirationHandler sets or clears a card's expiration date.
// POST /validator/cards/:uid/expiration
func (h *CardHandler) ExpirationHandler(c *gin.Context) {
	var req dto.SetExpirationRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	card, err := h.cardUseCase.SetExpiration(c.Request.Context(), c.Param("uid"), req.ParsedExpiration())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCardToResponse(card))
}

// NameHandler changes a card's display name.
// POST /validator/cards/:uid/name
func (h *CardHandler) NameHandler(c *gin.Context) {
	var req dto.RenameRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	card, err := h.cardUseCase.Rename(c.Request.Context(), c.Param("uid"), req.Name)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCardToResponse(card))
}
