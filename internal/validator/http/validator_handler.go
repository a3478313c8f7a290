// Package http provides HTTP handlers for the terminal-facing scan endpoints.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ratt/validator/internal/httputil"
	customValidation "github.com/ratt/validator/internal/validation"
	"github.com/ratt/validator/internal/validator/engine"
	"github.com/ratt/validator/internal/validator/http/dto"
	validatorUseCase "github.com/ratt/validator/internal/validator/usecase"
)

// ValidatorHandler handles HTTP requests from fare gates and bus terminals.
type ValidatorHandler struct {
	validatorUseCase validatorUseCase.ValidatorUseCase
	logger           *slog.Logger
}

// NewValidatorHandler creates a new validator handler with required dependencies.
func NewValidatorHandler(
	useCase validatorUseCase.ValidatorUseCase,
	logger *slog.Logger,
) *ValidatorHandler {
	return &ValidatorHandler{
		validatorUseCase: useCase,
		logger:           logger,
	}
}

// ScanHandler validates a scanned card and reports the decision.
// POST /validator/scanCardInfo
//
// Returns 200 with the decision for known cards, 404 with the fixed
// unknown-card body for unknown UIDs, 400 for malformed payloads and 503 when
// the store is unreachable or the scan keeps losing version races.
func (h *ValidatorHandler) ScanHandler(c *gin.Context) {
	var req dto.ScanRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	// Terminals send malformed UIDs when a read is cut short; reject them
	// with 400 like any other malformed payload.
	if err := req.Validate(); err != nil {
		httputil.HandleBadRequestGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	result, err := h.validatorUseCase.Scan(c.Request.Context(), req.CardUID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if result.Outcome == engine.OutcomeUnknown {
		c.JSON(http.StatusNotFound, dto.NewCardNotFoundResponse())
		return
	}

	c.JSON(http.StatusOK, dto.MapScanResultToResponse(result))
}

// PingHandler acknowledges a terminal heartbeat.
// POST /validator/pingStatus
//
// Returns 200 with the server time. Terminals gate their ready state on this
// endpoint and use the returned timestamp to detect clock drift.
func (h *ValidatorHandler) PingHandler(c *gin.Context) {
	var req dto.PingRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleBadRequestGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	now := time.Now().UTC()
	serverTime := h.validatorUseCase.Ping(c.Request.Context(), req.LineName, req.TerminalTime(now))

	c.JSON(http.StatusOK, dto.NewPingResponse(serverTime))
}
