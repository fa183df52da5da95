package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rune-metrics/player-tracker/internal/domain"
	"github.com/rune-metrics/player-tracker/internal/logger"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	errCodeBadRequest       ErrorCode = "bad_request"
	errCodeNotFound         ErrorCode = "not_found"
	errCodeValidationFailed ErrorCode = "validation_failed"
	errCodeUnauthorized     ErrorCode = "unauthorized"
	errCodeConflict         ErrorCode = "conflict"

	// Server errors (5xx)
	errCodeInternalError ErrorCode = "internal_error"
)

// errorResponse represents a standardized error response
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// errorDetail contains error information
type errorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...string) {
	response := errorResponse{
		Error: errorDetail{
			Code:    code,
			Message: message,
		},
	}

	if len(details) > 0 {
		response.Error.Details = details[0]
	}

	c.JSON(statusCode, response)
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusBadRequest, errCodeBadRequest, message, details...)
}

// respondValidationError sends a 400 Bad Request with validation error
func respondValidationError(c *gin.Context, details string) {
	respondWithError(c, http.StatusBadRequest, errCodeValidationFailed, "Validation failed", details)
}

// respondInternalError sends a 500 Internal Server Error response and logs the error
func respondInternalError(c *gin.Context, err error, message string, fields ...zap.Field) {
	logger.Error(err, fields...)
	respondWithError(c, http.StatusInternalServerError, errCodeInternalError, message)
}

// respondDomainError maps well-known domain errors to HTTP responses.
// Unrecognized errors become 500s.
func respondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrPlayerNotFound):
		respondWithError(c, http.StatusNotFound, errCodeNotFound, "Player not found")
	case errors.Is(err, domain.ErrNameChangeNotFound):
		respondWithError(c, http.StatusNotFound, errCodeNotFound, "Name change not found")
	case errors.Is(err, domain.ErrDuplicateNameChange):
		respondWithError(c, http.StatusConflict, errCodeConflict, "An identical request is already pending")
	case errors.Is(err, domain.ErrInvalidStatus):
		respondWithError(c, http.StatusConflict, errCodeConflict, "Name change is not pending")
	case errors.Is(err, domain.ErrInvalidName):
		respondWithError(c, http.StatusBadRequest, errCodeValidationFailed, "Invalid name", err.Error())
	case errors.Is(err, domain.ErrNameBlocked):
		respondWithError(c, http.StatusBadRequest, errCodeValidationFailed, "Name is not available", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		respondWithError(c, http.StatusUnauthorized, errCodeUnauthorized, "Invalid moderator credential")
	default:
		respondInternalError(c, err, "Internal server error")
	}
}
