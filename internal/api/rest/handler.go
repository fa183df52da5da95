package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rune-metrics/player-tracker/internal/api/middleware"
	"github.com/rune-metrics/player-tracker/internal/namechange"
)

// Handler defines the interface for REST API handlers
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// SubmitNameChange submits a new name-change request
	// POST /api/v1/name-changes
	SubmitNameChange(c *gin.Context)

	// GetNameChangeDetails retrieves a request with its comparison report
	// GET /api/v1/name-changes/:id
	GetNameChangeDetails(c *gin.Context)

	// ApproveNameChange approves a pending request and merges player data (requires authentication)
	// POST /api/v1/name-changes/:id/approve
	ApproveNameChange(c *gin.Context)

	// DenyNameChange denies a pending request (requires authentication)
	// POST /api/v1/name-changes/:id/deny
	DenyNameChange(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	service  namechange.Service
	reporter namechange.Reporter
}

// NewHandler creates a new REST API handler
func NewHandler(service namechange.Service, reporter namechange.Reporter) Handler {
	return &handler{
		service:  service,
		reporter: reporter,
	}
}

// SubmitNameChange submits a new name-change request
func (h *handler) SubmitNameChange(c *gin.Context) {
	var req SubmitNameChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	nameChange, err := h.service.Submit(c.Request.Context(), req.OldName, req.NewName)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toNameChangeResponse(nameChange))
}

// GetNameChangeDetails retrieves a request with its comparison report
func (h *handler) GetNameChangeDetails(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	report, err := h.reporter.BuildReport(c.Request.Context(), id)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, NameChangeDetailsResponse{
		NameChange: toNameChangeResponse(report.NameChange),
		Report:     report,
	})
}

// ApproveNameChange approves a pending request and merges player data
func (h *handler) ApproveNameChange(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	nameChange, err := h.service.Approve(c.Request.Context(), id, middleware.Credential(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, toNameChangeResponse(nameChange))
}

// DenyNameChange denies a pending request
func (h *handler) DenyNameChange(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	nameChange, err := h.service.Deny(c.Request.Context(), id, middleware.Credential(c))
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, toNameChangeResponse(nameChange))
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// parseIDParam parses the :id path parameter, responding with a 400 when it is
// not a positive integer
func parseIDParam(c *gin.Context) (uint64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		respondBadRequest(c, "Invalid name change ID", raw)
		return 0, false
	}
	return id, true
}
