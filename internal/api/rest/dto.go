package rest

import (
	"time"

	"github.com/rune-metrics/player-tracker/internal/domain"
	"github.com/rune-metrics/player-tracker/internal/namechange"
	"github.com/rune-metrics/player-tracker/internal/store/schema"
)

// SubmitNameChangeRequest is the body of POST /api/v1/name-changes
type SubmitNameChangeRequest struct {
	OldName string `json:"old_name" binding:"required"`
	NewName string `json:"new_name" binding:"required"`
}

// NameChangeResponse is the public representation of a name-change request
type NameChangeResponse struct {
	ID         uint64                  `json:"id"`
	OldName    string                  `json:"old_name"`
	NewName    string                  `json:"new_name"`
	Status     domain.NameChangeStatus `json:"status"`
	ResolvedAt *time.Time              `json:"resolved_at,omitempty"`
	CreatedAt  time.Time               `json:"created_at"`
	UpdatedAt  time.Time               `json:"updated_at"`
}

// NameChangeDetailsResponse bundles a request with its review evidence
type NameChangeDetailsResponse struct {
	NameChange NameChangeResponse `json:"name_change"`
	Report     *namechange.Report `json:"report"`
}

// toNameChangeResponse maps a stored request to its public representation
func toNameChangeResponse(nc *schema.NameChange) NameChangeResponse {
	return NameChangeResponse{
		ID:         nc.ID,
		OldName:    nc.OldName,
		NewName:    nc.NewName,
		Status:     nc.Status,
		ResolvedAt: nc.ResolvedAt,
		CreatedAt:  nc.CreatedAt,
		UpdatedAt:  nc.UpdatedAt,
	}
}
