package schema

import (
	"time"

	"github.com/rune-metrics/player-tracker/internal/domain"
)

// NameChange represents the name_changes table - a request to adopt a new
// display name. Status transitions exactly once, pending to approved or
// denied, and is never reversed. Rows are never deleted.
type NameChange struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// OldName is the standardized name of the donor player at submission time
	OldName string `gorm:"column:old_name;not null;type:text;index:idx_name_changes_old_new,priority:1"`
	// NewName is the standardized name being adopted
	NewName string `gorm:"column:new_name;not null;type:text;index:idx_name_changes_old_new,priority:2"`
	// Status is the lifecycle state of the request (pending, approved, denied)
	Status domain.NameChangeStatus `gorm:"column:status;not null;type:text;default:'pending'"`
	// ResolvedAt is set when the request is approved
	ResolvedAt *time.Time `gorm:"column:resolved_at;type:timestamptz"`
	// CreatedAt is the timestamp the request was submitted
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp the request was last modified
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the NameChange model
func (NameChange) TableName() string {
	return "name_changes"
}
