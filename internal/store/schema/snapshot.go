package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Snapshot represents the snapshots table - a point-in-time stat capture for a
// player. Rows are immutable once written except for ownership transfer during
// a name-change merge. The (player_id, created_at) pair is the natural key a
// merge deduplicates on.
type Snapshot struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// PlayerID references the player this capture belongs to
	PlayerID uint64 `gorm:"column:player_id;not null;uniqueIndex:idx_snapshots_player_created,priority:1"`
	// CreatedAt is the instant the stats were captured
	CreatedAt time.Time `gorm:"column:created_at;not null;uniqueIndex:idx_snapshots_player_created,priority:2;type:timestamptz"`
	// EHP is the efficient-hours-played value computed at capture time
	EHP float64 `gorm:"column:ehp;not null;default:0"`
	// EHB is the efficient-hours-bossed value computed at capture time
	EHB float64 `gorm:"column:ehb;not null;default:0"`
	// Metrics holds the per-metric rank/value readings as JSON
	Metrics datatypes.JSON `gorm:"column:metrics;type:jsonb"`

	// Associations
	Player Player `gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Snapshot model
func (Snapshot) TableName() string {
	return "snapshots"
}
