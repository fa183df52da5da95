package schema

import (
	"time"
)

// Membership represents the memberships table - a player's membership in a
// group. The (player_id, group_id) pair is the natural key a merge
// deduplicates on.
type Membership struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// PlayerID references the member player
	PlayerID uint64 `gorm:"column:player_id;not null;uniqueIndex:idx_memberships_player_group,priority:1"`
	// GroupID references the group joined
	GroupID uint64 `gorm:"column:group_id;not null;uniqueIndex:idx_memberships_player_group,priority:2"`
	// CreatedAt is the timestamp the player joined the group
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Player Player `gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Membership model
func (Membership) TableName() string {
	return "memberships"
}
