package schema

import (
	"time"
)

// Player represents the players table - one row per tracked player identity.
// The username is mutable: an approved name change rewrites it in place.
type Player struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Username is the standardized lookup form of the player's name (lowercase, space-separated)
	Username string `gorm:"column:username;not null;uniqueIndex;type:text"`
	// DisplayName preserves the casing the player uses in game
	DisplayName string `gorm:"column:display_name;not null;type:text"`
	// CreatedAt is the timestamp when this player was first tracked
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this row was last modified
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Snapshots      []Snapshot      `gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE"`
	Records        []Record        `gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE"`
	Participations []Participation `gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE"`
	Memberships    []Membership    `gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Player model
func (Player) TableName() string {
	return "players"
}
