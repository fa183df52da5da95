package schema

import (
	"time"
)

// Participation represents the participations table - a player's entry in a
// competition. The (player_id, competition_id) pair is the natural key a
// merge deduplicates on.
type Participation struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// PlayerID references the participating player
	PlayerID uint64 `gorm:"column:player_id;not null;uniqueIndex:idx_participations_player_competition,priority:1"`
	// CompetitionID references the competition entered
	CompetitionID uint64 `gorm:"column:competition_id;not null;uniqueIndex:idx_participations_player_competition,priority:2"`
	// CreatedAt is the timestamp the player joined the competition
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`

	// Associations
	Player Player `gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Participation model
func (Participation) TableName() string {
	return "participations"
}
