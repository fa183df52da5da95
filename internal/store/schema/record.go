package schema

import (
	"time"

	"github.com/rune-metrics/player-tracker/internal/domain"
)

// Record represents the records table - the best-ever observed gain for a
// (player, metric, period) combination. At most one row exists per
// combination; a merge may raise the value but never duplicates the row.
type Record struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// PlayerID references the player owning this record
	PlayerID uint64 `gorm:"column:player_id;not null;uniqueIndex:idx_records_player_metric_period,priority:1"`
	// Metric identifies the tracked skill/boss this record is for
	Metric domain.Metric `gorm:"column:metric;not null;type:text;uniqueIndex:idx_records_player_metric_period,priority:2"`
	// Period is the time window the record is scoped to (day, week, month, year)
	Period domain.Period `gorm:"column:period;not null;type:text;uniqueIndex:idx_records_player_metric_period,priority:3"`
	// Value is the highest gain ever observed for this metric/period
	Value int64 `gorm:"column:value;not null;default:0"`
	// UpdatedAt is the timestamp the record was last raised
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	Player Player `gorm:"foreignKey:PlayerID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Record model
func (Record) TableName() string {
	return "records"
}
