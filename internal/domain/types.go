package domain

import (
	"strings"
	"time"
)

// Username is a player display name as tracked by the service.
// Lookups are case-insensitive; the stored form preserves the display casing.
type Username string

// Standardize returns the canonical lookup form of a username:
// lowercased, trimmed, with underscores and dashes folded to spaces.
func (u Username) Standardize() string {
	s := strings.ToLower(strings.TrimSpace(string(u)))
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")
	return s
}

// Period represents the time window a best-ever record is scoped to
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// IsValidPeriod checks if a period is valid
func IsValidPeriod(p Period) bool {
	return p == PeriodDay || p == PeriodWeek || p == PeriodMonth || p == PeriodYear
}

// Periods lists every record period, shortest first
var Periods = []Period{PeriodDay, PeriodWeek, PeriodMonth, PeriodYear}

// Duration returns the length of the period's window. Months are treated as
// 31 days so a gain observed across a calendar month always fits.
func (p Period) Duration() time.Duration {
	switch p {
	case PeriodDay:
		return 24 * time.Hour
	case PeriodWeek:
		return 7 * 24 * time.Hour
	case PeriodMonth:
		return 31 * 24 * time.Hour
	case PeriodYear:
		return 365 * 24 * time.Hour
	default:
		return 0
	}
}

// Metric identifies a tracked skill, boss or activity
type Metric string

const (
	MetricOverall      Metric = "overall"
	MetricAttack       Metric = "attack"
	MetricDefence      Metric = "defence"
	MetricStrength     Metric = "strength"
	MetricHitpoints    Metric = "hitpoints"
	MetricRanged       Metric = "ranged"
	MetricPrayer       Metric = "prayer"
	MetricMagic        Metric = "magic"
	MetricCooking      Metric = "cooking"
	MetricWoodcutting  Metric = "woodcutting"
	MetricFletching    Metric = "fletching"
	MetricFishing      Metric = "fishing"
	MetricFiremaking   Metric = "firemaking"
	MetricCrafting     Metric = "crafting"
	MetricSmithing     Metric = "smithing"
	MetricMining       Metric = "mining"
	MetricHerblore     Metric = "herblore"
	MetricAgility      Metric = "agility"
	MetricThieving     Metric = "thieving"
	MetricSlayer       Metric = "slayer"
	MetricFarming      Metric = "farming"
	MetricRunecrafting Metric = "runecrafting"
	MetricHunter       Metric = "hunter"
	MetricConstruction Metric = "construction"

	MetricZulrah       Metric = "zulrah"
	MetricVorkath      Metric = "vorkath"
	MetricChambers     Metric = "chambers_of_xeric"
	MetricTheatre      Metric = "theatre_of_blood"
	MetricNightmare    Metric = "nightmare"
	MetricGeneralGraardor Metric = "general_graardor"
)

// SkillMetrics lists every skill metric in hiscores order
var SkillMetrics = []Metric{
	MetricOverall, MetricAttack, MetricDefence, MetricStrength,
	MetricHitpoints, MetricRanged, MetricPrayer, MetricMagic,
	MetricCooking, MetricWoodcutting, MetricFletching, MetricFishing,
	MetricFiremaking, MetricCrafting, MetricSmithing, MetricMining,
	MetricHerblore, MetricAgility, MetricThieving, MetricSlayer,
	MetricFarming, MetricRunecrafting, MetricHunter, MetricConstruction,
}

// NameChangeStatus represents the lifecycle state of a name-change request
type NameChangeStatus string

const (
	NameChangeStatusPending  NameChangeStatus = "pending"
	NameChangeStatusApproved NameChangeStatus = "approved"
	NameChangeStatusDenied   NameChangeStatus = "denied"
)

// MetricValue is a single metric reading within a stats snapshot
type MetricValue struct {
	Rank  int64 `json:"rank"`
	Value int64 `json:"value"`
}

// StatsSnapshot is a point-in-time stat capture for a player.
// It is the normalized form shared by the hiscores client, the store
// and the comparison reporter.
type StatsSnapshot struct {
	CreatedAt time.Time              `json:"created_at"`
	EHP       float64                `json:"ehp"`
	EHB       float64                `json:"ehb"`
	Metrics   map[Metric]MetricValue `json:"metrics"`
}

// NameChangeEvent is the normalized event published to the configured sinks
// whenever a name-change request transitions state
type NameChangeEvent struct {
	EventID      string           `json:"event_id"`
	NameChangeID uint64           `json:"name_change_id"`
	OldName      string           `json:"old_name"`
	NewName      string           `json:"new_name"`
	Status       NameChangeStatus `json:"status"`
	OccurredAt   time.Time        `json:"occurred_at"`
}
