package stats

import (
	"github.com/rune-metrics/player-tracker/internal/domain"
)

// Calculator computes efficiency aggregates from raw stats
//
//go:generate mockgen -source=efficiency.go -destination=../mocks/stats_calculator.go -package=mocks -mock_names=Calculator=MockCalculator
type Calculator interface {
	// ComputeEHP returns the efficient hours played for a snapshot
	ComputeEHP(snapshot *domain.StatsSnapshot) float64

	// ComputeEHB returns the efficient hours bossed for a snapshot
	ComputeEHB(snapshot *domain.StatsSnapshot) float64

	// Enrich fills the EHP and EHB fields of a snapshot in place
	Enrich(snapshot *domain.StatsSnapshot)
}

// skillRates maps each skill to an average experience-per-hour rate used for
// EHP. These are deliberately coarse; the aggregate only needs to be a stable
// ordering signal, not an exact training plan.
var skillRates = map[domain.Metric]float64{
	domain.MetricAttack:       100_000,
	domain.MetricDefence:      100_000,
	domain.MetricStrength:     100_000,
	domain.MetricHitpoints:    0, // gained passively alongside combat
	domain.MetricRanged:       150_000,
	domain.MetricPrayer:       500_000,
	domain.MetricMagic:        200_000,
	domain.MetricCooking:      500_000,
	domain.MetricWoodcutting:  80_000,
	domain.MetricFletching:    800_000,
	domain.MetricFishing:      60_000,
	domain.MetricFiremaking:   300_000,
	domain.MetricCrafting:     300_000,
	domain.MetricSmithing:     300_000,
	domain.MetricMining:       70_000,
	domain.MetricHerblore:     400_000,
	domain.MetricAgility:      55_000,
	domain.MetricThieving:     200_000,
	domain.MetricSlayer:       35_000,
	domain.MetricFarming:      600_000,
	domain.MetricRunecrafting: 40_000,
	domain.MetricHunter:       120_000,
	domain.MetricConstruction: 600_000,
}

// bossRates maps each boss to an average kills-per-hour rate used for EHB
var bossRates = map[domain.Metric]float64{
	domain.MetricZulrah:          35,
	domain.MetricVorkath:         30,
	domain.MetricChambers:        3,
	domain.MetricTheatre:         3,
	domain.MetricNightmare:       5,
	domain.MetricGeneralGraardor: 25,
}

// RatesCalculator computes EHP and EHB from fixed per-metric rate tables
type RatesCalculator struct{}

// NewCalculator creates a rates-based efficiency calculator
func NewCalculator() Calculator {
	return &RatesCalculator{}
}

// ComputeEHP returns the efficient hours played for a snapshot
func (c *RatesCalculator) ComputeEHP(snapshot *domain.StatsSnapshot) float64 {
	if snapshot == nil {
		return 0
	}

	var hours float64
	for metric, rate := range skillRates {
		if rate <= 0 {
			continue
		}
		value, ok := snapshot.Metrics[metric]
		if !ok || value.Value <= 0 {
			continue
		}
		hours += float64(value.Value) / rate
	}
	return hours
}

// ComputeEHB returns the efficient hours bossed for a snapshot
func (c *RatesCalculator) ComputeEHB(snapshot *domain.StatsSnapshot) float64 {
	if snapshot == nil {
		return 0
	}

	var hours float64
	for metric, rate := range bossRates {
		if rate <= 0 {
			continue
		}
		value, ok := snapshot.Metrics[metric]
		if !ok || value.Value <= 0 {
			continue
		}
		hours += float64(value.Value) / rate
	}
	return hours
}

// Enrich fills the EHP and EHB fields of a snapshot in place
func (c *RatesCalculator) Enrich(snapshot *domain.StatsSnapshot) {
	if snapshot == nil {
		return
	}
	snapshot.EHP = c.ComputeEHP(snapshot)
	snapshot.EHB = c.ComputeEHB(snapshot)
}
