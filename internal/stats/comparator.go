package stats

import (
	"github.com/rune-metrics/player-tracker/internal/domain"
)

// Delta captures the change of a single metric between two snapshots
type Delta struct {
	Metric domain.Metric `json:"metric"`
	Before int64         `json:"before"`
	After  int64         `json:"after"`
	Gained int64         `json:"gained"`
}

// Comparison summarizes the difference between a baseline snapshot and a
// later snapshot of the same identity
type Comparison struct {
	EHPDiff float64 `json:"ehp_diff"`
	EHBDiff float64 `json:"ehb_diff"`

	// HasNegativeGains is true when any metric lost value between the two
	// snapshots, which should be impossible for the same account
	HasNegativeGains bool `json:"has_negative_gains"`

	Deltas []Delta `json:"deltas"`
}

// Compare diffs two snapshots metric by metric. Metrics absent from either
// side are skipped; a metric can appear on the hiscores only once it reaches
// the ranking threshold, so absence is not a loss.
func Compare(before, after *domain.StatsSnapshot) *Comparison {
	cmp := &Comparison{
		EHPDiff: after.EHP - before.EHP,
		EHBDiff: after.EHB - before.EHB,
	}

	for metric, b := range before.Metrics {
		a, ok := after.Metrics[metric]
		if !ok {
			continue
		}
		gained := a.Value - b.Value
		if gained < 0 {
			cmp.HasNegativeGains = true
		}
		cmp.Deltas = append(cmp.Deltas, Delta{
			Metric: metric,
			Before: b.Value,
			After:  a.Value,
			Gained: gained,
		})
	}

	return cmp
}
