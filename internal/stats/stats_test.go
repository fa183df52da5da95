package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rune-metrics/player-tracker/internal/domain"
)

func snapshotWith(metrics map[domain.Metric]int64) *domain.StatsSnapshot {
	s := &domain.StatsSnapshot{Metrics: map[domain.Metric]domain.MetricValue{}}
	for metric, value := range metrics {
		s.Metrics[metric] = domain.MetricValue{Value: value}
	}
	return s
}

func TestComputeEHP(t *testing.T) {
	c := NewCalculator()

	t.Run("sums hours across skills", func(t *testing.T) {
		s := snapshotWith(map[domain.Metric]int64{
			domain.MetricAttack: 200_000, // 2h at 100k/h
			domain.MetricSlayer: 70_000,  // 2h at 35k/h
		})
		assert.InDelta(t, 4.0, c.ComputeEHP(s), 0.001)
	})

	t.Run("ignores hitpoints and boss metrics", func(t *testing.T) {
		s := snapshotWith(map[domain.Metric]int64{
			domain.MetricHitpoints: 1_000_000,
			domain.MetricZulrah:    500,
		})
		assert.Zero(t, c.ComputeEHP(s))
	})

	t.Run("nil snapshot", func(t *testing.T) {
		assert.Zero(t, c.ComputeEHP(nil))
	})
}

func TestComputeEHB(t *testing.T) {
	c := NewCalculator()

	s := snapshotWith(map[domain.Metric]int64{
		domain.MetricZulrah:  70, // 2h at 35/h
		domain.MetricVorkath: 30, // 1h at 30/h
		domain.MetricAttack:  1_000_000,
	})
	assert.InDelta(t, 3.0, c.ComputeEHB(s), 0.001)
}

func TestEnrich(t *testing.T) {
	c := NewCalculator()

	s := snapshotWith(map[domain.Metric]int64{
		domain.MetricAttack: 100_000,
		domain.MetricZulrah: 35,
	})
	c.Enrich(s)

	assert.InDelta(t, 1.0, s.EHP, 0.001)
	assert.InDelta(t, 1.0, s.EHB, 0.001)
}

func TestCompare(t *testing.T) {
	t.Run("positive gains", func(t *testing.T) {
		before := snapshotWith(map[domain.Metric]int64{domain.MetricAttack: 100})
		after := snapshotWith(map[domain.Metric]int64{domain.MetricAttack: 150})
		before.EHP = 1.0
		after.EHP = 1.5

		cmp := Compare(before, after)
		assert.False(t, cmp.HasNegativeGains)
		assert.InDelta(t, 0.5, cmp.EHPDiff, 0.001)
		assert.Len(t, cmp.Deltas, 1)
		assert.Equal(t, int64(50), cmp.Deltas[0].Gained)
	})

	t.Run("negative gains flagged", func(t *testing.T) {
		before := snapshotWith(map[domain.Metric]int64{domain.MetricAttack: 150})
		after := snapshotWith(map[domain.Metric]int64{domain.MetricAttack: 100})

		cmp := Compare(before, after)
		assert.True(t, cmp.HasNegativeGains)
	})

	t.Run("metric absent from one side is skipped", func(t *testing.T) {
		before := snapshotWith(map[domain.Metric]int64{
			domain.MetricAttack: 100,
			domain.MetricSlayer: 500,
		})
		after := snapshotWith(map[domain.Metric]int64{domain.MetricAttack: 100})

		cmp := Compare(before, after)
		assert.False(t, cmp.HasNegativeGains)
		assert.Len(t, cmp.Deltas, 1)
	})
}
