package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUsernameStandardize(t *testing.T) {
	tests := []struct {
		name     string
		username Username
		expected string
	}{
		{
			name:     "lowercases",
			username: Username("Iron Bob"),
			expected: "iron bob",
		},
		{
			name:     "folds underscores",
			username: Username("iron_bob"),
			expected: "iron bob",
		},
		{
			name:     "folds dashes",
			username: Username("iron-bob"),
			expected: "iron bob",
		},
		{
			name:     "trims surrounding whitespace",
			username: Username("  Iron Bob  "),
			expected: "iron bob",
		},
		{
			name:     "mixed separators and casing",
			username: Username("IRON_Bob-III"),
			expected: "iron bob iii",
		},
		{
			name:     "empty",
			username: Username(""),
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.username.Standardize()
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestIsValidPeriod(t *testing.T) {
	tests := []struct {
		name     string
		period   Period
		expected bool
	}{
		{
			name:     "valid day",
			period:   PeriodDay,
			expected: true,
		},
		{
			name:     "valid week",
			period:   PeriodWeek,
			expected: true,
		},
		{
			name:     "valid month",
			period:   PeriodMonth,
			expected: true,
		},
		{
			name:     "valid year",
			period:   PeriodYear,
			expected: true,
		},
		{
			name:     "invalid empty period",
			period:   Period(""),
			expected: false,
		},
		{
			name:     "invalid random period",
			period:   Period("fortnight"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValidPeriod(tt.period)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestPeriodDuration(t *testing.T) {
	tests := []struct {
		name     string
		period   Period
		expected time.Duration
	}{
		{
			name:     "day",
			period:   PeriodDay,
			expected: 24 * time.Hour,
		},
		{
			name:     "week",
			period:   PeriodWeek,
			expected: 7 * 24 * time.Hour,
		},
		{
			name:     "month covers 31 days",
			period:   PeriodMonth,
			expected: 31 * 24 * time.Hour,
		},
		{
			name:     "year",
			period:   PeriodYear,
			expected: 365 * 24 * time.Hour,
		},
		{
			name:     "unknown period has no window",
			period:   Period("fortnight"),
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.period.Duration()
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestPeriodsOrderedShortestFirst(t *testing.T) {
	for i := 1; i < len(Periods); i++ {
		assert.Less(t, Periods[i-1].Duration(), Periods[i].Duration())
	}
}
