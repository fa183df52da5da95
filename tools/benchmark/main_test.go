package main

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		want     string
	}{
		{
			name:     "milliseconds",
			duration: 500 * time.Millisecond,
			want:     "500ms",
		},
		{
			name:     "seconds",
			duration: 5 * time.Second,
			want:     "5.00s",
		},
		{
			name:     "minutes",
			duration: 2*time.Minute + 30*time.Second,
			want:     "2m 30s",
		},
		{
			name:     "hours",
			duration: 1*time.Hour + 15*time.Minute,
			want:     "1h 15m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatDuration(tt.duration)
			if got != tt.want {
				t.Errorf("formatDuration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPercentageString(t *testing.T) {
	tests := []struct {
		name  string
		part  int
		total int
		want  string
	}{
		{
			name:  "50 percent",
			part:  1,
			total: 2,
			want:  "50.00%",
		},
		{
			name:  "100 percent",
			part:  5,
			total: 5,
			want:  "100.00%",
		},
		{
			name:  "0 percent",
			part:  0,
			total: 5,
			want:  "0.00%",
		},
		{
			name:  "division by zero",
			part:  5,
			total: 0,
			want:  "0.00%",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := percentageString(tt.part, tt.total)
			if got != tt.want {
				t.Errorf("percentageString() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStatusEmoji(t *testing.T) {
	tests := []struct {
		name      string
		succeeded int
		failed    int
		inflight  int
		want      string
	}{
		{
			name:     "inflight",
			inflight: 1,
			want:     "🟡",
		},
		{
			name:      "failed",
			succeeded: 1,
			failed:    1,
			want:      "❌",
		},
		{
			name:      "succeeded",
			succeeded: 5,
			want:      "✅",
		},
		{
			name: "none",
			want: "⚪",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := statusEmoji(tt.succeeded, tt.failed, tt.inflight)
			if got != tt.want {
				t.Errorf("statusEmoji() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatRate(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		duration time.Duration
		want     string
	}{
		{
			name:     "1 per second",
			count:    10,
			duration: 10 * time.Second,
			want:     "1.00/s",
		},
		{
			name:     "2 per second",
			count:    20,
			duration: 10 * time.Second,
			want:     "2.00/s",
		},
		{
			name:     "zero duration",
			count:    10,
			duration: 0,
			want:     "N/A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatRate(tt.count, tt.duration)
			if got != tt.want {
				t.Errorf("formatRate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEndpointStatsPercentile(t *testing.T) {
	stats := &EndpointStats{Name: "test"}
	for i := 1; i <= 100; i++ {
		stats.record(time.Duration(i)*time.Millisecond, true)
	}

	tests := []struct {
		name string
		p    float64
		want time.Duration
	}{
		{name: "p50", p: 50, want: 50 * time.Millisecond},
		{name: "p95", p: 95, want: 95 * time.Millisecond},
		{name: "p99", p: 99, want: 99 * time.Millisecond},
		{name: "p100", p: 100, want: 100 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stats.percentile(tt.p)
			if got != tt.want {
				t.Errorf("percentile(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}

	if stats.Succeeded != 100 {
		t.Errorf("Succeeded = %d, want 100", stats.Succeeded)
	}
}

func TestEndpointStatsEmpty(t *testing.T) {
	stats := &EndpointStats{Name: "empty"}

	if got := stats.percentile(95); got != 0 {
		t.Errorf("percentile() on empty stats = %v, want 0", got)
	}
	if got := stats.mean(); got != 0 {
		t.Errorf("mean() on empty stats = %v, want 0", got)
	}
}
