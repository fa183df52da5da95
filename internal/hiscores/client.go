package hiscores

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rune-metrics/player-tracker/internal/adapter"
	"github.com/rune-metrics/player-tracker/internal/domain"
	"github.com/rune-metrics/player-tracker/internal/ratelimit"
)

const PROVIDER_NAME = "hiscores"

// ErrNotRanked is returned when the hiscores have no entry for the requested
// name. This is a valid outcome, not an upstream failure: callers represent
// it as an absent value.
var ErrNotRanked = errors.New("player not ranked on hiscores")

// Client defines the interface for hiscores lookups to enable mocking
//
//go:generate mockgen -source=client.go -destination=../mocks/hiscores_client.go -package=mocks -mock_names=Client=MockHiscoresClient
type Client interface {
	// Fetch retrieves the current hiscores stats for a player name
	Fetch(ctx context.Context, username string) (*domain.StatsSnapshot, error)
}

// HiscoresClient implements the hiscores lookup over the index_lite endpoint
type HiscoresClient struct {
	httpClient     adapter.HTTPClient
	rateLimitProxy ratelimit.Proxy
	baseURL        string
	clock          adapter.Clock
}

// NewClient creates a new hiscores client
func NewClient(httpClient adapter.HTTPClient, rateLimitProxy ratelimit.Proxy, baseURL string, clock adapter.Clock) Client {
	return &HiscoresClient{
		httpClient:     httpClient,
		rateLimitProxy: rateLimitProxy,
		baseURL:        baseURL,
		clock:          clock,
	}
}

// Fetch retrieves the current hiscores stats for a player name.
// A 404 from the hiscores maps to ErrNotRanked; any other failure is an
// upstream error and propagates as-is.
func (c *HiscoresClient) Fetch(ctx context.Context, username string) (*domain.StatsSnapshot, error) {
	reqURL := fmt.Sprintf("%s/index_lite.ws?player=%s", c.baseURL, url.QueryEscape(username))

	respBody, err := ratelimit.Request(ctx, c.rateLimitProxy, PROVIDER_NAME, func(ctx context.Context) ([]byte, error) {
		return c.httpClient.GetBytes(ctx, reqURL, nil)
	})
	if err != nil {
		if errors.Is(err, adapter.ErrNotFound) {
			return nil, ErrNotRanked
		}
		return nil, fmt.Errorf("failed to call hiscores: %w", err)
	}

	snapshot, err := parseIndexLite(respBody)
	if err != nil {
		return nil, fmt.Errorf("failed to parse hiscores response: %w", err)
	}
	snapshot.CreatedAt = c.clock.Now()

	return snapshot, nil
}

// parseIndexLite parses the CSV body of the index_lite endpoint: one
// "rank,level,experience" line per skill in fixed order, followed by activity
// lines this client ignores.
func parseIndexLite(body []byte) (*domain.StatsSnapshot, error) {
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	if len(lines) < len(domain.SkillMetrics) {
		return nil, fmt.Errorf("expected at least %d lines, got %d", len(domain.SkillMetrics), len(lines))
	}

	metrics := make(map[domain.Metric]domain.MetricValue, len(domain.SkillMetrics))
	for i, metric := range domain.SkillMetrics {
		fields := strings.Split(strings.TrimSpace(lines[i]), ",")
		if len(fields) != 3 {
			return nil, fmt.Errorf("malformed skill line %d: %q", i, lines[i])
		}

		rank, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed rank on line %d: %w", i, err)
		}
		experience, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed experience on line %d: %w", i, err)
		}

		// Unranked skills report -1
		if experience < 0 {
			experience = 0
		}

		metrics[metric] = domain.MetricValue{
			Rank:  rank,
			Value: experience,
		}
	}

	return &domain.StatsSnapshot{Metrics: metrics}, nil
}
