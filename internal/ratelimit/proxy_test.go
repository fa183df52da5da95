package ratelimit_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/golang/mock/gomock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rune-metrics/player-tracker/internal/config"
	"github.com/rune-metrics/player-tracker/internal/logger"
	"github.com/rune-metrics/player-tracker/internal/mocks"
	"github.com/rune-metrics/player-tracker/internal/ratelimit"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// testProxyMocks contains all the mocks needed for testing the proxy
type testProxyMocks struct {
	ctrl             *gomock.Controller
	redisClient      *mocks.MockRedisClient
	redisRateLimiter *mocks.MockRedisRateLimiter
	clock            *mocks.MockClock
}

// setupTestProxy creates all the mocks for testing
func setupTestProxy(t *testing.T) *testProxyMocks {
	ctrl := gomock.NewController(t)

	return &testProxyMocks{
		ctrl:             ctrl,
		redisClient:      mocks.NewMockRedisClient(ctrl),
		redisRateLimiter: mocks.NewMockRedisRateLimiter(ctrl),
		clock:            mocks.NewMockClock(ctrl),
	}
}

// tearDownTestProxy cleans up the test mocks
func tearDownTestProxy(mocks *testProxyMocks) {
	mocks.ctrl.Finish()
}

func testConfig() config.RateLimiterConfig {
	return config.RateLimiterConfig{
		RedisKeyPrefix:          "test:limiter:",
		MaxWorkers:              10,
		MaxQueueSize:            100,
		EnableLocalFallback:     true,
		LocalFallbackMultiplier: 0.5,
		Providers: map[string]config.RateLimitConfig{
			"hiscores": {
				RequestsPerSecond: 100,
				Burst:             100,
				MaxQueueTime:      5 * time.Second,
			},
		},
	}
}

// expectPing wires the Redis ping the proxy issues on construction
func expectPing(tm *testProxyMocks, available bool) {
	statusCmd := redis.NewStatusCmd(context.Background())
	if available {
		statusCmd.SetVal("PONG")
	} else {
		statusCmd.SetErr(errors.New("connection refused"))
	}
	tm.redisClient.EXPECT().Ping(gomock.Any()).Return(statusCmd)
	tm.redisClient.EXPECT().NewRateLimiter().Return(tm.redisRateLimiter)
}

func TestNewProxy_Success(t *testing.T) {
	tm := setupTestProxy(t)
	defer tearDownTestProxy(tm)

	expectPing(tm, true)

	proxy, err := ratelimit.NewProxy(testConfig(), tm.redisClient, tm.clock)
	require.NoError(t, err)
	assert.NotNil(t, proxy)

	assert.NoError(t, proxy.Close())
}

func TestNewProxy_RedisUnavailableFallbackEnabled(t *testing.T) {
	tm := setupTestProxy(t)
	defer tearDownTestProxy(tm)

	expectPing(tm, false)

	proxy, err := ratelimit.NewProxy(testConfig(), tm.redisClient, tm.clock)
	require.NoError(t, err)
	assert.NotNil(t, proxy)

	assert.NoError(t, proxy.Close())
}

func TestNewProxy_RedisUnavailableFallbackDisabled(t *testing.T) {
	tm := setupTestProxy(t)
	defer tearDownTestProxy(tm)

	statusCmd := redis.NewStatusCmd(context.Background())
	statusCmd.SetErr(errors.New("connection refused"))
	tm.redisClient.EXPECT().Ping(gomock.Any()).Return(statusCmd)

	cfg := testConfig()
	cfg.EnableLocalFallback = false

	_, err := ratelimit.NewProxy(cfg, tm.redisClient, tm.clock)
	assert.ErrorContains(t, err, "redis unavailable and fallback disabled")
}

func TestNewProxy_InvalidProviderRate(t *testing.T) {
	tm := setupTestProxy(t)
	defer tearDownTestProxy(tm)

	cfg := testConfig()
	cfg.Providers["hiscores"] = config.RateLimitConfig{RequestsPerSecond: 0}

	_, err := ratelimit.NewProxy(cfg, tm.redisClient, tm.clock)
	assert.ErrorContains(t, err, "requests_per_second must be positive")
}

func TestRequest_DistributedAllowed(t *testing.T) {
	tm := setupTestProxy(t)
	defer tearDownTestProxy(tm)

	expectPing(tm, true)
	tm.redisRateLimiter.EXPECT().
		Allow(gomock.Any(), "test:limiter:hiscores", gomock.Any()).
		Return(&redis_rate.Result{Allowed: 1, Remaining: 99}, nil)

	proxy, err := ratelimit.NewProxy(testConfig(), tm.redisClient, tm.clock)
	require.NoError(t, err)
	defer func() { _ = proxy.Close() }()

	result, err := proxy.Request(context.Background(), "hiscores", func(ctx context.Context) (interface{}, error) {
		return "stats", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "stats", result)
}

func TestRequest_RetriesAfterThrottle(t *testing.T) {
	tm := setupTestProxy(t)
	defer tearDownTestProxy(tm)

	expectPing(tm, true)

	// First attempt is throttled, the jittered wait elapses, second succeeds
	gomock.InOrder(
		tm.redisRateLimiter.EXPECT().
			Allow(gomock.Any(), "test:limiter:hiscores", gomock.Any()).
			Return(&redis_rate.Result{Allowed: 0, RetryAfter: 10 * time.Millisecond}, nil),
		tm.redisRateLimiter.EXPECT().
			Allow(gomock.Any(), "test:limiter:hiscores", gomock.Any()).
			Return(&redis_rate.Result{Allowed: 1}, nil),
	)
	tm.clock.EXPECT().After(gomock.Any()).DoAndReturn(func(d time.Duration) <-chan time.Time {
		ch := make(chan time.Time, 1)
		ch <- time.Now()
		return ch
	})

	proxy, err := ratelimit.NewProxy(testConfig(), tm.redisClient, tm.clock)
	require.NoError(t, err)
	defer func() { _ = proxy.Close() }()

	result, err := proxy.Request(context.Background(), "hiscores", func(ctx context.Context) (interface{}, error) {
		return "stats", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "stats", result)
}

func TestRequest_LocalFallback(t *testing.T) {
	tm := setupTestProxy(t)
	defer tearDownTestProxy(tm)

	expectPing(tm, false)

	proxy, err := ratelimit.NewProxy(testConfig(), tm.redisClient, tm.clock)
	require.NoError(t, err)
	defer func() { _ = proxy.Close() }()

	result, err := proxy.Request(context.Background(), "hiscores", func(ctx context.Context) (interface{}, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, result)
}

func TestRequest_UnknownProvider(t *testing.T) {
	tm := setupTestProxy(t)
	defer tearDownTestProxy(tm)

	expectPing(tm, true)

	proxy, err := ratelimit.NewProxy(testConfig(), tm.redisClient, tm.clock)
	require.NoError(t, err)
	defer func() { _ = proxy.Close() }()

	_, err = proxy.Request(context.Background(), "nonexistent", func(ctx context.Context) (interface{}, error) {
		return nil, nil
	})
	assert.ErrorContains(t, err, "provider 'nonexistent' not configured")
}

func TestRequest_AfterClose(t *testing.T) {
	tm := setupTestProxy(t)
	defer tearDownTestProxy(tm)

	expectPing(tm, true)

	proxy, err := ratelimit.NewProxy(testConfig(), tm.redisClient, tm.clock)
	require.NoError(t, err)
	require.NoError(t, proxy.Close())

	_, err = proxy.Request(context.Background(), "hiscores", func(ctx context.Context) (interface{}, error) {
		return nil, nil
	})
	assert.ErrorContains(t, err, "proxy is closed")
}

func TestRequest_PropagatesRequestError(t *testing.T) {
	tm := setupTestProxy(t)
	defer tearDownTestProxy(tm)

	expectPing(tm, true)
	tm.redisRateLimiter.EXPECT().
		Allow(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&redis_rate.Result{Allowed: 1}, nil)

	proxy, err := ratelimit.NewProxy(testConfig(), tm.redisClient, tm.clock)
	require.NoError(t, err)
	defer func() { _ = proxy.Close() }()

	upstreamErr := errors.New("upstream exploded")
	_, err = proxy.Request(context.Background(), "hiscores", func(ctx context.Context) (interface{}, error) {
		return nil, upstreamErr
	})
	assert.ErrorIs(t, err, upstreamErr)
}

func TestTypedRequest_NilProxyExecutesDirectly(t *testing.T) {
	result, err := ratelimit.Request(context.Background(), nil, "hiscores", func(ctx context.Context) (string, error) {
		return "direct", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "direct", result)
}
