package sweeper_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rune-metrics/player-tracker/internal/adapter"
	"github.com/rune-metrics/player-tracker/internal/domain"
	"github.com/rune-metrics/player-tracker/internal/hiscores"
	"github.com/rune-metrics/player-tracker/internal/logger"
	"github.com/rune-metrics/player-tracker/internal/mocks"
	"github.com/rune-metrics/player-tracker/internal/stats"
	"github.com/rune-metrics/player-tracker/internal/store/schema"
	"github.com/rune-metrics/player-tracker/internal/sweeper"
)

// testSweeperMocks contains all the mocks needed for testing the sweeper
type testSweeperMocks struct {
	ctrl     *gomock.Controller
	store    *mocks.MockStore
	hiscores *mocks.MockHiscoresClient
	clock    *mocks.MockClock
	sweeper  sweeper.Sweeper
}

// setupTestSweeper creates all the mocks and sweeper for testing
func setupTestSweeper(t *testing.T) *testSweeperMocks {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: true,
	})
	if err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	ctrl := gomock.NewController(t)

	tm := &testSweeperMocks{
		ctrl:     ctrl,
		store:    mocks.NewMockStore(ctrl),
		hiscores: mocks.NewMockHiscoresClient(ctrl),
		clock:    mocks.NewMockClock(ctrl),
	}

	config := &sweeper.SnapshotRefreshConfig{
		BatchSize:      10,
		WorkerPoolSize: 2,
		RefreshAfter:   24 * time.Hour,
	}

	tm.sweeper = sweeper.NewSnapshotRefreshSweeper(
		config,
		tm.store,
		tm.hiscores,
		stats.NewCalculator(),
		adapter.NewJSON(),
		tm.clock,
	)

	return tm
}

// tearDownTestSweeper cleans up the test mocks
func tearDownTestSweeper(mocks *testSweeperMocks) {
	mocks.ctrl.Finish()
}

// expectClock wires the standard clock expectations: Now/Since are free, and
// After yields shortly so the cycle sleep does not stall the test
func expectClock(tm *testSweeperMocks, now time.Time) {
	tm.clock.EXPECT().Now().Return(now).AnyTimes()
	tm.clock.EXPECT().Since(gomock.Any()).Return(time.Second).AnyTimes()
	tm.clock.EXPECT().After(gomock.Any()).DoAndReturn(func(d time.Duration) <-chan time.Time {
		ch := make(chan time.Time, 1)
		go func() {
			time.Sleep(50 * time.Millisecond)
			ch <- time.Now()
		}()
		return ch
	}).AnyTimes()
}

// runSweeper starts the sweeper, lets it process one cycle and stops it
func runSweeper(t *testing.T, tm *testSweeperMocks) {
	t.Helper()
	ctx := context.Background()

	go func() {
		time.Sleep(200 * time.Millisecond)
		_ = tm.sweeper.Stop(ctx)
	}()

	require.NoError(t, tm.sweeper.Start(ctx))
}

func TestSnapshotRefreshSweeper_Name(t *testing.T) {
	tm := setupTestSweeper(t)
	defer tearDownTestSweeper(tm)

	assert.Equal(t, "snapshot-refresh-sweeper", tm.sweeper.Name())
}

func TestSnapshotRefreshSweeper_RefreshesStalePlayer(t *testing.T) {
	tm := setupTestSweeper(t)
	defer tearDownTestSweeper(tm)

	now := time.Now()
	expectClock(tm, now)

	player := schema.Player{ID: 1, Username: "iron bob"}

	gomock.InOrder(
		tm.store.EXPECT().
			GetPlayersForRefresh(gomock.Any(), 24*time.Hour, 10).
			Return([]schema.Player{player}, nil).
			Times(1),
		tm.store.EXPECT().
			GetPlayersForRefresh(gomock.Any(), 24*time.Hour, 10).
			Return([]schema.Player{}, nil).
			MinTimes(1),
	)

	// Live stats: 50k attack experience gained in two hours
	tm.hiscores.EXPECT().
		Fetch(gomock.Any(), "iron bob").
		Return(&domain.StatsSnapshot{
			CreatedAt: now,
			Metrics: map[domain.Metric]domain.MetricValue{
				domain.MetricAttack: {Rank: 100, Value: 250_000},
			},
		}, nil)

	previousMetrics, err := json.Marshal(map[domain.Metric]domain.MetricValue{
		domain.MetricAttack: {Rank: 120, Value: 200_000},
	})
	require.NoError(t, err)

	tm.store.EXPECT().
		GetLatestSnapshot(gomock.Any(), uint64(1)).
		Return(&schema.Snapshot{
			PlayerID:  1,
			CreatedAt: now.Add(-2 * time.Hour),
			Metrics:   previousMetrics,
		}, nil)

	tm.store.EXPECT().
		CreateSnapshot(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, snapshot *schema.Snapshot) error {
			assert.Equal(t, uint64(1), snapshot.PlayerID)
			assert.True(t, snapshot.CreatedAt.Equal(now))
			assert.Greater(t, snapshot.EHP, 0.0)
			return nil
		})

	// A two-hour gain fits every record period
	var mu sync.Mutex
	offered := map[domain.Period]int64{}
	tm.store.EXPECT().
		UpsertRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record *schema.Record) error {
			mu.Lock()
			defer mu.Unlock()
			assert.Equal(t, domain.MetricAttack, record.Metric)
			offered[record.Period] = record.Value
			return nil
		}).
		Times(4)

	runSweeper(t, tm)

	for _, period := range domain.Periods {
		assert.Equal(t, int64(50_000), offered[period])
	}
}

func TestSnapshotRefreshSweeper_GainOlderThanPeriodNotOffered(t *testing.T) {
	tm := setupTestSweeper(t)
	defer tearDownTestSweeper(tm)

	now := time.Now()
	expectClock(tm, now)

	player := schema.Player{ID: 1, Username: "iron bob"}

	gomock.InOrder(
		tm.store.EXPECT().
			GetPlayersForRefresh(gomock.Any(), 24*time.Hour, 10).
			Return([]schema.Player{player}, nil).
			Times(1),
		tm.store.EXPECT().
			GetPlayersForRefresh(gomock.Any(), 24*time.Hour, 10).
			Return([]schema.Player{}, nil).
			MinTimes(1),
	)

	tm.hiscores.EXPECT().
		Fetch(gomock.Any(), "iron bob").
		Return(&domain.StatsSnapshot{
			CreatedAt: now,
			Metrics: map[domain.Metric]domain.MetricValue{
				domain.MetricAttack: {Value: 250_000},
			},
		}, nil)

	previousMetrics, err := json.Marshal(map[domain.Metric]domain.MetricValue{
		domain.MetricAttack: {Value: 200_000},
	})
	require.NoError(t, err)

	// Ten days elapsed: the gain no longer fits the day or week windows
	tm.store.EXPECT().
		GetLatestSnapshot(gomock.Any(), uint64(1)).
		Return(&schema.Snapshot{
			PlayerID:  1,
			CreatedAt: now.Add(-10 * 24 * time.Hour),
			Metrics:   previousMetrics,
		}, nil)

	tm.store.EXPECT().CreateSnapshot(gomock.Any(), gomock.Any()).Return(nil)

	var mu sync.Mutex
	var offered []domain.Period
	tm.store.EXPECT().
		UpsertRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record *schema.Record) error {
			mu.Lock()
			defer mu.Unlock()
			offered = append(offered, record.Period)
			return nil
		}).
		Times(2)

	runSweeper(t, tm)

	assert.ElementsMatch(t, []domain.Period{domain.PeriodMonth, domain.PeriodYear}, offered)
}

func TestSnapshotRefreshSweeper_UnrankedPlayerSkipped(t *testing.T) {
	tm := setupTestSweeper(t)
	defer tearDownTestSweeper(tm)

	now := time.Now()
	expectClock(tm, now)

	player := schema.Player{ID: 1, Username: "ghost name"}

	gomock.InOrder(
		tm.store.EXPECT().
			GetPlayersForRefresh(gomock.Any(), 24*time.Hour, 10).
			Return([]schema.Player{player}, nil).
			Times(1),
		tm.store.EXPECT().
			GetPlayersForRefresh(gomock.Any(), 24*time.Hour, 10).
			Return([]schema.Player{}, nil).
			MinTimes(1),
	)

	// Player dropped off the hiscores: nothing is stored
	tm.hiscores.EXPECT().
		Fetch(gomock.Any(), "ghost name").
		Return(nil, hiscores.ErrNotRanked)

	runSweeper(t, tm)
}

func TestSnapshotRefreshSweeper_FirstSnapshotHasNoGains(t *testing.T) {
	tm := setupTestSweeper(t)
	defer tearDownTestSweeper(tm)

	now := time.Now()
	expectClock(tm, now)

	player := schema.Player{ID: 2, Username: "fresh start"}

	gomock.InOrder(
		tm.store.EXPECT().
			GetPlayersForRefresh(gomock.Any(), 24*time.Hour, 10).
			Return([]schema.Player{player}, nil).
			Times(1),
		tm.store.EXPECT().
			GetPlayersForRefresh(gomock.Any(), 24*time.Hour, 10).
			Return([]schema.Player{}, nil).
			MinTimes(1),
	)

	tm.hiscores.EXPECT().
		Fetch(gomock.Any(), "fresh start").
		Return(&domain.StatsSnapshot{
			CreatedAt: now,
			Metrics: map[domain.Metric]domain.MetricValue{
				domain.MetricAttack: {Value: 1_000},
			},
		}, nil)

	// Never snapshotted before: store the capture, offer no records
	tm.store.EXPECT().
		GetLatestSnapshot(gomock.Any(), uint64(2)).
		Return(nil, nil)

	tm.store.EXPECT().CreateSnapshot(gomock.Any(), gomock.Any()).Return(nil)

	runSweeper(t, tm)
}
