package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/rune-metrics/player-tracker/internal/adapter"
	"github.com/rune-metrics/player-tracker/internal/domain"
	"github.com/rune-metrics/player-tracker/internal/hiscores"
	"github.com/rune-metrics/player-tracker/internal/logger"
	"github.com/rune-metrics/player-tracker/internal/stats"
	"github.com/rune-metrics/player-tracker/internal/store"
	"github.com/rune-metrics/player-tracker/internal/store/schema"
)

const (
	SWEEP_CYCLE_INTERVAL = 15 * time.Minute // Time to sleep between sweep cycles
)

// SnapshotRefreshConfig holds configuration for the snapshot refresh sweeper
type SnapshotRefreshConfig struct {
	BatchSize      int           // Players to refresh per cycle
	WorkerPoolSize int           // Concurrent hiscores fetches
	RefreshAfter   time.Duration // Only refresh players whose latest snapshot is older than this
}

// snapshotRefreshSweeper implements the Sweeper interface. Each cycle it
// picks the stalest tracked players, fetches their live hiscores stats,
// stores a new snapshot and offers any gains since the previous snapshot to
// the best-ever records.
type snapshotRefreshSweeper struct {
	config     *SnapshotRefreshConfig
	store      store.Store
	hiscores   hiscores.Client
	calculator stats.Calculator
	json       adapter.JSON
	clock      adapter.Clock
	pool       pond.Pool
	running    atomic.Bool
	stopChan   chan struct{}
	stoppedCh  chan struct{}
}

// NewSnapshotRefreshSweeper creates a new snapshot refresh sweeper
func NewSnapshotRefreshSweeper(
	config *SnapshotRefreshConfig,
	st store.Store,
	hiscoresClient hiscores.Client,
	calculator stats.Calculator,
	json adapter.JSON,
	clock adapter.Clock,
) Sweeper {
	return &snapshotRefreshSweeper{
		config:     config,
		store:      st,
		hiscores:   hiscoresClient,
		calculator: calculator,
		json:       json,
		clock:      clock,
		stopChan:   make(chan struct{}),
		stoppedCh:  make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *snapshotRefreshSweeper) Name() string {
	return "snapshot-refresh-sweeper"
}

// Start begins the sweeper's main loop - continuously refreshes stale players
func (s *snapshotRefreshSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh) // Signal that we've stopped
	}()

	logger.InfoCtx(ctx, "Starting snapshot refresh sweeper",
		zap.Int("batch_size", s.config.BatchSize),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
		zap.Duration("refresh_after", s.config.RefreshAfter),
	)

	// Create worker pool
	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.BatchSize),
		pond.WithContext(ctx),
	)

	// Continuous loop - stops when context is canceled or stop is requested
	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Snapshot refresh sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			s.cleanup()
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Snapshot refresh sweeper stop requested")
			s.cleanup()
			return nil
		default:
			if err := s.runSweepCycle(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err)
				}
			}
		}
	}
}

// cleanup stops the worker pool and waits for tasks to complete
func (s *snapshotRefreshSweeper) cleanup() {
	if s.pool != nil {
		s.pool.StopAndWait()
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *snapshotRefreshSweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping snapshot refresh sweeper")

	// Signal stop to the main loop
	close(s.stopChan)

	// Wait for main loop to exit, but respect context cancellation
	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Snapshot refresh sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Snapshot refresh sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runSweepCycle refreshes a single batch of stale players
func (s *snapshotRefreshSweeper) runSweepCycle(ctx context.Context) error {
	startTime := s.clock.Now()

	players, err := s.store.GetPlayersForRefresh(ctx, s.config.RefreshAfter, s.config.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to get players for refresh: %w", err)
	}

	if len(players) == 0 {
		logger.InfoCtx(ctx, "No players need refreshing, waiting...")
		if !s.sleep(ctx, SWEEP_CYCLE_INTERVAL) {
			return ctx.Err() // Context canceled during sleep
		}
		return nil
	}

	logger.InfoCtx(ctx, "Found players to refresh", zap.Int("count", len(players)))

	var refreshedCount, unrankedCount, failedCount atomic.Int32

	for _, player := range players {
		s.pool.Submit(func() {
			s.refreshPlayer(ctx, player, &refreshedCount, &unrankedCount, &failedCount)
		})
	}

	// Wait for all refreshes to complete
	s.pool.StopAndWait()

	// Recreate pool for next cycle
	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.BatchSize),
		pond.WithContext(ctx),
	)

	duration := s.clock.Since(startTime)
	logger.InfoCtx(ctx, "Sweep cycle completed",
		zap.Duration("duration", duration),
		zap.Int("total", len(players)),
		zap.Int32("refreshed", refreshedCount.Load()),
		zap.Int32("unranked", unrankedCount.Load()),
		zap.Int32("failed", failedCount.Load()),
	)

	// Sleep for a while to avoid hammering the hiscores
	if !s.sleep(ctx, SWEEP_CYCLE_INTERVAL) {
		return ctx.Err() // Context canceled during sleep
	}

	return nil
}

// sleep sleeps for the given duration but can be interrupted by context cancellation
// Returns true if sleep completed normally, false if interrupted
func (s *snapshotRefreshSweeper) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-s.clock.After(duration):
		return true // Sleep completed
	case <-ctx.Done():
		return false // Interrupted by context cancellation
	case <-s.stopChan:
		return false // Interrupted by stop signal
	}
}

// refreshPlayer fetches a player's live stats and persists a snapshot plus
// any record gains
func (s *snapshotRefreshSweeper) refreshPlayer(ctx context.Context, player schema.Player, refreshedCount, unrankedCount, failedCount *atomic.Int32) {
	snapshot, err := s.hiscores.Fetch(ctx, player.Username)
	if err != nil {
		if errors.Is(err, hiscores.ErrNotRanked) {
			// Players can drop off the hiscores; not an error
			unrankedCount.Add(1)
			logger.WarnCtx(ctx, "Player not on hiscores, skipping",
				zap.String("username", player.Username),
			)
			return
		}
		failedCount.Add(1)
		logger.ErrorCtx(ctx, err, zap.String("username", player.Username))
		return
	}

	s.calculator.Enrich(snapshot)

	// The previous snapshot is the baseline for record gains
	previous, err := s.store.GetLatestSnapshot(ctx, player.ID)
	if err != nil {
		failedCount.Add(1)
		logger.ErrorCtx(ctx, err, zap.String("username", player.Username))
		return
	}

	metricsJSON, err := s.json.Marshal(snapshot.Metrics)
	if err != nil {
		failedCount.Add(1)
		logger.ErrorCtx(ctx, err, zap.String("username", player.Username))
		return
	}

	err = s.store.CreateSnapshot(ctx, &schema.Snapshot{
		PlayerID:  player.ID,
		CreatedAt: snapshot.CreatedAt,
		EHP:       snapshot.EHP,
		EHB:       snapshot.EHB,
		Metrics:   metricsJSON,
	})
	if err != nil {
		failedCount.Add(1)
		logger.ErrorCtx(ctx, err, zap.String("username", player.Username))
		return
	}

	if err := s.offerRecordGains(ctx, player.ID, previous, snapshot); err != nil {
		// The snapshot is already stored; record gains will be re-offered
		// implicitly by future refreshes
		logger.WarnCtx(ctx, "Failed to offer record gains",
			zap.Error(err),
			zap.String("username", player.Username),
		)
	}

	refreshedCount.Add(1)
}

// offerRecordGains computes per-metric gains between the previous snapshot
// and the fresh one and offers them to every record period whose window
// covers the elapsed time. UpsertRecord keeps the maximum, so a smaller gain
// never lowers an existing best.
func (s *snapshotRefreshSweeper) offerRecordGains(ctx context.Context, playerID uint64, previous *schema.Snapshot, fresh *domain.StatsSnapshot) error {
	if previous == nil {
		// First snapshot: no baseline to measure a gain against
		return nil
	}

	var baseline map[domain.Metric]domain.MetricValue
	if err := s.json.Unmarshal(previous.Metrics, &baseline); err != nil {
		return fmt.Errorf("failed to decode previous snapshot metrics: %w", err)
	}

	elapsed := fresh.CreatedAt.Sub(previous.CreatedAt)

	for metric, value := range fresh.Metrics {
		before, ok := baseline[metric]
		if !ok {
			continue
		}
		gained := value.Value - before.Value
		if gained <= 0 {
			continue
		}

		for _, period := range domain.Periods {
			if elapsed > period.Duration() {
				// The gain spans more than the period's window; it cannot
				// be attributed to that period
				continue
			}
			err := s.store.UpsertRecord(ctx, &schema.Record{
				PlayerID:  playerID,
				Metric:    metric,
				Period:    period,
				Value:     gained,
				UpdatedAt: fresh.CreatedAt,
			})
			if err != nil {
				return err
			}
		}
	}

	return nil
}
