package namechange

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"

	"github.com/rune-metrics/player-tracker/internal/adapter"
	"github.com/rune-metrics/player-tracker/internal/domain"
	"github.com/rune-metrics/player-tracker/internal/hiscores"
	"github.com/rune-metrics/player-tracker/internal/stats"
	"github.com/rune-metrics/player-tracker/internal/store"
	"github.com/rune-metrics/player-tracker/internal/store/schema"
)

// Report is the evidence bundle a moderator reviews before resolving a
// name-change request
type Report struct {
	NameChange *schema.NameChange `json:"name_change"`

	// OldNameOnHiscores is true when the old name still appears on the
	// hiscores. A renamed account vacates its old name, so presence suggests
	// the old account is still active under that name.
	OldNameOnHiscores bool `json:"old_name_on_hiscores"`

	// NewNameOnHiscores is true when the new name appears on the hiscores
	NewNameOnHiscores bool `json:"new_name_on_hiscores"`

	// NewNameTracked is true when the new name already belongs to a tracked
	// player whose history would be merged on approval
	NewNameTracked bool `json:"new_name_tracked"`

	// TimeSinceLastSnapshot is the elapsed time from the donor's last snapshot
	// to the post-change baseline, nil when no comparison could be built
	TimeSinceLastSnapshot *time.Duration `json:"time_since_last_snapshot,omitempty"`

	// Comparison diffs the donor's last snapshot against the post-change
	// baseline: the recipient's tracked snapshot when one postdates the
	// donor's, otherwise the new name's current hiscores stats. Nil when
	// either side is unavailable. Negative gains are strong evidence the
	// names belong to different accounts.
	Comparison *stats.Comparison `json:"comparison,omitempty"`
}

// Reporter builds comparison reports for pending name-change requests
//
//go:generate mockgen -source=reporter.go -destination=../mocks/namechange_reporter.go -package=mocks -mock_names=Reporter=MockReporter
type Reporter interface {
	// BuildReport assembles the review evidence for a name-change request
	BuildReport(ctx context.Context, id uint64) (*Report, error)
}

type reporter struct {
	store      store.Store
	hiscores   hiscores.Client
	calculator stats.Calculator
	json       adapter.JSON
	clock      adapter.Clock
	pool       pond.ResultPool[*domain.StatsSnapshot]
}

// NewReporter creates a new comparison reporter
func NewReporter(st store.Store, hc hiscores.Client, calc stats.Calculator, jsonAdapter adapter.JSON, clock adapter.Clock) Reporter {
	return &reporter{
		store:      st,
		hiscores:   hc,
		calculator: calc,
		json:       jsonAdapter,
		clock:      clock,
		pool:       pond.NewResultPool[*domain.StatsSnapshot](4),
	}
}

// BuildReport assembles the review evidence for a name-change request.
// The two hiscores lookups run concurrently; a name missing from the
// hiscores is a finding, not a failure.
func (r *reporter) BuildReport(ctx context.Context, id uint64) (*Report, error) {
	nameChange, err := r.store.GetNameChange(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load name change: %w", err)
	}
	if nameChange == nil {
		return nil, domain.ErrNameChangeNotFound
	}

	oldStats, newStats, err := r.fetchBothStats(ctx, nameChange.OldName, nameChange.NewName)
	if err != nil {
		return nil, err
	}

	report := &Report{
		NameChange:        nameChange,
		OldNameOnHiscores: oldStats != nil,
		NewNameOnHiscores: newStats != nil,
	}

	recipient, err := r.store.GetPlayerByUsername(ctx, nameChange.NewName)
	if err != nil {
		return nil, fmt.Errorf("failed to look up recipient: %w", err)
	}
	report.NewNameTracked = recipient != nil

	donor, err := r.store.GetPlayerByUsername(ctx, nameChange.OldName)
	if err != nil {
		return nil, fmt.Errorf("failed to look up donor: %w", err)
	}
	if donor == nil {
		return report, nil
	}

	baseline, err := r.loadLatestSnapshot(ctx, donor.ID)
	if err != nil {
		return nil, err
	}
	if baseline == nil {
		return report, nil
	}

	after, err := r.resolveAfterBaseline(ctx, recipient, baseline)
	if err != nil {
		return nil, err
	}
	switch {
	case after != nil:
		elapsed := after.CreatedAt.Sub(baseline.CreatedAt)
		report.TimeSinceLastSnapshot = &elapsed
		report.Comparison = stats.Compare(baseline, after)
	case newStats != nil:
		// No usable tracked snapshot; synthesize the baseline from live stats
		elapsed := r.clock.Since(baseline.CreatedAt)
		report.TimeSinceLastSnapshot = &elapsed
		r.calculator.Enrich(newStats)
		report.Comparison = stats.Compare(baseline, newStats)
	}

	return report, nil
}

// resolveAfterBaseline picks the post-change side of the comparison: the
// recipient's latest tracked snapshot, provided it postdates the donor's
// last capture. Nil means the caller should fall back to live hiscores data.
func (r *reporter) resolveAfterBaseline(ctx context.Context, recipient *schema.Player, donorBaseline *domain.StatsSnapshot) (*domain.StatsSnapshot, error) {
	if recipient == nil {
		return nil, nil
	}

	snapshot, err := r.loadLatestSnapshot(ctx, recipient.ID)
	if err != nil {
		return nil, err
	}
	if snapshot == nil || !snapshot.CreatedAt.After(donorBaseline.CreatedAt) {
		return nil, nil
	}
	return snapshot, nil
}

// fetchBothStats looks up both names on the hiscores concurrently.
// ErrNotRanked maps to a nil snapshot; any other failure aborts the report.
func (r *reporter) fetchBothStats(ctx context.Context, oldName, newName string) (*domain.StatsSnapshot, *domain.StatsSnapshot, error) {
	oldTask := r.pool.SubmitErr(func() (*domain.StatsSnapshot, error) {
		return r.hiscores.Fetch(ctx, oldName)
	})
	newTask := r.pool.SubmitErr(func() (*domain.StatsSnapshot, error) {
		return r.hiscores.Fetch(ctx, newName)
	})

	oldStats, err := oldTask.Wait()
	if err != nil && !errors.Is(err, hiscores.ErrNotRanked) {
		return nil, nil, fmt.Errorf("failed to fetch hiscores for %q: %w", oldName, err)
	}

	newStats, err := newTask.Wait()
	if err != nil && !errors.Is(err, hiscores.ErrNotRanked) {
		return nil, nil, fmt.Errorf("failed to fetch hiscores for %q: %w", newName, err)
	}

	return oldStats, newStats, nil
}

// loadLatestSnapshot retrieves a player's latest snapshot and decodes it into
// the normalized form the comparator works on
func (r *reporter) loadLatestSnapshot(ctx context.Context, playerID uint64) (*domain.StatsSnapshot, error) {
	row, err := r.store.GetLatestSnapshot(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest snapshot: %w", err)
	}
	if row == nil {
		return nil, nil
	}

	metrics := map[domain.Metric]domain.MetricValue{}
	if len(row.Metrics) > 0 {
		if err := r.json.Unmarshal(row.Metrics, &metrics); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot metrics: %w", err)
		}
	}

	return &domain.StatsSnapshot{
		CreatedAt: row.CreatedAt,
		EHP:       row.EHP,
		EHB:       row.EHB,
		Metrics:   metrics,
	}, nil
}
