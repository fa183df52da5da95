package store

import (
	"context"
	"time"

	"github.com/rune-metrics/player-tracker/internal/store/schema"
)

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// CreatePlayer starts tracking a player under the given standardized username
	CreatePlayer(ctx context.Context, username, displayName string) (*schema.Player, error)
	// GetPlayerByUsername retrieves a player by standardized username, nil when absent
	GetPlayerByUsername(ctx context.Context, username string) (*schema.Player, error)
	// GetPlayersForRefresh retrieves up to limit players whose most recent
	// snapshot is older than staleAfter (or who have never been snapshotted),
	// stalest first
	GetPlayersForRefresh(ctx context.Context, staleAfter time.Duration, limit int) ([]schema.Player, error)
	// CreateSnapshot stores a stat capture, ignoring duplicates on (player_id, created_at)
	CreateSnapshot(ctx context.Context, snapshot *schema.Snapshot) error
	// GetLatestSnapshot retrieves a player's most recent snapshot, nil when the player has none
	GetLatestSnapshot(ctx context.Context, playerID uint64) (*schema.Snapshot, error)
	// GetLastSnapshotTime retrieves the capture time of a player's most recent
	// snapshot, nil when the player has none. This timestamp is the transition
	// point an approved name change partitions history on.
	GetLastSnapshotTime(ctx context.Context, playerID uint64) (*time.Time, error)
	// UpsertRecord inserts a best-ever record or raises the existing one,
	// keeping the maximum of the stored and offered values
	UpsertRecord(ctx context.Context, record *schema.Record) error
	// GetRecords retrieves all best-ever records for a player
	GetRecords(ctx context.Context, playerID uint64) ([]schema.Record, error)
	// AddParticipation links a player to a competition, ignoring duplicates
	AddParticipation(ctx context.Context, playerID, competitionID uint64, createdAt time.Time) error
	// AddMembership links a player to a group, ignoring duplicates
	AddMembership(ctx context.Context, playerID, groupID uint64, createdAt time.Time) error

	// GetNameChange retrieves a name-change request by ID, nil when absent
	GetNameChange(ctx context.Context, id uint64) (*schema.NameChange, error)
	// HasPendingNameChange checks whether a pending request already exists for
	// the exact (old name, new name) pair
	HasPendingNameChange(ctx context.Context, oldName, newName string) (bool, error)
	// CreateNameChange persists a new pending name-change request
	CreateNameChange(ctx context.Context, oldName, newName string) (*schema.NameChange, error)
	// DenyNameChange flips a pending request to denied. No player data is touched.
	DenyNameChange(ctx context.Context, id uint64, now time.Time) (*schema.NameChange, error)
	// ApproveNameChange flips a pending request to approved and performs the
	// full data merge in a single transaction: records merged by max value,
	// post-transition snapshots/participations/memberships transferred to the
	// donor, the recipient player destroyed and the donor renamed. Any failure
	// rolls the whole transaction back and leaves the request pending.
	ApproveNameChange(ctx context.Context, id uint64, now time.Time) (*schema.NameChange, error)
}
