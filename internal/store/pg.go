package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rune-metrics/player-tracker/internal/domain"
	"github.com/rune-metrics/player-tracker/internal/logger"
	"github.com/rune-metrics/player-tracker/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// calculateSafeBatchSize computes the batch size for bulk inserts that stays
// under PostgreSQL's extended-protocol limit of 65535 parameters per query,
// accounting for ON CONFLICT clause overhead.
func calculateSafeBatchSize(totalRecords int, fieldsPerRecord int) int {
	const maxParams = 65535
	const totalHeadroom = 1000 // parameter headroom for batch-level overhead

	availableParams := maxParams - totalHeadroom
	safeBatchSize := max(availableParams/fieldsPerRecord, 1)

	if safeBatchSize > totalRecords {
		return totalRecords
	}

	return safeBatchSize
}

// CreatePlayer starts tracking a player under the given standardized username
func (s *pgStore) CreatePlayer(ctx context.Context, username, displayName string) (*schema.Player, error) {
	player := schema.Player{
		Username:    username,
		DisplayName: displayName,
	}

	if err := s.db.WithContext(ctx).Create(&player).Error; err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return &player, nil
}

// GetPlayerByUsername retrieves a player by standardized username
func (s *pgStore) GetPlayerByUsername(ctx context.Context, username string) (*schema.Player, error) {
	var player schema.Player
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&player).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return &player, nil
}

// GetPlayersForRefresh retrieves up to limit players whose most recent
// snapshot is older than staleAfter, stalest first. Players that have never
// been snapshotted sort first.
func (s *pgStore) GetPlayersForRefresh(ctx context.Context, staleAfter time.Duration, limit int) ([]schema.Player, error) {
	cutoff := time.Now().Add(-staleAfter)

	var players []schema.Player
	err := s.db.WithContext(ctx).
		Joins("LEFT JOIN (SELECT player_id, MAX(created_at) AS last_snapshot_at FROM snapshots GROUP BY player_id) latest ON latest.player_id = players.id").
		Where("latest.last_snapshot_at IS NULL OR latest.last_snapshot_at < ?", cutoff).
		Order("latest.last_snapshot_at ASC NULLS FIRST").
		Limit(limit).
		Find(&players).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get players for refresh: %w", err)
	}
	return players, nil
}

// CreateSnapshot stores a stat capture, ignoring duplicates on (player_id, created_at)
func (s *pgStore) CreateSnapshot(ctx context.Context, snapshot *schema.Snapshot) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "player_id"}, {Name: "created_at"}},
			DoNothing: true,
		}).
		Create(snapshot).Error
	if err != nil {
		return fmt.Errorf("failed to create snapshot: %w", err)
	}
	return nil
}

// GetLatestSnapshot retrieves a player's most recent snapshot
func (s *pgStore) GetLatestSnapshot(ctx context.Context, playerID uint64) (*schema.Snapshot, error) {
	var snapshot schema.Snapshot
	err := s.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("created_at DESC").
		First(&snapshot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest snapshot: %w", err)
	}
	return &snapshot, nil
}

// GetLastSnapshotTime retrieves the capture time of a player's most recent snapshot
func (s *pgStore) GetLastSnapshotTime(ctx context.Context, playerID uint64) (*time.Time, error) {
	return lastSnapshotTime(s.db.WithContext(ctx), playerID)
}

// lastSnapshotTime resolves the transition point for a player on the given
// handle, which may be a transaction
func lastSnapshotTime(db *gorm.DB, playerID uint64) (*time.Time, error) {
	var snapshot schema.Snapshot
	err := db.
		Select("created_at").
		Where("player_id = ?", playerID).
		Order("created_at DESC").
		First(&snapshot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last snapshot time: %w", err)
	}
	return &snapshot.CreatedAt, nil
}

// UpsertRecord inserts a best-ever record or raises the existing one
func (s *pgStore) UpsertRecord(ctx context.Context, record *schema.Record) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "player_id"}, {Name: "metric"}, {Name: "period"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"value":      gorm.Expr("GREATEST(records.value, excluded.value)"),
				"updated_at": gorm.Expr("CASE WHEN excluded.value > records.value THEN excluded.updated_at ELSE records.updated_at END"),
			}),
		}).
		Create(record).Error
	if err != nil {
		return fmt.Errorf("failed to upsert record: %w", err)
	}
	return nil
}

// GetRecords retrieves all best-ever records for a player
func (s *pgStore) GetRecords(ctx context.Context, playerID uint64) ([]schema.Record, error) {
	var records []schema.Record
	err := s.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Order("metric, period").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get records: %w", err)
	}
	return records, nil
}

// AddParticipation links a player to a competition, ignoring duplicates
func (s *pgStore) AddParticipation(ctx context.Context, playerID, competitionID uint64, createdAt time.Time) error {
	participation := schema.Participation{
		PlayerID:      playerID,
		CompetitionID: competitionID,
		CreatedAt:     createdAt,
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "player_id"}, {Name: "competition_id"}},
			DoNothing: true,
		}).
		Create(&participation).Error
	if err != nil {
		return fmt.Errorf("failed to add participation: %w", err)
	}
	return nil
}

// AddMembership links a player to a group, ignoring duplicates
func (s *pgStore) AddMembership(ctx context.Context, playerID, groupID uint64, createdAt time.Time) error {
	membership := schema.Membership{
		PlayerID:  playerID,
		GroupID:   groupID,
		CreatedAt: createdAt,
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "player_id"}, {Name: "group_id"}},
			DoNothing: true,
		}).
		Create(&membership).Error
	if err != nil {
		return fmt.Errorf("failed to add membership: %w", err)
	}
	return nil
}

// GetNameChange retrieves a name-change request by ID
func (s *pgStore) GetNameChange(ctx context.Context, id uint64) (*schema.NameChange, error) {
	var nameChange schema.NameChange
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&nameChange).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get name change: %w", err)
	}
	return &nameChange, nil
}

// HasPendingNameChange checks whether a pending request already exists for the
// exact (old name, new name) pair
func (s *pgStore) HasPendingNameChange(ctx context.Context, oldName, newName string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&schema.NameChange{}).
		Where("old_name = ? AND new_name = ? AND status = ?", oldName, newName, domain.NameChangeStatusPending).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count pending name changes: %w", err)
	}
	return count > 0, nil
}

// CreateNameChange persists a new pending name-change request
func (s *pgStore) CreateNameChange(ctx context.Context, oldName, newName string) (*schema.NameChange, error) {
	nameChange := schema.NameChange{
		OldName: oldName,
		NewName: newName,
		Status:  domain.NameChangeStatusPending,
	}

	if err := s.db.WithContext(ctx).Create(&nameChange).Error; err != nil {
		return nil, fmt.Errorf("failed to create name change: %w", err)
	}

	return &nameChange, nil
}

// DenyNameChange flips a pending request to denied
func (s *pgStore) DenyNameChange(ctx context.Context, id uint64, now time.Time) (*schema.NameChange, error) {
	var nameChange schema.NameChange

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := loadNameChange(tx, id, &nameChange); err != nil {
			return err
		}

		// The status guard in the WHERE clause is the serialization point:
		// of two racing resolutions, the second matches zero rows.
		if err := flipStatus(tx, id, domain.NameChangeStatusDenied, nil, now); err != nil {
			return err
		}

		nameChange.Status = domain.NameChangeStatusDenied
		nameChange.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &nameChange, nil
}

// ApproveNameChange flips a pending request to approved and merges the
// recipient's post-transition history into the donor, all in one transaction.
//
// Steps, in order:
//  1. flip the request pending -> approved (guarded update; losing a race
//     surfaces domain.ErrInvalidStatus and nothing else runs)
//  2. resolve donor (must exist) and recipient (may be absent)
//  3. resolve the transition point from the donor's own snapshot history
//  4. if a recipient exists: merge records by max value, transfer
//     post-transition snapshots/participations/memberships on their natural
//     keys, then destroy the recipient player
//  5. rename the donor
//
// Any error rolls the entire transaction back; the request stays pending.
func (s *pgStore) ApproveNameChange(ctx context.Context, id uint64, now time.Time) (*schema.NameChange, error) {
	var nameChange schema.NameChange

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := loadNameChange(tx, id, &nameChange); err != nil {
			return err
		}

		if err := flipStatus(tx, id, domain.NameChangeStatusApproved, &now, now); err != nil {
			return err
		}

		donor, err := playerByUsername(tx, domain.Username(nameChange.OldName).Standardize())
		if err != nil {
			return err
		}
		if donor == nil {
			// The request referenced a player that existed at submission time.
			return domain.ErrPlayerVanished
		}

		recipient, err := playerByUsername(tx, domain.Username(nameChange.NewName).Standardize())
		if err != nil {
			return err
		}

		transitionAt, err := lastSnapshotTime(tx, donor.ID)
		if err != nil {
			return err
		}

		if recipient != nil {
			if err := s.mergePlayerData(tx, donor.ID, recipient.ID, transitionAt); err != nil {
				return err
			}

			if err := tx.Delete(&schema.Player{}, recipient.ID).Error; err != nil {
				return fmt.Errorf("failed to delete recipient player: %w", err)
			}
		}

		err = tx.Model(&schema.Player{}).
			Where("id = ?", donor.ID).
			Updates(map[string]interface{}{
				"username":     domain.Username(nameChange.NewName).Standardize(),
				"display_name": nameChange.NewName,
				"updated_at":   now,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to rename donor player: %w", err)
		}

		resolvedAt := now
		nameChange.Status = domain.NameChangeStatusApproved
		nameChange.ResolvedAt = &resolvedAt
		nameChange.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("approved name change",
		zap.Uint64("name_change_id", id),
		zap.String("old_name", nameChange.OldName),
		zap.String("new_name", nameChange.NewName),
	)

	return &nameChange, nil
}

// loadNameChange fetches a request inside the transaction, mapping absence to
// domain.ErrNameChangeNotFound
func loadNameChange(tx *gorm.DB, id uint64, out *schema.NameChange) error {
	err := tx.Where("id = ?", id).First(out).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNameChangeNotFound
		}
		return fmt.Errorf("failed to get name change: %w", err)
	}
	return nil
}

// flipStatus performs the guarded pending -> terminal transition. A zero-row
// update means the request is no longer pending: a concurrent resolution won.
func flipStatus(tx *gorm.DB, id uint64, status domain.NameChangeStatus, resolvedAt *time.Time, now time.Time) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": now,
	}
	if resolvedAt != nil {
		updates["resolved_at"] = *resolvedAt
	}

	result := tx.Model(&schema.NameChange{}).
		Where("id = ? AND status = ?", id, domain.NameChangeStatusPending).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update name change status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrInvalidStatus
	}
	return nil
}

// playerByUsername fetches a player inside the transaction, nil when absent
func playerByUsername(tx *gorm.DB, username string) (*schema.Player, error) {
	var player schema.Player
	err := tx.Where("username = ?", username).First(&player).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return &player, nil
}

// mergePlayerData moves the recipient's post-transition history onto the
// donor. A nil transitionAt means the donor has never been snapshotted, in
// which case the recipient's entire history transfers (the recipient rows are
// the only record of the player).
//
// All sub-steps run on the caller's transaction handle; the commit/rollback
// decision belongs to ApproveNameChange alone.
func (s *pgStore) mergePlayerData(tx *gorm.DB, donorID, recipientID uint64, transitionAt *time.Time) error {
	if err := mergeRecords(tx, donorID, recipientID, transitionAt); err != nil {
		return err
	}
	if err := transferSnapshots(tx, donorID, recipientID, transitionAt); err != nil {
		return err
	}
	if err := transferParticipations(tx, donorID, recipientID, transitionAt); err != nil {
		return err
	}
	return transferMemberships(tx, donorID, recipientID, transitionAt)
}

// mergeRecords raises donor records to the recipient's post-transition values
// where the recipient's best exceeds the donor's. Records the donor lacks are
// not created: donor history is authoritative for which metric/period rows
// exist, the merge only raises existing bests.
func mergeRecords(tx *gorm.DB, donorID, recipientID uint64, transitionAt *time.Time) error {
	query := tx.Where("player_id = ?", recipientID)
	if transitionAt != nil {
		query = query.Where("updated_at >= ?", *transitionAt)
	}

	var recipientRecords []schema.Record
	if err := query.Find(&recipientRecords).Error; err != nil {
		return fmt.Errorf("failed to get recipient records: %w", err)
	}
	if len(recipientRecords) == 0 {
		return nil
	}

	var donorRecords []schema.Record
	if err := tx.Where("player_id = ?", donorID).Find(&donorRecords).Error; err != nil {
		return fmt.Errorf("failed to get donor records: %w", err)
	}

	type recordKey struct {
		metric domain.Metric
		period domain.Period
	}
	donorByKey := make(map[recordKey]*schema.Record, len(donorRecords))
	for i := range donorRecords {
		donorByKey[recordKey{donorRecords[i].Metric, donorRecords[i].Period}] = &donorRecords[i]
	}

	for _, recipientRecord := range recipientRecords {
		donorRecord, ok := donorByKey[recordKey{recipientRecord.Metric, recipientRecord.Period}]
		if !ok || donorRecord.Value >= recipientRecord.Value {
			continue
		}

		err := tx.Model(&schema.Record{}).
			Where("id = ?", donorRecord.ID).
			Updates(map[string]interface{}{
				"value":      recipientRecord.Value,
				"updated_at": recipientRecord.UpdatedAt,
			}).Error
		if err != nil {
			return fmt.Errorf("failed to raise donor record: %w", err)
		}
	}

	return nil
}

// transferSnapshots re-inserts the recipient's post-transition snapshots as
// donor-owned rows, ignoring conflicts on (player_id, created_at) so a donor
// snapshot already present at that instant is kept rather than duplicated
func transferSnapshots(tx *gorm.DB, donorID, recipientID uint64, transitionAt *time.Time) error {
	query := tx.Where("player_id = ?", recipientID)
	if transitionAt != nil {
		query = query.Where("created_at >= ?", *transitionAt)
	}

	var snapshots []schema.Snapshot
	if err := query.Order("created_at").Find(&snapshots).Error; err != nil {
		return fmt.Errorf("failed to get recipient snapshots: %w", err)
	}
	if len(snapshots) == 0 {
		return nil
	}

	transferred := make([]schema.Snapshot, 0, len(snapshots))
	for _, snapshot := range snapshots {
		transferred = append(transferred, schema.Snapshot{
			PlayerID:  donorID,
			CreatedAt: snapshot.CreatedAt,
			EHP:       snapshot.EHP,
			EHB:       snapshot.EHB,
			Metrics:   snapshot.Metrics,
		})
	}

	// 6 fields per snapshot row
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "player_id"}, {Name: "created_at"}},
		DoNothing: true,
	}).CreateInBatches(&transferred, calculateSafeBatchSize(len(transferred), 6)).Error
	if err != nil {
		return fmt.Errorf("failed to transfer snapshots: %w", err)
	}

	return nil
}

// transferParticipations re-inserts the recipient's post-transition
// competition entries as donor-owned rows, natural key (player_id, competition_id)
func transferParticipations(tx *gorm.DB, donorID, recipientID uint64, transitionAt *time.Time) error {
	query := tx.Where("player_id = ?", recipientID)
	if transitionAt != nil {
		query = query.Where("created_at >= ?", *transitionAt)
	}

	var participations []schema.Participation
	if err := query.Find(&participations).Error; err != nil {
		return fmt.Errorf("failed to get recipient participations: %w", err)
	}
	if len(participations) == 0 {
		return nil
	}

	transferred := make([]schema.Participation, 0, len(participations))
	for _, participation := range participations {
		transferred = append(transferred, schema.Participation{
			PlayerID:      donorID,
			CompetitionID: participation.CompetitionID,
			CreatedAt:     participation.CreatedAt,
		})
	}

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "player_id"}, {Name: "competition_id"}},
		DoNothing: true,
	}).CreateInBatches(&transferred, calculateSafeBatchSize(len(transferred), 4)).Error
	if err != nil {
		return fmt.Errorf("failed to transfer participations: %w", err)
	}

	return nil
}

// transferMemberships re-inserts the recipient's post-transition group
// memberships as donor-owned rows, natural key (player_id, group_id)
func transferMemberships(tx *gorm.DB, donorID, recipientID uint64, transitionAt *time.Time) error {
	query := tx.Where("player_id = ?", recipientID)
	if transitionAt != nil {
		query = query.Where("created_at >= ?", *transitionAt)
	}

	var memberships []schema.Membership
	if err := query.Find(&memberships).Error; err != nil {
		return fmt.Errorf("failed to get recipient memberships: %w", err)
	}
	if len(memberships) == 0 {
		return nil
	}

	transferred := make([]schema.Membership, 0, len(memberships))
	for _, membership := range memberships {
		transferred = append(transferred, schema.Membership{
			PlayerID:  donorID,
			GroupID:   membership.GroupID,
			CreatedAt: membership.CreatedAt,
		})
	}

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "player_id"}, {Name: "group_id"}},
		DoNothing: true,
	}).CreateInBatches(&transferred, calculateSafeBatchSize(len(transferred), 4)).Error
	if err != nil {
		return fmt.Errorf("failed to transfer memberships: %w", err)
	}

	return nil
}
