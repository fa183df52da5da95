package namechange

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rune-metrics/player-tracker/internal/adapter"
	"github.com/rune-metrics/player-tracker/internal/auth"
	"github.com/rune-metrics/player-tracker/internal/domain"
	"github.com/rune-metrics/player-tracker/internal/logger"
	"github.com/rune-metrics/player-tracker/internal/messaging"
	"github.com/rune-metrics/player-tracker/internal/registry"
	"github.com/rune-metrics/player-tracker/internal/store"
	"github.com/rune-metrics/player-tracker/internal/store/schema"
)

// Service manages the name-change request lifecycle
//
//go:generate mockgen -source=service.go -destination=../mocks/namechange_service.go -package=mocks -mock_names=Service=MockService
type Service interface {
	// Submit creates a pending name-change request for a tracked player
	Submit(ctx context.Context, oldName, newName string) (*schema.NameChange, error)

	// Deny rejects a pending request. Requires a moderator token.
	Deny(ctx context.Context, id uint64, adminToken string) (*schema.NameChange, error)

	// Approve accepts a pending request and executes the data merge.
	// Requires a moderator token.
	Approve(ctx context.Context, id uint64, adminToken string) (*schema.NameChange, error)
}

type service struct {
	store        store.Store
	verifier     auth.Verifier
	blockedNames registry.BlockedNamesRegistry
	publisher    messaging.Publisher
	clock        adapter.Clock
}

// NewService creates a new name-change lifecycle service. blockedNames and
// publisher may be nil, in which case no names are blocked and no events are
// published.
func NewService(st store.Store, verifier auth.Verifier, blockedNames registry.BlockedNamesRegistry, publisher messaging.Publisher, clock adapter.Clock) Service {
	return &service{
		store:        st,
		verifier:     verifier,
		blockedNames: blockedNames,
		publisher:    publisher,
		clock:        clock,
	}
}

// Submit creates a pending name-change request for a tracked player.
// The old name must belong to a tracked player and no identical pending
// request may already exist.
func (s *service) Submit(ctx context.Context, oldName, newName string) (*schema.NameChange, error) {
	oldStd := domain.Username(oldName).Standardize()
	newStd := domain.Username(newName).Standardize()

	if oldStd == "" || newStd == "" {
		return nil, fmt.Errorf("%w: names must be non-empty", domain.ErrInvalidName)
	}
	if oldStd == newStd {
		return nil, fmt.Errorf("%w: old and new names are identical", domain.ErrInvalidName)
	}
	if s.blockedNames != nil && s.blockedNames.IsBlocked(newStd) {
		return nil, fmt.Errorf("%w: %q may not be adopted", domain.ErrNameBlocked, newStd)
	}

	player, err := s.store.GetPlayerByUsername(ctx, oldStd)
	if err != nil {
		return nil, fmt.Errorf("failed to look up player: %w", err)
	}
	if player == nil {
		return nil, domain.ErrPlayerNotFound
	}

	pending, err := s.store.HasPendingNameChange(ctx, oldStd, newStd)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending requests: %w", err)
	}
	if pending {
		return nil, domain.ErrDuplicateNameChange
	}

	nameChange, err := s.store.CreateNameChange(ctx, oldStd, newStd)
	if err != nil {
		return nil, fmt.Errorf("failed to create name change: %w", err)
	}

	s.publishEvent(ctx, nameChange)

	return nameChange, nil
}

// Deny rejects a pending request. Requires a moderator token.
func (s *service) Deny(ctx context.Context, id uint64, adminToken string) (*schema.NameChange, error) {
	if !s.verifier.IsValidAdminToken(adminToken) {
		return nil, domain.ErrUnauthorized
	}

	nameChange, err := s.store.DenyNameChange(ctx, id, s.clock.Now())
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, nameChange)

	return nameChange, nil
}

// Approve accepts a pending request and executes the data merge.
// Requires a moderator token.
func (s *service) Approve(ctx context.Context, id uint64, adminToken string) (*schema.NameChange, error) {
	if !s.verifier.IsValidAdminToken(adminToken) {
		return nil, domain.ErrUnauthorized
	}

	nameChange, err := s.store.ApproveNameChange(ctx, id, s.clock.Now())
	if err != nil {
		return nil, err
	}

	s.publishEvent(ctx, nameChange)

	return nameChange, nil
}

// publishEvent emits a lifecycle event for the request's current state.
// Publish failures are logged, not surfaced: the database is the source of
// truth and the request has already transitioned.
func (s *service) publishEvent(ctx context.Context, nameChange *schema.NameChange) {
	if s.publisher == nil {
		return
	}

	event := &domain.NameChangeEvent{
		EventID:      uuid.NewString(),
		NameChangeID: nameChange.ID,
		OldName:      nameChange.OldName,
		NewName:      nameChange.NewName,
		Status:       nameChange.Status,
		OccurredAt:   s.clock.Now(),
	}

	if err := s.publisher.PublishNameChangeEvent(ctx, event); err != nil {
		logger.WarnCtx(ctx, "failed to publish name change event",
			zap.Error(err),
			zap.Uint64("name_change_id", nameChange.ID),
			zap.String("status", string(nameChange.Status)),
		)
	}
}
