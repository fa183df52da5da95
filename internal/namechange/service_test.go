package namechange_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rune-metrics/player-tracker/internal/domain"
	"github.com/rune-metrics/player-tracker/internal/logger"
	"github.com/rune-metrics/player-tracker/internal/mocks"
	"github.com/rune-metrics/player-tracker/internal/namechange"
	"github.com/rune-metrics/player-tracker/internal/store/schema"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: true}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type serviceFixture struct {
	store        *mocks.MockStore
	verifier     *mocks.MockVerifier
	blockedNames *mocks.MockBlockedNamesRegistry
	publisher    *mocks.MockPublisher
	clock        *mocks.MockClock
	service      namechange.Service
}

func newServiceFixture(t *testing.T) *serviceFixture {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	f := &serviceFixture{
		store:        mocks.NewMockStore(ctrl),
		verifier:     mocks.NewMockVerifier(ctrl),
		blockedNames: mocks.NewMockBlockedNamesRegistry(ctrl),
		publisher:    mocks.NewMockPublisher(ctrl),
		clock:        mocks.NewMockClock(ctrl),
	}
	f.service = namechange.NewService(f.store, f.verifier, f.blockedNames, f.publisher, f.clock)
	return f
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("creates pending request and publishes event", func(t *testing.T) {
		f := newServiceFixture(t)

		created := &schema.NameChange{
			ID:      7,
			OldName: "old hero",
			NewName: "new hero",
			Status:  domain.NameChangeStatusPending,
		}

		f.blockedNames.EXPECT().IsBlocked("new hero").Return(false)
		f.store.EXPECT().GetPlayerByUsername(ctx, "old hero").
			Return(&schema.Player{ID: 1, Username: "old hero"}, nil)
		f.store.EXPECT().HasPendingNameChange(ctx, "old hero", "new hero").
			Return(false, nil)
		f.store.EXPECT().CreateNameChange(ctx, "old hero", "new hero").
			Return(created, nil)
		f.clock.EXPECT().Now().Return(now)
		f.publisher.EXPECT().PublishNameChangeEvent(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, event *domain.NameChangeEvent) error {
				assert.Equal(t, uint64(7), event.NameChangeID)
				assert.Equal(t, domain.NameChangeStatusPending, event.Status)
				assert.NotEmpty(t, event.EventID)
				assert.Equal(t, now, event.OccurredAt)
				return nil
			})

		result, err := f.service.Submit(ctx, "Old_Hero", "New-Hero")
		require.NoError(t, err)
		assert.Equal(t, created, result)
	})

	t.Run("standardizes names before lookup", func(t *testing.T) {
		f := newServiceFixture(t)

		f.blockedNames.EXPECT().IsBlocked("iron rob").Return(false)
		f.store.EXPECT().GetPlayerByUsername(ctx, "iron bob").
			Return(nil, nil)

		_, err := f.service.Submit(ctx, "  IRON_Bob ", "Iron Rob")
		assert.ErrorIs(t, err, domain.ErrPlayerNotFound)
	})

	t.Run("rejects blocked name", func(t *testing.T) {
		f := newServiceFixture(t)

		f.blockedNames.EXPECT().IsBlocked("mod trouble").Return(true)

		_, err := f.service.Submit(ctx, "old hero", "Mod Trouble")
		assert.ErrorIs(t, err, domain.ErrNameBlocked)
	})

	t.Run("rejects identical names", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.service.Submit(ctx, "Same Name", "same_name")
		assert.ErrorIs(t, err, domain.ErrInvalidName)
	})

	t.Run("rejects empty names", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.service.Submit(ctx, "  ", "new name")
		assert.ErrorIs(t, err, domain.ErrInvalidName)
	})

	t.Run("rejects duplicate pending request", func(t *testing.T) {
		f := newServiceFixture(t)

		f.blockedNames.EXPECT().IsBlocked("new hero").Return(false)
		f.store.EXPECT().GetPlayerByUsername(ctx, "old hero").
			Return(&schema.Player{ID: 1}, nil)
		f.store.EXPECT().HasPendingNameChange(ctx, "old hero", "new hero").
			Return(true, nil)

		_, err := f.service.Submit(ctx, "old hero", "new hero")
		assert.ErrorIs(t, err, domain.ErrDuplicateNameChange)
	})

	t.Run("publish failure does not fail the submission", func(t *testing.T) {
		f := newServiceFixture(t)

		created := &schema.NameChange{ID: 8, OldName: "old hero", NewName: "new hero", Status: domain.NameChangeStatusPending}

		f.blockedNames.EXPECT().IsBlocked("new hero").Return(false)
		f.store.EXPECT().GetPlayerByUsername(ctx, "old hero").Return(&schema.Player{ID: 1}, nil)
		f.store.EXPECT().HasPendingNameChange(ctx, "old hero", "new hero").Return(false, nil)
		f.store.EXPECT().CreateNameChange(ctx, "old hero", "new hero").Return(created, nil)
		f.clock.EXPECT().Now().Return(now)
		f.publisher.EXPECT().PublishNameChangeEvent(ctx, gomock.Any()).
			Return(errors.New("nats unavailable"))

		result, err := f.service.Submit(ctx, "old hero", "new hero")
		require.NoError(t, err)
		assert.Equal(t, created, result)
	})
}

func TestService_Approve(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("rejects invalid credential", func(t *testing.T) {
		f := newServiceFixture(t)

		f.verifier.EXPECT().IsValidAdminToken("bad-token").Return(false)

		_, err := f.service.Approve(ctx, 7, "bad-token")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("approves and publishes event", func(t *testing.T) {
		f := newServiceFixture(t)

		resolved := &schema.NameChange{
			ID:         7,
			OldName:    "old hero",
			NewName:    "new hero",
			Status:     domain.NameChangeStatusApproved,
			ResolvedAt: &now,
		}

		f.verifier.EXPECT().IsValidAdminToken("mod-key").Return(true)
		f.clock.EXPECT().Now().Return(now).Times(2)
		f.store.EXPECT().ApproveNameChange(ctx, uint64(7), now).Return(resolved, nil)
		f.publisher.EXPECT().PublishNameChangeEvent(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, event *domain.NameChangeEvent) error {
				assert.Equal(t, domain.NameChangeStatusApproved, event.Status)
				return nil
			})

		result, err := f.service.Approve(ctx, 7, "mod-key")
		require.NoError(t, err)
		assert.Equal(t, domain.NameChangeStatusApproved, result.Status)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		f := newServiceFixture(t)

		f.verifier.EXPECT().IsValidAdminToken("mod-key").Return(true)
		f.clock.EXPECT().Now().Return(now)
		f.store.EXPECT().ApproveNameChange(ctx, uint64(7), now).
			Return(nil, domain.ErrInvalidStatus)

		_, err := f.service.Approve(ctx, 7, "mod-key")
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})
}

func TestService_Deny(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("rejects invalid credential", func(t *testing.T) {
		f := newServiceFixture(t)

		f.verifier.EXPECT().IsValidAdminToken("").Return(false)

		_, err := f.service.Deny(ctx, 7, "")
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("denies and publishes event", func(t *testing.T) {
		f := newServiceFixture(t)

		denied := &schema.NameChange{
			ID:      7,
			OldName: "old hero",
			NewName: "new hero",
			Status:  domain.NameChangeStatusDenied,
		}

		f.verifier.EXPECT().IsValidAdminToken("mod-key").Return(true)
		f.clock.EXPECT().Now().Return(now).Times(2)
		f.store.EXPECT().DenyNameChange(ctx, uint64(7), now).Return(denied, nil)
		f.publisher.EXPECT().PublishNameChangeEvent(ctx, gomock.Any()).Return(nil)

		result, err := f.service.Deny(ctx, 7, "mod-key")
		require.NoError(t, err)
		assert.Equal(t, domain.NameChangeStatusDenied, result.Status)
	})
}
