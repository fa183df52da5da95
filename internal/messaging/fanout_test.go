package messaging_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rune-metrics/player-tracker/internal/domain"
	"github.com/rune-metrics/player-tracker/internal/messaging"
	"github.com/rune-metrics/player-tracker/internal/mocks"
)

func TestNewFanout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("no publishers yields nil", func(t *testing.T) {
		assert.Nil(t, messaging.NewFanout())
	})

	t.Run("single publisher is returned as-is", func(t *testing.T) {
		single := mocks.NewMockPublisher(ctrl)
		assert.Equal(t, messaging.Publisher(single), messaging.NewFanout(single))
	})
}

func TestFanout_PublishNameChangeEvent(t *testing.T) {
	ctx := context.Background()
	event := &domain.NameChangeEvent{
		EventID: "some-event",
		Status:  domain.NameChangeStatusApproved,
	}

	t.Run("delivers to every sink", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		first := mocks.NewMockPublisher(ctrl)
		second := mocks.NewMockPublisher(ctrl)
		first.EXPECT().PublishNameChangeEvent(ctx, event).Return(nil)
		second.EXPECT().PublishNameChangeEvent(ctx, event).Return(nil)

		require.NoError(t, messaging.NewFanout(first, second).PublishNameChangeEvent(ctx, event))
	})

	t.Run("one failing sink does not stop the others", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		failing := mocks.NewMockPublisher(ctrl)
		healthy := mocks.NewMockPublisher(ctrl)
		sinkErr := errors.New("nats unavailable")
		failing.EXPECT().PublishNameChangeEvent(ctx, event).Return(sinkErr)
		healthy.EXPECT().PublishNameChangeEvent(ctx, event).Return(nil)

		err := messaging.NewFanout(failing, healthy).PublishNameChangeEvent(ctx, event)
		assert.ErrorIs(t, err, sinkErr)
	})
}

func TestFanout_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	first := mocks.NewMockPublisher(ctrl)
	second := mocks.NewMockPublisher(ctrl)
	first.EXPECT().Close()
	second.EXPECT().Close()

	messaging.NewFanout(first, second).Close()
}
