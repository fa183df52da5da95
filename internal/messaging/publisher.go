package messaging

import (
	"context"

	"github.com/rune-metrics/player-tracker/internal/domain"
)

// Publisher defines the interface for publishing events to message queue
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishNameChangeEvent publishes a name-change lifecycle event to the message broker
	PublishNameChangeEvent(ctx context.Context, event *domain.NameChangeEvent) error
	// Close closes the connection
	Close()
}
