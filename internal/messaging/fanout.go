package messaging

import (
	"context"
	"errors"

	"github.com/rune-metrics/player-tracker/internal/domain"
)

// fanout delivers every event to each underlying publisher. A failing sink
// does not stop delivery to the others; the joined error carries every
// failure.
type fanout struct {
	publishers []Publisher
}

// NewFanout combines multiple publishers into one. With a single publisher it
// is returned as-is; with none the result is nil.
func NewFanout(publishers ...Publisher) Publisher {
	switch len(publishers) {
	case 0:
		return nil
	case 1:
		return publishers[0]
	default:
		return &fanout{publishers: publishers}
	}
}

// PublishNameChangeEvent publishes the event to every sink
func (f *fanout) PublishNameChangeEvent(ctx context.Context, event *domain.NameChangeEvent) error {
	var errs []error
	for _, p := range f.publishers {
		if err := p.PublishNameChangeEvent(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink
func (f *fanout) Close() {
	for _, p := range f.publishers {
		p.Close()
	}
}
