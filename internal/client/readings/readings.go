// Package readings is the app-side view of the user's glucose readings.
package readings

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gdugdh24/glicosaude/internal/client/notify"
	"github.com/gdugdh24/glicosaude/internal/domain"
	"go.uber.org/zap"
)

// Remote is the backend reading table, already scoped to one identity.
type Remote interface {
	ListReadings(ctx context.Context) ([]*domain.GlucoseReading, error)
	CreateReading(ctx context.Context, in domain.ReadingInput) (*domain.GlucoseReading, error)
	DeleteReading(ctx context.Context, id string) error
}

// Client caches the list until a mutation invalidates it. Without an
// identity it holds no readings and refuses mutations.
type Client struct {
	remote   Remote
	identity string
	notifier notify.Notifier
	log      *zap.Logger
	now      func() time.Time

	mu     sync.Mutex
	cached []*domain.GlucoseReading
	valid  bool
	// gen counts invalidations; a fetch only caches if none happened while
	// it was in flight.
	gen uint64
}

func New(remote Remote, identity string, notifier notify.Notifier, log *zap.Logger) *Client {
	if notifier == nil {
		notifier = notify.Discard{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{remote: remote, identity: identity, notifier: notifier, log: log, now: time.Now}
}

// List returns readings newest first.
func (c *Client) List(ctx context.Context) ([]*domain.GlucoseReading, error) {
	if c.identity == "" {
		return nil, nil
	}

	c.mu.Lock()
	if c.valid {
		out := c.cached
		c.mu.Unlock()
		return out, nil
	}
	gen := c.gen
	c.mu.Unlock()

	readings, err := c.remote.ListReadings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list readings: %w", err)
	}

	c.mu.Lock()
	if c.gen == gen {
		c.cached, c.valid = readings, true
	}
	c.mu.Unlock()
	return readings, nil
}

// Insert validates in before anything leaves the device. measured_at
// defaults to now.
func (c *Client) Insert(ctx context.Context, in domain.ReadingInput) (*domain.GlucoseReading, error) {
	if c.identity == "" {
		c.notifier.Notify(notify.ReadingSaveFailed(domain.ErrUnauthenticated.Error()))
		return nil, domain.ErrUnauthenticated
	}
	if err := in.Validate(); err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			c.notifier.Notify(notify.Error(verr.Title, verr.Message))
		}
		return nil, err
	}
	if in.MeasuredAt == nil {
		now := c.now()
		in.MeasuredAt = &now
	}

	reading, err := c.remote.CreateReading(ctx, in)
	if err != nil {
		c.notifier.Notify(notify.ReadingSaveFailed(err.Error()))
		return nil, fmt.Errorf("create reading: %w", err)
	}
	c.invalidate()
	c.notifier.Notify(notify.ReadingSaved)
	return reading, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	if c.identity == "" {
		return domain.ErrUnauthenticated
	}
	if err := c.remote.DeleteReading(ctx, id); err != nil {
		c.log.Warn("Reading delete failed", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("delete reading: %w", err)
	}
	c.invalidate()
	c.notifier.Notify(notify.ReadingDeleted)
	return nil
}

func (c *Client) invalidate() {
	c.mu.Lock()
	c.cached, c.valid = nil, false
	c.gen++
	c.mu.Unlock()
}
