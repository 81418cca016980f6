package report

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/skywatch/internal/metrics"
	"github.com/i474232898/skywatch/internal/visibility"
)

type Option func(*options)

type options struct {
	now     func() time.Time
	newRand func() visibility.Rand
	newID   func() string
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func buildOptions(opts []Option) options {
	o := options{
		now:     time.Now,
		newRand: visibility.NewRand,
		newID:   uuid.NewString,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithRandSource sets the factory called once per report for a randomness
// source. The default returns a fresh generator each call.
func WithRandSource(newRand func() visibility.Rand) Option {
	return func(o *options) {
		if newRand != nil {
			o.newRand = newRand
		}
	}
}

func WithIDs(newID func() string) Option {
	return func(o *options) {
		if newID != nil {
			o.newID = newID
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}
