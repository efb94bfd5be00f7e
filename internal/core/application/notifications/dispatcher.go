// Package notifications fans order lifecycle events out to the configured
// notification channels.
//
// Every event becomes one delivery unit per enabled, applicable channel. Units
// run on a bounded worker pool, retry transient failures with exponential
// backoff and never report back to the code that dispatched them: outcomes
// are logged and counted only.
package notifications

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/retry"
	"orderflow/internal/pkg/workerpool"
)

// Pool runs delivery units. *workerpool.Pool satisfies it.
type Pool interface {
	Submit(task workerpool.Task) error
	Stats() workerpool.Stats
}

// Binding pairs a channel adapter with its startup configuration.
type Binding struct {
	Config  notification.ChannelConfig
	Channel ports.NotificationChannel
}

type boundChannel struct {
	config  notification.ChannelConfig
	port    ports.NotificationChannel
	retrier *retry.Retrier
}

// Stats are cumulative counters since start, plus the pool's current load.
type Stats struct {
	Dispatched int64 `json:"dispatched"`
	Scheduled  int64 `json:"scheduled"`
	Skipped    int64 `json:"skipped"`
	Dropped    int64 `json:"dropped"`
	Succeeded  int64 `json:"succeeded"`
	Failed     int64 `json:"failed"`
	Attempts   int64 `json:"attempts"`
	Retries    int64 `json:"retries"`
	Workers    int   `json:"workers"`
	Busy       int   `json:"busy"`
	Queued     int   `json:"queued"`
}

type counters struct {
	dispatched atomic.Int64
	scheduled  atomic.Int64
	skipped    atomic.Int64
	dropped    atomic.Int64
	succeeded  atomic.Int64
	failed     atomic.Int64
	attempts   atomic.Int64
	retries    atomic.Int64
}

// Option customises a Dispatcher.
type Option func(*options)

type options struct {
	retryOptions []retry.Option
}

// WithRetryOptions is passed to every channel's retrier.
func WithRetryOptions(opts ...retry.Option) Option {
	return func(o *options) {
		o.retryOptions = append(o.retryOptions, opts...)
	}
}

// Dispatcher implements ports.NotificationDispatcher.
type Dispatcher struct {
	pool     Pool
	channels []boundChannel
	logger   *slog.Logger
	counters counters
}

var _ ports.NotificationDispatcher = (*Dispatcher)(nil)

// NewDispatcher validates every binding and builds one retrier per channel.
// Channel names must be unique.
func NewDispatcher(pool Pool, bindings []Binding, logger *slog.Logger, opts ...Option) (*Dispatcher, error) {
	if pool == nil {
		return nil, errs.NewValueIsRequiredError("pool")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	seen := make(map[string]struct{}, len(bindings))
	channels := make([]boundChannel, 0, len(bindings))
	for _, b := range bindings {
		if b.Channel == nil {
			return nil, errs.NewValueIsRequiredError(fmt.Sprintf("channel %q adapter", b.Config.Name))
		}
		if err := b.Config.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[b.Config.Name]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause("channel name",
				fmt.Errorf("%q is configured twice", b.Config.Name))
		}
		seen[b.Config.Name] = struct{}{}

		retrier, err := retry.NewRetrier(b.Config.Retry, o.retryOptions...)
		if err != nil {
			return nil, fmt.Errorf("channel %q: %w", b.Config.Name, err)
		}
		channels = append(channels, boundChannel{config: b.Config, port: b.Channel, retrier: retrier})
	}

	return &Dispatcher{
		pool:     pool,
		channels: channels,
		logger:   logger.With("component", "NotificationDispatcher"),
	}, nil
}

// Dispatch schedules one delivery unit per enabled, applicable channel and
// returns. It never blocks on delivery.
func (d *Dispatcher) Dispatch(ctx context.Context, event notification.Event) {
	if err := event.Validate(); err != nil {
		d.logger.ErrorContext(ctx, "refusing to dispatch invalid event", "error", err)
		return
	}
	d.counters.dispatched.Add(1)

	for _, ch := range d.channels {
		log := d.logger.With(
			"channel", ch.config.Name,
			"event_type", event.Type(),
			"order_id", event.OrderID().String(),
		)

		if !ch.config.Enabled {
			d.counters.skipped.Add(1)
			log.DebugContext(ctx, "channel disabled, skipping")
			continue
		}
		if !ch.port.Applicable(event) {
			d.counters.skipped.Add(1)
			log.DebugContext(ctx, "channel not applicable, skipping")
			continue
		}

		delivery := notification.NewDelivery(ch.config.Name, event)
		if err := d.pool.Submit(func(ctx context.Context) {
			d.deliver(ctx, ch, delivery, log)
		}); err != nil {
			d.counters.dropped.Add(1)
			log.WarnContext(ctx, "notification dropped", "error", err)
			continue
		}

		d.counters.scheduled.Add(1)
		log.DebugContext(ctx, "delivery state changed", "state", delivery.State())
	}
}

// Stats returns a snapshot of the counters.
func (d *Dispatcher) Stats() Stats {
	pool := d.pool.Stats()
	return Stats{
		Dispatched: d.counters.dispatched.Load(),
		Scheduled:  d.counters.scheduled.Load(),
		Skipped:    d.counters.skipped.Load(),
		Dropped:    d.counters.dropped.Load(),
		Succeeded:  d.counters.succeeded.Load(),
		Failed:     d.counters.failed.Load(),
		Attempts:   d.counters.attempts.Load(),
		Retries:    d.counters.retries.Load(),
		Workers:    pool.Workers,
		Busy:       pool.Busy,
		Queued:     pool.Queued,
	}
}

// deliver runs one delivery unit to completion. A panicking channel ends the
// unit as failed.
func (d *Dispatcher) deliver(ctx context.Context, ch boundChannel, delivery *notification.Delivery, log *slog.Logger) {
	event := delivery.Event()

	defer func() {
		if r := recover(); r != nil {
			d.advance(ctx, log, delivery, delivery.Fail, "attempts", delivery.Attempts())
			d.counters.failed.Add(1)
			log.ErrorContext(ctx, "notification delivery failed",
				"error", notification.NewDeliveryError(ch.config.Name, event.Type(), delivery.Attempts(),
					fmt.Errorf("channel panicked: %v", r)))
		}
	}()

	attempt := func(ctx context.Context, n int) error {
		d.advance(ctx, log, delivery, delivery.Attempt, "attempt", n)
		d.counters.attempts.Add(1)

		sendCtx, cancel := context.WithTimeout(ctx, ch.config.SendTimeout)
		defer cancel()

		err := ch.port.Send(sendCtx, event)
		return classifyTimeout(sendCtx, ch.config.Name, err)
	}

	onRetry := func(n int, err error, next time.Duration) {
		d.counters.retries.Add(1)
		d.advance(ctx, log, delivery, delivery.WaitRetry, "attempt", n, "next_delay", next, "error", err)
	}

	attempts, err := ch.retrier.Do(ctx, attempt, notification.IsTransient, onRetry)
	if err == nil {
		d.advance(ctx, log, delivery, delivery.Succeed, "attempts", attempts)
		d.counters.succeeded.Add(1)
		log.InfoContext(ctx, "notification delivered", "attempts", attempts)
		return
	}

	d.advance(ctx, log, delivery, delivery.Fail, "attempts", attempts)
	d.counters.failed.Add(1)
	log.ErrorContext(ctx, "notification delivery failed",
		"error", notification.NewDeliveryError(ch.config.Name, event.Type(), attempts, err))
}

// advance applies a Delivery transition and logs the new state at debug level.
func (d *Dispatcher) advance(
	ctx context.Context,
	log *slog.Logger,
	delivery *notification.Delivery,
	move func() error,
	attrs ...any,
) {
	if err := move(); err != nil {
		log.ErrorContext(ctx, "unexpected delivery state change", "error", err)
		return
	}
	log.DebugContext(ctx, "delivery state changed", append([]any{"state", delivery.State()}, attrs...)...)
}

// classifyTimeout turns an unclassified failure caused by the per-attempt
// deadline into a transient error.
func classifyTimeout(sendCtx context.Context, channel string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, notification.ErrTransient) || errors.Is(err, notification.ErrPermanent) {
		return err
	}
	if errors.Is(sendCtx.Err(), context.DeadlineExceeded) {
		return notification.NewTransientError(channel, err)
	}
	return err
}
