// Package retry runs an operation under an exponential backoff policy.
//
// The loop is built on github.com/cenkalti/backoff/v4 with randomization
// disabled, so the wait before attempt n+1 is exactly
// BaseDelay * Multiplier^(n-1), capped at MaxDelay. Errors are split by a
// caller supplied classifier into retryable and permanent ones; a permanent
// error ends the loop after the attempt that produced it.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"orderflow/internal/pkg/errs"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = time.Second
	DefaultMultiplier  = 2.0
	DefaultMaxDelay    = 30 * time.Second
)

// Policy describes how many times an operation is attempted and how long to
// wait between attempts.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first one.
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
	MaxDelay    time.Duration
}

// DefaultPolicy returns 3 attempts waiting 1s and then 2s.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		Multiplier:  DefaultMultiplier,
		MaxDelay:    DefaultMaxDelay,
	}
}

// Validate checks that the policy can drive a backoff loop.
func (p Policy) Validate() error {
	var errList []error
	if p.MaxAttempts < 1 {
		errList = append(errList, errs.NewValueIsOutOfRangeError("maxAttempts", p.MaxAttempts, 1, math.MaxInt32))
	}
	if p.BaseDelay < 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"baseDelay", fmt.Errorf("%s is negative", p.BaseDelay)))
	}
	if p.Multiplier < 1 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"multiplier", fmt.Errorf("%v is less than 1", p.Multiplier)))
	}
	if p.MaxDelay < p.BaseDelay {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"maxDelay", fmt.Errorf("%s is less than base delay %s", p.MaxDelay, p.BaseDelay)))
	}
	return errors.Join(errList...)
}

// Delay returns the wait that follows a failed attempt number attempt (1-based).
func (p Policy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		return 0
	}
	d := float64(p.BaseDelay) * math.Pow(p.Multiplier, float64(attempt-1))
	if d >= float64(p.MaxDelay) {
		return p.MaxDelay
	}
	return time.Duration(d)
}

// Operation is one attempt. attempt starts at 1.
type Operation func(ctx context.Context, attempt int) error

// Classifier reports whether err may go away on a later attempt.
type Classifier func(err error) bool

// Notify is called after a retryable failure, before waiting next.
type Notify func(attempt int, err error, next time.Duration)

// Option customises a Retrier.
type Option func(*Retrier)

// WithTimer replaces the wall-clock timer used between attempts. The factory is
// called once per Do call, so a Retrier stays safe for concurrent use.
func WithTimer(newTimer func() backoff.Timer) Option {
	return func(r *Retrier) {
		r.newTimer = newTimer
	}
}

// Retrier executes operations under a fixed Policy.
type Retrier struct {
	policy   Policy
	newTimer func() backoff.Timer
}

// NewRetrier validates the policy and builds a Retrier.
func NewRetrier(policy Policy, opts ...Option) (*Retrier, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	r := &Retrier{policy: policy}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Policy returns the policy the retrier was built with.
func (r *Retrier) Policy() Policy {
	return r.policy
}

// Do runs op until it succeeds, returns a non retryable error, the attempts are
// exhausted or ctx is done. It returns the number of attempts made and the last
// error, unwrapped from any backoff.PermanentError.
func (r *Retrier) Do(ctx context.Context, op Operation, isRetryable Classifier, notify Notify) (int, error) {
	attempt := 0

	operation := func() error {
		attempt++
		err := op(ctx, attempt)
		if err == nil {
			return nil
		}
		if isRetryable == nil || !isRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	onRetry := func(err error, next time.Duration) {
		if notify != nil {
			notify(attempt, err, next)
		}
	}

	var timer backoff.Timer
	if r.newTimer != nil {
		timer = r.newTimer()
	}

	err := backoff.RetryNotifyWithTimer(operation, r.newBackOff(ctx), onRetry, timer)
	return attempt, err
}

func (r *Retrier) newBackOff(ctx context.Context) backoff.BackOff {
	exp := &backoff.ExponentialBackOff{
		InitialInterval:     r.policy.BaseDelay,
		RandomizationFactor: 0,
		Multiplier:          r.policy.Multiplier,
		MaxInterval:         r.policy.MaxDelay,
		MaxElapsedTime:      0,
		Stop:                backoff.Stop,
		Clock:               backoff.SystemClock,
	}
	exp.Reset()

	//nolint:gosec // MaxAttempts is validated to be >= 1
	limited := backoff.WithMaxRetries(exp, uint64(r.policy.MaxAttempts-1))
	return backoff.WithContext(limited, ctx)
}
