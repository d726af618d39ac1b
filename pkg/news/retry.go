package news

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
)

// ErrRetryExhausted returned when every attempt failed with a retryable error
var ErrRetryExhausted = errors.New("retry attempts exhausted")

// RetryPolicy runs an operation with bounded attempts and exponential backoff.
// Terminal errors stop retrying right away and are returned unchanged.
type RetryPolicy struct {
	attempts int
	delay    time.Duration
	maxDelay time.Duration
	terminal []error
}

// NewRetryPolicy makes a policy doing up to attempts calls, waiting delay, 2*delay, 4*delay...
// between them, never longer than maxDelay.
func NewRetryPolicy(attempts int, delay, maxDelay time.Duration, terminal ...error) *RetryPolicy {
	if attempts < 1 {
		attempts = 1
	}
	if maxDelay < delay {
		maxDelay = delay
	}
	return &RetryPolicy{attempts: attempts, delay: delay, maxDelay: maxDelay, terminal: terminal}
}

// Execute calls fn until it succeeds, hits a terminal error or runs out of attempts
func (p *RetryPolicy) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	calls := 0
	var termErr error
	retrier := repeater.NewBackoff(p.attempts, p.delay, repeater.WithMaxDelay(p.maxDelay))

	err := retrier.Do(ctx, func() error {
		calls++
		err := fn(ctx)
		if err != nil && p.isTerminal(err) {
			termErr = err
			return nil // stop repeating, reported below
		}
		return err
	})

	switch {
	case termErr != nil:
		return termErr
	case err == nil:
		return nil
	case ctx.Err() != nil:
		return fmt.Errorf("retry interrupted after %d attempts: %w", calls, ctx.Err())
	default:
		return fmt.Errorf("%w after %d attempts: %w", ErrRetryExhausted, calls, err)
	}
}

func (p *RetryPolicy) isTerminal(err error) bool {
	for _, t := range p.terminal {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}
