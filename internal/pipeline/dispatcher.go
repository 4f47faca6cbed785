package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// DefaultWidth is the default number of concurrent workers.
// Eight workers saturate a typical listing crawl without tripping the
// source site's connection limits.
const DefaultWidth = 8

// Outcome pairs one input unit with the value or error its worker
// produced. Exactly one Outcome exists per submitted unit.
type Outcome[U, R any] struct {
	// Unit is the input the worker was applied to.
	Unit U

	// Value is the worker's result. Only meaningful when Err is nil.
	Value R

	// Err is the captured worker failure, nil on success.
	Err error
}

// ProgressFunc is invoked once per completed unit with the number of
// units finished so far and the batch total. Implementations must be
// safe for concurrent use; the counter itself is incremented atomically
// before the call.
type ProgressFunc func(done, total int)

// Option configures a dispatch run.
type Option func(*settings)

type settings struct {
	width    int
	progress ProgressFunc
}

// WithWidth sets the number of concurrent workers.
// Non-positive values fall back to DefaultWidth.
func WithWidth(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.width = n
		}
	}
}

// WithProgress sets a callback fired once per completed unit.
func WithProgress(fn ProgressFunc) Option {
	return func(s *settings) {
		s.progress = fn
	}
}

// Run applies worker to every unit using a fixed-size pool and blocks
// until all units have completed. The returned slice has one outcome
// per unit, stored at the unit's input index so every outcome can be
// traced back to the URL that produced it.
//
// Failure isolation: a worker error, or even a worker panic, is
// converted into that unit's outcome and never cancels sibling work.
// We deliberately do not return an aggregate error; callers inspect the
// per-unit outcomes.
func Run[U, R any](ctx context.Context, units []U, worker func(context.Context, U) (R, error), opts ...Option) []Outcome[U, R] {
	s := settings{width: DefaultWidth}
	for _, opt := range opts {
		opt(&s)
	}

	outcomes := make([]Outcome[U, R], len(units))
	var done atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.width)

	for i, unit := range units {
		g.Go(func() error {
			// Each goroutine owns outcomes[i] exclusively, so no
			// mutex is needed around the write.
			outcomes[i] = Outcome[U, R]{Unit: unit}
			outcomes[i].Value, outcomes[i].Err = runOne(ctx, unit, worker)

			if s.progress != nil {
				s.progress(int(done.Add(1)), len(units))
			}

			// Never propagate the error: errgroup would cancel the
			// shared context and abort sibling units.
			return nil
		})
	}

	// Workers always return nil, so Wait only reports ctx plumbing
	// issues, which the per-unit outcomes already capture.
	_ = g.Wait() //nolint:errcheck

	return outcomes
}

// runOne executes the worker for a single unit, converting panics into
// ordinary error outcomes.
func runOne[U, R any](ctx context.Context, unit U, worker func(context.Context, U) (R, error)) (value R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("worker panic: %v", r)
		}
	}()

	// A cancelled context still yields one outcome per unit rather
	// than a short slice.
	select {
	case <-ctx.Done():
		return value, ctx.Err()
	default:
	}

	return worker(ctx, unit)
}
