// Package poll waits for conditions on a mutating source.
//
// [Until] re-runs a check until it succeeds or a deadline passes. Failures
// are treated as "not yet", and when time runs out the last failure is
// returned instead of a generic timeout message. [WaitForStable] builds on
// the same loop to wait until a materialized grid stops changing.
package poll

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/tsawler/spangrid/logger"
)

// Defaults used by Until for zero-valued options.
const (
	DefaultTimeout  = 30 * time.Second
	DefaultInterval = 100 * time.Millisecond
)

// ErrTimeout matches every *TimeoutError via errors.Is.
var ErrTimeout = errors.New("poll timed out")

// Check is a condition evaluated by Until. A nil error means the condition holds.
type Check func(ctx context.Context) error

// Options configures Until.
type Options struct {
	Timeout  time.Duration
	Interval time.Duration

	// Context labels the failure as "[Context: <label>] <message>".
	Context string

	Logger logger.Logger
}

// DefaultOptions returns the default polling options.
func DefaultOptions() Options {
	return Options{
		Timeout:  DefaultTimeout,
		Interval: DefaultInterval,
	}
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	o.Logger = logger.OrNop(o.Logger)
	return o
}

// TimeoutError is returned when a check never succeeded before the deadline.
// Its message is the last failure's message, prefixed with the context label
// when one was given.
type TimeoutError struct {
	Context  string
	Last     error
	Attempts int
	Timeout  time.Duration
	Elapsed  time.Duration
}

func (e *TimeoutError) Error() string {
	msg := fmt.Sprintf("condition not met within %s", e.Timeout)
	if e.Last != nil {
		msg = cleanMessage(e.Last.Error())
	}
	if e.Context != "" {
		return fmt.Sprintf("[Context: %s] %s", e.Context, msg)
	}
	return msg
}

// Unwrap returns the last failure.
func (e *TimeoutError) Unwrap() error {
	return e.Last
}

// Is reports whether target is ErrTimeout.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// Until runs check until it returns nil or opts.Timeout elapses. Attempts
// never overlap: each one settles before the interval wait starts. A check
// still running at the deadline is left to finish and its result ignored.
// Panics inside check count as failures.
func Until(ctx context.Context, check Check, opts Options) error {
	opts = opts.withDefaults()
	log := opts.Logger

	start := time.Now()
	deadline := time.NewTimer(opts.Timeout)
	defer deadline.Stop()

	var last error
	attempts := 0

	timedOut := func() error {
		err := &TimeoutError{
			Context:  opts.Context,
			Last:     last,
			Attempts: attempts,
			Timeout:  opts.Timeout,
			Elapsed:  time.Since(start),
		}
		log.Warn("poll timed out",
			logger.String("context", opts.Context),
			logger.Int("attempts", attempts),
			logger.Duration("elapsed", err.Elapsed),
			logger.Error(last),
		)
		return err
	}

	cancelled := func() error {
		if last == nil {
			return ctx.Err()
		}
		return fmt.Errorf("polling cancelled: %w", errors.Join(ctx.Err(), last))
	}

	for {
		attempts++
		done := make(chan error, 1)
		go func() {
			done <- runCheck(ctx, check)
		}()

		select {
		case err := <-done:
			if err == nil {
				log.Debug("condition met",
					logger.String("context", opts.Context),
					logger.Int("attempts", attempts),
					logger.Duration("elapsed", time.Since(start)),
				)
				return nil
			}
			last = err
			log.Debug("condition not met",
				logger.String("context", opts.Context),
				logger.Int("attempt", attempts),
				logger.Error(err),
			)
		case <-deadline.C:
			return timedOut()
		case <-ctx.Done():
			return cancelled()
		}

		wait := time.NewTimer(opts.Interval)
		select {
		case <-wait.C:
		case <-deadline.C:
			wait.Stop()
			return timedOut()
		case <-ctx.Done():
			wait.Stop()
			return cancelled()
		}
	}
}

func runCheck(ctx context.Context, check Check) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("check panicked: %v", r)
		}
	}()
	return check(ctx)
}

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

// cleanMessage strips terminal color codes and a leading "Error: " that
// assertion helpers put around their messages.
func cleanMessage(msg string) string {
	msg = ansiEscape.ReplaceAllString(msg, "")
	msg = strings.TrimSpace(msg)
	return strings.TrimPrefix(msg, "Error: ")
}
