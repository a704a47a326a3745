package poll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tsawler/spangrid/grid"
	"github.com/tsawler/spangrid/logger"
)

var (
	// ErrInvalidStableOptions is wrapped by every StableOptions.Validate failure.
	ErrInvalidStableOptions = errors.New("invalid stability options")
	// ErrStabilityTimeout matches every *StabilityTimeoutError via errors.Is.
	ErrStabilityTimeout = errors.New("source did not stabilize")

	errChanged = errors.New("grid changed since last check")
)

// Snapshot materializes the current grid of a source.
type Snapshot func(ctx context.Context) (grid.Grid, error)

// StableOptions configures WaitForStable.
type StableOptions struct {
	// StabilityDuration is how long the grid must stay unchanged.
	StabilityDuration time.Duration
	// CheckInterval is the pause between snapshots.
	CheckInterval time.Duration
	// Timeout bounds the whole wait.
	Timeout time.Duration

	// Source names the observed table in errors and logs.
	Source string

	Logger logger.Logger
}

// DefaultStableOptions returns the default stability options.
func DefaultStableOptions() StableOptions {
	return StableOptions{
		StabilityDuration: time.Second,
		CheckInterval:     DefaultInterval,
		Timeout:           DefaultTimeout,
	}
}

// Validate checks that the options leave room for a stability window to be
// observed: at least two samples per window and one full window plus a check
// before the timeout.
func (o StableOptions) Validate() error {
	switch {
	case o.CheckInterval <= 0:
		return fmt.Errorf("%w: check interval must be positive, got %s", ErrInvalidStableOptions, o.CheckInterval)
	case o.StabilityDuration <= 0:
		return fmt.Errorf("%w: stability duration must be positive, got %s", ErrInvalidStableOptions, o.StabilityDuration)
	case o.Timeout <= 0:
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidStableOptions, o.Timeout)
	case o.CheckInterval > o.StabilityDuration/2:
		return fmt.Errorf("%w: check interval %s must be at most half the stability duration %s",
			ErrInvalidStableOptions, o.CheckInterval, o.StabilityDuration)
	case o.StabilityDuration >= o.Timeout:
		return fmt.Errorf("%w: stability duration %s must be less than timeout %s",
			ErrInvalidStableOptions, o.StabilityDuration, o.Timeout)
	case o.Timeout < o.CheckInterval+o.StabilityDuration:
		return fmt.Errorf("%w: timeout %s must cover check interval %s plus stability duration %s",
			ErrInvalidStableOptions, o.Timeout, o.CheckInterval, o.StabilityDuration)
	}
	return nil
}

// StabilityTimeoutError is returned when the grid never stayed unchanged for
// StabilityDuration before Timeout.
type StabilityTimeoutError struct {
	Source            string
	StabilityDuration time.Duration
	Timeout           time.Duration
	Last              error
}

func (e *StabilityTimeoutError) Error() string {
	source := e.Source
	if source == "" {
		source = "table"
	}
	msg := fmt.Sprintf("%s did not stay unchanged for %s within %s", source, e.StabilityDuration, e.Timeout)
	if e.Last != nil {
		msg += ": " + cleanMessage(e.Last.Error())
	}
	return msg
}

// Unwrap returns the last observed failure.
func (e *StabilityTimeoutError) Unwrap() error {
	return e.Last
}

// Is reports whether target is ErrStabilityTimeout.
func (e *StabilityTimeoutError) Is(target error) bool {
	return target == ErrStabilityTimeout
}

// WaitForStable polls snapshot until two or more consecutive snapshots have
// been equal for at least opts.StabilityDuration. A snapshot that fails
// resets the window. Options are validated before the first snapshot.
func WaitForStable(ctx context.Context, snapshot Snapshot, opts StableOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	log := logger.OrNop(opts.Logger).With(logger.String("source", opts.Source))

	var (
		last        grid.Grid
		haveLast    bool
		stableSince time.Time
	)

	check := func(ctx context.Context) error {
		snap, err := snapshot(ctx)
		now := time.Now()
		if err != nil {
			haveLast = false
			return fmt.Errorf("source not extractable: %w", err)
		}

		if !haveLast || !snap.Equal(last) {
			if haveLast {
				log.Debug("grid changed", logger.Int("rows", len(snap)))
			}
			last = snap.Clone()
			haveLast = true
			stableSince = now
			return errChanged
		}

		if quiet := now.Sub(stableSince); quiet < opts.StabilityDuration {
			return fmt.Errorf("grid unchanged for %s, waiting for %s", quiet, opts.StabilityDuration)
		}

		log.Debug("grid stable", logger.Int("rows", len(snap)), logger.Duration("stability", opts.StabilityDuration))
		return nil
	}

	err := Until(ctx, check, Options{
		Timeout:  opts.Timeout,
		Interval: opts.CheckInterval,
		Context:  opts.Source,
		Logger:   logger.NewNop(),
	})

	var timeout *TimeoutError
	if errors.As(err, &timeout) {
		log.Warn("grid did not stabilize", logger.Duration("stability", opts.StabilityDuration), logger.Duration("timeout", opts.Timeout))
		return &StabilityTimeoutError{
			Source:            opts.Source,
			StabilityDuration: opts.StabilityDuration,
			Timeout:           opts.Timeout,
			Last:              timeout.Last,
		}
	}
	return err
}
