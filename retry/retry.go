// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package retry provides a function for retrying an operation.
package retry

import (
	"context"
	"errors"
	"time"

	"zombiezen.com/go/log"
)

// A BackoffStrategy can be called repeatedly to obtain (presumably) increasing
// durations to wait between retries.
type BackoffStrategy interface {
	Duration() time.Duration
}

// Do calls a function repeatedly with exponential backoff until it returns a
// nil error. Do returns an error only if the passed-in function does not return
// nil before the Context is Done or if it returns an error wrapped with
// Permanent. The function is guaranteed to be called at least once.
//
// The operation should be a verb phrase like "talking to Alice" for logging.
func Do(ctx context.Context, operation string, strategy BackoffStrategy, f func() error) error {
	var t *time.Timer
	for {
		err := f()
		if err == nil {
			return nil
		}
		var p *permanentError
		if errors.As(err, &p) {
			return p.err
		}
		d := strategy.Duration()
		if d > 0 {
			log.Warnf(ctx, "Error %s (will retry in %v): %v", operation, d, err)
			if t == nil {
				t = time.NewTimer(d)
				defer t.Stop()
			} else {
				t.Reset(d)
			}
			select {
			case <-t.C:
			case <-ctx.Done():
				return err
			}
		} else {
			log.Warnf(ctx, "Error %s (will retry): %v", operation, err)
			select {
			case <-ctx.Done():
				return err
			default:
			}
		}
	}
}

// Permanent wraps an error so that Do returns it immediately instead of
// retrying. Do returns the original error, not the wrapper.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err}
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Exponential is a BackoffStrategy that starts at Initial and doubles on every
// call up to Max. A zero Max means no limit. The zero value never waits.
type Exponential struct {
	Initial time.Duration
	Max     time.Duration

	next time.Duration
}

// Duration returns the next wait duration.
func (e *Exponential) Duration() time.Duration {
	if e.next == 0 {
		e.next = e.Initial
	}
	d := e.next
	e.next *= 2
	if e.Max > 0 && e.next > e.Max {
		e.next = e.Max
	}
	return d
}
