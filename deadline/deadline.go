// Copyright 2024 The Solaris Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package deadline

import (
	"context"
	goerrors "errors"
	"fmt"
	"time"

	"github.com/solarisdb/timex/clock"
	errors2 "github.com/solarisdb/timex/errors"
)

type (
	outcomeKind int

	// outcome is the closed set of the race child results. Exactly one
	// outcome comes from each of the two children, the consumption loop
	// matches them exhaustively.
	outcome[T any] struct {
		kind outcomeKind
		val  T
		err  error
	}
)

const (
	// the operation finished with its value or error
	outcomeOperation outcomeKind = iota
	// the timer slept through to the deadline
	outcomeDeadline
	// the timer was canceled, which is a signal to keep waiting, not an error
	outcomeTimerCanceled
	// the clock could not provide the timer at all
	outcomeClockFailure
)

// OnClock runs f with the best-effort deadline measured by clk: f starts
// together with a timer for the until instant, and the first finisher defines
// the result. If f wins, its value and error are returned as is. If the timer
// wins, errors.ErrDeadlineExceeded is returned and the f invocation is
// canceled via its context. When ctx itself is closed, the race keeps waiting
// for f, which must observe the cancellation cooperatively, and returns
// whatever f produced - the race never replaces the f error with its own one.
//
// The until instant must be produced by clk. Both children are always signaled
// to cancel before OnClock returns, so nothing is left running unsupervised.
func OnClock[T any](ctx context.Context, until clock.Instant, tolerance time.Duration, clk clock.Clock,
	f func(ctx context.Context) (T, error)) (T, error) {
	rctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// cap 2, so neither child ever blocks reporting its outcome
	outs := make(chan outcome[T], 2)
	go func() {
		v, err := f(rctx)
		outs <- outcome[T]{kind: outcomeOperation, val: v, err: err}
	}()
	go func() {
		err := clk.Sleep(rctx, until, tolerance)
		switch {
		case err == nil:
			outs <- outcome[T]{kind: outcomeDeadline}
		case rctx.Err() != nil && goerrors.Is(err, rctx.Err()):
			outs <- outcome[T]{kind: outcomeTimerCanceled}
		default:
			outs <- outcome[T]{kind: outcomeClockFailure, err: err}
		}
	}()

	var zero T
	for i := 0; i < 2; i++ {
		o := <-outs
		switch o.kind {
		case outcomeOperation:
			return o.val, o.err
		case outcomeDeadline:
			return zero, errors2.ErrDeadlineExceeded
		case outcomeTimerCanceled:
			// the operation outcome is the next one, keep consuming
		case outcomeClockFailure:
			return zero, o.err
		default:
			panic(fmt.Sprintf("unknown race outcome kind=%d", o.kind))
		}
	}
	// both children reported a non-terminal outcome, which must not happen
	panic("the deadline race received no terminal outcome")
}

// Do is the convenience form of OnClock on the shared real clock, see
// clock.Default()
func Do[T any](ctx context.Context, until clock.Instant, tolerance time.Duration,
	f func(ctx context.Context) (T, error)) (T, error) {
	return OnClock(ctx, until, tolerance, clock.Default(), f)
}
