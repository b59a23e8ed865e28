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
package clock

import (
	"context"
	"time"
)

type (
	// Instant is a point in time counted from the owning Clock's origin.
	// Instants are totally ordered, but only instants produced by the same
	// Clock instance may be compared to each other.
	Instant int64

	// Clock provides the current time and the ability to suspend the calling
	// goroutine until a moment of that time. The realization may be the real
	// wall clock (see New) or a manually driven one (see the vclock package).
	Clock interface {
		// Now returns the current instant of the clock
		Now() Instant

		// MinimumResolution returns the smallest duration the clock is able
		// to distinguish
		MinimumResolution() time.Duration

		// Sleep blocks the calling goroutine until the clock reaches the
		// until instant or ctx is closed, whatever happens first. If until is
		// strictly in the past, Sleep returns nil immediately. If ctx is
		// closed before the instant is reached, ctx.Err() is returned. The
		// tolerance is advisory, the clock may fire the wake-up up to the
		// tolerance later to coalesce the wake-ups with other sleepers.
		Sleep(ctx context.Context, until Instant, tolerance time.Duration) error
	}

	realClock struct {
		origin time.Time
	}
)

// Add returns the instant shifted by d, which may be negative
func (i Instant) Add(d time.Duration) Instant {
	return i + Instant(d)
}

// Sub returns the duration between the two instants of the same clock
func (i Instant) Sub(o Instant) time.Duration {
	return time.Duration(i - o)
}

// Before reports whether the instant i is before o
func (i Instant) Before(o Instant) bool {
	return i < o
}

// After reports whether the instant i is after o
func (i Instant) After(o Instant) bool {
	return i > o
}

// String implements fmt.Stringer
func (i Instant) String() string {
	return time.Duration(i).String()
}

// New returns the Clock backed by the process monotonic time. The clock origin
// is the moment of the New() call.
func New() Clock {
	return &realClock{origin: time.Now()}
}

var defaultClock = New()

// Default returns the shared real clock. It should be used by the code which
// has no specific Clock provided. Tests should construct their own clock (see
// the vclock package) instead of relying on the shared one.
func Default() Clock {
	return defaultClock
}

func (c *realClock) Now() Instant {
	return Instant(time.Since(c.origin))
}

func (c *realClock) MinimumResolution() time.Duration {
	return time.Nanosecond
}

func (c *realClock) Sleep(ctx context.Context, until Instant, tolerance time.Duration) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	d := until.Sub(c.Now())
	if d < 0 {
		return nil
	}
	tmr := time.NewTimer(d)
	defer tmr.Stop()
	select {
	case <-tmr.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
