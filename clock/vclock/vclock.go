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
package vclock

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/solarisdb/timex/clock"
	"github.com/solarisdb/timex/errors"
	"github.com/solarisdb/timex/logging"
)

type (
	// Clock is the manually driven clock.Clock implementation. Its time stays
	// still until Advance(), AdvanceTo() or Run() moves it forward, so the
	// timing scenarios may be tested deterministically without waiting the
	// real wall time. Every test should construct its own instance, the Clock
	// must not be shared between the independent scenarios.
	//
	// All the Clock methods are safe for the concurrent use.
	Clock struct {
		logger logging.Logger

		// lock guards now, susps and expireDiag. The suspensions are never
		// touched outside of the lock.
		lock  sync.Mutex
		now   clock.Instant
		susps []*suspension

		// runGen fences the Run watchdog: an expiry of an already finished
		// run must not touch the suspensions of a later one
		runGen     int
		expireDiag string
	}

	// suspension is a registered "sleep until deadline" request. The done
	// channel has the capacity 1, so a completion can always be delivered
	// without blocking, even if the sleeper gave up on the cancel branch.
	suspension struct {
		id       string
		deadline clock.Instant
		done     chan error
	}
)

var _ clock.Clock = (*Clock)(nil)

// New returns the new virtual clock set to its zero instant
func New() *Clock {
	return &Clock{logger: logging.NewLogger("vclock")}
}

// Now returns the current instant of the simulated time
func (c *Clock) Now() clock.Instant {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.now
}

// MinimumResolution is a nanosecond, the Instant granularity
func (c *Clock) MinimumResolution() time.Duration {
	return time.Nanosecond
}

// Sleep blocks the calling goroutine until the simulated time reaches the
// until instant or ctx is closed. An instant strictly in the past returns
// immediately. An instant equal to the current time still registers a
// suspension, which will be released by the next Advance() call only. The
// tolerance is ignored, the virtual clock always fires at the exact deadline.
func (c *Clock) Sleep(ctx context.Context, until clock.Instant, tolerance time.Duration) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	c.lock.Lock()
	if until.Before(c.now) {
		c.lock.Unlock()
		return nil
	}
	s := &suspension{id: ulid.Make().String(), deadline: until, done: make(chan error, 1)}
	c.susps = append(c.susps, s)
	c.lock.Unlock()
	c.logger.Tracef("registered suspension %s for %s", s.id, s.deadline)

	select {
	case err := <-s.done:
		return err
	case <-ctx.Done():
		c.removeSuspension(s.id)
		return ctx.Err()
	}
}

// Advance moves the simulated time forward by d. See AdvanceTo.
func (c *Clock) Advance(d time.Duration) {
	c.lock.Lock()
	target := c.now.Add(d)
	c.lock.Unlock()
	c.AdvanceTo(target)
}

// AdvanceTo moves the simulated time forward up to target, releasing every
// suspension whose deadline is reached on the way. The suspensions fire one at
// a time in the deadline order, stable by the registration order for the equal
// deadlines, and the time is set to each deadline before its sleeper wakes up.
// The woken sleeper gets a chance to run (and maybe to register a new
// suspension before target) before the next one is evaluated. A target in the
// past is a no-op, the time never goes backward.
func (c *Clock) AdvanceTo(target clock.Instant) {
	for {
		c.lock.Lock()
		sort.SliceStable(c.susps, func(i, j int) bool {
			return c.susps[i].deadline.Before(c.susps[j].deadline)
		})
		if len(c.susps) == 0 || c.susps[0].deadline.After(target) {
			if target.After(c.now) {
				c.now = target
			}
			c.lock.Unlock()
			return
		}
		s := c.susps[0]
		c.susps = c.susps[1:]
		if s.deadline.After(c.now) {
			c.now = s.deadline
		}
		c.lock.Unlock()

		c.logger.Tracef("firing suspension %s at %s", s.id, s.deadline)
		s.done <- nil
		gosched()
	}
}

// Pending returns the number of the registered suspensions
func (c *Clock) Pending() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return len(c.susps)
}

// CheckSuspensions lets the other goroutines to make a progress and then
// returns an error if some suspensions are still registered. It allows a test
// to assert that nothing is waiting on the clock anymore.
func (c *Clock) CheckSuspensions() error {
	gosched()
	c.lock.Lock()
	defer c.lock.Unlock()
	if len(c.susps) == 0 {
		return nil
	}
	dds := make([]string, len(c.susps))
	for i, s := range c.susps {
		dds[i] = s.deadline.String()
	}
	return fmt.Errorf("%d suspension(s) are still pending at %s: [%s]", len(c.susps), c.now, strings.Join(dds, ", "))
}

// Run drives the clock automatically until no suspensions are left, advancing
// the simulated time to the earliest pending deadline over and over again. The
// timeout bounds the REAL time the run may take: when it expires, every
// pending suspension is failed with errors.ErrCanceled and Run returns the
// diagnostic error. Exactly one of the two outcomes happens - either the
// registry is drained and nil is returned, or the watchdog fires and the
// error is returned.
func (c *Clock) Run(timeout time.Duration) error {
	c.lock.Lock()
	c.runGen++
	gen := c.runGen
	c.expireDiag = ""
	c.lock.Unlock()

	wd := time.AfterFunc(timeout, func() { c.expire(gen, timeout) })
	defer wd.Stop()
	defer func() {
		c.lock.Lock()
		c.runGen++
		c.lock.Unlock()
	}()

	for {
		c.lock.Lock()
		if c.expireDiag != "" {
			diag := c.expireDiag
			c.lock.Unlock()
			return fmt.Errorf("%s: %w", diag, errors.ErrCanceled)
		}
		if len(c.susps) == 0 {
			c.lock.Unlock()
			return nil
		}
		target := c.susps[0].deadline
		for _, s := range c.susps[1:] {
			if s.deadline.Before(target) {
				target = s.deadline
			}
		}
		c.lock.Unlock()

		c.AdvanceTo(target)
		gosched()
	}
}

// expire is the Run watchdog action - fails every pending suspension and
// leaves the diagnostic for the driver loop
func (c *Clock) expire(gen int, timeout time.Duration) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.runGen != gen {
		// the run is over already
		return
	}
	c.expireDiag = fmt.Sprintf("the clock did not reach quiescence in %s of real time, %d suspension(s) failed at %s",
		timeout, len(c.susps), c.now)
	c.logger.Warnf("%s", c.expireDiag)
	for _, s := range c.susps {
		s.done <- fmt.Errorf("the suspension for %s is failed by the run watchdog: %w", s.deadline, errors.ErrCanceled)
	}
	c.susps = nil
}

func (c *Clock) removeSuspension(id string) {
	c.lock.Lock()
	defer c.lock.Unlock()
	for i, s := range c.susps {
		if s.id == id {
			c.susps = append(c.susps[:i], c.susps[i+1:]...)
			return
		}
	}
}

// gosched gives the released sleepers a chance to run before the caller
// touches the registry again
func gosched() {
	time.Sleep(time.Millisecond)
}
