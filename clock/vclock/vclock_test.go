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
	"sync"
	"testing"
	"time"

	"github.com/solarisdb/timex/clock"
	errors2 "github.com/solarisdb/timex/errors"
	"github.com/stretchr/testify/assert"
)

func TestClock_Contract(t *testing.T) {
	c := New()
	clock.TestClock(t, c, c.Advance)
}

func TestSleep_Past(t *testing.T) {
	c := New()
	c.Advance(10 * time.Millisecond)
	assert.Nil(t, c.Sleep(context.Background(), c.Now().Add(-time.Millisecond), 0))
	assert.Equal(t, 0, c.Pending())
}

func TestSleep_AtNowNeedsAdvance(t *testing.T) {
	c := New()
	c.Advance(5 * time.Millisecond)
	target := c.Now()
	done := make(chan error, 1)
	go func() {
		done <- c.Sleep(context.Background(), target, 0)
	}()
	waitPending(t, c, 1)
	select {
	case err := <-done:
		t.Fatalf("the sleep at the current instant must not complete without an advance: %v", err)
	default:
	}
	c.Advance(0)
	assert.Nil(t, <-done)
	assert.Equal(t, target, c.Now())
}

func TestSleep_PreCanceled(t *testing.T) {
	c := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.Sleep(ctx, c.Now().Add(time.Hour), 0)
	assert.Equal(t, context.Canceled, err)
	assert.Equal(t, 0, c.Pending())
}

func TestSleep_CancelRemovesSuspension(t *testing.T) {
	c := New()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- c.Sleep(ctx, c.Now().Add(time.Hour), 0)
	}()
	waitPending(t, c, 1)
	cancel()
	assert.Equal(t, context.Canceled, <-done)
	waitPending(t, c, 0)
}

func TestAdvance_FireOrder(t *testing.T) {
	c := New()
	var lock sync.Mutex
	var order []int

	sleepAt := func(idx int, d time.Duration) {
		target := clock.Instant(0).Add(d)
		go func() {
			assert.Nil(t, c.Sleep(context.Background(), target, 0))
			lock.Lock()
			order = append(order, idx)
			lock.Unlock()
		}()
		waitPending(t, c, idx+1)
	}

	sleepAt(0, 30*time.Millisecond)
	sleepAt(1, 10*time.Millisecond)
	sleepAt(2, 20*time.Millisecond)
	sleepAt(3, 20*time.Millisecond) // same deadline as 2, registered after it

	// the advance up to the farthest deadline fires everything on the way,
	// the farthest one included
	c.Advance(30 * time.Millisecond)
	waitPending(t, c, 0)
	for i := 0; i < 200; i++ {
		lock.Lock()
		n := len(order)
		lock.Unlock()
		if n == 4 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	lock.Lock()
	defer lock.Unlock()
	assert.Equal(t, []int{1, 2, 3, 0}, order)
	assert.Equal(t, clock.Instant(0).Add(30*time.Millisecond), c.Now())
}

func TestAdvance_AtRest(t *testing.T) {
	c := New()
	c.AdvanceTo(clock.Instant(0).Add(100 * time.Millisecond))
	assert.Equal(t, clock.Instant(0).Add(100*time.Millisecond), c.Now())

	// never backward
	c.AdvanceTo(clock.Instant(0).Add(50 * time.Millisecond))
	assert.Equal(t, clock.Instant(0).Add(100*time.Millisecond), c.Now())
	c.Advance(-10 * time.Millisecond)
	assert.Equal(t, clock.Instant(0).Add(100*time.Millisecond), c.Now())

	c.Advance(25 * time.Millisecond)
	assert.Equal(t, clock.Instant(0).Add(125*time.Millisecond), c.Now())
}

func TestCheckSuspensions(t *testing.T) {
	c := New()
	assert.Nil(t, c.CheckSuspensions())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- c.Sleep(ctx, c.Now().Add(time.Minute), 0)
	}()
	waitPending(t, c, 1)
	err := c.CheckSuspensions()
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "pending")

	cancel()
	<-done
	waitPending(t, c, 0)
	assert.Nil(t, c.CheckSuspensions())
}

func TestRun_Drains(t *testing.T) {
	c := New()
	done := make(chan struct{})
	go func() {
		defer close(done)
		// the second sleep is registered only after the first one fires
		assert.Nil(t, c.Sleep(context.Background(), c.Now().Add(10*time.Millisecond), 0))
		assert.Nil(t, c.Sleep(context.Background(), c.Now().Add(20*time.Millisecond), 0))
	}()
	go func() {
		assert.Nil(t, c.Sleep(context.Background(), clock.Instant(0).Add(15*time.Millisecond), 0))
	}()
	waitPending(t, c, 2)

	assert.Nil(t, c.Run(5*time.Second))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("the chained sleeper did not finish")
	}
	assert.Equal(t, 0, c.Pending())
	assert.Nil(t, c.CheckSuspensions())
	assert.Equal(t, clock.Instant(0).Add(30*time.Millisecond), c.Now())
}

func TestRun_NothingPending(t *testing.T) {
	c := New()
	assert.Nil(t, c.Run(time.Second))
	assert.Equal(t, clock.Instant(0), c.Now())
}

func TestRun_WatchdogExpires(t *testing.T) {
	c := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stop := make(chan error, 1)
	go func() {
		// re-sleeps forever, so the clock can never reach the quiescence
		for {
			if err := c.Sleep(ctx, c.Now().Add(10*time.Millisecond), 0); err != nil {
				stop <- err
				return
			}
		}
	}()
	waitPending(t, c, 1)

	err := c.Run(50 * time.Millisecond)
	assert.NotNil(t, err)
	assert.True(t, errors2.Is(err, errors2.ErrCanceled))
	assert.Contains(t, err.Error(), "quiescence")

	cancel()
	assert.NotNil(t, <-stop)
	waitPending(t, c, 0)
}

func waitPending(t *testing.T, c *Clock, n int) {
	for i := 0; i < 500; i++ {
		if c.Pending() == n {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("expected %d pending suspension(s), but got %d", n, c.Pending())
}
