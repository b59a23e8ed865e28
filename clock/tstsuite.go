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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestClock is a bunch of contract checks run against a Clock implementation.
// The advance function must move the clock forward by d at least; pass nil for
// the clocks which progress on their own (the real one).
func TestClock(t *testing.T, clk Clock, advance func(d time.Duration)) {
	// time never goes backward
	n1 := clk.Now()
	n2 := clk.Now()
	assert.False(t, n2.Before(n1))

	assert.Greater(t, clk.MinimumResolution(), time.Duration(0))

	// sleeping until the strict past returns immediately
	err := clk.Sleep(context.Background(), clk.Now().Add(-time.Millisecond), 0)
	assert.Nil(t, err)

	// a pre-closed context never registers a sleeper
	cctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = clk.Sleep(cctx, clk.Now().Add(time.Hour), 0)
	assert.Equal(t, context.Canceled, err)

	// a normal sleep completes once the clock reaches the instant
	target := clk.Now().Add(20 * time.Millisecond)
	done := make(chan error, 1)
	go func() {
		done <- clk.Sleep(context.Background(), target, 0)
	}()
	if advance != nil {
		time.Sleep(5 * time.Millisecond) // let the sleeper register
		advance(30 * time.Millisecond)
	}
	assert.Nil(t, <-done)
	assert.False(t, clk.Now().Before(target))

	// closing the context interrupts the sleep
	cctx, cancel = context.WithCancel(context.Background())
	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()
	err = clk.Sleep(cctx, clk.Now().Add(time.Hour), 0)
	assert.Equal(t, context.Canceled, err)
}
