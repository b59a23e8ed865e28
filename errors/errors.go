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
package errors

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/status"
)

var (
	// ErrDeadlineExceeded indicates that a deadline was reached before the
	// guarded operation could complete. The value identity matters, callers
	// should test for it with Is() and must not rely on the message text.
	ErrDeadlineExceeded = fmt.Errorf("deadline exceeded")

	// ErrCanceled indicates that a pending operation was given up before its
	// natural completion, e.g. a suspension failed by the run watchdog.
	ErrCanceled = fmt.Errorf("canceled")

	// ErrClosed indicates an operation over an object which is closed already
	ErrClosed = fmt.Errorf("closed")

	// ErrInvalid indicates that the operation parameters are not acceptable
	ErrInvalid = fmt.Errorf("invalid")

	// ErrInternal indicates an unexpected internal state
	ErrInternal = fmt.Errorf("internal")
)

// Is reports whether err matches one of the package sentinels. It extends the
// standard errors.Is by unwrapping gRPC code-based errors, so an error received
// from a remote call can be tested against the same sentinel as a local one.
func Is(err, target error) bool {
	if errors.Is(err, target) {
		return true
	}
	if err == nil {
		return false
	}
	if _, ok := status.FromError(err); ok {
		return FromGRPCError(err) == target
	}
	return false
}
