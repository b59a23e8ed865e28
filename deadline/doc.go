// Copyright 2024 The Solaris Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
/*
Package deadline gives a best-effort deadline to an operation which has no
native timeout support. The operation runs in a race against a timer on the
provided clock, the first finisher defines the result: the operation outcome is
returned as is, the timer win turns into errors.ErrDeadlineExceeded.

The operation must honor the cooperative cancellation - it receives a context
which is closed when the operation loses the race or when the caller context is
closed, and it is expected to react to that promptly. The package guarantees
the cancellation delivery, not the preemption of a non-cooperative operation.
*/
package deadline
