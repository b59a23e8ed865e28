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
Package clock defines the Clock abstraction - a source of the current time with
the ability to suspend a goroutine until a specific instant of that time. The
package provides the real monotonic clock implementation, the manually driven
one lives in the vclock sub-package. An Instant is always bound to the clock
that produced it, so instants from different clock instances must never be
mixed.
*/
package clock
