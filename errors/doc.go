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
Package errors contains the timing error taxonomy used across the module. It is
proposed to use the globally defined error variables (ErrDeadlineExceeded,
ErrCanceled...) to describe the situations, so the callers may distinguish the
outcomes by the error identity rather than by a message text.

The package also contains some gRPC helper functions that allow to encode the
errors to the gRPC code-based errors, so the errors can be passed through a
distributed system.
*/
package errors
