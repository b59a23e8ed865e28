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
Package vclock provides the virtual clock - the clock.Clock implementation
whose time moves forward under the explicit control only. A test registers the
sleepers via the ordinary Sleep() calls and then drives the scenario by
Advance()/AdvanceTo(), or lets Run() play all the pending suspensions in the
deadline order under a real-time watchdog.
*/
package vclock
