/*
Copyright (c) Facebook, Inc. and its affiliates.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package timesync

import (
	"time"

	"github.com/facebookincubator/httpclock/clock"
)

// Clock is the subset of package clock's primitives the estimator
// phases need. It exists as an interface, rather than calling package
// clock directly, so tests can substitute a deterministic fake instead
// of sleeping and busy-spinning in real time.
type Clock interface {
	Monotonic() time.Duration
	Wall() time.Time
	PreciseWait(d time.Duration) error
	WaitUntilFraction(f float64) error
}

// systemClock is the production Clock, delegating to package clock.
type systemClock struct{}

func (systemClock) Monotonic() time.Duration          { return clock.Monotonic() }
func (systemClock) Wall() time.Time                   { return clock.Wall() }
func (systemClock) PreciseWait(d time.Duration) error  { return clock.PreciseWait(d) }
func (systemClock) WaitUntilFraction(f float64) error  { return clock.WaitUntilFraction(f) }

func wallSeconds(c Clock) float64 {
	t := c.Wall()
	return float64(t.Unix()) + float64(t.Nanosecond())/float64(time.Second)
}
