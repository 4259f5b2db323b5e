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
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// fakeClock is a deterministic Clock used by the round-trip and
// end-to-end scenario tests so they never actually sleep: every wait
// advances a simulated wall/monotonic clock instantaneously.
type fakeClock struct {
	wallSec float64
	mono    time.Duration
}

func newFakeClock(startWallSec float64) *fakeClock {
	return &fakeClock{wallSec: startWallSec}
}

func (f *fakeClock) Monotonic() time.Duration { return f.mono }

func (f *fakeClock) Wall() time.Time {
	sec := int64(math.Floor(f.wallSec))
	nsec := int64((f.wallSec - math.Floor(f.wallSec)) * float64(time.Second))
	return time.Unix(sec, nsec).UTC()
}

func (f *fakeClock) PreciseWait(d time.Duration) error {
	if d < 0 {
		return errInvalidDuration
	}
	f.advance(d.Seconds())
	return nil
}

func (f *fakeClock) WaitUntilFraction(frac float64) error {
	if frac < 0 || frac >= 1.0 {
		return errInvalidFraction
	}
	now := f.wallSec
	target := math.Floor(now) + frac
	if now+0.5 > target {
		target++
	}
	f.advance(target - now)
	return nil
}

func (f *fakeClock) advance(sec float64) {
	f.wallSec += sec
	f.mono += time.Duration(sec * float64(time.Second))
}

// simProber simulates an HTTP server whose clock runs offsetSeconds
// ahead of the fakeClock it shares with the Synchronizer under test.
// Each call consumes one entry from rtts (cycling if exhausted) to
// model the round trip; the server is assumed to process the request
// (and therefore stamp its Date header) at the midpoint of the RTT,
// matching the one-way-latency assumption the estimator itself makes.
type simProber struct {
	clock         *fakeClock
	offsetSeconds float64
	rtts          []time.Duration
	calls         int
}

func (s *simProber) Probe(ctx context.Context, url string) (int64, time.Duration, error) {
	rtt := s.rtts[s.calls%len(s.rtts)]
	s.calls++

	sendWall := s.clock.wallSec
	s.clock.advance(rtt.Seconds())

	serverWall := sendWall + rtt.Seconds()/2 + s.offsetSeconds
	return int64(math.Floor(serverWall)), rtt, nil
}

var (
	errInvalidDuration = errors.New("fakeClock: negative wait")
	errInvalidFraction = errors.New("fakeClock: fraction out of [0, 1)")
)

// lognormalProber is like simProber, but draws each call's RTT from a
// log-normal distribution with the given median instead of cycling a
// fixed slice, for testing the estimator against noisy, non-constant
// latency instead of the idealized constant-RTT scenarios.
type lognormalProber struct {
	clock         *fakeClock
	offsetSeconds float64
	medianRTT     time.Duration
	sigma         float64
	rng           *rand.Rand
}

func (p *lognormalProber) Probe(ctx context.Context, url string) (int64, time.Duration, error) {
	factor := math.Exp(p.sigma * p.rng.NormFloat64())
	rtt := time.Duration(float64(p.medianRTT) * factor)

	sendWall := p.clock.wallSec
	p.clock.advance(rtt.Seconds())

	serverWall := sendWall + rtt.Seconds()/2 + p.offsetSeconds
	return int64(math.Floor(serverWall)), rtt, nil
}
