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
	"fmt"
	"math"
	"time"

	"github.com/facebookincubator/httpclock/clock"
	"github.com/facebookincubator/httpclock/latency"
	"github.com/facebookincubator/httpclock/probe"
)

// prober is the subset of probe.Prober the estimator phases need.
type prober interface {
	Probe(ctx context.Context, url string) (int64, time.Duration, error)
}

// isUnrecoverableProbeError reports whether err means the server
// itself is unusable for synchronization (no Date header, or one that
// doesn't parse) rather than a transient network hiccup. These are
// surfaced immediately; they are never retried, since retrying can't
// fix a server that doesn't send a usable Date.
func isUnrecoverableProbeError(err error) bool {
	return errors.Is(err, probe.ErrMissingDate) || errors.Is(err, probe.ErrMalformedDate)
}

// probeInFence repeatedly probes url until it gets an RTT that passes
// the latency profile's fence, or gives up after retryCap consecutive
// rejections with ErrNetworkUnstable. targetFraction computes the
// local-clock fraction to schedule the next attempt at; it is
// re-evaluated on every attempt. onRejected, if non-nil, is
// called once per attempt that is discarded (transport error or
// fence-rejected RTT), for callers that want to track rejection rates.
func probeInFence(ctx context.Context, c Clock, p prober, url string, lat *latency.Profile, targetFraction func() float64, onRejected func()) (serverSecond int64, err error) {
	for attempt := 0; attempt < retryCap; attempt++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if err := c.WaitUntilFraction(targetFraction()); err != nil {
			return 0, fmt.Errorf("scheduling probe: %w", err)
		}
		sec, rtt, err := p.Probe(ctx, url)
		if err != nil {
			if isUnrecoverableProbeError(err) {
				return 0, err
			}
			reportRejected(onRejected)
			continue // transport errors are treated as rejected attempts
		}
		if lat.InRangeDefault(rtt) {
			return sec, nil
		}
		reportRejected(onRejected)
	}
	return 0, ErrNetworkUnstable
}

func reportRejected(onRejected func()) {
	if onRejected != nil {
		onRejected()
	}
}

// findSecondOffset determines the whole-second component of Δ by
// sending a probe at local fraction 1 - h, so that it arrives at the
// server near a second boundary rather than in the middle of a second
// (the "1 - h" target is preserved verbatim from the reference
// algorithm this estimator implements).
func findSecondOffset(ctx context.Context, c Clock, p prober, url string, lat *latency.Profile, onRejected func()) (int64, error) {
	h := lat.Median.Seconds() / 2
	var clientPredictedSecond int64

	target := func() float64 { return clock.PosMod(1.0-h, 1.0) }
	serverSecond, err := probeInFenceWithCallback(ctx, c, p, url, lat, target, func() {
		clientPredictedSecond = int64(math.Floor(wallSeconds(c) + h))
	}, onRejected)
	if err != nil {
		return 0, err
	}
	return serverSecond - clientPredictedSecond, nil
}

// probeInFenceWithCallback behaves like probeInFence but invokes
// onScheduled immediately after each scheduled wait and before the
// probe is sent, so the caller can snapshot a wall-clock-derived
// prediction at exactly the moment the request departs.
func probeInFenceWithCallback(ctx context.Context, c Clock, p prober, url string, lat *latency.Profile, targetFraction func() float64, onScheduled func(), onRejected func()) (int64, error) {
	for attempt := 0; attempt < retryCap; attempt++ {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if err := c.WaitUntilFraction(targetFraction()); err != nil {
			return 0, fmt.Errorf("scheduling probe: %w", err)
		}
		onScheduled()
		sec, rtt, err := p.Probe(ctx, url)
		if err != nil {
			if isUnrecoverableProbeError(err) {
				return 0, err
			}
			reportRejected(onRejected)
			continue
		}
		if lat.InRangeDefault(rtt) {
			return sec, nil
		}
		reportRejected(onRejected)
	}
	return 0, ErrNetworkUnstable
}

// boundaryPrecision is the binary search's convergence target: once
// the bracket [left, right] narrows below this, the search stops.
// ceil(log2(1/0.001)) = 10 iterations worst case.
const boundaryPrecision = 0.001

// findMillisecondOffset binary-searches the local-clock fractional
// position at which the server's reported second rolls over, and
// returns the server's sub-second lead over the client, in [0, 1).
func findMillisecondOffset(ctx context.Context, c Clock, p prober, url string, lat *latency.Profile, onRejected func()) (float64, error) {
	h := lat.Median.Seconds() / 2

	baselineTarget := func() float64 { return clock.PosMod(1.0-h, 1.0) }
	previousDate, err := probeInFence(ctx, c, p, url, lat, baselineTarget, onRejected)
	if err != nil {
		return 0, err
	}

	left, right := 0.0, 1.0
	for right-left >= boundaryPrecision {
		mid := (left + right) / 2

		wallStart := c.Monotonic()
		searchTarget := func() float64 { return clock.PosMod(mid-h, 1.0) }
		currentDate, err := probeInFence(ctx, c, p, url, lat, searchTarget, onRejected)
		if err != nil {
			return 0, err
		}
		wallEnd := c.Monotonic()

		elapsed := int64(math.Round((wallEnd - wallStart).Seconds()))
		dateChange := currentDate - previousDate

		switch dateChange {
		case elapsed:
			// The server's second did not tick over at this probe
			// point: the boundary lies later in the second.
			left = mid
		case elapsed + 1:
			// One extra tick occurred: the boundary lies earlier.
			right = mid
		default:
			return 0, fmt.Errorf("%w: date changed by %d over %d elapsed seconds", ErrUnstableBoundary, dateChange, elapsed)
		}
		previousDate = currentDate
	}

	return 1.0 - left, nil
}

// verifyOffset confirms offset by predicting the server's Date at
// known +/-0.5s shifts about the inferred second boundary, for the
// given number of trials (2 probes per trial). It returns false, not
// an error, if any prediction fails to match.
func verifyOffset(ctx context.Context, c Clock, p prober, url string, offset float64, lat *latency.Profile, trials int, onRejected func()) (bool, error) {
	h := lat.Median.Seconds() / 2

	for t := 0; t < trials; t++ {
		for _, shift := range [2]float64{-0.5, 0.5} {
			var predicted int64
			target := func() float64 { return clock.PosMod(-offset-h+shift, 1.0) }
			actual, err := probeInFenceWithCallback(ctx, c, p, url, lat, target, func() {
				predicted = int64(math.Floor(wallSeconds(c) + h + offset))
			}, onRejected)
			if err != nil {
				return false, err
			}
			if predicted != actual {
				return false, nil
			}
		}
	}
	return true, nil
}
