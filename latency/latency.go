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

package latency

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/facebookincubator/httpclock/clock"
)

// ErrInsufficientSamples is returned when fewer than minSamples usable
// probes were collected; quartiles are undefined below that.
var ErrInsufficientSamples = errors.New("insufficient samples to compute quartiles")

// minSamples is the smallest sample count for which Q1/Q3 are defined.
const minSamples = 4

// DefaultSamples and DefaultInterval are the profiler's defaults,
// matching the reference measurement's request_count and interval.
const (
	DefaultSamples  = 10
	DefaultInterval = 500 * time.Millisecond
)

// prober is the subset of probe.Prober that Measure needs; it exists
// so tests can substitute a fake without network access.
type prober interface {
	Probe(ctx context.Context, url string) (int64, time.Duration, error)
}

// Profile is the five-number summary (plus mean) of a round-trip time
// sample. It satisfies Min <= Q1 <= Median <= Q3 <= Max and Min <= Mean
// <= Max for any non-empty, non-negative input.
type Profile struct {
	Min    time.Duration
	Q1     time.Duration
	Median time.Duration
	Mean   time.Duration
	Q3     time.Duration
	Max    time.Duration
}

// IQR is the interquartile range, Q3-Q1.
func (p *Profile) IQR() time.Duration {
	return p.Q3 - p.Q1
}

// InRange reports whether rtt falls within the Tukey fence
// [Q1 - margin*IQR, Q3 + margin*IQR]. margin defaults to 1.5 when 0 is
// passed; most callers should use InRangeDefault instead.
func (p *Profile) InRange(rtt time.Duration, margin float64) bool {
	if margin == 0 {
		margin = defaultFenceMargin
	}
	iqr := float64(p.IQR())
	lower := float64(p.Q1) - margin*iqr
	upper := float64(p.Q3) + margin*iqr
	f := float64(rtt)
	return f >= lower && f <= upper
}

// defaultFenceMargin is the Tukey fence multiplier used throughout the
// pipeline to reject RTT outliers.
const defaultFenceMargin = 1.5

// InRangeDefault applies InRange with the standard 1.5x IQR margin.
func (p *Profile) InRangeDefault(rtt time.Duration) bool {
	return p.InRange(rtt, defaultFenceMargin)
}

// Measure issues n serial HEAD probes against url, sleeping interval
// between each, and returns the resulting Profile. n must be at least
// minSamples (4); quartiles are undefined otherwise.
func Measure(ctx context.Context, p prober, url string, n int, interval time.Duration) (*Profile, error) {
	if n < minSamples {
		return nil, fmt.Errorf("%w: got %d, need at least %d", ErrInsufficientSamples, n, minSamples)
	}

	rtts := make([]time.Duration, 0, n)
	for i := 0; i < n; i++ {
		_, rtt, err := p.Probe(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("probe %d/%d: %w", i+1, n, err)
		}
		rtts = append(rtts, rtt)

		if i != n-1 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			clock.PreciseWait(interval) //nolint:errcheck // interval is always non-negative
		}
	}

	return buildProfile(rtts), nil
}

func buildProfile(rtts []time.Duration) *Profile {
	sorted := append([]time.Duration(nil), rtts...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	n := len(sorted)
	var sum time.Duration
	for _, r := range sorted {
		sum += r
	}

	return &Profile{
		Min:    sorted[0],
		Q1:     percentile(sorted, 0.25),
		Median: percentile(sorted, 0.50),
		Mean:   sum / time.Duration(n),
		Q3:     percentile(sorted, 0.75),
		Max:    sorted[n-1],
	}
}

// percentile computes the p-th quantile (p in [0,1]) of a sorted
// sample using the "exclusive" method: the target rank is p*(n+1)
// (1-indexed), interpolated linearly between the two bracketing order
// statistics and clamped to the ends of the sample.
func percentile(sorted []time.Duration, p float64) time.Duration {
	n := len(sorted)
	rank := p * float64(n+1)
	if rank <= 1 {
		return sorted[0]
	}
	if rank >= float64(n) {
		return sorted[n-1]
	}
	lo := int(rank)
	frac := rank - float64(lo)
	lower := sorted[lo-1]
	upper := sorted[lo]
	return lower + time.Duration(frac*float64(upper-lower))
}
