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

package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPosMod(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		want float64
	}{
		{"positive in range", 0.3, 1.0, 0.3},
		{"negative wraps", -0.3, 1.0, 0.7},
		{"exact multiple", 2.0, 1.0, 0.0},
		{"large negative", -2.7, 1.0, 0.3},
		{"non-unit modulus", 5.5, 2.0, 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PosMod(tt.x, tt.y)
			require.InDelta(t, tt.want, got, 1e-9)
			require.GreaterOrEqual(t, got, 0.0)
			require.Less(t, got, tt.y)
		})
	}
}

func TestPreciseWaitRejectsNegative(t *testing.T) {
	err := PreciseWait(-time.Millisecond)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPreciseWaitAccuracy(t *testing.T) {
	if testing.Short() {
		t.Skip("busy-spin timing test skipped in -short mode")
	}
	for _, d := range []time.Duration{0, 5 * time.Millisecond, 150 * time.Millisecond} {
		start := Monotonic()
		require.NoError(t, PreciseWait(d))
		elapsed := Monotonic() - start
		require.InDelta(t, d.Seconds(), elapsed.Seconds(), 0.01)
	}
}

func TestWaitUntilFractionRejectsOutOfRange(t *testing.T) {
	require.ErrorIs(t, WaitUntilFraction(-0.1), ErrInvalidArgument)
	require.ErrorIs(t, WaitUntilFraction(1.0), ErrInvalidArgument)
}

// circularDiff is the shortest distance between a and b on the [0, 1)
// circle, so a target fraction near 0 isn't penalized for landing at
// 0.999 instead of 0.001.
func circularDiff(a, b float64) float64 {
	d := PosMod(a-b, 1.0)
	if d > 0.5 {
		d = 1.0 - d
	}
	return d
}

func TestWaitUntilFractionAccuracy(t *testing.T) {
	if testing.Short() {
		t.Skip("real-time scheduling test skipped in -short mode")
	}
	for _, f := range []float64{0.0, 0.25, 0.75} {
		require.NoError(t, WaitUntilFraction(f))
		got := PosMod(nowSeconds(), 1.0)
		require.Less(t, circularDiff(got, f), 0.002)
	}
}

func TestMonotonicNonDecreasing(t *testing.T) {
	a := Monotonic()
	b := Monotonic()
	require.GreaterOrEqual(t, b, a)
}
