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
	"fmt"

	"github.com/google/uuid"

	"github.com/facebookincubator/httpclock/latency"
)

// Result is everything a synchronization run produced: the combined
// offset, its decomposition, the latency profile it was computed from,
// and whether verification confirmed it.
type Result struct {
	// RunID correlates this run's log lines and metric samples.
	RunID uuid.UUID

	// Offset is SecondOffset + MSOffset, in seconds. Positive means
	// the server is ahead of the local clock.
	Offset float64

	// SecondOffset is the whole-second component of Offset.
	SecondOffset int64

	// MSOffset is the sub-second component of Offset, in [0, 1).
	MSOffset float64

	// Latency is the RTT profile phase 1 built for this run.
	Latency *latency.Profile

	// Verified is true only if phase 4 confirmed Offset against
	// independent probes. A false value is a warning, not a failure:
	// Offset is still the best estimate this run produced.
	Verified bool
}

// String renders the offset the way the CLI reports it: seconds to
// millisecond precision, and the equivalent in milliseconds to one
// decimal place.
func (r *Result) String() string {
	return fmt.Sprintf("%+.3f s (%+.1f ms)", r.Offset, r.Offset*1000)
}
