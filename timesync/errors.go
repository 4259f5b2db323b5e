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

import "errors"

// Sentinel errors returned by this package. Use errors.Is to test for
// a particular kind; lower-level causes (transport failures, malformed
// headers) are wrapped with %w and remain inspectable.
var (
	// ErrInvalidArgument covers a malformed URL or an out-of-domain
	// parameter passed to a constructor or phase function.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNetworkUnstable means a phase's retry cap (retryCap
	// consecutive fence-rejected probes) was exhausted.
	ErrNetworkUnstable = errors.New("network too unstable to complete phase")

	// ErrUnstableBoundary means phase 3 observed a date change that
	// was neither equal to the elapsed whole seconds nor one more
	// than that — the server's clock moved in a way the search cannot
	// reconcile with a single, stationary second boundary.
	ErrUnstableBoundary = errors.New("could not localize server second boundary")
)

// retryCap bounds the "keep probing until an in-fence RTT arrives"
// loops in phases 2-4. Without a cap, a persistently pathological
// network would spin the pipeline forever.
const retryCap = 20
