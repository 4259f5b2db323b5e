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

/*
Package timesync estimates the clock offset between the local host and
a remote HTTP server using nothing but the server's 1-second-resolution
Date header.

The estimate is built in four phases, run in strict sequence by
Synchronizer.Synchronize:

 1. Profile the round-trip latency to the target (package latency).
 2. Find the whole-second component of the offset by timing a probe to
    land on a second boundary.
 3. Binary-search the local-clock fraction at which the server's second
    rolls over, giving the sub-second component.
 4. Verify the combined offset by predicting the server's Date at two
    known offsets from the inferred boundary.

Each phase only trusts RTT samples that pass latency.Profile's Tukey
fence; everything else is discarded and retried, bounded by a per-phase
retry cap (retryCap consecutive rejections fail the phase).
*/
package timesync
