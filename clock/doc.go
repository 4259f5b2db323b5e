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
Package clock provides the low-level time primitives the rest of this
module builds on: a monotonic clock for measuring elapsed time, a wall
clock for reading the local time of day, a sub-millisecond precise wait,
and fractional-second scheduling.

Nothing here steers or steps a clock. It only reads time and sleeps
accurately, which is all an HTTP-based offset measurement needs.
*/
package clock
