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
Package probe issues HTTP HEAD requests against a remote server and
reports the server's advertised Date (truncated to whole Unix seconds)
together with the round-trip time the client measured for the request.

A single Prober owns one pooled http.Client/http.Transport for its
entire lifetime so that connection reuse keeps the RTT distribution
stationary across a run; tearing the pool down between probes would
introduce TLS-handshake outliers the latency fence would have to reject.
*/
package probe
