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

package stats

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/facebookincubator/httpclock/timesync"
)

// Exporter is a Prometheus registry populated from Synchronize results.
// Unlike a scraping exporter, it is fed directly by the caller via its
// Observe* methods; there is no separate process to poll.
type Exporter struct {
	registry *prometheus.Registry

	rtt            *prometheus.HistogramVec
	rejectedProbes *prometheus.CounterVec
	offset         *prometheus.GaugeVec
	verified       *prometheus.GaugeVec
	runsTotal      *prometheus.CounterVec
}

// NewExporter returns an Exporter with all metrics registered and
// zeroed.
func NewExporter() *Exporter {
	e := &Exporter{
		registry: prometheus.NewRegistry(),
		rtt: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "httpclock",
			Name:      "probe_rtt_seconds",
			Help:      "Median round-trip time of each completed run's latency profile, by target.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"target"}),
		rejectedProbes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "httpclock",
			Name:      "probe_rejected_total",
			Help:      "Probe attempts discarded by the Tukey RTT fence or a transport error, by target.",
		}, []string{"target"}),
		offset: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "httpclock",
			Name:      "offset_seconds",
			Help:      "Most recently measured clock offset, positive meaning the target is ahead.",
		}, []string{"target"}),
		verified: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "httpclock",
			Name:      "verification_passed",
			Help:      "1 if the most recent run's offset was verified, 0 otherwise.",
		}, []string{"target"}),
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "httpclock",
			Name:      "runs_total",
			Help:      "Synchronization runs, partitioned by target and outcome.",
		}, []string{"target", "outcome"}),
	}
	e.registry.MustRegister(e.rtt, e.rejectedProbes, e.offset, e.verified, e.runsTotal)
	return e
}

// ObserveResult records a successful Synchronize call against target.
func (e *Exporter) ObserveResult(target string, res *timesync.Result) {
	e.offset.WithLabelValues(target).Set(res.Offset)
	verifiedValue := 0.0
	if res.Verified {
		verifiedValue = 1.0
	}
	e.verified.WithLabelValues(target).Set(verifiedValue)
	e.runsTotal.WithLabelValues(target, "ok").Inc()

	if res.Latency != nil {
		e.rtt.WithLabelValues(target).Observe(res.Latency.Median.Seconds())
	}
}

// ObserveFailure records a Synchronize call that returned an error.
func (e *Exporter) ObserveFailure(target string) {
	e.runsTotal.WithLabelValues(target, "error").Inc()
}

// ObserveRejectedProbe increments the rejected-probe counter for
// target. The pipeline reports each discarded probe attempt through
// timesync.Config.OnRejectedProbe; callers wire that hook to this
// method, as cmd/httpclock does when metrics are enabled.
func (e *Exporter) ObserveRejectedProbe(target string) {
	e.rejectedProbes.WithLabelValues(target).Inc()
}

// Registry exposes the underlying *prometheus.Registry for tests and
// for callers that want to serve it via their own mux.
func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

// Serve blocks, exposing the registry's metrics at /metrics on addr.
func (e *Exporter) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{EnableOpenMetrics: true}))
	log.Infof("prometheus exporter listening on %s", addr)
	return http.ListenAndServe(addr, mux) //nolint:gosec
}

// Addr is a convenience for formatting a ":port" style listen address.
func Addr(port int) string {
	return fmt.Sprintf(":%d", port)
}
