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
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/facebookincubator/httpclock/latency"
	"github.com/facebookincubator/httpclock/probe"
)

// Config controls how a Synchronizer runs the pipeline. The zero value
// is not valid; use NewConfig to get the documented defaults.
type Config struct {
	// InsecureTLS disables certificate verification on the probe's
	// HTTP client.
	InsecureTLS bool
	// Samples is the number of RTT samples the latency profiler (phase
	// 1) collects.
	Samples int
	// SampleInterval is the pause between latency-profiling probes.
	SampleInterval time.Duration
	// VerifyTrials is the number of confirmation round-trips (phase 4)
	// to run; each trial issues 2 probes.
	VerifyTrials int

	// OnRejectedProbe, if non-nil, is called once for every probe
	// attempt discarded by the latency fence or a transport error,
	// across all phases. Callers that export metrics (package stats)
	// use this to drive a rejection counter.
	OnRejectedProbe func()

	// clock lets tests substitute a deterministic Clock; nil selects
	// the real system clock.
	clock Clock
}

// NewConfig returns a Config with the reference algorithm's defaults.
func NewConfig() Config {
	return Config{
		Samples:        latency.DefaultSamples,
		SampleInterval: latency.DefaultInterval,
		VerifyTrials:   1,
	}
}

// Synchronizer runs the four-phase offset estimation pipeline against
// one target URL per call to Synchronize. It owns a single prober (and
// therefore a single pooled http.Client) for the lifetime of the
// Synchronizer so that RTT statistics stay comparable across phases.
type Synchronizer struct {
	cfg   Config
	p     prober
	clock Clock
}

// NewSynchronizer returns a Synchronizer configured per cfg.
func NewSynchronizer(cfg Config) *Synchronizer {
	c := cfg.clock
	if c == nil {
		c = systemClock{}
	}
	return &Synchronizer{
		cfg:   cfg,
		p:     probe.New(cfg.InsecureTLS),
		clock: c,
	}
}

// Synchronize measures the clock offset between the local host and
// target, running phases A-F in order, and returns the combined
// result. Verification failure (phase F) does not produce an error; it
// is reported as a warning via logrus and reflected in Result.Verified.
func (s *Synchronizer) Synchronize(ctx context.Context, target string) (*Result, error) {
	parsed, err := url.Parse(target)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("%w: %q is not an absolute http(s) URL", ErrInvalidArgument, target)
	}

	runID := uuid.New()
	logger := log.WithField("run_id", runID)

	logger.Infof("[phase 1] measuring network latency (%d samples, %s apart)", s.cfg.Samples, s.cfg.SampleInterval)
	lat, err := latency.Measure(ctx, s.p, target, s.cfg.Samples, s.cfg.SampleInterval)
	if err != nil {
		return nil, fmt.Errorf("phase 1 (latency profiling): %w", err)
	}
	logger.Infof("[phase 1] median rtt %s, iqr %s - %s", lat.Median, lat.Q1, lat.Q3)

	logger.Info("[phase 2] determining whole-second offset")
	secondOffset, err := findSecondOffset(ctx, s.clock, s.p, target, lat, s.cfg.OnRejectedProbe)
	if err != nil {
		return nil, fmt.Errorf("phase 2 (second offset): %w", err)
	}
	logger.Infof("[phase 2] whole-second offset: %+d s", secondOffset)

	logger.Info("[phase 3] binary-searching for the millisecond offset")
	msOffset, err := findMillisecondOffset(ctx, s.clock, s.p, target, lat, s.cfg.OnRejectedProbe)
	if err != nil {
		return nil, fmt.Errorf("phase 3 (millisecond offset): %w", err)
	}
	logger.Infof("[phase 3] sub-second offset: %.1f ms", msOffset*1000)

	offset := float64(secondOffset) + msOffset

	logger.Info("[phase 4] verifying offset")
	verified, err := verifyOffset(ctx, s.clock, s.p, target, offset, lat, s.cfg.VerifyTrials, s.cfg.OnRejectedProbe)
	if err != nil {
		return nil, fmt.Errorf("phase 4 (verification): %w", err)
	}
	if verified {
		logger.Infof("[phase 4] offset verified: %+.3f s", offset)
	} else {
		logger.Warnf("[phase 4] verification failed - offset %+.3f s may be unreliable", offset)
	}

	return &Result{
		RunID:        runID,
		Offset:       offset,
		SecondOffset: secondOffset,
		MSOffset:     msOffset,
		Latency:      lat,
		Verified:     verified,
	}, nil
}
