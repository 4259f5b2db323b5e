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

package probe

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/facebookincubator/httpclock/clock"
)

// Sentinel errors surfaced by Probe. ErrTransport wraps the underlying
// network error so callers can still inspect it with errors.Unwrap.
var (
	ErrMissingDate   = errors.New("server did not return a Date header")
	ErrMalformedDate = errors.New("server returned an unparseable Date header")
	ErrTransport     = errors.New("transport error")
)

// DefaultTimeout bounds a single probe's HTTP round trip.
const DefaultTimeout = 10 * time.Second

// Prober issues HEAD requests against a single target and reports the
// server's clock reading along with the measured RTT. A Prober is not
// safe for concurrent use; the synchronization pipeline only ever
// issues one probe at a time by design (see package timesync).
type Prober struct {
	client *http.Client
}

// New returns a Prober with a fresh, pooled http.Client. insecureTLS
// disables certificate verification, mirroring the toggle every other
// HTTP client in this codebase exposes for talking to lab equipment
// with self-signed certificates.
func New(insecureTLS bool) *Prober {
	transport := &http.Transport{
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: insecureTLS}, //nolint:gosec
		MaxIdleConns:        1,
		MaxIdleConnsPerHost: 1,
		IdleConnTimeout:     90 * time.Second,
		DisableCompression:  true,
	}
	return &Prober{
		client: &http.Client{
			Transport: transport,
			Timeout:   DefaultTimeout,
			// The second-offset and millisecond-offset estimators time
			// probes to arrive at a chosen fractional-second position;
			// a redirect would throw that timing away on a second hop.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Probe sends a HEAD request to url and returns the server's Date
// header (truncated to whole Unix seconds) and the measured RTT.
func (p *Prober) Probe(ctx context.Context, url string) (serverSecond int64, rtt time.Duration, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Cache-Control", "no-cache")

	start := clock.Monotonic()
	resp, err := p.client.Do(req)
	end := clock.Monotonic()
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	rtt = end - start

	dateHeader := resp.Header.Get("Date")
	if dateHeader == "" {
		return 0, rtt, ErrMissingDate
	}
	t, err := http.ParseTime(dateHeader)
	if err != nil {
		return 0, rtt, fmt.Errorf("%w: %v", ErrMalformedDate, err)
	}
	return t.Unix(), rtt, nil
}
