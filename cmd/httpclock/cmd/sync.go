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

package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/facebookincubator/httpclock/stats"
	"github.com/facebookincubator/httpclock/timesync"
)

var (
	syncSamplesFlag      int
	syncIntervalFlag     time.Duration
	syncInsecureTLSFlag  bool
	syncVerifyTrialsFlag int
	syncPrometheusAddr   string
	syncTimeoutFlag      time.Duration
)

var okString = color.GreenString("[ OK ]")
var failString = color.RedString("[FAIL]")

func init() {
	RootCmd.AddCommand(syncCmd)
	syncCmd.Flags().IntVar(&syncSamplesFlag, "samples", 10, "number of RTT samples to collect during latency profiling")
	syncCmd.Flags().DurationVar(&syncIntervalFlag, "interval", 500*time.Millisecond, "pause between latency-profiling probes")
	syncCmd.Flags().BoolVar(&syncInsecureTLSFlag, "insecure-tls", false, "skip TLS certificate verification")
	syncCmd.Flags().IntVar(&syncVerifyTrialsFlag, "verify-trials", 1, "number of verification trials (2 probes each)")
	syncCmd.Flags().StringVar(&syncPrometheusAddr, "prometheus-addr", "", "address to serve Prometheus metrics on after the run completes, disabled if empty")
	syncCmd.Flags().DurationVar(&syncTimeoutFlag, "timeout", time.Minute, "overall pipeline deadline")
}

// statusLineFor renders the pass/fail badge printed alongside the
// measured offset, matching cmd/ptpcheck's okString/failString badges.
func statusLineFor(verified bool) string {
	if verified {
		return okString
	}
	return failString
}

func printLatencyTable(res *timesync.Result) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"min", "q1", "median", "mean", "q3", "max"})
	p := res.Latency
	table.Append([]string{
		p.Min.String(), p.Q1.String(), p.Median.String(), p.Mean.String(), p.Q3.String(), p.Max.String(),
	})
	table.Render()
}

func syncRun(target string) int {
	ctx, cancel := context.WithTimeout(context.Background(), syncTimeoutFlag)
	defer cancel()

	cfg := timesync.NewConfig()
	cfg.Samples = syncSamplesFlag
	cfg.SampleInterval = syncIntervalFlag
	cfg.InsecureTLS = syncInsecureTLSFlag
	cfg.VerifyTrials = syncVerifyTrialsFlag

	var exporter *stats.Exporter
	if syncPrometheusAddr != "" {
		exporter = stats.NewExporter()
		cfg.OnRejectedProbe = func() { exporter.ObserveRejectedProbe(target) }
	}

	sync := timesync.NewSynchronizer(cfg)

	res, err := sync.Synchronize(ctx, target)
	if err != nil {
		if exporter != nil {
			exporter.ObserveFailure(target)
		}
		fmt.Printf("%s %v\n", failString, err)
		return 1
	}
	if exporter != nil {
		exporter.ObserveResult(target, res)
	}

	printLatencyTable(res)

	fmt.Printf("%s offset: %+.3f s (%+.1f ms)\n", statusLineFor(res.Verified), res.Offset, res.Offset*1000)

	if exporter != nil {
		log.Infof("serving prometheus metrics on %s", syncPrometheusAddr)
		if err := exporter.Serve(syncPrometheusAddr); err != nil {
			log.Errorf("prometheus exporter stopped: %v", err)
		}
	}

	return 0
}

var syncCmd = &cobra.Command{
	Use:   "sync <url>",
	Short: "Measure clock offset against an HTTP server's Date header",
	Long: `Measure clock offset against an HTTP server's Date header.

Runs the four-phase synchronization pipeline (latency profiling,
whole-second offset, millisecond offset, verification) against the
given absolute HTTP or HTTPS URL and prints the result.
`,
	Args: cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		ConfigureVerbosity()
		os.Exit(syncRun(args[0]))
	},
}
