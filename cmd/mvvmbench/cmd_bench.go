// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vvidov/MVVMBenchmark/cmd/mvvmbench/config"
	"github.com/vvidov/MVVMBenchmark/cmd/mvvmbench/internal/bench"
	"github.com/vvidov/MVVMBenchmark/pkg/ux"
)

type benchOptions struct {
	warmup     int
	iterations int
	styles     []string
	scenarios  []string
	benchTime  time.Duration
	jsonOut    bool
	promFile   string
}

func (a *app) benchCmd() *cobra.Command {
	var opts benchOptions
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark the view-model styles",
		Long: `bench measures each scenario against each style with warmup runs
discarded, then prints results fastest first with a ratio to the classic
baseline. Defaults come from the bench section of the config.`,
		Example: `  mvvmbench bench
  mvvmbench bench --scenarios creation,command --iterations 5
  mvvmbench bench --json --prom-file /var/lib/node_exporter/mvvmbench.prom`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBench(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.warmup, "warmup", 0, "Discarded runs per pair (overrides bench.warmup)")
	f.IntVar(&opts.iterations, "iterations", 0, "Measured runs per pair (overrides bench.iterations)")
	f.StringSliceVar(&opts.styles, "styles", nil, "Styles to measure (overrides bench.styles)")
	f.StringSliceVar(&opts.scenarios, "scenarios", nil, "Scenarios to run (overrides bench.scenarios)")
	f.DurationVar(&opts.benchTime, "benchtime", 200*time.Millisecond, "Target duration of each run")
	f.BoolVar(&opts.jsonOut, "json", false, "Print the report as JSON")
	f.StringVar(&opts.promFile, "prom-file", "", "Also write a Prometheus textfile to this path")
	return cmd
}

func (a *app) runBench(cmd *cobra.Command, opts benchOptions) error {
	settings := a.cfg
	f := cmd.Flags()
	if f.Changed("warmup") {
		settings.Bench.Warmup = opts.warmup
	}
	if f.Changed("iterations") {
		settings.Bench.Iterations = opts.iterations
	}
	if f.Changed("styles") {
		settings.Bench.Styles = opts.styles
	}
	if f.Changed("scenarios") {
		settings.Bench.Scenarios = opts.scenarios
	}
	if err := config.Validate(settings); err != nil {
		return err
	}

	styles, err := bench.ParseStyles(settings.Bench.Styles)
	if err != nil {
		return err
	}

	var registry *prometheus.Registry
	if opts.promFile != "" {
		registry = prometheus.NewRegistry()
	}
	rec, shutdown, err := initTelemetry(telemetrySetup{Mode: settings.Telemetry.Mode, Out: a.errOut, Registry: registry})
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			a.logger.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	report, err := bench.Run(cmd.Context(), bench.Options{
		Warmup:     settings.Bench.Warmup,
		Iterations: settings.Bench.Iterations,
		BenchTime:  opts.benchTime,
		Styles:     styles,
		Scenarios:  settings.Bench.Scenarios,
		Recorder:   rec,
		Logger:     a.logger,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.jsonOut {
		err = report.WriteJSON(out)
	} else {
		err = report.WriteTable(out)
	}
	if err != nil {
		return err
	}

	if opts.promFile != "" {
		if err := report.WritePromFile(opts.promFile, registry); err != nil {
			return err
		}
		if !opts.jsonOut {
			ux.Success(out, "wrote "+opts.promFile)
		}
	}
	return nil
}
