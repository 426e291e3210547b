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
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/vvidov/MVVMBenchmark/cmd/mvvmbench/config"
	"github.com/vvidov/MVVMBenchmark/pkg/telemetry"
)

// telemetrySetup controls which exporters back the view-model Recorder.
type telemetrySetup struct {
	// Mode is config.TelemetryOff or config.TelemetryStdout.
	Mode string

	// Out receives stdout exporter output.
	Out io.Writer

	// Registry, when set, gets an otel prometheus exporter so the
	// recorder's counters can be gathered with the benchmark gauges.
	Registry *prometheus.Registry
}

// Exporter constructors, replaceable in tests.
var (
	newMetricExporter = func(w io.Writer) (sdkmetric.Exporter, error) {
		return stdoutmetric.New(stdoutmetric.WithWriter(w), stdoutmetric.WithPrettyPrint())
	}
	newTraceExporter = func(w io.Writer) (sdktrace.SpanExporter, error) {
		return stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	}
)

// initTelemetry builds meter and tracer providers for setup and returns a
// Recorder bound to them. With nothing enabled the Recorder is nil, which
// records nothing.
//
// The returned shutdown flushes and stops every provider. It must be
// called.
func initTelemetry(setup telemetrySetup) (*telemetry.Recorder, func(context.Context) error, error) {
	var shutdownFuncs []func(context.Context) error
	shutdown := func(ctx context.Context) error {
		var errs []error
		for _, fn := range shutdownFuncs {
			if err := fn(ctx); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	stdout := setup.Mode == config.TelemetryStdout
	if !stdout && setup.Registry == nil {
		return nil, shutdown, nil
	}

	res := resource.NewWithAttributes(
		"",
		attribute.String("service.name", "mvvmbench"),
	)

	// --- METRICS ---
	// The periodic reader starts exporting as soon as it exists, so it is
	// created last.
	metricOpts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	if setup.Registry != nil {
		exporter, err := promexporter.New(promexporter.WithRegisterer(setup.Registry))
		if err != nil {
			return nil, nil, fmt.Errorf("create prometheus exporter: %w", err)
		}
		metricOpts = append(metricOpts, sdkmetric.WithReader(exporter))
	}
	if stdout {
		exporter, err := newMetricExporter(setup.Out)
		if err != nil {
			return nil, nil, fmt.Errorf("create stdout metric exporter: %w", err)
		}
		metricOpts = append(metricOpts, sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)))
	}
	mp := sdkmetric.NewMeterProvider(metricOpts...)
	shutdownFuncs = append(shutdownFuncs, mp.Shutdown)

	// --- TRACES ---
	var tpOpts []sdktrace.TracerProviderOption
	tpOpts = append(tpOpts, sdktrace.WithResource(res))
	if stdout {
		exporter, err := newTraceExporter(setup.Out)
		if err != nil {
			return nil, nil, errors.Join(
				fmt.Errorf("create stdout trace exporter: %w", err),
				shutdown(context.Background()),
			)
		}
		// Spans are written as they end.
		tpOpts = append(tpOpts, sdktrace.WithSyncer(exporter))
	}
	tp := sdktrace.NewTracerProvider(tpOpts...)
	shutdownFuncs = append(shutdownFuncs, tp.Shutdown)

	rec, err := telemetry.NewRecorder(mp, tp)
	if err != nil {
		return nil, nil, errors.Join(err, shutdown(context.Background()))
	}
	return rec, shutdown, nil
}
