// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package telemetry records view-model activity as OpenTelemetry metrics
// and spans.
//
// # Description
//
// A Recorder counts property change notifications per view-model style
// and property, and counts command executions per command and outcome.
// Command executions are also wrapped in spans.
//
// A nil *Recorder is valid and records nothing, so view-models can call it
// unconditionally.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// ScopeName is the instrumentation scope of meters and tracers.
const ScopeName = "mvvmbench.viewmodel"

// Metric names.
const (
	MetricPropertyChanged  = "viewmodel_property_changed_total"
	MetricCommandExecuted  = "viewmodel_command_executed_total"
	MetricConfirmRequested = "viewmodel_confirm_requested_total"
)

// Command outcomes.
const (
	OutcomeExecuted = "executed"
	OutcomeDisabled = "disabled"
	OutcomeDeclined = "declined"
)

// Recorder holds the instruments used by view-models.
type Recorder struct {
	tracer trace.Tracer

	propertyChanged  metric.Int64Counter
	commandExecuted  metric.Int64Counter
	confirmRequested metric.Int64Counter
}

// NewRecorder creates instruments from the given providers. Nil providers
// fall back to the otel globals.
func NewRecorder(mp metric.MeterProvider, tp trace.TracerProvider) (*Recorder, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	meter := mp.Meter(ScopeName)

	r := &Recorder{tracer: tp.Tracer(ScopeName)}

	var err error
	r.propertyChanged, err = meter.Int64Counter(
		MetricPropertyChanged,
		metric.WithDescription("Property change notifications emitted by view-models"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", MetricPropertyChanged, err)
	}

	r.commandExecuted, err = meter.Int64Counter(
		MetricCommandExecuted,
		metric.WithDescription("Command invocations by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", MetricCommandExecuted, err)
	}

	r.confirmRequested, err = meter.Int64Counter(
		MetricConfirmRequested,
		metric.WithDescription("Confirmation prompts by answer"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", MetricConfirmRequested, err)
	}

	return r, nil
}

// PropertyChanged counts one notification.
func (r *Recorder) PropertyChanged(ctx context.Context, style, property string) {
	if r == nil {
		return
	}
	r.propertyChanged.Add(ctx, 1, metric.WithAttributes(
		attribute.String("style", style),
		attribute.String("property", property),
	))
}

// ConfirmRequested counts one confirmation round-trip.
func (r *Recorder) ConfirmRequested(ctx context.Context, title, answer string) {
	if r == nil {
		return
	}
	r.confirmRequested.Add(ctx, 1, metric.WithAttributes(
		attribute.String("title", title),
		attribute.String("answer", answer),
	))
}

// StartCommand opens a span for a command execution. The returned finish
// function records the outcome on the span and the counter.
func (r *Recorder) StartCommand(ctx context.Context, style, name string) (context.Context, func(outcome string)) {
	if r == nil {
		return ctx, func(string) {}
	}
	ctx, span := r.tracer.Start(ctx, "Command."+name,
		trace.WithAttributes(
			attribute.String("command.name", name),
			attribute.String("command.style", style),
		),
	)
	return ctx, func(outcome string) {
		span.SetAttributes(attribute.String("command.outcome", outcome))
		if outcome == OutcomeDisabled {
			span.SetStatus(codes.Error, "command not executable")
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
		r.commandExecuted.Add(ctx, 1, metric.WithAttributes(
			attribute.String("style", style),
			attribute.String("command", name),
			attribute.String("outcome", outcome),
		))
	}
}
