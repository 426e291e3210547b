// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package bench

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/vvidov/MVVMBenchmark/pkg/telemetry"
	"github.com/vvidov/MVVMBenchmark/pkg/viewmodel"
)

// fixedMeasure returns ns for every call and counts calls.
func fixedMeasure(calls *int, ns func(call int) float64) MeasureFunc {
	return func(func(b *testing.B)) Measurement {
		*calls++
		return Measurement{N: 1000, NsPerOp: ns(*calls), BytesPerOp: 64, AllocsPerOp: 2}
	}
}

func TestScenarios_AllPrepareAndRun(t *testing.T) {
	for _, sc := range Scenarios() {
		for _, style := range viewmodel.Styles() {
			t.Run(sc.Name+"/"+string(style), func(t *testing.T) {
				op, err := sc.Prepare(style)
				if !sc.Supports(style) {
					assert.ErrorIs(t, err, ErrUnsupported)
					return
				}
				require.NoError(t, err)
				assert.NotPanics(t, func() {
					for i := range 4 {
						op(i)
					}
				})
			})
		}
	}
}

func TestScenario_CommandNeedsCommander(t *testing.T) {
	sc, err := Lookup("command")
	require.NoError(t, err)
	assert.False(t, sc.Supports(viewmodel.StyleClassic))
	assert.True(t, sc.Supports(viewmodel.StyleHooks))
	assert.True(t, sc.Supports(viewmodel.StyleToolkit))
}

func TestScenario_CreationUnknownStyle(t *testing.T) {
	sc, err := Lookup("creation")
	require.NoError(t, err)
	op, err := sc.Prepare(viewmodel.Style("reactive"))
	assert.ErrorIs(t, err, viewmodel.ErrUnknownStyle)
	assert.Nil(t, op)
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("startup")
	assert.ErrorIs(t, err, ErrUnknownScenario)
}

func TestParseStyles(t *testing.T) {
	styles, err := ParseStyles([]string{"classic", "Hooks", "TOOLKIT"})
	require.NoError(t, err)
	assert.Equal(t, []viewmodel.Style{viewmodel.StyleClassic, viewmodel.StyleHooks, viewmodel.StyleToolkit}, styles)

	_, err = ParseStyles([]string{"reactive"})
	assert.ErrorIs(t, err, ErrUnknownStyle)
}

func TestRun_WarmupIsDiscarded(t *testing.T) {
	calls := 0
	// Warmup samples are huge; measured ones are 10.
	measure := fixedMeasure(&calls, func(call int) float64 {
		if (call-1)%5 < 2 {
			return 1e9
		}
		return 10
	})

	report, err := Run(context.Background(), Options{
		Warmup:     2,
		Iterations: 3,
		Styles:     []viewmodel.Style{viewmodel.StyleClassic},
		Scenarios:  []string{"property-update"},
		Measure:    measure,
	})
	require.NoError(t, err)

	assert.Equal(t, 5, calls)
	require.Len(t, report.Results, 1)
	res := report.Results[0]
	assert.Equal(t, 3, res.Samples)
	assert.InDelta(t, 10, res.NsPerOp, 1e-9)
	assert.InDelta(t, 0, res.StdDevNs, 1e-9)
	assert.Equal(t, int64(64), res.BytesPerOp)
	assert.Equal(t, int64(2), res.AllocsPerOp)
	assert.Equal(t, 1, res.Rank)
	assert.InDelta(t, 1.0, res.Ratio, 1e-9)

	_, err = uuid.Parse(report.RunID)
	assert.NoError(t, err)
}

func TestRun_SkipsCommandForClassic(t *testing.T) {
	calls := 0
	report, err := Run(context.Background(), Options{
		Iterations: 1,
		Scenarios:  []string{"command"},
		Measure:    fixedMeasure(&calls, func(int) float64 { return 5 }),
	})
	require.NoError(t, err)

	require.Len(t, report.Results, 2)
	for _, res := range report.Results {
		assert.Contains(t, []string{"hooks", "toolkit"}, res.Style)
		assert.Zero(t, res.Ratio, "no baseline in this scenario")
	}
	assert.Equal(t, []string{"command/classic"}, report.Skipped)
}

func TestRun_Validation(t *testing.T) {
	_, err := Run(context.Background(), Options{Iterations: 0})
	assert.Error(t, err)

	_, err = Run(context.Background(), Options{Iterations: 1, Warmup: -1})
	assert.Error(t, err)

	_, err = Run(context.Background(), Options{Iterations: 1, Scenarios: []string{"nope"}})
	assert.ErrorIs(t, err, ErrUnknownScenario)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	calls := 0
	_, err := Run(ctx, Options{Iterations: 1, Measure: fixedMeasure(&calls, func(int) float64 { return 1 })})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls)
}

func TestRun_InstrumentedRunFeedsRecorder(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	rec, err := telemetry.NewRecorder(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)), nil)
	require.NoError(t, err)

	calls := 0
	_, err = Run(context.Background(), Options{
		Iterations: 1,
		Styles:     []viewmodel.Style{viewmodel.StyleToolkit},
		Scenarios:  []string{"property-update"},
		Recorder:   rec,
		Measure:    fixedMeasure(&calls, func(int) float64 { return 1 }),
	})
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	var total int64
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == telemetry.MetricPropertyChanged {
				for _, dp := range m.Data.(metricdata.Sum[int64]).DataPoints {
					total += dp.Value
				}
			}
		}
	}
	// Two FirstName changes, three notifications each.
	assert.Equal(t, int64(6), total)
}

func TestRank(t *testing.T) {
	results := []Result{
		{Scenario: "creation", Style: "toolkit", NsPerOp: 300},
		{Scenario: "creation", Style: "classic", NsPerOp: 200},
		{Scenario: "command", Style: "toolkit", NsPerOp: 50},
		{Scenario: "property-update", Style: "classic", NsPerOp: 40},
		{Scenario: "property-update", Style: "toolkit", NsPerOp: 20},
	}

	rank(results)

	got := make([]string, len(results))
	for i, r := range results {
		got[i] = r.Scenario + "/" + r.Style
	}
	assert.Equal(t, []string{
		"creation/classic", "creation/toolkit",
		"command/toolkit",
		"property-update/toolkit", "property-update/classic",
	}, got)

	assert.Equal(t, []int{1, 2, 1, 1, 2}, []int{results[0].Rank, results[1].Rank, results[2].Rank, results[3].Rank, results[4].Rank})
	assert.InDelta(t, 1.5, results[1].Ratio, 1e-9)
	assert.Zero(t, results[2].Ratio)
	assert.InDelta(t, 0.5, results[3].Ratio, 1e-9)
}

func TestAggregate_StdDev(t *testing.T) {
	r := aggregate("s", "classic", []Measurement{{NsPerOp: 10}, {NsPerOp: 20}})
	assert.InDelta(t, 15, r.NsPerOp, 1e-9)
	assert.InDelta(t, 5, r.StdDevNs, 1e-9)
}

func TestBenchmark_Real(t *testing.T) {
	if testing.Short() {
		t.Skip("runs testing.Benchmark")
	}
	report, err := Run(context.Background(), Options{
		Iterations: 1,
		BenchTime:  time.Millisecond,
		Styles:     []viewmodel.Style{viewmodel.StyleClassic},
		Scenarios:  []string{"property-update"},
	})
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.Greater(t, report.Results[0].NsPerOp, 0.0)
}
