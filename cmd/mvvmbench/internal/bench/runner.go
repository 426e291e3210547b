// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package bench measures view-model styles against fixed scenarios.
//
// # Description
//
// Every (scenario, style) pair is measured with testing.Benchmark: a number
// of warmup runs are discarded, then the measured runs are averaged.
// Results are ranked fastest to slowest within each scenario, and each
// result carries its ratio to the baseline style.
//
// # Thread Safety
//
// Run measures sequentially on the calling goroutine. It is not meant to
// be called concurrently.
package bench

import (
	"context"
	"flag"
	"fmt"
	"math"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vvidov/MVVMBenchmark/pkg/logging"
	"github.com/vvidov/MVVMBenchmark/pkg/telemetry"
	"github.com/vvidov/MVVMBenchmark/pkg/viewmodel"
)

// Baseline is the style every ratio is relative to.
const Baseline = viewmodel.StyleClassic

// Measurement is one testing.Benchmark sample, reduced to what reports use.
type Measurement struct {
	N           int
	NsPerOp     float64
	BytesPerOp  int64
	AllocsPerOp int64
}

// MeasureFunc runs one benchmark sample.
type MeasureFunc func(fn func(b *testing.B)) Measurement

// Options configures Run.
type Options struct {
	Warmup     int
	Iterations int

	// BenchTime is the target duration of each sample. Zero keeps the
	// testing package default.
	BenchTime time.Duration

	Styles    []viewmodel.Style
	Scenarios []string

	// Recorder, when set, receives one instrumented pass per pair after
	// measuring. It is never attached while timing.
	Recorder *telemetry.Recorder
	Logger   *logging.Logger

	// Measure replaces testing.Benchmark. Used by tests.
	Measure MeasureFunc
}

// Result aggregates the measured samples of one pair.
type Result struct {
	Scenario    string  `json:"scenario"`
	Style       string  `json:"style"`
	Samples     int     `json:"samples"`
	NsPerOp     float64 `json:"ns_per_op"`
	StdDevNs    float64 `json:"stddev_ns"`
	BytesPerOp  int64   `json:"bytes_per_op"`
	AllocsPerOp int64   `json:"allocs_per_op"`
	Rank        int     `json:"rank"`

	// Ratio is NsPerOp over the baseline's NsPerOp in the same scenario.
	// Zero when the scenario has no baseline result.
	Ratio float64 `json:"ratio"`
}

// Report is the output of one Run.
type Report struct {
	RunID      string    `json:"run_id"`
	StartedAt  time.Time `json:"started_at"`
	Duration   string    `json:"duration"`
	Warmup     int       `json:"warmup"`
	Iterations int       `json:"iterations"`
	Results    []Result  `json:"results"`
	Skipped    []string  `json:"skipped,omitempty"`
}

var initTesting sync.Once

// Benchmark is the default MeasureFunc.
func Benchmark(fn func(b *testing.B)) Measurement {
	initTesting.Do(testing.Init)
	r := testing.Benchmark(fn)
	m := Measurement{N: r.N, BytesPerOp: r.AllocedBytesPerOp(), AllocsPerOp: r.AllocsPerOp()}
	if r.N > 0 {
		m.NsPerOp = float64(r.T.Nanoseconds()) / float64(r.N)
	}
	return m
}

func setBenchTime(d time.Duration) error {
	initTesting.Do(testing.Init)
	f := flag.Lookup("test.benchtime")
	if f == nil {
		return fmt.Errorf("test.benchtime flag not registered")
	}
	return f.Value.Set(d.String())
}

// Run measures every requested pair and returns the ranked report.
func Run(ctx context.Context, opts Options) (Report, error) {
	if opts.Iterations < 1 {
		return Report{}, fmt.Errorf("iterations must be at least 1, got %d", opts.Iterations)
	}
	if opts.Warmup < 0 {
		return Report{}, fmt.Errorf("warmup must not be negative, got %d", opts.Warmup)
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	measure := opts.Measure
	if measure == nil {
		measure = Benchmark
		if opts.BenchTime > 0 {
			if err := setBenchTime(opts.BenchTime); err != nil {
				return Report{}, err
			}
		}
	}

	styles := opts.Styles
	if len(styles) == 0 {
		styles = viewmodel.Styles()
	}
	selected, err := selectScenarios(opts.Scenarios)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		RunID:      uuid.NewString(),
		StartedAt:  time.Now().UTC(),
		Warmup:     opts.Warmup,
		Iterations: opts.Iterations,
	}
	logger = logger.With("run_id", report.RunID)
	logger.Info("benchmark started", "scenarios", len(selected), "styles", len(styles))

	for _, sc := range selected {
		for _, style := range styles {
			if err := ctx.Err(); err != nil {
				return Report{}, err
			}
			if !sc.Supports(style) {
				report.Skipped = append(report.Skipped, sc.Name+"/"+string(style))
				logger.Debug("pair skipped", "scenario", sc.Name, "style", string(style))
				continue
			}
			res, err := runPair(sc, style, opts.Warmup, opts.Iterations, measure)
			if err != nil {
				return Report{}, err
			}
			if opts.Recorder != nil {
				if err := instrument(sc, style, opts.Recorder); err != nil {
					return Report{}, err
				}
			}
			logger.Debug("pair measured", "scenario", sc.Name, "style", string(style), "ns_per_op", res.NsPerOp)
			report.Results = append(report.Results, res)
		}
	}

	rank(report.Results)
	report.Duration = time.Since(report.StartedAt).Round(time.Millisecond).String()
	logger.Info("benchmark finished", "results", len(report.Results), "duration", report.Duration)
	return report, nil
}

func selectScenarios(names []string) ([]Scenario, error) {
	if len(names) == 0 {
		return Scenarios(), nil
	}
	out := make([]Scenario, 0, len(names))
	for _, n := range names {
		sc, err := Lookup(n)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, nil
}

func runPair(sc Scenario, style viewmodel.Style, warmup, iterations int, measure MeasureFunc) (Result, error) {
	// Prepare failures surface here rather than inside the benchmark.
	if _, err := sc.Prepare(style); err != nil {
		return Result{}, fmt.Errorf("%s/%s: %w", sc.Name, style, err)
	}
	fn := func(b *testing.B) {
		op, err := sc.Prepare(style)
		if err != nil {
			b.Fatal(err)
		}
		b.ReportAllocs()
		for i := 0; b.Loop(); i++ {
			op(i)
		}
	}

	for range warmup {
		measure(fn)
	}
	samples := make([]Measurement, 0, iterations)
	for range iterations {
		samples = append(samples, measure(fn))
	}
	return aggregate(sc.Name, string(style), samples), nil
}

func aggregate(scenario, style string, samples []Measurement) Result {
	r := Result{Scenario: scenario, Style: style, Samples: len(samples)}
	if len(samples) == 0 {
		return r
	}
	var ns float64
	var bytes, allocs int64
	for _, s := range samples {
		ns += s.NsPerOp
		bytes += s.BytesPerOp
		allocs += s.AllocsPerOp
	}
	n := float64(len(samples))
	r.NsPerOp = ns / n
	r.BytesPerOp = bytes / int64(len(samples))
	r.AllocsPerOp = allocs / int64(len(samples))

	var sq float64
	for _, s := range samples {
		d := s.NsPerOp - r.NsPerOp
		sq += d * d
	}
	r.StdDevNs = math.Sqrt(sq / n)
	return r
}

// rank orders results by scenario (first appearance) then fastest first,
// and fills Rank and Ratio.
func rank(results []Result) {
	order := map[string]int{}
	for _, r := range results {
		if _, ok := order[r.Scenario]; !ok {
			order[r.Scenario] = len(order)
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Scenario != b.Scenario {
			return order[a.Scenario] < order[b.Scenario]
		}
		return a.NsPerOp < b.NsPerOp
	})

	baseline := map[string]float64{}
	for _, r := range results {
		if r.Style == string(Baseline) {
			baseline[r.Scenario] = r.NsPerOp
		}
	}

	pos := 0
	for i := range results {
		if i == 0 || results[i].Scenario != results[i-1].Scenario {
			pos = 0
		}
		pos++
		results[i].Rank = pos
		if base := baseline[results[i].Scenario]; base > 0 {
			results[i].Ratio = results[i].NsPerOp / base
		}
	}
}

// instrument runs a few instrumented operations so the recorder sees the
// notification and command mix of the pair.
func instrument(sc Scenario, style viewmodel.Style, rec *telemetry.Recorder) error {
	op, err := sc.Prepare(style, viewmodel.WithRecorder(rec))
	if err != nil {
		return fmt.Errorf("%s/%s instrumented run: %w", sc.Name, style, err)
	}
	for i := range 2 {
		op(i)
	}
	return nil
}
