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
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vvidov/MVVMBenchmark/pkg/ux"
)

// Columns of the rendered table.
var tableHeaders = []string{"scenario", "style", "rank", "ns/op", "stddev", "ratio", "B/op", "allocs/op"}

// Rows returns the table body, one row per result.
func (r Report) Rows() [][]string {
	rows := make([][]string, 0, len(r.Results))
	for _, res := range r.Results {
		ratio := "-"
		if res.Ratio > 0 {
			ratio = strconv.FormatFloat(res.Ratio, 'f', 2, 64)
		}
		rows = append(rows, []string{
			res.Scenario,
			res.Style,
			strconv.Itoa(res.Rank),
			strconv.FormatFloat(res.NsPerOp, 'f', 1, 64),
			strconv.FormatFloat(res.StdDevNs, 'f', 1, 64),
			ratio,
			strconv.FormatInt(res.BytesPerOp, 10),
			strconv.FormatInt(res.AllocsPerOp, 10),
		})
	}
	return rows
}

// WriteTable renders the report in the current ux personality.
func (r Report) WriteTable(w io.Writer) error {
	ux.Title(w, fmt.Sprintf("Benchmark %s (warmup %d, iterations %d, baseline %s)", r.RunID, r.Warmup, r.Iterations, Baseline))
	if _, err := io.WriteString(w, ux.RenderTable(tableHeaders, r.Rows())); err != nil {
		return err
	}
	for _, s := range r.Skipped {
		ux.Warning(w, "skipped "+s+": style has no commands")
	}
	return nil
}

// WriteJSON writes the report as indented JSON.
func (r Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// =============================================================================
// Prometheus textfile
// =============================================================================

// Gauge names written by WritePromFile.
const (
	MetricNsPerOp     = "mvvmbench_ns_per_op"
	MetricBytesPerOp  = "mvvmbench_bytes_per_op"
	MetricAllocsPerOp = "mvvmbench_allocs_per_op"
	MetricRank        = "mvvmbench_rank"
	MetricRatio       = "mvvmbench_baseline_ratio"
)

// Register adds the report's gauges to reg.
func (r Report) Register(reg prometheus.Registerer) error {
	labels := []string{"scenario", "style", "run_id"}
	gauges := []struct {
		name, help string
		value      func(Result) float64
	}{
		{MetricNsPerOp, "Mean nanoseconds per operation.", func(x Result) float64 { return x.NsPerOp }},
		{MetricBytesPerOp, "Mean bytes allocated per operation.", func(x Result) float64 { return float64(x.BytesPerOp) }},
		{MetricAllocsPerOp, "Mean allocations per operation.", func(x Result) float64 { return float64(x.AllocsPerOp) }},
		{MetricRank, "Position within the scenario, fastest is 1.", func(x Result) float64 { return float64(x.Rank) }},
		{MetricRatio, "Mean time relative to the baseline style.", func(x Result) float64 { return x.Ratio }},
	}

	for _, g := range gauges {
		vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: g.name, Help: g.help}, labels)
		if err := reg.Register(vec); err != nil {
			return fmt.Errorf("register %s: %w", g.name, err)
		}
		for _, res := range r.Results {
			vec.WithLabelValues(res.Scenario, res.Style, r.RunID).Set(g.value(res))
		}
	}
	return nil
}

// WritePromFile writes the report gauges plus everything already in reg
// to path in the node-exporter textfile format. A nil reg starts empty.
func (r Report) WritePromFile(path string, reg *prometheus.Registry) error {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	if err := r.Register(reg); err != nil {
		return err
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
