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
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvidov/MVVMBenchmark/cmd/mvvmbench/config"
	"github.com/vvidov/MVVMBenchmark/cmd/mvvmbench/internal/bench"
	"github.com/vvidov/MVVMBenchmark/pkg/person"
	"github.com/vvidov/MVVMBenchmark/pkg/ux"
	"github.com/vvidov/MVVMBenchmark/pkg/viewmodel"
)

// run executes the CLI with machine output and a temp config.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	orig := ux.GetPersonality()
	t.Cleanup(func() { ux.SetPersonality(orig) })

	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	var out, errOut bytes.Buffer
	err := newApp(strings.NewReader(""), &out, &errOut).
		execute(append([]string{"--config", cfgPath, "--personality", "machine"}, args...))
	return out.String(), errOut.String(), err
}

func expectedAge() int {
	return person.AgeOn(bench.DateOfBirth, person.Today(nil))
}

// =============================================================================
// show
// =============================================================================

func TestShow_Save(t *testing.T) {
	out, _, err := run(t, "show", "--first", "John", "--last", "Doe", "--dob", "1990-01-01", "--save")
	require.NoError(t, err)

	assert.Contains(t, out, "OK\tsaved\n")
	assert.Contains(t, out, "first_name\tJohn\n")
	assert.Contains(t, out, "date_of_birth\t1990-01-01\n")
	assert.Contains(t, out, "display_text\tJohn Doe, is ")
	assert.Contains(t, out, "save\tenabled\n")
}

func TestShow_SaveDisabled(t *testing.T) {
	out, _, err := run(t, "show", "--first", "John", "--save")
	require.NoError(t, err)
	assert.Contains(t, out, "WARN\tsave disabled")
	assert.Contains(t, out, "save\tdisabled\n")
}

func TestShow_ResetYes(t *testing.T) {
	out, _, err := run(t, "show", "--first", "John", "--last", "Doe", "--dob", "1990-01-01", "--reset", "--yes")
	require.NoError(t, err)

	assert.Contains(t, out, "OK\tcleared\n")
	assert.Contains(t, out, "first_name\t\n")
	assert.Contains(t, out, "display_text\t\n")
	assert.Contains(t, out, "age\t0\n")
}

func TestShow_ResetNo(t *testing.T) {
	out, _, err := run(t, "show", "--first", "John", "--reset", "--no")
	require.NoError(t, err)

	assert.Contains(t, out, "WARN\treset declined (No)\n")
	assert.Contains(t, out, "first_name\tJohn\n")
}

func TestShow_ResetPromptWithoutTerminalDeclines(t *testing.T) {
	out, errOut, err := run(t, "show", "--first", "John", "--reset")
	require.NoError(t, err)

	assert.Contains(t, out, "reset declined (No)")
	assert.Contains(t, errOut, "interactive terminal")
}

func TestShow_Trace(t *testing.T) {
	out, _, err := run(t, "show", "--first", "John", "--trace")
	require.NoError(t, err)

	assert.Contains(t, out, strings.Join([]string{
		"EVENT\ttoolkit\tFirstName",
		"EVENT\ttoolkit\tDisplayText",
		"EVENT\ttoolkit\tCanUpdatePerson",
		"EVENT\tSave\tdisabled",
	}, "\n"))
}

func TestShow_TraceClassic(t *testing.T) {
	out, _, err := run(t, "show", "--style", "classic", "--dob", "1990-01-01", "--trace", "--save")
	require.NoError(t, err)

	assert.Contains(t, out, "EVENT\tclassic\tDateOfBirth\nEVENT\tclassic\tAge\nEVENT\tclassic\tDisplayText\n")
	assert.Contains(t, out, "classic style has no commands")
	assert.NotContains(t, out, "save\t")
}

func TestShow_Hooks(t *testing.T) {
	out, _, err := run(t, "show", "--style", "hooks", "--first", "John", "--last", "Doe", "--trace", "--save")
	require.NoError(t, err)

	assert.Contains(t, out, "EVENT\thooks\tFirstName\nEVENT\thooks\tDisplayText\nEVENT\thooks\tLastName\n")
	assert.NotContains(t, out, "CanUpdatePerson")
	assert.NotContains(t, out, "EVENT\tSave")
	assert.Contains(t, out, "OK\tsaved\n")
	assert.Contains(t, out, "save\tenabled\n")
}

func TestShow_Errors(t *testing.T) {
	_, _, err := run(t, "show", "--dob", "01/01/1990")
	assert.ErrorIs(t, err, person.ErrInvalidDate)

	_, _, err = run(t, "show", "--style", "reactive")
	assert.ErrorIs(t, err, viewmodel.ErrUnknownStyle)

	_, _, err = run(t, "show", "--yes", "--no")
	assert.Error(t, err)
}

func TestShow_TelemetryStdout(t *testing.T) {
	_, errOut, err := run(t, "--telemetry", "stdout", "show", "--first", "John", "--last", "Doe", "--save")
	require.NoError(t, err)

	assert.Contains(t, errOut, "Command.Save")
	assert.Contains(t, errOut, "viewmodel_property_changed_total")
}

func TestCardOf(t *testing.T) {
	vm := viewmodel.NewToolkit()
	vm.SetFirstName("John")
	vm.SetLastName("Doe")
	vm.SetDateOfBirth(bench.DateOfBirth)

	c := cardOf(vm)
	assert.Equal(t, "toolkit", c.Style)
	assert.Equal(t, expectedAge(), c.Age)
	assert.Equal(t, "1990-01-01", c.DateOfBirth)
	assert.Equal(t, "enabled", c.Save)
	assert.Empty(t, cardOf(viewmodel.NewClassic()).Save)
}

// =============================================================================
// config
// =============================================================================

func TestRoot_InvalidConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("bench:\n  iterations: 0\n"), 0644))

	err := newApp(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{}).
		execute([]string{"--config", cfgPath, "show"})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestRoot_InvalidLogLevelFlag(t *testing.T) {
	_, _, err := run(t, "--log-level", "loud", "show")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestRoot_FirstRunLogs(t *testing.T) {
	_, errOut, err := run(t, "--log-level", "info", "show")
	require.NoError(t, err)
	assert.Contains(t, errOut, "created default config")
}

func TestRoot_FirstRunLogsDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	orig := ux.GetPersonality()
	t.Cleanup(func() { ux.SetPersonality(orig) })

	var errOut bytes.Buffer
	err := newApp(strings.NewReader(""), &bytes.Buffer{}, &errOut).
		execute([]string{"--personality", "machine", "show"})
	require.NoError(t, err)

	path := filepath.Join(home, ".mvvmbench", "config.yaml")
	assert.Contains(t, errOut.String(), path)
	assert.FileExists(t, path)
}

func TestExecute_ClosesLogFileOnError(t *testing.T) {
	dir := t.TempDir()
	logDir := filepath.Join(dir, "logs")
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log:\n  dir: "+logDir+"\n"), 0644))
	orig := ux.GetPersonality()
	t.Cleanup(func() { ux.SetPersonality(orig) })

	a := newApp(strings.NewReader(""), &bytes.Buffer{}, &bytes.Buffer{})
	err := a.execute([]string{"--config", cfgPath, "--personality", "machine", "show", "--dob", "bad"})
	require.ErrorIs(t, err, person.ErrInvalidDate)

	// Writes after execute cannot reach a closed file.
	a.logger.Info("written after execute")

	files, err := filepath.Glob(filepath.Join(logDir, "mvvmbench_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.NotContains(t, string(data), "written after execute")
}

// =============================================================================
// bench
// =============================================================================

func TestBench_JSONAndPromFile(t *testing.T) {
	promPath := filepath.Join(t.TempDir(), "bench.prom")
	out, _, err := run(t, "bench",
		"--warmup", "0", "--iterations", "1", "--benchtime", "1ms",
		"--styles", "classic,toolkit", "--scenarios", "property-update",
		"--json", "--prom-file", promPath,
	)
	require.NoError(t, err)

	var report bench.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Results, 2)
	assert.Equal(t, 1, report.Results[0].Rank)

	data, err := os.ReadFile(promPath)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "mvvmbench_ns_per_op{")
	assert.Contains(t, text, `run_id="`+report.RunID+`"`)
	assert.Contains(t, text, "viewmodel_property_changed")
}

func TestBench_Table(t *testing.T) {
	out, _, err := run(t, "bench",
		"--warmup", "0", "--iterations", "1", "--benchtime", "1ms",
		"--styles", "classic", "--scenarios", "command,creation",
	)
	require.NoError(t, err)

	assert.Contains(t, out, "scenario\tstyle\trank")
	assert.Contains(t, out, "creation\tclassic\t1\t")
	assert.Contains(t, out, "WARN\tskipped command/classic")
}

func TestBench_Invalid(t *testing.T) {
	_, _, err := run(t, "bench", "--iterations", "0")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, _, err = run(t, "bench", "--styles", "reactive")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	_, _, err = run(t, "bench", "--iterations", "1", "--benchtime", "1ms", "--scenarios", "startup")
	assert.ErrorIs(t, err, bench.ErrUnknownScenario)
}

func TestEdit_RefusesMachineOutput(t *testing.T) {
	_, _, err := run(t, "edit")
	assert.Error(t, err)
}
