// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

// Confirmation modes.
const (
	ConfirmPrompt = "prompt"
	ConfirmYes    = "yes"
	ConfirmNo     = "no"
)

// Telemetry modes.
const (
	TelemetryOff    = "off"
	TelemetryStdout = "stdout"
)

type MVVMBenchConfig struct {
	Log       LogConfig       `yaml:"log"`
	UI        UIConfig        `yaml:"ui"`
	Confirm   ConfirmConfig   `yaml:"confirm"`
	Bench     BenchSettings   `yaml:"bench"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn warning error"`
	JSON  bool   `yaml:"json"`
	// Dir enables JSON file logs. Empty disables them.
	Dir string `yaml:"dir,omitempty"`
}

type UIConfig struct {
	Personality string `yaml:"personality" validate:"oneof=full minimal machine"`
}

type ConfirmConfig struct {
	// Mode decides how Reset is confirmed when no flag overrides it.
	Mode string `yaml:"mode" validate:"oneof=prompt yes no"`
}

type BenchSettings struct {
	Warmup     int      `yaml:"warmup" validate:"gte=0,lte=100"`
	Iterations int      `yaml:"iterations" validate:"gte=1,lte=1000"`
	Styles     []string `yaml:"styles" validate:"min=1,dive,oneof=classic hooks toolkit"`
	Scenarios  []string `yaml:"scenarios" validate:"min=1,dive,required"`
}

type TelemetryConfig struct {
	Mode string `yaml:"mode" validate:"oneof=off stdout"`
}

// DefaultConfig returns three warmup runs, ten measured iterations, every
// style and every scenario.
func DefaultConfig() MVVMBenchConfig {
	return MVVMBenchConfig{
		Log: LogConfig{Level: "info"},
		UI:  UIConfig{Personality: "full"},
		Confirm: ConfirmConfig{
			Mode: ConfirmPrompt,
		},
		Bench: BenchSettings{
			Warmup:     3,
			Iterations: 10,
			Styles:     []string{"classic", "hooks", "toolkit"},
			Scenarios:  []string{"property-update", "creation", "command", "property-chain", "notifications"},
		},
		Telemetry: TelemetryConfig{Mode: TelemetryOff},
	}
}
