// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"testing"
)

// withTerminal fakes the stdout terminal check and restores level and
// check afterwards.
func withTerminal(t *testing.T, tty bool) {
	t.Helper()
	origLevel := GetPersonality()
	origCheck := stdoutIsTerminal
	stdoutIsTerminal = func() bool { return tty }
	t.Cleanup(func() {
		stdoutIsTerminal = origCheck
		SetPersonality(origLevel)
	})
}

// =============================================================================
// ParsePersonalityLevel Tests
// =============================================================================

func TestParsePersonalityLevel(t *testing.T) {
	tests := map[string]PersonalityLevel{
		"full":    PersonalityFull,
		"FULL":    PersonalityFull,
		"minimal": PersonalityMinimal,
		"min":     PersonalityMinimal,
		"machine": PersonalityMachine,
		"quiet":   PersonalityMachine,
		" q ":     PersonalityMachine,
		"":        PersonalityFull,
		"bogus":   PersonalityFull,
	}
	for in, want := range tests {
		if got := ParsePersonalityLevel(in); got != want {
			t.Errorf("ParsePersonalityLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

// =============================================================================
// InitPersonality Tests
// =============================================================================

func TestInitPersonality_Configured(t *testing.T) {
	withTerminal(t, true)
	t.Setenv(PersonalityEnv, "")

	if got := InitPersonality("minimal"); got != PersonalityMinimal {
		t.Errorf("expected minimal, got %v", got)
	}
	if GetPersonality() != PersonalityMinimal {
		t.Errorf("level not stored")
	}
}

func TestInitPersonality_EnvWins(t *testing.T) {
	withTerminal(t, false)
	t.Setenv(PersonalityEnv, "full")

	if got := InitPersonality("minimal"); got != PersonalityFull {
		t.Errorf("expected env override to full, got %v", got)
	}
}

func TestInitPersonality_NonTerminalIsMachine(t *testing.T) {
	withTerminal(t, false)
	t.Setenv(PersonalityEnv, "")

	if got := InitPersonality("full"); got != PersonalityMachine {
		t.Errorf("expected machine when stdout is not a terminal, got %v", got)
	}
}

func TestIsInteractive(t *testing.T) {
	withTerminal(t, true)

	SetPersonality(PersonalityFull)
	if !IsInteractive() {
		t.Error("full on a terminal should be interactive")
	}
	SetPersonality(PersonalityMachine)
	if IsInteractive() {
		t.Error("machine should never be interactive")
	}
}
