// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

// PersonalityEnv overrides the configured personality level.
const PersonalityEnv = "MVVMBENCH_PERSONALITY"

// PersonalityLevel defines the verbosity and richness of CLI output
type PersonalityLevel string

const (
	// PersonalityFull enables colors, boxes and the person card
	PersonalityFull PersonalityLevel = "full"

	// PersonalityMinimal uses icons and plain lines
	PersonalityMinimal PersonalityLevel = "minimal"

	// PersonalityMachine outputs tab-separated text suitable for scripting
	PersonalityMachine PersonalityLevel = "machine"
)

var (
	currentLevel  = PersonalityFull
	personalityMu sync.RWMutex

	// stdoutIsTerminal is replaced in tests.
	stdoutIsTerminal = func() bool {
		fd := os.Stdout.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
)

// GetPersonality returns the current personality level
func GetPersonality() PersonalityLevel {
	personalityMu.RLock()
	defer personalityMu.RUnlock()
	return currentLevel
}

// SetPersonality updates the current personality level
func SetPersonality(level PersonalityLevel) {
	personalityMu.Lock()
	defer personalityMu.Unlock()
	currentLevel = level
}

// ParsePersonalityLevel converts a string to PersonalityLevel. Unknown
// values map to PersonalityFull.
func ParsePersonalityLevel(s string) PersonalityLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "minimal", "min", "m":
		return PersonalityMinimal
	case "machine", "quiet", "q":
		return PersonalityMachine
	default:
		return PersonalityFull
	}
}

// InitPersonality picks the level from, in order: the environment, a
// non-terminal stdout (machine), then configured.
func InitPersonality(configured string) PersonalityLevel {
	level := ParsePersonalityLevel(configured)
	switch {
	case os.Getenv(PersonalityEnv) != "":
		level = ParsePersonalityLevel(os.Getenv(PersonalityEnv))
	case !stdoutIsTerminal():
		level = PersonalityMachine
	}
	SetPersonality(level)
	return level
}

// IsInteractive returns true if we should show interactive prompts
func IsInteractive() bool {
	return GetPersonality() != PersonalityMachine && stdoutIsTerminal()
}
