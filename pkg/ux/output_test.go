// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withLevel(t *testing.T, level PersonalityLevel) {
	t.Helper()
	orig := GetPersonality()
	SetPersonality(level)
	t.Cleanup(func() { SetPersonality(orig) })
}

var sampleCard = Card{
	Style:       "toolkit",
	FirstName:   "John",
	LastName:    "Doe",
	DateOfBirth: "1990-01-01",
	Age:         36,
	DisplayText: "John Doe, is 36 years old",
	Save:        "enabled",
}

// =============================================================================
// Printer Tests
// =============================================================================

func TestPrinters_Machine(t *testing.T) {
	withLevel(t, PersonalityMachine)
	var buf bytes.Buffer

	Title(&buf, "ignored")
	Success(&buf, "saved")
	Warning(&buf, "declined")
	Event(&buf, "toolkit", "FirstName")
	Box(&buf, "Person", "a\nb")

	assert.Equal(t, "OK\tsaved\nWARN\tdeclined\nEVENT\ttoolkit\tFirstName\nPerson\ta b\n", buf.String())
}

func TestPrinters_Minimal(t *testing.T) {
	withLevel(t, PersonalityMinimal)
	var buf bytes.Buffer

	Success(&buf, "saved")
	Event(&buf, "classic", "Age")

	assert.Equal(t, "✓ saved\n→ classic.Age\n", buf.String())
}

func TestPrinters_FullContainsText(t *testing.T) {
	withLevel(t, PersonalityFull)
	var buf bytes.Buffer

	Title(&buf, "Person")
	Warning(&buf, "declined")
	Box(&buf, "Hello", "world")

	out := buf.String()
	for _, want := range []string{"Person", "declined", "Hello", "world"} {
		assert.Contains(t, out, want)
	}
}

// =============================================================================
// Card Tests
// =============================================================================

func TestRenderCard_Machine(t *testing.T) {
	withLevel(t, PersonalityMachine)

	out := RenderCard(sampleCard)

	assert.Contains(t, out, "first_name\tJohn\n")
	assert.Contains(t, out, "display_text\tJohn Doe, is 36 years old\n")
	assert.Contains(t, out, "save\tenabled\n")
}

func TestRenderCard_OmitsSaveWithoutCommands(t *testing.T) {
	withLevel(t, PersonalityMinimal)
	c := sampleCard
	c.Save = ""

	out := RenderCard(c)

	assert.NotContains(t, out, "save")
	assert.Contains(t, out, "age:")
}

func TestRenderCard_Full(t *testing.T) {
	withLevel(t, PersonalityFull)

	out := RenderCard(sampleCard)

	assert.Contains(t, out, "John Doe, is 36 years old")
	assert.Contains(t, out, "enabled")
}

// =============================================================================
// Table Tests
// =============================================================================

func TestRenderTable_Machine(t *testing.T) {
	withLevel(t, PersonalityMachine)

	out := RenderTable([]string{"a", "b"}, [][]string{{"1", "2"}, {"3", "4"}})

	assert.Equal(t, "a\tb\n1\t2\n3\t4\n", out)
}

func TestRenderTable_Full(t *testing.T) {
	withLevel(t, PersonalityFull)

	out := RenderTable([]string{"scenario", "style"}, [][]string{{"creation", "classic"}})

	assert.True(t, strings.Contains(out, "scenario"))
	assert.True(t, strings.Contains(out, "classic"))
}

func TestConfirmTheme(t *testing.T) {
	assert.NotNil(t, ConfirmTheme())
}
