// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ux provides terminal output styling for the mvvmbench CLI.
//
// Every printer takes an io.Writer and renders according to the current
// PersonalityLevel: styled for full, plain with icons for minimal, and
// tab-separated for machine.
package ux

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette - teal brand colors with standard semantic colors
var (
	ColorTealBright  = lipgloss.Color("#2CD7C7")
	ColorTealPrimary = lipgloss.Color("#20B9B4")
	ColorTealDeep    = lipgloss.Color("#16858E")
	ColorSlate       = lipgloss.Color("#2C4A54")

	ColorSuccess = lipgloss.Color("#2CD7C7")
	ColorWarning = lipgloss.Color("#F4D03F")
	ColorError   = lipgloss.Color("#E74C3C")
)

// Styles provides pre-configured lipgloss styles
var Styles = struct {
	Title     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Highlight lipgloss.Style

	Box        lipgloss.Style
	WarningBox lipgloss.Style

	TableHeader lipgloss.Style
	TableCell   lipgloss.Style
}{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(ColorTealBright),
	Label:     lipgloss.NewStyle().Foreground(ColorTealPrimary).Width(14),
	Value:     lipgloss.NewStyle().Bold(true),
	Muted:     lipgloss.NewStyle().Foreground(ColorSlate),
	Success:   lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning:   lipgloss.NewStyle().Foreground(ColorWarning),
	Error:     lipgloss.NewStyle().Foreground(ColorError),
	Highlight: lipgloss.NewStyle().Foreground(ColorTealBright).Bold(true),

	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorTealDeep).
		Padding(0, 1),
	WarningBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorWarning).
		Padding(0, 1),

	TableHeader: lipgloss.NewStyle().Bold(true).Foreground(ColorTealBright).Padding(0, 1),
	TableCell:   lipgloss.NewStyle().Padding(0, 1),
}

// Icon provides themed status icons
type Icon string

const (
	IconSuccess Icon = "✓"
	IconWarning Icon = "⚠"
	IconError   Icon = "✗"
	IconPending Icon = "○"
	IconArrow   Icon = "→"
)

// Render returns the icon with appropriate styling
func (i Icon) Render() string {
	switch i {
	case IconSuccess:
		return Styles.Success.Render(string(i))
	case IconWarning:
		return Styles.Warning.Render(string(i))
	case IconError:
		return Styles.Error.Render(string(i))
	case IconPending:
		return Styles.Muted.Render(string(i))
	default:
		return string(i)
	}
}

// Title prints a styled title. Machine output omits it.
func Title(w io.Writer, text string) {
	if GetPersonality() == PersonalityMachine {
		return
	}
	fmt.Fprintln(w, Styles.Title.Render(text))
}

// Success prints a success message with checkmark
func Success(w io.Writer, text string) {
	switch GetPersonality() {
	case PersonalityMachine:
		fmt.Fprintf(w, "OK\t%s\n", text)
	case PersonalityMinimal:
		fmt.Fprintf(w, "%s %s\n", IconSuccess, text)
	default:
		fmt.Fprintf(w, "%s %s\n", IconSuccess.Render(), Styles.Success.Render(text))
	}
}

// Warning prints a warning message
func Warning(w io.Writer, text string) {
	switch GetPersonality() {
	case PersonalityMachine:
		fmt.Fprintf(w, "WARN\t%s\n", text)
	case PersonalityMinimal:
		fmt.Fprintf(w, "%s %s\n", IconWarning, text)
	default:
		fmt.Fprintf(w, "%s %s\n", IconWarning.Render(), Styles.Warning.Render(text))
	}
}

// Event prints one notification line, used by --trace.
func Event(w io.Writer, source, name string) {
	switch GetPersonality() {
	case PersonalityMachine:
		fmt.Fprintf(w, "EVENT\t%s\t%s\n", source, name)
	case PersonalityMinimal:
		fmt.Fprintf(w, "%s %s.%s\n", IconArrow, source, name)
	default:
		fmt.Fprintf(w, "%s %s %s\n", Styles.Muted.Render(string(IconArrow)), Styles.Muted.Render(source), name)
	}
}

// Box prints text in a rounded box
func Box(w io.Writer, title, content string) {
	if GetPersonality() == PersonalityMachine {
		fmt.Fprintf(w, "%s\t%s\n", title, strings.ReplaceAll(content, "\n", " "))
		return
	}
	fmt.Fprintln(w, Styles.Box.Render(Styles.Title.Render(title)+"\n"+content))
}
