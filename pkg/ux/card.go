// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Card is a rendered snapshot of a person view-model.
type Card struct {
	Style       string
	FirstName   string
	LastName    string
	DateOfBirth string
	Age         int
	DisplayText string

	// Save is "enabled", "disabled" or empty when the style has no commands.
	Save string
}

func (c Card) rows() [][2]string {
	rows := [][2]string{
		{"style", c.Style},
		{"first name", c.FirstName},
		{"last name", c.LastName},
		{"date of birth", c.DateOfBirth},
		{"age", fmt.Sprint(c.Age)},
		{"display text", c.DisplayText},
	}
	if c.Save != "" {
		rows = append(rows, [2]string{"save", c.Save})
	}
	return rows
}

// RenderCard returns the card in the current personality.
func RenderCard(c Card) string {
	var b strings.Builder
	switch GetPersonality() {
	case PersonalityMachine:
		for _, r := range c.rows() {
			fmt.Fprintf(&b, "%s\t%s\n", strings.ReplaceAll(r[0], " ", "_"), r[1])
		}
		return b.String()
	case PersonalityMinimal:
		for _, r := range c.rows() {
			fmt.Fprintf(&b, "%-14s %s\n", r[0]+":", r[1])
		}
		return b.String()
	}

	lines := make([]string, 0, 8)
	for _, r := range c.rows() {
		value := Styles.Value.Render(r[1])
		if r[0] == "save" {
			value = saveBadge(r[1])
		}
		lines = append(lines, Styles.Label.Render(r[0])+value)
	}
	return Styles.Box.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)) + "\n"
}

// PrintCard writes RenderCard(c) to w.
func PrintCard(w io.Writer, c Card) {
	fmt.Fprint(w, RenderCard(c))
}

func saveBadge(state string) string {
	if state == "enabled" {
		return IconSuccess.Render() + " " + Styles.Success.Render(state)
	}
	return IconPending.Render() + " " + Styles.Muted.Render(state)
}

// RenderTable renders rows under headers. Machine personality produces
// tab-separated lines with a header line.
func RenderTable(headers []string, rows [][]string) string {
	if GetPersonality() == PersonalityMachine {
		var b strings.Builder
		b.WriteString(strings.Join(headers, "\t"))
		b.WriteByte('\n')
		for _, r := range rows {
			b.WriteString(strings.Join(r, "\t"))
			b.WriteByte('\n')
		}
		return b.String()
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorTealDeep)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return Styles.TableHeader
			}
			return Styles.TableCell
		})
	return t.Render() + "\n"
}
