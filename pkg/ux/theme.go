// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmTheme returns the huh theme used for yes/no prompts.
func ConfirmTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.BorderForeground(ColorTealDeep)
	t.Focused.Title = t.Focused.Title.Foreground(ColorTealBright).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(ColorSlate)
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(lipgloss.Color("#0F1923")).
		Background(ColorTealPrimary)
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Foreground(ColorTealPrimary).
		Background(lipgloss.Color("#0D2F39"))

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
	return t
}
