// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package tui provides the interactive person editor.
//
// # Description
//
// The editor binds three text inputs to a view-model. Every keystroke is
// pushed into the view-model, and the derived display text, age and Save
// state are read back on each render. Reset asks for confirmation through
// an in-app overlay: the overlay collects the answer first, then the
// view-model's Reset command runs and receives that answer from its
// confirmer.
//
// # Thread Safety
//
// The model is meant for the single bubbletea event loop. Do not access it
// from other goroutines.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vvidov/MVVMBenchmark/pkg/command"
	"github.com/vvidov/MVVMBenchmark/pkg/confirm"
	"github.com/vvidov/MVVMBenchmark/pkg/observable"
	"github.com/vvidov/MVVMBenchmark/pkg/person"
	"github.com/vvidov/MVVMBenchmark/pkg/ux"
	"github.com/vvidov/MVVMBenchmark/pkg/viewmodel"
)

// =============================================================================
// Fields
// =============================================================================

type field int

const (
	fieldFirst field = iota
	fieldLast
	fieldDOB
	fieldCount
)

var fieldLabels = [fieldCount]string{"First name", "Last name", "Date of birth"}

// maxEvents bounds the notification log.
const maxEvents = 8

// =============================================================================
// Overlay confirmer
// =============================================================================

// overlayConfirmer answers with whatever the overlay last collected.
type overlayConfirmer struct {
	answer confirm.Result
	last   confirm.Request
}

func (c *overlayConfirmer) Ask(message, title string, buttons confirm.Buttons) confirm.Result {
	c.last = confirm.Request{Message: message, Title: title, Buttons: buttons}
	answer := c.answer
	c.answer = confirm.None
	return answer
}

// eventLog keeps the most recent notifications, newest last.
type eventLog struct {
	lines []string
}

func (l *eventLog) add(line string) {
	l.lines = append(l.lines, line)
	if len(l.lines) > maxEvents {
		l.lines = l.lines[len(l.lines)-maxEvents:]
	}
}

// =============================================================================
// Model
// =============================================================================

// EditorModel is the bubbletea model for the person editor.
type EditorModel struct {
	vm        viewmodel.PersonVM
	commands  viewmodel.Commander
	confirmer *overlayConfirmer
	events    *eventLog
	unsub     []func()

	inputs  [fieldCount]textinput.Model
	focused field

	dobErr      string
	status      string
	showConfirm bool
	quitting    bool
}

// NewEditor creates an editor around a new view-model of the given style.
// The editor installs its own confirmer; any WithConfirmer in opts is
// overridden.
func NewEditor(style viewmodel.Style, opts ...viewmodel.Option) (EditorModel, error) {
	confirmer := &overlayConfirmer{}
	vm, err := viewmodel.New(style, append(opts, viewmodel.WithConfirmer(confirmer))...)
	if err != nil {
		return EditorModel{}, err
	}

	m := EditorModel{
		vm:        vm,
		confirmer: confirmer,
		events:    &eventLog{},
	}
	if c, ok := vm.(viewmodel.Commander); ok {
		m.commands = c
	}

	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 64
		ti.Width = 32
		m.inputs[i] = ti
	}
	m.inputs[fieldDOB].Placeholder = person.DateLayout
	m.inputs[fieldDOB].CharLimit = len(person.DateLayout)
	m.syncInputs()
	m.inputs[fieldFirst].Focus()

	events := m.events
	m.unsub = append(m.unsub, vm.Subscribe(func(e observable.PropertyChanged) {
		events.add(e.Source + " " + string(e.Property))
	}))
	if m.commands != nil {
		m.unsub = append(m.unsub, m.commands.SaveCommand().OnCanExecuteChanged(func(c command.Command) {
			events.add(fmt.Sprintf("%s %s", c.Name(), command.StateOf(c)))
		}))
	}
	return m, nil
}

// ViewModel returns the bound view-model.
func (m EditorModel) ViewModel() viewmodel.PersonVM { return m.vm }

// Events returns the recent notification log, oldest first.
func (m EditorModel) Events() []string {
	out := make([]string, len(m.events.lines))
	copy(out, m.events.lines)
	return out
}

// Close removes the editor's subscriptions.
func (m EditorModel) Close() {
	for _, u := range m.unsub {
		u()
	}
}

// Init implements tea.Model.
func (m EditorModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
		return m, cmd
	}

	if m.showConfirm {
		return m.handleConfirmInput(key)
	}

	switch key.String() {
	case "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "tab", "down", "enter":
		return m.focus((m.focused + 1) % fieldCount)

	case "shift+tab", "up":
		return m.focus((m.focused + fieldCount - 1) % fieldCount)

	case "ctrl+s":
		m.save()
		return m, nil

	case "ctrl+r":
		if m.commands == nil {
			m.status = "Reset needs a style with commands"
			return m, nil
		}
		m.showConfirm = true
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	m.push(m.focused)
	return m, cmd
}

func (m EditorModel) focus(f field) (EditorModel, tea.Cmd) {
	m.inputs[m.focused].Blur()
	m.focused = f
	return m, m.inputs[f].Focus()
}

// push writes the value of input f into the view-model.
func (m *EditorModel) push(f field) {
	value := m.inputs[f].Value()
	switch f {
	case fieldFirst:
		m.vm.SetFirstName(value)
	case fieldLast:
		m.vm.SetLastName(value)
	case fieldDOB:
		dob, err := person.ParseDate(value)
		if err != nil {
			m.dobErr = "expected " + person.DateLayout
			return
		}
		m.dobErr = ""
		m.vm.SetDateOfBirth(dob)
	}
}

// syncInputs copies the view-model's fields into the inputs.
func (m *EditorModel) syncInputs() {
	m.inputs[fieldFirst].SetValue(m.vm.FirstName())
	m.inputs[fieldLast].SetValue(m.vm.LastName())
	m.inputs[fieldDOB].SetValue(person.FormatDate(m.vm.DateOfBirth()))
	m.dobErr = ""
}

func (m *EditorModel) save() {
	if m.commands == nil {
		m.status = "classic style writes through, nothing to save"
		return
	}
	if m.commands.SaveCommand().Execute() {
		m.status = "Saved " + m.vm.DisplayText()
		return
	}
	m.status = "Save is disabled until both names are set"
}

// =============================================================================
// Confirmation Handling
// =============================================================================

func (m EditorModel) handleConfirmInput(msg tea.KeyMsg) (EditorModel, tea.Cmd) {
	var answer confirm.Result
	switch msg.String() {
	case "y", "Y":
		answer = confirm.Yes
	case "n", "N", "esc":
		answer = confirm.No
	default:
		return m, nil
	}

	m.showConfirm = false
	m.confirmer.answer = answer
	m.commands.ResetCommand().Execute()

	if answer == confirm.Yes {
		m.syncInputs()
		m.status = "Cleared"
	} else {
		m.status = "Reset cancelled"
	}
	return m, nil
}

// =============================================================================
// Rendering
// =============================================================================

var (
	labelStyle   = lipgloss.NewStyle().Width(15).Foreground(ux.ColorTealPrimary)
	focusedLabel = labelStyle.Bold(true).Foreground(ux.ColorTealBright)
	helpStyle    = ux.Styles.Muted
)

// View implements tea.Model.
func (m EditorModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(ux.Styles.Title.Render("Person ("+string(m.vm.Style())+")") + "\n\n")

	for i := range m.inputs {
		label := labelStyle
		if field(i) == m.focused {
			label = focusedLabel
		}
		b.WriteString(label.Render(fieldLabels[i]) + m.inputs[i].View())
		if field(i) == fieldDOB && m.dobErr != "" {
			b.WriteString(" " + ux.Styles.Error.Render(m.dobErr))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Age") + fmt.Sprint(m.vm.Age()) + "\n")
	b.WriteString(labelStyle.Render("Display") + ux.Styles.Value.Render(m.vm.DisplayText()) + "\n")
	if m.commands != nil {
		b.WriteString(labelStyle.Render("Save") + command.StateOf(m.commands.SaveCommand()).String() + "\n")
	}

	if m.showConfirm {
		b.WriteString("\n" + m.renderConfirm() + "\n")
	}

	if m.status != "" {
		b.WriteString("\n" + ux.Styles.Highlight.Render(m.status) + "\n")
	}

	if len(m.events.lines) > 0 {
		b.WriteString("\n" + helpStyle.Render("notifications") + "\n")
		for _, line := range m.events.lines {
			b.WriteString(helpStyle.Render("  "+line) + "\n")
		}
	}

	b.WriteString("\n" + helpStyle.Render("tab next field • ctrl+s save • ctrl+r reset • esc quit") + "\n")
	return b.String()
}

func (m EditorModel) renderConfirm() string {
	body := ux.Styles.Title.Render(confirm.ResetTitle) + "\n" +
		confirm.ResetMessage + "\n\n" +
		helpStyle.Render("[y] Yes   [n] No")
	return ux.Styles.WarningBox.Render(body)
}
