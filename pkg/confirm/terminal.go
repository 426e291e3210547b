// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package confirm

import (
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/vvidov/MVVMBenchmark/pkg/logging"
	"github.com/vvidov/MVVMBenchmark/pkg/ux"
)

// Terminal is a Confirmer that shows a huh confirm prompt.
//
// # Description
//
// When the input is not a terminal (piped input, CI) no prompt is shown
// and the answer is No. A prompt aborted with ctrl+c is also No. Any
// other prompt failure is logged and answered with None.
//
// # Thread Safety
//
// Ask blocks on user input and must not be called concurrently.
type Terminal struct {
	in     *os.File
	out    io.Writer
	logger *logging.Logger

	// prompt is replaceable in tests.
	prompt func(req Request) (bool, error)

	// isTerminal is replaceable in tests.
	isTerminal func(fd uintptr) bool
}

// TerminalOption configures a Terminal.
type TerminalOption func(*Terminal)

// WithInput sets the file read for answers (default os.Stdin).
func WithInput(f *os.File) TerminalOption {
	return func(t *Terminal) { t.in = f }
}

// WithOutput sets where the prompt is drawn (default os.Stderr).
func WithOutput(w io.Writer) TerminalOption {
	return func(t *Terminal) { t.out = w }
}

// WithLogger sets the logger for fallback and failure messages.
func WithLogger(l *logging.Logger) TerminalOption {
	return func(t *Terminal) { t.logger = l }
}

// NewTerminal creates a Terminal confirmer.
func NewTerminal(opts ...TerminalOption) *Terminal {
	t := &Terminal{
		in:     os.Stdin,
		out:    os.Stderr,
		logger: logging.Nop(),
		isTerminal: func(fd uintptr) bool {
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
	}
	t.prompt = t.runForm
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Ask implements Confirmer.
func (t *Terminal) Ask(message, title string, buttons Buttons) Result {
	if buttons != YesNo {
		t.logger.Warn("unsupported confirmation buttons", "buttons", buttons.String())
		return None
	}
	if t.in == nil || !t.isTerminal(t.in.Fd()) {
		t.logger.Warn("confirmation needs an interactive terminal, answering No", "title", title)
		return No
	}

	ok, err := t.prompt(Request{Message: message, Title: title, Buttons: buttons})
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			t.logger.Debug("confirmation aborted", "title", title)
			return No
		}
		t.logger.Error("confirmation prompt failed", "title", title, "error", err)
		return None
	}
	if ok {
		return Yes
	}
	return No
}

// form builds the huh form for req, binding the answer to value.
func (t *Terminal) form(req Request, value *bool) *huh.Form {
	field := huh.NewConfirm().
		Title(req.Title).
		Description(req.Message).
		Affirmative("Yes").
		Negative("No").
		Value(value)

	return huh.NewForm(huh.NewGroup(field)).
		WithTheme(ux.ConfirmTheme()).
		WithInput(t.in).
		WithOutput(t.out).
		WithShowHelp(false)
}

func (t *Terminal) runForm(req Request) (bool, error) {
	var ok bool
	if err := t.form(req, &ok).Run(); err != nil {
		return false, err
	}
	return ok, nil
}
