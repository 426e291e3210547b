// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package confirm

import (
	"errors"
	"os"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvidov/MVVMBenchmark/pkg/logging"
)

// =============================================================================
// Port Tests
// =============================================================================

func TestAlways(t *testing.T) {
	assert.Equal(t, Yes, Always(Yes).Ask(ResetMessage, ResetTitle, YesNo))
	assert.Equal(t, No, Always(No).Ask(ResetMessage, ResetTitle, YesNo))
}

func TestFunc_PassesArguments(t *testing.T) {
	var got Request
	c := Func(func(message, title string, buttons Buttons) Result {
		got = Request{Message: message, Title: title, Buttons: buttons}
		return Yes
	})

	assert.Equal(t, Yes, c.Ask("Are you sure?", "Confirm Clear", YesNo))
	assert.Equal(t, Request{Message: "Are you sure?", Title: "Confirm Clear", Buttons: YesNo}, got)
}

func TestRecorder(t *testing.T) {
	r := &Recorder{Answer: No}

	_, ok := r.Last()
	assert.False(t, ok)

	assert.Equal(t, No, r.Ask("m1", "t1", YesNo))
	assert.Equal(t, No, r.Ask("m2", "t2", YesNo))

	last, ok := r.Last()
	require.True(t, ok)
	assert.Equal(t, "m2", last.Message)
	assert.Len(t, r.Requests, 2)
}

func TestResultString(t *testing.T) {
	assert.Equal(t, "Yes", Yes.String())
	assert.Equal(t, "No", No.String())
	assert.Equal(t, "None", None.String())
	assert.Equal(t, "YesNo", YesNo.String())
	assert.Equal(t, "unknown", Buttons(7).String())
}

// =============================================================================
// Terminal Tests
// =============================================================================

func newTestTerminal(tty bool, prompt func(Request) (bool, error)) *Terminal {
	term := NewTerminal(WithInput(os.Stdin), WithLogger(logging.Nop()))
	term.isTerminal = func(uintptr) bool { return tty }
	if prompt != nil {
		term.prompt = prompt
	}
	return term
}

func TestTerminal_NotATerminalAnswersNo(t *testing.T) {
	called := false
	term := newTestTerminal(false, func(Request) (bool, error) {
		called = true
		return true, nil
	})

	assert.Equal(t, No, term.Ask(ResetMessage, ResetTitle, YesNo))
	assert.False(t, called, "prompt must not run without a terminal")
}

func TestTerminal_MapsAnswers(t *testing.T) {
	yes := newTestTerminal(true, func(Request) (bool, error) { return true, nil })
	no := newTestTerminal(true, func(Request) (bool, error) { return false, nil })

	assert.Equal(t, Yes, yes.Ask(ResetMessage, ResetTitle, YesNo))
	assert.Equal(t, No, no.Ask(ResetMessage, ResetTitle, YesNo))
}

func TestTerminal_ForwardsRequest(t *testing.T) {
	var got Request
	term := newTestTerminal(true, func(req Request) (bool, error) {
		got = req
		return false, nil
	})

	term.Ask(ResetMessage, ResetTitle, YesNo)

	assert.Equal(t, Request{Message: "Are you sure?", Title: "Confirm Clear", Buttons: YesNo}, got)
}

func TestTerminal_AbortIsNo(t *testing.T) {
	term := newTestTerminal(true, func(Request) (bool, error) { return false, huh.ErrUserAborted })
	assert.Equal(t, No, term.Ask(ResetMessage, ResetTitle, YesNo))
}

func TestTerminal_FailureIsNone(t *testing.T) {
	term := newTestTerminal(true, func(Request) (bool, error) { return false, errors.New("boom") })
	assert.Equal(t, None, term.Ask(ResetMessage, ResetTitle, YesNo))
}

func TestTerminal_UnsupportedButtons(t *testing.T) {
	term := newTestTerminal(true, func(Request) (bool, error) { return true, nil })
	assert.Equal(t, None, term.Ask(ResetMessage, ResetTitle, Buttons(3)))
}

func TestTerminal_NilInputAnswersNo(t *testing.T) {
	term := newTestTerminal(true, nil)
	term.in = nil
	assert.Equal(t, No, term.Ask(ResetMessage, ResetTitle, YesNo))
}

func TestTerminal_FormBuilds(t *testing.T) {
	term := NewTerminal()
	var value bool
	form := term.form(Request{Message: ResetMessage, Title: ResetTitle, Buttons: YesNo}, &value)
	assert.NotNil(t, form)
}
