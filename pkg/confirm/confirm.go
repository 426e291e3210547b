// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package confirm defines the yes/no confirmation capability consumed by
// view-model commands, plus implementations for tests and terminals.
package confirm

// Buttons selects the choices offered to the user.
type Buttons int

const (
	// YesNo offers "Yes" and "No".
	YesNo Buttons = iota
)

// String returns the button set name.
func (b Buttons) String() string {
	switch b {
	case YesNo:
		return "YesNo"
	default:
		return "unknown"
	}
}

// Result is the user's answer.
type Result int

const (
	// None means no definitive answer was given (dismissed, failed).
	None Result = iota

	// Yes is an affirmative answer.
	Yes

	// No is a negative answer.
	No
)

// String returns "Yes", "No" or "None".
func (r Result) String() string {
	switch r {
	case Yes:
		return "Yes"
	case No:
		return "No"
	default:
		return "None"
	}
}

// Prompt for the Reset command.
const (
	ResetMessage = "Are you sure?"
	ResetTitle   = "Confirm Clear"
)

// Confirmer asks the user a yes/no question and blocks until answered.
//
// Callers must treat anything other than Yes as a refusal.
type Confirmer interface {
	Ask(message, title string, buttons Buttons) Result
}

// Func adapts a function to Confirmer.
type Func func(message, title string, buttons Buttons) Result

// Ask implements Confirmer.
func (f Func) Ask(message, title string, buttons Buttons) Result {
	return f(message, title, buttons)
}

// Always returns a Confirmer that answers r without asking.
func Always(r Result) Confirmer {
	return Func(func(string, string, Buttons) Result { return r })
}

// Request captures the arguments of one Ask call.
type Request struct {
	Message string
	Title   string
	Buttons Buttons
}

// Recorder is a Confirmer that answers with Answer and remembers every
// request it was given.
type Recorder struct {
	Answer   Result
	Requests []Request
}

// Ask implements Confirmer.
func (r *Recorder) Ask(message, title string, buttons Buttons) Result {
	r.Requests = append(r.Requests, Request{Message: message, Title: title, Buttons: buttons})
	return r.Answer
}

// Last returns the most recent request and whether there was one.
func (r *Recorder) Last() (Request, bool) {
	if len(r.Requests) == 0 {
		return Request{}, false
	}
	return r.Requests[len(r.Requests)-1], true
}
