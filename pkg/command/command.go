// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package command implements gated actions for view-models.
//
// A command bundles an execute function with a canExecute predicate.
// Executability is never re-evaluated implicitly: the owner calls
// NotifyCanExecuteChanged after mutating an input of the predicate, and
// subscribers are told synchronously.
package command

// Command is a named action that may currently be allowed or not.
type Command interface {
	// Name identifies the command in logs and telemetry.
	Name() string

	// CanExecute reports whether Execute would run.
	CanExecute() bool

	// Execute runs the action if it is allowed and reports whether it ran.
	Execute() bool

	// OnCanExecuteChanged subscribes to executability re-evaluations.
	OnCanExecuteChanged(fn func(Command)) (unsubscribe func())
}

// State is the executability of a command.
type State int

const (
	// Disabled means CanExecute returns false.
	Disabled State = iota

	// Enabled means CanExecute returns true.
	Enabled
)

// String returns "enabled" or "disabled".
func (s State) String() string {
	if s == Enabled {
		return "enabled"
	}
	return "disabled"
}

// StateOf returns the current State of c.
func StateOf(c Command) State {
	if c.CanExecute() {
		return Enabled
	}
	return Disabled
}

// Relay is a Command backed by two closures.
type Relay struct {
	name       string
	execute    func()
	canExecute func() bool
	listeners  []listener
	nextID     int
}

type listener struct {
	id int
	fn func(Command)
}

// NewRelay creates a Relay. A nil canExecute means always executable.
func NewRelay(name string, execute func(), canExecute func() bool) *Relay {
	return &Relay{
		name:       name,
		execute:    execute,
		canExecute: canExecute,
	}
}

// Name implements Command.
func (r *Relay) Name() string {
	return r.name
}

// CanExecute implements Command.
func (r *Relay) CanExecute() bool {
	if r.canExecute == nil {
		return true
	}
	return r.canExecute()
}

// Execute implements Command. It is a no-op while the command is disabled.
func (r *Relay) Execute() bool {
	if !r.CanExecute() {
		return false
	}
	if r.execute != nil {
		r.execute()
	}
	return true
}

// OnCanExecuteChanged implements Command.
func (r *Relay) OnCanExecuteChanged(fn func(Command)) func() {
	if fn == nil {
		return func() {}
	}
	r.nextID++
	id := r.nextID
	r.listeners = append(r.listeners, listener{id: id, fn: fn})

	return func() {
		for i, l := range r.listeners {
			if l.id == id {
				r.listeners = append(r.listeners[:i:i], r.listeners[i+1:]...)
				return
			}
		}
	}
}

// NotifyCanExecuteChanged tells subscribers to re-query CanExecute.
func (r *Relay) NotifyCanExecuteChanged() {
	r.NotifyCanExecuteChangedFor(r)
}

// NotifyCanExecuteChangedFor is NotifyCanExecuteChanged with sender handed
// to subscribers in place of r. Types embedding a Relay pass themselves so
// subscribers that call Execute go through the wrapper.
func (r *Relay) NotifyCanExecuteChangedFor(sender Command) {
	if sender == nil {
		sender = r
	}
	snapshot := r.listeners
	for _, l := range snapshot {
		l.fn(sender)
	}
}
