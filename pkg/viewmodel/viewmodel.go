// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package viewmodel implements the observable Person view-model in three
// styles whose notification overhead can be compared.
//
// # Description
//
// Every style wraps a person.Person, exposes first name, last name and
// date of birth with change notification, and derives Age and DisplayText
// on every read:
//
//   - StyleClassic writes every setter by hand and writes straight through
//     to the owned Person. It has no commands.
//   - StyleHooks announces dependents from per-field change hooks, writes
//     through to the Person and adds Reset and Save. Save's executability
//     is never republished.
//   - StyleToolkit drives dependent notifications from a static dependency
//     table and adds the Reset and Save commands. Edits are buffered and
//     committed to the Person by Save.
//
// # Notification Order
//
// A setter that changes state emits the primary property first and then
// its dependents in declared order, all before it returns. Writing the
// current value emits nothing.
//
//	FirstName   -> FirstName, DisplayText [, CanUpdatePerson, Save executability (toolkit)]
//	LastName    -> LastName, DisplayText [, CanUpdatePerson, Save executability (toolkit)]
//	DateOfBirth -> DateOfBirth, Age, DisplayText
//
// # Thread Safety
//
// View-models are single-threaded. Each instance must be owned by one
// goroutine.
package viewmodel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vvidov/MVVMBenchmark/pkg/command"
	"github.com/vvidov/MVVMBenchmark/pkg/confirm"
	"github.com/vvidov/MVVMBenchmark/pkg/logging"
	"github.com/vvidov/MVVMBenchmark/pkg/observable"
	"github.com/vvidov/MVVMBenchmark/pkg/person"
	"github.com/vvidov/MVVMBenchmark/pkg/telemetry"
)

// Property names emitted by view-models.
const (
	PropFirstName       observable.Property = "FirstName"
	PropLastName        observable.Property = "LastName"
	PropDateOfBirth     observable.Property = "DateOfBirth"
	PropAge             observable.Property = "Age"
	PropDisplayText     observable.Property = "DisplayText"
	PropCanUpdatePerson observable.Property = "CanUpdatePerson"
)

// Command names.
const (
	CommandReset = "Reset"
	CommandSave  = "Save"
)

// PersonVM is the surface shared by every view-model style.
type PersonVM interface {
	Style() Style

	FirstName() string
	SetFirstName(value string)

	LastName() string
	SetLastName(value string)

	// DateOfBirth is a civil date at midnight UTC.
	DateOfBirth() time.Time
	SetDateOfBirth(value time.Time)

	Age() int
	DisplayText() string

	// Person returns a copy of the owned Person record.
	Person() person.Person

	Subscribe(h observable.Handler) (unsubscribe func())
}

// Commander is implemented by styles that expose Reset and Save.
type Commander interface {
	PersonVM

	CanUpdatePerson() bool
	ResetCommand() command.Command
	SaveCommand() command.Command
}

// =============================================================================
// Styles
// =============================================================================

// Style selects a view-model implementation.
type Style string

const (
	// StyleClassic is the hand-written setter style.
	StyleClassic Style = "classic"

	// StyleHooks is the change-hook style with commands.
	StyleHooks Style = "hooks"

	// StyleToolkit is the dependency-table style with commands.
	StyleToolkit Style = "toolkit"
)

// ErrUnknownStyle is returned for unrecognised style names.
var ErrUnknownStyle = errors.New("unknown view-model style")

// Styles lists every style, baseline first.
func Styles() []Style {
	return []Style{StyleClassic, StyleHooks, StyleToolkit}
}

// ParseStyle converts a name to a Style.
func ParseStyle(s string) (Style, error) {
	style := Style(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := constructors[style]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStyle, s)
	}
	return style, nil
}

var constructors = map[Style]func(...Option) PersonVM{
	StyleClassic: func(opts ...Option) PersonVM { return NewClassic(opts...) },
	StyleHooks:   func(opts ...Option) PersonVM { return NewHooks(opts...) },
	StyleToolkit: func(opts ...Option) PersonVM { return NewToolkit(opts...) },
}

// Constructor returns the constructor for style. Callers building many
// view-models resolve it once and call it without an error path.
func Constructor(style Style) (func(opts ...Option) PersonVM, error) {
	ctor, ok := constructors[style]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, style)
	}
	return ctor, nil
}

// New creates a view-model of the given style.
func New(style Style, opts ...Option) (PersonVM, error) {
	ctor, err := Constructor(style)
	if err != nil {
		return nil, err
	}
	return ctor(opts...), nil
}

// =============================================================================
// Options
// =============================================================================

// Option configures a view-model.
type Option func(*options)

type options struct {
	clock     person.Clock
	confirmer confirm.Confirmer
	logger    *logging.Logger
	recorder  *telemetry.Recorder
}

func buildOptions(opts []Option) options {
	o := options{
		clock:     person.SystemClock,
		confirmer: confirm.Always(confirm.No),
		logger:    logging.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithClock sets the source of "today" for Age and Reset.
func WithClock(c person.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithConfirmer sets the confirmation capability used by Reset. Without
// it Reset is always declined.
func WithConfirmer(c confirm.Confirmer) Option {
	return func(o *options) {
		if c != nil {
			o.confirmer = c
		}
	}
}

// WithLogger sets the logger for command decisions.
func WithLogger(l *logging.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRecorder enables metrics and spans.
func WithRecorder(r *telemetry.Recorder) Option {
	return func(o *options) { o.recorder = r }
}

// =============================================================================
// Derived values
// =============================================================================

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// displayText is empty only when both names are blank.
func displayText(firstName, lastName string, age int) string {
	if isBlank(firstName) && isBlank(lastName) {
		return ""
	}
	return fmt.Sprintf("%s %s, is %d years old", firstName, lastName, age)
}

func canUpdatePerson(firstName, lastName string) bool {
	return !isBlank(firstName) && !isBlank(lastName)
}
