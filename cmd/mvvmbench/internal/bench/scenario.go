// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package bench

import (
	"errors"
	"fmt"
	"time"

	"github.com/vvidov/MVVMBenchmark/pkg/confirm"
	"github.com/vvidov/MVVMBenchmark/pkg/observable"
	"github.com/vvidov/MVVMBenchmark/pkg/viewmodel"
)

var (
	// ErrUnknownScenario is returned for scenario names not in Scenarios.
	ErrUnknownScenario = errors.New("unknown scenario")

	// ErrUnknownStyle is returned for style names viewmodel does not know.
	ErrUnknownStyle = errors.New("unknown style")

	// ErrUnsupported is returned by Prepare when a scenario needs commands
	// the style does not expose.
	ErrUnsupported = errors.New("scenario not supported by style")
)

// Inputs shared by every scenario.
const (
	FirstName        = "John"
	LastName         = "Doe"
	FirstNameUpdated = "John Updated"
)

// DateOfBirth is the date used when a scenario sets one.
var DateOfBirth = time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC)

// delivered counts notifications seen by the notifications scenario.
var delivered int

// Op is one measured operation. i counts up from zero.
type Op func(i int)

// Scenario is a named workload run against one view-model style.
type Scenario struct {
	Name        string
	Description string

	// Commands is true when the scenario drives Reset and Save.
	Commands bool

	// Prepare builds per-run state and returns the measured operation.
	Prepare func(style viewmodel.Style, opts ...viewmodel.Option) (Op, error)
}

// Supports reports whether s can run against style.
func (s Scenario) Supports(style viewmodel.Style) bool {
	if !s.Commands {
		return true
	}
	vm, err := viewmodel.New(style)
	if err != nil {
		return false
	}
	_, ok := vm.(viewmodel.Commander)
	return ok
}

var scenarios = []Scenario{
	{
		Name:        "property-update",
		Description: "alternate FirstName between two values",
		Prepare: func(style viewmodel.Style, opts ...viewmodel.Option) (Op, error) {
			vm, err := viewmodel.New(style, opts...)
			if err != nil {
				return nil, err
			}
			return func(i int) {
				if i%2 == 0 {
					vm.SetFirstName(FirstNameUpdated)
				} else {
					vm.SetFirstName(FirstName)
				}
			}, nil
		},
	},
	{
		Name:        "creation",
		Description: "construct a view-model and fill every field",
		Prepare: func(style viewmodel.Style, opts ...viewmodel.Option) (Op, error) {
			newVM, err := viewmodel.Constructor(style)
			if err != nil {
				return nil, err
			}
			return func(int) {
				vm := newVM(opts...)
				vm.SetFirstName(FirstName)
				vm.SetLastName(LastName)
				vm.SetDateOfBirth(DateOfBirth)
			}, nil
		},
	},
	{
		Name:        "command",
		Description: "fill names, Save, then a confirmed Reset",
		Commands:    true,
		Prepare: func(style viewmodel.Style, opts ...viewmodel.Option) (Op, error) {
			opts = append(opts, viewmodel.WithConfirmer(confirm.Always(confirm.Yes)))
			vm, err := viewmodel.New(style, opts...)
			if err != nil {
				return nil, err
			}
			cmdr, ok := vm.(viewmodel.Commander)
			if !ok {
				return nil, fmt.Errorf("%w: %s needs commands, %s has none", ErrUnsupported, "command", style)
			}
			return func(int) {
				cmdr.SetFirstName(FirstName)
				cmdr.SetLastName(LastName)
				cmdr.SaveCommand().Execute()
				cmdr.ResetCommand().Execute()
			}, nil
		},
	},
	{
		Name:        "property-chain",
		Description: "change DateOfBirth and read the derived DisplayText",
		Prepare: func(style viewmodel.Style, opts ...viewmodel.Option) (Op, error) {
			vm, err := viewmodel.New(style, opts...)
			if err != nil {
				return nil, err
			}
			vm.SetFirstName(FirstName)
			vm.SetLastName(LastName)
			return func(i int) {
				vm.SetDateOfBirth(DateOfBirth.AddDate(0, 0, i%2))
				_ = vm.DisplayText()
			}, nil
		},
	},
	{
		Name:        "notifications",
		Description: "toggle LastName with a subscriber attached",
		Prepare: func(style viewmodel.Style, opts ...viewmodel.Option) (Op, error) {
			vm, err := viewmodel.New(style, opts...)
			if err != nil {
				return nil, err
			}
			vm.Subscribe(func(observable.PropertyChanged) { delivered++ })
			return func(i int) {
				if i%2 == 0 {
					vm.SetLastName(LastName)
				} else {
					vm.SetLastName("")
				}
			}, nil
		},
	},
}

// Scenarios returns every scenario in report order.
func Scenarios() []Scenario {
	out := make([]Scenario, len(scenarios))
	copy(out, scenarios)
	return out
}

// Lookup finds a scenario by name.
func Lookup(name string) (Scenario, error) {
	for _, s := range scenarios {
		if s.Name == name {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
}

// ParseStyles converts names to styles, wrapping ErrUnknownStyle.
func ParseStyles(names []string) ([]viewmodel.Style, error) {
	out := make([]viewmodel.Style, 0, len(names))
	for _, n := range names {
		s, err := viewmodel.ParseStyle(n)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, n)
		}
		out = append(out, s)
	}
	return out, nil
}
