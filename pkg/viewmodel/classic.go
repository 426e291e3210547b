// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package viewmodel

import (
	"context"
	"time"

	"github.com/vvidov/MVVMBenchmark/pkg/observable"
	"github.com/vvidov/MVVMBenchmark/pkg/person"
)

// Classic is the hand-written view-model. Every setter spells out its own
// dependent notifications and writes through to the Person.
type Classic struct {
	notifier *observable.Notifier
	person   person.Person
	clock    person.Clock
}

// NewClassic creates a Classic view-model with empty names and today's
// date of birth.
func NewClassic(opts ...Option) *Classic {
	o := buildOptions(opts)
	vm := &Classic{
		notifier: observable.NewNotifier(string(StyleClassic)),
		clock:    o.clock,
	}
	vm.person.DateOfBirth = person.Today(o.clock)

	if o.recorder != nil {
		rec := o.recorder
		vm.notifier.OnNotify(func(p observable.Property) {
			rec.PropertyChanged(context.Background(), string(StyleClassic), string(p))
		})
	}
	return vm
}

// Style implements PersonVM.
func (vm *Classic) Style() Style { return StyleClassic }

// FirstName implements PersonVM.
func (vm *Classic) FirstName() string { return vm.person.FirstName }

// SetFirstName implements PersonVM.
func (vm *Classic) SetFirstName(value string) {
	if observable.Set(vm.notifier, &vm.person.FirstName, value, PropFirstName) {
		vm.notifier.Notify(PropDisplayText)
	}
}

// LastName implements PersonVM.
func (vm *Classic) LastName() string { return vm.person.LastName }

// SetLastName implements PersonVM.
func (vm *Classic) SetLastName(value string) {
	if observable.Set(vm.notifier, &vm.person.LastName, value, PropLastName) {
		vm.notifier.Notify(PropDisplayText)
	}
}

// DateOfBirth implements PersonVM.
func (vm *Classic) DateOfBirth() time.Time { return vm.person.DateOfBirth }

// SetDateOfBirth implements PersonVM.
func (vm *Classic) SetDateOfBirth(value time.Time) {
	value = person.Date(value)
	if vm.person.DateOfBirth.Equal(value) {
		return
	}
	vm.person.DateOfBirth = value
	vm.notifier.Notify(PropDateOfBirth)
	vm.notifier.Notify(PropAge)
	vm.notifier.Notify(PropDisplayText)
}

// Age implements PersonVM.
func (vm *Classic) Age() int { return vm.person.Age(vm.clock) }

// DisplayText implements PersonVM.
func (vm *Classic) DisplayText() string {
	return displayText(vm.person.FirstName, vm.person.LastName, vm.Age())
}

// Person implements PersonVM. Fields write through, so this is always
// current.
func (vm *Classic) Person() person.Person { return vm.person }

// Subscribe implements PersonVM.
func (vm *Classic) Subscribe(h observable.Handler) func() {
	return vm.notifier.Subscribe(h)
}
