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

	"github.com/vvidov/MVVMBenchmark/pkg/command"
	"github.com/vvidov/MVVMBenchmark/pkg/confirm"
	"github.com/vvidov/MVVMBenchmark/pkg/logging"
	"github.com/vvidov/MVVMBenchmark/pkg/observable"
	"github.com/vvidov/MVVMBenchmark/pkg/person"
)

// Hooks is the view-model built from per-field change hooks. Each hook
// writes the new value through to the Person and announces DisplayText
// (and Age for the date of birth).
//
// Reset and Save are available, but Save's executability is never
// republished: subscribers to SaveCommand see no events, and CanExecute is
// evaluated only when asked.
type Hooks struct {
	notifier *observable.Notifier
	person   person.Person

	clock     person.Clock
	confirmer confirm.Confirmer
	logger    *logging.Logger

	reset *trackedCommand
	save  *trackedCommand
}

// NewHooks creates a Hooks view-model with empty names and today's date of
// birth.
func NewHooks(opts ...Option) *Hooks {
	o := buildOptions(opts)
	vm := &Hooks{
		notifier:  observable.NewNotifier(string(StyleHooks)),
		clock:     o.clock,
		confirmer: o.confirmer,
		logger:    o.logger.With("style", string(StyleHooks)),
	}
	vm.person.DateOfBirth = person.Today(o.clock)

	vm.reset = newTrackedCommand(StyleHooks, command.NewRelay(CommandReset, vm.runReset, nil), o.recorder)
	vm.save = newTrackedCommand(StyleHooks, command.NewRelay(CommandSave, vm.runSave, vm.CanUpdatePerson), o.recorder)

	if o.recorder != nil {
		rec := o.recorder
		vm.notifier.OnNotify(func(p observable.Property) {
			rec.PropertyChanged(context.Background(), string(StyleHooks), string(p))
		})
	}
	return vm
}

// Style implements PersonVM.
func (vm *Hooks) Style() Style { return StyleHooks }

// FirstName implements PersonVM.
func (vm *Hooks) FirstName() string { return vm.person.FirstName }

// SetFirstName implements PersonVM.
func (vm *Hooks) SetFirstName(value string) {
	if observable.Set(vm.notifier, &vm.person.FirstName, value, PropFirstName) {
		vm.onNameChanged()
	}
}

// LastName implements PersonVM.
func (vm *Hooks) LastName() string { return vm.person.LastName }

// SetLastName implements PersonVM.
func (vm *Hooks) SetLastName(value string) {
	if observable.Set(vm.notifier, &vm.person.LastName, value, PropLastName) {
		vm.onNameChanged()
	}
}

func (vm *Hooks) onNameChanged() {
	vm.notifier.Notify(PropDisplayText)
}

// DateOfBirth implements PersonVM.
func (vm *Hooks) DateOfBirth() time.Time { return vm.person.DateOfBirth }

// SetDateOfBirth implements PersonVM.
func (vm *Hooks) SetDateOfBirth(value time.Time) {
	value = person.Date(value)
	if vm.person.DateOfBirth.Equal(value) {
		return
	}
	vm.person.DateOfBirth = value
	vm.notifier.Notify(PropDateOfBirth)
	vm.onDateOfBirthChanged()
}

func (vm *Hooks) onDateOfBirthChanged() {
	vm.notifier.Notify(PropAge, PropDisplayText)
}

// Age implements PersonVM.
func (vm *Hooks) Age() int { return vm.person.Age(vm.clock) }

// DisplayText implements PersonVM.
func (vm *Hooks) DisplayText() string {
	return displayText(vm.person.FirstName, vm.person.LastName, vm.Age())
}

// CanUpdatePerson reports whether both names are non-blank. It gates Save.
func (vm *Hooks) CanUpdatePerson() bool {
	return canUpdatePerson(vm.person.FirstName, vm.person.LastName)
}

// Person implements PersonVM. Fields write through, so this is always
// current.
func (vm *Hooks) Person() person.Person { return vm.person }

// Subscribe implements PersonVM.
func (vm *Hooks) Subscribe(h observable.Handler) func() {
	return vm.notifier.Subscribe(h)
}

// ResetCommand implements Commander.
func (vm *Hooks) ResetCommand() command.Command { return vm.reset }

// SaveCommand implements Commander.
func (vm *Hooks) SaveCommand() command.Command { return vm.save }

func (vm *Hooks) runReset() {
	if !vm.reset.confirm(vm.confirmer, vm.logger) {
		return
	}
	vm.SetFirstName("")
	vm.SetLastName("")
	vm.SetDateOfBirth(person.Today(vm.clock))
	vm.logger.Debug("person reset")
}

// runSave has nothing to copy since every edit already reached the Person.
func (vm *Hooks) runSave() {
	vm.logger.Debug("person saved", "age", vm.Age())
}
