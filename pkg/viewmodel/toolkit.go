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
	"github.com/vvidov/MVVMBenchmark/pkg/telemetry"
)

// dependency lists what must be re-announced after a property changes.
type dependency struct {
	properties []observable.Property
	commands   []string
}

// toolkitDependencies is the static dependency table. Order matters: it is
// the emission order.
var toolkitDependencies = map[observable.Property]dependency{
	PropFirstName: {
		properties: []observable.Property{PropDisplayText, PropCanUpdatePerson},
		commands:   []string{CommandSave},
	},
	PropLastName: {
		properties: []observable.Property{PropDisplayText, PropCanUpdatePerson},
		commands:   []string{CommandSave},
	},
	PropDateOfBirth: {
		properties: []observable.Property{PropAge, PropDisplayText},
	},
}

// Toolkit is the command-gating view-model.
//
// Field edits are held by the view-model and copied into the owned Person
// when Save executes.
type Toolkit struct {
	notifier *observable.Notifier

	firstName   string
	lastName    string
	dateOfBirth time.Time

	committed person.Person

	clock     person.Clock
	confirmer confirm.Confirmer
	logger    *logging.Logger
	recorder  *telemetry.Recorder

	reset    *trackedCommand
	save     *trackedCommand
	commands map[string]*trackedCommand
}

// NewToolkit creates a Toolkit view-model with empty names, today's date
// of birth and a disabled Save command.
func NewToolkit(opts ...Option) *Toolkit {
	o := buildOptions(opts)
	today := person.Today(o.clock)

	vm := &Toolkit{
		notifier:    observable.NewNotifier(string(StyleToolkit)),
		dateOfBirth: today,
		committed:   person.Person{DateOfBirth: today},
		clock:       o.clock,
		confirmer:   o.confirmer,
		logger:      o.logger.With("style", string(StyleToolkit)),
		recorder:    o.recorder,
	}

	vm.reset = newTrackedCommand(StyleToolkit, command.NewRelay(CommandReset, vm.runReset, nil), o.recorder)
	vm.save = newTrackedCommand(StyleToolkit, command.NewRelay(CommandSave, vm.runSave, vm.CanUpdatePerson), o.recorder)
	vm.commands = map[string]*trackedCommand{
		CommandReset: vm.reset,
		CommandSave:  vm.save,
	}

	if o.recorder != nil {
		rec := o.recorder
		vm.notifier.OnNotify(func(p observable.Property) {
			rec.PropertyChanged(context.Background(), string(StyleToolkit), string(p))
		})
	}
	return vm
}

// changed emits p and everything that depends on it.
func (vm *Toolkit) changed(p observable.Property) {
	vm.notifier.Notify(p)
	dep, ok := toolkitDependencies[p]
	if !ok {
		return
	}
	vm.notifier.Notify(dep.properties...)
	for _, name := range dep.commands {
		vm.commands[name].NotifyCanExecuteChanged()
	}
}

// Style implements PersonVM.
func (vm *Toolkit) Style() Style { return StyleToolkit }

// FirstName implements PersonVM.
func (vm *Toolkit) FirstName() string { return vm.firstName }

// SetFirstName implements PersonVM.
func (vm *Toolkit) SetFirstName(value string) {
	if vm.firstName == value {
		return
	}
	vm.firstName = value
	vm.changed(PropFirstName)
}

// LastName implements PersonVM.
func (vm *Toolkit) LastName() string { return vm.lastName }

// SetLastName implements PersonVM.
func (vm *Toolkit) SetLastName(value string) {
	if vm.lastName == value {
		return
	}
	vm.lastName = value
	vm.changed(PropLastName)
}

// DateOfBirth implements PersonVM.
func (vm *Toolkit) DateOfBirth() time.Time { return vm.dateOfBirth }

// SetDateOfBirth implements PersonVM.
func (vm *Toolkit) SetDateOfBirth(value time.Time) {
	value = person.Date(value)
	if vm.dateOfBirth.Equal(value) {
		return
	}
	vm.dateOfBirth = value
	vm.changed(PropDateOfBirth)
}

// Age implements PersonVM.
func (vm *Toolkit) Age() int {
	return person.AgeOn(vm.dateOfBirth, person.Today(vm.clock))
}

// DisplayText implements PersonVM.
func (vm *Toolkit) DisplayText() string {
	return displayText(vm.firstName, vm.lastName, vm.Age())
}

// CanUpdatePerson reports whether both names are non-blank. It gates Save.
func (vm *Toolkit) CanUpdatePerson() bool {
	return canUpdatePerson(vm.firstName, vm.lastName)
}

// Person implements PersonVM. It returns the record as of the last Save.
func (vm *Toolkit) Person() person.Person { return vm.committed }

// Subscribe implements PersonVM.
func (vm *Toolkit) Subscribe(h observable.Handler) func() {
	return vm.notifier.Subscribe(h)
}

// ResetCommand implements Commander.
func (vm *Toolkit) ResetCommand() command.Command { return vm.reset }

// SaveCommand implements Commander.
func (vm *Toolkit) SaveCommand() command.Command { return vm.save }

// =============================================================================
// Command bodies
// =============================================================================

func (vm *Toolkit) runReset() {
	if !vm.reset.confirm(vm.confirmer, vm.logger) {
		return
	}

	vm.SetFirstName("")
	vm.SetLastName("")
	vm.SetDateOfBirth(person.Today(vm.clock))
	vm.logger.Debug("person reset")
}

func (vm *Toolkit) runSave() {
	vm.committed = person.Person{
		FirstName:   vm.firstName,
		LastName:    vm.lastName,
		DateOfBirth: vm.dateOfBirth,
	}
	vm.logger.Debug("person saved", "age", vm.Age())
}

// =============================================================================
// Tracked commands
// =============================================================================

// trackedCommand adds telemetry around a Relay.
type trackedCommand struct {
	*command.Relay

	style    Style
	recorder *telemetry.Recorder

	// declined is set by a command body that ran but chose not to act.
	declined bool
}

func newTrackedCommand(style Style, relay *command.Relay, rec *telemetry.Recorder) *trackedCommand {
	return &trackedCommand{Relay: relay, style: style, recorder: rec}
}

// confirm asks c to approve a Reset and records the answer. A declined
// confirmation marks the current execution as declined.
func (c *trackedCommand) confirm(confirmer confirm.Confirmer, logger *logging.Logger) bool {
	answer := confirmer.Ask(confirm.ResetMessage, confirm.ResetTitle, confirm.YesNo)
	c.recorder.ConfirmRequested(context.Background(), confirm.ResetTitle, answer.String())

	if answer != confirm.Yes {
		c.declined = true
		logger.Debug("reset declined", "answer", answer.String())
		return false
	}
	return true
}

// NotifyCanExecuteChanged hands subscribers the tracked command, so an
// Execute from a subscriber is recorded too.
func (c *trackedCommand) NotifyCanExecuteChanged() {
	c.Relay.NotifyCanExecuteChangedFor(c)
}

// Execute implements command.Command.
func (c *trackedCommand) Execute() bool {
	_, finish := c.recorder.StartCommand(context.Background(), string(c.style), c.Name())
	c.declined = false

	ran := c.Relay.Execute()
	switch {
	case !ran:
		finish(telemetry.OutcomeDisabled)
	case c.declined:
		finish(telemetry.OutcomeDeclined)
	default:
		finish(telemetry.OutcomeExecuted)
	}
	return ran
}
