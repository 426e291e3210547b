// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvidov/MVVMBenchmark/pkg/command"
	"github.com/vvidov/MVVMBenchmark/pkg/confirm"
	"github.com/vvidov/MVVMBenchmark/pkg/observable"
	"github.com/vvidov/MVVMBenchmark/pkg/person"
	"github.com/vvidov/MVVMBenchmark/pkg/ux"
	"github.com/vvidov/MVVMBenchmark/pkg/viewmodel"
)

type showOptions struct {
	style     string
	firstName string
	lastName  string
	dob       string
	save      bool
	reset     bool
	yes       bool
	no        bool
	trace     bool
}

func (a *app) showCmd() *cobra.Command {
	var opts showOptions
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Apply edits to a view-model and print the result",
		Long: `show creates a view-model, applies --first, --last and --dob in that
order, runs Save and then Reset when asked, and prints the final state.`,
		Example: `  mvvmbench show --first John --last Doe --dob 1990-01-01 --save
  mvvmbench show --style classic --first John --trace
  mvvmbench show --first John --last Doe --reset --yes`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runShow(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.style, "style", string(viewmodel.StyleToolkit), "View-model style: classic, hooks or toolkit")
	f.StringVar(&opts.firstName, "first", "", "First name")
	f.StringVar(&opts.lastName, "last", "", "Last name")
	f.StringVar(&opts.dob, "dob", "", "Date of birth (YYYY-MM-DD)")
	f.BoolVar(&opts.save, "save", false, "Execute Save after the edits")
	f.BoolVar(&opts.reset, "reset", false, "Execute Reset after the edits")
	f.BoolVar(&opts.yes, "yes", false, "Answer Yes to the Reset confirmation")
	f.BoolVar(&opts.no, "no", false, "Answer No to the Reset confirmation")
	f.BoolVar(&opts.trace, "trace", false, "Print every change notification")
	cmd.MarkFlagsMutuallyExclusive("yes", "no")
	return cmd
}

func (a *app) runShow(cmd *cobra.Command, opts showOptions) error {
	style, err := viewmodel.ParseStyle(opts.style)
	if err != nil {
		return err
	}
	var dob time.Time
	if cmd.Flags().Changed("dob") {
		if dob, err = person.ParseDate(opts.dob); err != nil {
			return err
		}
	}

	rec, shutdown, err := initTelemetry(telemetrySetup{Mode: a.cfg.Telemetry.Mode, Out: a.errOut})
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			a.logger.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	var answer confirm.Result
	inner := a.confirmer(opts.yes, opts.no)
	tracked := confirm.Func(func(message, title string, buttons confirm.Buttons) confirm.Result {
		answer = inner.Ask(message, title, buttons)
		return answer
	})

	vm, err := viewmodel.New(style,
		viewmodel.WithConfirmer(tracked),
		viewmodel.WithLogger(a.logger),
		viewmodel.WithRecorder(rec),
	)
	if err != nil {
		return err
	}
	cmdr, hasCommands := vm.(viewmodel.Commander)

	out := cmd.OutOrStdout()
	if opts.trace {
		vm.Subscribe(func(e observable.PropertyChanged) {
			ux.Event(out, e.Source, string(e.Property))
		})
		if hasCommands {
			cmdr.SaveCommand().OnCanExecuteChanged(func(c command.Command) {
				ux.Event(out, c.Name(), command.StateOf(c).String())
			})
		}
	}

	f := cmd.Flags()
	if f.Changed("first") {
		vm.SetFirstName(opts.firstName)
	}
	if f.Changed("last") {
		vm.SetLastName(opts.lastName)
	}
	if f.Changed("dob") {
		vm.SetDateOfBirth(dob)
	}

	if (opts.save || opts.reset) && !hasCommands {
		ux.Warning(out, string(style)+" style has no commands, --save and --reset ignored")
	}
	if opts.save && hasCommands {
		if cmdr.SaveCommand().Execute() {
			ux.Success(out, "saved")
		} else {
			ux.Warning(out, "save disabled: first and last name are required")
		}
	}
	if opts.reset && hasCommands {
		cmdr.ResetCommand().Execute()
		if answer == confirm.Yes {
			ux.Success(out, "cleared")
		} else {
			ux.Warning(out, "reset declined ("+answer.String()+")")
		}
	}

	ux.PrintCard(out, cardOf(vm))
	return nil
}

// cardOf snapshots vm for rendering.
func cardOf(vm viewmodel.PersonVM) ux.Card {
	c := ux.Card{
		Style:       string(vm.Style()),
		FirstName:   vm.FirstName(),
		LastName:    vm.LastName(),
		DateOfBirth: person.FormatDate(vm.DateOfBirth()),
		Age:         vm.Age(),
		DisplayText: vm.DisplayText(),
	}
	if cmdr, ok := vm.(viewmodel.Commander); ok {
		c.Save = command.StateOf(cmdr.SaveCommand()).String()
	}
	return c
}
