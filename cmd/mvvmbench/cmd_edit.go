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
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vvidov/MVVMBenchmark/cmd/mvvmbench/internal/tui"
	"github.com/vvidov/MVVMBenchmark/pkg/ux"
	"github.com/vvidov/MVVMBenchmark/pkg/viewmodel"
)

func (a *app) editCmd() *cobra.Command {
	var style string
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a person interactively",
		Long: `edit opens a terminal form bound to a view-model. Every keystroke
updates the view-model; ctrl+s saves, ctrl+r asks to clear, esc quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runEdit(cmd, style)
		},
	}
	cmd.Flags().StringVar(&style, "style", string(viewmodel.StyleToolkit), "View-model style: classic, hooks or toolkit")
	return cmd
}

func (a *app) runEdit(cmd *cobra.Command, styleName string) error {
	style, err := viewmodel.ParseStyle(styleName)
	if err != nil {
		return err
	}
	if ux.GetPersonality() == ux.PersonalityMachine {
		return fmt.Errorf("edit needs an interactive terminal; use show instead")
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

	model, err := tui.NewEditor(style, viewmodel.WithLogger(a.logger), viewmodel.WithRecorder(rec))
	if err != nil {
		return err
	}
	defer model.Close()

	p := tea.NewProgram(model,
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("editor: %w", err)
	}

	if m, ok := final.(tui.EditorModel); ok {
		ux.PrintCard(cmd.OutOrStdout(), cardOf(m.ViewModel()))
	}
	a.logger.Info("editor closed", "style", string(style))
	return nil
}
