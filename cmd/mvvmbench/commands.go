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
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvidov/MVVMBenchmark/cmd/mvvmbench/config"
	"github.com/vvidov/MVVMBenchmark/pkg/confirm"
	"github.com/vvidov/MVVMBenchmark/pkg/logging"
	"github.com/vvidov/MVVMBenchmark/pkg/ux"
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	// Global flags
	configPath       string
	logLevel         string
	personalityLevel string
	telemetryMode    string

	cfg    config.MVVMBenchConfig
	logger *logging.Logger
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{in: in, out: out, errOut: errOut, logger: logging.Nop()}
}

// execute runs the command line in args. The logger is closed however the
// command ends.
func (a *app) execute(args []string) error {
	defer func() { a.logger.Close() }()

	cmd := a.rootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func (a *app) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mvvmbench",
		Short: "Exercise and benchmark observable Person view-models",
		Long: `mvvmbench drives a Person view-model (first name, last name, date of
birth, derived age and display text) in three styles: classic hand-written
notifications, per-field change hooks with Reset and Save commands, and
toolkit dependency tables that also republish Save's state.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	rootCmd.SetIn(a.in)
	rootCmd.SetOut(a.out)
	rootCmd.SetErr(a.errOut)

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "",
		"Config file (default ~/.mvvmbench/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "",
		"Log level: debug, info, warn, error (overrides log.level)")
	rootCmd.PersistentFlags().StringVar(&a.personalityLevel, "personality", "",
		"Output style: full, minimal, or machine (scripting)")
	rootCmd.PersistentFlags().StringVar(&a.telemetryMode, "telemetry", "",
		"Telemetry exporter: off or stdout (overrides telemetry.mode)")

	rootCmd.AddCommand(a.showCmd())
	rootCmd.AddCommand(a.editCmd())
	rootCmd.AddCommand(a.benchCmd())
	return rootCmd
}

// setup loads config, then applies flag overrides to logging and the UX
// personality.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	path, err := config.ResolvePath(a.configPath)
	if err != nil {
		return err
	}
	a.configPath = path

	cfg, created, err := config.Load(path)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.telemetryMode != "" {
		cfg.Telemetry.Mode = a.telemetryMode
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}
	a.cfg = cfg

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}
	a.logger = logging.New(logging.Config{
		Level:   level,
		JSON:    cfg.Log.JSON,
		LogDir:  cfg.Log.Dir,
		Service: "mvvmbench",
		Output:  a.errOut,
	})

	if a.personalityLevel != "" {
		ux.SetPersonality(ux.ParsePersonalityLevel(a.personalityLevel))
	} else {
		ux.InitPersonality(cfg.UI.Personality)
	}

	if created {
		a.logger.Info("created default config", "path", a.configPath)
	}
	a.logger.Debug("command started", "command", cmd.Name(), "personality", string(ux.GetPersonality()))
	return nil
}

// confirmer resolves the Reset confirmation source from the --yes/--no
// flags, falling back to confirm.mode.
func (a *app) confirmer(yes, no bool) confirm.Confirmer {
	switch {
	case yes:
		return confirm.Always(confirm.Yes)
	case no:
		return confirm.Always(confirm.No)
	}
	switch a.cfg.Confirm.Mode {
	case config.ConfirmYes:
		return confirm.Always(confirm.Yes)
	case config.ConfirmNo:
		return confirm.Always(confirm.No)
	}
	opts := []confirm.TerminalOption{confirm.WithOutput(a.errOut), confirm.WithLogger(a.logger)}
	if f, ok := a.in.(*os.File); ok {
		opts = append(opts, confirm.WithInput(f))
	} else {
		opts = append(opts, confirm.WithInput(nil))
	}
	return confirm.NewTerminal(opts...)
}
