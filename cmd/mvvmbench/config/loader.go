// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

var validate = validator.New()

// DefaultPath returns ~/.mvvmbench/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find the user's home directory: %w", err)
	}
	return filepath.Join(home, ".mvvmbench", "config.yaml"), nil
}

// ResolvePath returns path, or DefaultPath when path is empty.
func ResolvePath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return DefaultPath()
}

// Load reads and validates the config at path, creating it with the
// defaults if it does not exist yet. An empty path means DefaultPath.
//
// Keys missing from the file keep their default values.
func Load(path string) (MVVMBenchConfig, bool, error) {
	path, err := ResolvePath(path)
	if err != nil {
		return MVVMBenchConfig{}, false, err
	}

	created := false
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := createDefault(path); err != nil {
			return MVVMBenchConfig{}, false, err
		}
		created = true
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return MVVMBenchConfig{}, created, fmt.Errorf("failed to read the config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return MVVMBenchConfig{}, created, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, created, nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (MVVMBenchConfig, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return MVVMBenchConfig{}, fmt.Errorf("failed to parse the config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return MVVMBenchConfig{}, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func Validate(cfg MVVMBenchConfig) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: %s fails %q (got %v)", ErrInvalidConfig, fe.Namespace(), fe.Tag(), fe.Value())
	}
	return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
}

func createDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create the config directory: %w", err)
	}
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
