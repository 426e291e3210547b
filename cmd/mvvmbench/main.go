// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Command mvvmbench drives the Person view-models from the terminal: a
// one-shot show command, an interactive editor and a benchmark harness
// comparing the view-model styles.
package main

import (
	"os"

	"github.com/vvidov/MVVMBenchmark/pkg/ux"
)

func main() {
	if err := newApp(os.Stdin, os.Stdout, os.Stderr).execute(os.Args[1:]); err != nil {
		ux.Warning(os.Stderr, err.Error())
		os.Exit(1)
	}
}
