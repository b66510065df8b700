// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package tool

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/spf13/cobra"
)

// runTests runs the datadriven tests in the given file. Each directive is a
// command line: the command and its arguments, followed by any further
// arguments in the input. Output to stdout and stderr is returned.
func runTests(t *testing.T, path string) {
	datadriven.RunTest(t, path, func(t *testing.T, d *datadriven.TestData) string {
		args := []string{d.Cmd}
		for _, arg := range d.CmdArgs {
			args = append(args, arg.String())
		}
		args = append(args, strings.Fields(d.Input)...)

		var buf bytes.Buffer
		stdout = &buf
		stderr = &buf
		osExit = func(int) {}
		defer func() {
			stdout = os.Stdout
			stderr = os.Stderr
			osExit = os.Exit
		}()

		c := &cobra.Command{}
		c.AddCommand(New().Commands...)
		c.SetArgs(args)
		c.SetOut(&buf)
		c.SetErr(&buf)
		c.SilenceUsage = true
		c.SilenceErrors = true
		if err := c.Execute(); err != nil {
			return err.Error()
		}
		return buf.String()
	})
}

func TestShow(t *testing.T) {
	runTests(t, "testdata/show")
}

func TestWalk(t *testing.T) {
	runTests(t, "testdata/walk")
}

func TestInspect(t *testing.T) {
	runTests(t, "testdata/inspect")
}

func TestValidate(t *testing.T) {
	runTests(t, "testdata/validate")
}

func TestBuild(t *testing.T) {
	runTests(t, "testdata/build")
}

func TestDiff(t *testing.T) {
	runTests(t, "testdata/diff")
}
