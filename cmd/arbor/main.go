// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/cockroachdb/arbor/tool"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "arbor [command] (flags)",
	Short: "arbor hierarchy introspection tool",
	Long: `
Inspect hierarchies stored as indented text, YAML or JSON records, or rows of
a SQLite table. Every record names its id and, unless it is a root, the id of
its parent.
`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	log.SetFlags(0)

	cobra.EnableCommandSorting = false
	rootCmd.AddCommand(tool.New().Commands...)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
