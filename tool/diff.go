// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package tool

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/arbor"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/spf13/cobra"
)

func (t *treeT) runDiff(cmd *cobra.Command, args []string) {
	var forests [2]*forest
	for i, path := range args {
		f, ok := t.load(cmd, path)
		if !ok {
			return
		}
		forests[i] = f
	}
	a, b := forests[0].trees(), forests[1].trees()
	if len(a) == len(b) {
		same := true
		for i := range a {
			if arbor.Fingerprint(a[i], nodeKey) != arbor.Fingerprint(b[i], nodeKey) {
				same = false
				break
			}
		}
		if same {
			fmt.Fprintf(stdout, "no differences\n")
			return
		}
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(strings.TrimSuffix(t.render(forests[0], true), "\n")),
		B:        difflib.SplitLines(strings.TrimSuffix(t.render(forests[1], true), "\n")),
		FromFile: args[0],
		ToFile:   args[1],
		Context:  t.context,
	})
	if err != nil {
		fmt.Fprintf(stderr, "%s\n", err)
		osExit(1)
		return
	}
	fmt.Fprint(stdout, diff)
}
