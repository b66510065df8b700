// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package indenttree

import (
	"fmt"
	"testing"

	"github.com/cockroachdb/arbor/internal/treeprinter"
	"github.com/cockroachdb/datadriven"
)

func TestIndentTree(t *testing.T) {
	datadriven.RunTest(t, "testdata/indent_tree", func(t *testing.T, d *datadriven.TestData) string {
		switch d.Cmd {
		case "parse":
			nodes, err := Parse(d.Input)
			if err != nil {
				return fmt.Sprintf("error: %s", err)
			}
			tp := treeprinter.New()
			var add func(n *Node, parent treeprinter.Node)
			add = func(n *Node, parent treeprinter.Node) {
				child := parent.Childf("%s (line %d)", n.Value(), n.Line())
				for _, c := range n.Children() {
					add(c, child)
				}
			}
			for i := range nodes {
				add(&nodes[i], tp)
			}
			return tp.String()

		default:
			d.Fatalf(t, "unknown command: %s", d.Cmd)
			return ""
		}
	})
}
