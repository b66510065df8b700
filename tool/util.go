// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package tool

import (
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/cockroachdb/arbor"
)

var stdout = io.Writer(os.Stdout)
var stderr = io.Writer(os.Stderr)
var osExit = os.Exit

// order is a flag naming a traversal order.
type order struct {
	name string
	fn   func(root *node) iter.Seq[*node]
}

var orders = map[string]func(root *node) iter.Seq[*node]{
	"bfs":  arbor.BreadthFirst[*node],
	"dfs":  arbor.DepthFirst[*node],
	"pre":  arbor.PreOrder[*node],
	"post": arbor.PostOrder[*node],
	"in":   arbor.InOrder[*node],
}

func (o *order) String() string {
	return o.name
}

func (o *order) Type() string {
	return "order"
}

func (o *order) Set(name string) error {
	fn, ok := orders[name]
	if !ok {
		return fmt.Errorf("unknown order: %q (bfs, dfs, pre, post or in)", name)
	}
	o.name, o.fn = name, fn
	return nil
}

func (o *order) mustSet(name string) {
	if err := o.Set(name); err != nil {
		panic(err)
	}
}

// label renders a node as "id", "id(name)" or, with values, "id(name)=value".
func label(n *node, values bool) string {
	if values && n.Value != "" {
		return n.String() + "=" + n.Value
	}
	return n.String()
}

func joinIDs(seq iter.Seq[*node]) string {
	var b strings.Builder
	for n := range seq {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(n.ID())
	}
	return b.String()
}

func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// nodeKey is the per-node input to fingerprints: everything but the structure.
func nodeKey(n *node) []byte {
	return []byte(n.ID() + "\x00" + n.Name + "\x00" + n.Value)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
