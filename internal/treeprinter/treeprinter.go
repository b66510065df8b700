// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package treeprinter renders hierarchies as text with box-drawing
// connectors:
//
//	root
//	├── a
//	│   └── a1
//	└── b
package treeprinter

import (
	"fmt"
	"strings"
)

// Node is a handle on a line of the output. The Node returned by New is an
// invisible top level: each of its children starts at column zero.
type Node struct {
	n *node
}

type node struct {
	text     string
	children []*node
}

// New returns the invisible top level of an empty tree.
func New() Node {
	return Node{n: &node{}}
}

// Child adds a line below n and returns a handle on it.
func (n Node) Child(text string) Node {
	c := &node{text: text}
	n.n.children = append(n.n.children, c)
	return Node{n: c}
}

// Childf is Child with a formatted line.
func (n Node) Childf(format string, args ...interface{}) Node {
	return n.Child(fmt.Sprintf(format, args...))
}

// String renders the children of n (and their descendants); n's own line is
// not included. Every line, including the last, ends in a newline.
func (n Node) String() string {
	var b strings.Builder
	for _, c := range n.n.children {
		c.format(&b, "", "")
	}
	return b.String()
}

func (n *node) format(b *strings.Builder, first, rest string) {
	b.WriteString(first)
	b.WriteString(n.text)
	b.WriteByte('\n')
	for i, c := range n.children {
		if i == len(n.children)-1 {
			c.format(b, rest+"└── ", rest+"    ")
		} else {
			c.format(b, rest+"├── ", rest+"│   ")
		}
	}
}
