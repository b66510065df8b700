// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package indenttree parses hierarchies written with indentation; see Parse.
package indenttree

import (
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
)

// Parse a multi-line input string into trees of nodes. For example:
//
//	a
//	 a1
//	  a11
//	 a2
//	b
//	 b1
//
// is parsed into two Nodes (a and b). Node a has two children (a1, a2), and a1
// has one child (a11); node b has one child (b1).
//
// Blank lines and lines starting with '#' (after indentation) are ignored.
//
// The amount of indentation is arbitrary but every distinct indentation
// defines one level, and a line may be at most one level deeper than the line
// before it. For example, the following is not valid because b1 skips a
// level:
//
//	a
//	 a1
//	b
//	  b1
//
// Tabs cannot be used for indentation.
func Parse(input string) ([]Node, error) {
	type line struct {
		indent int
		text   string
		num    int
	}
	var lines []line
	for i, l := range strings.Split(input, "\n") {
		text := strings.TrimLeft(l, " ")
		if strings.TrimSpace(text) == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if text[0] == '\t' {
			return nil, errors.Newf("indenttree: line %d: tab indentation", i+1)
		}
		lines = append(lines, line{
			indent: len(l) - len(text),
			text:   strings.TrimRight(text, " \t\r"),
			num:    i + 1,
		})
	}
	if len(lines) == 0 {
		return nil, errors.New("indenttree: empty input")
	}

	indents := make([]int, len(lines))
	for i := range lines {
		indents[i] = lines[i].indent
	}
	slices.Sort(indents)
	indents = slices.Compact(indents)

	var roots []*Node
	// stack[i] is the most recent node at level i.
	var stack []*Node
	for _, l := range lines {
		level, _ := slices.BinarySearch(indents, l.indent)
		if level > len(stack) {
			return nil, errors.Newf("indenttree: line %d: inconsistent indentation", l.num)
		}
		n := &Node{value: l.text, line: l.num}
		stack = append(stack[:level], n)
		if level == 0 {
			roots = append(roots, n)
		} else {
			p := stack[level-1]
			p.children = append(p.children, n)
		}
	}
	result := make([]Node, len(roots))
	for i, r := range roots {
		result[i] = *r
	}
	return result, nil
}

// Node in a hierarchy returned by Parse.
type Node struct {
	value    string
	line     int
	children []*Node
}

// Value returns the contents of the line for this node, without the
// indentation.
func (n Node) Value() string {
	return n.value
}

// Line returns the 1-based line number of the node in the input.
func (n Node) Line() int {
	return n.line
}

// Children returns the child nodes, if any.
func (n Node) Children() []*Node {
	return n.children
}
