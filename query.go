// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package arbor

import "iter"

// Count returns the number of nodes in the tree.
func Count[N Branch[N]](root N) int {
	n := 0
	for range PreOrder(root) {
		n++
	}
	return n
}

// Leaves returns the nodes without children, in pre-order.
func Leaves[N Branch[N]](root N) iter.Seq[N] {
	nodes := PreOrder(root)
	return func(yield func(N) bool) {
		for n := range nodes {
			if len(n.Children()) == 0 && !yield(n) {
				return
			}
		}
	}
}

// CountLeaves returns the number of nodes without children. It is at least 1
// for any tree.
func CountLeaves[N Branch[N]](root N) int {
	n := 0
	for range Leaves(root) {
		n++
	}
	return n
}

// CountInternal returns the number of nodes with at least one child.
func CountInternal[N Branch[N]](root N) int {
	return Count(root) - CountLeaves(root)
}

// Descendants returns every node below root, in pre-order.
func Descendants[N Branch[N]](root N) iter.Seq[N] {
	nodes := PreOrder(root)
	return func(yield func(N) bool) {
		first := true
		for n := range nodes {
			if first {
				first = false
				continue
			}
			if !yield(n) {
				return
			}
		}
	}
}

// NodesAtDepth returns the nodes exactly depth levels below root, left to
// right. Depth 0 yields root itself; a negative depth yields nothing.
func NodesAtDepth[N Branch[N]](root N, depth int) iter.Seq[N] {
	checkRoot(root)
	return func(yield func(N) bool) {
		var walk func(n N, d int) bool
		walk = func(n N, d int) bool {
			if d == 0 {
				return yield(n)
			}
			for _, c := range n.Children() {
				if !walk(c, d-1) {
					return false
				}
			}
			return true
		}
		if depth >= 0 {
			walk(root, depth)
		}
	}
}

// MaxDepth returns the largest depth of any leaf below root. It is 0 when
// root is itself a leaf.
func MaxDepth[N Branch[N]](root N) int {
	checkRoot(root)
	return height(root)
}

// height is the number of edges on the longest downward path from n.
func height[N Branch[N]](n N) int {
	h := 0
	for _, c := range n.Children() {
		h = max(h, height(c)+1)
	}
	return h
}

// Find returns the first node, in breadth-first order, that satisfies pred.
func Find[N Branch[N]](root N, pred func(N) bool) (N, bool) {
	for n := range BreadthFirst(root) {
		if pred(n) {
			return n, true
		}
	}
	var zero N
	return zero, false
}
