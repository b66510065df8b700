// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package arbor

import (
	"iter"
	"slices"

	"github.com/cockroachdb/arbor/internal/invariants"
)

// The traversal functions return lazy sequences: nothing is visited until the
// sequence is ranged over, each range starts from the root again, and
// breaking out of the loop stops the walk.
//
// All of them panic if root is nil. None of them defend against cycles in the
// children lists outside of invariants builds; run Validate (or build an
// Index) on input that is not known to be a tree.

// BreadthFirst returns the nodes in level order, left to right within a level.
func BreadthFirst[N Branch[N]](root N) iter.Seq[N] {
	checkRoot(root)
	return func(yield func(N) bool) {
		var visited invariants.Visited
		queue := []N{root}
		for len(queue) > 0 {
			n := queue[0]
			queue = queue[1:]
			if invariants.Enabled {
				visited.Add(n)
			}
			if !yield(n) {
				return
			}
			queue = append(queue, n.Children()...)
		}
	}
}

// DepthFirst walks the tree with an explicit stack. Children are pushed in
// reverse so that they are popped in their stored order; the result is the
// same as PreOrder without recursion.
func DepthFirst[N Branch[N]](root N) iter.Seq[N] {
	checkRoot(root)
	return func(yield func(N) bool) {
		var visited invariants.Visited
		stack := []N{root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if invariants.Enabled {
				visited.Add(n)
			}
			if !yield(n) {
				return
			}
			children := n.Children()
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, children[i])
			}
		}
	}
}

// PreOrder visits a node, then each child subtree left to right.
func PreOrder[N Branch[N]](root N) iter.Seq[N] {
	checkRoot(root)
	return func(yield func(N) bool) {
		var visited invariants.Visited
		var walk func(n N) bool
		walk = func(n N) bool {
			if invariants.Enabled {
				visited.Add(n)
			}
			if !yield(n) {
				return false
			}
			for _, c := range n.Children() {
				if !walk(c) {
					return false
				}
			}
			return true
		}
		walk(root)
	}
}

// PostOrder visits each child subtree left to right, then the node.
func PostOrder[N Branch[N]](root N) iter.Seq[N] {
	checkRoot(root)
	return func(yield func(N) bool) {
		var visited invariants.Visited
		var walk func(n N) bool
		walk = func(n N) bool {
			if invariants.Enabled {
				visited.Add(n)
			}
			for _, c := range n.Children() {
				if !walk(c) {
					return false
				}
			}
			return yield(n)
		}
		walk(root)
	}
}

// InOrder visits the first child's subtree, then the node, then the subtrees
// of the remaining children. For nodes with exactly two children this is the
// usual binary in-order.
func InOrder[N Branch[N]](root N) iter.Seq[N] {
	checkRoot(root)
	return func(yield func(N) bool) {
		var visited invariants.Visited
		var walk func(n N) bool
		walk = func(n N) bool {
			if invariants.Enabled {
				visited.Add(n)
			}
			children := n.Children()
			if len(children) == 0 {
				return yield(n)
			}
			if !walk(children[0]) || !yield(n) {
				return false
			}
			for _, c := range children[1:] {
				if !walk(c) {
					return false
				}
			}
			return true
		}
		walk(root)
	}
}

// Levels returns the nodes grouped by depth, starting with [root] at depth 0.
// The slices are freshly allocated for each level.
func Levels[N Branch[N]](root N) iter.Seq2[int, []N] {
	checkRoot(root)
	return func(yield func(int, []N) bool) {
		var visited invariants.Visited
		level := []N{root}
		for depth := 0; len(level) > 0; depth++ {
			if invariants.Enabled {
				for _, n := range level {
					visited.Add(n)
				}
			}
			if !yield(depth, level) {
				return
			}
			var next []N
			for _, n := range level {
				next = append(next, n.Children()...)
			}
			level = next
		}
	}
}

// Flatten returns every node of the tree exactly once, in breadth-first order.
func Flatten[N Branch[N]](root N) []N {
	return slices.Collect(BreadthFirst(root))
}
