// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package arbor

import "github.com/cockroachdb/arbor/internal/invariants"

// The binary predicates read a node's children as (left, right): a node with
// a single child has a left child and no right child.

// IsLeaf returns true if n has no children.
func IsLeaf[N Branch[N]](n N) bool {
	return len(n.Children()) == 0
}

// IsBinary returns true if no node has more than two children.
func IsBinary[N Branch[N]](root N) bool {
	for n := range PreOrder(root) {
		if len(n.Children()) > 2 {
			return false
		}
	}
	return true
}

// IsBalanced returns true if, at every node, the heights of the child
// subtrees differ by at most one. Only existing children are compared: a node
// with a single child is balanced at that node whatever the child's height.
func IsBalanced[N Branch[N]](root N) bool {
	checkRoot(root)
	_, ok := balancedHeight(root)
	return ok
}

func balancedHeight[N Branch[N]](n N) (int, bool) {
	children := n.Children()
	if len(children) == 0 {
		return 0, true
	}
	lo, hi := -1, -1
	for _, c := range children {
		h, ok := balancedHeight(c)
		if !ok {
			return 0, false
		}
		if lo < 0 || h < lo {
			lo = h
		}
		hi = max(hi, h)
	}
	if hi-lo > 1 {
		return 0, false
	}
	return hi + 1, true
}

// IsComplete returns true if the tree is a complete binary tree: every level
// except possibly the last is full, and the nodes of the last level are as
// far left as possible. Equivalently, in level order no node follows a
// missing child position.
func IsComplete[N Branch[N]](root N) bool {
	checkRoot(root)
	var visited invariants.Visited
	gap := false
	queue := []N{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if invariants.Enabled {
			visited.Add(n)
		}
		children := n.Children()
		if len(children) > 2 {
			return false
		}
		for pos := 0; pos < 2; pos++ {
			if pos >= len(children) {
				gap = true
				continue
			}
			if gap {
				return false
			}
			queue = append(queue, children[pos])
		}
	}
	return true
}

// IsPerfect returns true if the tree is a perfect binary tree: every internal
// node has exactly two children and every leaf is at the same depth. A single
// node is a perfect tree.
func IsPerfect[N Branch[N]](root N) bool {
	checkRoot(root)
	leafDepth := -1
	var check func(n N, depth int) bool
	check = func(n N, depth int) bool {
		switch children := n.Children(); len(children) {
		case 0:
			if leafDepth < 0 {
				leafDepth = depth
			}
			return depth == leafDepth
		case 2:
			return check(children[0], depth+1) && check(children[1], depth+1)
		default:
			return false
		}
	}
	return check(root, 0)
}
