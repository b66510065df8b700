// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package arbor

import "slices"

// The mutation functions keep parent ids in step with the children lists they
// edit. They do not look beyond the parent they are given: a node added to two
// parents ends up in both lists, which Validate reports.
//
// The ID type parameter cannot be inferred from the arguments and must be
// supplied, e.g. AddChildren[int](parent, a, b).

// AddChildren appends children to parent in order and sets each child's parent
// id to parent's id.
func AddChildren[ID comparable, N MutableNode[ID, N]](parent N, children ...N) {
	if len(children) == 0 {
		return
	}
	id := parent.ID()
	for _, c := range children {
		c.SetParentID(id, true)
	}
	parent.SetChildren(append(parent.Children(), children...))
}

// RemoveChild detaches the first child of parent with the given id and clears
// its parent id, making it the root of its own tree. The child and its
// subtree are otherwise untouched.
func RemoveChild[ID comparable, N MutableNode[ID, N]](parent N, id ID) (N, bool) {
	children := parent.Children()
	i := slices.IndexFunc(children, func(c N) bool { return c.ID() == id })
	if i < 0 {
		var zero N
		return zero, false
	}
	child := children[i]
	parent.SetChildren(slices.Delete(children, i, i+1))
	child.SetParentID(id, false)
	return child, true
}

// ReplaceChild puts with in the position of parent's first child with the
// given id. The replaced child is detached as by RemoveChild. Returns false
// if no child has the id.
func ReplaceChild[ID comparable, N MutableNode[ID, N]](parent N, id ID, with N) bool {
	children := parent.Children()
	i := slices.IndexFunc(children, func(c N) bool { return c.ID() == id })
	if i < 0 {
		return false
	}
	old := children[i]
	old.SetParentID(id, false)
	with.SetParentID(parent.ID(), true)
	replaced := slices.Clone(children)
	replaced[i] = with
	parent.SetChildren(replaced)
	return true
}
