// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package arbor

import "github.com/cockroachdb/redact"

// Branch is implemented by any node type with an ordered list of children.
// It is the only capability the traversal and structural functions need.
type Branch[N any] interface {
	Children() []N
}

// Node is the read capability set a node type must provide to take part in
// id-based queries (see Index) and validation.
//
// ParentID returns ok=false for a root. The parent id is set by whoever
// creates the node; it is not derived from the children lists, so the two can
// disagree (see Validate and Build).
//
// IDs are compared with ==. Pointer-typed ids compare by identity.
type Node[ID comparable, N any] interface {
	Branch[N]
	ID() ID
	ParentID() (id ID, ok bool)
}

// MutableNode extends Node with the write capabilities needed by Build and the
// mutation functions.
type MutableNode[ID comparable, N any] interface {
	Node[ID, N]
	// SetParentID sets the parent id; ok=false makes the node a root.
	SetParentID(id ID, ok bool)
	// SetChildren replaces the children list. The node owns the slice.
	SetChildren(children []N)
}

// Record is the stock node type: an id, an optional parent id, an ordered
// list of owned children and two opaque payload fields that play no part in
// any algorithm.
type Record[ID comparable, V any] struct {
	id        ID
	parentID  ID
	hasParent bool
	children  []*Record[ID, V]

	Name  string
	Value V
}

var _ MutableNode[int, *Record[int, string]] = (*Record[int, string])(nil)
var _ redact.SafeFormatter = (*Record[int, string])(nil)

// NewRecord returns a root record with the given id.
func NewRecord[ID comparable, V any](id ID) *Record[ID, V] {
	return &Record[ID, V]{id: id}
}

// NewChildRecord returns a record whose parent id is set. It is not attached
// to any children list; use AddChildren or Build for that.
func NewChildRecord[ID comparable, V any](id, parentID ID) *Record[ID, V] {
	return &Record[ID, V]{id: id, parentID: parentID, hasParent: true}
}

// ID implements Node.
func (r *Record[ID, V]) ID() ID {
	return r.id
}

// ParentID implements Node.
func (r *Record[ID, V]) ParentID() (ID, bool) {
	return r.parentID, r.hasParent
}

// Children implements Branch.
func (r *Record[ID, V]) Children() []*Record[ID, V] {
	return r.children
}

// SetParentID implements MutableNode.
func (r *Record[ID, V]) SetParentID(id ID, ok bool) {
	if !ok {
		var zero ID
		id = zero
	}
	r.parentID, r.hasParent = id, ok
}

// SetChildren implements MutableNode.
func (r *Record[ID, V]) SetChildren(children []*Record[ID, V]) {
	r.children = children
}

// AddChildren appends the children in order and points their parent ids at
// r. It returns r so trees can be written as nested expressions.
func (r *Record[ID, V]) AddChildren(children ...*Record[ID, V]) *Record[ID, V] {
	AddChildren[ID](r, children...)
	return r
}

// RemoveChild detaches the first child with the given id. See RemoveChild.
func (r *Record[ID, V]) RemoveChild(id ID) (*Record[ID, V], bool) {
	return RemoveChild[ID](r, id)
}

// ReplaceChild swaps the child with the given id for another node. See
// ReplaceChild.
func (r *Record[ID, V]) ReplaceChild(id ID, with *Record[ID, V]) bool {
	return ReplaceChild[ID](r, id, with)
}

// IsRoot returns true if the record has no parent id.
func (r *Record[ID, V]) IsRoot() bool {
	return !r.hasParent
}

// IsLeaf returns true if the record has no children.
func (r *Record[ID, V]) IsLeaf() bool {
	return len(r.children) == 0
}

// SafeFormat implements redact.SafeFormatter. Ids are structural and safe;
// names are user data.
func (r *Record[ID, V]) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Print(redact.Safe(r.id))
	if r.Name != "" {
		w.Printf("(%s)", r.Name)
	}
}

// String implements fmt.Stringer.
func (r *Record[ID, V]) String() string {
	return redact.StringWithoutMarkers(r)
}
