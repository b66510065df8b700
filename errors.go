// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package arbor

import (
	"reflect"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

var (
	// ErrNilRoot marks the assertion failure raised when a traversal or query
	// is handed a nil root.
	ErrNilRoot = errors.New("arbor: nil root")

	// ErrDuplicateID is returned when two nodes in the same tree or collection
	// share an id. A node reachable twice through children lists (a cycle in
	// the children structure) is reported the same way.
	ErrDuplicateID = errors.New("arbor: duplicate node id")

	// ErrCycle is returned when following parent ids never reaches a node
	// without a parent.
	ErrCycle = errors.New("arbor: parent cycle")

	// ErrParentMismatch is returned by Validate when a child's parent id does
	// not match the node whose children list holds it.
	ErrParentMismatch = errors.New("arbor: parent id mismatch")

	// ErrNoRoot is returned by BuildTree when no node lacks a parent id.
	ErrNoRoot = errors.New("arbor: no root")

	// ErrAmbiguousRoot is returned by BuildTree when more than one node lacks
	// a parent id.
	ErrAmbiguousRoot = errors.New("arbor: ambiguous root")
)

func duplicateIDError[ID comparable](id ID) error {
	return errors.Mark(errors.Newf("arbor: duplicate node id %v", redact.Safe(id)), ErrDuplicateID)
}

func cycleError[ID comparable](id ID) error {
	return errors.Mark(errors.Newf("arbor: node %v is its own ancestor", redact.Safe(id)), ErrCycle)
}

// checkRoot panics if n is nil. Typed nil pointers (and other nil-able kinds)
// count as nil.
func checkRoot[N any](n N) {
	if isNil(n) {
		panic(errors.Mark(errors.AssertionFailedf("arbor: nil root"), ErrNilRoot))
	}
}

func isNil[N any](n N) bool {
	v := any(n)
	if v == nil {
		return true
	}
	switch val := reflect.ValueOf(v); val.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return val.IsNil()
	}
	return false
}
