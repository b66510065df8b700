// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

//go:build invariants || race

package invariants

import (
	"reflect"

	"github.com/cockroachdb/errors"
)

// Enabled is true if we were built with the "invariants" or "race" build tags.
const Enabled = true

// Visited records the nodes produced by a traversal and panics when one shows
// up a second time, which only happens when the children lists form a cycle.
// Values of incomparable types are not tracked.
type Visited struct {
	seen map[any]struct{}
}

// Add records v, panicking if it was recorded before.
func (s *Visited) Add(v any) {
	if v == nil || !reflect.TypeOf(v).Comparable() {
		return
	}
	if s.seen == nil {
		s.seen = make(map[any]struct{})
	}
	if _, ok := s.seen[v]; ok {
		panic(errors.AssertionFailedf("node %v visited twice: children lists contain a cycle", v))
	}
	s.seen[v] = struct{}{}
}

// CheckDepth panics if a parent-id walk took more steps than there are nodes,
// which means it went around a loop.
func CheckDepth(steps, nodes int) {
	if steps > nodes {
		panic(errors.AssertionFailedf("parent walk took %d steps over %d nodes", steps, nodes))
	}
}
