// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

//go:build !invariants && !race

package invariants

// Enabled is true if we were built with the "invariants" or "race" build tags.
const Enabled = false

// Visited records the nodes produced by a traversal and panics when one shows
// up a second time. It is empty and does nothing in non-invariant builds.
type Visited struct{}

// Add is a no-op in non-invariant builds.
func (*Visited) Add(v any) {}

// CheckDepth is a no-op in non-invariant builds.
func CheckDepth(steps, nodes int) {}
