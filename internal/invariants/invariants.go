// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package invariants holds checks that are only compiled in when building
// with the "invariants" or "race" build tags. In other builds every check is a
// no-op and the types are zero-sized.
package invariants
