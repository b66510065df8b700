// Copyright 2025 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package arbor

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/redact"
)

// Validate checks the preconditions the other functions assume of a tree and
// returns every violation it finds, joined:
//   - each id occurs once (ErrDuplicateID); a node reachable twice, which
//     includes any cycle in the children lists, is reported as a duplicate
//     and not descended into again, so Validate always terminates;
//   - each child's parent id is the id of the node whose children list holds
//     it (ErrParentMismatch);
//   - the root's parent id, if any, does not name a node of the tree
//     (ErrCycle).
//
// The ID type parameter must be supplied, e.g. Validate[int](root).
func Validate[ID comparable, N Node[ID, N]](root N) error {
	if isNil(root) {
		return errors.Mark(errors.AssertionFailedf("arbor: nil root"), ErrNilRoot)
	}
	var errs []error
	seen := make(map[ID]struct{})
	queue := []N{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		id := n.ID()
		if _, ok := seen[id]; ok {
			errs = append(errs, duplicateIDError(id))
			continue
		}
		seen[id] = struct{}{}
		for _, c := range n.Children() {
			if pid, ok := c.ParentID(); !ok || pid != id {
				errs = append(errs, errors.Mark(
					errors.Newf("arbor: node %v is a child of %v but has parent id %v",
						redact.Safe(c.ID()), redact.Safe(id), redact.Safe(parentIDString(pid, ok))),
					ErrParentMismatch))
			}
			queue = append(queue, c)
		}
	}
	if pid, ok := root.ParentID(); ok {
		if _, inTree := seen[pid]; inTree {
			errs = append(errs, cycleError(root.ID()))
		}
	}
	return errors.Join(errs...)
}

func parentIDString[ID comparable](id ID, ok bool) any {
	if !ok {
		return "<none>"
	}
	return id
}
