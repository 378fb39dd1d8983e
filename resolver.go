// Copyright 2025 Contriboss
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package settree

// Resolve links a tree produced by Decode.
//
// Nodes are visited depth-first, parents before children. Each node moves
// from Unresolved through Resolving to Resolved, or to Failed when it
// cannot be resolved:
//   - Derivative operand paths are looked up below the node's parent and
//     the operands are resolved first. Meeting a node that is still
//     Resolving yields a *CycleError, a missing name a
//     *DanglingReferenceError.
//   - Word sets are validated against their resolved parent; missing
//     members go to the UnexpectedRemoval recovery.
//   - Directory sets list their directory; failures go to the
//     ProviderUnavailable recovery.
//
// A node is marked Resolved only once its elements have been computed.
// After a failed Resolve the tree must be discarded.
func (t *Tree) Resolve() error {
	t.debug("resolving tree", "nodes", t.Len())
	if err := newSweep(t, true).run(t.root); err != nil {
		t.debug("resolution failed", "error", err)
		return err
	}
	t.debug("tree resolved", "nodes", t.Len())
	return nil
}

// Resolved reports whether every node of the tree is resolved.
func (t *Tree) Resolved() bool {
	resolved := true
	t.walk(t.root, 0, func(id NodeID, _ int) bool {
		if t.mustGet(id).state != Resolved {
			resolved = false
		}
		return resolved
	})
	return resolved
}

// linkOperands converts pending operand paths into handles.
func (t *Tree) linkOperands(id NodeID, n *node, c *derivativeContent) error {
	pending, ok := c.operands.(pendingOperands)
	if !ok {
		return nil
	}
	ids := make([]NodeID, len(pending.paths))
	for i, names := range pending.paths {
		cur := n.parent
		for _, name := range names {
			next, ok := t.mustGet(cur).children[name]
			if !ok {
				return &DanglingReferenceError{Node: t.path(id), Operand: stringsOf(names)}
			}
			cur = next
		}
		if cur == n.parent {
			return &DanglingReferenceError{Node: t.path(id), Operand: stringsOf(names)}
		}
		ids[i] = cur
	}
	c.operands = resolvedOperands{ids: ids}
	t.debug("operands linked", "path", JoinPath(t.path(id)), "operands", len(ids))
	return nil
}
