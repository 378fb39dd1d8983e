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

import (
	"maps"
	"slices"
)

// removeElements erases removed from the node at id after announcing the
// removal to every descendant. Word and faux word sets drop the elements,
// derivative sets are marked stale until their next recomputation.
func (t *Tree) removeElements(id NodeID, removed ElementSet) {
	n := t.mustGet(id)
	for _, child := range t.sortedChildren(n) {
		t.removeElements(child, removed)
	}

	switch c := n.content.(type) {
	case *wordContent:
		c.members = Difference(c.members, removed)
	case *fauxWordContent:
		c.faux = Difference(c.faux, removed)
		n.elements = Difference(n.elements, removed)
	case *derivativeContent:
		n.stale = true
	}
	t.debug("removal cascaded",
		"path", JoinPath(t.path(id)),
		"removed", removed.String(),
	)
}

// touch marks the derivative sets that read directly from id as stale.
func (t *Tree) touch(id NodeID) {
	t.walk(t.root, 0, func(cur NodeID, _ int) bool {
		n := t.mustGet(cur)
		d, ok := n.content.(*derivativeContent)
		if !ok {
			return true
		}
		if d.op == KindRelativeComplement && n.parent == id {
			n.stale = true
		}
		if ops, ok := d.operands.(resolvedOperands); ok && slices.Contains(ops.ids, id) {
			n.stale = true
		}
		return true
	})
}

// validateWord checks the subset constraint of a word set against the
// current elements of its parent. Missing elements are handed to the
// recovery handler, which drops them, reclassifies the node as a faux word
// set, or aborts with an *UnexpectedRemovalError.
func (t *Tree) validateWord(id NodeID) error {
	n := t.mustGet(id)
	word, ok := n.content.(*wordContent)
	if !ok {
		return nil
	}
	parent, err := t.parentElements(n)
	if err != nil {
		return err
	}
	missing := Difference(word.members, parent)
	if missing.IsEmpty() {
		return nil
	}

	missingList, _ := missing.Members()
	ev := RemovalEvent{Node: id, Path: t.path(id), Elements: missingList}
	recovery := t.options.Recovery.UnexpectedRemoval(ev)
	t.debug("unexpected removal",
		"path", JoinPath(ev.Path),
		"elements", missing.String(),
		"recovery", recovery.String(),
	)

	switch recovery {
	case RecoverDrop:
		t.removeElements(id, missing)
		return nil
	case RecoverFaux:
		return t.ConvertToFaux(id)
	default:
		return &UnexpectedRemovalError{Node: ev.Path, Elements: missingList}
	}
}

// snapshot returns a deep copy of the tree's mutable state.
func (t *Tree) snapshot() *Tree {
	cp := &Tree{
		slots:   make([]slot, len(t.slots)),
		free:    slices.Clone(t.free),
		root:    t.root,
		options: t.options,
	}
	for i, s := range t.slots {
		cp.slots[i].gen = s.gen
		if s.node != nil {
			cp.slots[i].node = s.node.clone()
		}
	}
	return cp
}

// restore replaces the tree's state with a snapshot taken earlier.
func (t *Tree) restore(snap *Tree) {
	t.slots = snap.slots
	t.free = snap.free
	t.root = snap.root
}

func (n *node) clone() *node {
	cp := *n
	cp.children = maps.Clone(n.children)
	switch c := n.content.(type) {
	case *rootContent:
		cp.content = &rootContent{}
	case *wordContent:
		cp.content = &wordContent{members: c.members}
	case *fauxWordContent:
		cp.content = &fauxWordContent{faux: c.faux}
	case *directoryContent:
		dc := *c
		cp.content = &dc
	case *derivativeContent:
		dc := &derivativeContent{op: c.op}
		switch ops := c.operands.(type) {
		case pendingOperands:
			dc.operands = pendingOperands{paths: slices.Clone(ops.paths)}
		case resolvedOperands:
			dc.operands = resolvedOperands{ids: slices.Clone(ops.ids)}
		}
		cp.content = dc
	}
	return &cp
}
