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

import "slices"

// sweep recomputes nodes in dependency order: a node's parent and operands
// are brought up to date before the node itself. The same engine links
// freshly decoded trees when link is set.
type sweep struct {
	t *Tree
	// link converts pending operand paths into handles and lists
	// directories through the lister.
	link bool
	// done is false while a node is on the current path and true once it
	// has been recomputed.
	done map[NodeID]bool
	path []NodeID
}

func newSweep(t *Tree, link bool) *sweep {
	return &sweep{t: t, link: link, done: make(map[NodeID]bool)}
}

// run refreshes every node of the subtree at top, parents first and
// siblings in name order.
func (s *sweep) run(top NodeID) error {
	var order []NodeID
	s.t.walk(top, 0, func(id NodeID, _ int) bool {
		order = append(order, id)
		return true
	})
	for _, id := range order {
		// recovery may delete directory sets mid sweep
		if !s.t.Valid(id) {
			continue
		}
		if err := s.refresh(id); err != nil {
			return err
		}
	}
	return nil
}

func (s *sweep) cycle(id NodeID) *CycleError {
	start := slices.Index(s.path, id)
	loop := append(slices.Clone(s.path[start:]), id)
	paths := make([][]string, len(loop))
	for i, cur := range loop {
		paths[i] = s.t.path(cur)
	}
	return &CycleError{Path: paths}
}

func (s *sweep) refresh(id NodeID) error {
	if done, seen := s.done[id]; seen {
		if done {
			return nil
		}
		return s.cycle(id)
	}
	n := s.t.mustGet(id)
	s.done[id] = false
	s.path = append(s.path, id)
	if s.link {
		n.state = Resolving
	}

	err := s.recompute(id, n)

	s.path = s.path[:len(s.path)-1]
	if err != nil {
		if s.link && s.t.Valid(id) {
			s.t.mustGet(id).state = Failed
		}
		return err
	}
	s.done[id] = true
	if s.link && s.t.Valid(id) {
		// recovery may have replaced the node value
		s.t.mustGet(id).state = Resolved
	}
	return nil
}

func (s *sweep) recompute(id NodeID, n *node) error {
	if !n.parent.IsZero() {
		if err := s.refresh(n.parent); err != nil {
			return err
		}
	}

	switch c := n.content.(type) {
	case *wordContent:
		return s.t.validateWord(id)
	case *fauxWordContent:
		return s.t.refreshFaux(n, c)
	case *directoryContent:
		if !s.link {
			return nil
		}
		entries, err := s.t.options.Lister.ListDirectory(c.dir)
		if err != nil {
			return s.t.recoverUnavailable(id, err)
		}
		c.listing = NewFinite(entries...)
		c.err = nil
		return nil
	case *derivativeContent:
		if s.link {
			if err := s.t.linkOperands(id, n, c); err != nil {
				return err
			}
		}
		ops, ok := c.operands.(resolvedOperands)
		if !ok {
			return ErrUnresolved
		}
		for _, op := range ops.ids {
			if !s.t.Valid(op) {
				return &DanglingReferenceError{Node: s.t.path(id), Operand: []string{op.String()}}
			}
			if err := s.refresh(op); err != nil {
				return err
			}
			if !s.t.Valid(op) {
				return &DanglingReferenceError{Node: s.t.path(id), Operand: []string{op.String()}}
			}
		}
		return s.t.computeDerivative(id, n, c.op, ops.ids)
	}
	return nil
}

// UpdateElements recomputes the node at id and every node below it. Word
// sets whose members left the parent go through the UnexpectedRemoval
// recovery, faux word sets re-filter against the parent and derivative sets
// recompute from their operands, which are brought up to date first.
func (t *Tree) UpdateElements(id NodeID) error {
	if _, err := t.get(id); err != nil {
		return err
	}
	t.debug("updating elements", "path", JoinPath(t.path(id)))
	return newSweep(t, false).run(id)
}

// UpdateInternalElements recomputes the whole tree that id belongs to.
func (t *Tree) UpdateInternalElements(id NodeID) error {
	if _, err := t.get(id); err != nil {
		return err
	}
	return t.UpdateElements(t.root)
}
