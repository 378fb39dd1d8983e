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

import "fmt"

// CreateWordSet adds an empty word set under parent.
func (t *Tree) CreateWordSet(parent NodeID, name string) (NodeID, error) {
	return t.insert(parent, name, &wordContent{}, Resolved)
}

// editable returns the node behind id if it is a word or faux word set.
func (t *Tree) editable(id NodeID) (*node, error) {
	n, err := t.get(id)
	if err != nil {
		return nil, err
	}
	switch n.content.(type) {
	case *wordContent, *fauxWordContent:
		return n, nil
	}
	return nil, &ConstraintViolationError{
		Node:   t.path(id),
		Reason: fmt.Sprintf("%s sets cannot be edited directly", n.kind()),
	}
}

func (t *Tree) parentElements(n *node) (ElementSet, error) {
	p, err := t.get(n.parent)
	if err != nil {
		return ElementSet{}, err
	}
	return t.elementsOf(p)
}

// AddWord adds element to a word or faux word set. A word set only accepts
// elements its parent contains; a faux word set accepts anything.
func (t *Tree) AddWord(id NodeID, element string) error {
	n, err := t.editable(id)
	if err != nil {
		return err
	}

	switch c := n.content.(type) {
	case *wordContent:
		if c.members.Contains(element) {
			return &ConstraintViolationError{Node: t.path(id), Element: element, Reason: "already in the set"}
		}
		parent, err := t.parentElements(n)
		if err != nil {
			return err
		}
		if !parent.Contains(element) {
			return &ConstraintViolationError{
				Node:    t.path(id),
				Element: element,
				Reason:  "not in the parent set, adding it would break the subset constraint",
			}
		}
		c.members = Union(c.members, NewFinite(element))
	case *fauxWordContent:
		if c.faux.Contains(element) {
			return &ConstraintViolationError{Node: t.path(id), Element: element, Reason: "already in the set"}
		}
		c.faux = Union(c.faux, NewFinite(element))
		if err := t.refreshFaux(n, c); err != nil {
			return err
		}
	}

	t.debug("element added", "path", JoinPath(t.path(id)), "element", element)
	t.touch(id)
	return nil
}

// ParentCandidates lists the parent's members that the set does not hold
// yet, in sorted order. Parents with infinite membership cannot be
// enumerated and yield a *ConstraintViolationError.
func (t *Tree) ParentCandidates(id NodeID) ([]string, error) {
	n, err := t.editable(id)
	if err != nil {
		return nil, err
	}
	parent, err := t.parentElements(n)
	if err != nil {
		return nil, err
	}
	if !parent.IsFinite() {
		return nil, &ConstraintViolationError{
			Node:   t.path(id),
			Reason: "the parent has an infinite set of elements and cannot be specified from",
		}
	}
	var held ElementSet
	switch c := n.content.(type) {
	case *wordContent:
		held = c.members
	case *fauxWordContent:
		held = c.faux
	}
	candidates, _ := Difference(parent, held).Members()
	return candidates, nil
}

// AddParentWord adds the candidate at the given zero-based position of
// ParentCandidates.
func (t *Tree) AddParentWord(id NodeID, ordinal int) error {
	candidates, err := t.ParentCandidates(id)
	if err != nil {
		return err
	}
	if ordinal < 0 || ordinal >= len(candidates) {
		return &ConstraintViolationError{
			Node:   t.path(id),
			Reason: fmt.Sprintf("selection %d is outside the %d parent candidates", ordinal+1, len(candidates)),
		}
	}
	return t.AddWord(id, candidates[ordinal])
}

// listed returns the strings a word or faux word set stores itself.
func listed(n *node) ElementSet {
	switch c := n.content.(type) {
	case *wordContent:
		return c.members
	case *fauxWordContent:
		return c.faux
	}
	return ElementSet{}
}

// RemoveWord removes element from a word or faux word set. The removal is
// announced to every descendant before the element is erased locally.
func (t *Tree) RemoveWord(id NodeID, element string) error {
	n, err := t.editable(id)
	if err != nil {
		return err
	}
	if !listed(n).Contains(element) {
		return &ConstraintViolationError{Node: t.path(id), Element: element, Reason: "not in the set"}
	}
	t.removeElements(id, NewFinite(element))
	t.touch(id)
	return nil
}

// RemoveWordAt removes the element at the given zero-based position of the
// set's sorted listing.
func (t *Tree) RemoveWordAt(id NodeID, ordinal int) error {
	n, err := t.editable(id)
	if err != nil {
		return err
	}
	elems := listed(n)
	if ordinal < 0 || ordinal >= elems.Len() {
		return &ConstraintViolationError{
			Node:   t.path(id),
			Reason: fmt.Sprintf("selection %d is outside the %d elements of the set", ordinal+1, elems.Len()),
		}
	}
	return t.RemoveWord(id, elems.elems[ordinal])
}
