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

// CreateFauxWordSet adds an empty faux word set under parent. A faux word
// set stores strings whether or not the parent holds them; its elements
// are the stored strings the parent currently contains, so it picks them
// up again as soon as the parent gains them.
func (t *Tree) CreateFauxWordSet(parent NodeID, name string) (NodeID, error) {
	return t.insert(parent, name, &fauxWordContent{}, Resolved)
}

// FauxElements returns every string a faux word set stores, including the
// ones its parent does not currently hold.
func (t *Tree) FauxElements(id NodeID) (ElementSet, error) {
	n, err := t.get(id)
	if err != nil {
		return ElementSet{}, err
	}
	c, ok := n.content.(*fauxWordContent)
	if !ok {
		return ElementSet{}, &ConstraintViolationError{Node: t.path(id), Reason: "not a faux word set"}
	}
	return c.faux, nil
}

func (t *Tree) refreshFaux(n *node, c *fauxWordContent) error {
	parent, err := t.parentElements(n)
	if err != nil {
		return err
	}
	n.elements = Intersection(c.faux, parent)
	n.stale = false
	return nil
}

// ConvertToFaux replaces a word set with a faux word set holding the same
// strings. The replacement is a new node value that takes over the old
// node's name, handle, children and resolution state; operand references
// to the handle stay valid. Word sets directly under the root cannot be
// converted.
func (t *Tree) ConvertToFaux(id NodeID) error {
	old, err := t.get(id)
	if err != nil {
		return err
	}
	word, ok := old.content.(*wordContent)
	if !ok {
		return &ConstraintViolationError{Node: t.path(id), Reason: "only word sets can become faux word sets"}
	}
	if old.parent == t.root {
		return &ConstraintViolationError{Node: t.path(id), Reason: "faux word sets cannot be created in the global set"}
	}

	replacement := &node{
		name:     old.name,
		parent:   old.parent,
		children: old.children,
		human:    old.human,
		state:    old.state,
		content:  &fauxWordContent{faux: word.members},
	}
	if err := t.refreshFaux(replacement, replacement.content.(*fauxWordContent)); err != nil {
		return err
	}
	t.slots[id.index].node = replacement
	t.debug("word set reclassified as faux", "path", JoinPath(t.path(id)))
	t.touch(id)
	return nil
}
