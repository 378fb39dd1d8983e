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
	"strings"
)

// Tree is a hierarchy of named sets rooted at the universal set.
//
// Nodes live in an arena and are addressed by NodeID handles. The root owns
// its children, every node owns its own children, and derivative operands
// are plain handles that never own anything. A Tree is not safe for
// concurrent use.
//
// Basic usage:
//
//	tree := New()
//	a, _ := tree.CreateWordSet(tree.Root(), "A")
//	_ = tree.AddWord(a, "x")
//	u, _ := tree.CreateDerivative(tree.Root(), "U", KindUnion, a, b)
//	elems, _ := tree.Elements(u)
type Tree struct {
	slots   []slot
	free    []uint32
	root    NodeID
	options TreeOptions
}

// New creates a tree holding only the universal root set.
func New(opts ...TreeOption) *Tree {
	t := &Tree{options: buildTreeOptions(opts)}
	t.root = t.alloc(&node{
		name:     MakeName(RootName),
		children: make(map[Name]NodeID),
		human:    true,
		state:    Resolved,
		content:  &rootContent{},
	})
	return t
}

// Options returns the configuration the tree was built with.
func (t *Tree) Options() TreeOptions {
	return t.options
}

func (t *Tree) debug(msg string, args ...any) {
	if t.options.Logger == nil {
		return
	}
	t.options.Logger.Debug(msg, args...)
}

func (t *Tree) alloc(n *node) NodeID {
	if len(t.free) > 0 {
		idx := t.free[len(t.free)-1]
		t.free = t.free[:len(t.free)-1]
		t.slots[idx].node = n
		return NodeID{index: idx, gen: t.slots[idx].gen}
	}
	t.slots = append(t.slots, slot{gen: 1, node: n})
	return NodeID{index: uint32(len(t.slots) - 1), gen: 1}
}

func (t *Tree) release(id NodeID) {
	s := &t.slots[id.index]
	s.node = nil
	s.gen++
	t.free = append(t.free, id.index)
}

func (t *Tree) get(id NodeID) (*node, error) {
	if id.IsZero() || int(id.index) >= len(t.slots) {
		return nil, &StaleHandleError{ID: id}
	}
	s := t.slots[id.index]
	if s.gen != id.gen || s.node == nil {
		return nil, &StaleHandleError{ID: id}
	}
	return s.node, nil
}

// mustGet is used for handles taken from the tree's own links.
func (t *Tree) mustGet(id NodeID) *node {
	n, err := t.get(id)
	if err != nil {
		panic(err)
	}
	return n
}

// Root returns the handle of the universal set.
func (t *Tree) Root() NodeID {
	return t.root
}

// Valid reports whether id refers to a live node.
func (t *Tree) Valid(id NodeID) bool {
	_, err := t.get(id)
	return err == nil
}

// Len returns the number of live nodes, root included.
func (t *Tree) Len() int {
	return len(t.slots) - len(t.free)
}

// Name returns the node's name.
func (t *Tree) Name(id NodeID) (string, error) {
	n, err := t.get(id)
	if err != nil {
		return "", err
	}
	return n.name.Value(), nil
}

// Kind returns the node's kind.
func (t *Tree) Kind(id NodeID) (Kind, error) {
	n, err := t.get(id)
	if err != nil {
		return 0, err
	}
	return n.kind(), nil
}

// Parent returns the node's parent. The root has no parent and returns
// the zero handle.
func (t *Tree) Parent(id NodeID) (NodeID, error) {
	n, err := t.get(id)
	if err != nil {
		return NodeID{}, err
	}
	return n.parent, nil
}

// State returns the node's resolution state.
func (t *Tree) State(id NodeID) (ResolveState, error) {
	n, err := t.get(id)
	if err != nil {
		return 0, err
	}
	return n.state, nil
}

// Stale reports whether an operand of the node lost elements since the
// node's elements were last recomputed.
func (t *Tree) Stale(id NodeID) bool {
	n, err := t.get(id)
	return err == nil && n.stale
}

// HumanVisible reports whether the node is included in human-readable
// reports.
func (t *Tree) HumanVisible(id NodeID) bool {
	n, err := t.get(id)
	return err == nil && n.human
}

// SetHumanVisible includes or excludes the node from human-readable reports.
func (t *Tree) SetHumanVisible(id NodeID, visible bool) error {
	n, err := t.get(id)
	if err != nil {
		return err
	}
	n.human = visible
	return nil
}

// Children returns the node's children ordered by name.
func (t *Tree) Children(id NodeID) ([]NodeID, error) {
	n, err := t.get(id)
	if err != nil {
		return nil, err
	}
	return t.sortedChildren(n), nil
}

func (t *Tree) sortedChildren(n *node) []NodeID {
	names := slices.SortedFunc(maps.Keys(n.children), func(a, b Name) int {
		return strings.Compare(a.Value(), b.Value())
	})
	ids := make([]NodeID, len(names))
	for i, name := range names {
		ids[i] = n.children[name]
	}
	return ids
}

// Child looks up a child by name.
func (t *Tree) Child(id NodeID, name string) (NodeID, error) {
	n, err := t.get(id)
	if err != nil {
		return NodeID{}, err
	}
	child, ok := n.children[MakeName(name)]
	if !ok {
		return NodeID{}, &NotFoundError{Parent: t.path(id), Name: name}
	}
	return child, nil
}

// Lookup walks down from id through the given child names.
func (t *Tree) Lookup(id NodeID, names ...string) (NodeID, error) {
	cur := id
	for _, name := range names {
		next, err := t.Child(cur, name)
		if err != nil {
			return NodeID{}, err
		}
		cur = next
	}
	return cur, nil
}

// LookupPath resolves a slash-separated path of child names below the
// root. The empty path and "/" name the root itself.
func (t *Tree) LookupPath(path string) (NodeID, error) {
	return t.Lookup(t.root, SplitPath(path)...)
}

// SplitPath splits a slash-separated node path into names, ignoring empty
// segments.
func SplitPath(path string) []string {
	var names []string
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			names = append(names, part)
		}
	}
	return names
}

// Path returns the names from the root down to the node, root included.
func (t *Tree) Path(id NodeID) ([]string, error) {
	if _, err := t.get(id); err != nil {
		return nil, err
	}
	return t.path(id), nil
}

func (t *Tree) path(id NodeID) []string {
	var rev []string
	for cur := id; !cur.IsZero(); {
		n, err := t.get(cur)
		if err != nil {
			break
		}
		rev = append(rev, n.name.Value())
		cur = n.parent
	}
	slices.Reverse(rev)
	return rev
}

// relativePath returns the child names leading from ancestor down to id,
// or false when ancestor is not a strict ancestor of id.
func (t *Tree) relativePath(ancestor, id NodeID) ([]Name, bool) {
	var rev []Name
	for cur := id; !cur.IsZero(); {
		if cur == ancestor {
			if len(rev) == 0 {
				return nil, false
			}
			slices.Reverse(rev)
			return rev, true
		}
		n := t.mustGet(cur)
		rev = append(rev, n.name)
		cur = n.parent
	}
	return nil, false
}

// isWithin reports whether id is top or one of its descendants.
func (t *Tree) isWithin(id, top NodeID) bool {
	for cur := id; !cur.IsZero(); {
		if cur == top {
			return true
		}
		n, err := t.get(cur)
		if err != nil {
			return false
		}
		cur = n.parent
	}
	return false
}

// Walk visits the subtree rooted at id depth-first, parents before
// children and siblings in name order. Returning false from fn skips the
// node's children.
func (t *Tree) Walk(id NodeID, fn func(id NodeID, depth int) bool) error {
	if _, err := t.get(id); err != nil {
		return err
	}
	t.walk(id, 0, fn)
	return nil
}

func (t *Tree) walk(id NodeID, depth int, fn func(NodeID, int) bool) {
	if !fn(id, depth) {
		return
	}
	for _, child := range t.sortedChildren(t.mustGet(id)) {
		t.walk(child, depth+1, fn)
	}
}

// Elements returns the node's membership as of the last recomputation.
// Derivative nodes loaded from storage return ErrUnresolved until Resolve
// has linked their operands.
func (t *Tree) Elements(id NodeID) (ElementSet, error) {
	n, err := t.get(id)
	if err != nil {
		return ElementSet{}, err
	}
	return t.elementsOf(n)
}

func (t *Tree) elementsOf(n *node) (ElementSet, error) {
	switch c := n.content.(type) {
	case *rootContent:
		return UniverseSet(), nil
	case *wordContent:
		return c.members, nil
	case *directoryContent:
		return c.listing, nil
	case *derivativeContent:
		if _, ok := c.operands.(resolvedOperands); !ok {
			return ElementSet{}, ErrUnresolved
		}
		return n.elements, nil
	default:
		return n.elements, nil
	}
}

// Contains reports whether element is a member of the node.
func (t *Tree) Contains(id NodeID, element string) (bool, error) {
	elems, err := t.Elements(id)
	if err != nil {
		return false, err
	}
	return elems.Contains(element), nil
}

func validateName(name string) error {
	if name == "" {
		return &ConstraintViolationError{Reason: "set names cannot be empty"}
	}
	if strings.Contains(name, "/") {
		return &ConstraintViolationError{Element: name, Reason: "set names cannot contain '/'"}
	}
	return nil
}

// insert attaches a new node under parent after checking the name and the
// placement rules for the new node's kind.
func (t *Tree) insert(parent NodeID, name string, c content, state ResolveState) (NodeID, error) {
	p, err := t.get(parent)
	if err != nil {
		return NodeID{}, err
	}
	if err := validateName(name); err != nil {
		if cv, ok := err.(*ConstraintViolationError); ok {
			cv.Node = t.path(parent)
		}
		return NodeID{}, err
	}
	key := MakeName(name)
	if _, exists := p.children[key]; exists {
		return NodeID{}, &ConstraintViolationError{
			Node:    t.path(parent),
			Element: name,
			Reason:  "a subset with this name already exists",
		}
	}
	if c.kind() == KindDirectory && parent != t.root {
		return NodeID{}, &ConstraintViolationError{
			Node:    t.path(parent),
			Element: name,
			Reason:  "directory sets can only be created in the global set",
		}
	}
	if c.kind() == KindFauxWord && parent == t.root {
		return NodeID{}, &ConstraintViolationError{
			Node:    t.path(parent),
			Element: name,
			Reason:  "faux word sets cannot be created in the global set",
		}
	}
	id := t.alloc(&node{
		name:     key,
		parent:   parent,
		children: make(map[Name]NodeID),
		human:    true,
		state:    state,
		content:  c,
	})
	p.children[key] = id
	t.debug("node created",
		"path", JoinPath(t.path(id)),
		"kind", c.kind().String(),
	)
	return id, nil
}

// Delete detaches the node and its whole subtree. Deleting a node that a
// derivative set outside the subtree still reads from fails with an
// *InUseError and leaves the tree unchanged.
func (t *Tree) Delete(id NodeID) error {
	n, err := t.get(id)
	if err != nil {
		return err
	}
	if id == t.root {
		return ErrRootImmutable
	}
	if deps := t.dependentsOutside(id); len(deps) > 0 {
		return &InUseError{Node: t.path(id), Dependents: deps}
	}

	path := t.path(id)
	var doomed []NodeID
	t.walk(id, 0, func(cur NodeID, _ int) bool {
		doomed = append(doomed, cur)
		return true
	})
	delete(t.mustGet(n.parent).children, n.name)
	for _, cur := range doomed {
		t.release(cur)
	}
	t.debug("node deleted", "path", JoinPath(path), "released", len(doomed))
	return nil
}

// dependentsOutside lists derivative nodes outside the subtree at top whose
// operands point into it. Derivatives whose parent is inside the subtree
// also count as inside, since they are deleted with it.
func (t *Tree) dependentsOutside(top NodeID) [][]string {
	var deps [][]string
	t.walk(t.root, 0, func(cur NodeID, _ int) bool {
		if cur == top {
			return false
		}
		d, ok := t.mustGet(cur).content.(*derivativeContent)
		if !ok {
			return true
		}
		if ops, ok := d.operands.(resolvedOperands); ok {
			for _, op := range ops.ids {
				if t.isWithin(op, top) {
					deps = append(deps, t.path(cur))
					break
				}
			}
		}
		return true
	})
	return deps
}
