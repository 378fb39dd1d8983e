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
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
)

// Session is the surface an interactive shell drives. It owns the live
// tree and a focus node that commands act on. Loads are atomic: a load that
// fails for any reason leaves the live tree untouched.
//
// Example:
//
//	s := NewSession()
//	_, _ = s.Create(KindWord, "A", nil)
//	_ = s.Enter("A")
//	_ = s.Tree().AddWord(s.Focus(), "x")
type Session struct {
	tree  *Tree
	focus NodeID
	opts  []TreeOption
}

// NewSession creates a session over an empty tree. The options are applied
// to the initial tree and to every tree loaded later.
func NewSession(opts ...TreeOption) *Session {
	t := New(opts...)
	return &Session{tree: t, focus: t.Root(), opts: opts}
}

// Tree returns the live tree.
func (s *Session) Tree() *Tree {
	return s.tree
}

// Focus returns the node commands act on.
func (s *Session) Focus() NodeID {
	return s.focus
}

// FocusPath returns the path of the focus node from the root.
func (s *Session) FocusPath() []string {
	s.rehome()
	return s.tree.path(s.focus)
}

// rehome moves the focus to the root if its node was deleted.
func (s *Session) rehome() {
	if !s.tree.Valid(s.focus) {
		s.focus = s.tree.root
	}
}

// Create adds a child of the given kind under the focus node. Directory
// sets ask picker for their directory and derivative sets ask it for each
// operand. A picker that declines cancels creation with ErrCanceled.
func (s *Session) Create(kind Kind, name string, picker Picker) (NodeID, error) {
	switch {
	case kind == KindWord:
		return s.tree.CreateWordSet(s.focus, name)
	case kind == KindFauxWord:
		return s.tree.CreateFauxWordSet(s.focus, name)
	case kind == KindDirectory:
		if picker == nil {
			return NodeID{}, ErrCanceled
		}
		dir, ok := picker.Directory()
		if !ok {
			return NodeID{}, ErrCanceled
		}
		return s.tree.CreateDirectorySet(s.focus, name, dir)
	case kind.IsDerivative():
		if picker == nil {
			return NodeID{}, ErrCanceled
		}
		operands := make([]NodeID, kind.Arity())
		for i := range operands {
			op, ok, err := s.QueryForOperand(picker)
			if err != nil {
				return NodeID{}, err
			}
			if !ok {
				return NodeID{}, ErrCanceled
			}
			operands[i] = op
		}
		return s.tree.CreateDerivative(s.focus, name, kind, operands...)
	}
	return NodeID{}, &ConstraintViolationError{
		Node:    s.FocusPath(),
		Element: name,
		Reason:  fmt.Sprintf("%s sets cannot be created", kind),
	}
}

// QueryForOperand offers every node below the focus to picker and returns
// the one it selects. The boolean is false when the picker declines.
func (s *Session) QueryForOperand(picker Picker) (NodeID, bool, error) {
	candidates, err := s.tree.OperandCandidates(s.focus)
	if err != nil {
		return NodeID{}, false, err
	}
	if len(candidates) == 0 {
		return NodeID{}, false, &ConstraintViolationError{
			Node:   s.FocusPath(),
			Reason: "there are no subsets to build a derivative set from",
		}
	}
	id, ok := picker.Operand(candidates)
	if !ok {
		return NodeID{}, false, nil
	}
	if !slices.ContainsFunc(candidates, func(c Candidate) bool { return c.ID == id }) {
		return NodeID{}, false, &ConstraintViolationError{
			Node:   s.FocusPath(),
			Reason: fmt.Sprintf("selected node %s is not an operand candidate", id),
		}
	}
	return id, true, nil
}

// Delete removes the named child of the focus node and its subtree.
func (s *Session) Delete(name string) error {
	id, err := s.tree.Child(s.focus, name)
	if err != nil {
		return err
	}
	return s.tree.Delete(id)
}

// Enter moves the focus to the named child.
func (s *Session) Enter(name string) error {
	id, err := s.tree.Child(s.focus, name)
	if err != nil {
		return err
	}
	s.focus = id
	return nil
}

// EnterPath moves the focus to the node at a slash-separated path below
// the root.
func (s *Session) EnterPath(path string) error {
	id, err := s.tree.LookupPath(path)
	if err != nil {
		return err
	}
	s.focus = id
	return nil
}

// Up moves the focus to its parent. It reports false at the root.
func (s *Session) Up() bool {
	s.rehome()
	parent := s.tree.mustGet(s.focus).parent
	if parent.IsZero() {
		return false
	}
	s.focus = parent
	return true
}

// Subsets returns the names of the focus node's children in name order.
func (s *Session) Subsets() []string {
	s.rehome()
	n := s.tree.mustGet(s.focus)
	names := make([]string, 0, len(n.children))
	for _, id := range s.tree.sortedChildren(n) {
		names = append(names, s.tree.mustGet(id).name.Value())
	}
	return names
}

// ListElements returns the focus node's elements.
func (s *Session) ListElements() (ElementSet, error) {
	return s.tree.Elements(s.focus)
}

// Update recomputes the focus node and its subtree.
func (s *Session) Update() error {
	return s.tree.UpdateElements(s.focus)
}

// UpdateAll recomputes the whole tree.
func (s *Session) UpdateAll() error {
	return s.tree.UpdateInternalElements(s.focus)
}

// Save writes the whole tree in the persisted record format.
func (s *Session) Save(w io.Writer) error {
	return Encode(w, s.tree)
}

// SaveHuman writes the whole tree through reporter.
func (s *Session) SaveHuman(w io.Writer, reporter Reporter) error {
	out := reporter.Report(s.tree, s.tree.Root())
	if out != "" && out[len(out)-1] != '\n' {
		out += "\n"
	}
	_, err := io.WriteString(w, out)
	return err
}

// Load replaces the live tree with one read from r. The input is decoded
// into a fresh tree and resolved before it is swapped in; any failure
// returns a *LoadError holding the raw input and the live tree is left as
// it was. On success the focus moves to the root.
func (s *Session) Load(r io.Reader) error {
	raw, err := io.ReadAll(r)
	if err != nil {
		return &LoadError{Err: err}
	}
	t, err := DecodeBytes(raw, s.opts...)
	if err != nil {
		offset := len(raw)
		var fe *FormatError
		if errors.As(err, &fe) {
			offset = fe.Offset
		}
		return &LoadError{Raw: raw, Offset: offset, Err: err}
	}
	if err := t.Resolve(); err != nil {
		return &LoadError{Raw: raw, Offset: len(raw), Err: err}
	}
	s.tree = t
	s.focus = t.Root()
	return nil
}

// LoadBytes is Load over an in-memory buffer.
func (s *Session) LoadBytes(data []byte) error {
	return s.Load(bytes.NewReader(data))
}

// RefreshReport summarizes a Refresh.
type RefreshReport struct {
	Rescanned int
	Degraded  int
	Deleted   int
	Cache     CacheStats
}

// Refresh rescans every directory set through a CachedLister and then
// recomputes the whole tree. Directories that cannot be listed go to the
// ProviderUnavailable recovery. If the focus was deleted it moves to the
// root.
func (s *Session) Refresh() (RefreshReport, error) {
	var report RefreshReport
	t := s.tree
	base := t.options.Lister
	cached := NewCachedLister(base)
	t.options.Lister = cached
	defer func() { t.options.Lister = base }()

	for _, id := range t.sortedChildren(t.mustGet(t.root)) {
		if _, ok := t.mustGet(id).content.(*directoryContent); !ok {
			continue
		}
		err := t.Rescan(id)
		var unavailable *ProviderUnavailableError
		switch {
		case err == nil:
			report.Rescanned++
		case errors.As(err, &unavailable):
			if err := t.recoverUnavailable(id, unavailable.Err); err != nil {
				return report, err
			}
			if t.Valid(id) {
				report.Degraded++
			} else {
				report.Deleted++
			}
		default:
			return report, err
		}
	}
	s.rehome()
	err := t.UpdateInternalElements(t.root)
	report.Cache = cached.GetCacheStats()
	t.debug("refresh finished",
		"rescanned", report.Rescanned,
		"degraded", report.Degraded,
		"deleted", report.Deleted,
		"cache", report.Cache.String(),
	)
	return report, err
}

// PathPicker answers Picker requests from fixed values. Operands are
// slash-separated paths relative to the node the set is created under and
// are handed out in order.
type PathPicker struct {
	Operands []string
	Dir      string

	next int
}

// Operand implements Picker
func (p *PathPicker) Operand(candidates []Candidate) (NodeID, bool) {
	if p.next >= len(p.Operands) {
		return NodeID{}, false
	}
	want := SplitPath(p.Operands[p.next])
	p.next++
	for _, c := range candidates {
		if slices.Equal(c.Path, want) {
			return c.ID, true
		}
	}
	return NodeID{}, false
}

// Directory implements Picker
func (p *PathPicker) Directory() (string, bool) {
	return p.Dir, p.Dir != ""
}

var _ Picker = &PathPicker{}
