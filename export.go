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
	"io"

	"gopkg.in/yaml.v3"
)

// Snapshot is a plain-data view of a subtree, suitable for YAML export.
type Snapshot struct {
	Name      string     `yaml:"name"`
	Kind      string     `yaml:"kind"`
	Infinite  bool       `yaml:"infinite,omitempty"`
	Elements  []string   `yaml:"elements,omitempty"`
	Excluded  []string   `yaml:"excluded,omitempty"`
	Faux      []string   `yaml:"faux,omitempty"`
	Directory string     `yaml:"directory,omitempty"`
	Degraded  string     `yaml:"degraded,omitempty"`
	Operands  []string   `yaml:"operands,omitempty"`
	Stale     bool       `yaml:"stale,omitempty"`
	Subsets   []Snapshot `yaml:"subsets,omitempty"`
}

// Snapshot captures the node at id and its visible descendants. Operands
// are reported as slash-separated paths relative to the node's parent.
func (t *Tree) Snapshot(id NodeID) (Snapshot, error) {
	if _, err := t.get(id); err != nil {
		return Snapshot{}, err
	}
	return t.snapshotNode(id), nil
}

func (t *Tree) snapshotNode(id NodeID) Snapshot {
	n := t.mustGet(id)
	s := Snapshot{
		Name:  n.name.Value(),
		Kind:  n.kind().String(),
		Stale: n.stale,
	}
	if elems, err := t.elementsOf(n); err == nil {
		if members, ok := elems.Members(); ok {
			s.Elements = members
		} else {
			s.Infinite = true
			s.Excluded, _ = elems.Excluded()
		}
	}
	switch c := n.content.(type) {
	case *fauxWordContent:
		s.Faux, _ = c.faux.Members()
	case *directoryContent:
		s.Directory = c.dir
		if c.err != nil {
			s.Degraded = c.err.Error()
		}
	case *derivativeContent:
		if paths, err := t.operandPaths(id, n, c); err == nil {
			for _, p := range paths {
				s.Operands = append(s.Operands, JoinPath(stringsOf(p)))
			}
		}
	}
	for _, child := range t.sortedChildren(n) {
		if t.mustGet(child).human {
			s.Subsets = append(s.Subsets, t.snapshotNode(child))
		}
	}
	return s
}

// YAMLReporter renders a subtree as YAML.
type YAMLReporter struct{}

// Report implements Reporter
func (r *YAMLReporter) Report(t *Tree, id NodeID) string {
	s, err := t.Snapshot(id)
	if err != nil {
		return err.Error()
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return err.Error()
	}
	return string(data)
}

// ExportYAML writes the subtree at id to w as YAML.
func ExportYAML(w io.Writer, t *Tree, id NodeID) error {
	s, err := t.Snapshot(id)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

var _ Reporter = &YAMLReporter{}
