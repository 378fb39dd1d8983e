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
	"fmt"
	"iter"
	"slices"
	"strings"
)

// ElementSet is a subset of the unbounded universe of strings.
//
// A set is stored in one of two polarities:
//   - finite: the listed strings are exactly the members
//   - co-finite: the set holds every string except the listed ones
//
// The listed strings are kept sorted and free of duplicates. ElementSet is
// a value type; all operations return new instances and never modify their
// receivers. The zero value is the empty finite set.
type ElementSet struct {
	elems    []string
	cofinite bool
}

// NewFinite returns the finite set holding exactly members.
func NewFinite(members ...string) ElementSet {
	return ElementSet{elems: normalize(members)}
}

// NewCoFinite returns the set of every string except excluded.
func NewCoFinite(excluded ...string) ElementSet {
	return ElementSet{elems: normalize(excluded), cofinite: true}
}

// EmptySet returns the finite set with no members.
func EmptySet() ElementSet {
	return ElementSet{}
}

// UniverseSet returns the co-finite set that excludes nothing.
func UniverseSet() ElementSet {
	return ElementSet{cofinite: true}
}

func finiteOf(sorted []string) ElementSet {
	return ElementSet{elems: sorted}
}

func coFiniteOf(sorted []string) ElementSet {
	return ElementSet{elems: sorted, cofinite: true}
}

// IsFinite reports whether the set is stored by enumerating its members.
func (s ElementSet) IsFinite() bool {
	return !s.cofinite
}

// IsEmpty reports whether the set has no members at all.
func (s ElementSet) IsEmpty() bool {
	return !s.cofinite && len(s.elems) == 0
}

// IsUniverse reports whether the set contains every string.
func (s ElementSet) IsUniverse() bool {
	return s.cofinite && len(s.elems) == 0
}

// Contains reports whether element belongs to the set.
func (s ElementSet) Contains(element string) bool {
	if s.cofinite {
		return !sortedContains(s.elems, element)
	}
	return sortedContains(s.elems, element)
}

// Members returns the members of a finite set. ok is false for a co-finite
// set, whose members cannot be enumerated.
func (s ElementSet) Members() (members []string, ok bool) {
	if s.cofinite {
		return nil, false
	}
	return slices.Clone(s.elems), true
}

// Excluded returns the excluded strings of a co-finite set. ok is false for
// a finite set.
func (s ElementSet) Excluded() (excluded []string, ok bool) {
	if !s.cofinite {
		return nil, false
	}
	return slices.Clone(s.elems), true
}

// Len returns the number of listed strings: members for a finite set,
// excluded strings for a co-finite one.
func (s ElementSet) Len() int {
	return len(s.elems)
}

// All iterates the listed strings in sorted order.
func (s ElementSet) All() iter.Seq[string] {
	return slices.Values(s.elems)
}

// Complement returns the set of every string not in s. The listed strings
// are shared between the two polarities, so this never enumerates anything.
func (s ElementSet) Complement() ElementSet {
	return ElementSet{elems: s.elems, cofinite: !s.cofinite}
}

// Equal reports whether both sets hold the same members.
func (s ElementSet) Equal(other ElementSet) bool {
	return s.cofinite == other.cofinite && slices.Equal(s.elems, other.elems)
}

// IsSubset reports whether every member of s is a member of other.
func (s ElementSet) IsSubset(other ElementSet) bool {
	return Difference(s, other).IsEmpty()
}

// Union returns s ∪ other.
func (s ElementSet) Union(other ElementSet) ElementSet {
	return Union(s, other)
}

// Intersection returns s ∩ other.
func (s ElementSet) Intersection(other ElementSet) ElementSet {
	return Intersection(s, other)
}

// Difference returns s \ other.
func (s ElementSet) Difference(other ElementSet) ElementSet {
	return Difference(s, other)
}

// SymmetricDifference returns s Δ other.
func (s ElementSet) SymmetricDifference(other ElementSet) ElementSet {
	return SymmetricDifference(s, other)
}

// String renders the set as {a, b} or as ~{a, b} for a co-finite set.
func (s ElementSet) String() string {
	quoted := make([]string, len(s.elems))
	for i, e := range s.elems {
		quoted[i] = fmt.Sprintf("%q", e)
	}
	body := "{" + strings.Join(quoted, ", ") + "}"
	if s.cofinite {
		return "~" + body
	}
	return body
}
