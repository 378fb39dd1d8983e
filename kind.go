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
	"strings"
)

// Kind identifies the variant of a node.
type Kind int

const (
	// KindRoot is the universal set at the top of every tree.
	KindRoot Kind = iota
	// KindWord holds explicit members that must belong to the parent.
	KindWord
	// KindFauxWord holds arbitrary strings; only those in the parent count.
	KindFauxWord
	// KindDirectory mirrors the entries of a filesystem directory.
	KindDirectory
	// KindUnion is the union of two operands.
	KindUnion
	// KindIntersection is the intersection of two operands.
	KindIntersection
	// KindDifference is the first operand minus the second.
	KindDifference
	// KindSymmetricDifference holds elements in exactly one operand.
	KindSymmetricDifference
	// KindRelativeComplement is the parent minus its single operand.
	KindRelativeComplement
)

var kindInfo = [...]struct {
	name string
	char byte
}{
	KindRoot:                {"global", 'G'},
	KindWord:                {"word", 'W'},
	KindFauxWord:            {"faux", 'F'},
	KindDirectory:           {"directory", 'D'},
	KindUnion:               {"union", 'U'},
	KindIntersection:        {"intersection", 'I'},
	KindDifference:          {"difference", '-'},
	KindSymmetricDifference: {"symmetric-difference", 'S'},
	KindRelativeComplement:  {"relative-complement", 'C'},
}

// String returns the lower-case name used on the command line.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindInfo) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindInfo[k].name
}

// TypeChar returns the character that tags the kind in the persisted format.
func (k Kind) TypeChar() byte {
	return kindInfo[k].char
}

// IsDerivative reports whether nodes of this kind compute their elements
// from operand nodes.
func (k Kind) IsDerivative() bool {
	return k >= KindUnion && k <= KindRelativeComplement
}

// Arity returns the number of operands a derivative kind takes.
func (k Kind) Arity() int {
	switch {
	case k == KindRelativeComplement:
		return 1
	case k.IsDerivative():
		return 2
	default:
		return 0
	}
}

// ParseKind maps a command-line kind name (or a short alias) to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "word", "w":
		return KindWord, nil
	case "faux", "faux-word", "f":
		return KindFauxWord, nil
	case "directory", "dir", "d":
		return KindDirectory, nil
	case "union", "u":
		return KindUnion, nil
	case "intersection", "i":
		return KindIntersection, nil
	case "difference", "diff", "-":
		return KindDifference, nil
	case "symmetric-difference", "symdiff", "s":
		return KindSymmetricDifference, nil
	case "relative-complement", "complement", "c":
		return KindRelativeComplement, nil
	}
	return 0, fmt.Errorf("unknown set kind %q", s)
}

func kindForTypeChar(c byte) (Kind, bool) {
	for k, info := range kindInfo {
		if info.char == c {
			return Kind(k), true
		}
	}
	return 0, false
}
