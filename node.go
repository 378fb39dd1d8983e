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

// NodeID is a handle to a node in a Tree. Handles stay valid while the node
// exists; once the node is deleted every lookup through the handle fails
// with a *StaleHandleError. The zero NodeID never refers to a node.
type NodeID struct {
	index uint32
	gen   uint32
}

// IsZero reports whether id is the zero handle.
func (id NodeID) IsZero() bool {
	return id.gen == 0
}

// String returns a short debugging representation of the handle.
func (id NodeID) String() string {
	return fmt.Sprintf("#%d.%d", id.index, id.gen)
}

// ResolveState tracks a node through reference resolution.
type ResolveState int

const (
	// Unresolved nodes came from the decoder and have not been linked yet.
	Unresolved ResolveState = iota
	// Resolving nodes are on the current resolution path.
	Resolving
	// Resolved nodes have live operands and freshly computed elements.
	Resolved
	// Failed nodes could not be resolved; the tree holding them is discarded.
	Failed
)

// String returns the name of the state.
func (s ResolveState) String() string {
	switch s {
	case Unresolved:
		return "unresolved"
	case Resolving:
		return "resolving"
	case Resolved:
		return "resolved"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("ResolveState(%d)", int(s))
	}
}

// content is the closed set of node variants. The kind of a node is
// derived from its content and never stored separately.
type content interface {
	kind() Kind
}

type rootContent struct{}

func (*rootContent) kind() Kind { return KindRoot }

type wordContent struct {
	members ElementSet
}

func (*wordContent) kind() Kind { return KindWord }

// fauxWordContent keeps strings regardless of the parent; the node's
// elements are the faux strings that the parent currently contains.
type fauxWordContent struct {
	faux ElementSet
}

func (*fauxWordContent) kind() Kind { return KindFauxWord }

type directoryContent struct {
	dir     string
	listing ElementSet
	// err is the last listing failure; while set the node is degraded and
	// listing holds the last known entries.
	err error
}

func (*directoryContent) kind() Kind { return KindDirectory }

type derivativeContent struct {
	op       Kind
	operands operandRefs
}

func (c *derivativeContent) kind() Kind { return c.op }

// operandRefs is either pendingOperands or resolvedOperands. Only resolved
// operands can be evaluated.
type operandRefs interface {
	isOperandRefs()
}

// pendingOperands holds operand name paths, each walking down from the
// derivative's parent.
type pendingOperands struct {
	paths [][]Name
}

func (pendingOperands) isOperandRefs() {}

type resolvedOperands struct {
	ids []NodeID
}

func (resolvedOperands) isOperandRefs() {}

type node struct {
	name     Name
	parent   NodeID
	children map[Name]NodeID
	human    bool
	state    ResolveState
	// elements caches the computed membership of faux and derivative nodes.
	elements ElementSet
	// stale is set when an operand reported removed elements after the
	// last recomputation.
	stale   bool
	content content
}

func (n *node) kind() Kind {
	return n.content.kind()
}

type slot struct {
	gen  uint32
	node *node
}
