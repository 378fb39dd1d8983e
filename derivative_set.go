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

// CreateDerivative adds a set whose elements are computed from operand
// nodes. Operands must be live strict descendants of parent; a relative
// complement takes one operand and every other derivative kind takes two.
// The elements are computed immediately and creation is rejected, leaving
// the tree unchanged, if the computation fails.
//
// Example:
//
//	diff, err := tree.CreateDerivative(tree.Root(), "A-B", KindDifference, a, b)
func (t *Tree) CreateDerivative(parent NodeID, name string, op Kind, operands ...NodeID) (NodeID, error) {
	if _, err := t.get(parent); err != nil {
		return NodeID{}, err
	}
	if !op.IsDerivative() {
		return NodeID{}, &ConstraintViolationError{
			Node:    t.path(parent),
			Element: name,
			Reason:  fmt.Sprintf("%s is not a derivative kind", op),
		}
	}
	if len(operands) != op.Arity() {
		return NodeID{}, &ConstraintViolationError{
			Node:    t.path(parent),
			Element: name,
			Reason:  fmt.Sprintf("%s takes %d operands, got %d", op, op.Arity(), len(operands)),
		}
	}
	for _, operand := range operands {
		if _, err := t.get(operand); err != nil {
			return NodeID{}, err
		}
		if _, ok := t.relativePath(parent, operand); !ok {
			return NodeID{}, &ConstraintViolationError{
				Node:    t.path(parent),
				Element: JoinPath(t.path(operand)),
				Reason:  "operands must be subsets below the new set's parent",
			}
		}
	}

	// recovery during the first computation may edit operands and ancestors
	snap := t.snapshot()
	dc := &derivativeContent{op: op, operands: resolvedOperands{ids: append([]NodeID(nil), operands...)}}
	id, err := t.insert(parent, name, dc, Resolved)
	if err != nil {
		return NodeID{}, err
	}
	if err := newSweep(t, false).refresh(id); err != nil {
		t.restore(snap)
		return NodeID{}, err
	}
	return id, nil
}

// Operands returns the operand handles of a derivative set. Derivatives
// loaded from storage return ErrUnresolved until Resolve has run.
func (t *Tree) Operands(id NodeID) ([]NodeID, error) {
	n, err := t.get(id)
	if err != nil {
		return nil, err
	}
	c, ok := n.content.(*derivativeContent)
	if !ok {
		return nil, &ConstraintViolationError{Node: t.path(id), Reason: "not a derivative set"}
	}
	ops, ok := c.operands.(resolvedOperands)
	if !ok {
		return nil, ErrUnresolved
	}
	return append([]NodeID(nil), ops.ids...), nil
}

// OperandCandidates lists the nodes a derivative created under parent may
// read from: every strict descendant of parent, in walk order.
func (t *Tree) OperandCandidates(parent NodeID) ([]Candidate, error) {
	if _, err := t.get(parent); err != nil {
		return nil, err
	}
	var candidates []Candidate
	t.walk(parent, 0, func(id NodeID, depth int) bool {
		if depth == 0 {
			return true
		}
		rel, _ := t.relativePath(parent, id)
		candidates = append(candidates, Candidate{
			ID:   id,
			Path: stringsOf(rel),
			Kind: t.mustGet(id).kind(),
		})
		return true
	})
	return candidates, nil
}

// computeDerivative evaluates a derivative from operands that are already
// up to date.
func (t *Tree) computeDerivative(id NodeID, n *node, op Kind, operands []NodeID) error {
	values := make([]ElementSet, len(operands))
	for i, operand := range operands {
		elems, err := t.elementsOf(t.mustGet(operand))
		if err != nil {
			return err
		}
		values[i] = elems
	}

	var result ElementSet
	switch op {
	case KindUnion:
		result = Union(values[0], values[1])
	case KindIntersection:
		result = Intersection(values[0], values[1])
	case KindDifference:
		result = Difference(values[0], values[1])
	case KindSymmetricDifference:
		result = SymmetricDifference(values[0], values[1])
	case KindRelativeComplement:
		parent, err := t.parentElements(n)
		if err != nil {
			return err
		}
		result, err = RelativeComplement(parent, values[0])
		if err != nil {
			if cv, ok := err.(*ContractViolationError); ok {
				cv.Node = t.path(id)
			}
			return err
		}
	default:
		return &ContractViolationError{Node: t.path(id), Operation: op.String(), Message: "not a derivative kind"}
	}

	n.elements = result
	n.stale = false
	t.debug("derivative computed",
		"path", JoinPath(t.path(id)),
		"kind", op.String(),
		"elements", result.String(),
	)
	return nil
}
