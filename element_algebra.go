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

// The binary operators below pick the result polarity from the operand
// polarities so that no infinite set is ever enumerated. Let mX be the
// members of a finite X and eX the excluded strings of a co-finite X.

// Union returns a ∪ b.
//
//	finite   ∪ finite   = mA ∪ mB
//	finite   ∪ cofinite = ~(eB \ mA)     ¬(A∪B) = ¬A∩¬B
//	cofinite ∪ cofinite = ~(eA ∩ eB)
func Union(a, b ElementSet) ElementSet {
	switch {
	case !a.cofinite && !b.cofinite:
		return finiteOf(sortedUnion(a.elems, b.elems))
	case !a.cofinite:
		return coFiniteOf(sortedDifference(b.elems, a.elems))
	case !b.cofinite:
		return coFiniteOf(sortedDifference(a.elems, b.elems))
	default:
		return coFiniteOf(sortedIntersection(a.elems, b.elems))
	}
}

// Intersection returns a ∩ b.
//
//	cofinite ∩ cofinite = ~(eA ∪ eB)     ¬(A∩B) = ¬A∪¬B
//	finite   ∩ cofinite = mA \ eB
//	finite   ∩ finite   = mA ∩ mB
func Intersection(a, b ElementSet) ElementSet {
	switch {
	case a.cofinite && b.cofinite:
		return coFiniteOf(sortedUnion(a.elems, b.elems))
	case b.cofinite:
		return finiteOf(sortedDifference(a.elems, b.elems))
	case a.cofinite:
		return finiteOf(sortedDifference(b.elems, a.elems))
	default:
		return finiteOf(sortedIntersection(a.elems, b.elems))
	}
}

// Difference returns a \ b.
//
//	cofinite \ finite   = ~(eA ∪ mB)     A\B = A∩¬B
//	cofinite \ cofinite = eB \ eA
//	finite   \ cofinite = mA ∩ eB
//	finite   \ finite   = mA \ mB
func Difference(a, b ElementSet) ElementSet {
	switch {
	case a.cofinite && !b.cofinite:
		return coFiniteOf(sortedUnion(a.elems, b.elems))
	case a.cofinite:
		return finiteOf(sortedDifference(b.elems, a.elems))
	case b.cofinite:
		return finiteOf(sortedIntersection(a.elems, b.elems))
	default:
		return finiteOf(sortedDifference(a.elems, b.elems))
	}
}

// SymmetricDifference returns a Δ b.
//
//	finite   Δ finite   = mA Δ mB
//	cofinite Δ cofinite = eA Δ eB        ¬A Δ ¬B = A Δ B
//	cofinite Δ finite   = ~(eA Δ mB)
//
// The mixed case is co-finite: x is outside A Δ B exactly when x is in both
// or neither operand, which happens only for x in eA Δ mB.
func SymmetricDifference(a, b ElementSet) ElementSet {
	diff := sortedSymmetricDifference(a.elems, b.elems)
	if a.cofinite != b.cofinite {
		return coFiniteOf(diff)
	}
	return finiteOf(diff)
}

// RelativeComplement returns parent \ operand, where operand is expected to
// be a subset of parent.
//
//	cofinite P, finite S   = ~(eP ∪ mS)
//	cofinite P, cofinite S = eS \ eP
//	finite P,   finite S   = mP \ mS
//
// A finite parent can only hold finite subsets, so a co-finite operand
// under a finite parent is reported as a *ContractViolationError.
func RelativeComplement(parent, operand ElementSet) (ElementSet, error) {
	switch {
	case parent.cofinite && !operand.cofinite:
		return coFiniteOf(sortedUnion(parent.elems, operand.elems)), nil
	case parent.cofinite:
		return finiteOf(sortedDifference(operand.elems, parent.elems)), nil
	case operand.cofinite:
		return ElementSet{}, &ContractViolationError{
			Operation: KindRelativeComplement.String(),
			Message:   "operand is infinite while its parent is finite",
		}
	default:
		return finiteOf(sortedDifference(parent.elems, operand.elems)), nil
	}
}
