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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddWord(t *testing.T) {
	t.Parallel()

	tree := New()
	p := wordSet(t, tree, tree.Root(), "P", "x", "y")
	a := wordSet(t, tree, p, "A", "x")

	var cv *ConstraintViolationError
	require.ErrorAs(t, tree.AddWord(a, "z"), &cv)
	assert.Equal(t, "z", cv.Element)
	require.ErrorAs(t, tree.AddWord(a, "x"), &cv)
	assert.Equal(t, []string{"x"}, members(t, tree, a))

	require.NoError(t, tree.AddWord(a, "y"))
	assert.Equal(t, []string{"x", "y"}, members(t, tree, a))
}

func TestAddWordRejectsDerivedSets(t *testing.T) {
	t.Parallel()

	tree := New()
	a := wordSet(t, tree, tree.Root(), "A", "x")
	c, err := tree.CreateDerivative(tree.Root(), "C", KindRelativeComplement, a)
	require.NoError(t, err)

	var cv *ConstraintViolationError
	assert.ErrorAs(t, tree.AddWord(c, "x"), &cv)
	assert.ErrorAs(t, tree.AddWord(tree.Root(), "x"), &cv)
}

func TestParentCandidates(t *testing.T) {
	t.Parallel()

	tree := New()
	p := wordSet(t, tree, tree.Root(), "P", "z", "x", "y")
	a := wordSet(t, tree, p, "A", "y")

	candidates, err := tree.ParentCandidates(a)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "z"}, candidates)

	require.NoError(t, tree.AddParentWord(a, 1))
	assert.Equal(t, []string{"y", "z"}, members(t, tree, a))

	var cv *ConstraintViolationError
	assert.ErrorAs(t, tree.AddParentWord(a, 5), &cv)
	assert.ErrorAs(t, tree.AddParentWord(a, -1), &cv)

	// the root cannot be enumerated
	_, err = tree.ParentCandidates(p)
	assert.ErrorAs(t, err, &cv)
}

func TestRemoveWordCascades(t *testing.T) {
	t.Parallel()

	tree := New()
	p := wordSet(t, tree, tree.Root(), "P", "x", "y", "z")
	a := wordSet(t, tree, p, "A", "x", "y")
	inner := wordSet(t, tree, a, "inner", "y")
	b := wordSet(t, tree, p, "B", "y", "z")
	u, err := tree.CreateDerivative(p, "U", KindUnion, a, b)
	require.NoError(t, err)
	assert.False(t, tree.Stale(u))

	require.NoError(t, tree.RemoveWord(p, "y"))
	assert.Equal(t, []string{"x", "z"}, members(t, tree, p))
	assert.Equal(t, []string{"x"}, members(t, tree, a))
	assert.Empty(t, members(t, tree, inner))
	assert.Equal(t, []string{"z"}, members(t, tree, b))
	assert.True(t, tree.Stale(u))

	var cv *ConstraintViolationError
	assert.ErrorAs(t, tree.RemoveWord(p, "y"), &cv)
}

func TestRemoveWordAt(t *testing.T) {
	t.Parallel()

	tree := New()
	a := wordSet(t, tree, tree.Root(), "A", "c", "a", "b")

	require.NoError(t, tree.RemoveWordAt(a, 1))
	assert.Equal(t, []string{"a", "c"}, members(t, tree, a))

	var cv *ConstraintViolationError
	assert.ErrorAs(t, tree.RemoveWordAt(a, 2), &cv)
}

func TestAddWordMarksReadersStale(t *testing.T) {
	t.Parallel()

	tree := New()
	a := wordSet(t, tree, tree.Root(), "A", "x")
	b := wordSet(t, tree, tree.Root(), "B")
	u, err := tree.CreateDerivative(tree.Root(), "U", KindUnion, a, b)
	require.NoError(t, err)

	require.NoError(t, tree.AddWord(b, "y"))
	assert.True(t, tree.Stale(u))
	assert.Equal(t, []string{"x"}, members(t, tree, u))

	require.NoError(t, tree.UpdateElements(u))
	assert.False(t, tree.Stale(u))
	assert.Equal(t, []string{"x", "y"}, members(t, tree, u))
}

func TestFauxWordSet(t *testing.T) {
	t.Parallel()

	tree := New()
	p := wordSet(t, tree, tree.Root(), "P", "x")
	f, err := tree.CreateFauxWordSet(p, "F")
	require.NoError(t, err)

	require.NoError(t, tree.AddWord(f, "x"))
	require.NoError(t, tree.AddWord(f, "y"))

	var cv *ConstraintViolationError
	assert.ErrorAs(t, tree.AddWord(f, "y"), &cv)

	assert.Equal(t, []string{"x"}, members(t, tree, f))
	faux, err := tree.FauxElements(f)
	require.NoError(t, err)
	assert.Equal(t, NewFinite("x", "y"), faux)

	// the faux element becomes real once the parent holds it
	require.NoError(t, tree.AddWord(p, "y"))
	require.NoError(t, tree.UpdateElements(p))
	assert.Equal(t, []string{"x", "y"}, members(t, tree, f))

	candidates, err := tree.ParentCandidates(f)
	require.NoError(t, err)
	assert.Empty(t, candidates)

	require.NoError(t, tree.RemoveWord(f, "y"))
	faux, err = tree.FauxElements(f)
	require.NoError(t, err)
	assert.Equal(t, NewFinite("x"), faux)
}

func TestConvertToFauxKeepsHandle(t *testing.T) {
	t.Parallel()

	tree := New()
	p := wordSet(t, tree, tree.Root(), "P", "x", "y")
	a := wordSet(t, tree, p, "A", "x", "y")
	inner := wordSet(t, tree, a, "inner", "x")
	c, err := tree.CreateDerivative(p, "C", KindRelativeComplement, a)
	require.NoError(t, err)

	require.NoError(t, tree.ConvertToFaux(a))
	kind, err := tree.Kind(a)
	require.NoError(t, err)
	assert.Equal(t, KindFauxWord, kind)
	assert.Equal(t, []string{"x", "y"}, members(t, tree, a))

	children, err := tree.Children(a)
	require.NoError(t, err)
	assert.Equal(t, []NodeID{inner}, children)

	ops, err := tree.Operands(c)
	require.NoError(t, err)
	assert.Equal(t, []NodeID{a}, ops)

	var cv *ConstraintViolationError
	assert.ErrorAs(t, tree.ConvertToFaux(a), &cv)
}

func TestConvertToFauxRejectsRootLevel(t *testing.T) {
	t.Parallel()

	tree := New()
	a := wordSet(t, tree, tree.Root(), "A", "x")

	var cv *ConstraintViolationError
	require.ErrorAs(t, tree.ConvertToFaux(a), &cv)
	kind, err := tree.Kind(a)
	require.NoError(t, err)
	assert.Equal(t, KindWord, kind)
	assert.Equal(t, "G 1 6 GLOBAL\nW 1 1 A 1 1 x\n0\n0\n", encode(t, tree))
}
