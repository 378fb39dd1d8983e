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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encode(t *testing.T, tree *Tree) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, tree))
	return buf.String()
}

func TestEncodeEmptyTree(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "G 1 6 GLOBAL\n0\n", encode(t, New()))
}

func TestEncodeWordAndDerivative(t *testing.T) {
	t.Parallel()

	tree := New()
	a := wordSet(t, tree, tree.Root(), "A", "y", "x")
	b := wordSet(t, tree, tree.Root(), "B", "y")
	_, err := tree.CreateDerivative(tree.Root(), "U", KindUnion, a, b)
	require.NoError(t, err)

	assert.Equal(t, lines(
		"G 1 6 GLOBAL",
		"W 1 1 A 2 1 x 1 y",
		"0",
		"W 1 1 B 1 1 y",
		"0",
		"U 1 1 U 2 0 1 A 0 1 B",
		"0",
		"0",
	), encode(t, tree))
}

func TestEncodeEmptyWordSet(t *testing.T) {
	t.Parallel()

	tree := New()
	wordSet(t, tree, tree.Root(), "A")
	assert.Equal(t, "G 1 6 GLOBAL\nW 1 1 A 0\n0\n0\n", encode(t, tree))
}

func TestEncodeHiddenNodes(t *testing.T) {
	t.Parallel()

	tree := New()
	a := wordSet(t, tree, tree.Root(), "A")
	require.NoError(t, tree.SetHumanVisible(a, false))
	assert.Equal(t, "G 1 6 GLOBAL\nW 0 1 A 0\n0\n0\n", encode(t, tree))

	decoded := decode(t, encode(t, tree))
	id, err := decoded.LookupPath("A")
	require.NoError(t, err)
	assert.False(t, decoded.HumanVisible(id))
}

func TestRoundTripAllKinds(t *testing.T) {
	t.Parallel()

	lister := &MemoryLister{}
	lister.AddDirectory("/music", "a b.flac", "c.flac", "d.flac")

	tree := New(WithLister(lister))
	music, err := tree.CreateDirectorySet(tree.Root(), "music", "/music")
	require.NoError(t, err)
	fav := wordSet(t, tree, music, "fav", "a b.flac", "c.flac")
	faux, err := tree.CreateFauxWordSet(music, "wish list")
	require.NoError(t, err)
	require.NoError(t, tree.AddWord(faux, "z.flac"))
	require.NoError(t, tree.AddWord(faux, "d.flac"))
	old := wordSet(t, tree, fav, "old", "c.flac")

	for _, tc := range []struct {
		name     string
		op       Kind
		operands []NodeID
	}{
		{"rest", KindRelativeComplement, []NodeID{fav}},
		{"both", KindIntersection, []NodeID{fav, faux}},
		{"either", KindSymmetricDifference, []NodeID{old, faux}},
		{"new", KindDifference, []NodeID{fav, old}},
	} {
		_, err := tree.CreateDerivative(music, tc.name, tc.op, tc.operands...)
		require.NoError(t, err, tc.name)
	}

	want := lines(
		"G 1 6 GLOBAL",
		"D 1 5 music 6 /music",
		"I 1 4 both 2 0 3 fav 0 9 wish list",
		"0",
		"S 1 6 either 2 1 3 fav 3 old 0 9 wish list",
		"0",
		"W 1 3 fav 2 8 a b.flac 6 c.flac",
		"W 1 3 old 1 6 c.flac",
		"0",
		"0",
		"- 1 3 new 2 0 3 fav 1 3 fav 3 old",
		"0",
		"C 1 4 rest 1 0 3 fav",
		"0",
		"F 1 9 wish list 2 6 d.flac 6 z.flac",
		"0",
		"0",
		"0",
	)
	got := encode(t, tree)
	assert.Equal(t, want, got)

	loaded := decode(t, got, WithLister(lister))
	require.NoError(t, loaded.Resolve())
	assert.Equal(t, got, encode(t, loaded))

	for _, path := range []string{"music", "music/fav", "music/fav/old", "music/wish list", "music/rest", "music/both", "music/either", "music/new"} {
		orig, err := tree.LookupPath(path)
		require.NoError(t, err)
		again, err := loaded.LookupPath(path)
		require.NoError(t, err)
		assert.True(t, elementsOf(t, tree, orig).Equal(elementsOf(t, loaded, again)), path)
	}

	rest, err := loaded.LookupPath("music/rest")
	require.NoError(t, err)
	assert.Equal(t, []string{"d.flac"}, members(t, loaded, rest))
	either, err := loaded.LookupPath("music/either")
	require.NoError(t, err)
	assert.Equal(t, []string{"c.flac", "d.flac"}, members(t, loaded, either))
}

func TestRoundTripConvertedFaux(t *testing.T) {
	t.Parallel()

	tree := New()
	p := wordSet(t, tree, tree.Root(), "P", "x", "y")
	a := wordSet(t, tree, p, "A", "x", "y")
	require.NoError(t, tree.ConvertToFaux(a))

	want := lines(
		"G 1 6 GLOBAL",
		"W 1 1 P 2 1 x 1 y",
		"F 1 1 A 2 1 x 1 y",
		"0",
		"0",
		"0",
	)
	got := encode(t, tree)
	assert.Equal(t, want, got)

	loaded := decode(t, got)
	require.NoError(t, loaded.Resolve())
	assert.Equal(t, got, encode(t, loaded))

	again, err := loaded.LookupPath("P/A")
	require.NoError(t, err)
	kind, err := loaded.Kind(again)
	require.NoError(t, err)
	assert.Equal(t, KindFauxWord, kind)
	assert.Equal(t, []string{"x", "y"}, members(t, loaded, again))
}

func TestDecodeStringsWithSeparators(t *testing.T) {
	t.Parallel()

	tree := decode(t, "G 1 6 GLOBAL\nW 1 3 a\nb 2 3 x y 0 \n0\n0\n")
	id, err := tree.LookupPath("a\nb")
	require.NoError(t, err)
	require.NoError(t, tree.Resolve())
	assert.Equal(t, []string{"", "x y"}, members(t, tree, id))
}

func TestDecodeFormatErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		msg  string
	}{
		{"empty", "", "unexpected end of data"},
		{"wrong root type", "W 1 6 GLOBAL\n0\n", "expected the GLOBAL set"},
		{"wrong root name", "G 1 4 ROOT\n0\n", "expected the GLOBAL set"},
		{"unknown type", "G 1 6 GLOBAL\nX 1 1 A 0\n0\n0\n", "unknown set type"},
		{"nested root", "G 1 6 GLOBAL\nG 1 1 A\n0\n0\n", "unknown set type"},
		{"missing terminator", "G 1 6 GLOBAL\nW 1 1 A 0\n0\n", "unexpected end of data"},
		{"truncated string", "G 1 6 GLOBAL\nW 1 1 A 1 9 abc", "runs past the end"},
		{"missing number", "G 1 6 GLOBAL\nW 1 1 A x\n0\n0\n", "expected a number"},
		{"bad human flag", "G 1 6 GLOBAL\nW 2 1 A 0\n0\n0\n", "human flag"},
		{"trailing data", "G 1 6 GLOBAL\n0\nW\n", "unexpected data after"},
		{"union arity", "G 1 6 GLOBAL\nU 1 1 U 1 0 1 A\n0\n0\n", "take 2 operands"},
		{"complement arity", "G 1 6 GLOBAL\nC 1 1 C 2 0 1 A 0 1 B\n0\n0\n", "take 1 operands"},
		{"duplicate name", "G 1 6 GLOBAL\nW 1 1 A 0\n0\nW 1 1 A 0\n0\n0\n", "already exists"},
		{"directory below word", "G 1 6 GLOBAL\nW 1 1 A 0\nD 1 1 D 4 /tmp\n0\n0\n0\n", "only be created in the global set"},
		{"faux in global", "G 1 6 GLOBAL\nF 1 1 F 0\n0\n0\n", "cannot be created in the global set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := DecodeBytes([]byte(tt.data))
			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Contains(t, fe.Error(), tt.msg)
			assert.LessOrEqual(t, fe.Offset, len(tt.data))
		})
	}
}

func TestDecodeReader(t *testing.T) {
	t.Parallel()

	tree, err := Decode(strings.NewReader("G 1 6 GLOBAL\nW 1 1 A 1 1 x\n0\n0\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, tree.Len())
}

func TestEncodeUnresolvedKeepsOperandPaths(t *testing.T) {
	t.Parallel()

	data := lines(
		"G 1 6 GLOBAL",
		"W 1 1 A 0",
		"0",
		"U 1 1 U 2 0 1 A 1 1 A 7 missing",
		"0",
		"0",
	)
	assert.Equal(t, data, encode(t, decode(t, data)))
}
