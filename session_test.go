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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionNavigation(t *testing.T) {
	t.Parallel()

	s := NewSession()
	assert.Equal(t, []string{RootName}, s.FocusPath())
	assert.False(t, s.Up())

	_, err := s.Create(KindWord, "B", nil)
	require.NoError(t, err)
	_, err = s.Create(KindWord, "A", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, s.Subsets())

	require.NoError(t, s.Enter("A"))
	assert.Equal(t, []string{RootName, "A"}, s.FocusPath())
	assert.Empty(t, s.Subsets())

	var nf *NotFoundError
	assert.ErrorAs(t, s.Enter("missing"), &nf)
	assert.Equal(t, []string{RootName, "A"}, s.FocusPath())

	assert.True(t, s.Up())
	assert.Equal(t, s.Tree().Root(), s.Focus())

	require.NoError(t, s.EnterPath("B"))
	assert.Equal(t, []string{RootName, "B"}, s.FocusPath())
	require.NoError(t, s.EnterPath("/"))
	assert.Equal(t, s.Tree().Root(), s.Focus())

	require.NoError(t, s.Delete("B"))
	assert.Equal(t, []string{"A"}, s.Subsets())
}

func TestSessionFocusOnDeletedNode(t *testing.T) {
	t.Parallel()

	s := NewSession()
	tree := s.Tree()
	a := wordSet(t, tree, tree.Root(), "A", "x")
	wordSet(t, tree, a, "inner", "x")
	wordSet(t, tree, tree.Root(), "B")
	require.NoError(t, s.EnterPath("A/inner"))

	require.NoError(t, tree.Delete(a))
	assert.Equal(t, []string{"B"}, s.Subsets())
	assert.Equal(t, tree.Root(), s.Focus())

	require.NoError(t, s.EnterPath("B"))
	b := s.Focus()
	require.NoError(t, tree.Delete(b))
	assert.Equal(t, []string{RootName}, s.FocusPath())

	c := wordSet(t, tree, tree.Root(), "C")
	require.NoError(t, s.EnterPath("C"))
	require.NoError(t, tree.Delete(c))
	assert.False(t, s.Up())
	assert.Equal(t, tree.Root(), s.Focus())
}

func TestSessionCreateWords(t *testing.T) {
	t.Parallel()

	s := NewSession()
	a, err := s.Create(KindWord, "A", nil)
	require.NoError(t, err)
	require.NoError(t, s.Tree().AddWord(a, "x"))

	_, err = s.Create(KindFauxWord, "F", nil)
	var cv *ConstraintViolationError
	assert.ErrorAs(t, err, &cv, "faux word sets cannot live in the global set")

	require.NoError(t, s.Enter("A"))
	f, err := s.Create(KindFauxWord, "F", nil)
	require.NoError(t, err)
	kind, _ := s.Tree().Kind(f)
	assert.Equal(t, KindFauxWord, kind)

	elems, err := s.ListElements()
	require.NoError(t, err)
	assert.True(t, elems.Equal(NewFinite("x")), elems.String())

	_, err = s.Create(KindRoot, "R", nil)
	assert.ErrorAs(t, err, &cv)
}

func TestSessionCreateDerivative(t *testing.T) {
	t.Parallel()

	s := NewSession()
	tree := s.Tree()
	a := wordSet(t, tree, tree.Root(), "A", "x", "y")
	wordSet(t, tree, a, "A1", "x")
	wordSet(t, tree, tree.Root(), "B", "y")

	id, err := s.Create(KindDifference, "D", &PathPicker{Operands: []string{"A", "A/A1"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"y"}, members(t, tree, id))

	// an unknown path declines
	_, err = s.Create(KindUnion, "U", &PathPicker{Operands: []string{"A", "nope"}})
	assert.ErrorIs(t, err, ErrCanceled)
	_, err = tree.LookupPath("U")
	assert.Error(t, err)

	_, err = s.Create(KindUnion, "U", nil)
	assert.ErrorIs(t, err, ErrCanceled)

	// candidates are relative to the focus
	require.NoError(t, s.Enter("A"))
	id, err = s.Create(KindRelativeComplement, "rest", &PathPicker{Operands: []string{"A1"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"y"}, members(t, tree, id))
}

func TestSessionQueryForOperand(t *testing.T) {
	t.Parallel()

	s := NewSession()
	_, _, err := s.QueryForOperand(&PathPicker{Operands: []string{"A"}})
	var cv *ConstraintViolationError
	assert.ErrorAs(t, err, &cv, "no candidates in an empty tree")

	a := wordSet(t, s.Tree(), s.Tree().Root(), "A")
	id, ok, err := s.QueryForOperand(&PathPicker{Operands: []string{"A"}})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, a, id)

	_, ok, err = s.QueryForOperand(&PathPicker{})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionCreateDirectory(t *testing.T) {
	t.Parallel()

	lister := &MemoryLister{}
	lister.AddDirectory("/music", "a.flac")
	s := NewSession(WithLister(lister))

	_, err := s.Create(KindDirectory, "music", &PathPicker{})
	assert.ErrorIs(t, err, ErrCanceled)

	id, err := s.Create(KindDirectory, "music", &PathPicker{Dir: "/music"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.flac"}, members(t, s.Tree(), id))
}

func TestSessionSaveLoad(t *testing.T) {
	t.Parallel()

	s := NewSession()
	tree := s.Tree()
	a := wordSet(t, tree, tree.Root(), "A", "x", "y")
	b := wordSet(t, tree, tree.Root(), "B", "y")
	_, err := tree.CreateDerivative(tree.Root(), "U", KindUnion, a, b)
	require.NoError(t, err)
	require.NoError(t, s.Enter("A"))

	var buf bytes.Buffer
	require.NoError(t, s.Save(&buf))
	saved := buf.String()

	other := NewSession()
	require.NoError(t, other.Load(strings.NewReader(saved)))
	assert.Equal(t, other.Tree().Root(), other.Focus())
	u, err := other.Tree().LookupPath("U")
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, members(t, other.Tree(), u))

	var again bytes.Buffer
	require.NoError(t, other.Save(&again))
	assert.Equal(t, saved, again.String())

	var human bytes.Buffer
	require.NoError(t, other.SaveHuman(&human, &CollapsedReporter{}))
	assert.True(t, strings.HasSuffix(human.String(), "GLOBAL/U: {\"x\", \"y\"}\n"))
}

func TestSessionLoadIsAtomic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		target  any
		atInput bool
	}{
		{
			name:    "malformed",
			data:    "G 1 6 GLOBAL\nW 1 1 A 1 9 x\n",
			target:  new(*FormatError),
			atInput: true,
		},
		{
			name:   "self reference",
			data:   "G 1 6 GLOBAL\nC 1 1 C 1 0 1 C\n0\n0\n",
			target: new(*CycleError),
		},
		{
			name: "three cycle",
			data: lines(
				"G 1 6 GLOBAL",
				"W 1 1 A 1 1 x",
				"0",
				"U 1 2 U1 2 0 1 A 0 2 U2",
				"0",
				"U 1 2 U2 2 0 1 A 0 2 U3",
				"0",
				"U 1 2 U3 2 0 1 A 0 2 U1",
				"0",
				"0",
			),
			target: new(*CycleError),
		},
		{
			name:   "missing members",
			data:   "G 1 6 GLOBAL\nW 1 1 P 0\nW 1 1 A 1 1 x\n0\n0\n0\n",
			target: new(*UnexpectedRemovalError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewSession()
			live := s.Tree()
			a := wordSet(t, live, live.Root(), "keep", "me")
			require.NoError(t, s.Enter("keep"))

			err := s.LoadBytes([]byte(tt.data))
			var le *LoadError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, []byte(tt.data), le.Raw)
			assert.ErrorAs(t, err, tt.target)
			if tt.atInput {
				assert.Less(t, le.Offset, len(tt.data))
			} else {
				assert.Equal(t, len(tt.data), le.Offset)
			}

			assert.Same(t, live, s.Tree())
			assert.Equal(t, a, s.Focus())
			assert.Equal(t, []string{"me"}, members(t, live, a))
		})
	}
}

func TestSessionLoadReadError(t *testing.T) {
	t.Parallel()

	s := NewSession()
	boom := errors.New("boom")
	err := s.Load(failingReader{boom})
	var le *LoadError
	require.ErrorAs(t, err, &le)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, le.Raw)
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func refreshSession(t *testing.T, rec *recorder) (*Session, *MemoryLister) {
	t.Helper()
	lister := &MemoryLister{}
	lister.AddDirectory("/music", "a.flac", "b.flac")
	lister.AddDirectory("/photos", "p.jpg")
	s := NewSession(WithLister(lister), WithRecovery(rec))
	tree := s.Tree()

	music, err := tree.CreateDirectorySet(tree.Root(), "music", "/music")
	require.NoError(t, err)
	fav := wordSet(t, tree, music, "fav", "a.flac", "b.flac")
	_, err = tree.CreateDerivative(music, "rest", KindRelativeComplement, fav)
	require.NoError(t, err)
	photos, err := tree.CreateDirectorySet(tree.Root(), "photos", "/photos")
	require.NoError(t, err)
	wordSet(t, tree, photos, "best", "p.jpg")
	return s, lister
}

func TestSessionRefresh(t *testing.T) {
	t.Parallel()

	rec := &recorder{removal: RecoverDrop, unavailable: RecoverContinue}
	s, lister := refreshSession(t, rec)
	lister.AddDirectory("/music", "b.flac", "c.flac")
	lister.RemoveDirectory("/photos")

	report, err := s.Refresh()
	require.NoError(t, err)
	assert.Equal(t, 1, report.Rescanned)
	assert.Equal(t, 1, report.Degraded)
	assert.Zero(t, report.Deleted)
	assert.Equal(t, 2, report.Cache.ListCalls)

	tree := s.Tree()
	fav, err := tree.LookupPath("music/fav")
	require.NoError(t, err)
	assert.Equal(t, []string{"b.flac"}, members(t, tree, fav))
	rest, err := tree.LookupPath("music/rest")
	require.NoError(t, err)
	assert.Equal(t, []string{"c.flac"}, members(t, tree, rest))
	assert.False(t, tree.Stale(rest))

	photos, err := tree.LookupPath("photos")
	require.NoError(t, err)
	assert.Error(t, tree.Degraded(photos))
	best, err := tree.LookupPath("photos/best")
	require.NoError(t, err)
	assert.Equal(t, []string{"p.jpg"}, members(t, tree, best))

	require.Len(t, rec.removals, 1)
	assert.Equal(t, []string{"a.flac"}, rec.removals[0].Elements)
	require.Len(t, rec.providers, 1)
	assert.Equal(t, "/photos", rec.providers[0].Directory)

	// the tree goes back to the real lister afterwards
	_, ok := tree.Options().Lister.(*CachedLister)
	assert.False(t, ok)
}

func TestSessionRefreshDeletesUnavailable(t *testing.T) {
	t.Parallel()

	rec := &recorder{unavailable: RecoverDelete}
	s, lister := refreshSession(t, rec)
	require.NoError(t, s.EnterPath("photos/best"))
	lister.RemoveDirectory("/photos")

	report, err := s.Refresh()
	require.NoError(t, err)
	assert.Equal(t, 1, report.Rescanned)
	assert.Equal(t, 1, report.Deleted)
	assert.Equal(t, s.Tree().Root(), s.Focus())
	assert.Equal(t, []string{"music"}, s.Subsets())
}

func TestSessionRefreshAbort(t *testing.T) {
	t.Parallel()

	rec := &recorder{removal: RecoverAbort, unavailable: RecoverContinue}
	s, lister := refreshSession(t, rec)
	lister.AddDirectory("/music", "b.flac")

	_, err := s.Refresh()
	var ur *UnexpectedRemovalError
	require.ErrorAs(t, err, &ur)

	// the aborted rescan is rolled back
	fav, err := s.Tree().LookupPath("music/fav")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.flac", "b.flac"}, members(t, s.Tree(), fav))
	music, err := s.Tree().LookupPath("music")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.flac", "b.flac"}, members(t, s.Tree(), music))
}
