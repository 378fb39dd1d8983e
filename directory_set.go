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
	"path/filepath"
)

// CreateDirectorySet adds a set mirroring the entries of dir. Directory
// sets can only live directly under the root. The directory is stored as
// an absolute path and listed immediately; a directory that does not exist
// or cannot be listed is rejected and the tree is unchanged.
func (t *Tree) CreateDirectorySet(parent NodeID, name, dir string) (NodeID, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return NodeID{}, &ProviderUnavailableError{Node: t.path(parent), Directory: dir, Err: err}
	}
	lister := t.options.Lister
	if !lister.IsDirectory(abs) {
		return NodeID{}, &ConstraintViolationError{
			Node:    t.path(parent),
			Element: abs,
			Reason:  "not a directory",
		}
	}
	entries, err := lister.ListDirectory(abs)
	if err != nil {
		return NodeID{}, &ProviderUnavailableError{Node: t.path(parent), Directory: abs, Err: err}
	}
	return t.insert(parent, name, &directoryContent{dir: abs, listing: NewFinite(entries...)}, Resolved)
}

func (t *Tree) directory(id NodeID) (*node, *directoryContent, error) {
	n, err := t.get(id)
	if err != nil {
		return nil, nil, err
	}
	c, ok := n.content.(*directoryContent)
	if !ok {
		return nil, nil, &ConstraintViolationError{Node: t.path(id), Reason: "not a directory set"}
	}
	return n, c, nil
}

// Directory returns the absolute path a directory set mirrors.
func (t *Tree) Directory(id NodeID) (string, error) {
	_, c, err := t.directory(id)
	if err != nil {
		return "", err
	}
	return c.dir, nil
}

// Degraded returns the last listing failure of a directory set, or nil
// when the last listing succeeded.
func (t *Tree) Degraded(id NodeID) error {
	_, c, err := t.directory(id)
	if err != nil {
		return err
	}
	return c.err
}

// Rescan rereads the directory behind a directory set.
//
// Entries that vanished are removed from every descendant: word sets go
// through the UnexpectedRemoval recovery, faux word sets and derivative
// sets are recomputed. If the recovery aborts, the tree is restored to its
// state before the rescan and the abort error is returned.
//
// When the directory cannot be listed the node keeps its last known
// entries, is marked degraded and a *ProviderUnavailableError is returned.
func (t *Tree) Rescan(id NodeID) error {
	_, c, err := t.directory(id)
	if err != nil {
		return err
	}
	entries, err := t.options.Lister.ListDirectory(c.dir)
	if err != nil {
		c.err = err
		t.debug("directory unavailable", "path", JoinPath(t.path(id)), "dir", c.dir, "error", err)
		return &ProviderUnavailableError{Node: t.path(id), Directory: c.dir, Err: err}
	}

	snap := t.snapshot()
	listing := NewFinite(entries...)
	removed := Difference(c.listing, listing)
	c.listing = listing
	c.err = nil
	t.debug("directory rescanned",
		"path", JoinPath(t.path(id)),
		"entries", listing.Len(),
		"removed", removed.Len(),
	)
	t.touch(id)

	if err := t.UpdateElements(id); err != nil {
		t.restore(snap)
		return err
	}
	return nil
}

// recoverUnavailable asks the recovery handler what to do with a directory
// set that cannot be listed. Continue keeps the node degraded, Delete
// removes it, Abort returns a *ProviderUnavailableError.
func (t *Tree) recoverUnavailable(id NodeID, listErr error) error {
	_, c, err := t.directory(id)
	if err != nil {
		return err
	}
	c.err = listErr
	ev := ProviderEvent{Node: id, Path: t.path(id), Directory: c.dir, Err: listErr}
	recovery := t.options.Recovery.ProviderUnavailable(ev)
	t.debug("directory unavailable",
		"path", JoinPath(ev.Path),
		"dir", c.dir,
		"recovery", recovery.String(),
	)
	switch recovery {
	case RecoverContinue:
		return nil
	case RecoverDelete:
		return t.Delete(id)
	default:
		return &ProviderUnavailableError{Node: ev.Path, Directory: c.dir, Err: listErr}
	}
}
