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

// DirLister lists the immediate entries of a directory. Directory sets use
// it as their only view of the filesystem.
//
// Built-in implementations:
//   - OSLister: reads the real filesystem
//   - MemoryLister: fixed listings for tests
//   - CachedLister: memoizes another lister for one refresh sweep
//
// Example custom lister:
//
//	type archiveLister struct{ zr *zip.Reader }
//
//	func (l archiveLister) IsDirectory(path string) bool { ... }
//	func (l archiveLister) ListDirectory(path string) ([]string, error) { ... }
type DirLister interface {
	// ListDirectory returns the names of the entries directly inside path,
	// relative to path.
	ListDirectory(path string) ([]string, error)

	// IsDirectory reports whether path names an existing directory.
	IsDirectory(path string) bool
}

// Candidate is a node offered to a Picker as a possible operand.
type Candidate struct {
	ID NodeID
	// Path is relative to the node the derivative set will be created under.
	Path []string
	Kind Kind
}

// Picker supplies the user choices needed to create a set. Returning false
// from either method cancels creation without changing the tree.
type Picker interface {
	// Operand selects one of candidates.
	Operand(candidates []Candidate) (NodeID, bool)

	// Directory returns the directory a new directory set should mirror.
	Directory() (string, bool)
}

// Recovery is the action a RecoveryHandler chooses for a problem found
// outside normal editing flow.
type Recovery int

const (
	// RecoverAbort stops the operation and leaves the tree as it was.
	RecoverAbort Recovery = iota
	// RecoverDrop removes the missing elements from the word set.
	RecoverDrop
	// RecoverFaux turns the word set into a faux word set that keeps them.
	RecoverFaux
	// RecoverContinue keeps using the last known directory listing.
	RecoverContinue
	// RecoverDelete deletes the directory set.
	RecoverDelete
)

// String returns the lower-case name of the recovery.
func (r Recovery) String() string {
	switch r {
	case RecoverAbort:
		return "abort"
	case RecoverDrop:
		return "drop"
	case RecoverFaux:
		return "faux"
	case RecoverContinue:
		return "continue"
	case RecoverDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// ParseRecovery maps a recovery name to a Recovery.
func ParseRecovery(s string) (Recovery, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "abort":
		return RecoverAbort, nil
	case "drop":
		return RecoverDrop, nil
	case "faux":
		return RecoverFaux, nil
	case "continue":
		return RecoverContinue, nil
	case "delete":
		return RecoverDelete, nil
	}
	return 0, fmt.Errorf("unknown recovery %q", s)
}

// RemovalEvent describes word set members that vanished from the parent.
type RemovalEvent struct {
	Node     NodeID
	Path     []string
	Elements []string
}

// ProviderEvent describes a directory set whose directory cannot be listed.
type ProviderEvent struct {
	Node      NodeID
	Path      []string
	Directory string
	Err       error
}

// RecoveryHandler decides how to recover from unexpected removals and
// unavailable directories. Recovery is always caller directed.
type RecoveryHandler interface {
	// UnexpectedRemoval returns RecoverDrop, RecoverFaux or RecoverAbort.
	UnexpectedRemoval(ev RemovalEvent) Recovery

	// ProviderUnavailable returns RecoverContinue, RecoverDelete or RecoverAbort.
	ProviderUnavailable(ev ProviderEvent) Recovery
}

// StaticRecovery answers every event of a category with the same recovery.
type StaticRecovery struct {
	OnRemoval     Recovery
	OnUnavailable Recovery
}

// UnexpectedRemoval implements RecoveryHandler.
func (s StaticRecovery) UnexpectedRemoval(RemovalEvent) Recovery {
	return s.OnRemoval
}

// ProviderUnavailable implements RecoveryHandler.
func (s StaticRecovery) ProviderUnavailable(ProviderEvent) Recovery {
	return s.OnUnavailable
}

var (
	_ RecoveryHandler = StaticRecovery{}
)
