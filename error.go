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
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnresolved is returned when the elements of a derivative node are
	// requested before its operand references have been resolved.
	ErrUnresolved = errors.New("derivative set has unresolved operands")

	// ErrRootImmutable is returned for operations that would modify or
	// delete the universal root set.
	ErrRootImmutable = errors.New("the global set cannot be modified")

	// ErrCanceled is returned when a Picker declines to supply a choice.
	ErrCanceled = errors.New("canceled")
)

// JoinPath renders a node path as slash-separated names.
func JoinPath(path []string) string {
	return strings.Join(path, "/")
}

// ConstraintViolationError is returned when an edit is rejected because it
// would break a structural rule, such as a word set member that is not in
// the parent set. The tree is unchanged when it is returned.
type ConstraintViolationError struct {
	Node    []string
	Element string
	Reason  string
}

// Error implements the error interface
func (e *ConstraintViolationError) Error() string {
	if e.Element != "" {
		return fmt.Sprintf("%s: %q rejected: %s", JoinPath(e.Node), e.Element, e.Reason)
	}
	return fmt.Sprintf("%s: %s", JoinPath(e.Node), e.Reason)
}

// UnexpectedRemovalError reports word set members that are no longer in the
// parent set when the recovery handler chose to abort.
type UnexpectedRemovalError struct {
	Node     []string
	Elements []string
}

// Error implements the error interface
func (e *UnexpectedRemovalError) Error() string {
	return fmt.Sprintf("%s: elements %q are missing from the parent set", JoinPath(e.Node), e.Elements)
}

// CycleError is returned when operand references form a cycle. Path lists
// the nodes on the cycle, starting and ending with the same node.
type CycleError struct {
	Path [][]string
}

// Error implements the error interface
func (e *CycleError) Error() string {
	parts := make([]string, len(e.Path))
	for i, p := range e.Path {
		parts[i] = JoinPath(p)
	}
	return "reference cycle detected: " + strings.Join(parts, " -> ")
}

// DanglingReferenceError is returned when an operand path does not lead to
// an existing node.
type DanglingReferenceError struct {
	Node    []string
	Operand []string
}

// Error implements the error interface
func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("%s: operand %q does not exist", JoinPath(e.Node), JoinPath(e.Operand))
}

// ProviderUnavailableError is returned when a directory set cannot list its
// directory. The node keeps its last known membership.
type ProviderUnavailableError struct {
	Node      []string
	Directory string
	Err       error
}

// Error implements the error interface
func (e *ProviderUnavailableError) Error() string {
	return fmt.Sprintf("%s: directory %s unavailable: %v", JoinPath(e.Node), e.Directory, e.Err)
}

// Unwrap returns the underlying error
func (e *ProviderUnavailableError) Unwrap() error {
	return e.Err
}

// ContractViolationError reports an operand combination that cannot arise
// in a well-formed tree.
type ContractViolationError struct {
	Node      []string
	Operation string
	Message   string
}

// Error implements the error interface
func (e *ContractViolationError) Error() string {
	if len(e.Node) > 0 {
		return fmt.Sprintf("%s: %s: %s", JoinPath(e.Node), e.Operation, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Operation, e.Message)
}

// StaleHandleError is returned when a NodeID refers to a deleted node.
type StaleHandleError struct {
	ID NodeID
}

// Error implements the error interface
func (e *StaleHandleError) Error() string {
	return fmt.Sprintf("node handle %s refers to a deleted set", e.ID)
}

// InUseError is returned when deleting a node that derivative sets outside
// the deleted subtree still read from.
type InUseError struct {
	Node       []string
	Dependents [][]string
}

// Error implements the error interface
func (e *InUseError) Error() string {
	deps := make([]string, len(e.Dependents))
	for i, d := range e.Dependents {
		deps[i] = JoinPath(d)
	}
	return fmt.Sprintf("%s is used by %s", JoinPath(e.Node), strings.Join(deps, ", "))
}

// NotFoundError is returned when a child name does not exist.
type NotFoundError struct {
	Parent []string
	Name   string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s has no subset named %q", JoinPath(e.Parent), e.Name)
}

// FormatError reports malformed persisted data.
type FormatError struct {
	Offset  int
	Message string
}

// Error implements the error interface
func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed set data at byte %d: %s", e.Offset, e.Message)
}

// LoadError is returned when a load is rejected. The live tree is left
// untouched; Raw holds the input that was not applied so callers can back
// it up for manual inspection.
type LoadError struct {
	Raw    []byte
	Offset int
	Err    error
}

// Error implements the error interface
func (e *LoadError) Error() string {
	return fmt.Sprintf("load aborted: %v", e.Err)
}

// Unwrap returns the underlying error
func (e *LoadError) Unwrap() error {
	return e.Err
}

var (
	_ error = (*ConstraintViolationError)(nil)
	_ error = (*UnexpectedRemovalError)(nil)
	_ error = (*CycleError)(nil)
	_ error = (*DanglingReferenceError)(nil)
	_ error = (*ProviderUnavailableError)(nil)
	_ error = (*ContractViolationError)(nil)
	_ error = (*StaleHandleError)(nil)
	_ error = (*InUseError)(nil)
	_ error = (*NotFoundError)(nil)
	_ error = (*FormatError)(nil)
	_ error = (*LoadError)(nil)
)
