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

// Package settree maintains a hierarchy of named string sets rooted at the
// universal GLOBAL set.
//
// Every set other than the root is a subset of its parent. Sets may be
// infinite: an ElementSet is either a finite list of members or the
// complement of one, and the union, intersection, difference and symmetric
// difference of any two such sets is again one of the two forms.
//
// A tree holds five kinds of set:
//   - word sets list explicit members taken from the parent
//   - faux word sets list arbitrary strings and expose those the parent holds
//   - directory sets, directly under the root, mirror a directory's entries
//   - derivative sets combine operands from below their parent
//   - the root, which contains everything
//
// Edits change a node's own content immediately; derivative sets that read
// from it are marked stale until UpdateElements recomputes them. Problems
// found while recomputing, such as word set members that left the parent or
// directories that cannot be listed, are handed to a RecoveryHandler.
//
// Trees persist through Encode and Decode. A decoded tree is unresolved
// until Resolve links operand paths to nodes, detects reference cycles and
// lists directories. Session wraps a tree with a focus node and performs
// loads atomically.
package settree
