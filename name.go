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

import "unique"

// Name is an interned node name. Sibling lookups and operand paths compare
// names by handle instead of by string content.
type Name = unique.Handle[string]

// MakeName creates an interned Name from a string.
func MakeName(s string) Name {
	return unique.Make(s)
}

// RootName is the name of the universal root set.
const RootName = "GLOBAL"

func stringsOf(names []Name) []string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = n.Value()
	}
	return parts
}
