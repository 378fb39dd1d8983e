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

// Reporter formats a subtree for people to read.
type Reporter interface {
	// Report renders the node at id and its visible descendants. Nodes
	// whose human flag is off are left out together with their subtrees.
	Report(t *Tree, id NodeID) string
}

// DefaultReporter produces nested brace blocks, one per set, listing the
// elements (or the excluded elements of an infinite set) followed by the
// subsets.
//
// Example output:
//
//	GLOBAL {
//	  Inverse Elements {
//	  },
//	  Subsets {
//	    A {
//	      Elements {
//	          'x'
//	      },
//	      Subsets {
//	      }
//	    }
//	  }
//	}
type DefaultReporter struct{}

// Report implements Reporter
func (r *DefaultReporter) Report(t *Tree, id NodeID) string {
	n, err := t.get(id)
	if err != nil {
		return err.Error()
	}
	if !n.human {
		return ""
	}
	var b strings.Builder
	r.reportNode(t, id, &b, 0)
	return b.String()
}

func (r *DefaultReporter) reportNode(t *Tree, id NodeID, b *strings.Builder, depth int) {
	n := t.mustGet(id)
	indent := strings.Repeat(" ", depth)
	inner := strings.Repeat(" ", depth+2)
	item := strings.Repeat(" ", depth+6)

	fmt.Fprintf(b, "%s%s {\n%s", indent, n.name.Value(), inner)

	elems, err := t.elementsOf(n)
	listed := elems.elems
	switch {
	case err != nil:
		b.WriteString("Unresolved ")
		listed = nil
	case !elems.IsFinite():
		b.WriteString("Inverse ")
	}
	b.WriteString("Elements {")
	for i, e := range listed {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(b, "\n%s'%s'", item, e)
	}
	fmt.Fprintf(b, "\n%s},\n%sSubsets {\n", inner, inner)

	for _, child := range t.sortedChildren(n) {
		if t.mustGet(child).human {
			r.reportNode(t, child, b, depth+4)
		}
	}
	fmt.Fprintf(b, "%s}\n%s}\n", inner, indent)
}

// CollapsedReporter produces one line per set: its path from the root
// followed by its elements.
//
// Example output:
//
//	GLOBAL: ~{}
//	GLOBAL/A: {"x"}
type CollapsedReporter struct{}

// Report implements Reporter with a collapsed format
func (r *CollapsedReporter) Report(t *Tree, id NodeID) string {
	if _, err := t.get(id); err != nil {
		return err.Error()
	}
	var lines []string
	t.walk(id, 0, func(cur NodeID, _ int) bool {
		n := t.mustGet(cur)
		if !n.human {
			return false
		}
		rendered := ErrUnresolved.Error()
		if elems, err := t.elementsOf(n); err == nil {
			rendered = elems.String()
		}
		lines = append(lines, fmt.Sprintf("%s: %s", JoinPath(t.path(cur)), rendered))
		return true
	})
	return strings.Join(lines, "\n")
}

var (
	_ Reporter = &DefaultReporter{}
	_ Reporter = &CollapsedReporter{}
)
