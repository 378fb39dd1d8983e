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
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// Encode writes the tree in the persisted record format.
//
// Every node is written as one record followed by its children in name
// order and a "0" line closing the child list:
//
//	<type-char> <human 0|1> <name-len> <name>[ <payload>]
//
// Payloads:
//   - word and faux word sets: <count>( <len> <element>)*
//   - directory sets: <len> <absolute-path>
//   - derivative sets: <operand-count>( <hops>( <len> <name>)*)* where each
//     operand is named by the hops+1 child names leading down from the
//     derivative's parent
//
// The root carries no payload.
func Encode(w io.Writer, t *Tree) error {
	bw := bufio.NewWriter(w)
	if err := t.encodeNode(bw, t.root); err != nil {
		return err
	}
	return bw.Flush()
}

func writeString(w *bufio.Writer, s string) {
	w.WriteByte(' ')
	w.WriteString(strconv.Itoa(len(s)))
	w.WriteByte(' ')
	w.WriteString(s)
}

func writeSet(w *bufio.Writer, s ElementSet) {
	w.WriteByte(' ')
	w.WriteString(strconv.Itoa(s.Len()))
	for e := range s.All() {
		writeString(w, e)
	}
}

func (t *Tree) encodeNode(w *bufio.Writer, id NodeID) error {
	n := t.mustGet(id)
	w.WriteByte(n.kind().TypeChar())
	if n.human {
		w.WriteString(" 1")
	} else {
		w.WriteString(" 0")
	}
	writeString(w, n.name.Value())

	switch c := n.content.(type) {
	case *wordContent:
		writeSet(w, c.members)
	case *fauxWordContent:
		writeSet(w, c.faux)
	case *directoryContent:
		writeString(w, c.dir)
	case *derivativeContent:
		paths, err := t.operandPaths(id, n, c)
		if err != nil {
			return err
		}
		w.WriteByte(' ')
		w.WriteString(strconv.Itoa(len(paths)))
		for _, path := range paths {
			w.WriteByte(' ')
			w.WriteString(strconv.Itoa(len(path) - 1))
			for _, name := range path {
				writeString(w, name.Value())
			}
		}
	}
	w.WriteByte('\n')

	for _, child := range t.sortedChildren(n) {
		if err := t.encodeNode(w, child); err != nil {
			return err
		}
	}
	_, err := w.WriteString("0\n")
	return err
}

func (t *Tree) operandPaths(id NodeID, n *node, c *derivativeContent) ([][]Name, error) {
	switch ops := c.operands.(type) {
	case pendingOperands:
		return ops.paths, nil
	case resolvedOperands:
		paths := make([][]Name, len(ops.ids))
		for i, op := range ops.ids {
			if !t.Valid(op) {
				return nil, &DanglingReferenceError{Node: t.path(id), Operand: []string{op.String()}}
			}
			rel, ok := t.relativePath(n.parent, op)
			if !ok {
				return nil, &ContractViolationError{
					Node:      t.path(id),
					Operation: "encode",
					Message:   fmt.Sprintf("operand %s is not below the parent", JoinPath(t.path(op))),
				}
			}
			paths[i] = rel
		}
		return paths, nil
	}
	return nil, ErrUnresolved
}

// Decode reads a persisted tree. The result is unresolved: derivative sets
// hold operand paths and directory sets have not been listed. Call Resolve
// before using it.
func Decode(r io.Reader, opts ...TreeOption) (*Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(data, opts...)
}

// DecodeBytes is Decode over an in-memory buffer. Malformed input yields a
// *FormatError carrying the byte offset of the problem.
func DecodeBytes(data []byte, opts ...TreeOption) (*Tree, error) {
	d := &decoder{data: data}
	t := New(opts...)

	d.skipSpace()
	start := d.off
	kindChar, err := d.typeChar()
	if err != nil {
		return nil, err
	}
	if _, err := d.int(); err != nil {
		return nil, err
	}
	name, err := d.str()
	if err != nil {
		return nil, err
	}
	if kindChar != KindRoot.TypeChar() || name != RootName {
		return nil, &FormatError{
			Offset:  start,
			Message: fmt.Sprintf("expected the %s set, found %q named %q", RootName, kindChar, name),
		}
	}
	if err := d.children(t, t.root); err != nil {
		return nil, err
	}
	d.skipSpace()
	if d.off != len(d.data) {
		return nil, d.errorf("unexpected data after the %s set", RootName)
	}
	return t, nil
}

type decoder struct {
	data []byte
	off  int
}

func (d *decoder) errorf(format string, args ...any) *FormatError {
	return &FormatError{Offset: d.off, Message: fmt.Sprintf(format, args...)}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\r' || b == '\t'
}

func (d *decoder) skipSpace() {
	for d.off < len(d.data) && isSpace(d.data[d.off]) {
		d.off++
	}
}

func (d *decoder) typeChar() (byte, error) {
	d.skipSpace()
	if d.off >= len(d.data) {
		return 0, d.errorf("unexpected end of data, expected a set type")
	}
	c := d.data[d.off]
	d.off++
	return c, nil
}

func (d *decoder) int() (int, error) {
	d.skipSpace()
	start := d.off
	for d.off < len(d.data) && d.data[d.off] >= '0' && d.data[d.off] <= '9' {
		d.off++
	}
	if start == d.off {
		if d.off >= len(d.data) {
			return 0, d.errorf("unexpected end of data, expected a number")
		}
		return 0, d.errorf("expected a number, found %q", d.data[d.off])
	}
	v, err := strconv.Atoi(string(d.data[start:d.off]))
	if err != nil {
		return 0, &FormatError{Offset: start, Message: err.Error()}
	}
	return v, nil
}

// str reads a length-prefixed string. Exactly one separator byte follows
// the length; the string itself may contain any bytes.
func (d *decoder) str() (string, error) {
	size, err := d.int()
	if err != nil {
		return "", err
	}
	if d.off >= len(d.data) || d.data[d.off] != ' ' {
		return "", d.errorf("expected a space after the string length")
	}
	d.off++
	if size > len(d.data)-d.off {
		return "", d.errorf("string of %d bytes runs past the end of data", size)
	}
	s := string(d.data[d.off : d.off+size])
	d.off += size
	return s, nil
}

func (d *decoder) set() (ElementSet, error) {
	count, err := d.int()
	if err != nil {
		return ElementSet{}, err
	}
	elems := make([]string, 0, min(count, len(d.data)))
	for range count {
		e, err := d.str()
		if err != nil {
			return ElementSet{}, err
		}
		elems = append(elems, e)
	}
	return NewFinite(elems...), nil
}

func (d *decoder) operands(kind Kind) (pendingOperands, error) {
	start := d.off
	count, err := d.int()
	if err != nil {
		return pendingOperands{}, err
	}
	if count != kind.Arity() {
		return pendingOperands{}, &FormatError{
			Offset:  start,
			Message: fmt.Sprintf("%s sets take %d operands, found %d", kind, kind.Arity(), count),
		}
	}
	paths := make([][]Name, count)
	for i := range paths {
		hops, err := d.int()
		if err != nil {
			return pendingOperands{}, err
		}
		if hops >= len(d.data) {
			return pendingOperands{}, d.errorf("operand path of %d names runs past the end of data", hops+1)
		}
		path := make([]Name, hops+1)
		for j := range path {
			name, err := d.str()
			if err != nil {
				return pendingOperands{}, err
			}
			path[j] = MakeName(name)
		}
		paths[i] = path
	}
	return pendingOperands{paths: paths}, nil
}

// children reads child records of parent up to the closing "0".
func (d *decoder) children(t *Tree, parent NodeID) error {
	for {
		start := d.off
		c, err := d.typeChar()
		if err != nil {
			return err
		}
		if c == '0' {
			return nil
		}
		kind, ok := kindForTypeChar(c)
		if !ok || kind == KindRoot {
			return &FormatError{Offset: start, Message: fmt.Sprintf("unknown set type %q", c)}
		}
		human, err := d.int()
		if err != nil {
			return err
		}
		if human > 1 {
			return d.errorf("human flag must be 0 or 1, found %d", human)
		}
		name, err := d.str()
		if err != nil {
			return err
		}

		var cont content
		switch kind {
		case KindWord:
			members, err := d.set()
			if err != nil {
				return err
			}
			cont = &wordContent{members: members}
		case KindFauxWord:
			faux, err := d.set()
			if err != nil {
				return err
			}
			cont = &fauxWordContent{faux: faux}
		case KindDirectory:
			dir, err := d.str()
			if err != nil {
				return err
			}
			cont = &directoryContent{dir: dir}
		default:
			ops, err := d.operands(kind)
			if err != nil {
				return err
			}
			cont = &derivativeContent{op: kind, operands: ops}
		}

		id, err := t.insert(parent, name, cont, Unresolved)
		if err != nil {
			return &FormatError{Offset: start, Message: err.Error()}
		}
		t.mustGet(id).human = human == 1
		if err := d.children(t, id); err != nil {
			return err
		}
	}
}
