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

package main

import (
	"fmt"
	"strings"

	"github.com/contriboss/settree"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func pathArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// describe summarizes a set's membership for listings.
func describe(elems settree.ElementSet) string {
	if members, ok := elems.Members(); ok {
		return humanize.Comma(int64(len(members))) + " " + plural(len(members), "element", "elements")
	}
	excluded, _ := elems.Excluded()
	if len(excluded) == 0 {
		return "everything"
	}
	return "everything except " + humanize.Comma(int64(len(excluded)))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func runLs(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app) (bool, error) {
		t := a.tree()
		id, err := a.lookup(pathArg(args))
		if err != nil {
			return false, err
		}
		children, err := t.Children(id)
		if err != nil {
			return false, err
		}
		out := cmd.OutOrStdout()
		for _, child := range children {
			name, _ := t.Name(child)
			kind, _ := t.Kind(child)
			summary := settree.ErrUnresolved.Error()
			if elems, err := t.Elements(child); err == nil {
				summary = describe(elems)
			}
			var notes []string
			if t.Stale(child) {
				notes = append(notes, "stale")
			}
			if kind == settree.KindDirectory {
				if derr := t.Degraded(child); derr != nil {
					notes = append(notes, "degraded")
				}
			}
			line := fmt.Sprintf("%-24s %-20s %s", name, kind, summary)
			if len(notes) > 0 {
				line += " (" + strings.Join(notes, ", ") + ")"
			}
			fmt.Fprintln(out, line)
		}
		return false, nil
	})
}

func runElements(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app) (bool, error) {
		id, err := a.lookup(pathArg(args))
		if err != nil {
			return false, err
		}
		elems, err := a.tree().Elements(id)
		if err != nil {
			return false, err
		}
		out := cmd.OutOrStdout()
		if !elems.IsFinite() {
			fmt.Fprintln(out, "This set contains every element except:")
		}
		for e := range elems.All() {
			fmt.Fprintf(out, "'%s'\n", e)
		}
		if faux, err := a.tree().FauxElements(id); err == nil && faux.Len() > elems.Len() {
			fmt.Fprintf(out, "(%s faux %s not in the parent)\n",
				humanize.Comma(int64(faux.Len()-elems.Len())),
				plural(faux.Len()-elems.Len(), "element", "elements"))
		}
		return false, nil
	})
}

func runCreate(cmd *cobra.Command, args []string) error {
	kind, err := settree.ParseKind(args[0])
	if err != nil {
		return err
	}
	return withApp(cmd, func(a *app) (bool, error) {
		names := settree.SplitPath(args[1])
		if len(names) > 0 && names[0] == settree.RootName {
			names = names[1:]
		}
		if len(names) == 0 {
			return false, fmt.Errorf("missing set name in %q", args[1])
		}
		if err := a.session.EnterPath(strings.Join(names[:len(names)-1], "/")); err != nil {
			return false, err
		}
		picker := &settree.PathPicker{Operands: createOperands, Dir: createDir}
		if _, err := a.session.Create(kind, names[len(names)-1], picker); err != nil {
			return false, err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %s set %s\n", kind, settree.JoinPath(names))
		return true, nil
	})
}

func runDelete(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app) (bool, error) {
		id, err := a.lookup(args[0])
		if err != nil {
			return false, err
		}
		return true, a.tree().Delete(id)
	})
}

func runUpdate(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app) (bool, error) {
		id, err := a.lookup(pathArg(args))
		if err != nil {
			return false, err
		}
		return true, a.tree().UpdateElements(id)
	})
}

func setVisible(cmd *cobra.Command, path string, visible bool) error {
	return withApp(cmd, func(a *app) (bool, error) {
		id, err := a.lookup(path)
		if err != nil {
			return false, err
		}
		return true, a.tree().SetHumanVisible(id, visible)
	})
}

func runHide(cmd *cobra.Command, args []string) error {
	return setVisible(cmd, args[0], false)
}

func runShow(cmd *cobra.Command, args []string) error {
	return setVisible(cmd, args[0], true)
}
