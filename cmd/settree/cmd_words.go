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
	"strconv"

	"github.com/spf13/cobra"
)

func runAdd(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app) (bool, error) {
		id, err := a.lookup(args[0])
		if err != nil {
			return false, err
		}
		for _, element := range args[1:] {
			if err := a.tree().AddWord(id, element); err != nil {
				return false, err
			}
		}
		return true, nil
	})
}

func runCandidates(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app) (bool, error) {
		id, err := a.lookup(args[0])
		if err != nil {
			return false, err
		}
		candidates, err := a.tree().ParentCandidates(id)
		if err != nil {
			return false, err
		}
		for i, c := range candidates {
			fmt.Fprintf(cmd.OutOrStdout(), "%d. '%s'\n", i+1, c)
		}
		return false, nil
	})
}

func runAddParent(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid selection %q", args[1])
	}
	return withApp(cmd, func(a *app) (bool, error) {
		id, err := a.lookup(args[0])
		if err != nil {
			return false, err
		}
		return true, a.tree().AddParentWord(id, n-1)
	})
}

func runRemove(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app) (bool, error) {
		id, err := a.lookup(args[0])
		if err != nil {
			return false, err
		}
		for _, element := range args[1:] {
			if err := a.tree().RemoveWord(id, element); err != nil {
				return false, err
			}
		}
		return true, nil
	})
}

func runRemoveAt(cmd *cobra.Command, args []string) error {
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid selection %q", args[1])
	}
	return withApp(cmd, func(a *app) (bool, error) {
		id, err := a.lookup(args[0])
		if err != nil {
			return false, err
		}
		return true, a.tree().RemoveWordAt(id, n-1)
	})
}

func runFaux(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(a *app) (bool, error) {
		id, err := a.lookup(args[0])
		if err != nil {
			return false, err
		}
		return true, a.tree().ConvertToFaux(id)
	})
}
