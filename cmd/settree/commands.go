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
	"github.com/spf13/cobra"
)

// --- Global Command Variables ---
var (
	configPath    string
	stateFile     string
	logLevel      string
	logFile       string
	onMissing     string
	onUnavailable string

	rootCmd = &cobra.Command{
		Use:   "settree",
		Short: "Manage a hierarchy of named, possibly infinite string sets",
		Long: `settree keeps a tree of sets rooted at the universal GLOBAL set.
Word sets list explicit members, directory sets mirror a directory's
entries and derivative sets combine other sets with union, intersection,
difference, symmetric difference or relative complement.`,
		SilenceUsage: true,
	}

	lsCmd = &cobra.Command{
		Use:   "ls [path]",
		Short: "List the subsets of a set",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLs,
	}
	elementsCmd = &cobra.Command{
		Use:     "elements [path]",
		Short:   "Print the elements of a set",
		Aliases: []string{"el"},
		Args:    cobra.MaximumNArgs(1),
		RunE:    runElements,
	}
	createCmd = &cobra.Command{
		Use:   "create <kind> <path>",
		Short: "Create a set; kinds: word, faux, directory, union, intersection, difference, symmetric-difference, relative-complement",
		Args:  cobra.ExactArgs(2),
		RunE:  runCreate,
	}
	deleteCmd = &cobra.Command{
		Use:     "delete <path>",
		Short:   "Delete a set and all of its subsets",
		Aliases: []string{"rm"},
		Args:    cobra.ExactArgs(1),
		RunE:    runDelete,
	}
	addCmd = &cobra.Command{
		Use:   "add <path> <element>...",
		Short: "Add elements to a word or faux word set",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runAdd,
	}
	candidatesCmd = &cobra.Command{
		Use:   "candidates <path>",
		Short: "List parent elements a word set does not hold yet",
		Args:  cobra.ExactArgs(1),
		RunE:  runCandidates,
	}
	addParentCmd = &cobra.Command{
		Use:   "add-parent <path> <number>",
		Short: "Add the numbered entry of the candidates listing",
		Args:  cobra.ExactArgs(2),
		RunE:  runAddParent,
	}
	removeCmd = &cobra.Command{
		Use:   "remove <path> <element>...",
		Short: "Remove elements from a word or faux word set and every subset",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runRemove,
	}
	removeAtCmd = &cobra.Command{
		Use:   "remove-at <path> <number>",
		Short: "Remove the numbered element of the elements listing",
		Args:  cobra.ExactArgs(2),
		RunE:  runRemoveAt,
	}
	hideCmd = &cobra.Command{
		Use:   "hide <path>",
		Short: "Leave a set and its subsets out of human-readable exports",
		Args:  cobra.ExactArgs(1),
		RunE:  runHide,
	}
	showCmd = &cobra.Command{
		Use:   "show <path>",
		Short: "Include a hidden set in human-readable exports again",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
	fauxCmd = &cobra.Command{
		Use:   "faux <path>",
		Short: "Turn a word set into a faux word set",
		Args:  cobra.ExactArgs(1),
		RunE:  runFaux,
	}
	updateCmd = &cobra.Command{
		Use:   "update [path]",
		Short: "Recompute a set and its subsets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runUpdate,
	}
	rescanCmd = &cobra.Command{
		Use:   "rescan",
		Short: "Reread every mirrored directory and recompute the tree",
		Args:  cobra.NoArgs,
		RunE:  runRescan,
	}
	exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Write the tree in a human-readable format",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}
	checkCmd = &cobra.Command{
		Use:   "check [file]",
		Short: "Load and resolve a state file without changing it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCheck,
	}
	watchCmd = &cobra.Command{
		Use:   "watch",
		Short: "Rescan directory sets whenever their directories change",
		Args:  cobra.NoArgs,
		RunE:  runWatch,
	}
)

var (
	createDir      string
	createOperands []string
	exportFormat   string
	exportOut      string
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML config file (default settree.yaml when present)")
	pf.StringVarP(&stateFile, "file", "f", "", "state file (overrides state_file)")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&logFile, "log-file", "", "append JSON logs to this file")
	pf.StringVar(&onMissing, "on-missing", "", "recovery for word set members missing from the parent: drop, faux, abort or prompt")
	pf.StringVar(&onUnavailable, "on-unavailable", "", "recovery for unreadable directories: continue, delete, abort or prompt")

	createCmd.Flags().StringVar(&createDir, "dir", "", "directory mirrored by a directory set")
	createCmd.Flags().StringArrayVar(&createOperands, "operand", nil, "operand path relative to the new set's parent (repeatable)")

	exportCmd.Flags().StringVar(&exportFormat, "format", "human", "human, collapsed or yaml")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file, - for stdout (default human_file)")

	rootCmd.AddCommand(
		lsCmd,
		elementsCmd,
		createCmd,
		deleteCmd,
		addCmd,
		candidatesCmd,
		addParentCmd,
		removeCmd,
		removeAtCmd,
		fauxCmd,
		hideCmd,
		showCmd,
		updateCmd,
		rescanCmd,
		exportCmd,
		checkCmd,
		watchCmd,
	)
}
