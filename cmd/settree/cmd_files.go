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
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/contriboss/settree"
	"github.com/contriboss/settree/internal/watch"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func runRescan(cmd *cobra.Command, _ []string) error {
	return withApp(cmd, func(a *app) (bool, error) {
		report, err := a.session.Refresh()
		if err != nil {
			return false, err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "rescanned %d, degraded %d, deleted %d directory %s\n",
			report.Rescanned, report.Degraded, report.Deleted,
			plural(report.Rescanned+report.Degraded+report.Deleted, "set", "sets"))
		return true, nil
	})
}

func reporterFor(format string) (settree.Reporter, error) {
	switch format {
	case "human", "":
		return &settree.DefaultReporter{}, nil
	case "collapsed":
		return &settree.CollapsedReporter{}, nil
	case "yaml":
		return &settree.YAMLReporter{}, nil
	}
	return nil, fmt.Errorf("unknown export format %q", format)
}

func runExport(cmd *cobra.Command, _ []string) error {
	reporter, err := reporterFor(exportFormat)
	if err != nil {
		return err
	}
	return withApp(cmd, func(a *app) (bool, error) {
		target := exportOut
		if target == "" {
			target = a.cfg.HumanFile
		}
		var w io.Writer = cmd.OutOrStdout()
		if target != "-" {
			f, err := os.Create(target)
			if err != nil {
				return false, err
			}
			defer f.Close()
			w = f
		}
		if err := a.session.SaveHuman(w, reporter); err != nil {
			return false, err
		}
		if target != "-" {
			a.logger.Info("exported", "file", target, "format", exportFormat)
		}
		return false, nil
	})
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		stateFile = args[0]
	}
	return withApp(cmd, func(a *app) (bool, error) {
		t := a.tree()
		elements := 0
		_ = t.Walk(t.Root(), func(id settree.NodeID, _ int) bool {
			if elems, err := t.Elements(id); err == nil && elems.IsFinite() {
				elements += elems.Len()
			}
			return true
		})
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s sets, %s listed elements, resolved\n",
			a.cfg.StateFile,
			humanize.Comma(int64(t.Len())),
			humanize.Comma(int64(elements)))
		return false, nil
	})
}

func directoryPaths(t *settree.Tree) []string {
	var dirs []string
	children, _ := t.Children(t.Root())
	for _, id := range children {
		if dir, err := t.Directory(id); err == nil {
			dirs = append(dirs, dir)
		}
	}
	return dirs
}

func runWatch(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	w, err := watch.New(directoryPaths(a.tree()), a.cfg.Watch.Debounce, a.logger)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "watching %d %s\n", len(w.Dirs()), plural(len(w.Dirs()), "directory", "directories"))
	err = w.Run(ctx, func(dirs []string) error {
		report, err := a.session.Refresh()
		if err != nil {
			return err
		}
		a.logger.Info("directories changed",
			"dirs", dirs,
			"rescanned", report.Rescanned,
			"degraded", report.Degraded,
			"deleted", report.Deleted,
		)
		return a.save()
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
