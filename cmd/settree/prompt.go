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
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/contriboss/settree"
	"github.com/contriboss/settree/internal/config"
	"github.com/mattn/go-isatty"
)

const promptRecovery = "prompt"

// recoveryHandler answers recovery events from the configured defaults or,
// when the configured value is "prompt" and stdin is a terminal, by asking.
type recoveryHandler struct {
	onMissing     string
	onUnavailable string
	interactive   bool
	out           io.Writer
}

func newRecovery(cfg config.RecoveryConfig, out io.Writer) (*recoveryHandler, error) {
	for _, v := range []string{cfg.OnMissing, cfg.OnUnavailable} {
		if v == promptRecovery {
			continue
		}
		if _, err := settree.ParseRecovery(v); err != nil {
			return nil, err
		}
	}
	fd := os.Stdin.Fd()
	return &recoveryHandler{
		onMissing:     cfg.OnMissing,
		onUnavailable: cfg.OnUnavailable,
		interactive:   isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
		out:           out,
	}, nil
}

// UnexpectedRemoval implements settree.RecoveryHandler
func (h *recoveryHandler) UnexpectedRemoval(ev settree.RemovalEvent) settree.Recovery {
	if h.onMissing != promptRecovery {
		r, _ := settree.ParseRecovery(h.onMissing)
		return r
	}
	if !h.interactive {
		fmt.Fprintf(h.out, "%s lost %q from its parent; aborting (no terminal to ask)\n", settree.JoinPath(ev.Path), ev.Elements)
		return settree.RecoverAbort
	}
	return h.ask(
		fmt.Sprintf("%s holds %q, which its parent no longer contains", settree.JoinPath(ev.Path), ev.Elements),
		settree.RecoverAbort,
		huh.NewOption("Drop the elements", settree.RecoverDrop),
		huh.NewOption("Keep them as a faux word set", settree.RecoverFaux),
		huh.NewOption("Abort without saving", settree.RecoverAbort),
	)
}

// ProviderUnavailable implements settree.RecoveryHandler
func (h *recoveryHandler) ProviderUnavailable(ev settree.ProviderEvent) settree.Recovery {
	if h.onUnavailable != promptRecovery {
		r, _ := settree.ParseRecovery(h.onUnavailable)
		return r
	}
	if !h.interactive {
		fmt.Fprintf(h.out, "%s: directory %s unavailable (%v); keeping last known entries\n", settree.JoinPath(ev.Path), ev.Directory, ev.Err)
		return settree.RecoverContinue
	}
	return h.ask(
		fmt.Sprintf("%s cannot read %s: %v", settree.JoinPath(ev.Path), ev.Directory, ev.Err),
		settree.RecoverAbort,
		huh.NewOption("Keep the last known entries", settree.RecoverContinue),
		huh.NewOption("Delete the directory set", settree.RecoverDelete),
		huh.NewOption("Abort without saving", settree.RecoverAbort),
	)
}

func (h *recoveryHandler) ask(title string, fallback settree.Recovery, options ...huh.Option[settree.Recovery]) settree.Recovery {
	choice := fallback
	err := huh.NewSelect[settree.Recovery]().
		Title(title).
		Options(options...).
		Value(&choice).
		Run()
	if err != nil {
		return fallback
	}
	return choice
}

var _ settree.RecoveryHandler = &recoveryHandler{}
