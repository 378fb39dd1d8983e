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
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/contriboss/settree"
	"github.com/contriboss/settree/internal/config"
	"github.com/contriboss/settree/internal/logging"
	"github.com/juju/fslock"
	"github.com/spf13/cobra"
)

const defaultConfigFile = "settree.yaml"

// app is the state shared by one command invocation.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	closeLog func() error
	lock     *fslock.Lock
	session  *settree.Session
}

// newApp loads the config and the state file. A state file that does not
// exist yet yields an empty tree. A state file that is rejected is copied
// next to itself with the backup suffix and the error is returned.
func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger, closeLog, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Stderr: cmd.ErrOrStderr(),
		File:   cfg.Log.File,
	})
	if err != nil {
		return nil, err
	}
	recovery, err := newRecovery(cfg.Recovery, cmd.ErrOrStderr())
	if err != nil {
		closeLog()
		return nil, err
	}

	lock := fslock.New(cfg.StateFile + ".lock")
	if err := lock.LockWithTimeout(cfg.LockTimeout); err != nil {
		closeLog()
		return nil, fmt.Errorf("%s is in use by another settree process: %w", cfg.StateFile, err)
	}

	a := &app{
		cfg:      cfg,
		logger:   logger,
		closeLog: closeLog,
		lock:     lock,
		session:  settree.NewSession(settree.WithLogger(logger), settree.WithRecovery(recovery)),
	}
	if err := a.load(); err != nil {
		a.close()
		return nil, err
	}
	return a, nil
}

func loadConfig() (config.Config, error) {
	path, optional := configPath, false
	if path == "" {
		path, optional = defaultConfigFile, true
	}
	cfg, err := config.Load(path, optional)
	if err != nil {
		return cfg, err
	}
	if stateFile != "" {
		cfg.StateFile = stateFile
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFile != "" {
		cfg.Log.File = logFile
	}
	if onMissing != "" {
		cfg.Recovery.OnMissing = onMissing
	}
	if onUnavailable != "" {
		cfg.Recovery.OnUnavailable = onUnavailable
	}
	return cfg, cfg.Validate()
}

func (a *app) close() {
	if err := a.lock.Unlock(); err != nil {
		a.logger.Warn("releasing state lock", "error", err)
	}
	if err := a.closeLog(); err != nil {
		fmt.Fprintln(os.Stderr, "closing log file:", err)
	}
}

func (a *app) tree() *settree.Tree {
	return a.session.Tree()
}

func (a *app) load() error {
	f, err := os.Open(a.cfg.StateFile)
	if errors.Is(err, fs.ErrNotExist) {
		a.logger.Debug("no state file, starting empty", "file", a.cfg.StateFile)
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	err = a.session.Load(f)
	var le *settree.LoadError
	if errors.As(err, &le) {
		backup := a.cfg.StateFile + a.cfg.BackupSuffix
		if werr := os.WriteFile(backup, le.Raw, 0o644); werr != nil {
			return errors.Join(err, fmt.Errorf("backing up rejected state: %w", werr))
		}
		a.logger.Error("state file rejected",
			"file", a.cfg.StateFile,
			"backup", backup,
			"offset", le.Offset,
			"error", le.Err,
		)
		return err
	}
	return err
}

// save writes the tree to a temporary file beside the state file and
// renames it into place.
func (a *app) save() error {
	dir := filepath.Dir(a.cfg.StateFile)
	tmp, err := os.CreateTemp(dir, ".settree-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := a.session.Save(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), a.cfg.StateFile); err != nil {
		return err
	}
	a.logger.Debug("state saved", "file", a.cfg.StateFile, "sets", a.tree().Len())
	return nil
}

// lookup resolves a slash-separated path below GLOBAL. A leading GLOBAL
// segment is accepted.
func (a *app) lookup(path string) (settree.NodeID, error) {
	names := settree.SplitPath(path)
	if len(names) > 0 && names[0] == settree.RootName {
		names = names[1:]
	}
	t := a.tree()
	return t.Lookup(t.Root(), names...)
}

// withApp runs fn with a loaded app and saves afterwards when fn reports a
// change.
func withApp(cmd *cobra.Command, fn func(a *app) (changed bool, err error)) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	changed, err := fn(a)
	if err != nil {
		return err
	}
	if changed {
		return a.save()
	}
	return nil
}
