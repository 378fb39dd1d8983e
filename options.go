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

import "log/slog"

// TreeOptions configures a Tree.
//
// Options control:
//   - Which filesystem view directory sets read from
//   - How unexpected removals and unavailable directories are recovered
//   - Debug logging of resolution, sweeps and removal cascades
type TreeOptions struct {
	// Lister backs directory sets.
	// Default: OSLister{}
	Lister DirLister

	// Recovery decides how to handle problems found during resolution and
	// rescans.
	// Default: abort on unexpected removals, continue on unavailable
	// directories.
	Recovery RecoveryHandler

	// Logger enables debug logging of tree operations.
	// When nil, no logging is performed.
	Logger *slog.Logger
}

// TreeOption is a functional option for configuring a tree.
type TreeOption func(*TreeOptions)

// defaultTreeOptions returns the default tree configuration.
func defaultTreeOptions() TreeOptions {
	return TreeOptions{
		Lister: OSLister{},
		Recovery: StaticRecovery{
			OnRemoval:     RecoverAbort,
			OnUnavailable: RecoverContinue,
		},
	}
}

// WithLister sets the filesystem view used by directory sets.
//
// Example:
//
//	lister := &MemoryLister{}
//	lister.AddDirectory("/photos", "a.jpg", "b.jpg")
//	tree := New(WithLister(lister))
func WithLister(lister DirLister) TreeOption {
	return func(opts *TreeOptions) {
		if lister != nil {
			opts.Lister = lister
		}
	}
}

// WithRecovery sets the handler consulted for unexpected removals and
// unavailable directories.
func WithRecovery(handler RecoveryHandler) TreeOption {
	return func(opts *TreeOptions) {
		if handler != nil {
			opts.Recovery = handler
		}
	}
}

// WithLogger sets a structured logger for tree diagnostics.
//
// Example:
//
//	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
//	tree := New(WithLogger(logger))
func WithLogger(logger *slog.Logger) TreeOption {
	return func(opts *TreeOptions) {
		opts.Logger = logger
	}
}

func buildTreeOptions(opts []TreeOption) TreeOptions {
	options := defaultTreeOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return options
}
