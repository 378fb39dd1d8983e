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

// Command settree manages a hierarchy of named string sets stored in a
// single state file.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/contriboss/settree"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var le *settree.LoadError
		if errors.As(err, &le) {
			fmt.Fprintln(os.Stderr, "the state file was left untouched; a copy of the rejected data was saved for inspection")
		}
		os.Exit(1)
	}
}
