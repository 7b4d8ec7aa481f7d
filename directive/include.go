// Copyright 2026 The Markit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package directive

import (
	"fmt"
	"strings"

	"github.com/gomarkit/markit"
)

// IncludeResolver loads the source text named by relativePath, resolved
// against baseDir. The caller owns what baseDir means (filesystem
// directory, archive root, embed.FS prefix); the directive subsystem
// never touches a filesystem directly.
type IncludeResolver func(relativePath, baseDir string) (string, error)

// Include builds the handler for the "include" directive: its argument
// is the path to resolve via resolver against baseDir, and the resolved
// source is block-parsed against the enclosing state's reference map, so
// an included file's link reference definitions join the including
// document's. The included source is parsed with markit.DefaultBlockRules
// only: plugin block syntax inside it, such as footnote definitions or
// directives (a nested include among them), is not recognized.
func Include(resolver IncludeResolver, baseDir string) Handler {
	return func(env *Envelope, s *markit.BlockState) ([]*markit.Token, error) {
		path := strings.TrimSpace(env.Title)
		if path == "" {
			return nil, &MalformedError{Name: "include", Reason: "missing path argument"}
		}
		src, err := resolver(path, baseDir)
		if err != nil {
			return nil, fmt.Errorf("include %q: %w", path, err)
		}
		child := s.ChildState(src)
		child.Process(markit.DefaultBlockRules())
		return child.Tokens, nil
	}
}
