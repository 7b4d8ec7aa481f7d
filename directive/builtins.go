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

import "errors"

var errNoResolver = errors.New("include: no resolver configured")

// RegisterBuiltins registers the three built-in directives (every
// admonition kind, "toc", and "include") against reg. Callers that
// don't need file inclusion can pass a nil resolver; the include
// directive will then always report IncludeResolutionFailed.
func RegisterBuiltins(reg *Registry, resolver IncludeResolver, baseDir string) *Registry {
	RegisterAdmonitions(reg)
	reg.Register("toc", TableOfContents)
	if resolver == nil {
		resolver = func(relativePath, _ string) (string, error) {
			return "", errNoResolver
		}
	}
	reg.Register("include", Include(resolver, baseDir))
	return reg
}
