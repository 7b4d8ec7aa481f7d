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

package markit

import (
	"html"
	"regexp"
	"strings"
)

var entityRE = regexp.MustCompile(`^&(?:#[0-9]{1,7};|#[xX][0-9a-fA-F]{1,6};|[A-Za-z][A-Za-z0-9]*;)`)

// escapeRule handles backslash escapes of ASCII punctuation, and HTML
// entity references/numeric character references, both expanded into
// literal text tokens.
var escapeRule = &InlineRule{
	Name:     "escape",
	Priority: 0,
	TryParse: func(s *InlineState, _ []*InlineRule) bool {
		rest := s.Rest()
		if len(rest) == 0 {
			return false
		}
		switch rest[0] {
		case '\\':
			if len(rest) >= 2 && strings.IndexByte(backslashEscapable, rest[1]) >= 0 {
				s.PushText(rest[1:2])
				s.Advance(2)
				return true
			}
			if strings.HasPrefix(rest, "\\\n") {
				s.Push(&Token{Type: "linebreak", Attrs: map[string]any{"hard": true}})
				s.Advance(2)
				return true
			}
			return false
		case '&':
			if m := entityRE.FindString(rest); m != "" {
				s.PushText(html.UnescapeString(m))
				s.Advance(len(m))
				return true
			}
			return false
		default:
			return false
		}
	},
}
