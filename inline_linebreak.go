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

import "strings"

// linebreakRule turns an embedded newline into a line break token: a
// hard break if preceded by two or more trailing spaces (or, with the
// HardWrap option, any newline at all), otherwise a soft break.
var linebreakRule = &InlineRule{
	Name:     "linebreak",
	Priority: 6,
	TryParse: func(s *InlineState, _ []*InlineRule) bool {
		rest := s.Rest()
		if len(rest) == 0 || rest[0] != '\n' {
			return false
		}
		hard := false
		if n, ok := s.Env["hardWrap"].(bool); ok && n {
			hard = true
		}
		if prev, ok := trailingTextToken(s); ok {
			trimmed := strings.TrimRight(prev.Text, " ")
			if spaces := len(prev.Text) - len(trimmed); spaces >= 2 {
				prev.Text = trimmed
				hard = true
			}
		}
		tok := &Token{Type: "linebreak"}
		tok.SetAttr("hard", hard)
		s.Push(tok)
		s.Advance(1)
		// A soft/hard break absorbs leading spaces on the next line.
		for len(s.Rest()) > 0 && s.Rest()[0] == ' ' {
			s.Advance(1)
		}
		return true
	},
}

func trailingTextToken(s *InlineState) (*Token, bool) {
	if n := len(s.Tokens); n > 0 && s.Tokens[n-1].Type == "text" {
		return s.Tokens[n-1], true
	}
	return nil, false
}
