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

// codeSpanRule recognizes that a run of N backticks opens a code span,
// closed by the next run of exactly N backticks. If no matching closer
// exists, the backticks are literal text (handled by returning false
// and letting the fallback rule push them one at a time).
var codeSpanRule = &InlineRule{
	Name:     "code_span",
	Priority: 1,
	TryParse: func(s *InlineState, _ []*InlineRule) bool {
		rest := s.Rest()
		if len(rest) == 0 || rest[0] != '`' {
			return false
		}
		n := 0
		for n < len(rest) && rest[n] == '`' {
			n++
		}
		opener := rest[:n]
		body := rest[n:]

		idx := 0
		for {
			close := strings.Index(body[idx:], opener)
			if close < 0 {
				return false
			}
			close += idx
			end := close + n
			// The closing run must not be part of a longer run of backticks.
			if end < len(body) && body[end] == '`' {
				j := end
				for j < len(body) && body[j] == '`' {
					j++
				}
				idx = j
				continue
			}
			content := normalizeCodeSpanContent(body[:close])
			s.Push(&Token{Type: "code_span", Text: content})
			s.Advance(n + close + n)
			return true
		}
	},
}

// normalizeCodeSpanContent applies CommonMark's code span normalization:
// line endings become spaces, and if the content both starts and ends
// with a space (and isn't all spaces), one space is stripped from each end.
func normalizeCodeSpanContent(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) >= 2 && strings.HasPrefix(s, " ") && strings.HasSuffix(s, " ") && strings.TrimSpace(s) != "" {
		s = s[1 : len(s)-1]
	}
	return s
}
