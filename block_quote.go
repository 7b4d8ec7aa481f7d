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
	"regexp"
	"strings"
)

var blockQuoteMarkerRE = regexp.MustCompile(`^ {0,3}>[ \t]?`)

// blockQuoteRule recognizes "> " prefixed lines, including lazy
// continuation: a non-blank line without a ">" prefix is accepted as
// continuation of the quote's last paragraph.
//
// Rather than CommonMark's incremental per-line, multiple-open-
// containers algorithm, markit consumes a block quote's full extent in
// one pass (recursive descent over the stripped sub-source), the same
// strategy mistune itself uses: it gives up exact parity on some
// deeply pathological nested-container edge cases in exchange for an
// implementation an order of magnitude
// simpler to read and maintain.
var blockQuoteRule = &BlockRule{
	Name:                  "block_quote",
	Priority:              7,
	CanInterruptParagraph: true,
	TryParse: func(s *BlockState, rules []*BlockRule) bool {
		line, ok := s.PeekLine()
		if !ok {
			return false
		}
		if !blockQuoteMarkerRE.MatchString(line) {
			return false
		}

		var childLines []string
		consumed := 0
		for {
			l, ok := s.PeekLineAt(consumed)
			if !ok {
				break
			}
			if loc := blockQuoteMarkerRE.FindStringIndex(l); loc != nil {
				childLines = append(childLines, l[loc[1]:])
				consumed++
				continue
			}
			if isBlankLine(l) {
				if next, ok := s.PeekLineAt(consumed + 1); ok && blockQuoteMarkerRE.MatchString(next) {
					childLines = append(childLines, "")
					consumed++
					continue
				}
				break
			}
			if len(childLines) > 0 && childLines[len(childLines)-1] != "" {
				// Lazy continuation of the quote's trailing paragraph.
				childLines = append(childLines, l)
				consumed++
				continue
			}
			break
		}

		child := s.ChildState(strings.Join(childLines, "\n"))
		child.Process(rules)
		tok := &Token{Type: "block_quote", Children: child.Tokens}
		s.Append(tok)
		s.Advance(consumed)
		return true
	},
}
