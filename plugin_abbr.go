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

var abbrDefRE = regexp.MustCompile(`^\*\[([^\]]+)\]:\s*(.+)$`)

// AbbrPlugin implements PHP Markdown Extra's abbreviation syntax:
// "*[HTML]: HyperText Markup Language" registers an abbreviation, and
// every occurrence of the exact word "HTML" in running text is
// wrapped in an <abbr title="..."> element. Definitions are collected
// during the block phase, so they apply regardless of where in the
// document they appear relative to their uses.
func AbbrPlugin() *Plugin {
	p := NewPlugin("abbr")
	p.AddBlockRule(&BlockRule{
		Name:                  "abbr_def",
		Priority:              10,
		CanInterruptParagraph: false,
		TryParse: func(s *BlockState, _ []*BlockRule) bool {
			line, ok := s.PeekLine()
			if !ok {
				return false
			}
			m := abbrDefRE.FindStringSubmatch(line)
			if m == nil {
				return false
			}
			abbrs, _ := s.Env["abbreviations"].(map[string]string)
			if abbrs == nil {
				abbrs = make(map[string]string)
				s.Env["abbreviations"] = abbrs
			}
			abbrs[m[1]] = m[2]
			s.Advance(1)
			return true
		},
	})
	p.AddInlineRule(&InlineRule{
		Name:     "abbr",
		Priority: 6,
		TryParse: func(s *InlineState, _ []*InlineRule) bool {
			abbrs, _ := s.Env["abbreviations"].(map[string]string)
			if len(abbrs) == 0 {
				return false
			}
			rest := s.Rest()
			if s.Pos() > 0 && isWordByte(s.Src[s.Pos()-1]) {
				return false
			}
			for term, title := range abbrs {
				if !strings.HasPrefix(rest, term) {
					continue
				}
				if len(rest) > len(term) && isWordByte(rest[len(term)]) {
					continue
				}
				tok := &Token{Type: "abbr", Text: term}
				tok.SetAttr("title", title)
				s.Push(tok)
				s.Advance(len(term))
				return true
			}
			return false
		},
	})
	p.AddRenderer("abbr", func(buf *RenderBuffer, tok *Token, render func(*RenderBuffer, *Token)) {
		buf.tag("abbr", [2]string{"title", tok.AttrString("title")})
		buf.WriteString(tok.Text)
		buf.closeTag("abbr")
	})
	return p
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
