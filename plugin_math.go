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
	"strings"
)

// MathPlugin implements the mistune "math" extension: "$$...$$" as a
// display-math block (on its own paragraph) and "$...$" inline, with no
// interpretation of the enclosed TeX beyond passing it through for a
// client-side renderer (KaTeX, MathJax) to pick up.
func MathPlugin() *Plugin {
	p := NewPlugin("math")
	p.AddBlockRule(&BlockRule{
		Name:                  "block_math",
		Priority:              10,
		CanInterruptParagraph: false,
		TryParse: func(s *BlockState, _ []*BlockRule) bool {
			line, ok := s.PeekLine()
			if !ok {
				return false
			}
			trimmed := strings.TrimSpace(line)
			if !strings.HasPrefix(trimmed, "$$") {
				return false
			}
			rest := trimmed[2:]
			if strings.HasSuffix(rest, "$$") && len(rest) > 2 {
				tok := &Token{Type: "math", Text: strings.TrimSpace(rest[:len(rest)-2])}
				tok.SetAttr("display", true)
				s.Append(tok)
				s.Advance(1)
				return true
			}
			var body []string
			if rest != "" {
				body = append(body, rest)
			}
			for i := 1; ; i++ {
				l, ok := s.PeekLineAt(i)
				if !ok {
					return false
				}
				t := strings.TrimSpace(l)
				if t == "$$" {
					tok := &Token{Type: "math", Text: strings.Join(body, "\n")}
					tok.SetAttr("display", true)
					s.Append(tok)
					s.Advance(i + 1)
					return true
				}
				body = append(body, l)
			}
		},
	})
	p.AddInlineRule(&InlineRule{
		Name:     "math",
		Priority: 1,
		TryParse: func(s *InlineState, _ []*InlineRule) bool {
			rest := s.Rest()
			if len(rest) == 0 || rest[0] != '$' {
				return false
			}
			display := strings.HasPrefix(rest, "$$")
			delim := "$"
			if display {
				delim = "$$"
			}
			body := rest[len(delim):]
			end := strings.Index(body, delim)
			if end < 0 || end == 0 {
				return false
			}
			tok := &Token{Type: "math", Text: body[:end]}
			tok.SetAttr("display", display)
			s.Push(tok)
			s.Advance(len(delim) + end + len(delim))
			return true
		},
	})
	p.AddRenderer("math", func(buf *RenderBuffer, tok *Token, render func(*RenderBuffer, *Token)) {
		if tok.AttrBool("display") {
			buf.WriteString(`<div class="math display">\[`)
			buf.WriteString(html.EscapeString(tok.Text))
			buf.WriteString(`\]</div>`)
			return
		}
		buf.WriteString(`<span class="math inline">\(`)
		buf.WriteString(html.EscapeString(tok.Text))
		buf.WriteString(`\)</span>`)
	})
	return p
}
