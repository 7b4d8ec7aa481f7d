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

// DefinitionListPlugin implements the PHP Markdown Extra / mistune
// definition-list syntax: a single term line followed by one or more
// ": definition" lines (optionally indented up to 3 spaces) becomes a
// <dl> with one <dt> and a <dd> per definition. A term spread over
// several lines is not recognized.
func DefinitionListPlugin() *Plugin {
	p := NewPlugin("deflist")
	p.AddBlockRule(&BlockRule{
		Name:                  "definition_list",
		Priority:              10,
		CanInterruptParagraph: false,
		TryParse: func(s *BlockState, rules []*BlockRule) bool {
			defLine, ok := s.PeekLineAt(1)
			if !ok || !isDefMarkerLine(defLine) {
				return false
			}
			term, ok := s.PeekLine()
			if !ok || strings.TrimSpace(term) == "" || isDefMarkerLine(term) {
				return false
			}

			var children []*Token
			children = append(children, &Token{Type: "dt", Text: strings.TrimSpace(term)})
			consumed := 1
			for {
				l, ok := s.PeekLineAt(consumed)
				if !ok || !isDefMarkerLine(l) {
					break
				}
				body := strings.TrimSpace(strings.TrimPrefix(strings.TrimLeft(l, " "), ":"))
				consumed++
				for {
					cont, ok := s.PeekLineAt(consumed)
					if !ok || isBlankLine(cont) || isDefMarkerLine(cont) || columnWidth(0, []byte(leadingWhitespace(cont))) < 4 {
						break
					}
					body += "\n" + strings.TrimLeft(cont, " \t")
					consumed++
				}
				children = append(children, &Token{Type: "dd", Text: body})
			}
			tok := &Token{Type: "definition_list", Children: children}
			s.Append(tok)
			s.Advance(consumed)
			return true
		},
	})
	p.AddRenderer("definition_list", func(buf *RenderBuffer, tok *Token, render func(*RenderBuffer, *Token)) {
		buf.WriteString("<dl>")
		for _, c := range tok.Children {
			render(buf, c)
		}
		buf.WriteString("</dl>")
	})
	p.AddRenderer("dt", renderWrap("dt"))
	p.AddRenderer("dd", renderWrap("dd"))
	return p
}

func isDefMarkerLine(line string) bool {
	trimmed := strings.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return false
	}
	return strings.HasPrefix(trimmed, ": ") || trimmed == ":"
}
