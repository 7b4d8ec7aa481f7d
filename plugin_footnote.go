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
	"strconv"
	"strings"
)

var footnoteDefStartRE = regexp.MustCompile(`^ {0,3}\[\^([^\]\s]+)\]:[ \t]?(.*)$`)

type footnoteState struct {
	defs  map[string][]string // label -> raw lines, before inline expansion
	order []string            // labels in reference order
	index map[string]int      // label -> 1-based footnote number
}

func footnoteEnv(env map[string]any) *footnoteState {
	fs, _ := env["footnotes"].(*footnoteState)
	if fs == nil {
		fs = &footnoteState{defs: make(map[string][]string), index: make(map[string]int)}
		env["footnotes"] = fs
	}
	return fs
}

// FootnotePlugin implements mistune-style footnotes: a body paragraph
// defines "[^label]: text" (with indented continuation lines), and
// "[^label]" anywhere in running text becomes a superscript backlink to
// a generated list appended at the end of the document.
func FootnotePlugin() *Plugin {
	p := NewPlugin("footnote")
	p.AddBlockRule(&BlockRule{
		Name:                  "footnote_def",
		Priority:              10,
		CanInterruptParagraph: false,
		TryParse: func(s *BlockState, _ []*BlockRule) bool {
			line, ok := s.PeekLine()
			if !ok {
				return false
			}
			m := footnoteDefStartRE.FindStringSubmatch(line)
			if m == nil {
				return false
			}
			label := NormalizeLabel(m[1])
			lines := []string{m[2]}
			consumed := 1
			for {
				next, ok := s.PeekLineAt(consumed)
				if !ok {
					break
				}
				if isBlankLine(next) {
					after, hasAfter := s.PeekLineAt(consumed + 1)
					if !hasAfter || columnWidth(0, []byte(leadingWhitespace(after))) < 4 {
						break
					}
					lines = append(lines, "")
					consumed++
					continue
				}
				if columnWidth(0, []byte(leadingWhitespace(next))) < 4 {
					break
				}
				lines = append(lines, stripIndentUpTo(next, 4))
				consumed++
			}
			fs := footnoteEnv(s.Env)
			if _, exists := fs.defs[label]; !exists {
				fs.defs[label] = lines
			}
			s.Advance(consumed)
			return true
		},
	})
	p.AddInlineRule(&InlineRule{
		Name:     "footnote_ref",
		Priority: 3,
		TryParse: func(s *InlineState, _ []*InlineRule) bool {
			rest := s.Rest()
			if !strings.HasPrefix(rest, "[^") {
				return false
			}
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return false
			}
			label := NormalizeLabel(rest[2:end])
			fs := footnoteEnv(s.Env)
			if _, ok := fs.defs[label]; !ok {
				return false
			}
			if _, seen := fs.index[label]; !seen {
				fs.index[label] = len(fs.order) + 1
				fs.order = append(fs.order, label)
			}
			tok := &Token{Type: "footnote_ref"}
			tok.SetAttr("label", label)
			tok.SetAttr("number", fs.index[label])
			s.Push(tok)
			s.Advance(end + 1)
			return true
		},
	})
	p.AddRenderer("footnote_ref", func(buf *RenderBuffer, tok *Token, render func(*RenderBuffer, *Token)) {
		n := strconv.Itoa(tok.AttrInt("number"))
		buf.tag("sup", [2]string{"id", "fnref-" + n})
		buf.tag("a", [2]string{"href", "#fn-" + n})
		buf.WriteString(n)
		buf.closeTag("a")
		buf.closeTag("sup")
	})
	p.AddRenderer("footnotes", func(buf *RenderBuffer, tok *Token, render func(*RenderBuffer, *Token)) {
		buf.WriteString(`<section class="footnotes"><ol>`)
		for _, item := range tok.Children {
			n := item.AttrString("number")
			buf.tag("li", [2]string{"id", "fn-" + n})
			for _, c := range item.Children {
				render(buf, c)
			}
			buf.tag("a", [2]string{"href", "#fnref-" + n}, [2]string{"class", "footnote-backref"})
			buf.WriteString("↩")
			buf.closeTag("a")
			buf.closeTag("li")
		}
		buf.WriteString("</ol></section>")
	})
	p.PostProcess = func(tokens []*Token, state *BlockState) []*Token {
		fs := footnoteEnv(state.Env)
		if len(fs.order) == 0 {
			return tokens
		}
		items := make([]*Token, 0, len(fs.order))
		for _, label := range fs.order {
			// ChildState shares the document's reference map, so a
			// reference-style link inside a footnote body resolves
			// against definitions made anywhere in the document.
			child := state.ChildState(joinFootnoteLines(fs.defs[label]))
			child.Process(defaultBlockRules())
			expandInlineLeaves(child.Tokens, child.Refs, child.Env, defaultInlineRules())
			item := &Token{Type: "footnote_item", Children: child.Tokens}
			item.SetAttr("number", strconv.Itoa(fs.index[label]))
			items = append(items, item)
		}
		return append(tokens, &Token{Type: "footnotes", Children: items})
	}
	return p
}

func joinFootnoteLines(lines []string) string {
	return strings.Join(lines, "\n")
}
