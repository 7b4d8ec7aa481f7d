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
	"sort"
	"unicode/utf8"
)

// InlineRule is a pluggable matcher for one inline-level construct.
// TryParse attempts to consume input at the InlineState's current
// position; on success it must have advanced the position and pushed
// at least one token, and return true. Rules run in ascending Priority
// order; the first to match at a position wins.
type InlineRule struct {
	Name     string
	Priority int
	TryParse func(s *InlineState, rules []*InlineRule) bool
}

// defaultInlineRules is the built-in priority ordering: escape, code
// span, raw HTML, autolink, link/image open-close, emphasis delimiter,
// linebreak, with plain text as the driver's fallback.
func defaultInlineRules() []*InlineRule {
	return []*InlineRule{
		escapeRule,
		codeSpanRule,
		rawHTMLRule,
		autolinkRule,
		linkImageRule,
		delimiterRule,
		linebreakRule,
	}
}

// DefaultInlineRules returns the built-in inline rule set, for plugins
// that need to expand inline content outside the normal leaf-expansion
// pass (e.g. a directive handler rendering a title attribute).
func DefaultInlineRules() []*InlineRule {
	return defaultInlineRules()
}

func sortInlineRules(rules []*InlineRule) []*InlineRule {
	out := append([]*InlineRule(nil), rules...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}

// ExpandInline runs the inline phase over text: it scans with the
// rule-priority list, falling back to single-rune plain text when
// nothing matches, then turns bracket markers that never formed a link
// or image back into literal text and resolves emphasis delimiter runs.
func ExpandInline(text string, parent *Token, refs *ReferenceMap, env map[string]any, rules []*InlineRule) []*Token {
	s := NewInlineState(text, parent, refs, env)
	sorted := sortInlineRules(rules)
	for !s.AtEnd() {
		matched := false
		for _, r := range sorted {
			before := s.pos
			if r.TryParse(s, rules) {
				if s.pos == before {
					continue
				}
				matched = true
				break
			}
		}
		if !matched {
			r, size := utf8.DecodeRuneInString(s.Rest())
			if r == utf8.RuneError && size <= 1 {
				size = 1
			}
			s.PushText(s.Rest()[:size])
			s.Advance(size)
		}
	}
	for _, t := range s.Tokens {
		if t.Type == "bracket_open" {
			lit := "["
			if t.AttrBool("image") {
				lit = "!["
			}
			t.Type, t.Text, t.Attrs = "text", lit, nil
		}
	}
	resolveDelimiters(s)
	return s.Tokens
}
