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

import (
	"strconv"

	"github.com/gomarkit/markit"
)

// TableOfContents handles the "toc" directive: it emits a placeholder
// token immediately, since headings elsewhere in the document (both
// before and after this point) aren't known yet during the block
// phase. resolveTOC, wired as the plugin's PostProcess, replaces the
// placeholder once the whole document's headings are known.
func TableOfContents(env *Envelope, s *markit.BlockState) ([]*markit.Token, error) {
	maxLevel := 6
	if raw, ok := env.Options["max-level"]; ok {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 6 {
			return nil, &MalformedError{Name: "toc", Reason: "max-level must be an integer between 1 and 6"}
		}
		maxLevel = n
	}
	tok := markit.NewToken("toc_placeholder")
	tok.SetAttr("maxLevel", maxLevel)
	tok.SetAttr("title", env.Title)
	return []*markit.Token{tok}, nil
}

// headingRef is one entry collected while walking the document for
// headings to build a table of contents from.
type headingRef struct {
	level int
	id    string
	text  string
}

// collectHeadings walks tokens depth-first collecting every heading's
// level, slug id, and plain text, in document order.
func collectHeadings(tokens []*markit.Token, out *[]headingRef) {
	for _, tok := range tokens {
		if tok.Type == "heading" {
			*out = append(*out, headingRef{
				level: tok.AttrInt("level"),
				id:    tok.AttrString("id"),
				text:  plainText(tok.Children),
			})
		}
		if len(tok.Children) > 0 {
			collectHeadings(tok.Children, out)
		}
	}
}

func plainText(toks []*markit.Token) string {
	var s string
	for _, t := range toks {
		if t.Type == "text" {
			s += t.Text
		} else if len(t.Children) > 0 {
			s += plainText(t.Children)
		}
	}
	return s
}

// resolveTOC replaces every toc_placeholder token anywhere in tokens
// with a nested list of the document's headings (up to that
// placeholder's max-level), built once the full heading set is known.
func resolveTOC(tokens []*markit.Token, _ *markit.BlockState) []*markit.Token {
	var headings []headingRef
	collectHeadings(tokens, &headings)
	return replacePlaceholders(tokens, headings)
}

func replacePlaceholders(tokens []*markit.Token, headings []headingRef) []*markit.Token {
	out := make([]*markit.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Type == "toc_placeholder" {
			out = append(out, buildTOC(tok, headings))
			continue
		}
		if len(tok.Children) > 0 {
			tok.Children = replacePlaceholders(tok.Children, headings)
		}
		out = append(out, tok)
	}
	return out
}

// buildTOC turns the collected headings into a nested "list" token
// wrapped in a "toc" container, honoring placeholder's maxLevel.
func buildTOC(placeholder *markit.Token, headings []headingRef) *markit.Token {
	maxLevel := placeholder.AttrInt("maxLevel")
	if maxLevel == 0 {
		maxLevel = 6
	}
	var filtered []headingRef
	for _, h := range headings {
		if h.level <= maxLevel {
			filtered = append(filtered, h)
		}
	}

	wrap := markit.NewContainer("toc")
	wrap.SetAttr("title", placeholder.AttrString("title"))
	if len(filtered) == 0 {
		// A TOC directive with no heading in scope yet (e.g. placed above
		// every heading) still renders an empty list rather than nothing.
		wrap.Children = append(wrap.Children, markit.NewContainer("list"))
		return wrap
	}
	list, _ := buildTOCList(filtered, 0, filtered[0].level)
	wrap.Children = append(wrap.Children, list)
	return wrap
}

// buildTOCList consumes headings starting at index i whose level is
// baseLevel, nesting any deeper heading into the previous item's own
// sub-list, and returns the constructed list token alongside the index
// of the first heading it did not consume.
func buildTOCList(headings []headingRef, i, baseLevel int) (*markit.Token, int) {
	list := markit.NewContainer("list")
	list.SetAttr("ordered", false)
	list.SetAttr("tight", true)
	for i < len(headings) {
		h := headings[i]
		if h.level < baseLevel {
			break
		}
		if h.level > baseLevel {
			sub, next := buildTOCList(headings, i, h.level)
			if len(list.Children) > 0 {
				list.Children[len(list.Children)-1].Children = append(list.Children[len(list.Children)-1].Children, sub)
			}
			i = next
			continue
		}
		link := markit.NewContainer("link", &markit.Token{Type: "text", Text: h.text})
		link.SetAttr("href", "#"+h.id)
		item := markit.NewContainer("list_item", link)
		item.SetAttr("tight", true)
		list.Children = append(list.Children, item)
		i++
	}
	return list, i
}
