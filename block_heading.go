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

var atxHeadingRE = regexp.MustCompile(`^ {0,3}(#{1,6})(?:[ \t]+(.*?))?[ \t]*$`)
var atxTrailingHashesRE = regexp.MustCompile(`[ \t]+#+[ \t]*$`)

// atxHeadingRule recognizes "# Heading" style ATX headings, levels 1-6.
var atxHeadingRule = &BlockRule{
	Name:                  "atx_heading",
	Priority:              1,
	CanInterruptParagraph: true,
	TryParse: func(s *BlockState, _ []*BlockRule) bool {
		line, ok := s.PeekLine()
		if !ok {
			return false
		}
		groups, matched := atxMatch(line)
		if !matched {
			return false
		}
		level := len(groups[1])
		text := groups[2]
		text = atxTrailingHashesRE.ReplaceAllString(text, "")
		text = strings.TrimSpace(text)
		tok := &Token{Type: "heading", Text: text}
		tok.SetAttr("level", level)
		s.Append(tok)
		s.Advance(1)
		return true
	},
}

func atxMatch(line string) ([]string, bool) {
	_, groups, ok := matchAt(atxHeadingRE, line)
	if !ok {
		return nil, false
	}
	// A line of only "#"s with no following space, e.g. "#hashtag", is
	// not a heading; the regex's [ \t]+ before the content group already
	// enforces that content requires a separating space, but a bare
	// "####" line (group 2 empty, no trailing content) is still valid.
	return groups, true
}

var setextUnderlineRE = regexp.MustCompile(`^ {0,3}(=+|-+)[ \t]*$`)

// setextHeadingRule matches a paragraph followed immediately by a line
// of "=" (level 1) or "-" (level 2), promoting the paragraph to a
// heading.
var setextHeadingRule = &BlockRule{
	Name:                  "setext_heading",
	Priority:              2,
	CanInterruptParagraph: true,
	TryParse: func(s *BlockState, _ []*BlockRule) bool {
		if !s.ParagraphOpen() {
			return false
		}
		line, ok := s.PeekLine()
		if !ok {
			return false
		}
		_, groups, ok := matchAt(setextUnderlineRE, line)
		if !ok {
			return false
		}
		last := s.LastToken()
		if last == nil || last.Type != "paragraph" || !last.IsLeaf() {
			return false
		}
		level := 2
		if groups[1][0] == '=' {
			level = 1
		}
		last.Type = "heading"
		last.SetAttr("level", level)
		s.Advance(1)
		return true
	},
}
