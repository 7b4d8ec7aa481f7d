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

// listMarkerInfo describes a parsed list item marker: "-", "*", "+",
// "1.", or "1)".
type listMarkerInfo struct {
	ordered     bool
	bulletChar  byte
	delim       byte // '.' or ')' for ordered lists
	start       int  // starting number, ordered lists only
	leadIndent  int  // 0-3 spaces before the marker
	totalIndent int  // column where the item's content begins
}

// parseListMarker recognizes a list item marker at the start of line
// and computes the column at which the item's content (and therefore
// its continuation-line indentation) begins. "The continuation column"
// is the marker's width plus the run of spaces that follows it
// (capped: 5+ spaces collapses to a single space, and a marker with
// nothing after it on the line counts as one).
func parseListMarker(line string) (listMarkerInfo, bool) {
	var info listMarkerInfo
	i := 0
	for info.leadIndent < 3 && i < len(line) && line[i] == ' ' {
		i++
		info.leadIndent++
	}
	start := i
	switch {
	case i < len(line) && (line[i] == '-' || line[i] == '*' || line[i] == '+'):
		info.bulletChar = line[i]
		i++
	case i < len(line) && isASCIIDigit(line[i]):
		digitsStart := i
		for i < len(line) && isASCIIDigit(line[i]) {
			i++
		}
		if i-digitsStart > 9 || i >= len(line) || (line[i] != '.' && line[i] != ')') {
			return info, false
		}
		n := 0
		for _, d := range line[digitsStart:i] {
			n = n*10 + int(d-'0')
		}
		info.ordered = true
		info.start = n
		info.delim = line[i]
		i++
	default:
		return info, false
	}
	markerWidth := i - start

	spaces := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
		spaces++
	}
	restEmpty := i >= len(line)
	switch {
	case restEmpty:
		info.totalIndent = info.leadIndent + markerWidth + 1
	case spaces == 0:
		return listMarkerInfo{}, false // marker must be followed by whitespace or EOL
	case spaces >= 5:
		info.totalIndent = info.leadIndent + markerWidth + 1
	default:
		info.totalIndent = info.leadIndent + markerWidth + spaces
	}
	return info, true
}

func sameBulletFamily(a, b listMarkerInfo) bool {
	if a.ordered != b.ordered {
		return false
	}
	if a.ordered {
		return a.delim == b.delim
	}
	return a.bulletChar == b.bulletChar
}

type listItemCollector struct {
	lines         []string
	contentIndent int
	startNum      int
}

// listRule consumes a whole list in one pass (see block_quote.go's
// doc comment for why), classifying each subsequent line as: a
// continuation indented to the current item's content column, the
// start of a new item with the same marker family, a lazy paragraph
// continuation, or a blank line that either continues the list or ends
// it. Looseness is decided at close time, from blank lines directly
// between items and from each item's own top-level blank separation,
// never from blanks inside a nested sublist.
var listRule = &BlockRule{
	Name:                  "list",
	Priority:              8,
	CanInterruptParagraph: true,
	TryParse: func(s *BlockState, rules []*BlockRule) bool {
		line, ok := s.PeekLine()
		if !ok {
			return false
		}
		first, ok := parseListMarker(line)
		if !ok {
			return false
		}
		// A bullet "-"/"*" immediately followed by nothing looks
		// identical to the start of a thematic break for "-"; the
		// thematic break rule has higher priority (3 < 8) so it already
		// claimed lines like "---". Reaching here means this is a
		// genuine single-item marker line.

		var items []*listItemCollector
		loose := false
		offset := 0

		startItem := func(info listMarkerInfo, firstLine string) {
			rest := firstLine[min(info.totalIndent, len(firstLine)):]
			it := &listItemCollector{contentIndent: info.totalIndent, startNum: info.start}
			it.lines = append(it.lines, rest)
			items = append(items, it)
		}
		startItem(first, line)

		for {
			l, ok := s.PeekLineAt(offset + 1)
			if !ok {
				break
			}
			cur := items[len(items)-1]

			if isBlankLine(l) {
				next, hasNext := s.PeekLineAt(offset + 2)
				if hasNext && !isBlankLine(next) {
					nextIndent := columnWidth(0, []byte(leadingWhitespace(next)))
					_, nextIsMarker := parseListMarker(next)
					if nextIndent >= cur.contentIndent || (nextIsMarker && nextIndent <= 3) {
						cur.lines = append(cur.lines, "")
						offset++
						continue
					}
				}
				break
			}
			// Indented-to-content lines belong to the current item even
			// when they carry a list marker of their own: that's how a
			// nested sublist reaches the item's recursive parse.
			indentWidth := columnWidth(0, []byte(leadingWhitespace(l)))
			if indentWidth >= cur.contentIndent {
				cur.lines = append(cur.lines, stripIndentUpTo(l, cur.contentIndent))
				offset++
				continue
			}
			if info, isMarker := parseListMarker(l); isMarker && info.leadIndent <= 3 && sameBulletFamily(info, first) {
				// A blank line directly between two items loosens this
				// list; a blank buried inside a nested construct does
				// not (the item's own parse decides that below).
				if len(cur.lines) > 0 && cur.lines[len(cur.lines)-1] == "" {
					loose = true
				}
				offset++
				startItem(info, l)
				continue
			}
			if len(cur.lines) > 0 && cur.lines[len(cur.lines)-1] != "" {
				cur.lines = append(cur.lines, strings.TrimLeft(l, " \t"))
				offset++
				continue
			}
			break
		}
		consumed := offset + 1

		itemTokens := make([]*Token, 0, len(items))
		for _, it := range items {
			child := s.ChildState(strings.Join(it.lines, "\n"))
			child.Process(rules)
			// Blank separation between an item's own direct block
			// children loosens the list; a nested sublist's internal
			// blanks were consumed by its own rule and never reach this
			// level, so that sublist's tightness is its own affair.
			if child.HadBlankSeparation() {
				loose = true
			}
			itemTok := &Token{Type: "list_item", Children: child.Tokens}
			if first.ordered {
				itemTok.SetAttr("number", it.startNum)
			}
			stripTaskMarker(itemTok)
			itemTokens = append(itemTokens, itemTok)
		}
		listTok := &Token{Type: "list", Children: itemTokens}
		listTok.SetAttr("ordered", first.ordered)
		if first.ordered {
			listTok.SetAttr("start", first.start)
		}
		listTok.SetAttr("tight", !loose)
		s.Append(listTok)
		s.Advance(consumed)
		return true
	},
}
