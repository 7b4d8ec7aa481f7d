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

var fencedOpenRE = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})[ \t]*(.*?)[ \t]*$")

// fencedCodeRule recognizes fenced code blocks. The opening fence is
// >= 3 backticks or tildes; the closing fence must use the same
// character and be at least as long. The info string is stored
// verbatim.
var fencedCodeRule = &BlockRule{
	Name:                  "fenced_code",
	Priority:              0,
	CanInterruptParagraph: true,
	TryParse: func(s *BlockState, _ []*BlockRule) bool {
		line, ok := s.PeekLine()
		if !ok {
			return false
		}
		indent := indentLength(line)
		if indent > 3 {
			return false
		}
		_, groups, matched := matchAt(fencedOpenRE, line)
		if !matched {
			return false
		}
		fenceChar := groups[1][0]
		fenceLen := len(groups[1])
		info := groups[2]
		if fenceChar == '`' && strings.Contains(info, "`") {
			// A backtick-fenced info string cannot itself contain a backtick.
			return false
		}

		var body []string
		closeRE := regexp.MustCompile(`^ {0,3}` + string(fenceChar) + `{` + strconv.Itoa(fenceLen) + `,}[ \t]*$`)
		consumed := 1
		for i := s.cursor + 1; i < len(s.lines); i++ {
			l := s.lines[i]
			if _, _, ok := matchAt(closeRE, l); ok {
				consumed = i - s.cursor + 1
				goto done
			}
			body = append(body, stripIndentUpTo(l, indent))
		}
		consumed = len(s.lines) - s.cursor
	done:
		tok := &Token{Type: "block_code", Raw: strings.Join(body, "\n")}
		tok.SetAttr("info", info)
		tok.SetAttr("fenced", true)
		s.Append(tok)
		s.Advance(consumed)
		return true
	},
}

// stripIndentUpTo removes up to n columns of leading whitespace from
// line, matching the opening fence's indentation.
func stripIndentUpTo(line string, n int) string {
	i := 0
	col := 0
	for i < len(line) && col < n {
		switch line[i] {
		case ' ':
			col++
		case '\t':
			col += tabStopSize - col%tabStopSize
		default:
			return line[i:]
		}
		i++
	}
	return line[i:]
}

// indentedCodeRule recognizes that four-or-more space indented lines
// form a code block. Cannot interrupt a paragraph.
var indentedCodeRule = &BlockRule{
	Name:                  "indented_code",
	Priority:              4,
	CanInterruptParagraph: false,
	TryParse: func(s *BlockState, _ []*BlockRule) bool {
		line, ok := s.PeekLine()
		if !ok || isBlankLine(line) {
			return false
		}
		if columnWidth(0, []byte(leadingWhitespace(line))) < 4 {
			return false
		}
		var body []string
		consumed := 0
		trailingBlanks := 0
		for i := s.cursor; i < len(s.lines); i++ {
			l := s.lines[i]
			if isBlankLine(l) {
				body = append(body, "")
				trailingBlanks++
				consumed++
				continue
			}
			if columnWidth(0, []byte(leadingWhitespace(l))) < 4 {
				break
			}
			body = append(body, stripIndentColumns(l, 4))
			consumed++
			trailingBlanks = 0
		}
		body = body[:len(body)-trailingBlanks]
		consumed -= trailingBlanks
		tok := &Token{Type: "block_code", Raw: strings.Join(body, "\n")}
		tok.SetAttr("fenced", false)
		s.Append(tok)
		s.Advance(consumed)
		return true
	},
}

func leadingWhitespace(line string) string {
	i := indentLength(line)
	return line[:i]
}

func stripIndentColumns(line string, n int) string {
	return stripIndentUpTo(line, n)
}
