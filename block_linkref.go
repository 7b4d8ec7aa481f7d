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

var (
	linkDefLabelRE = regexp.MustCompile(`^ {0,3}\[([^\]]+)\]:[ \t]*`)
	linkDefDestRE  = regexp.MustCompile(`^(<[^<>\n]*>|[^ \t\n]+)`)
	linkDefTitleRE = regexp.MustCompile(`^[ \t]*(?:\n[ \t]*)?("(?:[^"\\]|\\.)*"|'(?:[^'\\]|\\.)*'|\((?:[^()\\]|\\.)*\))[ \t]*$`)
)

// linkRefDefRule matches link reference definitions; they are eaten
// from the stream (no token emitted) and folded into the shared
// reference map. They cannot interrupt a paragraph.
var linkRefDefRule = &BlockRule{
	Name:                  "link_reference_definition",
	Priority:              6,
	CanInterruptParagraph: false,
	TryParse: func(s *BlockState, _ []*BlockRule) bool {
		line, ok := s.PeekLine()
		if !ok {
			return false
		}
		m := linkDefLabelRE.FindStringSubmatch(line)
		if m == nil {
			return false
		}
		label := strings.TrimSpace(m[1])
		if label == "" {
			return false
		}
		rest := line[len(m[0]):]

		// The destination and optional title may continue onto up to
		// three following lines; try progressively more lines to find a
		// combination that parses, then commit to the first length that
		// works.
		maxLookahead := 3
		for extra := 0; extra <= maxLookahead; extra++ {
			candidate := rest
			consumed := 1
			for j := 0; j < extra; j++ {
				next, ok := s.PeekLineAt(consumed)
				if !ok {
					break
				}
				candidate += "\n" + next
				consumed++
			}
			if dest, title, tail, ok := parseLinkDefRemainder(candidate); ok && strings.TrimSpace(tail) == "" {
				s.AddDefinition(label, dest, title)
				s.Advance(consumed)
				return true
			}
		}
		return false
	},
}

// parseLinkDefRemainder parses "<dest> \"title\"" (or bare dest, or
// dest plus a parenthesized/single-quoted title) from s, returning the
// unconsumed tail.
func parseLinkDefRemainder(s string) (dest, title, tail string, ok bool) {
	s = strings.TrimLeft(s, " \t\n")
	m := linkDefDestRE.FindStringSubmatch(s)
	if m == nil {
		return "", "", "", false
	}
	dest = m[0]
	rest := s[len(m[0]):]
	if strings.HasPrefix(dest, "<") && strings.HasSuffix(dest, ">") {
		dest = dest[1 : len(dest)-1]
	}
	dest = unescape(dest)

	trimmedRest := strings.TrimLeft(rest, " \t")
	if trimmedRest == "" || trimmedRest[0] == '\n' {
		return dest, "", rest, true
	}
	if tm := linkDefTitleRE.FindStringSubmatch(strings.TrimRight(rest, " \t\n")); tm != nil {
		raw := tm[1]
		title = unescape(raw[1 : len(raw)-1])
		return dest, title, "", true
	}
	// No valid title on this line: only acceptable if the rest is blank.
	if strings.TrimSpace(rest) == "" {
		return dest, "", rest, true
	}
	return "", "", "", false
}
