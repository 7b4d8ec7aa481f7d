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

import "regexp"

var (
	rawOpenTagRE    = regexp.MustCompile(`^<[A-Za-z][A-Za-z0-9-]*(?:\s+[a-zA-Z_:][a-zA-Z0-9_.:-]*(?:\s*=\s*(?:[^\s"'=<>` + "`" + `]+|'[^']*'|"[^"]*"))?)*\s*/?>`)
	rawCloseTagRE   = regexp.MustCompile(`^</[A-Za-z][A-Za-z0-9-]*\s*>`)
	rawCommentRE    = regexp.MustCompile(`^<!--([^-]|-[^-])*-->`)
	rawProcInstrRE  = regexp.MustCompile(`^<\?.*?\?>`)
	rawDeclRE       = regexp.MustCompile(`^<![A-Za-z]+\s+[^>]*>`)
	rawCDataRE      = regexp.MustCompile(`^<!\[CDATA\[.*?\]\]>`)
)

// rawHTMLRule recognizes a single inline HTML tag, comment, processing
// instruction, declaration, or CDATA section and passes it through
// verbatim as an "inline_html" token.
var rawHTMLRule = &InlineRule{
	Name:     "raw_html",
	Priority: 2,
	TryParse: func(s *InlineState, _ []*InlineRule) bool {
		rest := s.Rest()
		if len(rest) == 0 || rest[0] != '<' {
			return false
		}
		for _, re := range []*regexp.Regexp{rawCommentRE, rawCDataRE, rawDeclRE, rawProcInstrRE, rawCloseTagRE, rawOpenTagRE} {
			if m := re.FindString(rest); m != "" {
				s.Push(&Token{Type: "inline_html", Raw: m})
				s.Advance(len(m))
				return true
			}
		}
		return false
	},
}
