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
	"gitlab.com/golang-commonmark/linkify"
	"gitlab.com/golang-commonmark/mdurl"
)

// linkifyRule turns a bare "http://...", "https://...", or email
// address into a link token, when WithLinkify is enabled. It only fires
// at the very start of a run a match covers, so normal text before the
// match is left for the plain-text fallback to collect.
var linkifyRule = &InlineRule{
	Name:     "linkify",
	Priority: 7,
	TryParse: func(s *InlineState, _ []*InlineRule) bool {
		rest := s.Rest()
		if len(rest) == 0 {
			return false
		}
		matches := linkify.Links(rest)
		if len(matches) == 0 || matches[0].Start != 0 {
			return false
		}
		m := matches[0]
		text := rest[m.Start:m.End]
		href := text
		if m.Scheme == "mailto:" && !hasScheme(text) {
			href = "mailto:" + text
		} else if m.Scheme == "" {
			href = "http://" + text
		}
		link := &Token{Type: "link", Children: []*Token{{Type: "text", Text: text}}}
		link.SetAttr("href", mdurl.Encode(href))
		s.Push(link)
		s.Advance(m.End - m.Start)
		return true
	},
}

func hasScheme(s string) bool {
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == ':':
			return i > 0
		case s[i] >= 'a' && s[i] <= 'z', s[i] >= 'A' && s[i] <= 'Z', s[i] >= '0' && s[i] <= '9', s[i] == '+', s[i] == '-', s[i] == '.':
			continue
		default:
			return false
		}
	}
	return false
}
