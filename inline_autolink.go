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

	"gitlab.com/golang-commonmark/mdurl"
	"gitlab.com/golang-commonmark/puny"
)

var (
	uriAutolinkRE   = regexp.MustCompile(`^<[A-Za-z][A-Za-z0-9+.-]{1,31}:[^<>\x00-\x20]*>`)
	emailAutolinkRE = regexp.MustCompile(`^<[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*>`)
)

// autolinkRule recognizes "<scheme:...>" and "<user@host>" autolinks and
// wraps each as a "link" token with a single text child, the href built
// from the literal content. The host portion of an email autolink is
// punycode-normalized for non-ASCII domains via puny.ToASCII, matching
// how a browser would resolve it.
var autolinkRule = &InlineRule{
	Name:     "autolink",
	Priority: 3,
	TryParse: func(s *InlineState, _ []*InlineRule) bool {
		rest := s.Rest()
		if len(rest) == 0 || rest[0] != '<' {
			return false
		}
		if m := uriAutolinkRE.FindString(rest); m != "" {
			dest := m[1 : len(m)-1]
			link := &Token{Type: "link", Children: []*Token{{Type: "text", Text: dest}}}
			link.SetAttr("href", mdurl.Encode(dest))
			s.Push(link)
			s.Advance(len(m))
			return true
		}
		if m := emailAutolinkRE.FindString(rest); m != "" {
			addr := m[1 : len(m)-1]
			href := "mailto:" + encodeEmailHost(addr)
			link := &Token{Type: "link", Children: []*Token{{Type: "text", Text: addr}}}
			link.SetAttr("href", href)
			s.Push(link)
			s.Advance(len(m))
			return true
		}
		return false
	},
}

// encodeEmailHost punycode-encodes the domain part of an email address
// so an internationalized domain produces a valid mailto: URI.
func encodeEmailHost(addr string) string {
	at := strings.LastIndexByte(addr, '@')
	if at < 0 {
		return mdurl.Encode(addr)
	}
	local, host := addr[:at], addr[at+1:]
	return mdurl.Encode(local) + "@" + puny.ToASCII(host)
}
