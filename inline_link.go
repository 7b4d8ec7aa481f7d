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
	angleDestRE   = regexp.MustCompile(`^<(?:[^<>\n\\]|\\.)*>`)
	plainDestRE   = regexp.MustCompile(`^(?:[^\s()\\]|\\.|\((?:[^()\\]|\\.)*\))*`)
	titleDoubleRE = regexp.MustCompile(`^"(?:[^"\\]|\\.)*"`)
	titleSingleRE = regexp.MustCompile(`^'(?:[^'\\]|\\.)*'`)
	titleParenRE  = regexp.MustCompile(`^\((?:[^()\\]|\\.)*\)`)
	refLabelRE    = regexp.MustCompile(`^\[(?:[^\[\]\\]|\\.){0,999}\]`)
)

// linkImageRule implements the bracket/link/image matching pass: "["
// and "![" push an open-bracket marker token; "]" looks backward for the
// nearest active marker and, if found, tries an inline "(dest "title")"
// group or a reference form ("[label]", "[]", or the implicit shortcut)
// against the shared reference map. On success the bracketed span and
// its marker collapse into a single link or image token; on failure the
// marker is retired and the bracket characters fall back to plain text.
//
// A successfully formed link retires every still-active, non-image
// marker before it, since CommonMark forbids a link nested in a link's
// text (an image may still nest inside a link's text).
var linkImageRule = &InlineRule{
	Name:     "link_image",
	Priority: 4,
	TryParse: func(s *InlineState, _ []*InlineRule) bool {
		rest := s.Rest()
		if len(rest) == 0 {
			return false
		}
		switch {
		case rest[0] == '!' && len(rest) > 1 && rest[1] == '[':
			tok := &Token{Type: "bracket_open"}
			tok.SetAttr("image", true)
			tok.SetAttr("active", true)
			s.Push(tok)
			s.Advance(2)
			return true
		case rest[0] == '[':
			tok := &Token{Type: "bracket_open"}
			tok.SetAttr("image", false)
			tok.SetAttr("active", true)
			s.Push(tok)
			s.Advance(1)
			return true
		case rest[0] == ']':
			return closeBracket(s, rest)
		default:
			return false
		}
	},
}

func closeBracket(s *InlineState, rest string) bool {
	openerIdx := findActiveBracket(s.Tokens)
	if openerIdx < 0 {
		s.PushText("]")
		s.Advance(1)
		return true
	}
	opener := s.Tokens[openerIdx]
	isImage := opener.AttrBool("image")
	labelChildren := s.Tokens[openerIdx+1:]
	after := rest[1:]

	dest, title, consumed, ok := parseInlineLinkTail(after)
	if !ok {
		dest, title, consumed, ok = parseReferenceLinkTail(s, after, labelChildren)
	}
	if !ok {
		// The marker reverts to literal text, so a later "]" looks past
		// it to an earlier marker.
		opener.Type, opener.Text, opener.Attrs = "text", "[", nil
		if isImage {
			opener.Text = "!["
		}
		s.PushText("]")
		s.Advance(1)
		return true
	}

	children := append([]*Token(nil), labelChildren...)
	typ := "link"
	if isImage {
		typ = "image"
	}
	newTok := &Token{Type: typ, Children: children}
	newTok.SetAttr("href", EncodeDestination(dest))
	if title != "" {
		newTok.SetAttr("title", title)
	}
	if isImage {
		newTok.Text = plainTextOf(children)
		newTok.Children = nil
	}

	kept := append([]*Token(nil), s.Tokens[:openerIdx]...)
	if !isImage {
		for _, t := range kept {
			if t.Type == "bracket_open" && !t.AttrBool("image") {
				t.SetAttr("active", false)
			}
		}
	}
	kept = append(kept, newTok)
	s.Tokens = kept
	s.Advance(1 + consumed)
	return true
}

// findActiveBracket returns the index of the nearest trailing
// bracket_open token if it is still active, or -1 when there is none or
// the nearest one was deactivated by a link formed after it.
func findActiveBracket(tokens []*Token) int {
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i].Type == "bracket_open" {
			if tokens[i].AttrBool("active") {
				return i
			}
			return -1
		}
	}
	return -1
}

// parseInlineLinkTail parses "(dest "title")" immediately following a
// closing "]", where after is everything after the "]". It reports the
// number of bytes of after consumed through the closing ")".
func parseInlineLinkTail(after string) (dest, title string, consumed int, ok bool) {
	if len(after) == 0 || after[0] != '(' {
		return "", "", 0, false
	}
	i := skipInlineSpace(after, 1)
	if i < len(after) && after[i] == '<' {
		m := angleDestRE.FindString(after[i:])
		if m == "" {
			return "", "", 0, false
		}
		dest = unescape(m[1 : len(m)-1])
		i += len(m)
	} else {
		m := plainDestRE.FindString(after[i:])
		dest = unescape(m)
		i += len(m)
	}
	beforeTitle := i
	i = skipInlineSpace(after, i)
	if i < len(after) {
		var re *regexp.Regexp
		switch after[i] {
		case '"':
			re = titleDoubleRE
		case '\'':
			re = titleSingleRE
		case '(':
			re = titleParenRE
		}
		if re != nil {
			if m := re.FindString(after[i:]); m != "" {
				title = unescape(m[1 : len(m)-1])
				i += len(m)
			} else {
				i = beforeTitle
			}
		} else {
			i = beforeTitle
		}
	}
	i = skipInlineSpace(after, i)
	if i >= len(after) || after[i] != ')' {
		return "", "", 0, false
	}
	return dest, title, i + 1, true
}

// parseReferenceLinkTail resolves a full "[label]", collapsed "[]", or
// implicit shortcut reference against refs, returning the byte count of
// after consumed (0 for a shortcut, since it consumes no extra text).
func parseReferenceLinkTail(s *InlineState, after string, labelChildren []*Token) (dest, title string, consumed int, ok bool) {
	if len(after) > 0 && after[0] == '[' {
		m := refLabelRE.FindString(after)
		if m == "" {
			return "", "", 0, false
		}
		label := m[1 : len(m)-1]
		if label == "" {
			label = plainTextOf(labelChildren)
		}
		ref, found := s.Refs.Lookup(label)
		if !found {
			return "", "", 0, false
		}
		return ref.URL, ref.Title, len(m), true
	}
	label := plainTextOf(labelChildren)
	ref, found := s.Refs.Lookup(label)
	if !found {
		return "", "", 0, false
	}
	return ref.URL, ref.Title, 0, true
}

func skipInlineSpace(s string, i int) int {
	for i < len(s) {
		switch s[i] {
		case ' ', '\t', '\n':
			i++
			continue
		}
		break
	}
	return i
}

// plainTextOf concatenates the literal text of a token slice, descending
// into children, for use as a reference label or image alt attribute.
func plainTextOf(toks []*Token) string {
	var b strings.Builder
	for _, t := range toks {
		switch t.Type {
		case "text", "code_span", "inline_html":
			b.WriteString(t.Text)
		default:
			if len(t.Children) > 0 {
				b.WriteString(plainTextOf(t.Children))
			} else {
				b.WriteString(t.Text)
			}
		}
	}
	return b.String()
}
