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
	"unicode"
	"unicode/utf8"
)

// delimiterRule recognizes runs
// of "*", "_", or (GFM strikethrough) "~" and emits a placeholder
// "delim_run" token annotated with the run's length and its can-open/
// can-close flags, computed per CommonMark Algorithm 17. The actual
// pairing into emphasis/strong/strikethrough tokens happens in
// resolveDelimiters, once the whole leaf has been scanned.
var delimiterRule = &InlineRule{
	Name:     "emphasis_delimiter",
	Priority: 5,
	TryParse: func(s *InlineState, _ []*InlineRule) bool {
		rest := s.Rest()
		if len(rest) == 0 {
			return false
		}
		c := rest[0]
		if c != '*' && c != '_' && c != '~' {
			return false
		}
		n := 0
		for n < len(rest) && rest[n] == c {
			n++
		}
		if c == '~' && n < 2 {
			// Single "~" is not a GFM strikethrough marker.
			return false
		}

		prev := runeBefore(s.Src, s.Pos())
		next := runeAfter(s.Src, s.Pos()+n)

		leftFlanking := !isSpaceOrEnd(next) && (!isPunct(next) || isSpaceOrEnd(prev) || isPunct(prev))
		rightFlanking := !isSpaceOrEnd(prev) && (!isPunct(prev) || isSpaceOrEnd(next) || isPunct(next))

		var canOpen, canClose bool
		if c == '_' {
			canOpen = leftFlanking && (!rightFlanking || isPunct(prev))
			canClose = rightFlanking && (!leftFlanking || isPunct(next))
		} else {
			canOpen = leftFlanking
			canClose = rightFlanking
		}

		tok := &Token{Type: "delim_run", Text: rest[:n]}
		tok.SetAttr("char", string(c))
		tok.SetAttr("length", n)
		tok.SetAttr("origLength", n)
		tok.SetAttr("canOpen", canOpen)
		tok.SetAttr("canClose", canClose)
		s.Push(tok)
		s.Advance(n)
		return true
	},
}

func runeBefore(s string, pos int) rune {
	if pos <= 0 {
		return ' '
	}
	r, _ := utf8.DecodeLastRuneInString(s[:pos])
	return r
}

func runeAfter(s string, pos int) rune {
	if pos >= len(s) {
		return ' '
	}
	r, _ := utf8.DecodeRuneInString(s[pos:])
	return r
}

func isSpaceOrEnd(r rune) bool {
	return unicode.IsSpace(r)
}

func isPunct(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// resolveDelimiters implements the delimiter-resolution pass: for each
// closer, scan backward for the nearest compatible opener of the same
// character; consume 2 from each side for strong emphasis, else 1 for
// emphasis, while a strikethrough pair consumes the length of the
// shorter "~" run from each side. The
// stack is kept as per-character slices of indices into s.Tokens rather
// than token pointers, so entries can be pruned by position after each
// splice.
func resolveDelimiters(s *InlineState) {
	// openersByChar[c] holds indices into s.Tokens of unclosed openers
	// for character c, most recent last.
	openersByChar := map[byte][]int{}

	i := 0
	for i < len(s.Tokens) {
		tok := s.Tokens[i]
		if tok.Type != "delim_run" {
			i++
			continue
		}
		c := tok.AttrString("char")[0]
		if !tok.AttrBool("canClose") {
			if tok.AttrBool("canOpen") {
				openersByChar[c] = append(openersByChar[c], i)
			}
			i++
			continue
		}

		stack := openersByChar[c]
		// Cap the backward opener scan: pathological inputs (thousands
		// of unmatched same-character openers before every closer) are
		// otherwise quadratic in the delimiter count.
		maxScan, _ := s.Env["maxNesting"].(int)
		scanned := 0
		matched := false
		for k := len(stack) - 1; k >= 0; k-- {
			if maxScan > 0 && scanned >= maxScan {
				break
			}
			scanned++
			openerIdx := stack[k]
			opener := s.Tokens[openerIdx]
			if opener.AttrInt("length") == 0 {
				continue
			}
			// CommonMark rule 9: when a delimiter run can both open and
			// close, the sum of the two original run lengths must not be
			// a multiple of 3, unless both are. Original lengths, not
			// remaining ones, matching the reference implementation.
			if c != '~' && (opener.AttrBool("canClose") || tok.AttrBool("canOpen")) {
				oSum := opener.AttrInt("origLength") + tok.AttrInt("origLength")
				if oSum%3 == 0 && (opener.AttrInt("origLength")%3 != 0 || tok.AttrInt("origLength")%3 != 0) {
					continue
				}
			}
			take := 1
			if c == '~' {
				take = min(opener.AttrInt("length"), tok.AttrInt("length"))
			} else if opener.AttrInt("length") >= 2 && tok.AttrInt("length") >= 2 {
				take = 2
			}

			kind := "emphasis"
			if c == '~' {
				kind = "strikethrough"
			} else if take == 2 {
				kind = "strong"
			}

			inner := append([]*Token(nil), s.Tokens[openerIdx+1:i]...)
			newTok := &Token{Type: kind, Children: inner}

			opener.SetAttr("length", opener.AttrInt("length")-take)
			tok.SetAttr("length", tok.AttrInt("length")-take)

			var replaceStart, replaceEnd int
			if opener.AttrInt("length") == 0 {
				replaceStart = openerIdx
			} else {
				replaceStart = openerIdx + 1
				shrinkDelim(opener)
			}
			replaceEnd = i + 1
			if tok.AttrInt("length") != 0 {
				replaceEnd = i
				shrinkDelim(tok)
			}

			newTokens := append([]*Token(nil), s.Tokens[:replaceStart]...)
			newTokens = append(newTokens, newTok)
			newTokens = append(newTokens, s.Tokens[replaceEnd:]...)
			s.Tokens = newTokens
			i = replaceStart + 1

			// Every delimiter between the opener and closer was folded
			// into the new container; drop all of them (any character)
			// from the opener stacks, or their indices would go stale
			// against the spliced token slice. The opener itself stays
			// only while partially consumed.
			for ch, st := range openersByChar {
				n := 0
				for _, idx := range st {
					if idx < openerIdx || (idx == openerIdx && opener.AttrInt("length") > 0) {
						st[n] = idx
						n++
					}
				}
				openersByChar[ch] = st[:n]
			}
			matched = true
			break
		}
		if !matched {
			if tok.AttrBool("canOpen") {
				openersByChar[c] = append(openersByChar[c], i)
			}
			i++
		}
	}

	// Any remaining delim_run tokens are literal text (unmatched).
	flattenDelimRuns(s)
}

// shrinkDelim truncates a partially-consumed delimiter run's Text by n
// runs of its character, keeping it around as literal text for the
// unconsumed remainder.
func shrinkDelim(tok *Token) {
	c := tok.AttrString("char")[0]
	tok.Text = repeatByte(c, tok.AttrInt("length"))
}

func repeatByte(c byte, n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = c
	}
	return string(b)
}

// flattenDelimRuns converts every remaining delim_run placeholder
// (unmatched delimiters) into literal text tokens, recursing into
// emphasis/strong/strikethrough children produced during resolution.
func flattenDelimRuns(s *InlineState) {
	s.Tokens = flattenDelimSlice(s.Tokens)
}

func flattenDelimSlice(toks []*Token) []*Token {
	out := make([]*Token, 0, len(toks))
	for _, t := range toks {
		if t.Type == "delim_run" {
			if t.Text == "" {
				continue
			}
			if n := len(out); n > 0 && out[n-1].Type == "text" {
				out[n-1].Text += t.Text
				continue
			}
			out = append(out, &Token{Type: "text", Text: t.Text})
			continue
		}
		if t.Children != nil {
			t.Children = flattenDelimSlice(t.Children)
		}
		out = append(out, t)
	}
	return out
}
