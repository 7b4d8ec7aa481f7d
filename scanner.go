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

	"go4.org/bytereplacer"
	"golang.org/x/text/cases"
)

// tabStopSize is the multiple of columns that a tab advances to.
const tabStopSize = 4

// sourceNormalizer replaces byte sequences that would otherwise make the
// rest of the pipeline special-case line endings and embedded NULs. It
// generalizes a single bytes.ReplaceAll NUL scrub into a reusable,
// chained replacer.
var sourceNormalizer = bytereplacer.New(
	"\x00", "�",
	"\r\n", "\n",
	"\r", "\n",
)

// normalizeSource prepares raw input for block parsing.
func normalizeSource(src []byte) []byte {
	return sourceNormalizer.Replace(append([]byte(nil), src...))
}

// columnWidth returns the width of b in columns, given a 0-based column
// starting position, expanding tabs to the next multiple of tabStopSize.
func columnWidth(start int, b []byte) int {
	end := start
	for _, bi := range b {
		switch {
		case bi == '\t':
			end = (end + tabStopSize) &^ (tabStopSize - 1)
		case bi&0x80 == 0:
			end++
		}
	}
	return end - start
}

// indentLength returns the number of leading space/tab bytes in line.
func indentLength(line string) int {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return i
		}
	}
	return len(line)
}

// isBlankLine reports whether line consists solely of whitespace.
func isBlankLine(line string) bool {
	for i := 0; i < len(line); i++ {
		b := line[i]
		if !(b == '\r' || b == '\n' || b == ' ' || b == '\t') {
			return false
		}
	}
	return true
}

func isASCIIDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// isEndEscaped reports whether s ends with an odd number of backslashes,
// meaning the character that follows it in the original source was
// backslash-escaped.
func isEndEscaped(s string) bool {
	n := 0
	for ; n < len(s); n++ {
		if s[len(s)-n-1] != '\\' {
			break
		}
	}
	return n%2 == 1
}

// matchAt runs re anchored at the start of s and returns the matched
// text and its submatches, or ("", nil, false) if re does not match at
// offset 0. Callers that need an anchored match embed "^" themselves;
// matchAt additionally verifies the match begins at offset 0 so it never
// silently finds a match further into s (needed because Go's regexp
// package has no native match-at-offset primitive).
func matchAt(re *regexp.Regexp, s string) (text string, groups []string, ok bool) {
	loc := re.FindStringSubmatchIndex(s)
	if loc == nil || loc[0] != 0 {
		return "", nil, false
	}
	groups = make([]string, len(loc)/2)
	for i := range groups {
		lo, hi := loc[2*i], loc[2*i+1]
		if lo < 0 {
			continue
		}
		groups[i] = s[lo:hi]
	}
	return s[loc[0]:loc[1]], groups, true
}

// backslashEscapable is the CommonMark set of ASCII punctuation that can
// be backslash-escaped.
const backslashEscapable = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

var backslashEscapeRE = regexp.MustCompile(`\\[!"#$%&'()*+,\-./:;<=>?@\[\\\]^_` + "`" + `{|}~]`)

// unescape expands backslash escapes of ASCII punctuation, per
// CommonMark's backslash-escape rule. Escapes of non-punctuation
// characters are left untouched (the backslash stays literal).
func unescape(s string) string {
	if !strings.Contains(s, "\\") {
		return s
	}
	return backslashEscapeRE.ReplaceAllStringFunc(s, func(m string) string {
		return m[1:]
	})
}

// caseFolder performs Unicode case folding for reference-label and
// footnote-label normalization.
var caseFolder = cases.Fold()

// foldCase returns the Unicode case-folded form of s.
func foldCase(s string) string {
	return caseFolder.String(s)
}

// collapseWhitespace collapses runs of ASCII whitespace (space, tab,
// newline, vertical tab, form feed, carriage return) into a single space
// and trims the ends, the other half of CommonMark's reference label
// normalization.
func collapseWhitespace(s string) string {
	var b strings.Builder
	lastWasSpace := true
	for _, r := range s {
		if isUnicodeSpace(r) {
			if !lastWasSpace {
				b.WriteByte(' ')
			}
			lastWasSpace = true
			continue
		}
		lastWasSpace = false
		b.WriteRune(r)
	}
	out := b.String()
	return strings.TrimSuffix(out, " ")
}

func isUnicodeSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
