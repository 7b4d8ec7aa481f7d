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

	"golang.org/x/net/html"
)

// htmlBlockCondition is one of the seven CommonMark HTML-block start
// conditions, each with its own end condition.
type htmlBlockCondition struct {
	start func(line string) bool
	end   func(line string) bool // nil means "ends at the first blank line"
}

var (
	htmlType1StartRE = regexp.MustCompile(`(?i)^ {0,3}<(script|pre|style|textarea)(?:[ \t>]|$)`)
	htmlType1EndRE   = regexp.MustCompile(`(?i)</(script|pre|style|textarea)>`)
	htmlType2StartRE = regexp.MustCompile(`^ {0,3}<!--`)
	htmlType2EndRE   = regexp.MustCompile(`-->`)
	htmlType3StartRE = regexp.MustCompile(`^ {0,3}<\?`)
	htmlType3EndRE   = regexp.MustCompile(`\?>`)
	htmlType4StartRE = regexp.MustCompile(`^ {0,3}<![A-Za-z]`)
	htmlType4EndRE   = regexp.MustCompile(`>`)
	htmlType5StartRE = regexp.MustCompile(`^ {0,3}<!\[CDATA\[`)
	htmlType5EndRE   = regexp.MustCompile(`\]\]>`)
	// Type 7: an open or closing tag of any name, without attributes,
	// standalone on its line.
	htmlType7StartRE = regexp.MustCompile(`^ {0,3}(?:</?[A-Za-z][A-Za-z0-9-]*(?:[ \t]*/)?>|</[A-Za-z][A-Za-z0-9-]*[ \t]*>)[ \t]*$`)
)

var htmlBlockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "base": true, "basefont": true,
	"blockquote": true, "body": true, "caption": true, "center": true, "col": true,
	"colgroup": true, "dd": true, "details": true, "dialog": true, "dir": true,
	"div": true, "dl": true, "dt": true, "fieldset": true, "figcaption": true,
	"figure": true, "footer": true, "form": true, "frame": true, "frameset": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"head": true, "header": true, "hr": true, "html": true, "iframe": true,
	"legend": true, "li": true, "link": true, "main": true, "menu": true,
	"menuitem": true, "nav": true, "noframes": true, "ol": true, "optgroup": true,
	"option": true, "p": true, "param": true, "section": true, "source": true,
	"summary": true, "table": true, "tbody": true, "td": true, "tfoot": true,
	"th": true, "thead": true, "title": true, "tr": true, "track": true, "ul": true,
}

var htmlType6StartRE = regexp.MustCompile(`^ {0,3}</?([A-Za-z][A-Za-z0-9-]*)(?:[ \t>]|/>|$)`)

// htmlBlockRule recognizes the seven CommonMark HTML-block start conditions.
var htmlBlockRule = &BlockRule{
	Name:                  "html_block",
	Priority:              5,
	CanInterruptParagraph: true,
	TryParse: func(s *BlockState, _ []*BlockRule) bool {
		line, ok := s.PeekLine()
		if !ok {
			return false
		}
		cond, paraAllowed := classifyHTMLBlockStart(line)
		if cond == nil {
			return false
		}
		if !paraAllowed && s.ParagraphOpen() {
			return false
		}

		var body []string
		consumed := 0
		for i := s.cursor; i < len(s.lines); i++ {
			l := s.lines[i]
			body = append(body, l)
			consumed++
			if cond.end == nil {
				if i+1 >= len(s.lines) || isBlankLine(s.lines[i+1]) {
					break
				}
			} else if cond.end(l) {
				break
			}
		}
		tok := &Token{Type: "html_block", Raw: strings.Join(body, "\n")}
		s.Append(tok)
		s.Advance(consumed)
		return true
	},
}

// classifyHTMLBlockStart reports which of the seven start conditions
// line satisfies, and whether that condition type is allowed to
// interrupt an open paragraph (only types 1-6 may; type 7 may not).
func classifyHTMLBlockStart(line string) (*htmlBlockCondition, bool) {
	switch {
	case htmlType1StartRE.MatchString(line):
		return &htmlBlockCondition{end: func(l string) bool { return htmlType1EndRE.MatchString(l) }}, true
	case htmlType2StartRE.MatchString(line):
		return &htmlBlockCondition{end: func(l string) bool { return htmlType2EndRE.MatchString(l) }}, true
	case htmlType3StartRE.MatchString(line):
		return &htmlBlockCondition{end: func(l string) bool { return htmlType3EndRE.MatchString(l) }}, true
	case htmlType4StartRE.MatchString(line):
		return &htmlBlockCondition{end: func(l string) bool { return htmlType4EndRE.MatchString(l) }}, true
	case htmlType5StartRE.MatchString(line):
		return &htmlBlockCondition{end: func(l string) bool { return htmlType5EndRE.MatchString(l) }}, true
	}
	if m := htmlType6StartRE.FindStringSubmatch(line); m != nil && htmlBlockTags[strings.ToLower(m[1])] {
		return &htmlBlockCondition{end: nil}, true
	}
	if htmlType7StartRE.MatchString(line) && looksLikeCompleteTag(line) {
		return &htmlBlockCondition{end: nil}, false
	}
	return nil, false
}

// looksLikeCompleteTag uses the real HTML tokenizer (rather than the
// approximating regex alone) to confirm a type-7 candidate line really
// is a single, well-formed start or end tag, since type 7 is the one
// condition where the CommonMark spec requires the whole line to parse
// as exactly one tag.
func looksLikeCompleteTag(line string) bool {
	z := html.NewTokenizerFragment(strings.NewReader(strings.TrimSpace(line)), "div")
	tt := z.Next()
	if tt != html.StartTagToken && tt != html.EndTagToken && tt != html.SelfClosingTagToken {
		return false
	}
	// CommonMark allows any tag name for type 7, not just the standard
	// HTML5 set that atom.Lookup recognizes, so the name itself isn't
	// checked here: only that the whole line is exactly one tag.
	return z.Next() == html.ErrorToken
}
