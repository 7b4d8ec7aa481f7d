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

import "sort"

// BlockRule is a pluggable matcher for one block-level construct.
// TryParse is tried at the block driver's current cursor position; it
// must either consume at least one line and return true, or leave the
// BlockState untouched and return false. Rules run in ascending
// Priority order; the first to return true wins for that position.
//
// TryParse folds matching and parsing into one call: Go's
// backtracking-free regexps make a match cheap enough to redo, and
// most rules need to commit to consuming a variable number of lines
// (lists, fenced code, block quotes) before they can report success,
// so a separate "match" step would just duplicate the scan.
type BlockRule struct {
	Name     string
	Priority int

	// CanInterruptParagraph reports whether this rule may fire while the
	// previous sibling token is a still-open paragraph. Indented code
	// blocks and link reference definitions are the two CommonMark
	// constructs that cannot.
	CanInterruptParagraph bool

	TryParse func(s *BlockState, rules []*BlockRule) bool
}

// defaultBlockRules is the built-in priority ordering: fenced code,
// ATX heading, setext heading, thematic break, indented code, HTML
// block, link reference definition, block quote, list, table, with
// paragraph handled as the driver's fallback. The directive rule is not
// in this set; the directive package's Plugin adds it.
func defaultBlockRules() []*BlockRule {
	return []*BlockRule{
		fencedCodeRule,
		atxHeadingRule,
		setextHeadingRule,
		thematicBreakRule,
		indentedCodeRule,
		htmlBlockRule,
		linkRefDefRule,
		blockQuoteRule,
		listRule,
		tableRule,
	}
}

// DefaultBlockRules returns the built-in block rule set, for plugins
// that need to recursively block-parse a sub-document (the directive
// subsystem's Include handler, for instance).
func DefaultBlockRules() []*BlockRule {
	return defaultBlockRules()
}

// sortRules returns rules sorted by ascending Priority, stable on ties.
func sortRules(rules []*BlockRule) []*BlockRule {
	out := append([]*BlockRule(nil), rules...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	return out
}

// Process runs the block driver's main loop:
// at each cursor position, try rules in priority order; on the first
// match, the rule has already emitted tokens and advanced the cursor.
// If nothing matches, the current line is appended to an open paragraph
// (opening one if necessary).
func (s *BlockState) Process(rules []*BlockRule) {
	sorted := sortRules(rules)
	for !s.Done() {
		line, ok := s.PeekLine()
		if !ok {
			break
		}
		if isBlankLine(line) {
			s.Advance(1)
			s.CloseParagraph()
			if len(s.Tokens) > 0 {
				s.pendingGap = true
			}
			continue
		}

		openPara := s.ParagraphOpen()
		matched := false
		for _, r := range sorted {
			if openPara && !r.CanInterruptParagraph {
				continue
			}
			before := s.cursor
			if r.TryParse(s, rules) {
				if s.cursor == before {
					// A rule must consume input to "match"; treat a
					// no-op as non-matching to avoid looping forever.
					continue
				}
				matched = true
				s.CloseParagraph()
				break
			}
		}
		if !matched {
			line, _ := s.PeekLine()
			s.AddParagraphLine(line)
			s.Advance(1)
		}
	}
}
