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

import "strings"

// container tracks one open block-level container (list item, block
// quote, directive body) and the prefix-stripping rule the block driver
// applies to continuation lines belonging to it.
type container struct {
	token  *Token
	strip  func(line string) (rest string, matched bool)
	marker string // for diagnostics only
}

// BlockState owns everything the block parser rule set touches while
// tokenizing one document: the source lines, the line cursor, the block
// tokens emitted so far at the current nesting level, the document-wide
// reference map, the stack of open containers, and the plugin-shared Env
// dictionary.
type BlockState struct {
	lines  []string // source split into lines, newline stripped
	cursor int       // index into lines of the next line to consume

	Tokens []*Token // tokens emitted at this container's level
	Refs   *ReferenceMap
	Env    map[string]any

	// Diagnostics collects non-fatal issues (directive degrade paths,
	// failed include resolutions) on the root state; child states
	// forward to their root.
	Diagnostics []Diagnostic

	stack []container

	parent *BlockState // non-nil for a child state created by ChildState

	openParagraph bool // true while the last emitted token is a still-mergeable paragraph

	// pendingGap is set when the driver consumes a blank line after at
	// least one token at this level; sawGap latches when another token
	// follows, i.e. two sibling blocks at this level were blank-line
	// separated. Blank lines inside nested constructs are consumed by
	// their rules and never reach this level's driver, so the flags
	// describe exactly this nesting level.
	pendingGap bool
	sawGap     bool
}

// NewBlockState creates the root BlockState for a document.
func NewBlockState(src []byte) *BlockState {
	text := string(normalizeSource(src))
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return &BlockState{
		lines: lines,
		Refs:  &ReferenceMap{},
		Env:   make(map[string]any),
	}
}

// ChildState creates a BlockState for a nested container: it shares the
// reference map and Env with its parent but parses an independently
// cursored, prefix-stripped view of src. On return, the caller attaches
// child.Tokens as the container's Children.
func (s *BlockState) ChildState(src string) *BlockState {
	lines := strings.Split(src, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return &BlockState{
		lines:  lines,
		Refs:   s.Refs,
		Env:    s.Env,
		parent: s,
	}
}

// Done reports whether the cursor has consumed every line.
func (s *BlockState) Done() bool {
	return s.cursor >= len(s.lines)
}

// PeekLine returns the line at the cursor without consuming it, or ""
// and false at end of input.
func (s *BlockState) PeekLine() (string, bool) {
	if s.Done() {
		return "", false
	}
	return s.lines[s.cursor], true
}

// PeekLineAt returns the line offset lines ahead of the cursor (0 ==
// PeekLine), or "" and false if that's past the end.
func (s *BlockState) PeekLineAt(offset int) (string, bool) {
	i := s.cursor + offset
	if i < 0 || i >= len(s.lines) {
		return "", false
	}
	return s.lines[i], true
}

// NextLine consumes and returns the line at the cursor.
func (s *BlockState) NextLine() (string, bool) {
	line, ok := s.PeekLine()
	if ok {
		s.cursor++
	}
	return line, ok
}

// Advance moves the cursor forward by n lines. A negative n is an
// internal invariant violation and panics.
func (s *BlockState) Advance(n int) {
	if n < 0 {
		panic("markit: BlockState.Advance called with a negative line count")
	}
	s.cursor += n
	if s.cursor > len(s.lines) {
		s.cursor = len(s.lines)
	}
}

// RemainingLines returns the lines from the cursor to the end, one
// string per line. Block rules that consume a variable-length region
// scan this slice to find where it ends.
func (s *BlockState) RemainingLines() []string {
	return s.lines[s.cursor:]
}

// Append adds a token to the tokens emitted at this container level.
func (s *BlockState) Append(tok *Token) {
	if s.pendingGap {
		s.sawGap = true
		s.pendingGap = false
	}
	s.Tokens = append(s.Tokens, tok)
}

// HadBlankSeparation reports whether two sibling tokens at this level
// were separated by a blank line, the condition that makes a list item
// loosen its list.
func (s *BlockState) HadBlankSeparation() bool {
	return s.sawGap
}

// LastToken returns the most recently appended token at this level, or
// nil if none.
func (s *BlockState) LastToken() *Token {
	if len(s.Tokens) == 0 {
		return nil
	}
	return s.Tokens[len(s.Tokens)-1]
}

// AddParagraphLine appends line to the open paragraph at this level,
// opening one (as a raw leaf) if the last token isn't already an open
// paragraph: consecutive unmatched text lines coalesce into one
// paragraph leaf.
func (s *BlockState) AddParagraphLine(line string) {
	if s.openParagraph {
		if last := s.LastToken(); last != nil && last.Type == "paragraph" && last.IsLeaf() {
			last.Text += "\n" + line
			s.openParagraph = true
			return
		}
	}
	s.Append(&Token{Type: "paragraph", Text: line})
	s.openParagraph = true
}

// CloseParagraph marks any open paragraph as no longer mergeable,
// without removing it. Block rules that successfully match a new
// construct call this so a later unmatched line starts a fresh
// paragraph instead of merging into the old one.
func (s *BlockState) CloseParagraph() {
	s.openParagraph = false
}

// ParagraphOpen reports whether the last emitted token is a paragraph
// that a following unmatched line would merge into.
func (s *BlockState) ParagraphOpen() bool {
	return s.openParagraph
}

// Diagnose records a non-fatal issue against the document being parsed.
// Child states forward to the root so a caller sees one flat list.
func (s *BlockState) Diagnose(code, message string) {
	if s.parent != nil {
		s.parent.Diagnose(code, message)
		return
	}
	s.Diagnostics = append(s.Diagnostics, Diagnostic{Code: code, Message: message})
}

// AddDefinition inserts a link reference definition into the shared
// reference map, honoring first-definition-wins.
func (s *BlockState) AddDefinition(label, url, title string) bool {
	return s.Refs.Define(label, url, title)
}

// PushContainer opens a new container on the stack with the given
// continuation-line stripping rule.
func (s *BlockState) PushContainer(tok *Token, strip func(string) (string, bool), marker string) {
	s.stack = append(s.stack, container{token: tok, strip: strip, marker: marker})
}

// PopContainer closes the innermost open container.
func (s *BlockState) PopContainer() {
	if len(s.stack) > 0 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}

// OpenContainers returns the currently open container stack, outermost
// first.
func (s *BlockState) OpenContainers() []*Token {
	toks := make([]*Token, len(s.stack))
	for i, c := range s.stack {
		toks[i] = c.token
	}
	return toks
}

// InlineState owns the text under analysis during the inline phase: the
// source slice, a cursor into it, the tokens produced so far, and
// shared state inherited from the block phase. The no-nested-link rule
// needs no state here: closeBracket deactivates enclosing link markers
// when a link forms, so an outer "]" can never complete a second link
// around one.
type InlineState struct {
	Src    string
	pos    int
	Tokens []*Token

	Parent *Token // the raw-leaf block token being expanded
	Refs   *ReferenceMap
	Env    map[string]any
}

// NewInlineState creates an InlineState for expanding a raw leaf's Text.
func NewInlineState(src string, parent *Token, refs *ReferenceMap, env map[string]any) *InlineState {
	return &InlineState{Src: src, Parent: parent, Refs: refs, Env: env}
}

// Pos returns the current byte offset into Src.
func (s *InlineState) Pos() int { return s.pos }

// SetPos sets the byte offset into Src.
func (s *InlineState) SetPos(p int) { s.pos = p }

// Rest returns the unconsumed suffix of Src.
func (s *InlineState) Rest() string { return s.Src[s.pos:] }

// Advance moves the cursor forward n bytes.
func (s *InlineState) Advance(n int) { s.pos += n }

// AtEnd reports whether the cursor has reached the end of Src.
func (s *InlineState) AtEnd() bool { return s.pos >= len(s.Src) }

// PushText appends a plain "text" token, merging with a trailing "text"
// token if one is already last (keeps adjacent literal runs from
// fragmenting into many single-rune tokens).
func (s *InlineState) PushText(text string) {
	if text == "" {
		return
	}
	if n := len(s.Tokens); n > 0 {
		if last := s.Tokens[n-1]; last.Type == "text" && last.IsLeaf() {
			last.Text += text
			return
		}
	}
	s.Tokens = append(s.Tokens, &Token{Type: "text", Text: text})
}

// Push appends tok as-is.
func (s *InlineState) Push(tok *Token) {
	s.Tokens = append(s.Tokens, tok)
}
