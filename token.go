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

// Package markit provides a CommonMark-compatible Markdown parser and
// rendering pipeline, extended with GitHub-Flavored Markdown, math,
// footnotes, definition lists, abbreviations, and a pluggable directive
// mechanism.
package markit

// Token is the core unit of both the block tree and the inline token
// sequences attached to its leaves. A Token is either a leaf (Children is
// nil) or a container (Children is non-nil, possibly empty). A raw leaf
// carries Text that has not yet been expanded by the inline phase; once
// expanded, Text is cleared and Children holds the resulting inline tokens.
//
// Token deliberately keeps a dynamic Attrs map rather than per-kind typed
// fields: the plugin protocol (see Plugin) lets third-party code introduce
// new Types the core package never compiles against, and a fixed struct
// can't grow attributes for them.
type Token struct {
	// Type names the token's kind, e.g. "heading", "paragraph", "text",
	// "emphasis", "link". Every Type that reaches a renderer must have a
	// registered method for it (see Renderer); an unregistered Type is a
	// fatal RenderError.
	Type string

	// Raw is the original source slice the token was matched from, if the
	// token retains it (not all rules keep Raw around; fenced code blocks
	// and HTML blocks do, most inline tokens don't).
	Raw string

	// Text is the token's textual payload. For a raw leaf, this is
	// unparsed Markdown source waiting for the inline phase. For an
	// inline "text" token, this is the literal text to render. Leaves
	// with Children do not use Text.
	Text string

	// Children holds nested tokens in document order. A nil Children
	// marks a leaf; a non-nil (possibly empty) Children marks a
	// container.
	Children []*Token

	// Attrs holds kind-specific attributes: "level", "href", "title",
	// "info", "ordered", "start", "tight", "align", "label", "number", and
	// anything a plugin chooses to add. Nil until first written.
	Attrs map[string]any
}

// NewToken returns a leaf Token of the given type.
func NewToken(typ string) *Token {
	return &Token{Type: typ}
}

// NewContainer returns a container Token of the given type with the given
// children. Passing no children still produces a container (Children is
// set to a non-nil empty slice), matching spec semantics that distinguish
// "no children yet" from "not a container".
func NewContainer(typ string, children ...*Token) *Token {
	if children == nil {
		children = []*Token{}
	}
	return &Token{Type: typ, Children: children}
}

// IsLeaf reports whether the token has no Children slice at all,
// i.e. it has not been turned into a container.
func (t *Token) IsLeaf() bool {
	return t.Children == nil
}

// IsRawLeaf reports whether the token is a leaf still carrying unparsed
// inline text.
func (t *Token) IsRawLeaf() bool {
	return t.IsLeaf() && t.Text != ""
}

// Attr returns the named attribute, or nil and false if it isn't set.
func (t *Token) Attr(name string) (any, bool) {
	if t == nil || t.Attrs == nil {
		return nil, false
	}
	v, ok := t.Attrs[name]
	return v, ok
}

// AttrString returns the named attribute as a string, or "" if unset or
// not a string.
func (t *Token) AttrString(name string) string {
	v, _ := t.Attr(name)
	s, _ := v.(string)
	return s
}

// AttrInt returns the named attribute as an int, or 0 if unset or not an
// int.
func (t *Token) AttrInt(name string) int {
	v, _ := t.Attr(name)
	n, _ := v.(int)
	return n
}

// AttrBool returns the named attribute as a bool, or false if unset or
// not a bool.
func (t *Token) AttrBool(name string) bool {
	v, _ := t.Attr(name)
	b, _ := v.(bool)
	return b
}

// SetAttr sets the named attribute, allocating Attrs if necessary.
func (t *Token) SetAttr(name string, value any) {
	if t.Attrs == nil {
		t.Attrs = make(map[string]any)
	}
	t.Attrs[name] = value
}

// AppendChild appends a child token, promoting the receiver to a
// container if it was a leaf.
func (t *Token) AppendChild(child *Token) {
	if t.Children == nil {
		t.Children = []*Token{}
	}
	t.Children = append(t.Children, child)
}

// Clone returns a shallow copy of the token: Attrs and Children are
// copied one level deep (new map, new slice header) but child tokens and
// attribute values are shared.
func (t *Token) Clone() *Token {
	if t == nil {
		return nil
	}
	c := *t
	if t.Attrs != nil {
		c.Attrs = make(map[string]any, len(t.Attrs))
		for k, v := range t.Attrs {
			c.Attrs[k] = v
		}
	}
	if t.Children != nil {
		c.Children = append([]*Token(nil), t.Children...)
	}
	return &c
}
