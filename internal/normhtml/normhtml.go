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

// Package normhtml normalizes HTML so that two renderings can be
// compared while ignoring insignificant differences: whitespace between
// block-level tags, attribute order, entity spelling, and self-closing
// tag syntax. The rules follow the [CommonMark spec test normalization].
//
// [CommonMark spec test normalization]: https://github.com/commonmark/commonmark-spec/blob/0.30.0/test/normalize.py
package normhtml

import (
	"bytes"
	"regexp"
	"sort"
	"unicode"

	"go4.org/bytereplacer"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var spaceRunRE = regexp.MustCompile(`\s+`)

// textEscaper re-escapes text content with one canonical entity per
// character, so "&#34;", "&quot;", and a literal quote all normalize to
// the same bytes.
var textEscaper = bytereplacer.New(
	"&", "&amp;",
	`'`, "&apos;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
)

// normalizer accumulates the canonical form while walking the token
// stream. prev/prevTag describe the previously emitted token, which the
// whitespace rules depend on; inPre suspends all whitespace collapsing.
type normalizer struct {
	buf     []byte
	prev    html.TokenType
	prevTag string
	inPre   bool
}

// NormalizeHTML strips insignificant output differences from HTML.
func NormalizeHTML(b []byte) []byte {
	z := html.NewTokenizerFragment(bytes.NewReader(b), "div")
	n := &normalizer{prev: html.StartTagToken}
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return n.buf
		case html.TextToken:
			n.text(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			n.openTag(z)
		case html.EndTagToken:
			n.closeTag(z)
		case html.CommentToken:
			n.buf = append(n.buf, z.Raw()...)
		}
		if tt == html.SelfClosingTagToken {
			// "<br/>" and "<br>" must compare equal, and both leave the
			// normalizer in the same after-a-closed-tag state.
			tt = html.EndTagToken
		}
		n.prev = tt
	}
}

func (n *normalizer) text(data []byte) {
	afterTag := n.prev == html.StartTagToken || n.prev == html.EndTagToken
	if afterTag && n.prevTag == "br" {
		data = bytes.TrimLeft(data, "\n")
	}
	if !n.inPre {
		data = spaceRunRE.ReplaceAll(data, []byte(" "))
		if afterTag && isBlockTag(n.prevTag) {
			switch n.prev {
			case html.StartTagToken:
				data = bytes.TrimLeftFunc(data, unicode.IsSpace)
			case html.EndTagToken:
				data = bytes.TrimSpace(data)
			}
		}
	}
	n.buf = append(n.buf, textEscaper.Replace(bytes.Clone(data))...)
}

func (n *normalizer) openTag(z *html.Tokenizer) {
	name, hasAttr := z.TagName()
	tag := string(name)
	if tag == "pre" {
		n.inPre = true
	}
	if isBlockTag(tag) {
		n.buf = bytes.TrimRightFunc(n.buf, unicode.IsSpace)
	}
	n.buf = append(n.buf, '<')
	n.buf = append(n.buf, tag...)
	if hasAttr {
		type attribute struct {
			key   string
			value string
		}
		var attrs []attribute
		for {
			k, v, more := z.TagAttr()
			attrs = append(attrs, attribute{string(k), string(v)})
			if !more {
				break
			}
		}
		sort.Slice(attrs, func(i, j int) bool {
			return attrs[i].key < attrs[j].key
		})
		for _, a := range attrs {
			n.buf = append(n.buf, ' ')
			n.buf = append(n.buf, a.key...)
			if a.value != "" {
				n.buf = append(n.buf, `="`...)
				n.buf = append(n.buf, html.EscapeString(a.value)...)
				n.buf = append(n.buf, '"')
			}
		}
	}
	n.buf = append(n.buf, '>')
	n.prevTag = tag
}

func (n *normalizer) closeTag(z *html.Tokenizer) {
	name, _ := z.TagName()
	tag := string(name)
	if tag == "pre" {
		n.inPre = false
	} else if isBlockTag(tag) {
		n.buf = bytes.TrimRightFunc(n.buf, unicode.IsSpace)
	}
	n.buf = append(n.buf, "</"...)
	n.buf = append(n.buf, tag...)
	n.buf = append(n.buf, '>')
	n.prevTag = tag
}

// blockTags is the set of tags whose surrounding whitespace is
// insignificant.
var blockTags = make(map[string]bool)

func init() {
	for _, a := range []atom.Atom{
		atom.Article, atom.Aside, atom.Blockquote, atom.Body, atom.Button,
		atom.Canvas, atom.Caption, atom.Col, atom.Colgroup, atom.Dd,
		atom.Div, atom.Dl, atom.Dt, atom.Embed, atom.Fieldset,
		atom.Figcaption, atom.Figure, atom.Footer, atom.Form, atom.H1,
		atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Header,
		atom.Hgroup, atom.Hr, atom.Iframe, atom.Li, atom.Map, atom.Object,
		atom.Ol, atom.Output, atom.P, atom.Pre, atom.Progress, atom.Script,
		atom.Section, atom.Style, atom.Table, atom.Tbody, atom.Td,
		atom.Textarea, atom.Tfoot, atom.Th, atom.Thead, atom.Tr, atom.Ul,
		atom.Video,
	} {
		blockTags[a.String()] = true
	}
}

func isBlockTag(tag string) bool {
	return blockTags[tag]
}
