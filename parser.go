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

// Package markit parses CommonMark-plus-GFM Markdown, and a directive
// extension syntax layered on top of it, into a tree of Tokens that can
// be rendered to HTML or walked by a caller directly.
package markit

import (
	"bytes"
	"io"
)

// rawLeafTypes is the set of block token types whose Text holds raw
// Markdown source that still needs inline expansion, as opposed to a
// type like block_code whose content is already final and kept in Raw.
var rawLeafTypes = map[string]bool{
	"paragraph": true,
	"heading":   true,
	"th":        true,
	"td":        true,
	"dt":        true,
	"dd":        true,
}

// Parser turns Markdown source into a token tree and, optionally,
// rendered output. Build one with NewParser; a Parser is safe for
// concurrent use by multiple goroutines calling Parse on distinct
// input, since all per-document state lives in the BlockState/InlineState
// values Parse creates.
type Parser struct {
	opts *Options
}

// NewParser builds a Parser from the given options.
func NewParser(opts ...Option) *Parser {
	return &Parser{opts: NewOptions(opts...)}
}

// Document is the result of one parse: the token tree plus the
// document-scoped state accumulated while producing it. Refs and Env
// are immutable once ParseDocument returns.
type Document struct {
	Tokens      []*Token
	Refs        *ReferenceMap
	Env         map[string]any
	Diagnostics []Diagnostic
}

// ParseDocument runs the block and inline phases over src and returns
// the resulting token tree together with the reference map, plugin Env,
// and any diagnostics recorded along the way. Every raw leaf in the
// tree (paragraphs, headings, table cells) has had its Text replaced by
// inline-expanded Children; leaves whose content is already final (code
// blocks, raw HTML blocks) keep it in Raw and have no Children.
//
// ParseDocument returns a non-nil error only for a condition a block
// rule raised via Fatal (an unregistered directive handler, for
// instance) — every other malformed-input case degrades to a literal
// block or text token instead of failing the parse.
func (p *Parser) ParseDocument(src []byte) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			fpe, ok := r.(*FatalParseError)
			if !ok {
				panic(r)
			}
			doc, err = nil, fpe
		}
	}()

	root := NewBlockState(src)
	root.Env["hardWrap"] = p.opts.hardWrap
	root.Env["maxNesting"] = p.opts.maxNesting
	for _, plug := range p.opts.plugins {
		if plug.InitEnv != nil {
			plug.InitEnv(root.Env)
		}
	}
	root.Process(sortRules(p.opts.blockRules))
	expandInlineLeaves(root.Tokens, root.Refs, root.Env, p.opts.inlineRules)
	assignHeadingIDs(root.Tokens)
	out := root.Tokens
	for _, plug := range p.opts.plugins {
		if plug.PostProcess != nil {
			out = plug.PostProcess(out, root)
		}
	}
	return &Document{
		Tokens:      out,
		Refs:        root.Refs,
		Env:         root.Env,
		Diagnostics: root.Diagnostics,
	}, nil
}

// Parse is ParseDocument reduced to the token tree, for callers that
// don't need the reference map or diagnostics.
func (p *Parser) Parse(src []byte) ([]*Token, error) {
	doc, err := p.ParseDocument(src)
	if err != nil {
		return nil, err
	}
	return doc.Tokens, nil
}

// expandInlineLeaves walks tok, replacing the Text of every raw leaf
// token with inline-expanded Children, recursing into container
// tokens (block quotes, list items, table rows) along the way.
func expandInlineLeaves(tokens []*Token, refs *ReferenceMap, env map[string]any, rules []*InlineRule) {
	for _, tok := range tokens {
		if rawLeafTypes[tok.Type] {
			tok.Children = ExpandInline(tok.Text, tok, refs, env, rules)
			tok.Text = ""
			continue
		}
		if len(tok.Children) > 0 {
			expandInlineLeaves(tok.Children, refs, env, rules)
		}
	}
}

// assignHeadingIDs assigns a unique slug id to every heading token,
// depth-first, matching the order a reader encounters them in.
func assignHeadingIDs(tokens []*Token) {
	seen := make(map[string]int)
	var walk func([]*Token)
	walk = func(toks []*Token) {
		for _, tok := range toks {
			if tok.Type == "heading" {
				tok.SetAttr("id", slugAnchor(plainTextOf(tok.Children), seen))
			}
			if len(tok.Children) > 0 {
				walk(tok.Children)
			}
		}
	}
	walk(tokens)
}

// Render writes tokens as HTML to w using the Parser's options.
func (p *Parser) Render(w io.Writer, tokens []*Token) error {
	return RenderHTML(w, tokens, p.opts)
}

// Convert parses src and renders it to HTML in one call.
func (p *Parser) Convert(src []byte) (string, error) {
	tokens, err := p.Parse(src)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := p.Render(&buf, tokens); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Convert parses and renders src using the library defaults.
func Convert(src []byte, opts ...Option) (string, error) {
	return NewParser(opts...).Convert(src)
}
