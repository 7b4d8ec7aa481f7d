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

// ASTNode is the mapping form of a Token: {"type": ..., "raw"?,
// "text"?, "children"?, "attrs"?}. Keys with zero values are omitted,
// except "children", which is present (possibly empty) for every
// container token so a consumer can distinguish an empty container from
// a leaf.
type ASTNode = map[string]any

// ASTFunc converts one token to its ASTNode, given the already-converted
// children (nil for a leaf).
type ASTFunc func(tok *Token, children []ASTNode) ASTNode

// ASTRenderer converts a parsed token tree into nested ASTNode
// mappings. Like the HTML Renderer it dispatches on token Type, but
// unlike it no registration is mandatory: any Type without a method
// falls through to the generic mapping conversion, so plugin-introduced
// tokens serialize without extra wiring. On exists for the plugin that
// wants a different mapping shape for its own types.
type ASTRenderer struct {
	methods map[string]ASTFunc
}

// NewASTRenderer builds an ASTRenderer with the generic conversion as
// the fallback for every token type.
func NewASTRenderer() *ASTRenderer {
	return &ASTRenderer{methods: make(map[string]ASTFunc)}
}

// On registers fn as the conversion for the given token Type,
// overwriting any previous registration.
func (r *ASTRenderer) On(tokenType string, fn ASTFunc) *ASTRenderer {
	r.methods[tokenType] = fn
	return r
}

// Render converts tokens to their ASTNode form.
func (r *ASTRenderer) Render(tokens []*Token) []ASTNode {
	out := make([]ASTNode, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, r.renderOne(t))
	}
	return out
}

// renderOne walks one token's subtree with an explicit stack frame
// worklist, children before parents, so deeply nested documents never
// grow the goroutine stack.
func (r *ASTRenderer) renderOne(root *Token) ASTNode {
	type frame struct {
		tok      *Token
		children []ASTNode
		next     int
	}
	stack := []*frame{{tok: root}}
	var result ASTNode
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		if f.next < len(f.tok.Children) {
			child := f.tok.Children[f.next]
			f.next++
			stack = append(stack, &frame{tok: child})
			continue
		}
		fn := r.methods[f.tok.Type]
		if fn == nil {
			fn = astNode
		}
		node := fn(f.tok, f.children)
		stack = stack[:len(stack)-1]
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, node)
		} else {
			result = node
		}
	}
	return result
}

// astNode is the generic token-to-mapping conversion.
func astNode(tok *Token, children []ASTNode) ASTNode {
	n := ASTNode{"type": tok.Type}
	if tok.Raw != "" {
		n["raw"] = tok.Raw
	}
	if tok.Text != "" {
		n["text"] = tok.Text
	}
	if tok.Children != nil {
		if children == nil {
			children = []ASTNode{}
		}
		n["children"] = children
	}
	if len(tok.Attrs) > 0 {
		attrs := make(map[string]any, len(tok.Attrs))
		for k, v := range tok.Attrs {
			attrs[k] = v
		}
		n["attrs"] = attrs
	}
	return n
}

// RenderAST converts tokens to their ASTNode form using the default
// generic conversion for every token type.
func RenderAST(tokens []*Token) []ASTNode {
	return NewASTRenderer().Render(tokens)
}

// ConvertAST parses src and returns the token tree in its ASTNode
// mapping form, the parser's second render mode alongside Convert's
// HTML output.
func (p *Parser) ConvertAST(src []byte) ([]ASTNode, error) {
	tokens, err := p.Parse(src)
	if err != nil {
		return nil, err
	}
	return RenderAST(tokens), nil
}
