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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRenderASTShape(t *testing.T) {
	p := NewParser()
	got, err := p.ConvertAST([]byte("# Hello *world*\n"))
	if err != nil {
		t.Fatalf("ConvertAST: %v", err)
	}
	want := []ASTNode{
		{
			"type": "heading",
			"attrs": map[string]any{
				"level": 1,
				"id":    "hello-world",
			},
			"children": []ASTNode{
				{"type": "text", "text": "Hello "},
				{
					"type": "emphasis",
					"children": []ASTNode{
						{"type": "text", "text": "world"},
					},
				},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AST (-want +got):\n%s", diff)
	}
}

// TestRenderASTLeafVsContainer checks the leaf/container distinction at
// the mapping boundary: leaves never carry "children", containers always
// do, even when empty.
func TestRenderASTLeafVsContainer(t *testing.T) {
	nodes := RenderAST([]*Token{
		{Type: "text", Text: "x"},
		NewContainer("paragraph"),
	})
	if _, hasChildren := nodes[0]["children"]; hasChildren {
		t.Error("leaf token mapped with a children key")
	}
	children, hasChildren := nodes[1]["children"]
	if !hasChildren {
		t.Error("container token mapped without a children key")
	} else if got := children.([]ASTNode); len(got) != 0 {
		t.Errorf("empty container mapped with %d children", len(got))
	}
}

// TestASTRendererOn checks per-type dispatch override.
func TestASTRendererOn(t *testing.T) {
	r := NewASTRenderer().On("text", func(tok *Token, children []ASTNode) ASTNode {
		return ASTNode{"type": "literal", "value": tok.Text}
	})
	got := r.Render([]*Token{
		NewContainer("paragraph", &Token{Type: "text", Text: "x"}),
	})
	want := []ASTNode{
		{
			"type": "paragraph",
			"children": []ASTNode{
				{"type": "literal", "value": "x"},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("AST (-want +got):\n%s", diff)
	}
}

func TestRenderASTAttrsCopied(t *testing.T) {
	tok := NewToken("heading")
	tok.SetAttr("level", 2)
	node := RenderAST([]*Token{tok})[0]
	node["attrs"].(map[string]any)["level"] = 6
	if tok.AttrInt("level") != 2 {
		t.Error("mutating the AST mapping mutated the source token")
	}
}
