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
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gomarkit/markit/internal/testcorpus"
)

// TestParseRenderMatchesConvert verifies that parsing and rendering as
// two separate calls produces exactly the string Convert produces, for
// every corpus input.
func TestParseRenderMatchesConvert(t *testing.T) {
	p := NewParser()
	for _, ex := range testcorpus.CommonMark {
		t.Run(ex.Name, func(t *testing.T) {
			tokens, err := p.Parse([]byte(ex.Markdown))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			var buf bytes.Buffer
			if err := p.Render(&buf, tokens); err != nil {
				t.Fatalf("Render: %v", err)
			}
			converted, err := p.Convert([]byte(ex.Markdown))
			if err != nil {
				t.Fatalf("Convert: %v", err)
			}
			if got := buf.String(); got != converted {
				t.Errorf("Parse+Render = %q, Convert = %q", got, converted)
			}
		})
	}
}

func parseOne(t *testing.T, src string, opts ...Option) []*Token {
	t.Helper()
	tokens, err := NewParser(opts...).Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return tokens
}

func TestListTightness(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		tight bool
	}{
		{"no blank lines", "- a\n- b\n- c\n", true},
		{"blank between items", "- a\n\n- b\n", false},
		{"blank inside an item", "- a\n\n  b\n- c\n", false},
		{"indented sublist only", "- a\n  - b\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := parseOne(t, tt.src)
			if len(tokens) == 0 || tokens[0].Type != "list" {
				t.Fatalf("got %d tokens, first not a list", len(tokens))
			}
			if got := tokens[0].AttrBool("tight"); got != tt.tight {
				t.Errorf("tight = %v, want %v", got, tt.tight)
			}

			var buf bytes.Buffer
			if err := RenderHTML(&buf, tokens, nil); err != nil {
				t.Fatalf("RenderHTML: %v", err)
			}
			hasP := strings.Contains(buf.String(), "<p>")
			if tt.tight && hasP {
				t.Errorf("tight list rendered with <p>: %s", buf.String())
			}
			if !tt.tight && !hasP {
				t.Errorf("loose list rendered without <p>: %s", buf.String())
			}
		})
	}
}

// TestNestedListTightness checks that a blank line inside a nested
// sublist loosens only that sublist: the outer list's items have no
// blank separation between their own direct children, so it stays
// tight.
func TestNestedListTightness(t *testing.T) {
	tokens := parseOne(t, "- a\n  - b\n\n    c\n")
	if len(tokens) == 0 || tokens[0].Type != "list" {
		t.Fatalf("got %d tokens, first not a list", len(tokens))
	}
	outer := tokens[0]
	if !outer.AttrBool("tight") {
		t.Error("outer list lost tightness to a nested sublist's blank line")
	}
	var inner *Token
	for _, item := range outer.Children {
		for _, c := range item.Children {
			if c.Type == "list" {
				inner = c
			}
		}
	}
	if inner == nil {
		t.Fatal("nested sublist not parsed as a list inside the outer item")
	}
	if inner.AttrBool("tight") {
		t.Error("inner list with blank-separated children not marked loose")
	}
}

// TestNoNestedLink checks that no link token ever ends up as a
// descendant of another link token, however the brackets nest in the
// source.
func TestNoNestedLink(t *testing.T) {
	sources := []string{
		"[a [b](/x) c](/y)\n",
		"[[inner](/i)](/o)\n",
		"[a ![img](/p) b](/y)\n",
	}
	var checkNoLink func(t *testing.T, toks []*Token, insideLink bool)
	checkNoLink = func(t *testing.T, toks []*Token, insideLink bool) {
		for _, tok := range toks {
			inside := insideLink
			if tok.Type == "link" {
				if insideLink {
					t.Errorf("link token nested inside a link")
				}
				inside = true
			}
			checkNoLink(t, tok.Children, inside)
		}
	}
	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			checkNoLink(t, parseOne(t, src), false)
		})
	}
}

// TestEscapeSafety checks the default escape-raw-HTML policy: with no
// options set, a <script> element in the input never reaches the output
// as live markup.
func TestEscapeSafety(t *testing.T) {
	sources := []string{
		"hello <script>alert(1)</script> world\n",
		"<script>\nalert(1)\n</script>\n",
		"> quoted <script>x</script>\n",
	}
	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			out, err := Convert([]byte(src))
			if err != nil {
				t.Fatalf("Convert: %v", err)
			}
			if strings.Contains(out, "<script>") {
				t.Errorf("raw <script> in output: %s", out)
			}
		})
	}
}

func TestRenderMissingMethod(t *testing.T) {
	var buf bytes.Buffer
	err := RenderHTML(&buf, []*Token{{Type: "bogus"}}, nil)
	if err == nil {
		t.Fatal("RenderHTML accepted an unregistered token type")
	}
	var re *RenderError
	if !errors.As(err, &re) {
		t.Fatalf("error = %T, want *RenderError", err)
	}
	if re.TokenType != "bogus" {
		t.Errorf("TokenType = %q, want %q", re.TokenType, "bogus")
	}
}

// TestPluginRuleReplacement checks that registering a rule under an
// existing name replaces the original instead of adding a second rule
// for the same construct.
func TestPluginRuleReplacement(t *testing.T) {
	replacement := &BlockRule{
		Name:                  "table",
		Priority:              9,
		CanInterruptParagraph: true,
		TryParse: func(s *BlockState, _ []*BlockRule) bool {
			return false
		},
	}
	plug := NewPlugin("tableless").AddBlockRule(replacement)
	opts := NewOptions(WithPlugin(plug))

	if got, want := len(opts.blockRules), len(defaultBlockRules()); got != want {
		t.Fatalf("rule count = %d, want %d (replacement must not add a rule)", got, want)
	}
	var found *BlockRule
	for _, r := range opts.blockRules {
		if r.Name == "table" {
			found = r
			break
		}
	}
	if found != replacement {
		t.Error("rule named \"table\" was not replaced by the plugin's")
	}

	// With the table rule stubbed out, pipe rows are plain paragraphs.
	out, err := Convert([]byte("| a | b |\n|---|---|\n"), WithPlugin(plug))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if strings.Contains(out, "<table>") {
		t.Errorf("replaced table rule still produced a table: %s", out)
	}
}

// TestFootnoteBodyReferenceLink checks that a footnote body is parsed
// against the document's shared reference map, so a reference-style
// link inside it resolves like anywhere else.
func TestFootnoteBodyReferenceLink(t *testing.T) {
	src := "text[^1]\n\n[^1]: see [my link][ref].\n\n[ref]: https://example.com \"Example\"\n"
	out, err := Convert([]byte(src), WithPlugin(FootnotePlugin()))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if strings.Contains(out, "[my link]") {
		t.Errorf("reference link in footnote body degraded to literal text: %s", out)
	}
	if !strings.Contains(out, "https://example.com") || !strings.Contains(out, "my link</a>") {
		t.Errorf("reference link in footnote body not resolved: %s", out)
	}
}

func TestHarmfulProtocols(t *testing.T) {
	src := []byte("[click](javascript:alert(1))\n")
	out, err := Convert(src)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if strings.Contains(out, "javascript:") {
		t.Errorf("javascript: destination survived the default guard: %s", out)
	}
	if !strings.Contains(out, "#harmful-link") {
		t.Errorf("guarded destination not replaced with #harmful-link: %s", out)
	}

	out, err = Convert(src, WithAllowHarmfulProtocols())
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(out, "javascript:") {
		t.Errorf("destination dropped despite WithAllowHarmfulProtocols: %s", out)
	}
}

func TestHardWrap(t *testing.T) {
	out, err := Convert([]byte("a\nb\n"), WithHardWrap())
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(out, "<br>") {
		t.Errorf("soft break not rendered as <br> with hard wrap: %s", out)
	}
}

func TestLinkify(t *testing.T) {
	out, err := Convert([]byte("see https://example.com/a for details\n"), WithLinkify())
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(out, `<a href="https://example.com/a">`) {
		t.Errorf("bare URL not linkified: %s", out)
	}
}
