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

package directive

import (
	"fmt"
	"strings"

	"github.com/gomarkit/markit"
)

// Plugin builds a markit.Plugin that recognizes directive envelopes
// (either surface syntax) and dispatches them through reg.
//
// A well-formed envelope naming a directive with no registered handler
// is a fatal condition: the rule calls markit.Fatal, which unwinds to
// Parser.Parse and comes back out as an error. A handler that returns
// an error (MalformedError, or anything else — a failed Include
// resolution, for instance) degrades instead: the rule emits a
// "directive_error" block carrying the original source back out
// verbatim plus the error message, rather than losing the input.
func Plugin(reg *Registry) *markit.Plugin {
	p := markit.NewPlugin("directive")
	p.AddBlockRule(&markit.BlockRule{
		Name: "directive",
		// Runs ahead of the fenced-code-block rule: the fenced directive
		// form starts with the same triple-backtick fence, and must be
		// recognized before the generic fenced-code matcher claims it.
		Priority:              -1,
		CanInterruptParagraph: true,
		TryParse: func(s *markit.BlockState, _ []*markit.BlockRule) bool {
			return tryParseDirective(s, reg)
		},
	})
	p.AddRenderer("directive_error", renderDirectiveError)
	p.AddRenderer("toc", renderTOC)
	p.AddRenderer("admonition", renderAdmonition)
	p.PostProcess = resolveTOC
	return p
}

func renderAdmonition(w *markit.RenderBuffer, tok *markit.Token, render func(*markit.RenderBuffer, *markit.Token)) {
	kind := tok.AttrString("kind")
	w.WriteString(`<div class="admonition admonition-`)
	w.WriteEscaped(kind)
	w.WriteString(`">`)
	w.WriteString(`<p class="admonition-title">`)
	w.WriteEscaped(tok.AttrString("title"))
	w.WriteString("</p>\n")
	for _, c := range tok.Children {
		render(w, c)
	}
	w.WriteString("</div>\n")
}

func renderTOC(w *markit.RenderBuffer, tok *markit.Token, render func(*markit.RenderBuffer, *markit.Token)) {
	w.WriteString(`<nav class="table-of-contents">`)
	if title := tok.AttrString("title"); title != "" {
		w.WriteString("<p>")
		w.WriteEscaped(title)
		w.WriteString("</p>")
	}
	for _, c := range tok.Children {
		render(w, c)
	}
	w.WriteString("</nav>\n")
}

func tryParseDirective(s *markit.BlockState, reg *Registry) bool {
	lines := s.RemainingLines()
	env, consumed, ok := ParseAt(lines)
	if !ok {
		return false
	}

	handler, ok := reg.Lookup(env.Name)
	if !ok {
		markit.Fatal(&NotRegisteredError{Name: env.Name})
	}

	toks, err := handler(env, s)
	if err != nil {
		s.Diagnose("directive", err.Error())
		s.Append(errorToken(env, lines[:consumed], err))
		s.Advance(consumed)
		return true
	}
	for _, t := range toks {
		s.Append(t)
	}
	s.Advance(consumed)
	return true
}

// errorToken wraps a directive's original source and the error its
// handler raised into a token the renderer turns into an HTML comment
// plus the escaped literal source, so a malformed directive never
// silently disappears from the rendered output.
func errorToken(env *Envelope, rawLines []string, err error) *markit.Token {
	tok := markit.NewToken("directive_error")
	tok.Text = strings.Join(rawLines, "\n")
	tok.SetAttr("directive", env.Name)
	tok.SetAttr("error", err.Error())
	return tok
}

func renderDirectiveError(w *markit.RenderBuffer, tok *markit.Token, _ func(*markit.RenderBuffer, *markit.Token)) {
	fmt.Fprintf(w, "<!-- directive %q failed: %s -->\n", tok.AttrString("directive"), tok.AttrString("error"))
	w.WriteString("<pre><code>")
	w.WriteEscaped(tok.Text)
	w.WriteString("\n</code></pre>\n")
}
