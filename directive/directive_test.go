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

package directive_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomarkit/markit"
	"github.com/gomarkit/markit/directive"
)

func convert(t *testing.T, reg *directive.Registry, src string) (string, error) {
	t.Helper()
	p := markit.NewParser(markit.WithPlugin(directive.Plugin(reg)))
	tokens, err := p.Parse([]byte(src))
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	require.NoError(t, p.Render(&buf, tokens))
	return buf.String(), nil
}

func TestParseAtRST(t *testing.T) {
	env, consumed, ok := directive.ParseAt([]string{
		".. note:: A title",
		"   :class: highlight",
		"",
		"   Body line one.",
		"   Body line two.",
		"",
		"Not part of it.",
	})
	require.True(t, ok)
	assert.Equal(t, "note", env.Name)
	assert.Equal(t, "A title", env.Title)
	assert.Equal(t, "highlight", env.Options["class"])
	assert.Equal(t, "Body line one.\nBody line two.", env.Content)
	assert.Equal(t, 6, consumed)
}

func TestParseAtFenced(t *testing.T) {
	env, consumed, ok := directive.ParseAt([]string{
		"```{warning} Careful",
		"class: inline",
		"Body text.",
		"```",
		"after",
	})
	require.True(t, ok)
	assert.Equal(t, "warning", env.Name)
	assert.Equal(t, "Careful", env.Title)
	assert.Equal(t, "inline", env.Options["class"])
	assert.Equal(t, "Body text.", env.Content)
	assert.Equal(t, 4, consumed)
}

func TestParseAtNoMatch(t *testing.T) {
	_, _, ok := directive.ParseAt([]string{"just a paragraph"})
	assert.False(t, ok)
}

func TestAdmonitionRenders(t *testing.T) {
	reg := directive.NewRegistry()
	directive.RegisterAdmonitions(reg)
	html, err := convert(t, reg, ".. warning:: Careful\n\n   Body text.\n")
	require.NoError(t, err)
	assert.Contains(t, html, `class="admonition admonition-warning"`)
	assert.Contains(t, html, `class="admonition-title"`)
	assert.Contains(t, html, "Careful")
	assert.Contains(t, html, "<p>Body text.</p>")
}

func TestAdmonitionUnknownKindDegrades(t *testing.T) {
	reg := directive.NewRegistry()
	directive.RegisterAdmonitions(reg)
	html, err := convert(t, reg, ".. note:: title\n\n   body\n")
	require.NoError(t, err)
	assert.Contains(t, html, "admonition-note")

	reg2 := directive.NewRegistry()
	reg2.Register("quux", func(env *directive.Envelope, s *markit.BlockState) ([]*markit.Token, error) {
		return directive.Admonition("quux", env, s)
	})
	html2, err := convert(t, reg2, ".. quux:: title\n\n   body\n")
	require.NoError(t, err)
	assert.Contains(t, html2, `directive "quux" failed`)
	assert.Contains(t, html2, "<pre><code>")
}

func TestUnregisteredDirectiveIsFatal(t *testing.T) {
	reg := directive.NewRegistry()
	_, err := convert(t, reg, ".. mystery:: arg\n\n   body\n")
	require.Error(t, err)
	var notRegistered *directive.NotRegisteredError
	assert.True(t, errors.As(err, &notRegistered))
	assert.Equal(t, "mystery", notRegistered.Name)
}

func TestTableOfContents(t *testing.T) {
	reg := directive.NewRegistry()
	reg.Register("toc", directive.TableOfContents)
	src := "```{toc}\n```\n\n# One\n\n## Sub\n\n# Two\n"
	html, err := convert(t, reg, src)
	require.NoError(t, err)
	assert.Contains(t, html, `class="table-of-contents"`)
	assert.Contains(t, html, `href="#one"`)
	assert.Contains(t, html, `href="#sub"`)
	assert.Contains(t, html, `href="#two"`)
}

func TestTableOfContentsMaxLevel(t *testing.T) {
	reg := directive.NewRegistry()
	reg.Register("toc", directive.TableOfContents)
	src := "```{toc}\nmax-level: 1\n```\n\n# One\n\n## Sub\n"
	html, err := convert(t, reg, src)
	require.NoError(t, err)
	assert.Contains(t, html, `href="#one"`)
	assert.NotContains(t, html, `href="#sub"`)
}

func TestTableOfContentsEmptyWhenNoHeadings(t *testing.T) {
	reg := directive.NewRegistry()
	reg.Register("toc", directive.TableOfContents)
	html, err := convert(t, reg, "```{toc}\n```\n\nNo headings here.\n")
	require.NoError(t, err)
	assert.Contains(t, html, `class="table-of-contents"`)
	assert.Contains(t, html, "<ul></ul>")
}

func TestIncludeResolvesAndParses(t *testing.T) {
	resolver := func(path, baseDir string) (string, error) {
		assert.Equal(t, "docs", baseDir)
		if path == "child.md" {
			return "# Included\n\nBody.\n", nil
		}
		return "", errors.New("not found")
	}
	reg := directive.RegisterBuiltins(directive.NewRegistry(), resolver, "docs")
	html, err := convert(t, reg, ".. include:: child.md\n")
	require.NoError(t, err)
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "Included")
	assert.Contains(t, html, "<p>Body.</p>")
}

func TestIncludeMissingFileDegrades(t *testing.T) {
	resolver := func(path, baseDir string) (string, error) {
		return "", errors.New("no such file")
	}
	reg := directive.RegisterBuiltins(directive.NewRegistry(), resolver, "docs")
	html, err := convert(t, reg, ".. include:: missing.md\n")
	require.NoError(t, err)
	assert.Contains(t, html, `directive "include" failed`)
}

func TestIncludeNoResolverConfigured(t *testing.T) {
	reg := directive.RegisterBuiltins(directive.NewRegistry(), nil, "")
	html, err := convert(t, reg, ".. include:: anything.md\n")
	require.NoError(t, err)
	assert.Contains(t, html, `directive "include" failed`)
	assert.Contains(t, html, "no resolver configured")
}

func TestDegradeRecordsDiagnostic(t *testing.T) {
	reg := directive.RegisterBuiltins(directive.NewRegistry(), nil, "")
	p := markit.NewParser(markit.WithPlugin(directive.Plugin(reg)))
	doc, err := p.ParseDocument([]byte(".. include:: anything.md\n"))
	require.NoError(t, err)
	require.Len(t, doc.Diagnostics, 1)
	assert.Equal(t, "directive", doc.Diagnostics[0].Code)
	assert.Contains(t, doc.Diagnostics[0].Message, "no resolver configured")
}

func TestRegisterBuiltinsCoversAllAdmonitions(t *testing.T) {
	reg := directive.RegisterBuiltins(directive.NewRegistry(), nil, "")
	for _, name := range []string{
		"attention", "caution", "danger", "error", "hint",
		"important", "note", "tip", "warning",
	} {
		_, ok := reg.Lookup(name)
		assert.True(t, ok, "expected %q to be registered", name)
	}
	_, ok := reg.Lookup("toc")
	assert.True(t, ok)
	_, ok = reg.Lookup("include")
	assert.True(t, ok)
}

func TestMalformedErrorMessage(t *testing.T) {
	err := &directive.MalformedError{Name: "toc", Reason: "bad option"}
	assert.True(t, strings.Contains(err.Error(), "toc"))
	assert.True(t, strings.Contains(err.Error(), "bad option"))
}
