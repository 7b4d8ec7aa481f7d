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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/gomarkit/markit/internal/normhtml"
	"github.com/gomarkit/markit/internal/testcorpus"
)

func runCorpus(t *testing.T, examples []testcorpus.Example, opts ...Option) {
	t.Helper()
	p := NewParser(opts...)
	for _, ex := range examples {
		t.Run(ex.Name, func(t *testing.T) {
			tokens, err := p.Parse([]byte(ex.Markdown))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			var buf bytes.Buffer
			if err := p.Render(&buf, tokens); err != nil {
				t.Fatalf("Render: %v", err)
			}
			got := string(normhtml.NormalizeHTML(buf.Bytes()))
			want := string(normhtml.NormalizeHTML([]byte(ex.HTML)))
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Input:\n%s\nOutput (-want +got):\n%s", ex.Markdown, diff)
			}
		})
	}
}

// TestCommonMarkCorpus exercises the core block and inline rules. Raw
// HTML is left unescaped here to match CommonMark's own passthrough
// default for raw blocks, rather than this library's safer-by-default
// WithEscapeHTML(true).
func TestCommonMarkCorpus(t *testing.T) {
	runCorpus(t, testcorpus.CommonMark, WithEscapeHTML(false))
}

func TestGFMCorpus(t *testing.T) {
	runCorpus(t, testcorpus.GFM, WithEscapeHTML(false))
}

func TestExtensionsCorpus(t *testing.T) {
	runCorpus(t, testcorpus.Extensions,
		WithEscapeHTML(false),
		WithPlugin(FootnotePlugin()),
		WithPlugin(DefinitionListPlugin()),
		WithPlugin(AbbrPlugin()),
		WithPlugin(MathPlugin()),
	)
}
