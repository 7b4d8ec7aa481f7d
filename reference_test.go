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
	"strings"
	"testing"
)

func TestNormalizeLabelIdempotent(t *testing.T) {
	labels := []string{
		"foo",
		"FOO",
		"  Foo\t Bar  ",
		"straße",
		"ΤΕΛΟΣ",
		"a\nb",
		"",
	}
	for _, label := range labels {
		once := NormalizeLabel(label)
		twice := NormalizeLabel(once)
		if once != twice {
			t.Errorf("NormalizeLabel(%q): %q != re-normalized %q", label, once, twice)
		}
	}
}

func TestNormalizeLabelMatching(t *testing.T) {
	tests := []struct {
		a, b string
	}{
		{"foo", "FOO"},
		{"Foo  Bar", "foo bar"},
		{"foo\tbar", " foo bar "},
		{"STRASSE", "straße"},
	}
	for _, tt := range tests {
		if NormalizeLabel(tt.a) != NormalizeLabel(tt.b) {
			t.Errorf("NormalizeLabel(%q) = %q, NormalizeLabel(%q) = %q; want equal",
				tt.a, NormalizeLabel(tt.a), tt.b, NormalizeLabel(tt.b))
		}
	}
}

func TestReferenceMapFirstDefinitionWins(t *testing.T) {
	var m ReferenceMap
	if !m.Define("foo", "/first", "t1") {
		t.Fatal("first Define returned false")
	}
	if m.Define("FOO", "/second", "t2") {
		t.Error("second Define under an equivalent label returned true")
	}
	ref, ok := m.Lookup("Foo")
	if !ok {
		t.Fatal("Lookup failed after Define")
	}
	if ref.URL != "/first" || ref.Title != "t1" {
		t.Errorf("Lookup = %+v, want the first definition", ref)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}
}

// TestReferenceDefinitionEaten checks that a link reference definition
// never produces a visible block of its own.
func TestReferenceDefinitionEaten(t *testing.T) {
	out, err := Convert([]byte("[foo][bar]\n\n[bar]: /url \"t\"\n"))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if strings.Contains(out, "bar]:") {
		t.Errorf("reference definition leaked into output: %s", out)
	}
	if !strings.Contains(out, `<a href="/url" title="t">foo</a>`) {
		t.Errorf("reference link not resolved: %s", out)
	}
}
