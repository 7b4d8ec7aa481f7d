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
	"gitlab.com/golang-commonmark/mdurl"
)

// LinkReference is a single link reference definition: a label mapped to
// a destination and optional title.
type LinkReference struct {
	URL   string
	Title string
}

// ReferenceMap is the document-scoped mapping from normalized link
// labels to their destination/title, shared by the block and inline
// phases of a single parse call.
// The first definition for a given label wins; later ones are ignored.
type ReferenceMap struct {
	defs map[string]LinkReference
}

// NormalizeLabel case-folds and collapses whitespace in a reference
// label, per CommonMark's matching rule. Normalization is idempotent:
// NormalizeLabel(NormalizeLabel(s)) == NormalizeLabel(s).
func NormalizeLabel(label string) string {
	return foldCase(collapseWhitespace(label))
}

// Define inserts label -> (url, title) if and only if label (after
// normalization) has no existing definition. It reports whether the
// definition was inserted.
func (m *ReferenceMap) Define(label, url, title string) bool {
	if m.defs == nil {
		m.defs = make(map[string]LinkReference)
	}
	key := NormalizeLabel(label)
	if _, exists := m.defs[key]; exists {
		return false
	}
	m.defs[key] = LinkReference{
		URL:   url,
		Title: title,
	}
	return true
}

// Lookup returns the definition for label, normalizing it first.
func (m *ReferenceMap) Lookup(label string) (LinkReference, bool) {
	if m.defs == nil {
		return LinkReference{}, false
	}
	ref, ok := m.defs[NormalizeLabel(label)]
	return ref, ok
}

// Len returns the number of distinct reference definitions.
func (m *ReferenceMap) Len() int {
	return len(m.defs)
}

// EncodeDestination percent-encodes a link/image destination for
// output, using the markdown-it-derived mdurl encoder so the escaping
// matches the set of characters CommonMark implementations agree on
// (rather than net/url's, which is stricter about path characters that
// are legal and common in Markdown link targets).
func EncodeDestination(dest string) string {
	return mdurl.Encode(dest)
}
