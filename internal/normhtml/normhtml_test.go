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

package normhtml

import "testing"

func TestNormalizeHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapse inner runs", "<p>a  \t b</p>", "<p>a b</p>"},
		{"collapse across newline", "<p>a  \t\nb</p>", "<p>a b</p>"},
		{"double space", "<p>a  b</p>", "<p>a b</p>"},
		{"leading space before block", " <p>a  b</p>", "<p>a b</p>"},
		{"trailing space after block", "<p>a  b</p> ", "<p>a b</p>"},
		{"surrounding whitespace", "\n\t<p>\n\t\ta  b\t\t</p>\n\t", "<p>a b</p>"},
		{"inline tag keeps trailing space", "<i>a  b</i> ", "<i>a b</i> "},
		{"self-closing void tag", "<br />", "<br>"},
		{"attribute order and case", `<a title="bar" HREF="foo">x</a>`, `<a href="foo" title="bar">x</a>`},
		{"entity spelling", "&forall;&amp;&gt;&lt;&quot;", "∀&amp;&gt;&lt;&quot;"},
		{"pre content untouched", "<pre>a  \n b</pre>", "<pre>a  \n b</pre>"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := NormalizeHTML([]byte(test.in)); string(got) != test.want {
				t.Errorf("NormalizeHTML(%q) = %q; want %q", test.in, got, test.want)
			}
		})
	}
}
