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

package markit_test

import (
	"fmt"
	"os"

	"github.com/gomarkit/markit"
)

func Example() {
	// Convert Markdown straight to HTML.
	out, err := markit.Convert([]byte("Hello, **World**!\n"))
	if err != nil {
		panic(err)
	}
	fmt.Print(out)
	// Output:
	// <p>Hello, <strong>World</strong>!</p>
}

func ExampleParser_Parse() {
	input := "Hello, [World][]!\n" +
		"\n" +
		"[World]: https://www.example.com/\n"

	// Parse the document into a token tree; the link reference
	// definition is folded into the parse's reference map along the way.
	p := markit.NewParser()
	tokens, err := p.Parse([]byte(input))
	if err != nil {
		// Not expecting an error from plain Markdown.
		panic(err)
	}

	// Render the tree as HTML.
	if err := p.Render(os.Stdout, tokens); err != nil {
		panic(err)
	}
	// Output:
	// <p>Hello, <a href="https://www.example.com/">World</a>!</p>
}

func ExampleWithHardWrap() {
	out, err := markit.Convert([]byte("roses are red\nviolets are blue\n"), markit.WithHardWrap())
	if err != nil {
		panic(err)
	}
	fmt.Print(out)
	// Output:
	// <p>roses are red<br>
	// violets are blue</p>
}
