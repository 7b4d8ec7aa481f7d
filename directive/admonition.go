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

	"github.com/gomarkit/markit"
)

// admonitionKinds is the closed set of admonition names the handler
// accepts; anything else is DirectiveMalformed.
var admonitionKinds = map[string]bool{
	"attention": true, "caution": true, "danger": true, "error": true,
	"hint": true, "important": true, "note": true, "tip": true, "warning": true,
}

// Admonition builds the handler for the built-in admonition directives
// (note, warning, tip, and the rest of admonitionKinds). Its content is
// block-parsed against the enclosing state's reference map, so link
// definitions inside an admonition still resolve against, and
// contribute to, the rest of the document.
func Admonition(name string, env *Envelope, s *markit.BlockState) ([]*markit.Token, error) {
	if !admonitionKinds[name] {
		return nil, &MalformedError{Name: name, Reason: fmt.Sprintf("unknown admonition kind %q", name)}
	}

	child := s.ChildState(env.Content)
	child.Process(markit.DefaultBlockRules())

	tok := markit.NewContainer("admonition", child.Tokens...)
	tok.SetAttr("kind", name)
	title := env.Title
	if title == "" {
		title = name
	}
	tok.SetAttr("title", title)
	return []*markit.Token{tok}, nil
}

// RegisterAdmonitions registers the handler for every admonition kind
// in admonitionKinds.
func RegisterAdmonitions(reg *Registry) {
	for name := range admonitionKinds {
		name := name
		reg.Register(name, func(env *Envelope, s *markit.BlockState) ([]*markit.Token, error) {
			return Admonition(name, env, s)
		})
	}
}
