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

// Plugin bundles the extension points a third-party package can
// register with a Parser: additional block and inline rules, renderer
// methods for the token types it introduces, and a function to seed the
// shared Env before parsing starts. A Plugin is identified by Name; a
// Parser built with two plugins sharing a name is a configuration error
// the caller is expected to catch during development, not at runtime.
type Plugin struct {
	Name        string
	BlockRules  []*BlockRule
	InlineRules []*InlineRule
	Renderers   map[string]RenderFunc
	InitEnv     func(env map[string]any)
	// PostProcess runs once after block parsing and inline expansion
	// complete, with the document's top-level tokens and the root
	// BlockState (for its Env, and for ChildState when deferred content
	// must be sub-parsed against the document's shared reference map).
	// A plugin that needs to collect document-wide state while scanning
	// (footnote definitions, in any order relative to their references)
	// and emit a single aggregate token (a rendered footnote list)
	// implements this instead of a regular block/inline rule.
	PostProcess func(tokens []*Token, state *BlockState) []*Token
}

// NewPlugin creates a named, empty Plugin ready to have rules and
// renderers attached.
func NewPlugin(name string) *Plugin {
	return &Plugin{Name: name, Renderers: make(map[string]RenderFunc)}
}

// AddBlockRule appends a block rule to the plugin.
func (p *Plugin) AddBlockRule(r *BlockRule) *Plugin {
	p.BlockRules = append(p.BlockRules, r)
	return p
}

// AddInlineRule appends an inline rule to the plugin.
func (p *Plugin) AddInlineRule(r *InlineRule) *Plugin {
	p.InlineRules = append(p.InlineRules, r)
	return p
}

// AddRenderer registers the HTML rendering function for a token Type
// the plugin introduces.
func (p *Plugin) AddRenderer(tokenType string, fn RenderFunc) *Plugin {
	p.Renderers[tokenType] = fn
	return p
}
