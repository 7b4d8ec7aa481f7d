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

// Options configures a Parser's behavior. The zero value is not usable;
// build one with NewOptions and functional Option values.
type Options struct {
	hardWrap     bool
	xhtml        bool
	linkify      bool
	escapeHTML   bool
	ignoreRaw    bool
	allowHarmful bool
	maxNesting   int
	blockRules   []*BlockRule
	inlineRules  []*InlineRule
	plugins      []*Plugin
}

// Option mutates an in-progress Options value.
type Option func(*Options)

// WithHardWrap renders soft line breaks as hard breaks, matching the
// "breaks" behavior common to chat-style Markdown renderers.
func WithHardWrap() Option {
	return func(o *Options) { o.hardWrap = true }
}

// WithXHTML emits self-closing void tags ("<br />" instead of "<br>").
func WithXHTML() Option {
	return func(o *Options) { o.xhtml = true }
}

// WithLinkify enables bare-URL autolinking via the linkify inline rule.
func WithLinkify() Option {
	return func(o *Options) { o.linkify = true }
}

// WithEscapeHTML controls whether raw HTML blocks/inlines are escaped
// (true, the default) or passed through verbatim (false).
func WithEscapeHTML(escape bool) Option {
	return func(o *Options) { o.escapeHTML = escape }
}

// WithIgnoreRaw drops raw HTML tokens from the render entirely instead
// of escaping or passing them through.
func WithIgnoreRaw() Option {
	return func(o *Options) { o.ignoreRaw = true }
}

// WithAllowHarmfulProtocols renders link and image destinations with
// schemes like "javascript:" as-is. By default such destinations are
// replaced with a "#harmful-link" fragment, since a Markdown link is
// the classic smuggling route for script execution in rendered output.
func WithAllowHarmfulProtocols() Option {
	return func(o *Options) { o.allowHarmful = true }
}

// WithMaxNesting bounds the work spent resolving nested inline
// constructs — in particular, how far back a closing emphasis delimiter
// scans for an opener — to guard against pathological input; 0 means
// unbounded.
func WithMaxNesting(n int) Option {
	return func(o *Options) { o.maxNesting = n }
}

// WithPlugin registers a Plugin's rules, renderer methods, and env
// initializer with the parser being built.
func WithPlugin(p *Plugin) Option {
	return func(o *Options) { o.plugins = append(o.plugins, p) }
}

// NewOptions builds an Options value from the given functional options,
// starting from the library defaults (escape HTML, finite nesting,
// CommonMark's default block/inline rule tables).
func NewOptions(opts ...Option) *Options {
	o := &Options{
		escapeHTML: true,
		maxNesting: 100,
	}
	o.blockRules = defaultBlockRules()
	o.inlineRules = defaultInlineRules()
	for _, apply := range opts {
		apply(o)
	}
	for _, p := range o.plugins {
		o.blockRules = mergeBlockRules(o.blockRules, p.BlockRules)
		o.inlineRules = mergeInlineRules(o.inlineRules, p.InlineRules)
	}
	if o.linkify {
		o.inlineRules = mergeInlineRules(o.inlineRules, []*InlineRule{linkifyRule})
	}
	return o
}

// mergeBlockRules adds extra rules to base, replacing in place any base
// rule with the same Name: registration is idempotent by rule name, so
// a plugin can override a built-in (or an earlier plugin's) rule
// without producing two rules that both claim the same construct.
func mergeBlockRules(base, extra []*BlockRule) []*BlockRule {
	out := append([]*BlockRule(nil), base...)
	for _, r := range extra {
		replaced := false
		for i, b := range out {
			if b.Name == r.Name {
				out[i] = r
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, r)
		}
	}
	return out
}

// mergeInlineRules is mergeBlockRules for inline rules.
func mergeInlineRules(base, extra []*InlineRule) []*InlineRule {
	out := append([]*InlineRule(nil), base...)
	for _, r := range extra {
		replaced := false
		for i, b := range out {
			if b.Name == r.Name {
				out[i] = r
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, r)
		}
	}
	return out
}
