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
	"errors"
	"fmt"
)

var errUnregisteredRenderMethod = errors.New("no renderer registered for token type")

// RenderFunc renders one token to w, using render to recurse into its
// children. A RenderFunc must not retain tok or render past the call.
type RenderFunc func(w *RenderBuffer, tok *Token, render func(*RenderBuffer, *Token))

// Renderer dispatches tokens by Type to a registered RenderFunc. The
// zero value has no methods registered; use NewHTMLRenderer for a
// usable instance, or register every token type a parser's rule set can
// produce.
type Renderer struct {
	methods map[string]RenderFunc
	opts    *Options
}

// NewRenderer creates a Renderer with no methods registered.
func NewRenderer(opts *Options) *Renderer {
	return &Renderer{methods: make(map[string]RenderFunc), opts: opts}
}

// On registers fn as the render method for the given token Type,
// overwriting any previous registration. It returns the receiver so
// registrations can be chained.
func (r *Renderer) On(tokenType string, fn RenderFunc) *Renderer {
	r.methods[tokenType] = fn
	return r
}

// missingMethodPanic is thrown by renderOne when a token's Type has no
// registered render method, and recovered at the top of RenderHTML into
// a returned *RenderError: a missing method is a programmer error, not
// a recoverable input problem, but a library embedded in a larger
// service must return rather than crash its caller, so the panic never
// crosses the package boundary.
type missingMethodPanic struct{ tokenType string }

// renderOne dispatches a single token to its registered method.
func (r *Renderer) renderOne(buf *RenderBuffer, tok *Token) {
	fn, ok := r.methods[tok.Type]
	if !ok {
		panic(missingMethodPanic{tok.Type})
	}
	fn(buf, tok, r.renderOne)
}

// RenderError reports a failure encountered while rendering a specific
// token, identified by its Type for debuggability.
type RenderError struct {
	TokenType string
	Err       error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.TokenType, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
