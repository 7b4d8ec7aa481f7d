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

// Handler turns a parsed Envelope into tokens, given the enclosing
// BlockState (for its reference map, shared Env, and the ability to
// recursively block-parse nested content).
type Handler func(env *Envelope, s *markit.BlockState) ([]*markit.Token, error)

// Registry maps directive names to their Handler.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds (or replaces) the handler for name.
func (r *Registry) Register(name string, h Handler) *Registry {
	r.handlers[name] = h
	return r
}

// Lookup returns the handler registered for name.
func (r *Registry) Lookup(name string) (Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

// NotRegisteredError reports that a well-formed directive envelope named
// a directive with no registered handler.
type NotRegisteredError struct {
	Name string
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("directive: no handler registered for %q", e.Name)
}

// MalformedError reports that a directive's own content failed that
// handler's validation (e.g. an admonition type not in the known set).
type MalformedError struct {
	Name   string
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("directive %q: %s", e.Name, e.Reason)
}
