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

// FatalParseError wraps a programmer-error condition raised during
// parsing (an unregistered directive handler, for instance) that a
// BlockRule's bool-returning TryParse can't express as a normal return
// value. Parser.Parse recovers it and returns it as an error rather
// than letting it escape to the caller.
type FatalParseError struct {
	Err error
}

func (e *FatalParseError) Error() string { return e.Err.Error() }
func (e *FatalParseError) Unwrap() error { return e.Err }

// Fatal raises a FatalParseError, to be recovered by Parser.Parse. It
// is the escape hatch a block rule uses to report a condition the spec
// calls fatal (as opposed to one of CommonMark's "degrade to literal
// text" cases, which a rule reports simply by returning false).
func Fatal(err error) {
	panic(&FatalParseError{Err: err})
}

// Diagnostic is a non-fatal issue encountered while parsing: a
// directive that degraded to a literal fallback block, for instance.
// Diagnostics never stop a parse; they are informational only.
type Diagnostic struct {
	Code    string
	Message string
}
