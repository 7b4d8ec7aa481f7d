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

import "regexp"

var thematicBreakRE = regexp.MustCompile(`^ {0,3}((?:\*[ \t]*){3,}|(?:-[ \t]*){3,}|(?:_[ \t]*){3,})$`)

// thematicBreakRule recognizes a line of three or more matching "*",
// "-", or "_" characters, optionally space-separated.
var thematicBreakRule = &BlockRule{
	Name:                  "thematic_break",
	Priority:              3,
	CanInterruptParagraph: true,
	TryParse: func(s *BlockState, _ []*BlockRule) bool {
		line, ok := s.PeekLine()
		if !ok {
			return false
		}
		if _, _, ok := matchAt(thematicBreakRE, line); !ok {
			return false
		}
		s.Append(&Token{Type: "thematic_break"})
		s.Advance(1)
		return true
	},
}
