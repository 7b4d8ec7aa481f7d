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

import "strings"

// stripTaskMarker implements the GFM task-list extension: if a list
// item's first paragraph begins with "[ ] ", "[x] ", or "[X] ", that
// marker is removed from the text and the item is flagged as a task
// (with its checked state), to be rendered as a disabled checkbox
// ahead of the item's content.
func stripTaskMarker(item *Token) {
	if len(item.Children) == 0 {
		return
	}
	first := item.Children[0]
	if first.Type != "paragraph" {
		return
	}
	text := first.Text
	checked, rest, ok := taskPrefix(text)
	if !ok {
		return
	}
	first.Text = rest
	item.SetAttr("task", true)
	item.SetAttr("checked", checked)
}

func taskPrefix(s string) (checked bool, rest string, ok bool) {
	switch {
	case strings.HasPrefix(s, "[ ] "):
		return false, s[4:], true
	case strings.HasPrefix(s, "[x] "), strings.HasPrefix(s, "[X] "):
		return true, s[4:], true
	default:
		return false, "", false
	}
}
