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

// Package directive parses a generic "named block with options and
// nested content" envelope, in either of two surface syntaxes, and
// dispatches it to a registered Handler. It plugs into a markit.Parser
// through Plugin.
package directive

import (
	"regexp"
	"strings"
)

var (
	rstStartRE    = regexp.MustCompile(`^\.\. ([A-Za-z][A-Za-z0-9_-]*)::[ \t]*(.*)$`)
	fencedStartRE = regexp.MustCompile("^```\\{([A-Za-z][A-Za-z0-9_-]*)\\}[ \t]*(.*)$")
	optionLineRE  = regexp.MustCompile(`^:([A-Za-z][A-Za-z0-9_-]*):[ \t]*(.*)$`)

	// The fenced form also accepts options without the RST-style leading
	// colon ("max-level: 2"), the looser convention fenced-directive
	// documents in the wild actually use.
	bareOptionRE = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_-]*):[ \t]+(.*)$`)
)

// Envelope is the canonical parsed form of one directive, regardless of
// which surface syntax produced it.
type Envelope struct {
	Name    string
	Title   string
	Options map[string]string
	Content string
}

// ParseAt attempts to parse a directive envelope starting at lines[0],
// trying the RST form (".. name:: argument") then the fenced form
// ("```{name} argument"). It reports the number of lines consumed on
// success.
func ParseAt(lines []string) (*Envelope, int, bool) {
	if len(lines) == 0 {
		return nil, 0, false
	}
	if m := rstStartRE.FindStringSubmatch(lines[0]); m != nil {
		return parseRST(m[1], m[2], lines)
	}
	if m := fencedStartRE.FindStringSubmatch(lines[0]); m != nil {
		return parseFenced(m[1], m[2], lines)
	}
	return nil, 0, false
}

// parseRST parses option and content lines indented at least 3 columns
// under a ".. name::" start line, RST's own indentation convention.
func parseRST(name, title string, lines []string) (*Envelope, int, bool) {
	options := map[string]string{}
	i := 1
	for i < len(lines) {
		indent, trimmed := splitIndent(lines[i])
		if indent < 3 || trimmed == "" {
			break
		}
		m := optionLineRE.FindStringSubmatch(trimmed)
		if m == nil {
			break
		}
		options[m[1]] = strings.TrimSpace(m[2])
		i++
	}
	var body []string
	for i < len(lines) {
		if strings.TrimSpace(lines[i]) == "" {
			body = append(body, "")
			i++
			continue
		}
		indent, _ := splitIndent(lines[i])
		if indent < 3 {
			break
		}
		body = append(body, lines[i][3:])
		i++
	}
	for len(body) > 0 && body[0] == "" {
		body = body[1:]
	}
	for len(body) > 0 && body[len(body)-1] == "" {
		body = body[:len(body)-1]
	}
	return &Envelope{Name: name, Title: strings.TrimSpace(title), Options: options, Content: strings.Join(body, "\n")}, i, true
}

// parseFenced parses "key: value" option lines followed by a fenced
// content region, closed by a bare "```" line.
func parseFenced(name, title string, lines []string) (*Envelope, int, bool) {
	options := map[string]string{}
	i := 1
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		m := optionLineRE.FindStringSubmatch(trimmed)
		if m == nil {
			m = bareOptionRE.FindStringSubmatch(trimmed)
		}
		if m == nil {
			break
		}
		options[m[1]] = strings.TrimSpace(m[2])
		i++
	}
	var body []string
	for i < len(lines) {
		if strings.TrimSpace(lines[i]) == "```" {
			return &Envelope{Name: name, Title: strings.TrimSpace(title), Options: options, Content: strings.Join(body, "\n")}, i + 1, true
		}
		body = append(body, lines[i])
		i++
	}
	return nil, 0, false
}

func splitIndent(line string) (int, string) {
	trimmed := strings.TrimLeft(line, " ")
	return len(line) - len(trimmed), trimmed
}
