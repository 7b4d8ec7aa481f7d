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
	"regexp"
	"strings"
)

var tableDelimCellRE = regexp.MustCompile(`^:?-+:?$`)

// tableRule implements the GFM table extension: a header row, a
// delimiter row of "-"/":" cells that fixes the column count and
// alignment, and zero or more body rows. Every row's child count is
// forced to the header's column count: short rows are padded with
// empty cells, long rows are truncated.
var tableRule = &BlockRule{
	Name:                  "table",
	Priority:              9,
	CanInterruptParagraph: true,
	TryParse: func(s *BlockState, _ []*BlockRule) bool {
		header, ok := s.PeekLine()
		if !ok || !strings.Contains(header, "|") {
			return false
		}
		delimLine, ok := s.PeekLineAt(1)
		if !ok {
			return false
		}
		aligns, ok := parseTableDelimiterRow(delimLine)
		if !ok {
			return false
		}
		headerCells := splitTableRow(header)
		if len(aligns) != len(headerCells) {
			return false
		}

		headerRow := buildTableRow(headerCells, aligns, true)
		rows := []*Token{headerRow}
		consumed := 2
		for {
			l, ok := s.PeekLineAt(consumed)
			if !ok || isBlankLine(l) || !strings.Contains(l, "|") {
				break
			}
			cells := splitTableRow(l)
			rows = append(rows, buildTableRow(cells, aligns, false))
			consumed++
		}

		tok := &Token{Type: "table", Children: rows}
		s.Append(tok)
		s.Advance(consumed)
		return true
	},
}

// parseTableDelimiterRow parses "| --- | :--: | ---: |" into a
// per-column alignment ("left", "center", "right", or "" for
// unspecified), or reports false if the line isn't a valid delimiter
// row.
func parseTableDelimiterRow(line string) ([]string, bool) {
	cells := splitTableRow(line)
	if len(cells) == 0 {
		return nil, false
	}
	aligns := make([]string, len(cells))
	for i, c := range cells {
		c = strings.TrimSpace(c)
		if !tableDelimCellRE.MatchString(c) {
			return nil, false
		}
		left := strings.HasPrefix(c, ":")
		right := strings.HasSuffix(c, ":")
		switch {
		case left && right:
			aligns[i] = "center"
		case right:
			aligns[i] = "right"
		case left:
			aligns[i] = "left"
		default:
			aligns[i] = ""
		}
	}
	return aligns, true
}

// splitTableRow splits a table row on unescaped pipes, trimming a
// leading/trailing empty cell produced by optional outer pipes.
func splitTableRow(line string) []string {
	line = strings.TrimSpace(line)
	var cells []string
	var cur strings.Builder
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\\':
			if i+1 < len(line) {
				cur.WriteByte(line[i])
				cur.WriteByte(line[i+1])
				i++
				continue
			}
			cur.WriteByte(line[i])
		case '|':
			cells = append(cells, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(line[i])
		}
	}
	cells = append(cells, cur.String())
	if len(cells) > 1 && strings.TrimSpace(cells[0]) == "" {
		cells = cells[1:]
	}
	if len(cells) > 1 && strings.TrimSpace(cells[len(cells)-1]) == "" {
		cells = cells[:len(cells)-1]
	}
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}

func buildTableRow(cells []string, aligns []string, isHeader bool) *Token {
	cellType := "td"
	if isHeader {
		cellType = "th"
	}
	children := make([]*Token, len(aligns))
	for i := range aligns {
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		cell := &Token{Type: cellType, Text: text}
		if aligns[i] != "" {
			cell.SetAttr("align", aligns[i])
		}
		children[i] = cell
	}
	return &Token{Type: "tr", Children: children}
}
