// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package extract

import (
	"strings"

	"github.com/poiesic/pagevault/notion"
)

// renderFunc renders one block into a single text line.
// Returning "" drops the block from the output.
type renderFunc func(*notion.Block) string

func plain(b *notion.Block) string {
	return b.PlainText()
}

func prefixed(prefix string) renderFunc {
	return func(b *notion.Block) string {
		text := b.PlainText()
		if text == "" {
			return ""
		}
		return prefix + text
	}
}

func todo(b *notion.Block) string {
	text := b.PlainText()
	if text == "" {
		return ""
	}
	if b.Checked {
		return "[x] " + text
	}
	return "[ ] " + text
}

func fencedCode(b *notion.Block) string {
	text := b.PlainText()
	if text == "" {
		return ""
	}
	return "```" + b.Language + "\n" + text + "\n```"
}

// blockRules maps each text-bearing block type to its rendering rule.
// Types absent from the table (dividers, images, child-page references,
// synced blocks, anything the API adds later) are skipped silently.
var blockRules = map[string]renderFunc{
	"paragraph":          plain,
	"heading_1":          prefixed("# "),
	"heading_2":          prefixed("## "),
	"heading_3":          prefixed("### "),
	"bulleted_list_item": prefixed("- "),
	"numbered_list_item": prefixed("- "),
	"to_do":              todo,
	"quote":              prefixed("> "),
	"callout":            plain,
	"toggle":             plain,
	"code":               fencedCode,
}

// Text walks the blocks in document order and concatenates the textual
// content of every text-bearing block, one line per block, indented by
// nesting depth. Blocks with no extractable text contribute nothing; a
// sequence of purely structural blocks yields the empty string, which
// is valid output, not an error.
func Text(blocks []*notion.Block) string {
	lines := make([]string, 0, len(blocks))

	for _, block := range blocks {
		if block == nil {
			continue
		}

		render, ok := blockRules[block.Type]
		if !ok {
			continue
		}

		line := render(block)
		if line == "" {
			continue
		}

		if block.Depth > 0 {
			line = strings.Repeat("  ", block.Depth) + line
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}
