package metadata

import (
	"fmt"
	"strings"
)

// Match scans the whole document top to bottom and pairs metadata
// delimiter lines into ordered, non-overlapping blocks. Each block's
// interior is handed to the content parser. A document that ends while
// a block is still open yields a block running to the last line plus an
// UnterminatedBlock issue, so highlighting survives mid-edit states.
//
// Classification is re-evaluated per line from immediate neighbours
// only, independent of matcher state, which keeps reclassification
// after an edit local and cheap. O(lines) per pass.
func Match(doc *Document) ([]Block, []Issue) {
	return matchFrom(doc, 1, nil)
}

// matchFrom runs the matcher starting at line first, appending to any
// previously matched prefix blocks. The prefix must end before first.
func matchFrom(doc *Document, first int, prefix []Block) ([]Block, []Issue) {
	blocks := prefix
	var issues []Issue

	open := 0 // 0 while seeking an opening delimiter
	for n := first; n <= doc.LineCount(); n++ {
		line := doc.Line(n)
		if !strings.HasPrefix(line, "---") {
			continue
		}
		if classifyAt(doc, n) != ClassMetadataDelimiter {
			continue
		}
		if open == 0 {
			open = n
			continue
		}
		blocks = append(blocks, buildBlock(doc, open, n, true))
		open = 0
	}

	if open != 0 {
		blocks = append(blocks, buildBlock(doc, open, doc.LineCount(), false))
		issues = append(issues, Issue{
			Kind:    IssueUnterminatedBlock,
			Block:   len(blocks) - 1,
			Line:    open,
			Message: fmt.Sprintf("metadata block opened at line %d is never closed", open),
		})
	}

	return blocks, issues
}

// buildBlock constructs the block spanning (start, end] and parses its
// interior. For unterminated blocks the interior extends through end.
func buildBlock(doc *Document, start, end int, terminated bool) Block {
	b := Block{
		StartLine:  start,
		EndLine:    end,
		Terminated: terminated,
	}
	lastInterior := end - 1
	if !terminated {
		lastInterior = end
	}
	parseInterior(doc, &b, start+1, lastInterior)
	return b
}
