package metadata

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// summaryBudget caps the collapsed-summary length in bytes.
const summaryBudget = 60

// FoldRanges derives one collapsible range per block: from the end of
// the opening delimiter line to the start of the closing one (or the
// end of the document for unterminated blocks). Folding is a pure
// presentation concern owned by the host; no text is ever changed.
func FoldRanges(doc *Document, blocks []Block) []FoldRange {
	out := make([]FoldRange, 0, len(blocks))
	for _, b := range blocks {
		to := doc.Len()
		if b.Terminated {
			to = doc.LineStart(b.EndLine)
		}
		out = append(out, FoldRange{
			From:    doc.LineEnd(b.StartLine),
			To:      to,
			Summary: summarize(doc, b),
		})
	}
	return out
}

// summarize builds the one-line summary shown while a block is
// collapsed: "<keyword>: <name>" for tagged blocks, the first field's
// "key: value" for global blocks, truncated to the summary budget.
func summarize(doc *Document, b Block) string {
	var s string
	switch {
	case b.Kind != KindGlobal:
		s = fmt.Sprintf("%s: %s", b.Kind.Keyword(), b.Name)
	case len(b.Fields) > 0:
		f := b.Fields[0]
		s = fmt.Sprintf("%s: %s", f.Key, f.Value.Text)
	default:
		s = firstContentLine(doc, b)
	}
	return truncate(s, summaryBudget)
}

func firstContentLine(doc *Document, b Block) string {
	last := b.EndLine - 1
	if !b.Terminated {
		last = b.EndLine
	}
	for n := b.StartLine + 1; n <= last; n++ {
		if !doc.IsBlank(n) {
			return strings.TrimSpace(doc.Line(n))
		}
	}
	return ""
}

func truncate(s string, budget int) string {
	if len(s) <= budget {
		return s
	}
	cut := budget
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
