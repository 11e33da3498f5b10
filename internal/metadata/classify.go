package metadata

import "strings"

// LineClass is the classification of a single text line.
type LineClass int

const (
	// ClassProse is any line that does not start with "---".
	ClassProse LineClass = iota
	// ClassHorizontalRule is a "---" line acting as a markdown rule.
	ClassHorizontalRule
	// ClassMetadataDelimiter is a "---" line opening or closing a
	// metadata block.
	ClassMetadataDelimiter
)

func (c LineClass) String() string {
	switch c {
	case ClassHorizontalRule:
		return "horizontal-rule"
	case ClassMetadataDelimiter:
		return "metadata-delimiter"
	default:
		return "prose"
	}
}

// Classify resolves the HR-vs-delimiter ambiguity for one line using
// only the blankness of its immediate neighbours: a "---" line with
// blank lines both above and below is a horizontal rule, any other
// "---" line is a metadata delimiter. Lines not starting with "---"
// are prose.
//
// The function is pure and total; every downstream component assumes
// the same inputs always produce the same classification.
func Classify(lineText string, blankAbove, blankBelow bool) LineClass {
	if !strings.HasPrefix(lineText, "---") {
		return ClassProse
	}
	if blankAbove && blankBelow {
		return ClassHorizontalRule
	}
	return ClassMetadataDelimiter
}

// classifyAt classifies line n of doc using its neighbour context.
func classifyAt(doc *Document, n int) LineClass {
	return Classify(doc.Line(n), doc.IsBlank(n-1), doc.IsBlank(n+1))
}
