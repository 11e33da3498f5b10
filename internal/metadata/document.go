package metadata

import "strings"

// Document is an immutable, line-addressable snapshot of editor text.
// Lines are 1-indexed. The engine only ever reads a Document; the host
// editor owns the underlying buffer.
type Document struct {
	text   string
	lines  []string
	starts []int // byte offset of each line start
}

// NewDocument builds a snapshot from raw text. An empty string yields a
// single empty line, matching how editors address an empty buffer.
func NewDocument(text string) *Document {
	lines := strings.Split(text, "\n")
	starts := make([]int, len(lines))
	off := 0
	for i, l := range lines {
		starts[i] = off
		off += len(l) + 1 // newline
	}
	return &Document{text: text, lines: lines, starts: starts}
}

// Len returns the total byte length of the document.
func (d *Document) Len() int { return len(d.text) }

// LineCount returns the number of lines.
func (d *Document) LineCount() int { return len(d.lines) }

// Line returns the text of line n (1-indexed, without the newline).
// Out-of-range lines are empty.
func (d *Document) Line(n int) string {
	if n < 1 || n > len(d.lines) {
		return ""
	}
	return d.lines[n-1]
}

// LineStart returns the byte offset of the first character of line n.
func (d *Document) LineStart(n int) int {
	if n < 1 {
		return 0
	}
	if n > len(d.lines) {
		return len(d.text)
	}
	return d.starts[n-1]
}

// LineEnd returns the byte offset just past the last character of line n,
// excluding the newline.
func (d *Document) LineEnd(n int) int {
	if n < 1 {
		return 0
	}
	if n > len(d.lines) {
		return len(d.text)
	}
	return d.starts[n-1] + len(d.lines[n-1])
}

// IsBlank reports whether line n is empty or whitespace-only. Lines
// outside the document (above line 1, below the last line) count as
// blank, so document edges behave like blank neighbours.
func (d *Document) IsBlank(n int) bool {
	if n < 1 || n > len(d.lines) {
		return true
	}
	return strings.TrimSpace(d.lines[n-1]) == ""
}
