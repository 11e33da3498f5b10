// Package metadata implements the extended-markdown metadata recognition
// engine: it scans a document for "---"-delimited metadata blocks carrying
// SCOPE/QUILL keywords and flat key/value fields, disambiguates them from
// horizontal rules, validates naming rules, and derives the decorations,
// fold ranges, diagnostics, and completion candidates a host editor needs.
//
// The engine is pure and synchronous: it reads an immutable Document
// snapshot and returns derived values. It performs no I/O and never
// mutates document text.
package metadata

// BlockKind identifies the flavour of a metadata block.
type BlockKind string

const (
	// KindGlobal is the untagged block carrying document-wide fields.
	KindGlobal BlockKind = "global"
	// KindScoped is a block tagged with a SCOPE keyword.
	KindScoped BlockKind = "scoped"
	// KindQuill is a block tagged with a QUILL keyword.
	KindQuill BlockKind = "quill"
)

// Keyword returns the source keyword for the kind, or "" for global blocks.
func (k BlockKind) Keyword() string {
	switch k {
	case KindScoped:
		return "SCOPE"
	case KindQuill:
		return "QUILL"
	default:
		return ""
	}
}

// ValueKind classifies a field value for colouring purposes only.
type ValueKind string

const (
	ValueString ValueKind = "string"
	ValueNumber ValueKind = "number"
	ValueBool   ValueKind = "bool"
	ValueOther  ValueKind = "other"
)

// Span is a half-open byte range [From, To) into the document text.
type Span struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// ValueToken is a classified field value with its source span.
type ValueToken struct {
	Kind ValueKind `json:"kind"`
	Text string    `json:"text"`
	Span Span      `json:"span"`
}

// Field is one key/value pair inside a block interior.
type Field struct {
	Key     string     `json:"key"`
	KeySpan Span       `json:"key_span"`
	Value   ValueToken `json:"value"`
}

// Block is a matched metadata block. Blocks are built fresh on every
// pass, are immutable once built, and are ordered by StartLine without
// overlaps.
type Block struct {
	StartLine int       `json:"start_line"` // opening delimiter line (1-indexed)
	EndLine   int       `json:"end_line"`   // closing delimiter line, or last document line when unterminated
	Kind      BlockKind `json:"kind"`
	Name      string    `json:"name,omitempty"` // empty for global blocks
	Keyword   Span      `json:"keyword_span,omitzero"`
	NameSpan  Span      `json:"name_span,omitzero"`
	Fields    []Field   `json:"fields,omitempty"`

	// Terminated is false when the document ended while the block was
	// still open; the block then extends to the last line so that
	// highlighting does not disappear mid-edit.
	Terminated bool `json:"terminated"`
}

// IssueKind names a validation problem. Issues are advisory values,
// never errors: a malformed or mid-edit document is a normal operating
// condition.
type IssueKind string

const (
	IssueInvalidScopeName     IssueKind = "invalid_scope_name"
	IssueReservedName         IssueKind = "reserved_name"
	IssueMultipleGlobalBlocks IssueKind = "multiple_global_blocks"
	IssueFieldScopeCollision  IssueKind = "field_scope_collision"
	IssueUnterminatedBlock    IssueKind = "unterminated_block"
)

// Issue is one advisory diagnostic attached to a block.
type Issue struct {
	Kind    IssueKind `json:"kind"`
	Block   int       `json:"block"` // index into the pass's block list
	Line    int       `json:"line"`  // start line of the offending block
	Message string    `json:"message"`
}

// FoldRange is a collapsible interval the host editor may fold, with a
// one-line summary shown while collapsed.
type FoldRange struct {
	From    int    `json:"from"`
	To      int    `json:"to"`
	Summary string `json:"summary"`
}

// Decoration is a styling instruction over a byte range. Decorations are
// stateless and regenerated per pass.
type Decoration struct {
	From  int    `json:"from"`
	To    int    `json:"to"`
	Class string `json:"class"`
}

// LineRange is an inclusive 1-indexed line interval.
type LineRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Contains reports whether line n falls inside the range.
func (r LineRange) Contains(n int) bool {
	return n >= r.From && n <= r.To
}

// Intersects reports whether the [from, to] line interval overlaps r.
func (r LineRange) Intersects(from, to int) bool {
	return from <= r.To && to >= r.From
}
