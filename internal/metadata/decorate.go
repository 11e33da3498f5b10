package metadata

// Decoration classes understood by the host editor's theme.
const (
	ClassDelimiter = "meta-delimiter"
	ClassKeyword   = "meta-keyword"
	ClassName      = "meta-name"
	ClassKey       = "meta-key"
	ClassBlock     = "meta-block"

	classValuePrefix = "meta-value-"
)

// valueClass maps a value kind to its decoration class.
func valueClass(k ValueKind) string { return classValuePrefix + string(k) }

// Decorate converts the blocks intersecting the visible line range into
// styling instructions: delimiter lines, keyword and name tokens, field
// keys, field values tagged by value kind, and a whole-body background
// decoration per block. Blocks outside the viewport cost nothing, which
// keeps a pass sub-frame even on documents of several thousand lines.
//
// The input is never modified and every returned range lies inside
// [0, doc.Len()).
func Decorate(doc *Document, blocks []Block, visible LineRange) []Decoration {
	var out []Decoration
	for _, b := range blocks {
		if !visible.Intersects(b.StartLine, b.EndLine) {
			continue
		}
		out = append(out, decorateBlock(doc, b)...)
	}
	return out
}

func decorateBlock(doc *Document, b Block) []Decoration {
	var out []Decoration

	add := func(from, to int, class string) {
		if from >= to {
			return
		}
		if max := doc.Len(); to > max {
			to = max
		}
		out = append(out, Decoration{From: from, To: to, Class: class})
	}

	// Body background spans the whole block, delimiters included.
	bodyEnd := doc.LineEnd(b.EndLine)
	add(doc.LineStart(b.StartLine), bodyEnd, ClassBlock)

	add(doc.LineStart(b.StartLine), doc.LineEnd(b.StartLine), ClassDelimiter)
	if b.Terminated {
		add(doc.LineStart(b.EndLine), doc.LineEnd(b.EndLine), ClassDelimiter)
	}

	if b.Kind != KindGlobal {
		add(b.Keyword.From, b.Keyword.To, ClassKeyword)
		add(b.NameSpan.From, b.NameSpan.To, ClassName)
	}

	for _, f := range b.Fields {
		add(f.KeySpan.From, f.KeySpan.To, ClassKey)
		add(f.Value.Span.From, f.Value.Span.To, valueClass(f.Value.Kind))
	}

	return out
}
