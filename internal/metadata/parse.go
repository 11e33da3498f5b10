package metadata

import (
	"regexp"
	"strings"
)

var (
	keywordRe = regexp.MustCompile(`^(SCOPE|QUILL):[ \t]*(\S*)`)
	fieldRe   = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_.-]*):[ \t]*`)
	nameRe    = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
	numberRe  = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)
)

// ValidName reports whether s is a well-formed scope/template name.
func ValidName(s string) bool { return nameRe.MatchString(s) }

// parseInterior scans the interior lines (first..last inclusive) of a
// block and fills in its kind, name, and fields. The first non-blank
// line is checked for a SCOPE/QUILL keyword; the raw name is captured
// even when malformed so the validator can report it. Every other
// non-blank line is matched against a flat "key: value" pattern.
//
// This is deliberately not a YAML parser: nesting and lists are out of
// scope, and the produced tokens exist only to colour source text.
func parseInterior(doc *Document, b *Block, first, last int) {
	b.Kind = KindGlobal
	seenContent := false

	for n := first; n <= last; n++ {
		if doc.IsBlank(n) {
			continue
		}
		line := doc.Line(n)
		lineStart := doc.LineStart(n)

		if !seenContent {
			seenContent = true
			if m := keywordRe.FindStringSubmatchIndex(line); m != nil {
				keyword := line[m[2]:m[3]]
				if keyword == "QUILL" {
					b.Kind = KindQuill
				} else {
					b.Kind = KindScoped
				}
				b.Name = line[m[4]:m[5]]
				b.Keyword = Span{From: lineStart + m[2], To: lineStart + m[3]}
				b.NameSpan = Span{From: lineStart + m[4], To: lineStart + m[5]}
				continue
			}
		}

		m := fieldRe.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}
		key := line[m[2]:m[3]]
		valueStart := m[1] // first byte after the separator
		b.Fields = append(b.Fields, Field{
			Key:     key,
			KeySpan: Span{From: lineStart + m[2], To: lineStart + m[3]},
			Value:   classifyValue(line[valueStart:], lineStart+valueStart),
		})
	}
}

// classifyValue tags raw value text by trying, in order: boolean
// literal, numeric literal, structural leftovers (Other), else string.
func classifyValue(raw string, start int) ValueToken {
	trimmed := strings.TrimRight(raw, " \t")
	leading := len(trimmed) - len(strings.TrimLeft(trimmed, " \t"))
	trimmed = trimmed[leading:]
	from := start + leading

	tok := ValueToken{
		Text: trimmed,
		Span: Span{From: from, To: from + len(trimmed)},
	}

	switch {
	case trimmed == "true" || trimmed == "false":
		tok.Kind = ValueBool
	case numberRe.MatchString(trimmed):
		tok.Kind = ValueNumber
	case trimmed == "" || strings.ContainsRune("[{&*|>", rune(firstByte(trimmed))):
		// Empty values and structural YAML openers are neither scalars
		// nor strings worth colouring as such.
		tok.Kind = ValueOther
	default:
		tok.Kind = ValueString
	}
	return tok
}

func firstByte(s string) byte {
	if s == "" {
		return 0
	}
	return s[0]
}
