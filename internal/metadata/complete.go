package metadata

import "regexp"

var (
	scopeCursorRe = regexp.MustCompile(`SCOPE:\s*$`)
	quillCursorRe = regexp.MustCompile(`QUILL:\s*$`)
)

// CursorContext is what the completion provider needs to know about the
// cursor: the text of the current line up to the cursor position.
type CursorContext struct {
	LinePrefix string
}

// Complete returns completion candidates for the cursor context. Typing
// after "SCOPE:" offers the scope names already used in the document,
// after "QUILL:" the template names supplied by the host's registry
// snapshot. Any other context completes to nothing. No I/O, no state:
// safe to call on every keystroke.
func Complete(ctx CursorContext, scopeNames, templateNames []string) []string {
	switch {
	case scopeCursorRe.MatchString(ctx.LinePrefix):
		return scopeNames
	case quillCursorRe.MatchString(ctx.LinePrefix):
		return templateNames
	default:
		return nil
	}
}

// ScopeNames returns the distinct names of scoped blocks in first-seen
// order, the order completion presents them in.
func ScopeNames(blocks []Block) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, b := range blocks {
		if b.Kind != KindScoped || b.Name == "" {
			continue
		}
		if _, dup := seen[b.Name]; dup {
			continue
		}
		seen[b.Name] = struct{}{}
		out = append(out, b.Name)
	}
	return out
}

// QuillNames returns the distinct names of quill blocks in first-seen
// order.
func QuillNames(blocks []Block) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, b := range blocks {
		if b.Kind != KindQuill || b.Name == "" {
			continue
		}
		if _, dup := seen[b.Name]; dup {
			continue
		}
		seen[b.Name] = struct{}{}
		out = append(out, b.Name)
	}
	return out
}
