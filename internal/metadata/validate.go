package metadata

import "fmt"

// ReservedName is the block name reserved for the document body and
// therefore never valid as a scope or template name.
const ReservedName = "body"

// Validate runs all naming and uniqueness checks over a full block list
// in a single pass. It never fails: problems come back as advisory
// issues and an empty list means a clean document.
func Validate(blocks []Block) []Issue {
	var issues []Issue

	globalIdx := -1
	for i, b := range blocks {
		if b.Kind == KindGlobal {
			if globalIdx < 0 {
				globalIdx = i
				continue
			}
			issues = append(issues, Issue{
				Kind:    IssueMultipleGlobalBlocks,
				Block:   i,
				Line:    b.StartLine,
				Message: fmt.Sprintf("only one global metadata block is allowed; first is at line %d", blocks[globalIdx].StartLine),
			})
			continue
		}

		switch {
		case !ValidName(b.Name):
			issues = append(issues, Issue{
				Kind:    IssueInvalidScopeName,
				Block:   i,
				Line:    b.StartLine,
				Message: fmt.Sprintf("%s name %q must match [a-z_][a-z0-9_]*", b.Kind.Keyword(), b.Name),
			})
		case b.Name == ReservedName:
			issues = append(issues, Issue{
				Kind:    IssueReservedName,
				Block:   i,
				Line:    b.StartLine,
				Message: fmt.Sprintf("%q is reserved for the document body", ReservedName),
			})
		}
	}

	// A global field name shadowing a scope/quill name elsewhere in the
	// document would make the assembled data ambiguous.
	if globalIdx >= 0 {
		named := make(map[string]struct{})
		for _, b := range blocks {
			if b.Kind != KindGlobal && b.Name != "" {
				named[b.Name] = struct{}{}
			}
		}
		g := blocks[globalIdx]
		for _, f := range g.Fields {
			if _, ok := named[f.Key]; ok {
				issues = append(issues, Issue{
					Kind:    IssueFieldScopeCollision,
					Block:   globalIdx,
					Line:    g.StartLine,
					Message: fmt.Sprintf("global field %q collides with a scope name used elsewhere in the document", f.Key),
				})
			}
		}
	}

	return issues
}
