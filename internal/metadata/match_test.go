package metadata

import (
	"reflect"
	"strings"
	"testing"
)

const sampleDoc = `---
title: My Draft
author: me
---

Intro text.

---
SCOPE: sub_documents
label: "Chapter"
order: 2
---

Body prose here.

---
QUILL: manuscript
numbered: true
---
`

func TestMatchNeutralDocument(t *testing.T) {
	doc := NewDocument("# Heading\n\nJust prose, nothing else.\n")
	blocks, issues := Match(doc)
	if len(blocks) != 0 {
		t.Errorf("blocks = %d, want 0", len(blocks))
	}
	if len(issues) != 0 {
		t.Errorf("issues = %d, want 0", len(issues))
	}
}

func TestMatchPairsBlocksInOrder(t *testing.T) {
	doc := NewDocument(sampleDoc)
	blocks, issues := Match(doc)
	if len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
	if len(blocks) != 3 {
		t.Fatalf("blocks = %d, want 3", len(blocks))
	}

	if blocks[0].Kind != KindGlobal || blocks[0].Name != "" {
		t.Errorf("block 0 = %s %q, want global with no name", blocks[0].Kind, blocks[0].Name)
	}
	if blocks[1].Kind != KindScoped || blocks[1].Name != "sub_documents" {
		t.Errorf("block 1 = %s %q, want scoped sub_documents", blocks[1].Kind, blocks[1].Name)
	}
	if blocks[2].Kind != KindQuill || blocks[2].Name != "manuscript" {
		t.Errorf("block 2 = %s %q, want quill manuscript", blocks[2].Kind, blocks[2].Name)
	}

	// Ordered and non-overlapping.
	for i := 1; i < len(blocks); i++ {
		if blocks[i].StartLine <= blocks[i-1].EndLine {
			t.Errorf("block %d overlaps block %d", i, i-1)
		}
	}
}

func TestMatchSkipsHorizontalRules(t *testing.T) {
	doc := NewDocument("para one\n\n---\n\npara two\n")
	blocks, _ := Match(doc)
	if len(blocks) != 0 {
		t.Errorf("horizontal rule matched as block: %+v", blocks)
	}
}

func TestMatchUnterminatedBlock(t *testing.T) {
	doc := NewDocument("Text above.\n---\nSCOPE: appendix\nnote: open ended\n")
	blocks, issues := Match(doc)
	if len(blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(blocks))
	}
	b := blocks[0]
	if b.Terminated {
		t.Error("block should be unterminated")
	}
	if b.EndLine != doc.LineCount() {
		t.Errorf("EndLine = %d, want last line %d", b.EndLine, doc.LineCount())
	}
	if b.Kind != KindScoped || b.Name != "appendix" {
		t.Errorf("block = %s %q", b.Kind, b.Name)
	}
	if len(issues) != 1 || issues[0].Kind != IssueUnterminatedBlock {
		t.Errorf("issues = %v, want one unterminated_block", issues)
	}
}

func TestMatchIsIdempotent(t *testing.T) {
	doc := NewDocument(sampleDoc)
	first, _ := Match(doc)
	second, _ := Match(doc)
	if !reflect.DeepEqual(first, second) {
		t.Error("two passes over the same snapshot differ")
	}
}

func TestMatchDoesNotMutateDocument(t *testing.T) {
	doc := NewDocument(sampleDoc)
	before := make([]string, doc.LineCount())
	for i := range before {
		before[i] = doc.Line(i + 1)
	}
	Match(doc)
	for i := range before {
		if doc.Line(i+1) != before[i] {
			t.Fatalf("line %d changed", i+1)
		}
	}
	if strings.Join(before, "\n") != sampleDoc {
		t.Fatal("snapshot drifted from source text")
	}
}
