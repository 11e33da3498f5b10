package metadata

import "testing"

func TestParseKeywordAndName(t *testing.T) {
	doc := NewDocument("x\n---\nSCOPE: chapters\nlabel: Chapter\n---\n")
	blocks, _ := Match(doc)
	if len(blocks) != 1 {
		t.Fatalf("blocks = %d", len(blocks))
	}
	b := blocks[0]
	if b.Kind != KindScoped || b.Name != "chapters" {
		t.Fatalf("got %s %q", b.Kind, b.Name)
	}

	// Spans must point at the exact source tokens.
	text := doc.text
	if got := text[b.Keyword.From:b.Keyword.To]; got != "SCOPE" {
		t.Errorf("keyword span covers %q", got)
	}
	if got := text[b.NameSpan.From:b.NameSpan.To]; got != "chapters" {
		t.Errorf("name span covers %q", got)
	}
}

func TestParseCapturesInvalidRawName(t *testing.T) {
	doc := NewDocument("x\n---\nSCOPE: 123abc\n---\n")
	blocks, _ := Match(doc)
	if len(blocks) != 1 {
		t.Fatalf("blocks = %d", len(blocks))
	}
	// The parser records what the author typed; judging it is the
	// validator's job.
	if blocks[0].Kind != KindScoped || blocks[0].Name != "123abc" {
		t.Errorf("got %s %q", blocks[0].Kind, blocks[0].Name)
	}
}

func TestParseKeywordOnlyOnFirstContentLine(t *testing.T) {
	doc := NewDocument("x\n---\nlabel: first\nSCOPE: late\n---\n")
	blocks, _ := Match(doc)
	if len(blocks) != 1 {
		t.Fatalf("blocks = %d", len(blocks))
	}
	b := blocks[0]
	if b.Kind != KindGlobal {
		t.Errorf("kind = %s, want global (keyword not on first content line)", b.Kind)
	}
	// The late keyword line still scans as an ordinary field so its
	// value gets coloured.
	if len(b.Fields) != 2 || b.Fields[1].Key != "SCOPE" {
		t.Errorf("fields = %+v", b.Fields)
	}
}

func TestParseFieldValues(t *testing.T) {
	doc := NewDocument(`x
---
title: "The Draft"
plain: unquoted words
count: 42
weight: -3.5
draft: true
published: false
empty:
items: [a, b]
---
`)
	blocks, _ := Match(doc)
	if len(blocks) != 1 {
		t.Fatalf("blocks = %d", len(blocks))
	}
	fields := blocks[0].Fields

	want := []struct {
		key  string
		kind ValueKind
		text string
	}{
		{"title", ValueString, `"The Draft"`},
		{"plain", ValueString, "unquoted words"},
		{"count", ValueNumber, "42"},
		{"weight", ValueNumber, "-3.5"},
		{"draft", ValueBool, "true"},
		{"published", ValueBool, "false"},
		{"empty", ValueOther, ""},
		{"items", ValueOther, "[a, b]"},
	}
	if len(fields) != len(want) {
		t.Fatalf("fields = %d, want %d: %+v", len(fields), len(want), fields)
	}
	for i, w := range want {
		f := fields[i]
		if f.Key != w.key || f.Value.Kind != w.kind || f.Value.Text != w.text {
			t.Errorf("field %d = %q %s %q, want %q %s %q",
				i, f.Key, f.Value.Kind, f.Value.Text, w.key, w.kind, w.text)
		}
	}
}

func TestParseFieldSpans(t *testing.T) {
	doc := NewDocument("x\n---\norder: 7\n---\n")
	blocks, _ := Match(doc)
	f := blocks[0].Fields[0]
	if got := doc.text[f.KeySpan.From:f.KeySpan.To]; got != "order" {
		t.Errorf("key span covers %q", got)
	}
	if got := doc.text[f.Value.Span.From:f.Value.Span.To]; got != "7" {
		t.Errorf("value span covers %q", got)
	}
}

func TestValidNamePattern(t *testing.T) {
	valid := []string{"sub_documents", "appendix", "_private", "a1"}
	invalid := []string{"123abc", "Sub", "with-dash", "", "has space"}
	for _, n := range valid {
		if !ValidName(n) {
			t.Errorf("ValidName(%q) = false", n)
		}
	}
	for _, n := range invalid {
		if ValidName(n) {
			t.Errorf("ValidName(%q) = true", n)
		}
	}
}
