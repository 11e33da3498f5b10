package metadata

import (
	"reflect"
	"testing"
)

func TestCompleteScopeContext(t *testing.T) {
	scopes := []string{"sub_documents", "appendix"}
	got := Complete(CursorContext{LinePrefix: "SCOPE: "}, scopes, []string{"manuscript"})
	if !reflect.DeepEqual(got, scopes) {
		t.Errorf("got %v, want %v in first-seen order", got, scopes)
	}
}

func TestCompleteQuillContext(t *testing.T) {
	templates := []string{"manuscript", "paperback"}
	got := Complete(CursorContext{LinePrefix: "QUILL:"}, []string{"x"}, templates)
	if !reflect.DeepEqual(got, templates) {
		t.Errorf("got %v, want %v", got, templates)
	}
}

func TestCompleteOtherContextsAreEmpty(t *testing.T) {
	for _, prefix := range []string{"", "title: ", "SCOPE: partial", "scope: ", "QUILL: x "} {
		if got := Complete(CursorContext{LinePrefix: prefix}, []string{"a"}, []string{"b"}); len(got) != 0 {
			t.Errorf("prefix %q completed to %v, want nothing", prefix, got)
		}
	}
}

func TestScopeNamesFirstSeenDistinct(t *testing.T) {
	text := "x\n---\nSCOPE: sub_documents\n---\nt\n---\nSCOPE: appendix\n---\nt\n---\nSCOPE: sub_documents\n---\nt\n---\nQUILL: manuscript\n---\n"
	doc := NewDocument(text)
	blocks, _ := Match(doc)
	got := ScopeNames(blocks)
	want := []string{"sub_documents", "appendix"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ScopeNames = %v, want %v", got, want)
	}
	if q := QuillNames(blocks); !reflect.DeepEqual(q, []string{"manuscript"}) {
		t.Errorf("QuillNames = %v", q)
	}
}
