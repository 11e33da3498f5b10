//go:build sqlite_fts5

package index

import (
	"testing"
	"time"
)

func TestFTS5_TableExists(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM documents_fts`).Scan(&count); err != nil {
		t.Fatalf("documents_fts table missing: %v", err)
	}
}

func TestFTS5_SearchWithSnippet(t *testing.T) {
	db := testDB(t)
	row := DocumentRow{
		Path:      "fts.md",
		Title:     "FTS Document",
		Checksum:  "f1",
		UpdatedAt: time.Now(),
	}
	if err := db.UpsertDocument(row, "Ansuz recognises delimited metadata blocks in markdown.", nil); err != nil {
		t.Fatalf("UpsertDocument: %v", err)
	}

	results, err := db.Search("delimited", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Path != "fts.md" {
		t.Errorf("path = %q", results[0].Path)
	}
	if results[0].Snippet == "" {
		t.Error("empty snippet")
	}
}

func TestFTS5_SearchByScopeName(t *testing.T) {
	db := testDB(t)
	row := DocumentRow{Path: "s.md", Checksum: "s1", UpdatedAt: time.Now()}
	blocks := []BlockRow{{Path: "s.md", Kind: "scoped", Name: "appendix", StartLine: 1, EndLine: 3}}
	if err := db.UpsertDocument(row, "body", blocks); err != nil {
		t.Fatalf("UpsertDocument: %v", err)
	}
	results, err := db.Search("appendix", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
}
