// Package docservice coordinates workspace storage, the SQLite index,
// and the metadata engine behind one service surface consumed by the
// REST API, the MCP server, and the CLI.
package docservice

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/checksum"
	"github.com/starford/ansuz/internal/index"
	"github.com/starford/ansuz/internal/metadata"
	"github.com/starford/ansuz/internal/registry"
	"github.com/starford/ansuz/internal/storage"
)

// DocumentDetail is the full representation of a workspace document.
type DocumentDetail struct {
	Path      string           `json:"path"`
	Title     string           `json:"title,omitempty"`
	Content   string           `json:"content"`
	Checksum  string           `json:"checksum"`
	Scopes    []string         `json:"scopes"`
	Blocks    []metadata.Block `json:"blocks"`
	Issues    []metadata.Issue `json:"issues"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// DocumentListItem is a lightweight item in a list response.
type DocumentListItem struct {
	Path      string    `json:"path"`
	Title     string    `json:"title,omitempty"`
	Checksum  string    `json:"checksum"`
	Issues    int       `json:"issues"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AnalyzeResult carries everything a host editor needs from one pass.
type AnalyzeResult struct {
	Blocks      []metadata.Block      `json:"blocks"`
	Issues      []metadata.Issue      `json:"issues"`
	Folds       []metadata.FoldRange  `json:"folds"`
	Decorations []metadata.Decoration `json:"decorations"`
}

// Service coordinates storage, index, and engine operations.
type Service struct {
	store storage.Provider
	db    *index.DB
	reg   *registry.Registry
}

// NewService creates a new document service.
func NewService(store storage.Provider, db *index.DB, reg *registry.Registry) *Service {
	return &Service{store: store, db: db, reg: reg}
}

// Analyze runs a full engine pass over content and returns blocks,
// issues, folds, and the decorations for the visible line range (the
// whole document when visible is zero).
func (s *Service) Analyze(_ context.Context, content string, visible metadata.LineRange) *AnalyzeResult {
	doc := metadata.NewDocument(content)
	if visible == (metadata.LineRange{}) {
		visible = metadata.LineRange{From: 1, To: doc.LineCount()}
	}
	eng := metadata.NewEngine()
	a := eng.Load(doc)
	return &AnalyzeResult{
		Blocks:      a.Blocks,
		Issues:      a.Issues,
		Folds:       a.Folds,
		Decorations: eng.Decorations(visible),
	}
}

// Complete returns completion candidates for the cursor at (line, col)
// in content. Scope names come from the document itself; template names
// from the registry snapshot.
func (s *Service) Complete(_ context.Context, content string, line, col int) []string {
	doc := metadata.NewDocument(content)
	text := doc.Line(line)
	if col < 0 || col > len(text) {
		col = len(text)
	}
	blocks, _ := metadata.Match(doc)
	return metadata.Complete(
		metadata.CursorContext{LinePrefix: text[:col]},
		metadata.ScopeNames(blocks),
		s.reg.TemplateNames(),
	)
}

// Check lints a stored document and returns its issues.
func (s *Service) Check(_ context.Context, path string) ([]metadata.Issue, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	_, issues := analyze(data)
	return issues, nil
}

// GetDocument reads a document from storage and analyzes it.
func (s *Service) GetDocument(_ context.Context, path string) (*DocumentDetail, error) {
	data, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return s.buildDetail(path, data)
}

// CreateDocument writes a new document and indexes it.
func (s *Service) CreateDocument(_ context.Context, path string, content []byte) (*DocumentDetail, error) {
	if _, err := s.store.Read(path); err == nil {
		return nil, apperr.ErrAlreadyExists
	}
	if err := s.store.Write(path, content); err != nil {
		return nil, err
	}
	if err := s.IndexDocument(path, content); err != nil {
		return nil, err
	}
	return s.buildDetail(path, content)
}

// UpdateDocument writes updated content with optimistic concurrency:
// a non-empty ifMatch must equal the stored content's checksum.
func (s *Service) UpdateDocument(_ context.Context, path string, content []byte, ifMatch string) (*DocumentDetail, error) {
	existing, err := s.store.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if ifMatch != "" && ifMatch != checksum.Sum(existing) {
		return nil, apperr.ErrConflict
	}
	if err := s.store.Write(path, content); err != nil {
		return nil, err
	}
	if err := s.IndexDocument(path, content); err != nil {
		return nil, err
	}
	return s.buildDetail(path, content)
}

// DeleteDocument removes a document from storage and index.
func (s *Service) DeleteDocument(_ context.Context, path string) error {
	if err := s.store.Delete(path); err != nil {
		return err
	}
	return s.db.DeleteDocument(path)
}

// ListDocuments returns paginated documents with optional scope filter.
func (s *Service) ListDocuments(_ context.Context, limit, offset int, scope, sort string) ([]DocumentListItem, int, error) {
	rows, total, err := s.db.ListDocuments(limit, offset, scope, sort)
	if err != nil {
		return nil, 0, err
	}
	items := make([]DocumentListItem, len(rows))
	for i, r := range rows {
		items[i] = DocumentListItem{
			Path:      r.Path,
			Title:     r.Title,
			Checksum:  r.Checksum,
			Issues:    r.Issues,
			UpdatedAt: r.UpdatedAt,
		}
	}
	return items, total, nil
}

// Search delegates full-text search to the index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}

// TemplateNames returns the registry's current template-name snapshot.
func (s *Service) TemplateNames(_ context.Context) []string {
	return s.reg.TemplateNames()
}

// IndexDocument analyzes data and upserts the result into the index.
// Exported so that sync and watcher callers can reuse it.
func (s *Service) IndexDocument(path string, data []byte) error {
	blocks, issues := analyze(data)
	row := index.DocumentRow{
		Path:      path,
		Title:     globalField(blocks, "title"),
		Checksum:  checksum.Sum(data),
		Issues:    len(issues),
		UpdatedAt: time.Now(),
	}
	return s.db.UpsertDocument(row, string(data), index.BlockRows(path, blocks))
}

// buildDetail constructs a DocumentDetail from raw data without
// re-reading the file.
func (s *Service) buildDetail(path string, data []byte) (*DocumentDetail, error) {
	blocks, issues := analyze(data)
	return &DocumentDetail{
		Path:      path,
		Title:     globalField(blocks, "title"),
		Content:   string(data),
		Checksum:  checksum.Sum(data),
		Scopes:    nonNilSlice(metadata.ScopeNames(blocks)),
		Blocks:    nonNilSlice(blocks),
		Issues:    nonNilSlice(issues),
		UpdatedAt: time.Now(),
	}, nil
}

// analyze runs one full engine pass over raw bytes.
func analyze(data []byte) ([]metadata.Block, []metadata.Issue) {
	doc := metadata.NewDocument(string(data))
	blocks, structural := metadata.Match(doc)
	return blocks, append(structural, metadata.Validate(blocks)...)
}

// globalField returns the named field of the global block, if any.
func globalField(blocks []metadata.Block, key string) string {
	for _, b := range blocks {
		if b.Kind != metadata.KindGlobal {
			continue
		}
		for _, f := range b.Fields {
			if f.Key == key {
				return f.Value.Text
			}
		}
		break
	}
	return ""
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
