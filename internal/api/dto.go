package api

import (
	"time"

	"github.com/starford/ansuz/internal/docservice"
	"github.com/starford/ansuz/internal/metadata"
)

// CreateDocumentRequest is the request body for creating a document.
type CreateDocumentRequest struct {
	Path    string `json:"path" example:"drafts/one.md" validate:"required"`
	Content string `json:"content" example:"---\ntitle: One\n---" validate:"required"`
}

// UpdateDocumentRequest is the request body for updating a document.
type UpdateDocumentRequest struct {
	Content string `json:"content" example:"---\ntitle: One\n---" validate:"required"`
}

// AnalyzeRequest is the request body for ad-hoc analysis of text that
// may not live in the workspace. FromLine/ToLine bound the viewport for
// decoration output; zero means the whole document.
type AnalyzeRequest struct {
	Content  string `json:"content" validate:"required"`
	FromLine int    `json:"from_line,omitempty" example:"1"`
	ToLine   int    `json:"to_line,omitempty" example:"40"`
}

// CompleteRequest is the request body for cursor completion.
type CompleteRequest struct {
	Content string `json:"content" validate:"required"`
	Line    int    `json:"line" example:"3" validate:"required"`
	Col     int    `json:"col" example:"7" validate:"required"`
}

// CompleteResponse wraps completion candidates.
type CompleteResponse struct {
	Items []string `json:"items" validate:"required"`
}

// DocumentDetail is the full document response type (aliased from the domain layer).
type DocumentDetail = docservice.DocumentDetail

// DocumentListItem is a lightweight item in a list response (aliased from the domain layer).
type DocumentListItem = docservice.DocumentListItem

// DocumentListResponse wraps paginated document listings.
type DocumentListResponse struct {
	Documents []DocumentListItem `json:"documents" validate:"required"`
	Total     int                `json:"total" example:"42" validate:"required"`
}

// AnalyzeResponse is the full analysis result (aliased from the domain layer).
type AnalyzeResponse = docservice.AnalyzeResult

// TemplatesResponse wraps the merged template-name snapshot.
type TemplatesResponse struct {
	Templates []string `json:"templates" validate:"required"`
}

// SearchResult is a single search hit in the API response.
type SearchResult struct {
	Path    string `json:"path" example:"drafts/one.md" validate:"required"`
	Title   string `json:"title" example:"One" validate:"required"`
	Snippet string `json:"snippet" example:"...matched text..." validate:"required"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results" validate:"required"`
}

// IssueDTO mirrors metadata.Issue for swag.
type IssueDTO struct {
	Kind    metadata.IssueKind `json:"kind" example:"invalid_scope_name"`
	Block   int                `json:"block" example:"0"`
	Line    int                `json:"line" example:"3"`
	Message string             `json:"message" example:"scope name is invalid"`
}

// DocumentListItemDTO mirrors DocumentListItem for swag.
type DocumentListItemDTO struct {
	Path      string    `json:"path" example:"drafts/one.md"`
	Title     string    `json:"title" example:"One"`
	Checksum  string    `json:"checksum" example:"abc123..."`
	Issues    int       `json:"issues" example:"0"`
	UpdatedAt time.Time `json:"updated_at"`
}
