// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Ansuz tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/ansuz/internal/docservice"
	"github.com/starford/ansuz/internal/metadata"
)

// Server wraps the MCP server with Ansuz tools.
type Server struct {
	mcp *server.MCPServer
	svc *docservice.Service
}

// New creates a new MCP server with all Ansuz tools registered.
func New(svc *docservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Ansuz",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("analyze_text",
		mcp.WithDescription("Analyze extended-Markdown text and return its metadata blocks, "+
			"validation issues, and fold ranges as JSON. The text does not need to exist "+
			"in the workspace."),
		mcp.WithString("content", mcp.Required(), mcp.Description("The text to analyze")),
	), s.analyzeText)

	s.mcp.AddTool(mcp.NewTool("check_document",
		mcp.WithDescription("Lint a workspace document's metadata blocks. Returns a list "+
			"of issues with line numbers, or 'no issues' when the document is clean."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the document (e.g. drafts/one.md)")),
	), s.checkDocument)

	s.mcp.AddTool(mcp.NewTool("read_document",
		mcp.WithDescription("Read the full content of a workspace document."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the document (e.g. drafts/one.md)")),
	), s.readDocument)

	s.mcp.AddTool(mcp.NewTool("list_documents",
		mcp.WithDescription("List workspace documents with their titles and issue counts. "+
			"Optionally filter to documents that use a specific scope name."),
		mcp.WithString("scope", mcp.Description("Optional scope name to filter by (empty for all)")),
	), s.listDocuments)

	s.mcp.AddTool(mcp.NewTool("list_templates",
		mcp.WithDescription("List the quill template names available in this workspace. "+
			"Use these as QUILL: values when writing metadata blocks."),
	), s.listTemplates)

	s.mcp.AddTool(mcp.NewTool("search_documents",
		mcp.WithDescription("Full-text search through document content, titles, and block names."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchDocuments)

	s.mcp.AddTool(mcp.NewTool("get_metadata_contract",
		mcp.WithDescription("Returns the Ansuz metadata block format. "+
			"Call this before writing documents with metadata blocks."),
	), s.getMetadataContract)

	// Resource: metadata block format.
	s.mcp.AddResource(
		mcp.NewResource("ansuz://metadata-format", "Metadata Block Format",
			mcp.WithResourceDescription("The metadata block format that workspace documents follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readMetadataFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) analyzeText(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res := s.svc.Analyze(ctx, content, metadata.LineRange{})
	out, _ := json.MarshalIndent(map[string]any{
		"blocks": res.Blocks,
		"issues": res.Issues,
		"folds":  res.Folds,
	}, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) checkDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	issues, err := s.svc.Check(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	if len(issues) == 0 {
		return mcp.NewToolResultText("no issues"), nil
	}
	var lines []string
	for _, is := range issues {
		lines = append(lines, fmt.Sprintf("line %d: %s: %s", is.Line, is.Kind, is.Message))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) readDocument(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	doc, err := s.svc.GetDocument(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", path)), nil
	}
	return mcp.NewToolResultText(doc.Content), nil
}

func (s *Server) listDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scope := ""
	if v, err := req.RequireString("scope"); err == nil {
		scope = v
	}

	items, _, err := s.svc.ListDocuments(ctx, 0, 0, scope, "path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var lines []string
	for _, it := range items {
		line := it.Path
		if it.Title != "" {
			line += "\t" + it.Title
		}
		if it.Issues > 0 {
			line += fmt.Sprintf("\t(%d issues)", it.Issues)
		}
		lines = append(lines, line)
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) listTemplates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	names := s.svc.TemplateNames(ctx)
	return mcp.NewToolResultText(strings.Join(names, "\n")), nil
}

func (s *Server) searchDocuments(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getMetadataContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(MetadataFormatContract), nil
}

func (s *Server) readMetadataFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "ansuz://metadata-format",
			MIMEType: "text/markdown",
			Text:     MetadataFormatContract,
		},
	}, nil
}
