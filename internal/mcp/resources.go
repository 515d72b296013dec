// ABOUTME: MCP resources for exposing notes as readable resources.
// ABOUTME: Allows AI agents to access note content via URI scheme.

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/listahan/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const noteURIPrefix = "listahan://note/"

func (s *Server) registerResources() {
	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: noteURIPrefix + "{id}",
			Name:        "Note",
			Description: "Access individual notes by ID or prefix",
			MIMEType:    "text/markdown",
		},
		s.handleReadResource,
	)
}

func (s *Server) handleReadResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	id, ok := strings.CutPrefix(req.Params.URI, noteURIPrefix)
	if !ok || id == "" {
		return nil, fmt.Errorf("invalid resource URI: %s", req.Params.URI)
	}

	s.mu.Lock()
	note, err := s.repo.Find(id)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: "text/markdown",
				Text:     renderMarkdown(note),
			},
		},
	}, nil
}

func renderMarkdown(note models.Note) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", note.Title)
	fmt.Fprintf(&sb, "_Modified %s_\n\n", note.LastModified.Format("2006-01-02 15:04"))
	sb.WriteString(note.Content)
	return sb.String()
}
