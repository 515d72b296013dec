// ABOUTME: MCP tools for note CRUD operations.
// ABOUTME: Each tool drives the repository the same way the CLI and TUI do.

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harper/listahan/internal/logger"
	"github.com/harper/listahan/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const defaultListLimit = 20

// noteJSON is the agent-facing shape of a note.
type noteJSON struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Content      string     `json:"content,omitempty"`
	LastModified time.Time  `json:"last_modified"`
	LastSaved    *time.Time `json:"last_saved"`
}

func toJSON(n models.Note, withContent bool) noteJSON {
	out := noteJSON{
		ID:           n.ID,
		Title:        n.Title,
		LastModified: n.LastModified,
		LastSaved:    n.LastSaved,
	}
	if withContent {
		out.Content = n.Content
	}
	return out
}

func (s *Server) registerTools() {
	// list_notes
	s.server.AddTool(&mcp.Tool{
		Name:        "list_notes",
		Description: "List notes, most recently modified first",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"limit": {"type": "integer", "description": "Max results", "default": 20}
			}
		}`),
	}, s.handleListNotes)

	// search_notes
	s.server.AddTool(&mcp.Tool{
		Name:        "search_notes",
		Description: "Search note titles and content; exact title matches rank first",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {"type": "string", "description": "Search query"},
				"limit": {"type": "integer", "description": "Max results", "default": 20}
			},
			"required": ["query"]
		}`),
	}, s.handleSearchNotes)

	// get_note
	s.server.AddTool(&mcp.Tool{
		Name:        "get_note",
		Description: "Get a note by ID or prefix",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix (6+ chars)"}
			},
			"required": ["id"]
		}`),
	}, s.handleGetNote)

	// create_note
	s.server.AddTool(&mcp.Tool{
		Name:        "create_note",
		Description: "Create a note; title defaults to \"Untitled Note\"",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Note title"},
				"content": {"type": "string", "description": "Note content (markdown)"}
			}
		}`),
	}, s.handleCreateNote)

	// update_note
	s.server.AddTool(&mcp.Tool{
		Name:        "update_note",
		Description: "Update a note's title or content and save it",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"},
				"title": {"type": "string", "description": "New title"},
				"content": {"type": "string", "description": "New content"}
			},
			"required": ["id"]
		}`),
	}, s.handleUpdateNote)

	// delete_note
	s.server.AddTool(&mcp.Tool{
		Name:        "delete_note",
		Description: "Delete a note permanently",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or prefix"}
			},
			"required": ["id"]
		}`),
	}, s.handleDeleteNote)
}

// Tool handlers.
func (s *Server) handleListNotes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Limit int `json:"limit"`
	}
	params.Limit = defaultListLimit
	if err := unmarshalArgs(req, &params); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return jsonResult(s.collect("", params.Limit))
}

func (s *Server) handleSearchNotes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Query string `json:"query"`
		Limit int    `json:"limit"`
	}
	params.Limit = defaultListLimit
	if err := unmarshalArgs(req, &params); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return jsonResult(s.collect(params.Query, params.Limit))
}

func (s *Server) handleGetNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := unmarshalArgs(req, &params); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	note, err := s.repo.Find(params.ID)
	if err != nil {
		return errorResult("failed to get note: %v", err), nil
	}
	return jsonResult(toJSON(note, true))
}

func (s *Server) handleCreateNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}
	if err := unmarshalArgs(req, &params); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.discardPending()
	note, err := s.repo.CreateNote()
	if err != nil {
		return errorResult("failed to create note: %v", err), nil
	}

	if params.Title != nil || params.Content != nil {
		note, err = s.applyEdits(params.Title, params.Content)
		if err != nil {
			return errorResult("note %s created but not saved: %v", note.ShortID(), err), nil
		}
	}

	s.log.Info("note created via mcp", logger.String("id", note.ID))
	return textResult("Created note %s", note.ID), nil
}

func (s *Server) handleUpdateNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID      string  `json:"id"`
		Title   *string `json:"title"`
		Content *string `json:"content"`
	}
	if err := unmarshalArgs(req, &params); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	note, err := s.repo.Find(params.ID)
	if err != nil {
		return errorResult("failed to find note: %v", err), nil
	}
	if err := s.open(note.ID); err != nil {
		return errorResult("failed to open note: %v", err), nil
	}

	saved, err := s.applyEdits(params.Title, params.Content)
	if err != nil {
		return errorResult("failed to update note: %v", err), nil
	}
	return textResult("Updated note %s", saved.ID), nil
}

func (s *Server) handleDeleteNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := unmarshalArgs(req, &params); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	note, err := s.repo.Find(params.ID)
	if err != nil {
		return errorResult("failed to find note: %v", err), nil
	}

	// An agent call is its own confirmation.
	if err := s.repo.RequestDelete(note.ID); err != nil {
		return errorResult("failed to delete note: %v", err), nil
	}
	if err := s.repo.Confirm(); err != nil {
		return errorResult("failed to delete note: %v", err), nil
	}

	s.log.Info("note deleted via mcp", logger.String("id", note.ID))
	return textResult("Deleted note %s", note.ID), nil
}

// collect returns up to limit notes from the filtered view. Callers hold s.mu.
func (s *Server) collect(query string, limit int) []noteJSON {
	if limit <= 0 {
		limit = defaultListLimit
	}
	out := []noteJSON{}
	for n := range s.repo.FilteredView(query) {
		if len(out) == limit {
			break
		}
		out = append(out, toJSON(n, false))
	}
	return out
}

// open selects id, discarding any edits a previously failed save left behind.
func (s *Server) open(id string) error {
	s.discardPending()
	s.repo.Revert()
	switched, err := s.repo.SelectNote(id)
	if err != nil {
		return err
	}
	if !switched {
		return s.repo.Confirm()
	}
	return nil
}

func (s *Server) discardPending() {
	if _, ok := s.repo.Pending(); ok {
		s.repo.Cancel()
	}
}

// applyEdits writes the given fields into the working copy of the selection and saves it.
func (s *Server) applyEdits(title, content *string) (models.Note, error) {
	if title != nil {
		if err := s.repo.EditTitle(*title); err != nil {
			return models.Note{}, err
		}
	}
	if content != nil {
		if err := s.repo.EditContent(*content); err != nil {
			return models.Note{}, err
		}
	}
	if err := s.repo.SaveSelected(); err != nil {
		sel, _ := s.repo.Selected()
		return sel, err
	}
	sel, _ := s.repo.Selected()
	return sel, nil
}

func unmarshalArgs(req *mcp.CallToolRequest, v any) error {
	if len(req.Params.Arguments) == 0 {
		return nil
	}
	if err := json.Unmarshal(req.Params.Arguments, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

func textResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
	}
}

func errorResult(format string, args ...any) *mcp.CallToolResult {
	res := textResult(format, args...)
	res.IsError = true
	return res
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult("%s", data), nil
}

