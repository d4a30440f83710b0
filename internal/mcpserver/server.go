// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes one user's notes and weight log over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/notetodo/internal/apperr"
	"github.com/starford/notetodo/internal/models"
	"github.com/starford/notetodo/internal/noteservice"
	"github.com/starford/notetodo/internal/weightservice"
)

// Server wraps the MCP server with notetodo tools bound to a single identity.
type Server struct {
	mcp     *server.MCPServer
	user    models.Identity
	notes   *noteservice.Service
	weights *weightservice.Service
}

// New creates a new MCP server acting as user.
func New(user models.Identity, notes *noteservice.Service, weights *weightservice.Service, version string) *Server {
	s := &Server{user: user, notes: notes, weights: weights}

	s.mcp = server.NewMCPServer(
		"notetodo",
		version,
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List the user's notes, newest first."),
		mcp.WithBoolean("pending_only", mcp.Description("Only return notes that are not completed")),
	), s.listNotes)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read a single note by id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Note id")),
	), s.readNote)

	s.mcp.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create a new note."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Note title, must not be blank")),
		mcp.WithString("content", mcp.Description("Note body")),
	), s.createNote)

	s.mcp.AddTool(mcp.NewTool("list_notebooks",
		mcp.WithDescription("List the user's notebooks, most recently updated first."),
	), s.listNotebooks)

	s.mcp.AddTool(mcp.NewTool("get_weights",
		mcp.WithDescription("Return the user's weight profile and records, or null when none exist."),
	), s.getWeights)

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

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultText(string(out)), nil
}

// errorResult reports domain errors verbatim. Anything else is logged and
// hidden behind a generic message.
func errorResult(err error) *mcp.CallToolResult {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return mcp.NewToolResultError(ae.Msg)
	}
	slog.Error("mcp tool failed", slog.String("error", err.Error()))
	return mcp.NewToolResultError("internal server error")
}

func (s *Server) listNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	notes, err := s.notes.ListNotes(ctx, s.user.ID)
	if err != nil {
		return errorResult(err), nil
	}
	if req.GetBool("pending_only", false) {
		pending := notes[:0]
		for _, n := range notes {
			if !n.Completed {
				pending = append(pending, n)
			}
		}
		notes = pending
	}
	return jsonResult(notes)
}

func (s *Server) readNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	n, err := s.notes.GetNote(ctx, id, s.user.ID)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(n)
}

func (s *Server) createNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	n, err := s.notes.CreateNote(ctx, s.user.ID, noteservice.NoteInput{
		Title:   title,
		Content: req.GetString("content", ""),
	})
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(n)
}

func (s *Server) listNotebooks(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	nbs, err := s.notes.ListNotebooks(ctx, s.user.ID)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(nbs)
}

func (s *Server) getWeights(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	w, err := s.weights.Get(ctx, s.user.ID)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(w)
}
