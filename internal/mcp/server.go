// ABOUTME: MCP server for listahan integration with AI agents.
// ABOUTME: Provides tools and resources over a single note repository.

package mcp

import (
	"context"
	"sync"

	"github.com/harper/listahan/internal/logger"
	"github.com/harper/listahan/internal/repository"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type Server struct {
	server *mcp.Server
	log    logger.Logger

	// mu serializes handler access to repo, which is single-writer.
	mu   sync.Mutex
	repo *repository.Repository
}

func NewServer(repo *repository.Repository, log logger.Logger, version string) *Server {
	if log == nil {
		log = logger.Nop()
	}
	s := &Server{repo: repo, log: log}

	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "listahan",
			Version: version,
		},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
		},
	)

	s.registerTools()
	s.registerResources()

	return s
}

func (s *Server) Serve(ctx context.Context) error {
	s.log.Info("mcp server starting")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
