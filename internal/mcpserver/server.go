package mcpserver

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/jamie-anson/prdgen/internal/search"
)

// Server exposes generated context cards to MCP clients over stdio.
type Server struct {
	searcher search.Searcher
	mcp      *server.MCPServer
}

// New builds a stdio MCP server over the context cards in cardsDir.
func New(ctx context.Context, cardsDir, version string) (*Server, error) {
	docs, err := search.LoadCards(cardsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load context cards: %w", err)
	}

	searcher, err := search.NewSearcher(ctx, docs)
	if err != nil {
		return nil, err
	}

	mcpServer := server.NewMCPServer(
		"prdgen-mcp",
		version,
		server.WithToolCapabilities(true),
	)
	AddSearchTool(mcpServer, searcher)

	return &Server{
		searcher: searcher,
		mcp:      mcpServer,
	}, nil
}

// Serve starts the stdio server and blocks until a shutdown signal, an error,
// or context cancellation.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio...")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases the underlying search index.
func (s *Server) Close() error {
	if s.searcher != nil {
		return s.searcher.Close()
	}
	return nil
}
