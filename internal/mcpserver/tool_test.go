package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamie-anson/prdgen/internal/search"
)

// Test Plan for the prdgen_search tool handler:
// - Valid queries return a JSON payload with results and timing
// - A missing query parameter yields a tool error, not a transport error
// - Searcher failures surface as handler errors

type stubSearcher struct {
	results []search.Result
	err     error

	gotQuery string
	gotLimit int
}

func (s *stubSearcher) Search(_ context.Context, query string, limit int) ([]search.Result, error) {
	s.gotQuery = query
	s.gotLimit = limit
	return s.results, s.err
}

func (s *stubSearcher) Close() error { return nil }

func callTool(t *testing.T, searcher search.Searcher, args map[string]interface{}) (*mcp.CallToolResult, error) {
	t.Helper()
	handler := createSearchHandler(searcher)
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return handler(context.Background(), req)
}

func TestSearchHandler(t *testing.T) {
	t.Parallel()

	stub := &stubSearcher{results: []search.Result{
		{Path: "src/auth.ts", Summary: "Handles user authentication.", Score: 0.9},
	}}

	result, err := callTool(t, stub, map[string]interface{}{
		"query": "authentication",
		"limit": float64(5),
	})
	require.NoError(t, err)
	require.False(t, result.IsError)

	assert.Equal(t, "authentication", stub.gotQuery)
	assert.Equal(t, 5, stub.gotLimit)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)

	var response SearchResponse
	require.NoError(t, json.Unmarshal([]byte(text.Text), &response))
	assert.Equal(t, "authentication", response.Query)
	assert.Equal(t, 1, response.Total)
	assert.Equal(t, "src/auth.ts", response.Results[0].Path)
}

func TestSearchHandler_MissingQuery(t *testing.T) {
	t.Parallel()

	result, err := callTool(t, &stubSearcher{}, map[string]interface{}{})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestSearchHandler_SearcherError(t *testing.T) {
	t.Parallel()

	_, err := callTool(t, &stubSearcher{err: errors.New("index closed")},
		map[string]interface{}{"query": "anything"})
	assert.Error(t, err)
}
