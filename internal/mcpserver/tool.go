package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jamie-anson/prdgen/internal/search"
)

// AddSearchTool registers the prdgen_search tool with an MCP server.
func AddSearchTool(s *server.MCPServer, searcher search.Searcher) {
	tool := mcp.NewTool(
		"prdgen_search",
		mcp.WithDescription(`Full-text search over generated context cards.

Supports bleve query syntax:
- Field scoping: symbols:login, path:auth, summary:session
- Boolean operators: AND, OR, NOT, +required, -excluded
- Phrase search: "session refresh"
- Wildcards: Sess* (prefix matching)

Examples:
- authentication - cards mentioning authentication
- symbols:login - the card declaring a login symbol
- path:billing AND invoice - invoice handling in billing files`),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Query string with field scoping and boolean operators")),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results to return (1-100, default: 10)")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createSearchHandler(searcher))
}

// SearchResponse is the JSON payload returned by the prdgen_search tool.
type SearchResponse struct {
	Query   string          `json:"query"`
	Results []search.Result `json:"results"`
	Total   int             `json:"total"`
	TookMs  int             `json:"took_ms"`
}

// createSearchHandler creates the handler function for prdgen_search.
func createSearchHandler(searcher search.Searcher) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		startTime := time.Now()

		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		query, ok := argsMap["query"].(string)
		if !ok || query == "" {
			return mcp.NewToolResultError("query parameter is required"), nil
		}

		limit := 10
		if raw, ok := argsMap["limit"].(float64); ok {
			limit = int(raw)
		}

		results, err := searcher.Search(ctx, query, limit)
		if err != nil {
			return nil, fmt.Errorf("search failed: %w", err)
		}

		response := &SearchResponse{
			Query:   query,
			Results: results,
			Total:   len(results),
			TookMs:  int(time.Since(startTime).Milliseconds()),
		}

		jsonData, err := json.Marshal(response)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}
