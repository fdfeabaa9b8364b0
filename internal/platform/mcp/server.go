package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/callguard/spam-checker/internal/domain"
	"github.com/callguard/spam-checker/internal/service"
)

const serverName = "Spam Checker MCP Server"

const serverInstructions = `
This MCP server provides spam checking capabilities for phone numbers using the Twilio Lookup API.
Use the search tool to find spam reports for phone numbers, then use the fetch tool to retrieve
detailed spam analysis reports including reputation scores and historical data.

The server can:
1. Check individual phone numbers for spam reputation
2. Search through historical spam check results
3. Provide detailed analysis reports for specific phone numbers
`

type searchResponse struct {
	Results []*domain.SearchHit `json:"results"`
}

// NewServer wires the search and fetch tools onto an MCP server backed by
// the shared lookup service.
func NewServer(svc service.Service, version string) *server.MCPServer {
	s := server.NewMCPServer(serverName, version,
		server.WithInstructions(serverInstructions),
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	searchTool := mcpgo.NewTool("search",
		mcpgo.WithDescription("Search for spam reports by phone number (E.164), partial number, "+
			"keywords like 'spam' or 'clean', carrier names, or 'recent'/'history'/'all' for the latest checks."),
		mcpgo.WithString("query",
			mcpgo.Required(),
			mcpgo.Description("Search query - a phone number, partial number, or keywords"),
		),
	)
	s.AddTool(searchTool, searchHandler(svc))

	fetchTool := mcpgo.NewTool("fetch",
		mcpgo.WithDescription("Retrieve the complete spam analysis report for a document ID "+
			"returned by the search tool (e.g. spam_check_abc12345)."),
		mcpgo.WithString("id",
			mcpgo.Required(),
			mcpgo.Description("Document ID from search results"),
		),
	)
	s.AddTool(fetchTool, fetchHandler(svc))

	return s
}

// NewSSEServer wraps the MCP server in its SSE transport.
func NewSSEServer(s *server.MCPServer) *server.SSEServer {
	return server.NewSSEServer(s)
}

func searchHandler(svc service.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		query, err := req.RequireString("query")
		if err != nil {
			return mcpgo.NewToolResultError(err.Error()), nil
		}

		hits, err := svc.Search(ctx, query)
		if err != nil {
			log.Printf("❌ ERROR search tool: %v", err)
			return mcpgo.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
		}

		payload, err := json.Marshal(searchResponse{Results: hits})
		if err != nil {
			return nil, fmt.Errorf("encode search results: %w", err)
		}

		log.Printf("search returned %d results for query %q", len(hits), query)
		return mcpgo.NewToolResultText(string(payload)), nil
	}
}

func fetchHandler(svc service.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcpgo.NewToolResultError(err.Error()), nil
		}

		report, err := svc.Fetch(ctx, id)
		if err != nil {
			log.Printf("❌ ERROR fetch tool: %v", err)
			return mcpgo.NewToolResultError(err.Error()), nil
		}

		payload, err := json.Marshal(report)
		if err != nil {
			return nil, fmt.Errorf("encode report: %w", err)
		}

		return mcpgo.NewToolResultText(string(payload)), nil
	}
}
