// Package mcptool exposes the dork catalog to MCP clients as tools over stdio.
package mcptool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"dorkboard/internal/adapter/tui/uxerror"
	"dorkboard/internal/domain"
	"dorkboard/internal/usecase"
)

// Tool names registered on the server.
const (
	ToolRenderDorks    = "render_dorks"
	ToolListCategories = "list_dork_categories"
)

// Server wraps an MCP server whose tools render catalog dorks.
type Server struct {
	catalog  *domain.Catalog
	renderer *usecase.Renderer
	logger   *slog.Logger
	mcp      *mcpserver.MCPServer
}

// RenderResult is the JSON payload of render_dorks.
type RenderResult struct {
	Target     string                    `json:"target"`
	BaseURL    string                    `json:"base_url"`
	Categories []domain.RenderedCategory `json:"categories"`
}

// CategorySummary is one entry of the list_dork_categories payload.
type CategorySummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Dorks int    `json:"dorks"`
}

// New creates the MCP server and registers its tools.
func New(catalog *domain.Catalog, renderer *usecase.Renderer, version string, logger *slog.Logger) *Server {
	s := &Server{
		catalog:  catalog,
		renderer: renderer,
		logger:   logger,
		mcp: mcpserver.NewMCPServer("dorkboard", version,
			mcpserver.WithToolCapabilities(false),
			mcpserver.WithRecovery(),
		),
	}
	s.registerTools()
	return s
}

// MCPServer returns the underlying server, for in-process clients.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcp
}

// Serve speaks MCP over the given reader and writer until ctx is canceled or
// the input closes. Logs must never go to out.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := mcpserver.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))

	s.logger.Info("mcp server listening on stdio",
		"categories", s.catalog.CategoryCount(),
		"dorks", s.catalog.DorkCount(),
	)
	err := stdio.Listen(ctx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("mcp stdio: %w", err)
	}
	return nil
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool(ToolRenderDorks,
			mcp.WithDescription("Render the Google dork catalog for a target domain. Returns every query and its search URL as JSON, optionally limited to one category."),
			mcp.WithString("target", mcp.Required(), mcp.Description("Target domain, e.g. example.com")),
			mcp.WithString("category", mcp.Description("Optional category ID; see list_dork_categories")),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleRender,
	)

	s.mcp.AddTool(
		mcp.NewTool(ToolListCategories,
			mcp.WithDescription("List the dork catalog categories with their IDs, names and dork counts."),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleListCategories,
	)
}

// handleRender renders for the requested target. Bad input is reported as a
// tool error result so the client model can correct itself.
func (s *Server) handleRender(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := req.RequireString("target")
	if err != nil {
		return mcp.NewToolResultError("target is required"), nil
	}
	target, err := domain.NormalizeTarget(raw)
	if err != nil {
		return mcp.NewToolResultError(uxerror.Humanize(err).Message), nil
	}

	var categories []domain.RenderedCategory
	if id := req.GetString("category", ""); id != "" {
		cat, err := s.catalog.Category(id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("unknown category %q; call %s for valid IDs", id, ToolListCategories)), nil
		}
		rc, err := s.renderer.RenderCategory(cat, target)
		if err != nil {
			return nil, err
		}
		categories = []domain.RenderedCategory{rc}
	} else {
		categories, err = s.renderer.RenderCatalog(ctx, s.catalog, target)
		if err != nil {
			return nil, err
		}
	}

	s.logger.Debug("render_dorks", "categories", len(categories))
	return jsonResult(RenderResult{
		Target:     target,
		BaseURL:    s.renderer.BaseURL(),
		Categories: categories,
	})
}

func (s *Server) handleListCategories(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cats := s.catalog.Categories()
	out := make([]CategorySummary, len(cats))
	for i, c := range cats {
		out[i] = CategorySummary{ID: c.ID, Name: c.Name, Dorks: len(c.Dorks)}
	}
	return jsonResult(out)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal tool result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
