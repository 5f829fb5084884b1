// Package mcpserver exposes the extract type registry as MCP tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/bigdbm/extractreg/internal/extracttype/application"
	"github.com/bigdbm/extractreg/internal/extracttype/domain"
	"github.com/bigdbm/extractreg/internal/log"
	"github.com/bigdbm/extractreg/internal/presentation"
	"github.com/bigdbm/extractreg/internal/tracing"
)

// Registry is the subset of the registry service the tools call.
type Registry interface {
	Create(ctx context.Context, req domain.CreateRequest) (*domain.ExtractType, error)
	Query(ctx context.Context, filter domain.QueryFilter) ([]*domain.ExtractType, error)
	Vocabulary() *domain.Vocabulary
}

var _ Registry = (*application.RegistryService)(nil)

// Deps holds the collaborators of a Server.
type Deps struct {
	Registry Registry
	Tracer   trace.Tracer
	Version  string
}

// Server is the MCP server for the registry.
type Server struct {
	mcp      *server.MCPServer
	registry Registry
	tracer   trace.Tracer
	tools    []string
}

// New creates a server with every registry tool registered.
func New(deps Deps) *Server {
	tracer := deps.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("noop")
	}
	version := deps.Version
	if version == "" {
		version = "dev"
	}

	s := &Server{
		registry: deps.Registry,
		tracer:   tracer,
	}
	s.mcp = server.NewMCPServer(
		"extractreg",
		version,
		server.WithToolCapabilities(false),
		server.WithInstructions("Register and look up extract types: file-format option "+
			"combinations bound to a layout. Call list_vocabulary to see allowed values."),
	)
	s.registerTools()
	return s
}

// ServeStdio serves MCP on stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	log.Info(log.CatMCP, "Starting stdio server", "tools", len(s.tools))
	return server.ServeStdio(s.mcp)
}

// Tools returns the registered tool names in registration order.
func (s *Server) Tools() []string {
	out := make([]string, len(s.tools))
	copy(out, s.tools)
	return out
}

type toolHandler func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)

func (s *Server) addTool(tool mcp.Tool, handler toolHandler) {
	s.tools = append(s.tools, tool.Name)
	s.mcp.AddTool(tool, s.traced(tool.Name, handler))
}

// traced wraps a handler in a span and logs its outcome.
func (s *Server) traced(name string, handler toolHandler) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx, span := s.tracer.Start(ctx, tracing.SpanPrefixMCPTool+name)
		defer span.End()
		span.SetAttributes(attribute.String(tracing.AttrMCPToolName, name))

		log.Debug(log.CatMCP, "Calling tool", "name", name)
		result, err := handler(ctx, req)
		if err != nil {
			log.Debug(log.CatMCP, "Tool execution failed", "name", name, "error", err)
			tracing.Finish(span, err, "internal")
			return nil, err
		}
		if result != nil && result.IsError {
			tracing.Finish(span, fmt.Errorf("tool %s returned an error result", name), "tool")
			return result, nil
		}
		tracing.Finish(span, nil, "")
		return result, nil
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

// errorResult reports a registry failure to the client as a tool error.
func errorResult(err error) (*mcp.CallToolResult, error) {
	result, marshalErr := jsonResult(map[string]presentation.ErrorDTO{"error": presentation.FromError(err)})
	if marshalErr != nil {
		return nil, marshalErr
	}
	result.IsError = true
	return result, nil
}
