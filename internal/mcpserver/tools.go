package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bigdbm/extractreg/internal/extracttype/domain"
	"github.com/bigdbm/extractreg/internal/presentation"
)

// Tool names.
const (
	ToolCreate     = "create_extract_type"
	ToolQuery      = "query_extract_types"
	ToolVocabulary = "list_vocabulary"
)

func (s *Server) registerTools() {
	vocab := s.registry.Vocabulary()

	createOpts := []mcp.ToolOption{
		mcp.WithDescription("Register a new extract type. Every enum attribute is required; " +
			"free-text attributes default to empty. Identical definitions are rejected."),
	}
	queryOpts := []mcp.ToolOption{
		mcp.WithDescription("List extract types matching every supplied attribute exactly. " +
			"Omit all attributes to list everything."),
		mcp.WithReadOnlyHintAnnotation(true),
	}
	for _, attr := range domain.Attributes() {
		createOpts = append(createOpts, mcp.WithString(attr.String(), attributeOptions(vocab, attr, true)...))
		queryOpts = append(queryOpts, mcp.WithString(attr.String(), attributeOptions(vocab, attr, false)...))
	}

	s.addTool(mcp.NewTool(ToolCreate, createOpts...), s.handleCreate)
	s.addTool(mcp.NewTool(ToolQuery, queryOpts...), s.handleQuery)
	s.addTool(mcp.NewTool(ToolVocabulary,
		mcp.WithDescription("Show the allowed values of each enum attribute"),
		mcp.WithReadOnlyHintAnnotation(true),
	), s.handleVocabulary)
}

func attributeOptions(vocab *domain.Vocabulary, attr domain.Attribute, forCreate bool) []mcp.PropertyOption {
	desc := fmt.Sprintf("Value of %s", attr)
	if attr == domain.AttrLayoutID {
		desc = "Identifier of an existing layout"
	}
	opts := []mcp.PropertyOption{mcp.Description(desc)}
	if allowed, ok := vocab.Allowed(attr); ok {
		opts = append(opts, mcp.Enum(allowed...))
	}
	if forCreate && !attr.IsFreeText() {
		opts = append(opts, mcp.Required())
	}
	return opts
}

func (s *Server) handleCreate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	var create domain.CreateRequest
	for _, av := range []struct {
		attr domain.Attribute
		dst  **string
	}{
		{domain.AttrLayoutID, &create.LayoutID},
		{domain.AttrDelimiter, &create.Delimiter},
		{domain.AttrFullyQualified, &create.FullyQualified},
		{domain.AttrSplitBySize, &create.SplitBySize},
		{domain.AttrStorageFiles, &create.StorageFiles},
		{domain.AttrArchiveType, &create.ArchiveType},
		{domain.AttrExtension, &create.Extension},
	} {
		v, err := stringArg(args, av.attr)
		if err != nil {
			return errorResult(err)
		}
		*av.dst = v
	}
	for _, tv := range []struct {
		attr domain.Attribute
		dst  *string
	}{
		{domain.AttrInternalName, &create.InternalName},
		{domain.AttrNamingConvention, &create.NamingConvention},
		{domain.AttrExample, &create.Example},
		{domain.AttrObservation, &create.Observation},
	} {
		v, err := stringArg(args, tv.attr)
		if err != nil {
			return errorResult(err)
		}
		if v != nil {
			*tv.dst = *v
		}
	}

	record, err := s.registry.Create(ctx, create)
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(presentation.FromDomainExtractType(record))
}

func (s *Server) handleQuery(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	var filter domain.QueryFilter
	for _, attr := range domain.Attributes() {
		v, err := stringArg(args, attr)
		if err != nil {
			return errorResult(err)
		}
		if v != nil {
			filter.Set(attr, *v)
		}
	}

	records, err := s.registry.Query(ctx, filter)
	if err != nil {
		return errorResult(err)
	}
	return jsonResult(presentation.FromDomainExtractTypes(records))
}

func (s *Server) handleVocabulary(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(presentation.FromVocabulary(s.registry.Vocabulary()))
}

// stringArg returns nil when the argument is absent or null.
func stringArg(args map[string]any, attr domain.Attribute) (*string, error) {
	raw, ok := args[attr.String()]
	if !ok || raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case string:
		return &v, nil
	case float64:
		// JSON numbers arrive as float64; accept integral layout ids.
		if v == float64(int64(v)) {
			s := fmt.Sprintf("%d", int64(v))
			return &s, nil
		}
	}
	return nil, &domain.ValidationError{Attribute: attr, Value: fmt.Sprint(raw), Reason: "must be a string"}
}
