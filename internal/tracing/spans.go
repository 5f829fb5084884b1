package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span names.
const (
	SpanCreate        = "extracttype.create"
	SpanQuery         = "extracttype.query"
	SpanImport        = "extracttype.import"
	SpanPrefixMCPTool = "mcp.tool."
)

// Span attribute keys.
const (
	AttrUID         = "extract_type.uid"
	AttrLayoutID    = "extract_type.layout_id"
	AttrFilterCount = "extract_type.filter_count"
	AttrResultCount = "extract_type.result_count"
	AttrImportSize  = "extract_type.import_size"
	AttrMCPToolName = "mcp.tool.name"
	AttrErrorType   = "error.type"
)

// Finish marks span as failed with err, or OK when err is nil.
// errType classifies the failure (validation, duplicate, store).
func Finish(span trace.Span, err error, errType string) {
	if err == nil {
		span.SetStatus(codes.Ok, "")
		return
	}
	span.RecordError(err)
	if errType != "" {
		span.SetAttributes(attribute.String(AttrErrorType, errType))
	}
	span.SetStatus(codes.Error, err.Error())
}
