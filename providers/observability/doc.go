// Package observability defines the tracing and logging interfaces used
// across tavily-mcp, plus the attribute keys they record.
//
// [Provider] composes [Tracer] and [Logger]. Spans travel through a
// [context.Context] with [ContextWithSpan] / [SpanFromContext], so the HTTP
// layer can add request events to the span opened for a tool call. An
// implementation backed by log/slog lives in the slog subpackage.
package observability
