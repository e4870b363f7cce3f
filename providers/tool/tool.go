package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/leofalp/tavily-mcp/core/parse"
	"github.com/leofalp/tavily-mcp/internal/jsonschema"
	"github.com/leofalp/tavily-mcp/providers/observability"
)

// ErrInvalidArguments wraps argument parsing and validation failures. The
// tool function is not invoked in that case.
var ErrInvalidArguments = errors.New("invalid arguments")

// ToolDescription is the metadata advertised to a tool host.
type ToolDescription struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
}

// Tool represents a typed, callable tool. It binds a name, description and
// parameter schema to a Go function taking I and returning O.
// Use [NewTool] to construct a Tool; [GenericTool] abstracts over I and O.
type Tool[I, O any] struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
	Function    func(ctx context.Context, input I) (O, error)

	validator *jsonschema.Validator
}

// GenericTool is the type-erased interface for all tools, so they can be
// stored in a [Catalog] and dispatched by name.
type GenericTool interface {
	// ToolInfo returns the metadata used to advertise this tool.
	ToolInfo() ToolDescription

	// Call invokes the tool with a JSON-encoded input string and returns a
	// JSON-encoded output string.
	Call(ctx context.Context, inputJson string) (string, error)
}

type funcToolOptions struct {
	Description string
	Parameters  *jsonschema.Schema
	Strict      bool
}

// WithDescription sets a human-readable description for the tool.
func WithDescription(description string) func(tool *funcToolOptions) {
	return func(s *funcToolOptions) {
		s.Description = description
	}
}

// WithParameters sets the input schema advertised for the tool.
func WithParameters(schema *jsonschema.Schema) func(tool *funcToolOptions) {
	return func(s *funcToolOptions) {
		s.Parameters = schema
	}
}

// WithStrictArguments makes Call validate the input against the parameter
// schema before invoking the function. It has no effect without a schema.
func WithStrictArguments(strict bool) func(tool *funcToolOptions) {
	return func(s *funcToolOptions) {
		s.Strict = strict
	}
}

// NewTool constructs a new [Tool] with the given name and handler function.
//
// Example:
//
//	search := tool.NewTool("tavily-search", searchFunc,
//	    tool.WithDescription("Searches the web."),
//	    tool.WithParameters(schema),
//	)
func NewTool[I, O any](name string, function func(ctx context.Context, input I) (O, error), options ...func(tool *funcToolOptions)) *Tool[I, O] {
	toolOptions := &funcToolOptions{}
	for _, option := range options {
		option(toolOptions)
	}

	newTool := &Tool[I, O]{
		Name:        name,
		Description: toolOptions.Description,
		Parameters:  toolOptions.Parameters,
		Function:    function,
	}
	if toolOptions.Strict && toolOptions.Parameters != nil {
		newTool.validator = jsonschema.NewValidator(toolOptions.Parameters)
	}
	return newTool
}

// ToolInfo returns the [ToolDescription] used to advertise this tool.
func (t *Tool[I, O]) ToolInfo() ToolDescription {
	return ToolDescription{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  t.Parameters,
	}
}

// Strict reports whether arguments are validated before each call.
func (t *Tool[I, O]) Strict() bool {
	return t.validator != nil
}

// Call invokes the tool's underlying function with the given JSON-encoded input.
// It parses inputJson leniently into I, optionally validates it, executes the
// function and returns the result serialized as JSON. Span events are emitted
// at the start and end of execution when a span is present in ctx.
func (t *Tool[I, O]) Call(ctx context.Context, inputJson string) (string, error) {
	span := observability.SpanFromContext(ctx)

	if span != nil {
		span.AddEvent(observability.EventToolExecutionStart,
			observability.String(observability.AttrToolName, t.Name),
			observability.Int(observability.AttrToolInputSize, len(inputJson)),
		)
		defer span.AddEvent(observability.EventToolExecutionEnd)
	}

	start := time.Now()

	parsedInput, err := parse.ParseStringAs[I](inputJson)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidArguments, err)
		t.recordError(span, err, 0)
		return "", err
	}

	if t.validator != nil {
		if err := t.validate(parsedInput); err != nil {
			err = fmt.Errorf("%w: %w", ErrInvalidArguments, err)
			t.recordError(span, err, 0)
			return "", err
		}
	}

	output, err := t.Function(ctx, parsedInput)
	duration := time.Since(start)

	if err != nil {
		t.recordError(span, err, duration)
		return "", err
	}

	outputBytes, err := json.Marshal(output)
	if err != nil {
		t.recordError(span, err, duration)
		return "", err
	}

	if span != nil {
		span.SetAttributes(
			observability.Int(observability.AttrToolOutputSize, len(outputBytes)),
			observability.Duration(observability.AttrToolDuration, duration),
		)
	}

	return string(outputBytes), nil
}

// validate checks input against the parameter schema. The input is
// normalized to plain decoded JSON (float64 numbers) first.
func (t *Tool[I, O]) validate(input I) error {
	raw, err := json.Marshal(input)
	if err != nil {
		return err
	}
	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return err
	}
	return t.validator.Validate(instance)
}

func (t *Tool[I, O]) recordError(span observability.Span, err error, duration time.Duration) {
	if span == nil {
		return
	}
	span.RecordError(err)
	attrs := []observability.Attribute{observability.String(observability.AttrToolError, err.Error())}
	if duration > 0 {
		attrs = append(attrs, observability.Duration(observability.AttrToolDuration, duration))
	}
	span.SetAttributes(attrs...)
}
