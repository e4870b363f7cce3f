package tavily

import (
	"context"

	"github.com/leofalp/tavily-mcp/providers/tool"
)

type apiKeyContextKey struct{}

// ContextWithAPIKey returns a context carrying the credential for calls made
// through the tools of this package. An empty key leaves ctx unchanged.
func ContextWithAPIKey(ctx context.Context, apiKey string) context.Context {
	if apiKey == "" {
		return ctx
	}
	return context.WithValue(ctx, apiKeyContextKey{}, apiKey)
}

// APIKeyFromContext returns the credential stored by [ContextWithAPIKey].
func APIKeyFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	apiKey, _ := ctx.Value(apiKeyContextKey{}).(string)
	return apiKey
}

type toolOptions struct {
	apiKey string
	strict bool
}

// ToolOption configures the tools built by [NewTool] and [NewCatalog].
type ToolOption func(*toolOptions)

// WithAPIKey sets the credential used when the call context carries none.
func WithAPIKey(apiKey string) ToolOption {
	return func(o *toolOptions) {
		o.apiKey = apiKey
	}
}

// WithStrictArguments validates arguments against the tool schema before
// any request is sent.
func WithStrictArguments(strict bool) ToolOption {
	return func(o *toolOptions) {
		o.strict = strict
	}
}

// NewTool wraps client as the tool described by spec. Arguments are
// forwarded to the API unchanged; the result is the response document.
//
// The credential is taken from the call context first (see
// [ContextWithAPIKey]) and from [WithAPIKey] otherwise.
func NewTool(client *Client, spec ToolSpec, opts ...ToolOption) *tool.Tool[Params, Response] {
	options := &toolOptions{}
	for _, opt := range opts {
		opt(options)
	}

	op := spec.Operation
	fallbackKey := options.apiKey
	call := func(ctx context.Context, params Params) (Response, error) {
		apiKey := APIKeyFromContext(ctx)
		if apiKey == "" {
			apiKey = fallbackKey
		}
		return client.Call(ctx, op, params, apiKey)
	}

	return tool.NewTool(spec.Name, call,
		tool.WithDescription(spec.Description),
		tool.WithParameters(spec.InputSchema),
		tool.WithStrictArguments(options.strict),
	)
}

// NewCatalog returns a catalog holding the four tools backed by client.
func NewCatalog(client *Client, opts ...ToolOption) *tool.Catalog {
	catalog := tool.NewCatalog()
	for _, spec := range ToolSpecs() {
		catalog.AddTools(NewTool(client, spec, opts...))
	}
	return catalog
}
