package tavily

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/leofalp/tavily-mcp/internal/utils"
	"github.com/leofalp/tavily-mcp/providers/observability"
)

const (
	// DefaultBaseURL is the production API root.
	DefaultBaseURL = "https://api.tavily.com"

	// DefaultClientSource is sent in the client source header on every request.
	DefaultClientSource = "MCP"

	headerClientSource = "X-Client-Source"
	fieldAPIKey        = "api_key"
)

// Endpoints maps each operation to its URL. The zero value is not usable;
// build one with [DefaultEndpoints] or [EndpointsFor].
type Endpoints struct {
	search  string
	extract string
	crawl   string
	mapURL  string
}

// DefaultEndpoints returns the production endpoints.
func DefaultEndpoints() Endpoints {
	endpoints, _ := EndpointsFor(DefaultBaseURL)
	return endpoints
}

// EndpointsFor derives the four endpoints from baseURL by appending
// "/search", "/extract", "/crawl" and "/map".
func EndpointsFor(baseURL string) (Endpoints, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return Endpoints{}, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" || parsed.Host == "" {
		return Endpoints{}, fmt.Errorf("invalid base URL %q: scheme must be http or https and host must be set", baseURL)
	}
	if parsed.RawQuery != "" || parsed.ForceQuery || parsed.Fragment != "" || strings.Contains(baseURL, "#") {
		return Endpoints{}, fmt.Errorf("invalid base URL %q: query and fragment are not allowed", baseURL)
	}

	root := strings.TrimRight(baseURL, "/")
	return Endpoints{
		search:  root + "/search",
		extract: root + "/extract",
		crawl:   root + "/crawl",
		mapURL:  root + "/map",
	}, nil
}

// URL returns the endpoint for op, or "" when op is unknown.
func (e Endpoints) URL(op Operation) string {
	switch op {
	case OperationSearch:
		return e.search
	case OperationExtract:
		return e.extract
	case OperationCrawl:
		return e.crawl
	case OperationMap:
		return e.mapURL
	}
	return ""
}

// Client issues requests against the four endpoints. A Client holds no
// per-call state and is safe for concurrent use; the credential is passed
// to every call.
type Client struct {
	httpClient   *http.Client
	endpoints    Endpoints
	clientSource string

	timeout    time.Duration
	hasTimeout bool
}

// ClientOption configures a [Client].
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout sets the per-request timeout. Zero disables it. It applies to
// the HTTP client in use after all options, including one given by
// [WithHTTPClient] in any position; that client itself is not modified.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
		c.hasTimeout = true
	}
}

// WithEndpoints overrides the endpoint table, typically for tests.
func WithEndpoints(endpoints Endpoints) ClientOption {
	return func(c *Client) {
		c.endpoints = endpoints
	}
}

// WithClientSource overrides the value of the client source header.
func WithClientSource(source string) ClientOption {
	return func(c *Client) {
		if source != "" {
			c.clientSource = source
		}
	}
}

// NewClient creates a Client pointed at the production endpoints.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient:   &http.Client{},
		endpoints:    DefaultEndpoints(),
		clientSource: DefaultClientSource,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.hasTimeout {
		clone := *c.httpClient
		clone.Timeout = c.timeout
		c.httpClient = &clone
	}
	return c
}

// Endpoints returns the endpoint table in use.
func (c *Client) Endpoints() Endpoints {
	return c.endpoints
}

// Call sends params to the endpoint for op, authenticated with apiKey, and
// returns the decoded response document.
//
// The request body is params with an "api_key" member set to apiKey
// (overriding any caller value); params itself is never modified. The key is
// also sent as a bearer token.
//
// Errors:
//   - ErrMissingAPIKey when apiKey is empty; no request is made
//   - ErrInvalidAPIKey for HTTP 401
//   - ErrUsageLimitExceeded for HTTP 429
//   - *RequestError for any other non-2xx status
//   - *TransportError when no response could be obtained or decoded
func (c *Client) Call(ctx context.Context, op Operation, params Parameters, apiKey string) (Response, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}
	if apiKey == "" {
		return nil, classified(op, ErrMissingAPIKey)
	}

	var document Params
	if params != nil {
		p, err := params.AsParams()
		if err != nil {
			return nil, fmt.Errorf("tavily %s: %w", op, err)
		}
		document = p
	}
	body := make(Params, len(document)+1)
	maps.Copy(body, document)
	body[fieldAPIKey] = apiKey

	ctx, span := c.startSpan(ctx, op)
	if span != nil {
		defer span.End()
	}

	res, raw, err := utils.DoPostRaw(ctx, c.httpClient, c.endpoints.URL(op), apiKey, body,
		utils.HeaderOption{Key: "Accept", Value: "application/json"},
		utils.HeaderOption{Key: headerClientSource, Value: c.clientSource},
	)
	if err != nil {
		if errors.Is(err, utils.ErrMarshalBody) {
			return nil, fmt.Errorf("tavily %s: %w", op, err)
		}
		return nil, c.fail(span, &TransportError{Operation: op, Err: err})
	}

	if span != nil {
		span.SetAttributes(observability.Int(observability.AttrHTTPStatusCode, res.StatusCode))
	}

	switch {
	case res.StatusCode == http.StatusUnauthorized:
		return nil, c.fail(span, classified(op, ErrInvalidAPIKey))
	case res.StatusCode == http.StatusTooManyRequests:
		return nil, c.fail(span, classified(op, ErrUsageLimitExceeded))
	case !utils.IsSuccess(res.StatusCode):
		return nil, c.fail(span, &RequestError{Operation: op, StatusCode: res.StatusCode, StatusText: utils.StatusText(res)})
	}

	var response Response
	if err := decodeDocument(raw, &response); err != nil {
		return nil, c.fail(span, &TransportError{Operation: op, Err: fmt.Errorf("malformed response body: %w", err)})
	}
	if response == nil {
		return nil, c.fail(span, &TransportError{Operation: op, Err: errors.New("malformed response body: not a JSON object")})
	}

	if span != nil {
		span.SetStatus(observability.StatusOK, "")
	}
	return response, nil
}

// Search calls the search endpoint.
func (c *Client) Search(ctx context.Context, params Parameters, apiKey string) (Response, error) {
	return c.Call(ctx, OperationSearch, params, apiKey)
}

// Extract calls the extract endpoint.
func (c *Client) Extract(ctx context.Context, params Parameters, apiKey string) (Response, error) {
	return c.Call(ctx, OperationExtract, params, apiKey)
}

// Crawl calls the crawl endpoint.
func (c *Client) Crawl(ctx context.Context, params Parameters, apiKey string) (Response, error) {
	return c.Call(ctx, OperationCrawl, params, apiKey)
}

// Map calls the map endpoint.
func (c *Client) Map(ctx context.Context, params Parameters, apiKey string) (Response, error) {
	return c.Call(ctx, OperationMap, params, apiKey)
}

// startSpan opens a request span when an observer is present in ctx.
func (c *Client) startSpan(ctx context.Context, op Operation) (context.Context, observability.Span) {
	observer := observability.ObserverFromContext(ctx)
	if observer == nil {
		return ctx, nil
	}
	return observer.StartSpan(ctx, observability.SpanTavilyRequest,
		observability.String(observability.AttrTavilyOperation, string(op)),
	)
}

func (c *Client) fail(span observability.Span, err error) error {
	if span != nil {
		span.RecordError(err)
		span.SetAttributes(observability.String(observability.AttrTavilyErrorKind, ErrorKind(err)))
		span.SetStatus(observability.StatusError, err.Error())
	}
	return err
}
