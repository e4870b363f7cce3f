package observability

// Attribute keys, span names and event names shared by the adapter, the
// tool layer and the MCP server.

// --- Tool Execution Attributes ---

const (
	// AttrToolName is the name of the tool being executed
	AttrToolName = "tool.name"

	// AttrToolInputSize is the size of the serialized tool input in bytes
	AttrToolInputSize = "tool.input.size"

	// AttrToolOutputSize is the size of the serialized tool output in bytes
	AttrToolOutputSize = "tool.output.size"

	// AttrToolDuration is the execution duration
	AttrToolDuration = "tool.duration"

	// AttrToolError is the error message if tool execution failed
	AttrToolError = "tool.error"
)

// --- Tavily Attributes ---

const (
	// AttrTavilyOperation is the remote operation (search, extract, crawl, map)
	AttrTavilyOperation = "tavily.operation"

	// AttrTavilyErrorKind classifies a failed call (missing_api_key, invalid_api_key, ...)
	AttrTavilyErrorKind = "tavily.error.kind"
)

// --- HTTP Attributes ---

const (
	// AttrHTTPMethod is the HTTP method (GET, POST, etc.)
	AttrHTTPMethod = "http.method"

	// AttrHTTPStatusCode is the HTTP response status code
	AttrHTTPStatusCode = "http.status_code"

	// AttrHTTPURL is the full request URL
	AttrHTTPURL = "http.url"

	// AttrHTTPRequestBodySize is the request body size in bytes
	AttrHTTPRequestBodySize = "http.request.body.size"

	// AttrHTTPResponseBodySize is the response body size in bytes
	AttrHTTPResponseBodySize = "http.response.body.size"
)

// --- MCP Attributes ---

const (
	// AttrMCPTransport is the transport serving the session (stdio, http)
	AttrMCPTransport = "mcp.transport"

	// AttrMCPCredentialSource tells where the call credential came from
	// (header, query, config). Never the credential itself.
	AttrMCPCredentialSource = "mcp.credential.source"
)

// --- General Attributes ---

const (
	// AttrError is the error message
	AttrError = "error"

	// AttrDuration is the operation duration
	AttrDuration = "duration"

	// AttrStatus is the operation status
	AttrStatus = "status"

	// AttrStatusDescription is the status description
	AttrStatusDescription = "status_description"
)

// --- Span Names ---

const (
	// SpanToolExecution is the span name for tool executions
	SpanToolExecution = "tool.execution"

	// SpanTavilyRequest is the span name for a single remote API call
	SpanTavilyRequest = "tavily.request"
)

// --- Event Names ---

const (
	// EventToolExecutionStart marks the start of tool execution
	EventToolExecutionStart = "tool.execution.start"

	// EventToolExecutionEnd marks the end of tool execution
	EventToolExecutionEnd = "tool.execution.end"
)
