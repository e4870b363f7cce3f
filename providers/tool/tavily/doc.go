// Package tavily adapts the Tavily search, extract, crawl and map APIs.
//
// [Client] issues one authenticated POST per call and classifies failures
// into [ErrMissingAPIKey], [ErrInvalidAPIKey], [ErrUsageLimitExceeded],
// [*RequestError] and [*TransportError]. Request parameters and responses
// pass through unchanged: [Params] and [Response] are open JSON documents,
// and the typed records ([SearchParams], [SearchResponse], ...) convert to
// and from them.
//
// [ToolSpecs] describes the four MCP tools (tavily-search, tavily-extract,
// tavily-crawl, tavily-map) and [NewCatalog] builds them as [tool.Tool]
// values backed by a Client.
package tavily
