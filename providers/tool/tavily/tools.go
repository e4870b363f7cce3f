package tavily

import (
	"github.com/leofalp/tavily-mcp/internal/jsonschema"
)

// Tool names as advertised to MCP hosts.
const (
	ToolSearch  = "tavily-search"
	ToolExtract = "tavily-extract"
	ToolCrawl   = "tavily-crawl"
	ToolMap     = "tavily-map"
)

// ToolSpec is the static metadata of one tool: its name, description,
// backing operation and input schema.
type ToolSpec struct {
	Name        string
	Description string
	Operation   Operation
	InputSchema *jsonschema.Schema
}

// ToolSpecs returns the metadata of the four tools in a stable order.
// Each call builds fresh schemas, so callers may modify the result.
func ToolSpecs() []ToolSpec {
	return []ToolSpec{
		{
			Name:        ToolSearch,
			Description: "A powerful web search tool that provides comprehensive, real-time results using Tavily's AI search engine. Returns relevant web content with customizable parameters for result count, content type, and domain filtering. Ideal for gathering current information, news, and detailed web content analysis.",
			Operation:   OperationSearch,
			InputSchema: searchSchema(),
		},
		{
			Name:        ToolExtract,
			Description: "A powerful web content extraction tool that retrieves and processes raw content from specified URLs, ideal for data collection, content analysis, and research tasks.",
			Operation:   OperationExtract,
			InputSchema: extractSchema(),
		},
		{
			Name:        ToolCrawl,
			Description: "A powerful web crawler that initiates a structured web crawl starting from a specified base URL. The crawler expands from that point like a tree, following internal links across pages. You can control how deep and wide it goes, and guide it to focus on specific sections of the site.",
			Operation:   OperationCrawl,
			InputSchema: crawlSchema(),
		},
		{
			Name:        ToolMap,
			Description: "A powerful web mapping tool that creates a structured map of website URLs, allowing you to discover and analyze site structure, content organization, and navigation paths. Perfect for site audits, content discovery, and understanding website architecture.",
			Operation:   OperationMap,
			InputSchema: mapSchema(),
		},
	}
}

// ToolSpecFor returns the metadata of the named tool.
func ToolSpecFor(name string) (ToolSpec, bool) {
	for _, spec := range ToolSpecs() {
		if spec.Name == name {
			return spec, true
		}
	}
	return ToolSpec{}, false
}

var crawlCategories = []string{"Careers", "Blog", "Documentation", "About", "Pricing", "Community", "Developers", "Contact", "Media"}

const (
	descFavicon       = "Whether to include the favicon URL for each result"
	descFormat        = "The format of the extracted web page content. markdown returns content in markdown format. text returns plain text and may increase latency."
	descMaxBreadth    = "Max number of links to follow per level of the tree (i.e., per page)"
	descLimit         = "Total number of links the crawler will process before stopping"
	descInstructions  = "Natural language instructions for the crawler"
	descSelectPaths   = "Regex patterns to select only URLs with specific path patterns (e.g., /docs/.*, /api/v1.*)"
	descSelectDomains = "Regex patterns to select crawling to specific domains or subdomains (e.g., ^docs\\.example\\.com$)"
	descAllowExternal = "Whether to allow following links that go to external domains"
	descCategories    = "Filter URLs using predefined categories like documentation, blog, api, etc"
)

func searchSchema() *jsonschema.Schema {
	return jsonschema.Object(map[string]*jsonschema.Schema{
		"query": {
			Type:        "string",
			Description: "Search query",
		},
		"search_depth": {
			Type:        "string",
			Enum:        jsonschema.StringEnum("basic", "advanced"),
			Description: "The depth of the search. It can be 'basic' or 'advanced'",
			Default:     "basic",
		},
		"topic": {
			Type:        "string",
			Enum:        jsonschema.StringEnum("general", "news"),
			Description: "The category of the search. This will determine which of our agents will be used for the search",
			Default:     "general",
		},
		"days": {
			Type:        "number",
			Description: "The number of days back from the current date to include in the search results. This specifies the time frame of data to be retrieved. Please note that this feature is only available when using the 'news' search topic",
			Default:     3,
		},
		"time_range": {
			Type:        "string",
			Description: "The time range back from the current date to include in the search results. This feature is available for both 'general' and 'news' search topics",
			Enum:        jsonschema.StringEnum("day", "week", "month", "year", "d", "w", "m", "y"),
		},
		"start_date": {
			Type:        "string",
			Description: "Will return all results after the specified start date. Required to be written in the format YYYY-MM-DD.",
			Default:     "",
		},
		"end_date": {
			Type:        "string",
			Description: "Will return all results before the specified end date. Required to be written in the format YYYY-MM-DD",
			Default:     "",
		},
		"max_results": {
			Type:        "number",
			Description: "The maximum number of search results to return",
			Default:     10,
			Minimum:     jsonschema.Bound(5),
			Maximum:     jsonschema.Bound(20),
		},
		"include_images": {
			Type:        "boolean",
			Description: "Include a list of query-related images in the response",
			Default:     false,
		},
		"include_image_descriptions": {
			Type:        "boolean",
			Description: "Include a list of query-related images and their descriptions in the response",
			Default:     false,
		},
		"include_raw_content": {
			Type:        "boolean",
			Description: "Include the cleaned and parsed HTML content of each search result",
			Default:     false,
		},
		"include_domains": {
			Type:        "array",
			Items:       &jsonschema.Schema{Type: "string"},
			Description: "A list of domains to specifically include in the search results, if the user asks to search on specific sites set this to the domain of the site",
			Default:     []string{},
		},
		"exclude_domains": {
			Type:        "array",
			Items:       &jsonschema.Schema{Type: "string"},
			Description: "List of domains to specifically exclude, if the user asks to exclude a domain set this to the domain of the site",
			Default:     []string{},
		},
		"country": {
			Type:        "string",
			Enum:        jsonschema.StringEnum(countries...),
			Description: "Boost search results from a specific country. This will prioritize content from the selected country in the search results. Available only if topic is general. Country names MUST be written in lowercase, plain English, with spaces and no underscores.",
			Default:     "",
		},
		"include_favicon": {
			Type:        "boolean",
			Description: descFavicon,
			Default:     false,
		},
	}, "query")
}

func extractSchema() *jsonschema.Schema {
	return jsonschema.Object(map[string]*jsonschema.Schema{
		"urls": {
			Type:        "array",
			Items:       &jsonschema.Schema{Type: "string"},
			Description: "List of URLs to extract content from",
		},
		"extract_depth": {
			Type:        "string",
			Enum:        jsonschema.StringEnum("basic", "advanced"),
			Description: "Depth of extraction - 'basic' or 'advanced', if usrls are linkedin use 'advanced' or if explicitly told to use advanced",
			Default:     "basic",
		},
		"include_images": {
			Type:        "boolean",
			Description: "Include a list of images extracted from the urls in the response",
			Default:     false,
		},
		"format": {
			Type:        "string",
			Enum:        jsonschema.StringEnum("markdown", "text"),
			Description: descFormat,
			Default:     "markdown",
		},
		"include_favicon": {
			Type:        "boolean",
			Description: descFavicon,
			Default:     false,
		},
	}, "urls")
}

// siteProperties are the parameters shared by crawl and map.
func siteProperties(urlDescription, depthDescription string) map[string]*jsonschema.Schema {
	return map[string]*jsonschema.Schema{
		"url": {
			Type:        "string",
			Description: urlDescription,
		},
		"max_depth": {
			Type:        "integer",
			Description: depthDescription,
			Default:     1,
			Minimum:     jsonschema.Bound(1),
		},
		"max_breadth": {
			Type:        "integer",
			Description: descMaxBreadth,
			Default:     20,
			Minimum:     jsonschema.Bound(1),
		},
		"limit": {
			Type:        "integer",
			Description: descLimit,
			Default:     50,
			Minimum:     jsonschema.Bound(1),
		},
		"instructions": {
			Type:        "string",
			Description: descInstructions,
		},
		"select_paths": {
			Type:        "array",
			Items:       &jsonschema.Schema{Type: "string"},
			Description: descSelectPaths,
			Default:     []string{},
		},
		"select_domains": {
			Type:        "array",
			Items:       &jsonschema.Schema{Type: "string"},
			Description: descSelectDomains,
			Default:     []string{},
		},
		"allow_external": {
			Type:        "boolean",
			Description: descAllowExternal,
			Default:     false,
		},
		"categories": {
			Type: "array",
			Items: &jsonschema.Schema{
				Type: "string",
				Enum: jsonschema.StringEnum(crawlCategories...),
			},
			Description: descCategories,
			Default:     []string{},
		},
	}
}

func crawlSchema() *jsonschema.Schema {
	properties := siteProperties(
		"The root URL to begin the crawl",
		"Max depth of the crawl. Defines how far from the base URL the crawler can explore.",
	)
	properties["extract_depth"] = &jsonschema.Schema{
		Type:        "string",
		Enum:        jsonschema.StringEnum("basic", "advanced"),
		Description: "Advanced extraction retrieves more data, including tables and embedded content, with higher success but may increase latency",
		Default:     "basic",
	}
	properties["format"] = &jsonschema.Schema{
		Type:        "string",
		Enum:        jsonschema.StringEnum("markdown", "text"),
		Description: descFormat,
		Default:     "markdown",
	}
	properties["include_favicon"] = &jsonschema.Schema{
		Type:        "boolean",
		Description: descFavicon,
		Default:     false,
	}
	return jsonschema.Object(properties, "url")
}

func mapSchema() *jsonschema.Schema {
	return jsonschema.Object(siteProperties(
		"The root URL to begin the mapping",
		"Max depth of the mapping. Defines how far from the base URL the crawler can explore",
	), "url")
}
