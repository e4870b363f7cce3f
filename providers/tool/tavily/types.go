package tavily

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Operation names one remote capability. Each operation has its own endpoint.
type Operation string

const (
	OperationSearch  Operation = "search"
	OperationExtract Operation = "extract"
	OperationCrawl   Operation = "crawl"
	OperationMap     Operation = "map"
)

// Operations returns the four operations in a stable order.
func Operations() []Operation {
	return []Operation{OperationSearch, OperationExtract, OperationCrawl, OperationMap}
}

// Valid reports whether o is one of the four known operations.
func (o Operation) Valid() bool {
	switch o {
	case OperationSearch, OperationExtract, OperationCrawl, OperationMap:
		return true
	}
	return false
}

// Parameters is anything that can be turned into the request document sent
// to the API. [Params] and the typed records below implement it.
type Parameters interface {
	AsParams() (Params, error)
}

// Params is the open request document. Keys and values are forwarded as-is;
// the client only adds the credential.
type Params map[string]any

// AsParams returns p unchanged.
func (p Params) AsParams() (Params, error) {
	return p, nil
}

// SearchParams is the typed form of a search request. Zero values are
// omitted from the wire, so the remote defaults apply.
type SearchParams struct {
	Query                    string   `json:"query"`
	SearchDepth              string   `json:"search_depth,omitempty"`
	Topic                    string   `json:"topic,omitempty"`
	Days                     int      `json:"days,omitempty"`
	TimeRange                string   `json:"time_range,omitempty"`
	StartDate                string   `json:"start_date,omitempty"`
	EndDate                  string   `json:"end_date,omitempty"`
	MaxResults               int      `json:"max_results,omitempty"`
	IncludeAnswer            bool     `json:"include_answer,omitempty"`
	IncludeImages            bool     `json:"include_images,omitempty"`
	IncludeImageDescriptions bool     `json:"include_image_descriptions,omitempty"`
	IncludeRawContent        bool     `json:"include_raw_content,omitempty"`
	IncludeDomains           []string `json:"include_domains,omitempty"`
	ExcludeDomains           []string `json:"exclude_domains,omitempty"`
	Country                  string   `json:"country,omitempty"`
	IncludeFavicon           bool     `json:"include_favicon,omitempty"`
}

func (p SearchParams) AsParams() (Params, error) { return toParams(p) }

// ExtractParams is the typed form of an extract request.
type ExtractParams struct {
	URLs           []string `json:"urls"`
	ExtractDepth   string   `json:"extract_depth,omitempty"`
	IncludeImages  bool     `json:"include_images,omitempty"`
	Format         string   `json:"format,omitempty"`
	IncludeFavicon bool     `json:"include_favicon,omitempty"`
}

func (p ExtractParams) AsParams() (Params, error) { return toParams(p) }

// CrawlParams is the typed form of a crawl request.
type CrawlParams struct {
	URL            string   `json:"url"`
	MaxDepth       int      `json:"max_depth,omitempty"`
	MaxBreadth     int      `json:"max_breadth,omitempty"`
	Limit          int      `json:"limit,omitempty"`
	Instructions   string   `json:"instructions,omitempty"`
	SelectPaths    []string `json:"select_paths,omitempty"`
	SelectDomains  []string `json:"select_domains,omitempty"`
	AllowExternal  bool     `json:"allow_external,omitempty"`
	Categories     []string `json:"categories,omitempty"`
	ExtractDepth   string   `json:"extract_depth,omitempty"`
	Format         string   `json:"format,omitempty"`
	IncludeFavicon bool     `json:"include_favicon,omitempty"`
}

func (p CrawlParams) AsParams() (Params, error) { return toParams(p) }

// MapParams is the typed form of a map request.
type MapParams struct {
	URL           string   `json:"url"`
	MaxDepth      int      `json:"max_depth,omitempty"`
	MaxBreadth    int      `json:"max_breadth,omitempty"`
	Limit         int      `json:"limit,omitempty"`
	Instructions  string   `json:"instructions,omitempty"`
	SelectPaths   []string `json:"select_paths,omitempty"`
	SelectDomains []string `json:"select_domains,omitempty"`
	AllowExternal bool     `json:"allow_external,omitempty"`
	Categories    []string `json:"categories,omitempty"`
}

func (p MapParams) AsParams() (Params, error) { return toParams(p) }

func toParams(v any) (Params, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("error marshaling parameters: %w", err)
	}
	var params Params
	if err := decodeDocument(raw, &params); err != nil {
		return nil, fmt.Errorf("error converting parameters: %w", err)
	}
	return params, nil
}

// Response is the decoded response document. Numbers are kept as
// json.Number so re-encoding reproduces them exactly; unknown fields are
// preserved.
type Response map[string]any

// Decode fills v (typically one of the typed views below) from the document.
// The document itself is not modified.
func (r Response) Decode(v any) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("error marshaling response: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}

// decodeDocument decodes exactly one JSON object from raw, preserving
// number literals.
func decodeDocument(raw []byte, v any) error {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	if err := decoder.Decode(v); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON document")
	}
	return nil
}

// === Typed response views ===

// SearchResponse is the typed view of a search (and basic extract) response.
type SearchResponse struct {
	Query             string         `json:"query"`
	FollowUpQuestions []string       `json:"follow_up_questions,omitempty"`
	Answer            string         `json:"answer,omitempty"`
	Images            []Image        `json:"images,omitempty"`
	Results           []SearchResult `json:"results"`
	ResponseTime      float64        `json:"response_time,omitempty"`
	RequestID         string         `json:"request_id,omitempty"`
}

// SearchResult is a single search hit.
type SearchResult struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Content       string  `json:"content"`
	Score         float64 `json:"score"`
	PublishedDate string  `json:"published_date,omitempty"`
	RawContent    string  `json:"raw_content,omitempty"`
	Favicon       string  `json:"favicon,omitempty"`
}

// Image is a query-related image. The API sends either a bare URL string
// or an object with a description; both decode into Image.
type Image struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

func (i *Image) UnmarshalJSON(data []byte) error {
	var url string
	if err := json.Unmarshal(data, &url); err == nil {
		*i = Image{URL: url}
		return nil
	}
	type plain Image
	var img plain
	if err := json.Unmarshal(data, &img); err != nil {
		return err
	}
	*i = Image(img)
	return nil
}

// ExtractResponse is the typed view of an extract response.
type ExtractResponse struct {
	Results       []ExtractResult `json:"results"`
	FailedResults []FailedResult  `json:"failed_results,omitempty"`
	ResponseTime  float64         `json:"response_time,omitempty"`
	RequestID     string          `json:"request_id,omitempty"`
}

// ExtractResult is the content extracted from one URL.
type ExtractResult struct {
	URL        string   `json:"url"`
	RawContent string   `json:"raw_content"`
	Images     []string `json:"images,omitempty"`
	Favicon    string   `json:"favicon,omitempty"`
}

// FailedResult is a URL the API could not extract.
type FailedResult struct {
	URL   string `json:"url"`
	Error string `json:"error,omitempty"`
}

// CrawlResponse is the typed view of a crawl response.
type CrawlResponse struct {
	BaseURL      string        `json:"base_url"`
	Results      []CrawlResult `json:"results"`
	ResponseTime float64       `json:"response_time"`
	RequestID    string        `json:"request_id,omitempty"`
}

// CrawlResult is one crawled page.
type CrawlResult struct {
	URL        string `json:"url"`
	RawContent string `json:"raw_content"`
	Favicon    string `json:"favicon,omitempty"`
}

// MapResponse is the typed view of a map response.
type MapResponse struct {
	BaseURL      string   `json:"base_url"`
	Results      []string `json:"results"`
	ResponseTime float64  `json:"response_time"`
	RequestID    string   `json:"request_id,omitempty"`
}
