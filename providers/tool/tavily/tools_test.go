package tavily

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"testing"

	"github.com/leofalp/tavily-mcp/internal/jsonschema"
	"github.com/leofalp/tavily-mcp/providers/tool"
)

func mustSpec(t *testing.T, name string) ToolSpec {
	t.Helper()
	spec, ok := ToolSpecFor(name)
	if !ok {
		t.Fatalf("no tool spec named %q", name)
	}
	return spec
}

func mustProperty(t *testing.T, schema *jsonschema.Schema, name string) *jsonschema.Schema {
	t.Helper()
	property := schema.Property(name)
	if property == nil {
		t.Fatalf("schema has no property %q", name)
	}
	return property
}

func enumStrings(enum []any) []string {
	values := make([]string, len(enum))
	for i, v := range enum {
		values[i] = fmt.Sprint(v)
	}
	return values
}

func TestToolSpecs_NamesAndOperations(t *testing.T) {
	specs := ToolSpecs()
	want := []struct {
		name string
		op   Operation
	}{
		{ToolSearch, OperationSearch},
		{ToolExtract, OperationExtract},
		{ToolCrawl, OperationCrawl},
		{ToolMap, OperationMap},
	}

	if len(specs) != len(want) {
		t.Fatalf("expected %d tools, got %d", len(want), len(specs))
	}
	for i, w := range want {
		if specs[i].Name != w.name || specs[i].Operation != w.op {
			t.Errorf("tool %d = %s/%s, want %s/%s", i, specs[i].Name, specs[i].Operation, w.name, w.op)
		}
		if specs[i].Description == "" {
			t.Errorf("%s has no description", w.name)
		}
		if specs[i].InputSchema.Type != "object" {
			t.Errorf("%s schema type = %q", w.name, specs[i].InputSchema.Type)
		}
	}

	if _, ok := ToolSpecFor("tavily-delete"); ok {
		t.Error("unexpected tool spec")
	}
}

func TestToolSpecs_Required(t *testing.T) {
	for name, required := range map[string][]string{
		ToolSearch:  {"query"},
		ToolExtract: {"urls"},
		ToolCrawl:   {"url"},
		ToolMap:     {"url"},
	} {
		if got := mustSpec(t, name).InputSchema.Required; !reflect.DeepEqual(got, required) {
			t.Errorf("%s required = %v, want %v", name, got, required)
		}
	}
}

func TestToolSpecs_PropertySets(t *testing.T) {
	for name, properties := range map[string][]string{
		ToolSearch: {
			"query", "search_depth", "topic", "days", "time_range", "start_date", "end_date", "max_results",
			"include_images", "include_image_descriptions", "include_raw_content", "include_domains",
			"exclude_domains", "country", "include_favicon",
		},
		ToolExtract: {"urls", "extract_depth", "include_images", "format", "include_favicon"},
		ToolCrawl: {
			"url", "max_depth", "max_breadth", "limit", "instructions", "select_paths", "select_domains",
			"allow_external", "categories", "extract_depth", "format", "include_favicon",
		},
		ToolMap: {
			"url", "max_depth", "max_breadth", "limit", "instructions", "select_paths", "select_domains",
			"allow_external", "categories",
		},
	} {
		schema := mustSpec(t, name).InputSchema
		if len(schema.Properties) != len(properties) {
			t.Errorf("%s has %d properties, want %d", name, len(schema.Properties), len(properties))
		}
		for _, property := range properties {
			if schema.Property(property) == nil {
				t.Errorf("%s is missing %q", name, property)
			}
		}
	}
}

func TestSearchSchema_Literals(t *testing.T) {
	schema := mustSpec(t, ToolSearch).InputSchema

	maxResults := mustProperty(t, schema, "max_results")
	if maxResults.Type != "number" || *maxResults.Minimum != 5 || *maxResults.Maximum != 20 || maxResults.Default != 10 {
		t.Errorf("max_results = %+v", maxResults)
	}

	enums := map[string][]string{
		"search_depth": {"basic", "advanced"},
		"topic":        {"general", "news"},
		"time_range":   {"day", "week", "month", "year", "d", "w", "m", "y"},
	}
	for property, want := range enums {
		if got := enumStrings(mustProperty(t, schema, property).Enum); !reflect.DeepEqual(got, want) {
			t.Errorf("%s enum = %v, want %v", property, got, want)
		}
	}

	defaults := map[string]any{
		"search_depth":   "basic",
		"topic":          "general",
		"days":           3,
		"start_date":     "",
		"end_date":       "",
		"include_images": false,
		"country":        "",
	}
	for property, want := range defaults {
		if got := mustProperty(t, schema, property).Default; got != want {
			t.Errorf("%s default = %#v, want %#v", property, got, want)
		}
	}
	if mustProperty(t, schema, "time_range").Default != nil {
		t.Error("time_range has no default")
	}

	country := mustProperty(t, schema, "country")
	if len(country.Enum) != 166 {
		t.Errorf("country enum has %d entries, want 166", len(country.Enum))
	}
	countries := enumStrings(country.Enum)
	if countries[0] != "afghanistan" || countries[len(countries)-1] != "zimbabwe" {
		t.Errorf("unexpected country bounds %q..%q", countries[0], countries[len(countries)-1])
	}
	for _, c := range countries {
		if c != strings.ToLower(c) || strings.Contains(c, "_") {
			t.Errorf("country %q must be lowercase with spaces", c)
		}
	}

	domains := mustProperty(t, schema, "include_domains")
	if domains.Type != "array" || domains.Items == nil || domains.Items.Type != "string" {
		t.Errorf("include_domains = %+v", domains)
	}
}

func TestSiteSchemas_Literals(t *testing.T) {
	for _, name := range []string{ToolCrawl, ToolMap} {
		schema := mustSpec(t, name).InputSchema

		for property, def := range map[string]int{"max_depth": 1, "max_breadth": 20, "limit": 50} {
			p := mustProperty(t, schema, property)
			if p.Type != "integer" || p.Minimum == nil || *p.Minimum != 1 || p.Maximum != nil || p.Default != def {
				t.Errorf("%s %s = %+v", name, property, p)
			}
		}

		categories := mustProperty(t, schema, "categories")
		want := []string{"Careers", "Blog", "Documentation", "About", "Pricing", "Community", "Developers", "Contact", "Media"}
		if got := enumStrings(categories.Items.Enum); !reflect.DeepEqual(got, want) {
			t.Errorf("%s categories = %v", name, got)
		}
	}

	crawl := mustSpec(t, ToolCrawl).InputSchema
	if got := enumStrings(mustProperty(t, crawl, "format").Enum); !reflect.DeepEqual(got, []string{"markdown", "text"}) {
		t.Errorf("crawl format enum = %v", got)
	}
	if mustProperty(t, crawl, "format").Default != "markdown" {
		t.Error("crawl format default should be markdown")
	}
}

func TestToolSpecs_JSONDefaults(t *testing.T) {
	raw, err := mustSpec(t, ToolSearch).InputSchema.JsonString()
	if err != nil {
		t.Fatalf("JsonString: %v", err)
	}
	for _, want := range []string{`"default":false`, `"default":""`, `"default":[]`, `"minimum":5`, `"maximum":20`, `"required":["query"]`} {
		if !strings.Contains(raw, want) {
			t.Errorf("expected %s in schema JSON", want)
		}
	}
}

func TestToolSpecs_FreshCopies(t *testing.T) {
	first := ToolSpecs()
	first[0].InputSchema.Required = nil
	first[0].InputSchema.Properties["query"].Type = "number"

	second := mustSpec(t, ToolSearch).InputSchema
	if !second.IsRequired("query") || second.Property("query").Type != "string" {
		t.Error("modifying returned specs must not affect later calls")
	}
}

func TestToolSpecs_CompileAsJSONSchema(t *testing.T) {
	for _, spec := range ToolSpecs() {
		if err := jsonschema.NewValidator(spec.InputSchema).Compile(); err != nil {
			t.Errorf("%s schema does not compile: %v", spec.Name, err)
		}
	}
}

func TestNewTool_UsesContextKeyThenFallback(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{"results":[]}`)
	search := NewTool(api.client(t), mustSpec(t, ToolSearch), WithAPIKey("tvly-fallback"))

	if _, err := search.Call(context.Background(), `{"query":"x"}`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := api.lastRequest(t).Header.Get("Authorization"); got != "Bearer tvly-fallback" {
		t.Errorf("expected fallback key, got %q", got)
	}

	ctx := ContextWithAPIKey(context.Background(), "tvly-session")
	if _, err := search.Call(ctx, `{"query":"x"}`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := api.lastRequest(t).Body["api_key"]; got != "tvly-session" {
		t.Errorf("expected context key, got %v", got)
	}
}

func TestNewTool_MissingKey(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{}`)
	search := NewTool(api.client(t), mustSpec(t, ToolSearch))

	_, err := search.Call(context.Background(), `{"query":"x"}`)
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if api.calls.Load() != 0 {
		t.Error("no request should be sent without a key")
	}
}

func TestNewTool_PassesArgumentsThrough(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{"base_url":"https://docs.example","results":["https://docs.example/a"],"response_time":0.5}`)
	mapTool := NewTool(api.client(t), mustSpec(t, ToolMap), WithAPIKey("tvly-key"))

	out, err := mapTool.Call(context.Background(), `{"url":"https://docs.example","max_depth":2}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]any{"url": "https://docs.example", "max_depth": json.Number("2"), "api_key": "tvly-key"}
	if got := api.lastRequest(t).Body; !reflect.DeepEqual(got, want) {
		t.Errorf("request body = %#v, want %#v", got, want)
	}
	if out != `{"base_url":"https://docs.example","response_time":0.5,"results":["https://docs.example/a"]}` {
		t.Errorf("unexpected output %s", out)
	}
}

func TestNewTool_PreservesNumberLiterals(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{}`)
	mapTool := NewTool(api.client(t), mustSpec(t, ToolMap), WithAPIKey("tvly-key"))

	if _, err := mapTool.Call(context.Background(), `{"url":"https://docs.example","limit":12345678901234567891,"ratio":1.10}`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := api.lastRequest(t).Body
	if body["limit"] != json.Number("12345678901234567891") {
		t.Errorf("limit = %#v, want exact literal", body["limit"])
	}
	if body["ratio"] != json.Number("1.10") {
		t.Errorf("ratio = %#v, want exact literal", body["ratio"])
	}
}

func TestNewTool_StrictRejectsBeforeRequest(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{}`)
	search := NewTool(api.client(t), mustSpec(t, ToolSearch), WithAPIKey("tvly-key"), WithStrictArguments(true))

	_, err := search.Call(context.Background(), `{"query":"x","max_results":50}`)
	if !errors.Is(err, tool.ErrInvalidArguments) {
		t.Fatalf("expected ErrInvalidArguments, got %v", err)
	}
	if api.calls.Load() != 0 {
		t.Error("invalid arguments must not reach the network")
	}

	if _, err := search.Call(context.Background(), `{"query":"x","max_results":10,"country":"italy"}`); err != nil {
		t.Errorf("valid arguments rejected: %v", err)
	}
}

func TestNewTool_LenientForwardsOutOfRange(t *testing.T) {
	api := newFakeAPI(t, http.StatusOK, `{}`)
	search := NewTool(api.client(t), mustSpec(t, ToolSearch), WithAPIKey("tvly-key"))

	if _, err := search.Call(context.Background(), `{"query":"x","max_results":50}`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := api.lastRequest(t).Body["max_results"]; got != json.Number("50") {
		t.Errorf("expected value forwarded unchanged, got %v", got)
	}
}

func TestNewCatalog(t *testing.T) {
	catalog := NewCatalog(NewClient())
	if catalog.Size() != 4 {
		t.Fatalf("expected 4 tools, got %d", catalog.Size())
	}
	for _, name := range []string{ToolSearch, ToolExtract, ToolCrawl, ToolMap} {
		generic, ok := catalog.Get(name)
		if !ok {
			t.Fatalf("missing %s", name)
		}
		if info := generic.ToolInfo(); info.Name != name || info.Parameters == nil {
			t.Errorf("unexpected info for %s: %+v", name, info)
		}
	}
}

func TestContextWithAPIKey(t *testing.T) {
	ctx := context.Background()
	if ContextWithAPIKey(ctx, "") != ctx {
		t.Error("an empty key must leave the context unchanged")
	}
	if APIKeyFromContext(ctx) != "" {
		t.Error("expected no key")
	}
	if APIKeyFromContext(nil) != "" {
		t.Error("expected no key for nil context")
	}
	if got := APIKeyFromContext(ContextWithAPIKey(ctx, "k")); got != "k" {
		t.Errorf("got %q", got)
	}
}
