package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/leofalp/tavily-mcp/providers/observability"
)

// MaxResponseBodySize caps how many bytes [DoPostRaw] reads from a response.
const MaxResponseBodySize = 32 << 20

// ErrMarshalBody wraps failures to encode the request body. No request is
// sent in that case.
var ErrMarshalBody = errors.New("error marshaling body")

// HeaderOption is an extra request header set by [DoPostRaw].
type HeaderOption struct {
	Key   string
	Value string
}

// DoPostRaw performs a synchronous HTTP POST request with a JSON body and
// returns the response together with its (size-capped) body bytes.
// Status codes are not interpreted: callers classify non-2xx responses
// themselves.
//
// Error Handling Strategy:
//   - Marshaling and request construction errors are returned as-is
//   - Context errors (timeout, cancellation) and connection failures are
//     wrapped and returned with a nil response
//   - Response body close errors are logged but don't override primary errors
//
// When a span is present in ctx, request/response events are added to it.
func DoPostRaw(ctx context.Context, client *http.Client, url string, apiKey string, body any, headers ...HeaderOption) (*http.Response, []byte, error) {
	span := observability.SpanFromContext(ctx)

	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrMarshalBody, err)
	}

	if span != nil {
		span.AddEvent("http.request.prepared",
			observability.String(observability.AttrHTTPMethod, http.MethodPost),
			observability.String(observability.AttrHTTPURL, url),
			observability.Int(observability.AttrHTTPRequestBodySize, len(jsonBody)),
		)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, nil, fmt.Errorf("error creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}
	for _, h := range headers {
		req.Header.Set(h.Key, h.Value)
	}

	requestStart := time.Now()
	res, err := httpClient.Do(req)
	requestDuration := time.Since(requestStart)

	if err != nil {
		if span != nil {
			span.AddEvent("http.request.error",
				observability.Error(err),
				observability.Duration("http.request.duration", requestDuration),
			)
		}
		return nil, nil, fmt.Errorf("error sending request: %w", err)
	}
	defer CloseWithLog(res.Body)

	respBody, err := io.ReadAll(io.LimitReader(res.Body, MaxResponseBodySize))
	if err != nil {
		return res, nil, fmt.Errorf("error reading response body: %w", err)
	}

	if span != nil {
		span.AddEvent("http.response.received",
			observability.Int(observability.AttrHTTPStatusCode, res.StatusCode),
			observability.Int(observability.AttrHTTPResponseBodySize, len(respBody)),
			observability.Duration("http.request.duration", requestDuration),
		)
	}

	return res, respBody, nil
}

// CloseWithLog closes c and logs, rather than returns, any error.
func CloseWithLog(c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		slog.Warn("failed to close response body", "error", err.Error())
	}
}

// StatusText returns the reason phrase of res ("Not Found" for
// "404 Not Found"), falling back to the standard text for the code.
func StatusText(res *http.Response) string {
	if res == nil {
		return ""
	}
	code := strconv.Itoa(res.StatusCode)
	if text := strings.TrimSpace(strings.TrimPrefix(res.Status, code)); text != "" {
		return text
	}
	return http.StatusText(res.StatusCode)
}

// IsSuccess reports whether code is in the 2xx range.
func IsSuccess(code int) bool {
	return code >= 200 && code < 300
}
