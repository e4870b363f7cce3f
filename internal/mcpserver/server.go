package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/leofalp/tavily-mcp/providers/observability"
	slogobs "github.com/leofalp/tavily-mcp/providers/observability/slog"
	"github.com/leofalp/tavily-mcp/providers/tool"
	"github.com/leofalp/tavily-mcp/providers/tool/tavily"
)

// ServerName is advertised in the MCP initialize handshake.
const ServerName = "tavily-mcp"

// QueryAPIKey is the query parameter accepted as a credential by the HTTP
// transport.
const QueryAPIKey = "tavilyApiKey"

// EndpointPath is where the HTTP transport serves MCP.
const EndpointPath = "/mcp"

const (
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// Credential sources recorded on tool spans.
const (
	credentialHeader  = "header"
	credentialQuery   = "query"
	credentialDefault = "default"
)

type credentialSourceKey struct{}

// Server exposes every tool of a catalog over MCP.
type Server struct {
	mcp      *server.MCPServer
	catalog  *tool.Catalog
	logger   *slog.Logger
	observer observability.Provider
}

// New registers the catalog's tools on a new MCP server. A nil logger means
// slog.Default().
func New(catalog *tool.Catalog, logger *slog.Logger, version string) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		mcp: server.NewMCPServer(ServerName, version,
			server.WithToolCapabilities(false),
			server.WithRecovery(),
		),
		catalog:  catalog,
		logger:   logger,
		observer: slogobs.New(logger),
	}

	for _, t := range catalog.List() {
		info := t.ToolInfo()
		schema, err := json.Marshal(info.Parameters)
		if err != nil {
			return nil, fmt.Errorf("encoding schema of %s: %w", info.Name, err)
		}
		s.mcp.AddTool(mcp.NewToolWithRawSchema(info.Name, info.Description, schema), s.handler(t))
		logger.Debug("mcp tool registered", "tool", info.Name)
	}

	return s, nil
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

// handler adapts t to an MCP tool handler. Tool failures become results
// with isError set, so the host sees the message.
func (s *Server) handler(t tool.GenericTool) server.ToolHandlerFunc {
	name := t.ToolInfo().Name

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		source, _ := ctx.Value(credentialSourceKey{}).(string)
		if source == "" {
			source = credentialDefault
		}

		ctx = observability.ContextWithObserver(ctx, s.observer)
		ctx, span := s.observer.StartSpan(ctx, observability.SpanToolExecution,
			observability.String(observability.AttrToolName, name),
			observability.String(observability.AttrMCPCredentialSource, source),
		)
		defer span.End()

		arguments := request.GetArguments()
		if arguments == nil {
			arguments = map[string]any{}
		}
		input, err := json.Marshal(arguments)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(observability.StatusError, "invalid arguments")
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		output, err := t.Call(ctx, string(input))
		if err != nil {
			span.SetAttributes(observability.String(observability.AttrTavilyErrorKind, tavily.ErrorKind(err)))
			span.SetStatus(observability.StatusError, "tool call failed")
			return mcp.NewToolResultError(err.Error()), nil
		}

		span.SetStatus(observability.StatusOK, "")
		return mcp.NewToolResultText(output), nil
	}
}

// ServeStdio serves MCP over in and out until ctx is cancelled or in is
// closed. Nothing but protocol messages is written to out.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Info("serving MCP", observability.AttrMCPTransport, "stdio", "tools", s.catalog.Size())

	stdio := server.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))

	err := stdio.Listen(ctx, in, out)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// HTTPHandler returns the streamable HTTP endpoint, mounted at
// [EndpointPath]. Each request may carry its own credential; see
// [CredentialContext].
func (s *Server) HTTPHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(EndpointPath, server.NewStreamableHTTPServer(s.mcp,
		server.WithHTTPContextFunc(CredentialContext),
	))
	return mux
}

// ServeHTTP serves streamable HTTP MCP on addr until ctx is cancelled, then
// shuts down gracefully. The listener is closed before ServeHTTP returns.
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.serve(ctx, listener)
}

func (s *Server) serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.HTTPHandler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	s.logger.Info("serving MCP", observability.AttrMCPTransport, "http", "addr", listener.Addr().String(), "tools", s.catalog.Size())

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(listener)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down MCP server")
	shutdownErr := httpServer.Shutdown(shutdownCtx)
	if shutdownErr != nil {
		_ = httpServer.Close()
	}

	// Serve returns ErrServerClosed even when Shutdown won the race with it.
	err := <-errCh
	_ = listener.Close()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if shutdownErr != nil {
		return fmt.Errorf("shutdown: %w", shutdownErr)
	}
	return nil
}

// CredentialContext attaches the request's credential to ctx. The bearer
// token of the Authorization header wins over the tavilyApiKey query
// parameter; without either, the tools fall back to the configured key.
func CredentialContext(ctx context.Context, r *http.Request) context.Context {
	if token, ok := bearerToken(r.Header.Get("Authorization")); ok {
		ctx = context.WithValue(ctx, credentialSourceKey{}, credentialHeader)
		return tavily.ContextWithAPIKey(ctx, token)
	}
	if key := strings.TrimSpace(r.URL.Query().Get(QueryAPIKey)); key != "" {
		ctx = context.WithValue(ctx, credentialSourceKey{}, credentialQuery)
		return tavily.ContextWithAPIKey(ctx, key)
	}
	return ctx
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
