package main

import (
	"github.com/spf13/cobra"

	"github.com/leofalp/tavily-mcp/internal/config"
	"github.com/leofalp/tavily-mcp/internal/mcpserver"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		transport string
		addr      string
		strict    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server",
		Long: "Run the MCP server over stdio (default) or streamable HTTP.\n\n" +
			"With --transport http each request may bring its own key in an\n" +
			"'Authorization: Bearer' header or a tavilyApiKey query parameter.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("transport") {
				a.cfg.Transport = transport
			}
			if cmd.Flags().Changed("addr") {
				a.cfg.Addr = addr
			}
			if cmd.Flags().Changed("strict-args") {
				a.cfg.StrictArgs = strict
			}

			catalog, err := a.catalog()
			if err != nil {
				return err
			}
			if a.cfg.APIKey == "" {
				a.logger.Warn(config.EnvAPIKey + " is not set; tool calls need a per-request key")
			}

			server, err := mcpserver.New(catalog, a.logger, version)
			if err != nil {
				return err
			}

			if a.cfg.Transport == config.TransportHTTP {
				return server.ServeHTTP(cmd.Context(), a.cfg.Addr)
			}
			return server.ServeStdio(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&transport, "transport", config.TransportStdio, "transport: stdio|http (overrides "+config.EnvTransport+")")
	cmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address for the http transport (overrides "+config.EnvAddr+")")
	cmd.Flags().BoolVar(&strict, "strict-args", false, "validate tool arguments against their schema (overrides "+config.EnvStrictArgs+")")

	return cmd
}
