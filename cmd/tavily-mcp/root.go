package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leofalp/tavily-mcp/internal/config"
	slogobs "github.com/leofalp/tavily-mcp/providers/observability/slog"
	"github.com/leofalp/tavily-mcp/providers/tool"
	"github.com/leofalp/tavily-mcp/providers/tool/tavily"
)

// app is the state shared by all subcommands, filled in by the root
// command's PersistentPreRunE.
type app struct {
	envFile   string
	logLevel  string
	logFormat string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "tavily-mcp",
		Short:         "Tavily search, extract, crawl and map as MCP tools",
		Long:          "tavily-mcp exposes the Tavily web APIs as Model Context Protocol tools over stdio or streamable HTTP.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.envFile, "env-file", config.DefaultEnvFile, "env file to load before reading the environment (empty to skip)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug|info|warn|error (overrides "+config.EnvLogLevel+")")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: text|json (overrides "+config.EnvLogFormat+")")

	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(newToolsCmd(a))
	rootCmd.AddCommand(newCallCmd(a))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// init loads configuration and sets up logging. Logs always go to stderr:
// stdout carries MCP messages or command output.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.logFormat != "" {
		cfg.LogFormat = a.logFormat
	}
	a.cfg = cfg

	a.logger = slogobs.NewLogger(cmd.ErrOrStderr(), slogobs.ParseLogLevel(cfg.LogLevel), cfg.LogFormat)
	slog.SetDefault(a.logger)
	return nil
}

// client builds the API client from the loaded configuration.
func (a *app) client() (*tavily.Client, error) {
	endpoints, err := tavily.EndpointsFor(a.cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	return tavily.NewClient(
		tavily.WithEndpoints(endpoints),
		tavily.WithTimeout(a.cfg.Timeout),
	), nil
}

// catalog builds the four tools backed by the configured client and key.
func (a *app) catalog() (*tool.Catalog, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	client, err := a.client()
	if err != nil {
		return nil, err
	}
	return tavily.NewCatalog(client,
		tavily.WithAPIKey(a.cfg.APIKey),
		tavily.WithStrictArguments(a.cfg.StrictArgs),
	), nil
}
