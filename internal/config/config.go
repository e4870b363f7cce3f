package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/leofalp/tavily-mcp/providers/tool/tavily"
)

// Environment keys.
const (
	EnvAPIKey      = "TAVILY_API_KEY"
	EnvBaseURL     = "TAVILY_BASE_URL"
	EnvTimeout     = "TAVILY_TIMEOUT"
	EnvTransport   = "TAVILY_MCP_TRANSPORT"
	EnvAddr        = "TAVILY_MCP_ADDR"
	EnvStrictArgs  = "TAVILY_MCP_STRICT_ARGS"
	EnvLogLevel    = "TAVILY_MCP_LOG_LEVEL"
	EnvLogFormat   = "TAVILY_MCP_LOG_FORMAT"
	envLogLevelAlt = "LOG_LEVEL"
)

// Transports.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

const (
	DefaultTimeout = 60 * time.Second
	DefaultAddr    = ":8080"
	DefaultEnvFile = ".env"
)

// Config holds the server settings.
type Config struct {
	APIKey  string
	BaseURL string
	// Timeout bounds each API request. Zero means no timeout.
	Timeout time.Duration

	Transport  string
	Addr       string
	StrictArgs bool

	LogLevel  string
	LogFormat string
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		BaseURL:   tavily.DefaultBaseURL,
		Timeout:   DefaultTimeout,
		Transport: TransportStdio,
		Addr:      DefaultAddr,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads envFile (if it exists) into the process environment without
// overriding variables already set, then builds a Config from the
// environment. An empty envFile skips the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
			}
			slog.Debug("No env file found, using process environment", "file", envFile)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment.
func FromEnv() (Config, error) {
	cfg := Default()

	cfg.APIKey = strings.TrimSpace(os.Getenv(EnvAPIKey))
	cfg.BaseURL = getEnv(EnvBaseURL, cfg.BaseURL)
	cfg.Transport = strings.ToLower(getEnv(EnvTransport, cfg.Transport))
	cfg.Addr = getEnv(EnvAddr, cfg.Addr)
	cfg.LogLevel = getEnv(EnvLogLevel, getEnv(envLogLevelAlt, cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(getEnv(EnvLogFormat, cfg.LogFormat))

	if value := getEnv(EnvTimeout, ""); value != "" {
		timeout, err := parseTimeout(value)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.Timeout = timeout
	}

	if value := getEnv(EnvStrictArgs, ""); value != "" {
		strict, err := strconv.ParseBool(value)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvStrictArgs, err)
		}
		cfg.StrictArgs = strict
	}

	return cfg, nil
}

// Validate reports the first invalid setting. A missing API key is not an
// error: with the HTTP transport each request may bring its own.
func (c Config) Validate() error {
	if c.Transport != TransportStdio && c.Transport != TransportHTTP {
		return fmt.Errorf("invalid transport %q: must be %q or %q", c.Transport, TransportStdio, TransportHTTP)
	}
	if _, err := tavily.EndpointsFor(c.BaseURL); err != nil {
		return err
	}
	if c.Timeout < 0 {
		return fmt.Errorf("invalid timeout %s: must not be negative", c.Timeout)
	}
	if c.Transport == TransportHTTP && c.Addr == "" {
		return errors.New("an address is required for the http transport")
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log format %q: must be \"text\" or \"json\"", c.LogFormat)
	}
	return nil
}

// parseTimeout accepts a Go duration ("30s") or a bare number of seconds.
func parseTimeout(value string) (time.Duration, error) {
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second, nil
	}
	return time.ParseDuration(value)
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
