package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/docsbridge/internal/action"
	"github.com/teemow/docsbridge/internal/docs"
	"github.com/teemow/docsbridge/internal/google"
	"github.com/teemow/docsbridge/internal/instrumentation"
	"github.com/teemow/docsbridge/internal/logging"
	"github.com/teemow/docsbridge/internal/server"
	"github.com/teemow/docsbridge/internal/tools/docs_tools"
)

// MetricsConfig holds configuration for the metrics server
type MetricsConfig struct {
	// Enabled determines whether to start the metrics server (default: true)
	Enabled bool

	// Addr is the address for the metrics server (e.g., ":9090")
	Addr string
}

func newServeCmd() *cobra.Command {
	var (
		debugMode       bool
		transport       string
		httpAddr        string
		baseURL         string
		authToken       string
		requestTimeout  time.Duration
		metricsEnabled  bool
		metricsAddr     string
		detailedMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server exposing the document
actions as tools for AI assistants.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport

Credentials:
  The document-service bearer token comes from --auth-token or the
  DOCS_API_TOKEN environment variable. When only the environment variable is
  used, it is re-read on every invocation, so rotated tokens take effect
  without a restart.

  The service base URL defaults to the production host and can be overridden
  with --base-url or DOCS_API_BASE_URL (useful for staging environments).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			metricsConfig := MetricsConfig{
				Enabled: resolveMetricsEnabled(metricsEnabled, cmd.Flags().Changed("metrics-enabled")),
				Addr:    metricsAddr,
			}
			return runServe(transport, debugMode, httpAddr, baseURL, authToken, requestTimeout, metricsConfig, detailedMetrics)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":8080", "HTTP server address (for streamable-http transport)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Document-service base URL. Defaults to the production host. Can also use DOCS_API_BASE_URL env var.")
	cmd.Flags().StringVar(&authToken, "auth-token", "", "Bearer token for the document service. Can also use DOCS_API_TOKEN env var.")
	cmd.Flags().DurationVar(&requestTimeout, "timeout", docs.DefaultTimeout, "Timeout for outbound document-service requests")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server address. Can also use METRICS_ADDR env var.")
	cmd.Flags().BoolVar(&detailedMetrics, "detailed-metrics", false, "Include higher-cardinality labels (account) on metrics")

	return cmd
}

func runServe(transport string, debugMode bool, httpAddr, baseURL, authToken string, requestTimeout time.Duration, metricsConfig MetricsConfig, detailedMetrics bool) error {
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Logs go to stderr so the stdio transport stays clean
	logger := logging.Setup(os.Stderr, debugMode)

	// Load metrics config from environment if not set via flags
	if metricsConfig.Addr == "" || metricsConfig.Addr == server.DefaultMetricsAddr {
		if addr := os.Getenv("METRICS_ADDR"); addr != "" {
			metricsConfig.Addr = addr
		}
	}
	if baseURL == "" {
		baseURL = os.Getenv(google.EnvAPIBaseURL)
	}

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version
	instrConfig.DetailedLabels = detailedMetrics

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			if transport != "stdio" {
				log.Printf("Error during instrumentation shutdown: %v", err)
			}
		}
	}()

	// Start metrics server if enabled and not in stdio mode
	var metricsServer *server.MetricsServer
	if transport != "stdio" && metricsConfig.Enabled && provider.Enabled() {
		var err error
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    metricsConfig.Addr,
			Enabled:                 true,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		// Use ready channel to confirm metrics server started successfully
		metricsReady := make(chan struct{})
		metricsErr := make(chan error, 1)
		go func() {
			if err := metricsServer.StartWithReadySignal(metricsReady); err != nil && err != http.ErrServerClosed {
				metricsErr <- err
			}
			close(metricsErr)
		}()

		select {
		case <-metricsReady:
			log.Printf("Metrics server started on %s", metricsServer.Addr())
		case err := <-metricsErr:
			return fmt.Errorf("metrics server failed to start: %w", err)
		case <-time.After(5 * time.Second):
			return fmt.Errorf("metrics server startup timed out")
		}
	}

	authProvider := newAuthProvider(authToken, baseURL)

	client := docs.NewClient(
		docs.WithTimeout(requestTimeout),
		docs.WithLogger(logger),
	)

	serverContext, err := server.NewServerContext(shutdownCtx, client, authProvider)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}

	// Set instrumentation on server context for tool instrumentation
	if provider.Enabled() {
		serverContext.SetInstrumentationProvider(provider)
		serverContext.SetAuditLogger(instrumentation.NewAuditLogger(logger))
	}
	defer func() {
		// Shutdown metrics server first
		if metricsServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				log.Printf("Error during metrics server shutdown: %v", err)
			}
		}
		if err := serverContext.Shutdown(); err != nil {
			if transport != "stdio" {
				log.Printf("Error during server context shutdown: %v", err)
			}
		}
	}()

	// Create MCP server
	mcpSrv := mcpserver.NewMCPServer("docsbridge", version,
		mcpserver.WithToolCapabilities(true),
	)

	if err := docs_tools.RegisterDocsTools(mcpSrv, serverContext, action.DefaultToolkit()); err != nil {
		return fmt.Errorf("failed to register document tools: %w", err)
	}

	switch transport {
	case "stdio":
		return runStdioServer(mcpSrv)
	case "streamable-http":
		fmt.Printf("Starting docsbridge MCP server with %s transport...\n", transport)
		return runStreamableHTTPServer(mcpSrv, serverContext, httpAddr, shutdownCtx, metricsConfig)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", transport)
	}
}

// resolveMetricsEnabled applies the METRICS_ENABLED environment variable when
// the flag was left at its default. An explicit flag always wins.
func resolveMetricsEnabled(flagValue, flagChanged bool) bool {
	if flagChanged {
		return flagValue
	}
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		return v == "true"
	}
	return flagValue
}

// newAuthProvider picks the credential source: a token from the flag wrapped
// in an oauth2 token source, or the environment re-read per invocation.
func newAuthProvider(authToken, baseURL string) google.AuthProvider {
	if authToken != "" {
		return &google.TokenSourceProvider{
			Source:  google.NewStaticTokenSource(authToken),
			BaseURL: baseURL,
		}
	}
	return &google.EnvProvider{}
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

func runStreamableHTTPServer(mcpSrv *mcpserver.MCPServer, serverContext *server.ServerContext, addr string, ctx context.Context, metricsConfig MetricsConfig) error {
	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv)

	mux := http.NewServeMux()
	mux.Handle("/mcp", streamable)

	healthChecker := server.NewHealthChecker(serverContext)
	healthChecker.RegisterHealthEndpoints(mux)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Printf("Streamable HTTP server starting on %s\n", addr)
	fmt.Printf("  HTTP endpoint: /mcp\n")
	fmt.Printf("  Health endpoints: /healthz, /readyz\n")
	if metricsConfig.Enabled {
		fmt.Printf("  Metrics endpoint: %s/metrics\n", metricsConfig.Addr)
	}

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
		fmt.Println("Shutdown signal received, stopping HTTP server...")
		healthChecker.SetReady(false)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
		fmt.Println("HTTP server stopped normally")
	}

	fmt.Println("HTTP server gracefully stopped")
	return nil
}
