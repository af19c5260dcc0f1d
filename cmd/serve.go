package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/giantswarm/mcp-wordpress/internal/app"
	"github.com/giantswarm/mcp-wordpress/internal/config"
)

// newServeCmd creates the serve command, the main command of mcp-wordpress.
func newServeCmd(opts *rootOptions) *cobra.Command {
	var transport string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Starts the MCP server on the configured transport and serves the WordPress
post tools, resources and prompts until interrupted (Ctrl+C or SIGTERM).

Transports:
  stdio            JSON-RPC over stdin/stdout, for assistants that launch the
                   server as a subprocess (default)
  sse              Server-Sent Events on http://<host>:<port>/sse
  streamable-http  Streamable HTTP on http://<host>:<port>/mcp

HTTP transports also serve /healthz and, unless server.metrics is false,
Prometheus metrics on /metrics.

Configuration:
  config.yaml is read from --config-path (default $HOME/.config/mcp-wordpress).
  WORDPRESS_URL, WORDPRESS_USERNAME, WORDPRESS_PASSWORD, WORDPRESS_TOKEN and
  MCP_WORDPRESS_TRANSPORT override the file; --transport overrides both.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.appConfig(cmd, false)
			if err != nil {
				return err
			}
			cfg.Transport = transport

			application, err := app.NewApplication(cfg)
			if err != nil {
				if config.IsConfigurationError(err) {
					return err
				}
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return application.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "",
		fmt.Sprintf("Override the MCP transport (%s)", strings.Join(config.Transports, ", ")))

	return cmd
}
