package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/giantswarm/mcp-wordpress/internal/app"
	"github.com/giantswarm/mcp-wordpress/internal/cli"
	"github.com/giantswarm/mcp-wordpress/internal/config"
	"github.com/giantswarm/mcp-wordpress/pkg/logging"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates successful execution.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a general error (command failed, invalid arguments).
	ExitCodeError = 1
	// ExitCodeConfigError indicates the configuration could not be loaded or is invalid.
	ExitCodeConfigError = 2
	// ExitCodeInvocationFailed indicates an invocation returned a failure result.
	ExitCodeInvocationFailed = 3
)

var version = "dev"

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

// newRootCmd builds the command tree. It is a constructor so tests can run
// commands without sharing flag state.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "mcp-wordpress",
		Short: "Expose WordPress post management to AI assistants over MCP",
		Long: `mcp-wordpress is a Model Context Protocol server for WordPress.

It lets AI assistants create and delete posts through tools, read posts by
ID or slug through resources, and draft content through prompts. The server
speaks to a WordPress site over its REST API.`,
		Version: version,
		// Failures are printed by Execute so each error appears once.
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate(`{{printf "mcp-wordpress version %s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config-path", "", "Directory containing config.yaml (default $HOME/.config/mcp-wordpress)")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", string(logging.FormatText), "Log format: text, json")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newServeCmd(opts))
	rootCmd.AddCommand(newCapabilitiesCmd(opts))
	rootCmd.AddCommand(newCallCmd(opts))

	return rootCmd
}

// SetVersion sets the version reported by the CLI and announced to MCP clients.
func SetVersion(v string) {
	version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return version
}

// Execute runs the CLI and exits with a code describing the outcome.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command tree with args and returns the exit code.
func run(args []string, out, errOut io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	err := rootCmd.Execute()
	if err == nil {
		return ExitCodeSuccess
	}

	printError(errOut, err)
	return getExitCode(err)
}

// printError writes err to w. Invocation failures were already rendered by
// the executor and are not repeated.
func printError(w io.Writer, err error) {
	var cfgErr *config.ConfigurationError
	switch {
	case cli.IsInvocationFailed(err):
	case errors.As(err, &cfgErr):
		fmt.Fprintln(w, cfgErr.DetailedError())
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}

// getExitCode determines the appropriate exit code based on the error type.
func getExitCode(err error) int {
	switch {
	case err == nil:
		return ExitCodeSuccess
	case config.IsConfigurationError(err):
		return ExitCodeConfigError
	case cli.IsInvocationFailed(err):
		return ExitCodeInvocationFailed
	default:
		return ExitCodeError
	}
}

// appConfig turns the persistent flags into an application configuration.
// quiet lowers the default log level to warn for one-shot commands.
func (o *rootOptions) appConfig(cmd *cobra.Command, quiet bool) (*app.Config, error) {
	level, ok := logging.ParseLevel(o.logLevel)
	if !ok {
		return nil, fmt.Errorf("invalid log level %q (valid: debug, info, warn, error)", o.logLevel)
	}
	if quiet && !cmd.Flags().Changed("log-level") {
		level = logging.LevelWarn
	}

	format := logging.Format(o.logFormat)
	if format != logging.FormatText && format != logging.FormatJSON {
		return nil, fmt.Errorf("invalid log format %q (valid: text, json)", o.logFormat)
	}

	configPath := o.configPath
	if configPath == "" {
		configPath = config.GetDefaultConfigPathOrPanic()
	}

	cfg := app.NewConfig(level, format, configPath)
	cfg.LogOutput = cmd.ErrOrStderr()
	cfg.Version = version
	return cfg, nil
}

// loadServices bootstraps everything a one-shot command needs without
// starting a transport.
func (o *rootOptions) loadServices(cmd *cobra.Command) (*app.Services, error) {
	cfg, err := o.appConfig(cmd, true)
	if err != nil {
		return nil, err
	}
	logging.Init(cfg.LogLevel, cfg.LogFormat, cfg.LogOutput)

	wpCfg, err := app.LoadConfig(cfg)
	if err != nil {
		return nil, err
	}
	cfg.WordPressConfig = wpCfg
	return app.InitializeServices(cfg)
}
