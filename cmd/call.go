package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/giantswarm/mcp-wordpress/internal/capability"
	"github.com/giantswarm/mcp-wordpress/internal/cli"
)

func newCallCmd(opts *rootOptions) *cobra.Command {
	var (
		rawArgs []string
		viaMCP  bool
		quiet   bool
	)

	cmd := &cobra.Command{
		Use:   "call <tool|resource|prompt> <name-or-uri>",
		Short: "Invoke a single tool, resource or prompt",
		Long: `Invokes one capability against the configured WordPress site and prints
the rendered result. Arguments are given as --arg key=value and are coerced
to the declared parameter types. Resources take no arguments; their
parameters come from the URI.

Exit codes:
  0  the invocation succeeded
  1  the command could not run (bad flags, unknown target over MCP)
  2  the configuration could not be loaded
  3  the invocation returned a failure

Examples:
  mcp-wordpress call tool create-post --arg title="Hello" --arg content="<p>Hi</p>"
  mcp-wordpress call tool delete-post --arg post_id=42 --arg force=true
  mcp-wordpress call resource post://by-slug/hello-world
  mcp-wordpress call prompt rewrite-post --arg post_id=42 --arg tone=casual
  mcp-wordpress call resource post://by-id/42 --via-mcp`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := capability.ParseKind(args[0])
			if err != nil {
				return err
			}
			if kind == capability.KindResource && len(rawArgs) > 0 {
				return fmt.Errorf("resources take no --arg values; encode parameters in the URI")
			}

			arguments, err := cli.ParseArgs(rawArgs)
			if err != nil {
				return err
			}

			services, err := opts.loadServices(cmd)
			if err != nil {
				return err
			}

			executor := cli.NewExecutor(services.Dispatcher, cli.ExecutorOptions{
				Quiet:   quiet,
				ViaMCP:  viaMCP,
				Version: version,
				Out:     cmd.OutOrStdout(),
				ErrOut:  cmd.ErrOrStderr(),
			})

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return executor.Execute(ctx, capability.Request{
				Kind:      kind,
				Target:    args[1],
				Arguments: arguments,
			})
		},
	}

	cmd.Flags().StringArrayVarP(&rawArgs, "arg", "a", nil, "Argument as key=value (repeatable)")
	cmd.Flags().BoolVar(&viaMCP, "via-mcp", false, "Route the invocation through an in-process MCP client")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress and failure banners")

	return cmd
}
