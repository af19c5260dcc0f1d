package cmd

import (
	"github.com/spf13/cobra"

	"github.com/giantswarm/mcp-wordpress/internal/capability"
	"github.com/giantswarm/mcp-wordpress/internal/cli"
)

func newCapabilitiesCmd(opts *rootOptions) *cobra.Command {
	var (
		outputFormat string
		noHeaders    bool
		wide         bool
		kind         string
	)

	cmd := &cobra.Command{
		Use:     "capabilities",
		Aliases: []string{"caps", "list"},
		Short:   "List the tools, resources and prompts the server exposes",
		Long: `Lists every registered capability with its parameters.

Parameters are shown as name:type, with * marking required ones and =value
showing defaults. Destructive tools are highlighted in table output.

Examples:
  mcp-wordpress capabilities
  mcp-wordpress capabilities --kind tool
  mcp-wordpress capabilities --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.ValidateOutputFormat(outputFormat); err != nil {
				return err
			}

			var filter capability.Kind
			if kind != "" {
				k, err := capability.ParseKind(kind)
				if err != nil {
					return err
				}
				filter = k
			}

			services, err := opts.loadServices(cmd)
			if err != nil {
				return err
			}

			descs := services.Registry.All()
			if filter != "" {
				descs = services.Registry.List(filter)
			}

			printer := cli.CapabilityPrinter{
				Format:    cli.OutputFormat(outputFormat),
				NoHeaders: noHeaders,
				Wide:      wide,
			}
			return printer.Print(cmd.OutOrStdout(), descs)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", string(cli.OutputFormatTable), "Output format (table, json, yaml)")
	cmd.Flags().BoolVar(&noHeaders, "no-headers", false, "Omit table headers")
	cmd.Flags().BoolVar(&wide, "wide", false, "Show full descriptions in table output")
	cmd.Flags().StringVar(&kind, "kind", "", "Only list one kind (tool, resource, prompt)")

	return cmd
}
