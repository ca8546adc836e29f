package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newConfigureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Run the configure phase without building",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			spec, err := c.loadSpec(cmd)
			if err != nil {
				return err
			}

			installDir, err := c.app.Configure(cmd.Context(), spec)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), installDir)
			return nil
		},
	}
	addSpecFlags(cmd)
	return cmd
}
