package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/otto/internal/core/domain"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Configure and build the described source tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			spec, err := c.loadSpec(cmd)
			if err != nil {
				return err
			}

			installDir, err := c.app.Build(cmd.Context(), spec)
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

func addSpecFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "otto.yaml", "Path to the build description file")
	cmd.Flags().Bool("fast", false, "Skip configure when an identical invocation already ran")
	cmd.Flags().String("target", "", "Override the target triple")
	cmd.Flags().String("host", "", "Override the host triple")
	cmd.Flags().String("out", "", "Override the install directory")
}

// loadSpec reads the description file and applies flag overrides on top.
func (c *CLI) loadSpec(cmd *cobra.Command) (*domain.BuildSpec, error) {
	file, _ := cmd.Flags().GetString("file")
	spec, err := c.loader.Load(file)
	if err != nil {
		return nil, err
	}

	if fast, _ := cmd.Flags().GetBool("fast"); fast {
		spec.FastBuild = true
	}
	if target, _ := cmd.Flags().GetString("target"); target != "" {
		spec.Target = target
	}
	if host, _ := cmd.Flags().GetString("host"); host != "" {
		spec.Host = host
	}
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		spec.OutDir = out
	}
	return spec, nil
}
