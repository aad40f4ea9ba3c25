// File: cmd/version.go
package cmd

import (
	"fmt"

	"llmcontext/pkg/version"

	"github.com/spf13/cobra"
)

// NewVersionCmd builds the version subcommand. The --short flag prints only
// the bare version number.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display the version of llmcontext",
		Long:  `Display the current version information of the llmcontext CLI tool.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			short, err := cmd.Flags().GetBool("short")
			if err != nil {
				return fmt.Errorf("error reading flags: %w", err)
			}

			v := version.Get()
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), v.Version)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), v.String())
			}
			return nil
		},
	}
	cmd.Flags().BoolP("short", "s", false, "Print the version number only")
	return cmd
}
