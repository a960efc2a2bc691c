package cli

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/thushan/llmsource/internal/version"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			version.PrintVersionInfo(true, log.New(cmd.OutOrStdout(), "", 0))
		},
	}
}
