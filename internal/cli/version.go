package cli

import (
	"fmt"

	"github.com/ht-tools/commitlog/internal/build"
	"github.com/spf13/cobra"
)

func newVersionCmd(binary string) *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Aliases: []string{"v"},
		Short:   "Display version information (v)",
		Long:    "Display version, commit, build date, and Go version information for " + binary,
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), build.Info(binary))
		},
	}
}
