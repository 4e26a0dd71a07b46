package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wormhole-foundation/example-liquidity-layer-sub002/version"
)

func Cmd() *cobra.Command {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version of the engine",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.BuildVersion)
		},
	}
	return versionCmd
}
