package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strct-org/strct-wlan/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Get wlanquery version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := version.Parse()
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Release: %s\n", v)
		fmt.Fprintf(cmd.OutOrStdout(), "Prerelease: %t\n", len(v.Pre) > 0)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
