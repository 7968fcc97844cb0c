package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strct-org/strct-wlan/internal/errs"
)

const OpNetworksCmd errs.Op = "cmd.networks"

var networksVerbose bool

var networksCmd = &cobra.Command{
	Use:   "networks",
	Short: "List networks visible on the target interface",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireInterface(OpNetworksCmd); err != nil {
			return err
		}

		q, err := openQuery()
		if err != nil {
			return err
		}
		defer closeQuery(q)

		if !networksVerbose {
			ssids, err := q.Networks()
			if err != nil {
				return err
			}
			for _, ssid := range ssids {
				fmt.Fprintln(cmd.OutOrStdout(), ssid)
			}
			return nil
		}

		nets, err := q.Scan()
		if err != nil {
			return err
		}
		for _, n := range nets {
			marker := " "
			if n.Connected {
				marker = "*"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %3d%%  bss=%d secured=%t  %s\n", marker, n.SignalQuality, n.BSSCount, n.Secured, n.SSID)
		}
		return nil
	},
}

func init() {
	networksCmd.Flags().BoolVarP(&networksVerbose, "verbose", "v", false, "show quality, BSS count and security")
	rootCmd.AddCommand(networksCmd)
}
