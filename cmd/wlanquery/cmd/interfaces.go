package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strct-org/strct-wlan/internal/wlan"
)

var interfacesVerbose bool

var interfacesCmd = &cobra.Command{
	Use:   "interfaces",
	Short: "List wireless interface identifiers",
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := openQuery()
		if err != nil {
			return err
		}
		defer closeQuery(q)

		if !interfacesVerbose {
			ids, err := q.Interfaces()
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		}

		ifaces, err := q.InterfaceDetails()
		if err != nil {
			return err
		}
		for _, ifc := range ifaces {
			id, err := wlan.FormatGUID(ifc.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%s\n", id, ifc.Name, ifc.State, ifc.Description)
		}
		return nil
	},
}

func init() {
	interfacesCmd.Flags().BoolVarP(&interfacesVerbose, "verbose", "v", false, "show name, state and description")
	rootCmd.AddCommand(interfacesCmd)
}
