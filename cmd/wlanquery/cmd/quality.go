package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strct-org/strct-wlan/internal/errs"
)

const OpQualityCmd errs.Op = "cmd.quality"

var qualityDBm bool

var qualityCmd = &cobra.Command{
	Use:   "quality",
	Short: "Print the signal quality (0-100) of the target network",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireInterface(OpQualityCmd); err != nil {
			return err
		}
		if cfg.SSID == "" {
			return errs.E(OpQualityCmd, errs.KindInvalid, "--ssid or WLAN_SSID is required")
		}

		q, err := openQuery()
		if err != nil {
			return err
		}
		defer closeQuery(q)

		if qualityDBm {
			dbm, err := q.SignalDBm()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", dbm)
			return nil
		}

		quality, err := q.SignalQuality()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d\n", quality)
		return nil
	},
}

func init() {
	qualityCmd.Flags().BoolVar(&qualityDBm, "dbm", false, "report on the dBm scale instead of percent")
	rootCmd.AddCommand(qualityCmd)
}
