package cmd

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/strct-org/strct-wlan/internal/config"
	"github.com/strct-org/strct-wlan/internal/errs"
	"github.com/strct-org/strct-wlan/internal/wlan"
)

const OpOpenQuery errs.Op = "cmd.openQuery"

var (
	flagSSID      string
	flagInterface string
	flagLogLevel  string
	flagDev       bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:           "wlanquery",
	Short:         "wlanquery inspects wireless interfaces, visible networks and signal quality",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load(flagDev)
		cfg.Override(flagSSID, flagInterface, flagLogLevel)
		cfg.ApplyLogLevel()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error (%s): %v\n", errs.KindOf(err), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagSSID, "ssid", "", "target network name (env WLAN_SSID)")
	rootCmd.PersistentFlags().StringVar(&flagInterface, "interface", "", "target interface GUID or name (env WLAN_INTERFACE)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (env LOG_LEVEL)")
	rootCmd.PersistentFlags().BoolVar(&flagDev, "dev", false, "Run in development mode (Mock hardware)")
}

// openQuery builds the configured backend and opens a session on it. The
// caller owns the returned Query and must Close it.
func openQuery() (*wlan.Query, error) {
	backend, err := wlan.NewBackend(cfg.Backend)
	if err != nil {
		return nil, errs.E(OpOpenQuery, err)
	}

	q := wlan.New(backend)
	if err := q.Configure(cfg.SSID, cfg.Interface); err != nil {
		return nil, errs.E(OpOpenQuery, err)
	}
	return q, nil
}

func closeQuery(q *wlan.Query) {
	if err := q.Close(); err != nil {
		log.Warnf("[WLAN] %v", err)
	}
}

func requireInterface(op errs.Op) error {
	if cfg.Interface == "" {
		return errs.E(op, errs.KindInvalid, "--interface or WLAN_INTERFACE is required")
	}
	return nil
}
