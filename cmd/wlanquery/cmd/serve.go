package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/strct-org/strct-wlan/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the WLAN query over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		q, err := openQuery()
		if err != nil {
			return err
		}
		defer closeQuery(q)

		feature := &api.WLAN{Query: q}
		srv := api.NewServer(api.Config{Port: cfg.APIPort, IsDev: cfg.IsDev}, feature.GetRoutes())

		errCh := make(chan error, 1)
		go func() {
			log.Printf("[API] Starting WLAN API on %s (Dev: %v)", srv.Addr, cfg.IsDev)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-waitForShutdown():
		}

		log.Println("Shutting down gracefully...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	},
}

func waitForShutdown() <-chan os.Signal {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	return sigChan
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
