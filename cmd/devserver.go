package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ramanasai/daytodo/internal/dateutil"
	"github.com/ramanasai/daytodo/internal/fakeserver"
	"github.com/spf13/cobra"
)

var (
	devAddr string
	devSeed bool
)

// devServerCmd serves the in-memory backend for trying the client out.
var devServerCmd = &cobra.Command{
	Use:    "dev-server",
	Short:  "Run an in-memory todo server",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := cliLogger()
		if err != nil {
			return err
		}
		fake := fakeserver.New()
		if devSeed {
			today := dateutil.Today(cfg.Location())
			fake.Seed(today, "Try adding a todo with a", "Press / to search", "Right-click a date for its menu")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := &http.Server{
			Addr:              devAddr,
			Handler:           fake.Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		logger.Print("dev server listening", "addr", "http://"+devAddr+"/api")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	devServerCmd.Flags().StringVar(&devAddr, "addr", "127.0.0.1:5000", "Listen address")
	devServerCmd.Flags().BoolVar(&devSeed, "seed", false, "Start with a few todos for today")
}
