package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/FACorreiaa/receipt-scanner/pkg/cron"
)

func newWatchCmd(a *app) *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Sweep the inbox directory for receipt files on a schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			proc := &fileProcessor{app: a}
			if save {
				repo, cleanup, err := a.openRepository(ctx)
				if err != nil {
					return err
				}
				defer cleanup()
				proc.repo = repo
			}

			if err := os.MkdirAll(a.cfg.Inbox.Dir, 0o755); err != nil {
				return fmt.Errorf("create inbox: %w", err)
			}

			scheduler := cron.NewScheduler(proc,
				a.cfg.Inbox.Dir, a.cfg.Inbox.Archive, a.cfg.Inbox.Schedule,
				a.logger,
			)
			if err := scheduler.Start(); err != nil {
				return fmt.Errorf("start scheduler: %w", err)
			}

			var metricsServer *http.Server
			if a.cfg.Observability.MetricsEnabled {
				metricsServer = a.serveMetrics()
			}

			// Pick up anything already waiting before the first tick.
			scheduler.SweepInbox()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			<-stop

			<-scheduler.Stop().Done()
			if metricsServer != nil {
				_ = metricsServer.Close()
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&save, "save", false, "store parsed receipts in Postgres")
	return cmd
}

func (a *app) serveMetrics() *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.metrics.Handler())

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.Observability.MetricsPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Error("metrics server stopped", "error", err)
		}
	}()
	a.logger.Info("metrics listening", "addr", server.Addr)
	return server
}
