package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/zeabis/zeabis/internal/httpapi"
	"github.com/zeabis/zeabis/internal/jobs"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var addr string
	var noJobs bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON API and the overdue-invoice sweep",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := app.logger()
			if addr == "" {
				addr = app.Config.Addr
			}
			if app.Config.InsecureSecret() {
				logger.Warn("insecure_jwt_secret", "hint", "set ZEABIS_JWT_SECRET")
			}

			var scheduler *jobs.Scheduler
			if !noJobs {
				job := jobs.NewOverdueJob(app.Services.Invoices, logger).WithClock(app.now)
				s, err := jobs.NewScheduler(job, app.Config.OverdueSchedule, time.Local)
				if err != nil {
					return err
				}
				scheduler = s
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           httpapi.NewServer(app.Services, logger).WithClock(app.now).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if scheduler != nil {
				scheduler.Start()
				logger.Info("overdue_sweep_scheduled", "schedule", app.Config.OverdueSchedule, "next", scheduler.Next())
			}
			errCh := make(chan error, 1)
			go func() {
				logger.Info("server_listening", "addr", addr)
				errCh <- srv.ListenAndServe()
			}()

			var serveErr error
			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					serveErr = fmt.Errorf("serving: %w", err)
				}
			case <-ctx.Done():
				logger.Info("server_shutdown")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil && serveErr == nil {
				serveErr = fmt.Errorf("shutting down: %w", err)
			}
			if scheduler != nil {
				scheduler.Stop(shutdownCtx)
			}
			return serveErr
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from ZEABIS_ADDR or :3001)")
	cmd.Flags().BoolVar(&noJobs, "no-jobs", false, "do not schedule the overdue sweep")
	return cmd
}
