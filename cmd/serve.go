package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KaramelBytes/drawstats-cli/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var (
	serveAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis over HTTP (upload or Google Drive)",
	Long: `Starts an HTTP API:
  GET  /health                  liveness probe
  POST /stats                   analyze an uploaded CSV (multipart field "file" or raw body)
  GET  /drive/files             list CSV files in Google Drive
  POST /drive/files/:id/stats   analyze one Drive file`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := serveAddr
		if addr == "" && cfg != nil {
			addr = cfg.ServerAddr
		}
		if addr == "" {
			addr = ":8080"
		}
		if !debug {
			gin.SetMode(gin.ReleaseMode)
		}
		scfg := server.Config{Options: analysisOptions()}
		if cfg != nil {
			scfg.MaxUploadBytes = int64(cfg.MaxUploadMB) << 20
			if cfg.DriveAccessToken != "" || cfg.DriveAPIKey != "" {
				scfg.Drive = newDriveClient()
			} else {
				fmt.Fprintln(cmd.ErrOrStderr(), "⚠ Warning: no Drive credentials configured; /drive routes are disabled")
			}
		}

		ln, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Listening on %s\n", ln.Addr())
		return serveUntilDone(ctx, ln, server.New(scfg))
	},
}

// serveUntilDone serves h on ln until ctx is cancelled, then shuts down
// gracefully. The listener is closed on return.
func serveUntilDone(ctx context.Context, ln net.Listener, h http.Handler) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config server_addr)")
}
