package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/internal/api"
)

// serveCommand creates the serve command that runs the HTTP render service.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the rendering pipeline as an HTTP service",
		Long: `Serve starts an HTTP server exposing the rendering pipeline.

POST /render accepts the pipeline options as JSON with the CSV content
inline and responds with the rendered artifact. GET /healthz and
GET /version report service status.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			noCache, _ := cmd.Flags().GetBool("no-cache")
			runner, err := c.newRunner(cmd, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			server := api.NewServer(runner, c.Logger)
			return serve(cmd.Context(), c, addr, server)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().String("redis", "", "Redis address for a shared cache (host:port)")
	cmd.Flags().Bool("no-cache", false, "disable the pipeline cache")

	return cmd
}

// serve runs the HTTP server until the context is cancelled, then shuts
// down gracefully with a short drain window.
func serve(ctx context.Context, c *CLI, addr string, server *api.Server) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Infof("Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		c.Logger.Info("Server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
