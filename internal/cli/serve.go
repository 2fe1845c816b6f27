package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpapi "github.com/i474232898/weather-cli/internal/api/http"
)

func newServeCommand(app *App) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve current weather lookups over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port == "" && app.Config != nil {
				port = app.Config.Port
			}
			return serve(cmd.Context(), app, port)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (default $PORT or 8080)")
	return cmd
}

// serve blocks until ctx is cancelled, then shuts the server down.
func serve(ctx context.Context, app *App, port string) error {
	if port == "" {
		port = "8080"
	}

	server := httpapi.NewApp(app.Service, app.Catalog)

	errCh := make(chan error, 1)
	go func() {
		app.Logger.Info("http server listening", zap.String("port", port))
		errCh <- server.Listen(":" + port)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			app.Logger.Error("http server stopped", zap.Error(err))
			return &ExitError{Code: exitFailure, Err: err}
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		app.Logger.Error("error during shutdown", zap.Error(err))
		return &ExitError{Code: exitFailure, Err: err}
	}
	return nil
}
