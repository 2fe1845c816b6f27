package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/i474232898/weather-cli/internal/scheduler"
	"github.com/i474232898/weather-cli/internal/weather"
)

func newWatchCommand(app *App) *cobra.Command {
	var (
		unit  string
		every time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch <city>",
		Short: "Print the current weather for a city on a fixed interval",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := parseQuery(app, args[0], unit)
			if err != nil {
				return err
			}
			if every == 0 && app.Config != nil {
				every = app.Config.WatchInterval
			}
			return watch(cmd.Context(), app, q, every)
		},
	}

	cmd.Flags().StringVarP(&unit, "unit", "u", "c", "Temperature unit: c for Celsius, f for Fahrenheit")
	cmd.Flags().DurationVarP(&every, "every", "e", 0, "Refresh interval (default $WATCH_INTERVAL or 15m)")
	return cmd
}

// watch prints a report on every tick until ctx is cancelled. A failed lookup
// prints its error line and waits for the next tick.
func watch(ctx context.Context, app *App, q weather.Query, every time.Duration) error {
	job := func(ctx context.Context) {
		if err := lookup(ctx, app, q); err != nil {
			app.Logger.Warn("watch lookup failed", zap.String("city", q.City), zap.Error(err))
		}
	}

	sched := scheduler.New(every, job, app.Logger)
	if err := sched.Start(ctx); err != nil {
		fmt.Fprintf(app.Stderr, "Error: Invalid value for '--every': %v\n", err)
		return &ExitError{Code: exitUsage, Err: err}
	}
	defer sched.Stop()

	<-ctx.Done()
	return nil
}
