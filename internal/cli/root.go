package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/i474232898/weather-cli/internal/locale"
	"github.com/i474232898/weather-cli/internal/weather"
)

// NewRootCommand builds `weather <city> [--unit c|f]` with its subcommands.
func NewRootCommand(app *App) *cobra.Command {
	var unit string

	cmd := &cobra.Command{
		Use:   "weather <city>",
		Short: "Show the current weather for a city",
		Long: `Fetch the current weather for a city from WeatherAPI.com and print a
localized summary.

The API key is read from API_KEY and the language from TOOL_LANGUAGE.

A city named like a subcommand (help, serve, watch) needs "--" first:
  weather -- watch`,
		Example: `  weather London
  weather "New York" --unit f`,
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := parseQuery(app, args[0], unit)
			if err != nil {
				return err
			}
			return lookup(cmd.Context(), app, q)
		},
	}

	cmd.Flags().StringVarP(&unit, "unit", "u", "c", "Temperature unit: c for Celsius, f for Fahrenheit")

	cmd.AddCommand(newServeCommand(app))
	cmd.AddCommand(newWatchCommand(app))

	return cmd
}

// parseQuery validates input before any network call. Failures are usage
// errors and go to stderr.
func parseQuery(app *App, city, unit string) (weather.Query, error) {
	q, err := weather.NewQuery(city, unit)
	if err == nil {
		return q, nil
	}

	var unitErr *weather.InvalidUnitError
	if errors.As(err, &unitErr) {
		fmt.Fprintf(app.Stderr, "Error: Invalid value for '--unit' / '-u': %s\n", weather.InvalidUnitMessage)
	} else {
		fmt.Fprintf(app.Stderr, "Error: Invalid value for 'CITY': %v\n", err)
	}
	return weather.Query{}, &ExitError{Code: exitUsage, Err: err}
}

// lookup runs one fetch and prints either the report or a single error line.
func lookup(ctx context.Context, app *App, q weather.Query) error {
	spin(app)

	report, err := app.Service.Current(ctx, q)
	if err != nil {
		fmt.Fprintln(app.Stdout, app.Catalog.ErrorMessage(err))
		return &ExitError{Code: exitFailure, Err: err}
	}

	printReport(app.Stdout, app.Catalog, report)
	return nil
}

func spin(app *App) {
	var delay time.Duration
	if app.Config != nil {
		delay = app.Config.SpinnerDelay
	}

	ind := app.indicator()
	ind.Start()
	time.Sleep(delay)
	ind.Stop()
}

// printReport writes the report block: two blank-line separators around the
// nine info lines.
func printReport(w io.Writer, cat *locale.Catalog, r weather.Report) {
	fmt.Fprint(w, "\n\n")
	for _, line := range cat.Lines(r) {
		fmt.Fprintln(w, line)
	}
	fmt.Fprint(w, "\n\n")
}
