package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/i474232898/weather-cli/internal/config"
	"github.com/i474232898/weather-cli/internal/locale"
	"github.com/i474232898/weather-cli/internal/weather"
)

// Indicator is a start/stop progress display shown while waiting on the API.
type Indicator interface {
	Start()
	Stop()
}

type noopIndicator struct{}

func (noopIndicator) Start() {}
func (noopIndicator) Stop()  {}

// App carries everything a command needs. It is built once in main.
type App struct {
	Config  *config.AppConfig
	Catalog *locale.Catalog
	Service *weather.Service
	Logger  *zap.Logger

	Stdout io.Writer
	Stderr io.Writer

	// NewIndicator is called once per lookup; nil disables the indicator.
	NewIndicator func() Indicator
}

func (a *App) indicator() Indicator {
	if a.NewIndicator == nil {
		return noopIndicator{}
	}
	return a.NewIndicator()
}

// ExitError carries a process exit code back to main. The message, if any,
// has already been printed.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

const (
	exitFailure = 1
	exitUsage   = 2
)

// Execute runs the command line in args and returns the process exit code.
func Execute(ctx context.Context, app *App, args []string) int {
	if app.Logger == nil {
		app.Logger = zap.NewNop()
	}

	// cobra reads os.Args when given nil.
	if args == nil {
		args = []string{}
	}

	cmd := NewRootCommand(app)
	cmd.SetArgs(args)
	cmd.SetOut(app.Stdout)
	cmd.SetErr(app.Stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	// Flag and argument errors from cobra itself.
	fmt.Fprintf(app.Stderr, "Error: %v\nRun '%s --help' for usage.\n", err, cmd.Name())
	return exitUsage
}
