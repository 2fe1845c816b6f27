package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-cli/internal/weather"
)

var (
	errServerError  = errors.New("server error")
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
}

// doRequestOnce executes exactly one HTTP request through the circuit breaker and
// returns the status and full body. 5xx responses trip the breaker but are still
// returned to the caller so the body can be classified.
func doRequestOnce(
	ctx context.Context,
	client *http.Client,
	cb *gobreaker.CircuitBreaker,
	buildRequest func() (*http.Request, error),
) (weather.RawResponse, error) {
	if client == nil {
		return weather.RawResponse{}, errNoHTTPClient
	}

	req, err := buildRequest()
	if err != nil {
		return weather.RawResponse{}, err
	}

	// Ensure the request obeys context cancellation.
	req = req.WithContext(ctx)

	var raw weather.RawResponse
	_, err = cb.Execute(func() (interface{}, error) {
		resp, execErr := client.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		defer resp.Body.Close()

		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, fmt.Errorf("read response body: %w", readErr)
		}
		raw = weather.RawResponse{StatusCode: resp.StatusCode, Body: body}

		if resp.StatusCode >= 500 {
			return nil, fmt.Errorf("%w: %d", errServerError, resp.StatusCode)
		}
		return nil, nil
	})

	if err == nil || errors.Is(err, errServerError) {
		return raw, nil
	}

	// If circuit is open, propagate immediately.
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return weather.RawResponse{}, fmt.Errorf("%w: %v", errCircuitOpen, err)
	}

	return weather.RawResponse{}, err
}
