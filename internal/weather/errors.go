package weather

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCity is returned when a query has no city.
	ErrEmptyCity = errors.New("city must not be empty")
)

// InvalidUnitMessage is shown verbatim to the user for a bad --unit value.
const InvalidUnitMessage = "Unit must be 'c' for Celsius or 'f' for Fahrenheit."

// InvalidUnitError is returned before any network call when the unit is not c or f.
type InvalidUnitError struct {
	Unit string
}

func (e *InvalidUnitError) Error() string {
	return InvalidUnitMessage
}

// ResponseDecodeError means the body could not be decoded as a JSON object.
type ResponseDecodeError struct {
	StatusCode int
	Err        error
}

func (e *ResponseDecodeError) Error() string {
	return fmt.Sprintf("decode response (status %d): %v", e.StatusCode, e.Err)
}

func (e *ResponseDecodeError) Unwrap() error { return e.Err }

// LocationNotFoundError is the upstream 1006 sentinel.
type LocationNotFoundError struct {
	City string
}

func (e *LocationNotFoundError) Error() string {
	return fmt.Sprintf("no matching location found for %q", e.City)
}

// UpstreamError covers every other failure: transport errors (StatusCode 0),
// non-200 responses and payloads missing required objects.
type UpstreamError struct {
	StatusCode int
	Code       *float64
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("weather upstream failed (status %d)", e.StatusCode)
	if e.Code != nil {
		msg += fmt.Sprintf(" code %v", *e.Code)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// StatusCode extracts the HTTP status carried by a decode or upstream error.
func StatusCode(err error) int {
	var decodeErr *ResponseDecodeError
	if errors.As(err, &decodeErr) {
		return decodeErr.StatusCode
	}
	var upstreamErr *UpstreamError
	if errors.As(err, &upstreamErr) {
		return upstreamErr.StatusCode
	}
	return 0
}
