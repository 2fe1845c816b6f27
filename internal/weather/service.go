package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = validator.New()

// NewQuery lower-cases unit and validates both fields. The unit is checked
// first so a bad unit is always reported as such.
func NewQuery(city, unit string) (Query, error) {
	q := Query{City: city, Unit: ParseUnit(unit)}

	if err := validate.Struct(q); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return Query{}, err
		}
		for _, fe := range verrs {
			if fe.Field() == "Unit" {
				return Query{}, &InvalidUnitError{Unit: unit}
			}
		}
		return Query{}, ErrEmptyCity
	}

	return q, nil
}

// Service turns a Query into a Report using a single Fetcher call.
type Service struct {
	fetcher Fetcher
	logger  *zap.Logger
}

// NewService creates a new Service.
func NewService(fetcher Fetcher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Current fetches and classifies the current weather for q. Errors are one of
// *InvalidUnitError, ErrEmptyCity, *ResponseDecodeError, *LocationNotFoundError
// or *UpstreamError.
func (s *Service) Current(ctx context.Context, q Query) (Report, error) {
	// Queries built by hand bypass NewQuery.
	q, err := NewQuery(q.City, string(q.Unit))
	if err != nil {
		return Report{}, err
	}
	if s.fetcher == nil {
		return Report{}, &UpstreamError{Err: fmt.Errorf("no weather provider configured")}
	}

	raw, err := s.fetcher.FetchCurrent(ctx, q.City)
	if err != nil {
		s.logger.Error("weather fetch failed",
			zap.String("provider", s.fetcher.Name()),
			zap.String("city", q.City),
			zap.Error(err))
		return Report{}, &UpstreamError{Err: err}
	}

	s.logger.Debug("weather response received",
		zap.String("city", q.City),
		zap.Int("status", raw.StatusCode),
		zap.Int("bytes", len(raw.Body)))

	return s.classify(q, raw)
}

func (s *Service) classify(q Query, raw RawResponse) (Report, error) {
	var resp CurrentResponse
	if err := json.Unmarshal(raw.Body, &resp); err != nil {
		s.logger.Warn("weather response is not decodable",
			zap.Int("status", raw.StatusCode),
			zap.Error(err))
		return Report{}, &ResponseDecodeError{StatusCode: raw.StatusCode, Err: err}
	}

	if raw.StatusCode != http.StatusOK || len(resp.Error) > 0 {
		apiErr := parseAPIError(resp.Error)
		if apiErr.Code != nil && *apiErr.Code == CodeLocationNotFound {
			return Report{}, &LocationNotFoundError{City: q.City}
		}
		s.logger.Warn("weather upstream returned an error",
			zap.Int("status", raw.StatusCode),
			zap.String("message", apiErr.Message))
		return Report{}, &UpstreamError{
			StatusCode: raw.StatusCode,
			Code:       apiErr.Code,
			Message:    apiErr.Message,
		}
	}

	if resp.Location == nil || resp.Current == nil || resp.Current.Condition == nil {
		return Report{}, &UpstreamError{
			StatusCode: raw.StatusCode,
			Message:    "response is missing location or current conditions",
		}
	}

	return BuildReport(resp, q.Unit), nil
}

// parseAPIError reads the "error" object field by field. A non-numeric code
// yields no code; a malformed message is dropped without losing the code.
func parseAPIError(raw json.RawMessage) APIError {
	var apiErr APIError
	if len(raw) == 0 {
		return apiErr
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return apiErr
	}
	if code, ok := fields["code"]; ok {
		var n float64
		if err := json.Unmarshal(code, &n); err == nil {
			apiErr.Code = &n
		}
	}
	if msg, ok := fields["message"]; ok {
		_ = json.Unmarshal(msg, &apiErr.Message)
	}
	return apiErr
}
