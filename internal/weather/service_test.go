package weather

import (
	"context"
	"errors"
	"net/http"
	"os"
	"testing"
)

type fakeFetcher struct {
	resp  RawResponse
	err   error
	calls int
	city  string
}

func (f *fakeFetcher) Name() string { return "fake" }

func (f *fakeFetcher) FetchCurrent(_ context.Context, city string) (RawResponse, error) {
	f.calls++
	f.city = city
	return f.resp, f.err
}

func londonBody(t *testing.T) []byte {
	t.Helper()
	body, err := os.ReadFile("testdata/london.json")
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return body
}

func TestNewQuery(t *testing.T) {
	cases := []struct {
		city, unit string
		want       Unit
		wantErr    error
	}{
		{"London", "c", Celsius, nil},
		{"London", "C", Celsius, nil},
		{"London", "f", Fahrenheit, nil},
		{"London", "F", Fahrenheit, nil},
		{"London", "x", "", &InvalidUnitError{}},
		{"London", "", "", &InvalidUnitError{}},
		{"", "x", "", &InvalidUnitError{}},
		{"London", " c", "", &InvalidUnitError{}},
		{"London", "c ", "", &InvalidUnitError{}},
		{"London", " f ", "", &InvalidUnitError{}},
		{"", "c", "", ErrEmptyCity},
	}

	for _, tc := range cases {
		q, err := NewQuery(tc.city, tc.unit)
		switch want := tc.wantErr.(type) {
		case nil:
			if err != nil {
				t.Fatalf("NewQuery(%q, %q): unexpected error %v", tc.city, tc.unit, err)
			}
			if q.Unit != tc.want {
				t.Fatalf("NewQuery(%q, %q): unit %q, want %q", tc.city, tc.unit, q.Unit, tc.want)
			}
		case *InvalidUnitError:
			var unitErr *InvalidUnitError
			if !errors.As(err, &unitErr) {
				t.Fatalf("NewQuery(%q, %q): expected InvalidUnitError, got %v", tc.city, tc.unit, err)
			}
			if err.Error() != InvalidUnitMessage {
				t.Fatalf("unexpected message %q", err.Error())
			}
		default:
			if !errors.Is(err, want) {
				t.Fatalf("NewQuery(%q, %q): expected %v, got %v", tc.city, tc.unit, want, err)
			}
		}
	}
}

func TestCurrentBuildsReportForUnit(t *testing.T) {
	body := londonBody(t)

	cases := []struct {
		unit                Unit
		temp, feels, symbol string
	}{
		{Celsius, "20.0", "21.0", "°C"},
		{Fahrenheit, "68.0", "69.8", "°F"},
	}

	for _, tc := range cases {
		f := &fakeFetcher{resp: RawResponse{StatusCode: http.StatusOK, Body: body}}
		svc := NewService(f, nil)

		r, err := svc.Current(context.Background(), Query{City: "London", Unit: tc.unit})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.calls != 1 || f.city != "London" {
			t.Fatalf("expected one fetch for London, got %d for %q", f.calls, f.city)
		}
		if r.Temp != tc.temp || r.FeelsLike != tc.feels || r.UnitSymbol != tc.symbol {
			t.Fatalf("unit %s: got %s/%s%s", tc.unit, r.Temp, r.FeelsLike, r.UnitSymbol)
		}
		if r.Lat != "51.5074" || r.Lon != "-0.1278" {
			t.Fatalf("coordinates not preserved: %s, %s", r.Lat, r.Lon)
		}
		if r.Humidity != "50" || r.Pressure != "1012" || r.UVIndex != "3.0" {
			t.Fatalf("numbers not preserved: %+v", r)
		}
		if r.TempC != "20.0" || r.TempF != "68.0" {
			t.Fatalf("raw temperatures missing: %+v", r)
		}
		if r.Condition != "Partly cloudy" || r.WindDir != "NW" {
			t.Fatalf("unexpected report: %+v", r)
		}
	}
}

func TestCurrentInvalidUnitSkipsFetch(t *testing.T) {
	f := &fakeFetcher{}
	svc := NewService(f, nil)

	_, err := svc.Current(context.Background(), Query{City: "London", Unit: "x"})
	var unitErr *InvalidUnitError
	if !errors.As(err, &unitErr) {
		t.Fatalf("expected InvalidUnitError, got %v", err)
	}
	if f.calls != 0 {
		t.Fatalf("fetcher must not be called, got %d calls", f.calls)
	}
}

func TestCurrentErrorClassification(t *testing.T) {
	cases := []struct {
		name     string
		resp     RawResponse
		fetchErr error
		check    func(t *testing.T, err error)
	}{
		{
			name: "location not found",
			resp: RawResponse{StatusCode: http.StatusBadRequest, Body: []byte(`{"error":{"code":1006,"message":"No matching location found."}}`)},
			check: func(t *testing.T, err error) {
				var nf *LocationNotFoundError
				if !errors.As(err, &nf) || nf.City != "NowhereLand" {
					t.Fatalf("expected LocationNotFoundError for NowhereLand, got %v", err)
				}
			},
		},
		{
			name: "other error code",
			resp: RawResponse{StatusCode: http.StatusUnauthorized, Body: []byte(`{"error":{"code":2006,"message":"API key is invalid."}}`)},
			check: func(t *testing.T, err error) {
				var ue *UpstreamError
				if !errors.As(err, &ue) || ue.StatusCode != http.StatusUnauthorized || ue.Code == nil || *ue.Code != 2006 {
					t.Fatalf("expected UpstreamError 401/2006, got %v", err)
				}
			},
		},
		{
			name: "sentinel survives a malformed message",
			resp: RawResponse{StatusCode: http.StatusBadRequest, Body: []byte(`{"error":{"code":1006,"message":123}}`)},
			check: func(t *testing.T, err error) {
				var nf *LocationNotFoundError
				if !errors.As(err, &nf) || nf.City != "NowhereLand" {
					t.Fatalf("expected LocationNotFoundError for NowhereLand, got %v", err)
				}
			},
		},
		{
			name: "code survives a malformed message",
			resp: RawResponse{StatusCode: http.StatusUnauthorized, Body: []byte(`{"error":{"code":2006,"message":["bad"]}}`)},
			check: func(t *testing.T, err error) {
				var ue *UpstreamError
				if !errors.As(err, &ue) || ue.Code == nil || *ue.Code != 2006 || ue.Message != "" {
					t.Fatalf("expected UpstreamError code 2006 without message, got %v", err)
				}
			},
		},
		{
			name: "error object on 200",
			resp: RawResponse{StatusCode: http.StatusOK, Body: []byte(`{"error":{"code":1006}}`)},
			check: func(t *testing.T, err error) {
				var nf *LocationNotFoundError
				if !errors.As(err, &nf) {
					t.Fatalf("expected LocationNotFoundError, got %v", err)
				}
			},
		},
		{
			name: "non-200 without error object",
			resp: RawResponse{StatusCode: http.StatusServiceUnavailable, Body: []byte(`{}`)},
			check: func(t *testing.T, err error) {
				if StatusCode(err) != http.StatusServiceUnavailable {
					t.Fatalf("expected status 503, got %v", err)
				}
			},
		},
		{
			name: "error code as string is not the sentinel",
			resp: RawResponse{StatusCode: http.StatusBadRequest, Body: []byte(`{"error":{"code":"1006"}}`)},
			check: func(t *testing.T, err error) {
				var ue *UpstreamError
				if !errors.As(err, &ue) || ue.StatusCode != http.StatusBadRequest {
					t.Fatalf("expected UpstreamError, got %v", err)
				}
			},
		},
		{
			name: "undecodable body",
			resp: RawResponse{StatusCode: http.StatusBadGateway, Body: []byte(`<html>bad gateway</html>`)},
			check: func(t *testing.T, err error) {
				var de *ResponseDecodeError
				if !errors.As(err, &de) || de.StatusCode != http.StatusBadGateway {
					t.Fatalf("expected ResponseDecodeError 502, got %v", err)
				}
			},
		},
		{
			name: "missing current",
			resp: RawResponse{StatusCode: http.StatusOK, Body: []byte(`{"location":{"name":"London"}}`)},
			check: func(t *testing.T, err error) {
				var ue *UpstreamError
				if !errors.As(err, &ue) || ue.StatusCode != http.StatusOK {
					t.Fatalf("expected UpstreamError 200, got %v", err)
				}
			},
		},
		{
			name:     "transport failure",
			fetchErr: errors.New("connection refused"),
			check: func(t *testing.T, err error) {
				var ue *UpstreamError
				if !errors.As(err, &ue) || ue.StatusCode != 0 {
					t.Fatalf("expected UpstreamError with status 0, got %v", err)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := &fakeFetcher{resp: tc.resp, err: tc.fetchErr}
			svc := NewService(f, nil)

			_, err := svc.Current(context.Background(), Query{City: "NowhereLand", Unit: Celsius})
			if err == nil {
				t.Fatal("expected error")
			}
			tc.check(t, err)
		})
	}
}

func TestReportFieldsCoverPlaceholders(t *testing.T) {
	fields := Report{}.Fields()
	if len(fields) != len(ReportFields) {
		t.Fatalf("Fields has %d keys, ReportFields lists %d", len(fields), len(ReportFields))
	}
	for _, name := range ReportFields {
		if _, ok := fields[name]; !ok {
			t.Fatalf("Fields is missing %q", name)
		}
	}
}
