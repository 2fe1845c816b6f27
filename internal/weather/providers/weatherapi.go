package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-cli/internal/weather"
)

// WeatherAPIProvider implements the weather.Fetcher interface for WeatherAPI.com.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	lang    string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewWeatherAPIProvider targets baseURL + /v1/current.json, e.g. http://api.weatherapi.com.
func NewWeatherAPIProvider(client *http.Client, baseURL, apiKey, lang string) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		lang:    lang,
		baseURL: baseURL + "/v1/current.json",
		client:  client,
		circuit: newCircuitBreaker("weatherapi"),
	}
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

func (p *WeatherAPIProvider) FetchCurrent(ctx context.Context, city string) (weather.RawResponse, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)
		// WeatherAPI owns validation of q; it accepts names, postcodes or "lat,lon".
		values.Set("q", city)
		values.Set("lang", p.lang)

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		req, err := http.NewRequest(http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		return req, nil
	}

	return doRequestOnce(ctx, p.client, p.circuit, buildRequest)
}
