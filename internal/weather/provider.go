package weather

import (
	"context"
)

// Fetcher performs the single outbound call for a city. It returns whatever
// status and body the upstream sent; interpreting them is the Service's job.
// An error means no response was obtained at all.
type Fetcher interface {
	Name() string
	FetchCurrent(ctx context.Context, city string) (RawResponse, error)
}
