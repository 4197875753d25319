// Package weather fetches historical outdoor temperature series and resamples
// them to a fixed interval. It is the I/O boundary of the module: the core
// packages only ever consume the materialized sample slices it produces.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"

	"github.com/synaptecltd/heizkurve"
)

// DefaultBaseURL is the Open-Meteo historical archive endpoint.
const DefaultBaseURL = "https://archive-api.open-meteo.com/v1/archive"

// Provider returns an hourly outdoor temperature series for a location and
// date range.
type Provider interface {
	Fetch(ctx context.Context, lat, lon float64, start, end time.Time) ([]heizkurve.Sample, error)
}

// Client fetches outdoor temperatures from the Open-Meteo archive API.
type Client struct {
	BaseURL    string
	Timezone   string
	HTTPClient *http.Client
}

// NewClient returns a Client with the default endpoint, Berlin timezone and
// a 30 second request timeout.
func NewClient() *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		Timezone:   "Europe/Berlin",
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// archiveResponse mirrors the subset of the Open-Meteo payload we consume.
// Temperatures are pointers because the API reports gaps as null.
type archiveResponse struct {
	Hourly struct {
		Time          []string   `json:"time"`
		Temperature2M []*float64 `json:"temperature_2m"`
	} `json:"hourly"`
}

// Fetch returns the hourly outdoor temperature series for the location and
// date range. Failures are returned to the caller as-is; nothing in the core
// retries or masks them.
func (c *Client) Fetch(ctx context.Context, lat, lon float64, start, end time.Time) ([]heizkurve.Sample, error) {
	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%.4f", lat))
	query.Set("longitude", fmt.Sprintf("%.4f", lon))
	query.Set("start_date", start.Format("2006-01-02"))
	query.Set("end_date", end.Format("2006-01-02"))
	query.Set("hourly", "temperature_2m")
	query.Set("timezone", c.Timezone)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "building weather request")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "fetching weather data")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("weather API returned status %d", resp.StatusCode)
	}

	var payload archiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.Wrap(err, "decoding weather response")
	}

	if len(payload.Hourly.Time) != len(payload.Hourly.Temperature2M) {
		return nil, errors.New("weather response has mismatched time and temperature lengths")
	}

	samples := make([]heizkurve.Sample, len(payload.Hourly.Time))
	for i, stamp := range payload.Hourly.Time {
		ts, err := time.Parse("2006-01-02T15:04", stamp)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing timestamp %q", stamp)
		}

		value := heizkurve.Missing()
		if t := payload.Hourly.Temperature2M[i]; t != nil {
			value = *t
		}
		samples[i] = heizkurve.Sample{Timestamp: ts, Outdoor: value}
	}

	return samples, nil
}
