package weather_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gotest.tools/v3/assert"

	"github.com/synaptecltd/heizkurve"
	"github.com/synaptecltd/heizkurve/weather"
)

func TestClientFetchParsesArchiveResponse(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"latitude":   r.URL.Query().Get("latitude"),
			"longitude":  r.URL.Query().Get("longitude"),
			"start_date": r.URL.Query().Get("start_date"),
			"end_date":   r.URL.Query().Get("end_date"),
			"hourly":     r.URL.Query().Get("hourly"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"hourly": {
				"time": ["2023-11-01T00:00", "2023-11-01T01:00", "2023-11-01T02:00"],
				"temperature_2m": [3.2, null, 2.8]
			}
		}`))
	}))
	defer server.Close()

	client := weather.NewClient()
	client.BaseURL = server.URL

	samples, err := client.Fetch(context.Background(), 52.52, 13.405,
		time.Date(2023, time.November, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, time.November, 2, 0, 0, 0, 0, time.UTC))
	assert.NilError(t, err)

	assert.Equal(t, gotQuery["latitude"], "52.5200")
	assert.Equal(t, gotQuery["longitude"], "13.4050")
	assert.Equal(t, gotQuery["start_date"], "2023-11-01")
	assert.Equal(t, gotQuery["end_date"], "2023-11-02")
	assert.Equal(t, gotQuery["hourly"], "temperature_2m")

	assert.Equal(t, len(samples), 3)
	assert.Equal(t, samples[0].Outdoor, 3.2)
	assert.Assert(t, heizkurve.IsMissing(samples[1].Outdoor), "null reading becomes a gap")
	assert.Equal(t, samples[2].Outdoor, 2.8)
	assert.Equal(t, samples[0].Timestamp, time.Date(2023, time.November, 1, 0, 0, 0, 0, time.UTC))
}

func TestClientFetchErrorPaths(t *testing.T) {
	type testcase struct {
		name    string
		handler http.HandlerFunc
		errSub  string
	}
	cases := []testcase{
		{
			name: "server error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			errSub: "status 429",
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"hourly":`))
			},
			errSub: "decoding weather response",
		},
		{
			name: "mismatched columns",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"hourly": {"time": ["2023-11-01T00:00"], "temperature_2m": []}}`))
			},
			errSub: "mismatched",
		},
		{
			name: "unparseable timestamp",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"hourly": {"time": ["yesterday"], "temperature_2m": [1.0]}}`))
			},
			errSub: "parsing timestamp",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(tc.handler)
			defer server.Close()

			client := weather.NewClient()
			client.BaseURL = server.URL

			_, err := client.Fetch(context.Background(), 52.52, 13.405,
				time.Date(2023, time.November, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2023, time.November, 2, 0, 0, 0, 0, time.UTC))
			assert.ErrorContains(t, err, tc.errSub)
		})
	}
}

func TestClientFetchHonoursContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := weather.NewClient()
	client.BaseURL = server.URL

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Fetch(ctx, 52.52, 13.405,
		time.Date(2023, time.November, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, time.November, 2, 0, 0, 0, 0, time.UTC))
	assert.ErrorContains(t, err, "fetching weather data")
}
