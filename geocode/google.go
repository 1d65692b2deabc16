// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/genetics-map/genmap/spatial"
	"github.com/genetics-map/genmap/utils/httputils"
	"golang.org/x/time/rate"
)

// DefaultEndpoint is the Google Geocoding API.
const DefaultEndpoint = "https://maps.googleapis.com/maps/api/geocode/json"

// ErrMissingAPIKey is returned when no key could be found.
var ErrMissingAPIKey = errors.New("geocoding API key is not set")

// Options configures GoogleMapsGeocoder.
type Options struct {
	// APIKey for the Geocoding API
	APIKey string

	// Endpoint overrides DefaultEndpoint
	Endpoint string

	// Language of the names in forward results
	Language string

	// UserAgent is the User-Agent header to use in HTTP requests
	UserAgent string

	// Timeout for a single request
	Timeout time.Duration

	// QPS caps requests per second; zero disables the limiter
	QPS float64

	// Enables light tracing of HTTP requests and responses
	EnableHTTPTrace bool

	// Enables full HTTP body tracing
	EnableHTTPBodyTrace bool
}

// GoogleMapsGeocoder uses Google Maps Geocoding API.
type GoogleMapsGeocoder struct {
	apiKey     string
	endpoint   string
	language   string
	httpClient *http.Client
}

// NewGoogleMapsGeocoder creates a new Google Maps geocoder.
func NewGoogleMapsGeocoder(options *Options) (*GoogleMapsGeocoder, error) {
	if options == nil || options.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	var transport http.RoundTripper = http.DefaultTransport

	if options.QPS > 0 {
		transport = &httputils.RateLimitedRoundTripper{
			Transport: transport,
			Limiter:   rate.NewLimiter(rate.Limit(options.QPS), 1),
		}
	}

	if options.EnableHTTPTrace || options.EnableHTTPBodyTrace {
		transport = &httputils.LoggingRoundTripper{
			Transport: transport,
			Writer:    os.Stderr,
			DumpBody:  options.EnableHTTPBodyTrace,
			Redact:    []string{"key"},
		}
	}

	if options.UserAgent != "" {
		transport = &httputils.AppendRequestHeadersRoundTripper{
			Transport: transport,
			Headers:   map[string]string{"User-Agent": options.UserAgent},
		}
	}

	timeout := options.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	endpoint := options.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	language := options.Language
	if language == "" {
		language = "en"
	}

	return &GoogleMapsGeocoder{
		apiKey:   options.APIKey,
		endpoint: endpoint,
		language: language,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}, nil
}

type googleMapsResponse struct {
	Results []struct {
		Geometry struct {
			Location *struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
			LocationType string `json:"location_type"`
		} `json:"geometry"`
		AddressComponents []AddressComponent `json:"address_components"`
		FormattedAddress  string             `json:"formatted_address"`
	} `json:"results"`
	Status       string `json:"status"` // OK, ZERO_RESULTS, etc.
	ErrorMessage string `json:"error_message"`
}

// Geocode implements Geocoder.
func (g *GoogleMapsGeocoder) Geocode(ctx context.Context, query string) (*Result, error) {
	params := url.Values{}
	params.Set("address", query)
	params.Set("language", g.language)

	return g.do(ctx, params)
}

// Reverse implements Geocoder.
func (g *GoogleMapsGeocoder) Reverse(ctx context.Context, p spatial.Point, language string) (*Result, error) {
	params := url.Values{}
	params.Set("latlng", p.LatLngString())

	if language == "" {
		language = g.language
	}

	params.Set("language", language)

	return g.do(ctx, params)
}

func (g *GoogleMapsGeocoder) do(ctx context.Context, params url.Values) (*Result, error) {
	params.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &GeocodingError{Type: ErrorTypeInvalidRequest, Message: "building request", Err: err}
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		t := ErrorTypeNetworkError
		if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
			t = ErrorTypeTimeout
		}

		return nil, &GeocodingError{Type: t, Message: "geocoding request failed", Err: redactErr(err, req.URL)}
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		return nil, ClassifyHTTPError(resp.StatusCode, string(body))
	}

	var gmResp googleMapsResponse
	if err := json.NewDecoder(resp.Body).Decode(&gmResp); err != nil {
		return nil, &GeocodingError{Type: ErrorTypeUnknown, Message: "decoding response", Err: err}
	}

	if gmResp.Status != "OK" {
		return nil, ClassifyStatus(gmResp.Status, gmResp.ErrorMessage)
	}

	if len(gmResp.Results) == 0 {
		return nil, &GeocodingError{Type: ErrorTypeNotFound, Message: "no results found"}
	}

	first := gmResp.Results[0]
	result := &Result{
		Components:       first.AddressComponents,
		FormattedAddress: first.FormattedAddress,
		LocationType:     first.Geometry.LocationType,
	}

	if loc := first.Geometry.Location; loc != nil {
		result.Point = &spatial.Point{Lat: loc.Lat, Lng: loc.Lng}
	}

	return result, nil
}

// redactErr keeps the API key out of *url.Error messages, which embed the request URL.
func redactErr(err error, u *url.URL) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return fmt.Errorf("%s %q: %w", urlErr.Op, httputils.RedactURL(u, "key"), urlErr.Err)
	}

	return err
}
