// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

type errorCheckTestCase struct {
	name string
	err  error
	want bool
}

func runErrorCheckTest(t *testing.T, tests []errorCheckTestCase, checkFunc func(error) bool) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checkFunc(tt.err); got != tt.want {
				t.Errorf("checkFunc() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsRateLimitError(t *testing.T) {
	runErrorCheckTest(t, []errorCheckTestCase{
		{"rate limit error type", &GeocodingError{Type: ErrorTypeRateLimit, Message: "rate limit exceeded"}, true},
		{"message contains rate limit", errors.New("rate limit exceeded"), true},
		{"message contains too many requests", errors.New("too many requests"), true},
		{"message contains 429", errors.New("geocoder returned status 429"), true},
		{"wrapped typed error", fmt.Errorf("attempt 1: %w", &GeocodingError{Type: ErrorTypeRateLimit}), true},
		{"other error type", &GeocodingError{Type: ErrorTypeNotFound, Message: "not found"}, false},
		{"unrelated error", errors.New("some other error"), false},
		{"nil", nil, false},
	}, IsRateLimitError)
}

func TestIsQuotaExceededError(t *testing.T) {
	runErrorCheckTest(t, []errorCheckTestCase{
		{"quota error type", &GeocodingError{Type: ErrorTypeQuotaExceeded, Message: "quota"}, true},
		{"message contains over_query_limit", errors.New("status OVER_QUERY_LIMIT"), true},
		{"message contains quota exceeded", errors.New("Quota exceeded for project"), true},
		{"other error type", &GeocodingError{Type: ErrorTypeTimeout}, false},
		{"unrelated", errors.New("boom"), false},
	}, IsQuotaExceededError)
}

func TestIsTimeoutError(t *testing.T) {
	runErrorCheckTest(t, []errorCheckTestCase{
		{"timeout error type", &GeocodingError{Type: ErrorTypeTimeout, Message: "timeout"}, true},
		{"message contains timeout", errors.New("i/o timeout"), true},
		{"message contains deadline", errors.New("context deadline exceeded"), true},
		{"other error type", &GeocodingError{Type: ErrorTypeNetworkError}, false},
		{"unrelated", errors.New("boom"), false},
	}, IsTimeoutError)
}

func TestIsNotFoundError(t *testing.T) {
	runErrorCheckTest(t, []errorCheckTestCase{
		{"typed", &GeocodingError{Type: ErrorTypeNotFound}, true},
		{"untyped", errors.New("not found"), false},
		{"nil", nil, false},
	}, IsNotFoundError)
}

func TestClassifyHTTPError(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorType
	}{
		{http.StatusTooManyRequests, ErrorTypeRateLimit},
		{http.StatusForbidden, ErrorTypeQuotaExceeded},
		{http.StatusBadRequest, ErrorTypeInvalidRequest},
		{http.StatusNotFound, ErrorTypeNotFound},
		{http.StatusBadGateway, ErrorTypeNetworkError},
		{http.StatusServiceUnavailable, ErrorTypeNetworkError},
		{http.StatusTeapot, ErrorTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			if got := ClassifyHTTPError(tt.status, "").Type; got != tt.want {
				t.Errorf("ClassifyHTTPError(%d) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := map[string]ErrorType{
		"ZERO_RESULTS":     ErrorTypeNotFound,
		"OVER_QUERY_LIMIT": ErrorTypeRateLimit,
		"REQUEST_DENIED":   ErrorTypeQuotaExceeded,
		"INVALID_REQUEST":  ErrorTypeInvalidRequest,
		"UNKNOWN_ERROR":    ErrorTypeUnknown,
	}

	for status, want := range tests {
		t.Run(status, func(t *testing.T) {
			if got := ClassifyStatus(status, "").Type; got != want {
				t.Errorf("ClassifyStatus(%s) = %v, want %v", status, got, want)
			}
		})
	}

	if msg := ClassifyStatus("REQUEST_DENIED", "bad key").Error(); msg != "geocoding status REQUEST_DENIED (bad key)" {
		t.Errorf("unexpected message %q", msg)
	}
}

func TestGeocodingErrorUnwrap(t *testing.T) {
	inner := errors.New("connection reset")
	err := &GeocodingError{Type: ErrorTypeNetworkError, Message: "request failed", Err: inner}

	if !errors.Is(err, inner) {
		t.Errorf("errors.Is should find the wrapped error")
	}

	if err.Error() != "request failed: connection reset" {
		t.Errorf("unexpected message %q", err.Error())
	}
}
