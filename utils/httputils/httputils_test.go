// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package httputils

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

// dummyRoundTripper is useful to simulate a response.
type dummyRoundTripper struct {
	response *http.Response
}

func (d *dummyRoundTripper) RoundTrip(_ *http.Request) (*http.Response, error) {
	if d.response != nil {
		return d.response, nil
	}

	return nil, nil
}

//////////////////////////////////
// Test LoggingRoundTripper

// TestLoggingRoundTripper verifies that the LoggingRoundTripper logs both the request and
// the response (including timing information).
func TestLoggingRoundTripper(t *testing.T) {
	// Buffer to capture log output.
	var logBuffer bytes.Buffer

	// Set up a dummy transport that returns a dummy response.
	drt := &dummyRoundTripper{
		response: &http.Response{
			Status:     "200 OK",
			StatusCode: http.StatusOK,
			Header:     make(http.Header),
			Body:       io.NopCloser(strings.NewReader("response body")),
		},
	}

	lt := &LoggingRoundTripper{
		Transport: drt,
		Writer:    &logBuffer,
		DumpBody:  true, // include body in the dump
		Redact:    []string{"key"},
	}

	// Create a basic request.
	req, err := http.NewRequest(http.MethodGet, "http://example.com/abc?address=x&key=secret", nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	// RoundTrip through our logging round tripper.
	_, err = lt.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip returned error: %v", err)
	}

	// Check log contents.
	logContent := logBuffer.String()
	if !strings.Contains(logContent, "> GET /abc?address=x&key=REDACTED") {
		t.Errorf("log does not contain request info. Got: %s", logContent)
	}

	if !strings.Contains(logContent, "< RESPONSE: [") {
		t.Errorf("log does not contain response header with timing info. Got: %s", logContent)
	}

	if strings.Contains(logContent, "secret") {
		t.Errorf("log leaks redacted parameter. Got: %s", logContent)
	}

	if !strings.Contains(logContent, "key=REDACTED") {
		t.Errorf("log does not contain redacted parameter. Got: %s", logContent)
	}

	if !strings.Contains(logContent, "response body") {
		t.Errorf("log does not contain response body. Got: %s", logContent)
	}
}

//////////////////////////////////
// Test AppendRequestHeadersRoundTripper

// dummyHeadersRoundTripper is used to verify that the headers are added.
type dummyHeadersRoundTripper struct {
	lastRequest *http.Request
}

func (d *dummyHeadersRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	d.lastRequest = req

	return &http.Response{
		Status:     "200 OK",
		StatusCode: http.StatusOK,
		Header:     make(http.Header),
		Body:       io.NopCloser(strings.NewReader("")),
	}, nil
}

func TestAppendRequestHeadersRoundTripper(t *testing.T) {
	// Create a dummy transport that captures the request.
	dummy := &dummyHeadersRoundTripper{}

	// Wrap it with AppendRequestHeadersRoundTripper.
	headersToAdd := map[string]string{
		"X-Test-Header": "TestValue",
		"User-Agent":    "genmap/test",
	}
	atr := &AppendRequestHeadersRoundTripper{
		Transport: dummy,
		Headers:   headersToAdd,
	}

	req, err := http.NewRequest(http.MethodPost, "http://example.org", nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	// Ensure the header is not originally set.
	if req.Header.Get("X-Test-Header") != "" {
		t.Fatalf("the test header should not be pre-set in the request")
	}

	// Issue the request.
	_, err = atr.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip returned error: %v", err)
	}

	// Verify that our header was added.
	if dummy.lastRequest == nil {
		t.Fatalf("dummy transport did not receive any request")
	}

	if got := dummy.lastRequest.Header.Get("X-Test-Header"); got != "TestValue" {
		t.Errorf("expected header X-Test-Header to have value 'TestValue', but got '%s'", got)
	}

	if got := dummy.lastRequest.Header.Get("User-Agent"); got != "genmap/test" {
		t.Errorf("expected User-Agent 'genmap/test', but got '%s'", got)
	}
}

//////////////////////////////////
// Test RateLimitedRoundTripper

func TestRateLimitedRoundTripperHonorsContext(t *testing.T) {
	dummy := &dummyHeadersRoundTripper{}
	limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
	rt := &RateLimitedRoundTripper{Transport: dummy, Limiter: limiter}

	req, err := http.NewRequest(http.MethodGet, "http://example.org", nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	if _, err := rt.RoundTrip(req); err != nil {
		t.Fatalf("first request should use the burst token: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := rt.RoundTrip(req.WithContext(ctx)); err == nil {
		t.Fatalf("expected error when the context is cancelled while waiting")
	}
}

func TestRedactURL(t *testing.T) {
	u, err := url.Parse("https://maps.example.com/geocode/json?address=Main+St&key=abc123")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	got := RedactURL(u, "key")
	if strings.Contains(got, "abc123") {
		t.Errorf("RedactURL leaked the key: %s", got)
	}

	if !strings.Contains(got, "address=Main+St") {
		t.Errorf("RedactURL dropped other parameters: %s", got)
	}

	if RedactURL(nil) != "" {
		t.Errorf("RedactURL(nil) should be empty")
	}
}
