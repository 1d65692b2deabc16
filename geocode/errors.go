// Copyright 2025 The GenMap Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// GeocodingError represents geocoding specific failures.
type GeocodingError struct {
	Type    ErrorType
	Message string
	Err     error
}

// ErrorType classifies geocoding failures.
type ErrorType int

const (
	// ErrorTypeUnknown unknown error.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeRateLimit rate limit reached.
	ErrorTypeRateLimit
	// ErrorTypeQuotaExceeded quota exceeded or key rejected.
	ErrorTypeQuotaExceeded
	// ErrorTypeTimeout connection timeout.
	ErrorTypeTimeout
	// ErrorTypeNotFound no match for the query.
	ErrorTypeNotFound
	// ErrorTypeInvalidRequest malformed request.
	ErrorTypeInvalidRequest
	// ErrorTypeNetworkError transport or upstream failure.
	ErrorTypeNetworkError
)

func (e *GeocodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *GeocodingError) Unwrap() error {
	return e.Err
}

func hasType(err error, t ErrorType) (bool, bool) {
	var geoErr *GeocodingError
	if errors.As(err, &geoErr) {
		return geoErr.Type == t, true
	}

	return false, false
}

// IsRateLimitError checks whether err is caused by rate limiting.
func IsRateLimitError(err error) bool {
	if err == nil {
		return false
	}

	if is, typed := hasType(err, ErrorTypeRateLimit); typed {
		return is
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "429")
}

// IsQuotaExceededError checks whether err is caused by an exhausted quota.
func IsQuotaExceededError(err error) bool {
	if err == nil {
		return false
	}

	if is, typed := hasType(err, ErrorTypeQuotaExceeded); typed {
		return is
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "over_query_limit") ||
		strings.Contains(errStr, "quota exceeded")
}

// IsTimeoutError checks whether err is a timeout.
func IsTimeoutError(err error) bool {
	if err == nil {
		return false
	}

	if is, typed := hasType(err, ErrorTypeTimeout); typed {
		return is
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// IsNotFoundError checks whether the service found nothing for the query.
func IsNotFoundError(err error) bool {
	is, _ := hasType(err, ErrorTypeNotFound)

	return is
}

// ClassifyHTTPError maps an HTTP status code to a geocoding error.
func ClassifyHTTPError(statusCode int, _ string) *GeocodingError {
	switch statusCode {
	case http.StatusTooManyRequests: // 429
		return &GeocodingError{
			Type:    ErrorTypeRateLimit,
			Message: "rate limit reached",
		}
	case http.StatusForbidden: // 403
		return &GeocodingError{
			Type:    ErrorTypeQuotaExceeded,
			Message: "quota exceeded or access denied",
		}
	case http.StatusBadRequest: // 400
		return &GeocodingError{
			Type:    ErrorTypeInvalidRequest,
			Message: "invalid request",
		}
	case http.StatusNotFound: // 404
		return &GeocodingError{
			Type:    ErrorTypeNotFound,
			Message: "location not found",
		}
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return &GeocodingError{
			Type:    ErrorTypeNetworkError,
			Message: fmt.Sprintf("service unavailable (status %d)", statusCode),
		}
	default:
		return &GeocodingError{
			Type:    ErrorTypeUnknown,
			Message: fmt.Sprintf("HTTP error %d", statusCode),
		}
	}
}

// ClassifyStatus maps a non-OK status field of the geocoding API body.
func ClassifyStatus(status, detail string) *GeocodingError {
	msg := "geocoding status " + status
	if detail != "" {
		msg += " (" + detail + ")"
	}

	t := ErrorTypeUnknown

	switch status {
	case "ZERO_RESULTS":
		t = ErrorTypeNotFound
	case "OVER_QUERY_LIMIT":
		t = ErrorTypeRateLimit
	case "OVER_DAILY_LIMIT", "REQUEST_DENIED":
		t = ErrorTypeQuotaExceeded
	case "INVALID_REQUEST":
		t = ErrorTypeInvalidRequest
	}

	return &GeocodingError{Type: t, Message: msg}
}
