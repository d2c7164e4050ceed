// Package http provides the HTTP server and handler implementations.
//
// This file holds shared helpers for parsing and validating request data:
// method guards, form parsing, date extraction, and input sanitization.

package http

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"tally/internal/core"
)

// RequireMethod checks the request method against the allowed set and
// returns an error response builder when it does not match.
func RequireMethod(r *http.Request, methods ...string) *HTMXResponseBuilder {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowedError(strings.Join(methods, ", "))
}

func RequirePOST(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodPost)
}

func RequireDeleteOrPOST(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodDelete, http.MethodPost)
}

// ParseFormOrFail parses the request form and returns an error response on
// failure, nil on success.
func ParseFormOrFail(r *http.Request) *HTMXResponseBuilder {
	if err := r.ParseForm(); err != nil {
		return BadRequestError("Invalid request format")
	}
	return nil
}

// FormValue returns a trimmed, sanitized form value.
func FormValue(form url.Values, key string) string {
	return sanitizeInput(form.Get(key))
}

// ParseDateValue reads a yyyy-mm-dd form value. An empty value yields a zero
// Date so validation can report "A date is required."; a malformed value is a
// parse error.
func ParseDateValue(form url.Values, key string) (core.Date, error) {
	v := strings.TrimSpace(form.Get(key))
	if v == "" {
		return core.Date{}, nil
	}
	t, err := time.ParseInLocation("2006-01-02", v, time.UTC)
	if err != nil {
		return core.Date{}, err
	}
	return core.Date{Time: t}, nil
}

// sanitizeInput trims whitespace and strips control characters except tab,
// newline, and carriage return.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
