/*
 * Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
 * See LICENSE for license information.
 */

package httpclient

import (
	"net/http"
)

// Interface abstracts the HTTP client so callers can substitute fakes in tests.
// Headers are passed as alternating key/value pairs.
type Interface interface {
	// Get sends an HTTP GET request to the specified URL with optional headers.
	Get(url string, headers ...string) (*Result, error)
	// Post sends an HTTP POST request with a body and optional headers.
	Post(url string, body interface{}, headers ...string) (*Result, error)
	// Put sends an HTTP PUT request with a body and optional headers.
	Put(url string, body interface{}, headers ...string) (*Result, error)
	// Delete sends an HTTP DELETE request to the specified URL with optional headers.
	Delete(url string, headers ...string) (*Result, error)
	// Do executes a prepared request with retry and drains the response body.
	Do(req *http.Request) (*Result, error)
}
