package utils

import (
	"net/http"
	"time"
)

// NewHTTPClient returns the client shared by every upstream fetcher. One
// flat timeout covers the whole exchange; there are no retries.
func NewHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 10 * time.Second,
	}
}
