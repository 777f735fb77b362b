package integrations

import (
	"net/http"
	"time"
)

const (
	httpTimeout = 15 * time.Second

	// maxBodyBytes bounds a single response. The largest Iconify sets are
	// around 20 MB.
	maxBodyBytes = 64 << 20
)

// NewHTTPClient creates an HTTP client with the standard timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = httpTimeout
	}
	return &http.Client{Timeout: timeout}
}
