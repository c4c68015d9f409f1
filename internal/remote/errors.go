// SPDX-License-Identifier: EPL-2.0

package remote

import (
	"errors"
	"fmt"
)

var ErrMissingBaseURL = errors.New("remote: base URL is required")

// APIError is a non-2xx answer from a translation service. Its text starts
// with "API error:" so it can be shown to users verbatim.
type APIError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API error: %s returned %d", e.Service, e.StatusCode)
	}
	return fmt.Sprintf("API error: %s returned %d: %s", e.Service, e.StatusCode, e.Body)
}

// Temporary reports whether repeating the request may succeed.
func (e *APIError) Temporary() bool {
	return IsRetryableHTTPStatus(e.StatusCode)
}
