package httpclient

import (
	"errors"
	"fmt"
	"net/http"
)

// UpstreamError represents a non-success response from an upstream service.
type UpstreamError struct {
	StatusCode int
	Body       []byte
	URL        string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error: status %d from %s", e.StatusCode, e.URL)
}

// IsAuthError reports whether err is an upstream credential rejection.
func IsAuthError(err error) bool {
	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		return false
	}
	return upstream.StatusCode == http.StatusUnauthorized || upstream.StatusCode == http.StatusForbidden
}
