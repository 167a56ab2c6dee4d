package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// HTTPClient is the subset of *http.Client the helpers need.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// SendRequest creates a JSON request, sends it, checks the status code, and
// decodes the response body into response (when non-nil).
func SendRequest(ctx context.Context, client HTTPClient, method, url string, headers map[string]string, body interface{}, response interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return &UpstreamError{
			StatusCode: resp.StatusCode,
			Body:       respBody,
			URL:        url,
		}
	}

	if response != nil {
		if err := json.NewDecoder(resp.Body).Decode(response); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// KeyProvider supplies a fresh credential after an auth rejection. attempt
// starts at 1 for the first retry.
type KeyProvider func(attempt int) (string, error)

// MaxAuthRetries bounds how many fresh keys GetWithAuthRetry will try after
// the initial request. A bounded loop, not re-entrant recursion: repeated
// auth failures terminate instead of growing the call stack.
const MaxAuthRetries = 2

// GetWithAuthRetry issues a GET with an optional bearer token, retrying with
// a fresh key from refresh (when provided) after a 401/403.
func GetWithAuthRetry(ctx context.Context, client HTTPClient, url, apiKey string, refresh KeyProvider, response interface{}) error {
	key := apiKey
	for attempt := 0; ; attempt++ {
		headers := map[string]string{}
		if key != "" {
			headers["Authorization"] = "Bearer " + key
		}

		err := SendRequest(ctx, client, http.MethodGet, url, headers, nil, response)
		if err == nil {
			return nil
		}
		if !IsAuthError(err) || refresh == nil || attempt >= MaxAuthRetries {
			return err
		}

		fresh, refreshErr := refresh(attempt + 1)
		if refreshErr != nil {
			return err
		}
		key = fresh
	}
}
