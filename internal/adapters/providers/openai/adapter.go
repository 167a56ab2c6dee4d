// Package openai lists models from any OpenAI-compatible endpoint.
package openai

import (
	"context"
	"net/http"
	"time"

	"github.com/nulzo/model-config-kit/internal/core/domain"
	"github.com/nulzo/model-config-kit/internal/httpclient"
	"github.com/nulzo/model-config-kit/pkg/schema"
)

// Adapter fetches the model listing of one provider.
type Adapter struct {
	name    string
	baseURL string
	apiKey  string
	refresh httpclient.KeyProvider
	client  httpclient.HTTPClient
}

// Option tweaks an Adapter. Options follow the functional pattern so the
// zero-config call stays a one-liner.
type Option func(*Adapter)

// WithHTTPClient swaps the transport, mainly for tests.
func WithHTTPClient(c httpclient.HTTPClient) Option {
	return func(a *Adapter) { a.client = c }
}

// WithKeyProvider installs a callback that supplies a fresh API key after an
// auth rejection.
func WithKeyProvider(p httpclient.KeyProvider) Option {
	return func(a *Adapter) { a.refresh = p }
}

func NewAdapter(name, baseURL, apiKey string, opts ...Option) *Adapter {
	a := &Adapter{
		name:    name,
		baseURL: schema.NormalizeAPIURL(baseURL),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Adapter) Name() string { return a.name }

// BaseURL returns the normalized endpoint, as persisted in settings.
func (a *Adapter) BaseURL() string { return a.baseURL }

// modelsResponse tolerates both listing shapes seen in the wild: OpenAI
// proper returns {"data": [...]}, some compatible servers return
// {"models": [...]}.
type modelsResponse struct {
	Data   []schema.RawModelRecord `json:"data"`
	Models []schema.RawModelRecord `json:"models"`
}

// Models fetches the provider's model listing. Any failure is fatal to the
// calling operation and wrapped as a SourceFetchError.
func (a *Adapter) Models(ctx context.Context) ([]schema.RawModelRecord, error) {
	var resp modelsResponse
	url := a.baseURL + "/models"
	if err := httpclient.GetWithAuthRetry(ctx, a.client, url, a.apiKey, a.refresh, &resp); err != nil {
		return nil, &domain.SourceFetchError{Provider: a.name, Err: err}
	}
	if len(resp.Data) > 0 {
		return resp.Data, nil
	}
	return resp.Models, nil
}
