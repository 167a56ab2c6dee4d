// Package registry fetches and caches the public model catalog used as a
// fallback capability signal source.
package registry

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/nulzo/model-config-kit/internal/core/domain"
	"github.com/nulzo/model-config-kit/internal/httpclient"
	"github.com/nulzo/model-config-kit/pkg/schema"
)

// DefaultURL is the OpenRouter model catalog.
const DefaultURL = "https://openrouter.ai/api/v1/models"

// Client fetches the catalog over HTTP.
type Client struct {
	url    string
	client httpclient.HTTPClient
}

func NewClient(url string, client httpclient.HTTPClient) *Client {
	if url == "" {
		url = DefaultURL
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{url: url, client: client}
}

func (c *Client) Fetch(ctx context.Context) ([]schema.RegistryEntry, error) {
	var payload struct {
		Data []schema.RegistryEntry `json:"data"`
	}
	if err := httpclient.SendRequest(ctx, c.client, http.MethodGet, c.url, nil, nil, &payload); err != nil {
		return nil, &domain.RegistryFetchError{URL: c.url, Err: err}
	}
	return payload.Data, nil
}

// Cache memoizes a successful catalog fetch for the life of the process.
// Construct one and pass it to every resolver; there is deliberately no
// package-level instance. Concurrent first callers share a single in-flight
// fetch and observe the same outcome; a failed fetch is not cached, so a
// later call may retry.
type Cache struct {
	client *Client

	group   singleflight.Group
	mu      sync.RWMutex
	entries []schema.RegistryEntry
	loaded  bool
}

func NewCache(client *Client) *Cache {
	return &Cache{client: client}
}

// Entries returns the cached catalog, fetching it on first use.
func (c *Cache) Entries(ctx context.Context) ([]schema.RegistryEntry, error) {
	c.mu.RLock()
	if c.loaded {
		entries := c.entries
		c.mu.RUnlock()
		return entries, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.group.Do("catalog", func() (interface{}, error) {
		entries, err := c.client.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries = entries
		c.loaded = true
		c.mu.Unlock()
		return entries, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]schema.RegistryEntry), nil
}
