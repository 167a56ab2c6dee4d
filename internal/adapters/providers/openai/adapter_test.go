package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nulzo/model-config-kit/internal/core/domain"
)

func TestModels_DataShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data": [{"id": "gpt-4o", "owned_by": "openai"}]}`))
	}))
	t.Cleanup(srv.Close)

	records, err := NewAdapter("test", srv.URL, "sk-test").Models(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "gpt-4o", records[0].ID)
	// Unrecognized provider fields land in the catch-all.
	assert.Contains(t, records[0].Extra, "owned_by")
}

func TestModels_ModelsShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"models": [{"id": "llama3"}, {"id": "qwen2.5"}]}`))
	}))
	t.Cleanup(srv.Close)

	records, err := NewAdapter("local", srv.URL, "").Models(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "llama3", records[0].ID)
}

func TestModels_FailureWrapsSourceFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	_, err := NewAdapter("broken", srv.URL, "").Models(context.Background())
	require.Error(t, err)
	var fetchErr *domain.SourceFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "broken", fetchErr.Provider)
}

func TestModels_AuthRetryWithFreshKey(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good-key" {
			calls.Add(1)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"data": [{"id": "m"}]}`))
	}))
	t.Cleanup(srv.Close)

	adapter := NewAdapter("test", srv.URL, "stale-key", WithKeyProvider(func(attempt int) (string, error) {
		return "good-key", nil
	}))

	records, err := adapter.Models(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, int32(1), calls.Load())
}

func TestModels_AuthRetryIsBounded(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	var refreshes int
	adapter := NewAdapter("test", srv.URL, "bad", WithKeyProvider(func(attempt int) (string, error) {
		refreshes++
		return "still-bad", nil
	}))

	_, err := adapter.Models(context.Background())
	require.Error(t, err)
	// Initial request plus the bounded retries, never more.
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, 2, refreshes)
}

func TestNewAdapter_NormalizesBaseURL(t *testing.T) {
	a := NewAdapter("x", "https://example.com/api/", "")
	assert.Equal(t, "https://example.com/api/v1", a.BaseURL())

	a = NewAdapter("x", "https://example.com/v2", "")
	assert.Equal(t, "https://example.com/v2", a.BaseURL())
}
