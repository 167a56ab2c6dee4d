package schema

import (
	"regexp"
	"strings"
)

// ModelCapabilities is the fully-resolved capability set written into the
// settings document. Every field is always a definite true/false by the
// time an entry is persisted.
type ModelCapabilities struct {
	Tools             bool `json:"tools"`
	Images            bool `json:"images"`
	ParallelToolCalls bool `json:"parallel_tool_calls"`
	PromptCacheKey    bool `json:"prompt_cache_key"`
}

// ModelEntry is one model under a provider's available_models list.
// MaxTokens is always positive.
type ModelEntry struct {
	Name         string            `json:"name"`
	DisplayName  string            `json:"display_name"`
	MaxTokens    int               `json:"max_tokens"`
	Capabilities ModelCapabilities `json:"capabilities"`
}

// ProviderEntry is one named provider in the settings document. Model order
// is selection order, not sorted.
type ProviderEntry struct {
	APIURL          string       `json:"api_url"`
	AvailableModels []ModelEntry `json:"available_models"`
}

var versionSegment = regexp.MustCompile(`^v\d+$`)

// NormalizeAPIURL trims trailing slashes and appends a "/v1" segment when
// the URL does not already end in a version segment, so stored endpoints
// are uniform regardless of how the operator typed them.
func NormalizeAPIURL(raw string) string {
	url := strings.TrimRight(strings.TrimSpace(raw), "/")
	if url == "" {
		return url
	}
	last := url
	if i := strings.LastIndex(url, "/"); i >= 0 {
		last = url[i+1:]
	}
	if versionSegment.MatchString(last) {
		return url
	}
	return url + "/v1"
}
