package schema

import "encoding/json"

// RawModelRecord is one entry from a provider's /models listing. Providers
// disagree wildly about what they return beyond "id", so the recognized
// fields are all optional and anything else lands in Extra untouched.
type RawModelRecord struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name,omitempty"`
	DisplayName         string           `json:"display_name,omitempty"`
	Capabilities        *RawCapabilities `json:"capabilities,omitempty"`
	SupportedParameters []string         `json:"supported_parameters,omitempty"`
	Architecture        RawArchitecture  `json:"architecture"`
	MaxCompletionTokens int              `json:"max_completion_tokens,omitempty"`

	// Extra holds provider fields we do not model. Kept for callers that
	// want to inspect them; never written back to the settings file.
	Extra map[string]json.RawMessage `json:"-"`
}

// RawCapabilities is an explicit capability object as some providers ship it.
// Pointers distinguish "declared false" from "not declared".
type RawCapabilities struct {
	Tools             *bool `json:"tools,omitempty"`
	Images            *bool `json:"images,omitempty"`
	ParallelToolCalls *bool `json:"parallel_tool_calls,omitempty"`
	PromptCacheKey    *bool `json:"prompt_cache_key,omitempty"`
}

type RawArchitecture struct {
	InputModalities  []string `json:"input_modalities,omitempty"`
	OutputModalities []string `json:"output_modalities,omitempty"`
}

func (r *RawModelRecord) UnmarshalJSON(data []byte) error {
	type alias RawModelRecord
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, known := range []string{
		"id", "name", "display_name", "capabilities",
		"supported_parameters", "architecture", "max_completion_tokens",
	} {
		delete(all, known)
	}
	if len(all) > 0 {
		a.Extra = all
	}

	*r = RawModelRecord(a)
	return nil
}

// Label returns the best human-readable name available for the record.
func (r *RawModelRecord) Label() string {
	if r.DisplayName != "" {
		return r.DisplayName
	}
	if r.Name != "" {
		return r.Name
	}
	return r.ID
}
