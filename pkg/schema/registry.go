package schema

// RegistryEntry is one model from the public registry catalog
// (OpenRouter-shaped). Immutable once fetched.
type RegistryEntry struct {
	ID                  string               `json:"id"`
	Name                string               `json:"name,omitempty"`
	CanonicalSlug       string               `json:"canonical_slug,omitempty"`
	SupportedParameters []string             `json:"supported_parameters,omitempty"`
	Architecture        RegistryArchitecture `json:"architecture"`
	TopProvider         RegistryTopProvider  `json:"top_provider"`
}

type RegistryArchitecture struct {
	InputModalities  []string `json:"input_modalities,omitempty"`
	OutputModalities []string `json:"output_modalities,omitempty"`
	Tokenizer        string   `json:"tokenizer,omitempty"`
	InstructType     string   `json:"instruct_type,omitempty"`
}

type RegistryTopProvider struct {
	ContextLength       int  `json:"context_length,omitempty"`
	MaxCompletionTokens int  `json:"max_completion_tokens,omitempty"`
	IsModerated         bool `json:"is_moderated,omitempty"`
}
