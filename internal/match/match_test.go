package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nulzo/model-config-kit/pkg/schema"
)

func entries(ids ...string) []schema.RegistryEntry {
	out := make([]schema.RegistryEntry, len(ids))
	for i, id := range ids {
		out[i] = schema.RegistryEntry{ID: id}
	}
	return out
}

func TestMatch_ExactBeatsPartial(t *testing.T) {
	candidates := entries("openai/gpt-4o-mini", "openai/gpt-4o")

	got, ok := Match("openai/gpt-4o", candidates)
	require.True(t, ok)
	assert.Equal(t, "openai/gpt-4o", got.ID)
}

func TestMatch_SuffixOnly(t *testing.T) {
	// Provider listings usually drop the vendor prefix; the suffix rule
	// still has to find the right catalog entry.
	candidates := entries("anthropic/claude-3-opus", "openai/gpt-4o")

	got, ok := Match("gpt-4o", candidates)
	require.True(t, ok)
	assert.Equal(t, "openai/gpt-4o", got.ID)
}

func TestMatch_RejectsBelowThreshold(t *testing.T) {
	candidates := entries("openai/gpt-4o", "anthropic/claude-3-opus")

	got, ok := Match("zzz-unrelated-000", candidates)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestMatch_EmptyCandidates(t *testing.T) {
	_, ok := Match("openai/gpt-4o", nil)
	assert.False(t, ok)
}

func TestMatch_TieBreaksByInputOrder(t *testing.T) {
	// Identical ids score identically; the first wins.
	candidates := []schema.RegistryEntry{
		{ID: "openai/gpt-4o", Name: "first"},
		{ID: "openai/gpt-4o", Name: "second"},
	}

	got, ok := Match("openai/gpt-4o", candidates)
	require.True(t, ok)
	assert.Equal(t, "first", got.Name)
}

func TestMatch_VariantTagIgnored(t *testing.T) {
	candidates := entries("meta-llama/llama-3-8b")

	got, ok := Match("meta-llama/llama-3-8b:free", candidates)
	require.True(t, ok)
	assert.Equal(t, "meta-llama/llama-3-8b", got.ID)
}

func TestMatch_NameMentionContributes(t *testing.T) {
	w := DefaultWeights
	score := w.score("gpt-4o", "gpt-4o", []string{"gpt", "4o"}, &schema.RegistryEntry{
		ID:   "openai/gpt-4o",
		Name: "OpenAI: GPT-4o",
	})
	// Suffix equality, mutual containment of suffixes, token overlap, and
	// the name mention all add up; the id-level rules do not apply.
	assert.GreaterOrEqual(t, score, w.ExactSuffix+w.ContainsSuffix+w.NameMention)
}

func TestScore_EmptySuffixNeverMatchesByContainment(t *testing.T) {
	w := DefaultWeights
	score := w.score("", "", nil, &schema.RegistryEntry{ID: "openai/gpt-4o"})
	assert.Zero(t, score)
}

func TestJaccard(t *testing.T) {
	assert.InDelta(t, 1.0, jaccard([]string{"a", "b"}, []string{"b", "a"}), 1e-9)
	assert.InDelta(t, 1.0/3, jaccard([]string{"a", "b"}, []string{"a", "c"}), 1e-9)
	assert.Zero(t, jaccard(nil, []string{"a"}))
	// Duplicate tokens must not inflate the intersection.
	assert.InDelta(t, 1.0/3, jaccard([]string{"a", "b"}, []string{"a", "a", "c"}), 1e-9)
}
