package docpatch

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tailscale/hujson"

	"github.com/nulzo/model-config-kit/internal/core/domain"
)

// parse standardizes JSONC text and decodes it for structural assertions.
func parse(t *testing.T, text []byte) map[string]interface{} {
	t.Helper()
	// Standardize blanks comments in place in the buffer it is given;
	// work on a copy so later assertions still see the original bytes.
	std, err := hujson.Standardize(bytes.Clone(text))
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(std, &out))
	return out
}

func TestPathPointer(t *testing.T) {
	p := Path{Key("language_models"), Key("openai_compatible"), Key("a/b~c"), Index(2)}
	assert.Equal(t, "/language_models/openai_compatible/a~1b~0c/2", p.Pointer())
}

func TestSet_ReplacesExistingValue(t *testing.T) {
	doc := []byte(`{
  // endpoint comment
  "api_url": "http://localhost:11434/v1",
  "max_tokens": 4096
}`)

	out, err := Set(doc, Path{Key("max_tokens")}, 8192)
	require.NoError(t, err)

	got := parse(t, out)
	assert.Equal(t, float64(8192), got["max_tokens"])
	// The untouched sibling and its comment survive byte-for-byte.
	assert.Contains(t, string(out), "// endpoint comment")
	assert.Contains(t, string(out), `"api_url": "http://localhost:11434/v1"`)
}

func TestSet_CreatesIntermediateContainers(t *testing.T) {
	doc := []byte("{}\n")

	out, err := Set(doc, Path{Key("language_models"), Key("openai_compatible"), Key("Ollama")},
		map[string]interface{}{"api_url": "http://localhost:11434/v1"})
	require.NoError(t, err)

	got := parse(t, out)
	lm := got["language_models"].(map[string]interface{})
	compat := lm["openai_compatible"].(map[string]interface{})
	ollama := compat["Ollama"].(map[string]interface{})
	assert.Equal(t, "http://localhost:11434/v1", ollama["api_url"])
}

func TestSet_Idempotent(t *testing.T) {
	doc := []byte(`{
  // top comment
  "other": [1, 2, 3],
}`)
	path := Path{Key("language_models"), Key("openai_compatible"), Key("LM Studio")}
	value := map[string]interface{}{
		"api_url":          "http://localhost:1234/v1",
		"available_models": []interface{}{},
	}

	once, err := Set(doc, path, value)
	require.NoError(t, err)
	twice, err := Set(once, path, value)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(string(once), string(twice)))
}

func TestSet_FormattingIsolation(t *testing.T) {
	doc := []byte(`{
  /* block comment with   odd   spacing */
  "untouched": {
      "weird":     "indent",   // trailing note
  },
  "target": 1
}`)

	out, err := Set(doc, Path{Key("target")}, 2)
	require.NoError(t, err)

	// Everything before the patched member is byte-identical.
	idx := strings.Index(string(doc), `"target"`)
	require.Positive(t, idx)
	assert.Equal(t, string(doc[:idx]), string(out[:idx]))
}

func TestSet_RejectsDescentIntoLiteral(t *testing.T) {
	doc := []byte(`{"language_models": "oops"}`)

	out, err := Set(doc, Path{Key("language_models"), Key("openai_compatible")}, 1)
	require.ErrorIs(t, err, domain.ErrInvalidPath)
	// Rejected patches never mutate.
	assert.Equal(t, string(doc), string(out))
}

func TestSet_RejectsKeyIntoArray(t *testing.T) {
	doc := []byte(`{"models": [1, 2]}`)

	_, err := Set(doc, Path{Key("models"), Key("name")}, "x")
	assert.ErrorIs(t, err, domain.ErrInvalidPath)
}

func TestSet_ArrayElement(t *testing.T) {
	doc := []byte(`{"models": ["a", "b"]}`)

	out, err := Set(doc, Path{Key("models"), Index(1)}, "c")
	require.NoError(t, err)
	got := parse(t, out)
	assert.Equal(t, []interface{}{"a", "c"}, got["models"])
}

func TestSet_MalformedDocument(t *testing.T) {
	doc := []byte(`{"unterminated": `)

	out, err := Set(doc, Path{Key("x")}, 1)
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
	assert.Equal(t, string(doc), string(out))
}

func TestDelete_PreservesSiblingFormatting(t *testing.T) {
	doc := []byte(`{
  "language_models": {
    "openai_compatible": {
      "OpenRouter": {
        // keep this provider
        "api_url": "https://openrouter.ai/api/v1",
        "available_models": []
      },
      "Ollama": {
        "api_url": "http://localhost:11434/v1",
        "available_models": []
      }
    }
  }
}`)

	out, err := Delete(doc, Path{Key("language_models"), Key("openai_compatible"), Key("Ollama")})
	require.NoError(t, err)

	got := parse(t, out)
	compat := got["language_models"].(map[string]interface{})["openai_compatible"].(map[string]interface{})
	assert.Len(t, compat, 1)
	assert.Contains(t, compat, "OpenRouter")
	assert.NotContains(t, string(out), "Ollama")

	// OpenRouter's block, comment included, is untouched.
	openRouterBlock := `"OpenRouter": {
        // keep this provider
        "api_url": "https://openrouter.ai/api/v1",
        "available_models": []
      }`
	assert.Contains(t, string(out), openRouterBlock)
}

func TestDelete_MissingLeafIsNoop(t *testing.T) {
	doc := []byte(`{"language_models": {}}`)

	out, err := Delete(doc, Path{Key("language_models"), Key("openai_compatible"), Key("Ollama")})
	require.NoError(t, err)
	assert.Equal(t, string(doc), string(out))
}

func TestDelete_RejectsDescentIntoLiteral(t *testing.T) {
	doc := []byte(`{"language_models": 42}`)

	out, err := Delete(doc, Path{Key("language_models"), Key("x")})
	assert.ErrorIs(t, err, domain.ErrInvalidPath)
	assert.Equal(t, string(doc), string(out))
}

func TestDelete_EmptyPath(t *testing.T) {
	_, err := Delete([]byte(`{}`), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidPath)
}
