// Package configstore reads and writes the operator's settings document.
// All mutation goes through the document patcher so hand-written comments
// and formatting survive every edit.
package configstore

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"

	"github.com/nulzo/model-config-kit/internal/core/domain"
	"github.com/nulzo/model-config-kit/internal/docpatch"
	"github.com/nulzo/model-config-kit/pkg/schema"
)

// Structural root of everything this tool owns inside the document.
const (
	rootKey     = "language_models"
	compatKey   = "openai_compatible"
	defaultMode = fs.FileMode(0o644)
)

// ProviderPath locates a provider's entry in the document.
func ProviderPath(provider string) docpatch.Path {
	return docpatch.Path{docpatch.Key(rootKey), docpatch.Key(compatKey), docpatch.Key(provider)}
}

// ModelsPath locates a provider's available_models list.
func ModelsPath(provider string) docpatch.Path {
	return append(ProviderPath(provider), docpatch.Key("available_models"))
}

// SetProvider writes a full provider entry, creating the structural root as
// needed. The endpoint URL is normalized before persisting.
func SetProvider(text []byte, provider string, entry schema.ProviderEntry) ([]byte, error) {
	entry.APIURL = schema.NormalizeAPIURL(entry.APIURL)
	if entry.AvailableModels == nil {
		entry.AvailableModels = []schema.ModelEntry{}
	}
	return docpatch.Set(text, ProviderPath(provider), entry)
}

// SetModels replaces only a provider's model list, leaving api_url and any
// unrecognized sibling keys exactly as the operator wrote them.
func SetModels(text []byte, provider string, models []schema.ModelEntry) ([]byte, error) {
	if models == nil {
		models = []schema.ModelEntry{}
	}
	return docpatch.Set(text, ModelsPath(provider), models)
}

// DeleteProvider removes a provider entry. Removing a provider that is not
// present is a no-op.
func DeleteProvider(text []byte, provider string) ([]byte, error) {
	return docpatch.Delete(text, ProviderPath(provider))
}

// Providers parses the document (comments tolerated) and returns the
// configured providers keyed by name.
func Providers(text []byte) (map[string]schema.ProviderEntry, error) {
	std, err := hujson.Standardize(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}
	var doc struct {
		LanguageModels struct {
			OpenAICompatible map[string]schema.ProviderEntry `json:"openai_compatible"`
		} `json:"language_models"`
	}
	if err := json.Unmarshal(std, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}
	return doc.LanguageModels.OpenAICompatible, nil
}

// Store binds the pure document transformations to a file on disk.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// ReadDocument reads the settings text fresh from disk. Each logical
// operation starts with a fresh read so edits never act on stale state. A
// missing file reads as an empty document.
func (s *Store) ReadDocument() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []byte("{}\n"), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading settings %s: %w", s.path, err)
	}
	return data, nil
}

// WriteDocument persists the settings text atomically: write a temp file in
// the same directory, then rename over the original. Existing file
// permissions are preserved.
func (s *Store) WriteDocument(text []byte) error {
	mode := defaultMode
	if info, err := os.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating settings directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp settings file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(text); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp settings file: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return fmt.Errorf("setting permissions on temp settings file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp settings file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing settings %s: %w", s.path, err)
	}
	return nil
}
