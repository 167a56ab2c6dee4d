package services

import (
	"bytes"
	"context"

	"go.uber.org/zap"

	"github.com/nulzo/model-config-kit/internal/configstore"
	"github.com/nulzo/model-config-kit/internal/docpatch"
	"github.com/nulzo/model-config-kit/pkg/schema"
)

// ModelSource lists the live models of one provider.
type ModelSource interface {
	Name() string
	BaseURL() string
	Models(ctx context.Context) ([]schema.RawModelRecord, error)
}

// SyncService keeps the settings document in step with a provider's live
// model listing. Each operation reads the document fresh, mutates it through
// the patcher only, and writes it back atomically; a failure anywhere before
// the write leaves the file untouched.
type SyncService struct {
	store     *configstore.Store
	resolver  *Resolver
	maxTokens int
	logger    *zap.Logger
}

func NewSyncService(store *configstore.Store, resolver *Resolver, maxTokens int, logger *zap.Logger) *SyncService {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SyncService{
		store:     store,
		resolver:  resolver,
		maxTokens: maxTokens,
		logger:    logger,
	}
}

// SyncProvider fetches the provider's models, resolves capabilities for
// each, and persists the result. Models already in the document keep their
// position; newly discovered ones append in listing order; entries the
// operator added by hand that the provider no longer lists are kept as-is.
func (s *SyncService) SyncProvider(ctx context.Context, source ModelSource) error {
	records, err := source.Models(ctx)
	if err != nil {
		return err
	}

	text, err := s.store.ReadDocument()
	if err != nil {
		return err
	}
	providers, err := configstore.Providers(text)
	if err != nil {
		return err
	}

	var current []schema.ModelEntry
	if entry, ok := providers[source.Name()]; ok {
		current = entry.AvailableModels
	}
	merged := s.mergeModels(ctx, current, records)

	urlPath := append(configstore.ProviderPath(source.Name()), docpatch.Key("api_url"))
	text, err = docpatch.Set(text, urlPath, source.BaseURL())
	if err != nil {
		return err
	}
	text, err = configstore.SetModels(text, source.Name(), merged)
	if err != nil {
		return err
	}

	if err := s.store.WriteDocument(text); err != nil {
		return err
	}
	s.logger.Info("provider synced",
		zap.String("provider", source.Name()),
		zap.Int("models", len(merged)))
	return nil
}

// mergeModels resolves every fetched record and folds the results into the
// existing list. Duplicate identifiers within one listing collapse to the
// last occurrence.
func (s *SyncService) mergeModels(ctx context.Context, existing []schema.ModelEntry, records []schema.RawModelRecord) []schema.ModelEntry {
	resolved := make(map[string]schema.ModelEntry, len(records))
	order := make([]string, 0, len(records))
	for _, record := range records {
		if record.ID == "" {
			continue
		}
		if _, seen := resolved[record.ID]; !seen {
			order = append(order, record.ID)
		}
		res := s.resolver.Resolve(ctx, record.ID, record, s.maxTokens)
		resolved[record.ID] = schema.ModelEntry{
			Name:         record.ID,
			DisplayName:  record.Label(),
			MaxTokens:    res.MaxTokens,
			Capabilities: res.Capabilities,
		}
	}

	merged := make([]schema.ModelEntry, 0, len(existing)+len(order))
	placed := make(map[string]bool, len(order))
	for _, entry := range existing {
		if fresh, ok := resolved[entry.Name]; ok {
			merged = append(merged, fresh)
			placed[entry.Name] = true
		} else {
			merged = append(merged, entry)
		}
	}
	for _, id := range order {
		if !placed[id] {
			merged = append(merged, resolved[id])
		}
	}
	return merged
}

// RemoveProvider deletes a provider's entry. Unknown names are a no-op and
// the file is rewritten only when the document actually changed.
func (s *SyncService) RemoveProvider(provider string) error {
	text, err := s.store.ReadDocument()
	if err != nil {
		return err
	}
	updated, err := configstore.DeleteProvider(text, provider)
	if err != nil {
		return err
	}
	if bytes.Equal(updated, text) {
		return nil
	}
	if err := s.store.WriteDocument(updated); err != nil {
		return err
	}
	s.logger.Info("provider removed", zap.String("provider", provider))
	return nil
}

// ListProviders returns the providers currently in the document.
func (s *SyncService) ListProviders() (map[string]schema.ProviderEntry, error) {
	text, err := s.store.ReadDocument()
	if err != nil {
		return nil, err
	}
	return configstore.Providers(text)
}
