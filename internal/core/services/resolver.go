package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/nulzo/model-config-kit/internal/adapters/registry"
	"github.com/nulzo/model-config-kit/internal/match"
	"github.com/nulzo/model-config-kit/pkg/schema"
)

// DefaultMaxTokens is the token limit used when the caller supplies none.
const DefaultMaxTokens = 8192

// Resolver turns a raw provider record into a fully-defined capability set
// and token limit, consulting the registry catalog only when the provider
// gave us nothing to work with.
type Resolver struct {
	registry *registry.Cache
	weights  match.Weights
	logger   *zap.Logger
}

func NewResolver(cache *registry.Cache, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		registry: cache,
		weights:  match.DefaultWeights,
		logger:   logger,
	}
}

// Resolution is the finalized outcome for one model. Every capability is a
// definite boolean and MaxTokens is positive and never above the requested
// limit.
type Resolution struct {
	Capabilities schema.ModelCapabilities
	MaxTokens    int
}

// Resolve derives capabilities from the provider record, fills gaps with
// baseline defaults, and falls back to a registry match only when the
// record carried no signal at all. The fallback is strictly best-effort:
// any failure there is swallowed and the primary-derived result stands.
func (r *Resolver) Resolve(ctx context.Context, id string, record schema.RawModelRecord, requestedMaxTokens int) Resolution {
	if requestedMaxTokens <= 0 {
		requestedMaxTokens = DefaultMaxTokens
	}

	primary := capsFromRecord(record)
	hasPrimarySignal := primary.any()

	caps := schema.ModelCapabilities{
		Tools:             true,
		Images:            false,
		ParallelToolCalls: false,
		PromptCacheKey:    false,
	}
	primary.overlay(&caps)

	maxTokens := requestedMaxTokens
	if record.MaxCompletionTokens > 0 && record.MaxCompletionTokens < maxTokens {
		maxTokens = record.MaxCompletionTokens
	}

	if !hasPrimarySignal && caps.Tools && !caps.Images {
		if res, ok := r.fallback(ctx, id); ok {
			res.overlay(&caps)
			if res.maxCompletion > 0 && res.maxCompletion < maxTokens {
				maxTokens = res.maxCompletion
			}
		}
	}

	return Resolution{Capabilities: caps, MaxTokens: maxTokens}
}

type registryOverlay struct {
	partialCaps
	maxCompletion int
}

func (r *Resolver) fallback(ctx context.Context, id string) (registryOverlay, bool) {
	entries, err := r.registry.Entries(ctx)
	if err != nil {
		r.logger.Debug("registry fallback unavailable", zap.String("model", id), zap.Error(err))
		return registryOverlay{}, false
	}

	entry, ok := r.weights.Match(id, entries)
	if !ok {
		r.logger.Debug("no registry candidate", zap.String("model", id))
		return registryOverlay{}, false
	}

	caps := capsFromSignals(entry.SupportedParameters, entry.Architecture.InputModalities)
	// The registry has no reliable prompt-cache signal.
	caps.cacheKey = boolPtr(false)

	return registryOverlay{
		partialCaps:   caps,
		maxCompletion: entry.TopProvider.MaxCompletionTokens,
	}, true
}

// partialCaps is a capability set mid-derivation: nil means "no evidence".
type partialCaps struct {
	tools    *bool
	images   *bool
	parallel *bool
	cacheKey *bool
}

func (p partialCaps) any() bool {
	return p.tools != nil || p.images != nil || p.parallel != nil || p.cacheKey != nil
}

// overlay writes every defined field over the current values: explicit
// evidence beats baseline, absence changes nothing.
func (p partialCaps) overlay(caps *schema.ModelCapabilities) {
	if p.tools != nil {
		caps.Tools = *p.tools
	}
	if p.images != nil {
		caps.Images = *p.images
	}
	if p.parallel != nil {
		caps.ParallelToolCalls = *p.parallel
	}
	if p.cacheKey != nil {
		caps.PromptCacheKey = *p.cacheKey
	}
}

func capsFromRecord(record schema.RawModelRecord) partialCaps {
	if c := record.Capabilities; c != nil {
		return partialCaps{
			tools:    c.Tools,
			images:   c.Images,
			parallel: c.ParallelToolCalls,
			cacheKey: c.PromptCacheKey,
		}
	}
	return capsFromSignals(record.SupportedParameters, record.Architecture.InputModalities)
}

// capsFromSignals derives capabilities from a supported-parameter list and
// input modalities, the shape shared by provider listings and the registry.
func capsFromSignals(params, modalities []string) partialCaps {
	var caps partialCaps
	for _, p := range params {
		switch canonicalParam(p) {
		case "tools", "tool_choice":
			caps.tools = boolPtr(true)
		case "parallel_tool_calls":
			caps.parallel = boolPtr(true)
		}
	}
	for _, m := range modalities {
		if strings.EqualFold(strings.TrimSpace(m), "image") {
			caps.images = boolPtr(true)
		}
	}
	return caps
}

func canonicalParam(p string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(p)), "-", "_")
}

func boolPtr(b bool) *bool { return &b }
