// Package match scores registry catalog entries against a model identifier
// and returns the best candidate, if any clears the acceptance threshold.
package match

import (
	"strings"

	"github.com/nulzo/model-config-kit/internal/ident"
	"github.com/nulzo/model-config-kit/pkg/schema"
)

// Weights holds the additive scoring constants. The values and threshold
// are tuned empirically; override individual fields only with measurements
// in hand.
type Weights struct {
	ExactID        int // normalized ids equal
	ExactSuffix    int // path suffixes equal
	ContainsID     int // normalized ids contain one another
	ContainsSuffix int // suffixes contain one another
	TokenJaccard   int // multiplier for token-set Jaccard similarity (0..1)
	NameMention    int // display name or canonical slug mentions the suffix
	Threshold      int // minimum total score to accept a candidate
}

// DefaultWeights is the tuning used in production.
var DefaultWeights = Weights{
	ExactID:        1000,
	ExactSuffix:    500,
	ContainsID:     150,
	ContainsSuffix: 75,
	TokenJaccard:   100,
	NameMention:    25,
	Threshold:      250,
}

// Match returns the best-scoring candidate for the identifier, or false when
// no candidate clears the threshold. Ties break by input order, so results
// are deterministic for a fixed candidate slice.
func Match(id string, candidates []schema.RegistryEntry) (*schema.RegistryEntry, bool) {
	return DefaultWeights.Match(id, candidates)
}

func (w Weights) Match(id string, candidates []schema.RegistryEntry) (*schema.RegistryEntry, bool) {
	norm := ident.Normalize(id)
	suffix := ident.Suffix(id)
	tokens := ident.Tokens(id)

	best := -1
	bestScore := 0
	for i := range candidates {
		score := w.score(norm, suffix, tokens, &candidates[i])
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	if best < 0 || bestScore < w.Threshold {
		return nil, false
	}
	return &candidates[best], true
}

func (w Weights) score(norm, suffix string, tokens []string, cand *schema.RegistryEntry) int {
	candNorm := ident.Normalize(cand.ID)
	candSuffix := ident.Suffix(cand.ID)

	score := 0
	if norm != "" && norm == candNorm {
		score += w.ExactID
	}
	if suffix != "" && suffix == candSuffix {
		score += w.ExactSuffix
	}
	if mutualContains(norm, candNorm) {
		score += w.ContainsID
	}
	if mutualContains(suffix, candSuffix) {
		score += w.ContainsSuffix
	}
	score += int(jaccard(tokens, ident.Tokens(cand.ID)) * float64(w.TokenJaccard))
	if suffix != "" {
		name := strings.ToLower(cand.Name)
		slug := strings.ToLower(cand.CanonicalSlug)
		if strings.Contains(name, suffix) || strings.Contains(slug, suffix) {
			score += w.NameMention
		}
	}
	return score
}

// mutualContains reports whether either string contains the other. Empty
// strings never match: Contains("", x) is vacuously true and would award
// points to unrelated candidates.
func mutualContains(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func jaccard(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	set := make(map[string]bool, len(a))
	for _, t := range a {
		set[t] = true
	}
	inter := 0
	union := len(set)
	seen := make(map[string]bool, len(b))
	for _, t := range b {
		if seen[t] {
			continue
		}
		seen[t] = true
		if set[t] {
			inter++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
