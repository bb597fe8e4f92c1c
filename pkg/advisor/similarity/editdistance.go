package similarity

import (
	"context"
	"sort"
	"strings"

	"mobiadvisor-be/internal/pkg/logger"
	"mobiadvisor-be/pkg/store"
)

const (
	brandThreshold = 0.5
	modelThreshold = 0.6
	// Any substring hit counts as at least this similar.
	substringScore = 0.8
)

// ModelEntry is one known catalog model for fallback matching.
type ModelEntry struct {
	Name    string
	Brand   string
	PhoneId int
}

// EditDistanceMatcher scores tokens against the known brand and model
// vocabulary with normalized Levenshtein similarity. It is the degraded
// strategy used when the embedding index is absent.
type EditDistanceMatcher struct {
	brands []string
	models []ModelEntry
	logger logger.ILogger
}

func NewEditDistanceMatcher(brands []string, models []ModelEntry, log logger.ILogger) *EditDistanceMatcher {
	return &EditDistanceMatcher{
		brands: brands,
		models: models,
		logger: log,
	}
}

func (m *EditDistanceMatcher) FindSimilar(ctx context.Context, token, kind string, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 5
	}
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return nil, nil
	}

	var matches []Match
	switch kind {
	case KindBrand:
		for _, brand := range m.brands {
			score := similarityWithSubstring(token, strings.ToLower(brand))
			if score > brandThreshold {
				matches = append(matches, Match{Value: strings.ToLower(brand), Score: score})
			}
		}
	case KindModel:
		for _, entry := range m.models {
			name := strings.ToLower(entry.Name)
			score := similarityWithSubstring(token, name)
			if score >= modelThreshold {
				id := entry.PhoneId
				matches = append(matches, Match{
					Value:   name,
					Brand:   strings.ToLower(entry.Brand),
					Score:   score,
					PhoneId: &id,
				})
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// SearchProducts always falls through: without an index there is no
// semantic retrieval, only the downstream predicate and filter strategies.
func (m *EditDistanceMatcher) SearchProducts(ctx context.Context, query string, filters *store.Filters, topK int) ([]int, error) {
	return nil, nil
}

func similarityWithSubstring(a, b string) float64 {
	score := Score(a, b)
	if (strings.Contains(b, a) || strings.Contains(a, b)) && score < substringScore {
		return substringScore
	}
	return score
}
