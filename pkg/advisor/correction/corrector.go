// Package correction fixes brand and model typos inside a parsed intent
// using whichever similarity strategy was selected at construction.
package correction

import (
	"context"
	"strings"

	"mobiadvisor-be/internal/pkg/logger"
	"mobiadvisor-be/pkg/advisor/intent"
	"mobiadvisor-be/pkg/advisor/retrieval"
	"mobiadvisor-be/pkg/advisor/similarity"
)

type Corrector struct {
	matcher similarity.Matcher
	aliases *retrieval.AliasTable
	logger  logger.ILogger
}

func NewCorrector(matcher similarity.Matcher, aliases *retrieval.AliasTable, log logger.ILogger) *Corrector {
	if aliases == nil {
		aliases = retrieval.DefaultAliasTable()
	}
	return &Corrector{
		matcher: matcher,
		aliases: aliases,
		logger:  log,
	}
}

// Correct returns a new intent with brand/model tokens replaced by their
// best similarity match. Matchers only return matches above their own
// acceptance threshold (0.7 for the vector index, 0.5/0.6 for the
// edit-distance fallback), so an empty result keeps the token unchanged.
func (c *Corrector) Correct(ctx context.Context, in *intent.Intent) *intent.Intent {
	out := in.Clone()

	for i, company := range out.Entities.Companies {
		out.Entities.Companies[i] = c.correctToken(ctx, company, similarity.KindBrand)
	}

	for i, model := range out.Entities.Models {
		// Known aliases win over fuzzy matching.
		if canonical, ok := c.aliases.CanonicalModel(model); ok {
			out.Entities.Models[i] = canonical
			continue
		}
		out.Entities.Models[i] = c.correctToken(ctx, model, similarity.KindModel)
	}

	return out
}

func (c *Corrector) correctToken(ctx context.Context, token, kind string) string {
	matches, err := c.matcher.FindSimilar(ctx, token, kind, 5)
	if err != nil {
		c.logger.Warn("correction", "similarity lookup failed, keeping token", map[string]interface{}{
			"token": token,
			"kind":  kind,
			"error": err.Error(),
		})
		return token
	}
	if len(matches) == 0 {
		return token
	}

	top := matches[0]
	corrected := strings.ToLower(top.Value)
	if corrected != strings.ToLower(token) {
		c.logger.Debug("correction", "token corrected", map[string]interface{}{
			"from":  token,
			"to":    corrected,
			"score": top.Score,
		})
	}
	return corrected
}
