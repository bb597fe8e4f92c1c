// Package retrieval resolves a corrected intent plus merged filters into a
// ranked, deduplicated list of candidate phones. Strategies run
// sequentially with early exit, never fan-out, to bound external-call cost.
package retrieval

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"mobiadvisor-be/internal/constant"
	"mobiadvisor-be/internal/entity"
	"mobiadvisor-be/internal/pkg/logger"
	"mobiadvisor-be/internal/repository/contract"
	"mobiadvisor-be/pkg/advisor/intent"
	"mobiadvisor-be/pkg/advisor/prompt"
	"mobiadvisor-be/pkg/advisor/similarity"
	"mobiadvisor-be/pkg/llm"
	"mobiadvisor-be/pkg/store"
)

var (
	// Ambiguous numeric model codes that usually mean a Samsung Galaxy
	// ("s23", "a54") or an iPhone ("15 pro").
	samsungCodePattern = regexp.MustCompile(`^[as]\d`)
	appleCodePattern   = regexp.MustCompile(`^\d{2}`)
)

type Config struct {
	MaxResults    int
	SemanticTopK  int
	MultiBrandTop int
}

func DefaultConfig() Config {
	return Config{
		MaxResults:    constant.MaxResponsePhones,
		SemanticTopK:  5,
		MultiBrandTop: constant.MultiBrandTopPerSide,
	}
}

type Orchestrator struct {
	phones  contract.PhoneRepository
	matcher similarity.Matcher
	llm     llm.LLMProvider
	aliases *AliasTable
	cfg     Config
	logger  logger.ILogger
}

func NewOrchestrator(phones contract.PhoneRepository, matcher similarity.Matcher, provider llm.LLMProvider, aliases *AliasTable, cfg Config, log logger.ILogger) *Orchestrator {
	if aliases == nil {
		aliases = DefaultAliasTable()
	}
	return &Orchestrator{
		phones:  phones,
		matcher: matcher,
		llm:     provider,
		aliases: aliases,
		cfg:     cfg,
		logger:  log,
	}
}

// Retrieve picks one of three mutually exclusive resolution paths based on
// the comparison type and entity shape.
func (o *Orchestrator) Retrieve(ctx context.Context, in *intent.Intent, filters *store.Filters, rawQuery string) ([]*entity.Phone, error) {
	models := in.Entities.Models
	companies := in.Entities.Companies

	switch {
	case in.ComparisonType == intent.ComparisonMulti && len(models) >= 1:
		return o.retrieveMultiModel(ctx, in)
	case len(companies) >= 2 && len(models) == 0:
		return o.retrieveMultiBrand(ctx, companies)
	default:
		return o.retrieveSingle(ctx, in, filters, rawQuery)
	}
}

// retrieveMultiModel resolves each named model independently, trying alias
// lookup, brand+model compound match, model-only match, then brand-prefix
// heuristics. Unmatched models are skipped, not failed.
func (o *Orchestrator) retrieveMultiModel(ctx context.Context, in *intent.Intent) ([]*entity.Phone, error) {
	var phones []*entity.Phone

	for i, model := range in.Entities.Models {
		model = strings.ToLower(strings.TrimSpace(model))
		if model == "" {
			continue
		}

		brand := o.aliases.InferBrand(model)
		if i < len(in.Entities.Companies) {
			brand = in.Entities.Companies[i]
		}

		found := o.resolveModel(ctx, model, brand)
		if found == nil {
			o.logger.Debug("retrieval", "no catalog match for model", map[string]interface{}{
				"model": model,
				"brand": brand,
			})
			continue
		}
		phones = append(phones, found)
	}

	return phones, nil
}

func (o *Orchestrator) resolveModel(ctx context.Context, model, brand string) *entity.Phone {
	if canonical, ok := o.aliases.CanonicalModel(model); ok {
		if p := o.firstBySubstring(ctx, canonical); p != nil {
			return p
		}
	}

	if brand != "" {
		stripped := strings.TrimSpace(strings.ReplaceAll(model, brand, ""))
		if stripped != "" {
			if results, err := o.phones.SearchByBrandModel(ctx, brand, stripped, 1); err == nil && len(results) > 0 {
				return results[0]
			}
		}
	}

	if p := o.firstBySubstring(ctx, model); p != nil {
		return p
	}

	if samsungCodePattern.MatchString(model) {
		if p := o.firstBySubstring(ctx, "galaxy "+model); p != nil {
			return p
		}
	}
	if appleCodePattern.MatchString(model) {
		if p := o.firstBySubstring(ctx, "iphone "+model); p != nil {
			return p
		}
	}

	return nil
}

func (o *Orchestrator) firstBySubstring(ctx context.Context, term string) *entity.Phone {
	results, err := o.phones.SearchByModelSubstring(ctx, term, 1)
	if err != nil || len(results) == 0 {
		return nil
	}
	return results[0]
}

// retrieveMultiBrand fetches the top rated phones per brand, deduplicated by id.
func (o *Orchestrator) retrieveMultiBrand(ctx context.Context, companies []string) ([]*entity.Phone, error) {
	var phones []*entity.Phone
	seen := make(map[int]bool)

	for _, company := range companies {
		canonical := o.aliases.CanonicalBrand(company)
		results, err := o.phones.FindTopByBrand(ctx, canonical, o.cfg.MultiBrandTop)
		if err != nil {
			return nil, err
		}
		for _, p := range results {
			if !seen[p.Id] {
				seen[p.Id] = true
				phones = append(phones, p)
			}
		}
	}

	return phones, nil
}

// retrieveSingle runs the fallback chain: semantic retrieval, then a
// generated predicate, then plain filtered retrieval. Each strategy is
// attempted only if the previous yielded nothing; the filtered strategy
// cannot fail by construction.
func (o *Orchestrator) retrieveSingle(ctx context.Context, in *intent.Intent, filters *store.Filters, rawQuery string) ([]*entity.Phone, error) {
	if phones := o.trySemantic(ctx, filters, rawQuery); len(phones) > 0 {
		return capResults(phones, o.cfg.MaxResults), nil
	}

	if phones := o.tryPredicate(ctx, in, filters); len(phones) > 0 {
		return capResults(phones, o.cfg.MaxResults), nil
	}

	phones, err := o.phones.QueryByFilters(ctx, filters, priorityOrdering(in.PriorityFeatures), 0)
	if err != nil {
		return nil, err
	}
	return capResults(phones, o.cfg.MaxResults), nil
}

func (o *Orchestrator) trySemantic(ctx context.Context, filters *store.Filters, rawQuery string) []*entity.Phone {
	ids, err := o.matcher.SearchProducts(ctx, rawQuery, filters, o.cfg.SemanticTopK)
	if err != nil {
		o.logger.Warn("retrieval", "semantic search failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	if len(ids) == 0 {
		return nil
	}

	phones, err := o.phones.FindByIds(ctx, ids)
	if err != nil {
		o.logger.Warn("retrieval", "hydrating semantic matches failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	// Preserve similarity order, then drop rows violating the bounds.
	byId := make(map[int]*entity.Phone, len(phones))
	for _, p := range phones {
		byId[p.Id] = p
	}
	var ordered []*entity.Phone
	for _, id := range ids {
		if p, ok := byId[id]; ok && filters.Matches(p) {
			ordered = append(ordered, p)
		}
	}
	return ordered
}

func (o *Orchestrator) tryPredicate(ctx context.Context, in *intent.Intent, filters *store.Filters) []*entity.Phone {
	payload, err := json.Marshal(map[string]interface{}{
		"intent":  in,
		"filters": filters,
	})
	if err != nil {
		return nil
	}

	rendered, err := prompt.Predicate.Render(map[string]string{"intent": string(payload)})
	if err != nil {
		return nil
	}

	sql, err := o.llm.Chat(ctx, []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: "You generate SQL queries. Respond only with the SQL query, no explanation."},
		{Role: constant.ChatMessageRoleUser, Content: rendered},
	}, llm.WithTemperature(0.1), llm.WithMaxTokens(300))
	if err != nil {
		o.logger.Warn("retrieval", "predicate generation failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	sql = strings.TrimSpace(strings.Trim(strings.TrimSpace(sql), "`"))
	if !strings.HasPrefix(strings.ToUpper(sql), "SELECT") {
		o.logger.Warn("retrieval", "generated predicate is not a select", nil)
		return nil
	}

	phones, err := o.phones.QueryByPredicate(ctx, sql)
	if err != nil {
		o.logger.Warn("retrieval", "predicate execution failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}
	return phones
}

// priorityOrdering maps declared priority features onto ordering columns.
func priorityOrdering(priorities []string) []string {
	has := func(feature string) bool {
		for _, p := range priorities {
			if strings.Contains(p, feature) {
				return true
			}
		}
		return false
	}
	switch {
	case has("camera"):
		return []string{"back_camera_mp DESC", "user_rating DESC"}
	case has("battery"):
		return []string{"battery_mah DESC", "user_rating DESC"}
	case has("performance"), has("gaming"):
		return []string{"ram_gb DESC", "performance_rating DESC", "user_rating DESC"}
	default:
		return nil
	}
}

func capResults(phones []*entity.Phone, limit int) []*entity.Phone {
	if limit > 0 && len(phones) > limit {
		return phones[:limit]
	}
	return phones
}

// MergeFilters combines caller filters with intent constraints. The tighter
// bound always wins, so merging never widens a range. The caller's object
// is never mutated. Brand from the intent applies only when the caller
// supplied none.
func MergeFilters(base *store.Filters, in *intent.Intent) *store.Filters {
	merged := base.Clone()
	c := in.Constraints

	merged.MinPrice = tighterMin(merged.MinPrice, c.MinPrice)
	merged.MaxPrice = tighterMax(merged.MaxPrice, c.MaxPrice)
	merged.MinRam = tighterMinF(merged.MinRam, c.MinRam)
	merged.MinBattery = tighterMin(merged.MinBattery, c.MinBattery)
	merged.MinCamera = tighterMinF(merged.MinCamera, c.MinCamera)
	merged.MinStorage = tighterMin(merged.MinStorage, c.MinStorage)

	if merged.Company == "" && len(in.Entities.Companies) > 0 {
		merged.Company = in.Entities.Companies[0]
	}

	return merged
}

func tighterMin(a, b *int) *int {
	if a == nil {
		return b
	}
	if b != nil && *b > *a {
		return b
	}
	return a
}

func tighterMax(a, b *int) *int {
	if a == nil {
		return b
	}
	if b != nil && *b < *a {
		return b
	}
	return a
}

func tighterMinF(a, b *float64) *float64 {
	if a == nil {
		return b
	}
	if b != nil && *b > *a {
		return b
	}
	return a
}

// Dedup collapses duplicates by (brand, model), keeping first occurrence.
func Dedup(phones []*entity.Phone) []*entity.Phone {
	seen := make(map[string]bool, len(phones))
	out := make([]*entity.Phone, 0, len(phones))
	for _, p := range phones {
		key := strings.ToLower(p.CompanyName) + "|" + strings.ToLower(p.ModelName)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}
