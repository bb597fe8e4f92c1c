package recovery

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"mobiadvisor-be/internal/constant"
	"mobiadvisor-be/internal/entity"
	"mobiadvisor-be/internal/pkg/logger"
	"mobiadvisor-be/internal/repository/contract"
	"mobiadvisor-be/pkg/store"
)

var (
	// "20k" style figures and plain 4-6 digit amounts.
	shorthandPricePattern = regexp.MustCompile(`\b(\d{1,3})\s*[kK]\b`)
	plainPricePattern     = regexp.MustCompile(`\b(\d{4,6})\b`)
)

var underWords = []string{"under", "below", "less than", "cheaper than", "within", "max"}
var aboveWords = []string{"above", "over", "more than", "at least", "minimum"}

// priceWindow is the default range around a figure with no direction word.
const priceWindow = 10000

var fallbackBrands = []string{
	"samsung", "apple", "xiaomi", "oneplus", "vivo", "oppo",
	"realme", "google", "motorola", "nothing", "honor", "infinix", "tecno",
}

// Recoverer is the last line of defense: when the AI pipeline is down, it
// extracts price and brand hints from the raw query and runs a plain
// catalog search so the user still sees something.
type Recoverer struct {
	phones contract.PhoneRepository
	logger logger.ILogger
}

func NewRecoverer(phones contract.PhoneRepository, log logger.ILogger) *Recoverer {
	return &Recoverer{
		phones: phones,
		logger: log,
	}
}

// Recover runs the keyword fallback and returns whatever the catalog holds
// for the extracted filters, top rated first, capped at 8. When the filters
// match nothing, the raw query words are tried against brand, model and
// processor names before giving up and retrying wide open.
func (r *Recoverer) Recover(ctx context.Context, query string) ([]*entity.Phone, error) {
	filters := ExtractFilters(query)

	phones, err := r.phones.QueryByFilters(ctx, filters, nil, constant.MaxFallbackPhones)
	if err != nil {
		return nil, err
	}

	if len(phones) == 0 {
		if keywords := queryKeywords(query); len(keywords) > 0 {
			phones, err = r.phones.SearchByKeywords(ctx, keywords, constant.MaxFallbackPhones)
			if err != nil {
				return nil, err
			}
		}
	}

	if len(phones) == 0 && !filters.IsEmpty() {
		// Constraints may have been extracted too aggressively; retry wide open.
		phones, err = r.phones.QueryByFilters(ctx, &store.Filters{}, nil, constant.MaxFallbackPhones)
		if err != nil {
			return nil, err
		}
	}

	return phones, nil
}

// queryKeywords splits the query into lowercase words of 3+ letters, the
// minimum length at which a token can plausibly name a brand or model.
func queryKeywords(query string) []string {
	var keywords []string
	for _, word := range strings.Fields(strings.ToLower(query)) {
		word = strings.Trim(word, ".,!?\"'()")
		if len(word) >= 3 {
			keywords = append(keywords, word)
		}
	}
	return keywords
}

// ExtractFilters builds Filters from literal price and brand mentions.
func ExtractFilters(query string) *store.Filters {
	lowered := strings.ToLower(query)
	filters := &store.Filters{}

	if price, ok := extractPrice(lowered); ok {
		switch {
		case containsAny(lowered, underWords):
			filters.MaxPrice = &price
		case containsAny(lowered, aboveWords):
			filters.MinPrice = &price
		default:
			minP, maxP := price-priceWindow, price+priceWindow
			if minP < 0 {
				minP = 0
			}
			filters.MinPrice = &minP
			filters.MaxPrice = &maxP
		}
	}

	for _, brand := range fallbackBrands {
		// Plural tolerant: "samsungs" still matches "samsung".
		if strings.Contains(lowered, brand) {
			filters.Company = brand
			break
		}
	}

	return filters
}

func extractPrice(lowered string) (int, bool) {
	if m := shorthandPricePattern.FindStringSubmatch(lowered); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return n * 1000, true
		}
	}
	if m := plainPricePattern.FindStringSubmatch(lowered); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return n, true
		}
	}
	return 0, false
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
