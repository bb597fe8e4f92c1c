package retrieval

import "strings"

// AliasTable maps colloquial model names to canonical catalog substrings
// and model keywords to their parent brand. Tables are injectable so
// deployments can extend them without a rebuild; DefaultAliasTable carries
// the compiled-in baseline.
type AliasTable struct {
	Models map[string]string
	Brands map[string]string
}

func DefaultAliasTable() *AliasTable {
	return &AliasTable{
		Models: map[string]string{
			// Samsung Galaxy S series
			"s24 ultra": "galaxy s24 ultra",
			"s24+":      "galaxy s24+",
			"s24":       "galaxy s24",
			"s23 ultra": "galaxy s23 ultra",
			"s23+":      "galaxy s23+",
			"s23":       "galaxy s23",
			"s22":       "galaxy s22",
			"s21":       "galaxy s21",
			// Samsung Galaxy A series
			"a54": "galaxy a54",
			"a34": "galaxy a34",
			"a24": "galaxy a24",
			"a14": "galaxy a14",
			// iPhone
			"iphone 15 pro max": "iphone 15 pro max",
			"iphone 15 pro":     "iphone 15 pro",
			"iphone 15":         "iphone 15",
			"iphone 14":         "iphone 14",
			"iphone 13":         "iphone 13",
			// OnePlus
			"12r":  "oneplus 12r",
			"12":   "oneplus 12",
			"11r":  "oneplus 11r",
			"11":   "oneplus 11",
			"nord": "oneplus nord",
			// Xiaomi
			"14 ultra":      "xiaomi 14 ultra",
			"14":            "xiaomi 14",
			"redmi note 13": "redmi note 13",
			"poco f5":       "poco f5",
			// Realme
			"gt neo": "realme gt neo",
			"narzo":  "realme narzo",
		},
		Brands: map[string]string{
			"galaxy":  "samsung",
			"iphone":  "apple",
			"redmi":   "xiaomi",
			"poco":    "xiaomi",
			"oneplus": "oneplus",
			"pixel":   "google",
			"moto":    "motorola",
			"realme":  "realme",
			"vivo":    "vivo",
			"oppo":    "oppo",
		},
	}
}

// CanonicalModel resolves a model alias, or returns the input unchanged.
func (t *AliasTable) CanonicalModel(model string) (string, bool) {
	canonical, ok := t.Models[strings.ToLower(strings.TrimSpace(model))]
	if !ok {
		return model, false
	}
	return canonical, true
}

// InferBrand guesses the parent brand from keywords inside a model token.
func (t *AliasTable) InferBrand(model string) string {
	lowered := strings.ToLower(model)
	for keyword, brand := range t.Brands {
		if strings.Contains(lowered, keyword) {
			return brand
		}
	}
	return ""
}

// CanonicalBrand normalizes marketing sub-names ("galaxy" -> "samsung").
func (t *AliasTable) CanonicalBrand(brand string) string {
	lowered := strings.ToLower(strings.TrimSpace(brand))
	if canonical, ok := t.Brands[lowered]; ok {
		return canonical
	}
	return lowered
}
