package intent

import "strings"

// Adversarial patterns checked before any model call. The guard is
// deterministic so prompt-injection attempts never reach the classifier.
var blockedPatterns = []struct {
	pattern   string
	violation string
}{
	// Prompt injection
	{"ignore previous", "prompt_injection"},
	{"forget instructions", "prompt_injection"},
	{"system prompt", "prompt_extraction"},
	{"jailbreak", "jailbreak"},
	{"pretend you are", "role_confusion"},
	{"act as if", "role_confusion"},
	{"ignore above", "prompt_injection"},
	{"disregard", "prompt_injection"},
	{"bypass", "bypass"},
	{"override", "bypass"},
	{"ignore all", "prompt_injection"},
	// API/secret extraction
	{"api key", "secret_extraction"},
	{"api_key", "secret_extraction"},
	{"apikey", "secret_extraction"},
	{"secret key", "secret_extraction"},
	{"password", "secret_extraction"},
	{"reveal your", "prompt_extraction"},
	{"show your", "prompt_extraction"},
	{"what is your prompt", "prompt_extraction"},
	{"your instructions", "prompt_extraction"},
	{"internal logic", "secret_extraction"},
	// Brand attacks
	{"trash", "brand_attack"},
	{"garbage", "brand_attack"},
	{"worst brand", "brand_attack"},
	{"terrible company", "brand_attack"},
	{"scam", "brand_attack"},
	{"hate", "toxic"},
	// Toxic content
	{"kill", "toxic"},
	{"suicide", "toxic"},
	{"illegal", "toxic"},
	{"hack", "toxic"},
	{"exploit", "toxic"},
	// Role confusion
	{"you are now", "role_confusion"},
	{"from now on", "role_confusion"},
	{"new persona", "role_confusion"},
	{"different mode", "role_confusion"},
}

var refusalMessages = map[string]string{
	"prompt_injection":  "I can't modify my instructions. I'm here to help you find great mobile phones! What features are you looking for?",
	"prompt_extraction": "I don't share internal details. Let me help you find a phone instead! What's your budget?",
	"secret_extraction": "I can't reveal confidential information. How about I help you find the perfect phone?",
	"jailbreak":         "I can only help with phone-related queries. What kind of phone are you interested in?",
	"role_confusion":    "I'm MobiAdvisor, your phone shopping assistant. Let me help you find a great device!",
	"brand_attack":      "I provide objective, factual information about all brands. Let me show you some options from various manufacturers.",
	"toxic":             "I can only help with phone shopping. Is there a specific phone you'd like to know about?",
	"bypass":            "I follow my guidelines to give you the best phone recommendations. What features matter most to you?",
}

const defaultRefusal = "I can only help with phone-related questions. What phone are you looking for?"

// CheckSafety returns the violation kind for adversarial queries, or "" when
// the query is safe.
func CheckSafety(query string) string {
	lowered := strings.ToLower(query)
	for _, bp := range blockedPatterns {
		if strings.Contains(lowered, bp.pattern) {
			return bp.violation
		}
	}
	return ""
}

// RefusalMessage maps a violation kind to its user-facing refusal.
func RefusalMessage(violation string) string {
	if msg, ok := refusalMessages[violation]; ok {
		return msg
	}
	return defaultRefusal
}
