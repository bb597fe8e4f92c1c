// Package recovery classifies upstream failures and degrades the pipeline
// gracefully: retry what is retryable, then fall back to keyword search
// before surfacing any error to the user.
package recovery

import (
	"strings"
	"time"
)

type Kind string

const (
	KindRateLimit       Kind = "rate_limit"
	KindQuota           Kind = "quota"
	KindNetwork         Kind = "network"
	KindTimeout         Kind = "timeout"
	KindAuth            Kind = "auth"
	KindInvalidResponse Kind = "invalid_response"
	KindUnknown         Kind = "unknown"
)

type Classified struct {
	Kind        Kind
	UserMessage string
	Retryable   bool
	RetryDelay  time.Duration
}

// matchers are checked in order; first hit wins. Quota before rate limit
// because quota messages often also mention "rate".
var matchers = []struct {
	kind     Kind
	patterns []string
}{
	{KindQuota, []string{"quota", "billing", "insufficient_quota", "exceeded your current"}},
	{KindRateLimit, []string{"rate limit", "rate_limit", "too many requests", "429"}},
	{KindAuth, []string{"api key", "unauthorized", "401", "403", "invalid_api_key", "authentication"}},
	{KindTimeout, []string{"timeout", "timed out", "deadline exceeded", "context deadline"}},
	{KindNetwork, []string{"connection refused", "connection reset", "no such host", "network", "eof", "broken pipe", "dial tcp"}},
	{KindInvalidResponse, []string{"invalid_response", "no json", "unexpected end of json", "invalid character", "no choices", "empty response"}},
}

var userMessages = map[Kind]string{
	KindRateLimit:       "I'm handling a lot of requests right now. Please try again in a moment.",
	KindQuota:           "The AI service has reached its usage limit. Basic search is still available.",
	KindNetwork:         "I'm having trouble reaching the AI service. Please try again.",
	KindTimeout:         "That took longer than expected. Please try again.",
	KindAuth:            "The AI service is misconfigured. Please contact support.",
	KindInvalidResponse: "I received an unexpected answer from the AI service. Please try again.",
	KindUnknown:         "Something went wrong while processing your request. Please try again.",
}

var baseDelays = map[Kind]time.Duration{
	KindRateLimit:       2 * time.Second,
	KindNetwork:         500 * time.Millisecond,
	KindTimeout:         time.Second,
	KindInvalidResponse: 250 * time.Millisecond,
}

// Classify pattern-matches the lower-cased error text into a failure kind.
func Classify(err error) *Classified {
	if err == nil {
		return nil
	}
	lowered := strings.ToLower(err.Error())

	kind := KindUnknown
	for _, m := range matchers {
		for _, p := range m.patterns {
			if strings.Contains(lowered, p) {
				kind = m.kind
				break
			}
		}
		if kind != KindUnknown {
			break
		}
	}

	retryable := kind == KindRateLimit || kind == KindNetwork || kind == KindTimeout || kind == KindInvalidResponse

	return &Classified{
		Kind:        kind,
		UserMessage: userMessages[kind],
		Retryable:   retryable,
		RetryDelay:  baseDelays[kind],
	}
}
