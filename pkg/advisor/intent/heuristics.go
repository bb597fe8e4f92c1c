package intent

import (
	"strings"

	"mobiadvisor-be/internal/entity"
	"mobiadvisor-be/pkg/store"
)

// Follow-up detection must be cheap and deterministic, so it is a phrase
// list rather than a model call.
var followupPhrases = []string{
	"tell me more",
	"more about",
	"first one",
	"second one",
	"third one",
	"this one",
	"that one",
	"the first",
	"the second",
	"the third",
	"which one",
	"compare them",
	"between them",
	"these phones",
	"those phones",
}

var bestPhrases = []string{
	"which is best",
	"which one is best",
	"best one",
	"recommend one",
	"which should i buy",
	"which would you recommend",
	"best option",
	"top pick",
	"your recommendation",
	"the best",
}

func IsFollowup(query string) bool {
	lowered := strings.ToLower(query)
	for _, phrase := range followupPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}

// IsBestQuery reports whether the user is asking which previous result to pick.
func IsBestQuery(query string) bool {
	lowered := strings.ToLower(query)
	for _, phrase := range bestPhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}

// PhonesFromHistory returns the phones of the most recent turn that carried
// any, scanning newest first.
func PhonesFromHistory(history []store.ConversationTurn) []*entity.Phone {
	for i := len(history) - 1; i >= 0; i-- {
		if len(history[i].Phones) > 0 {
			return history[i].Phones
		}
	}
	return nil
}
