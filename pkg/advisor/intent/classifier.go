package intent

import (
	"context"
	"encoding/json"
	"strings"

	"mobiadvisor-be/internal/constant"
	"mobiadvisor-be/internal/pkg/logger"
	"mobiadvisor-be/pkg/advisor/prompt"
	"mobiadvisor-be/pkg/llm"
	"mobiadvisor-be/pkg/store"
)

const historyContextTurns = 4

type Classifier struct {
	llm    llm.LLMProvider
	logger logger.ILogger
}

func NewClassifier(provider llm.LLMProvider, log logger.ILogger) *Classifier {
	return &Classifier{
		llm:    provider,
		logger: log,
	}
}

// Classify runs the safety guard and follow-up heuristic first, then asks
// the model for a strict-JSON intent. Parse failures degrade to the default
// query intent; transport failures propagate so recovery can retry.
func (c *Classifier) Classify(ctx context.Context, query string, history []store.ConversationTurn) (*Intent, error) {
	if violation := CheckSafety(query); violation != "" {
		c.logger.Warn("intent", "query blocked by safety guard", map[string]interface{}{
			"violation": violation,
		})
		return &Intent{Task: TaskReject, ComparisonType: ComparisonSingle, RejectionReason: violation}, nil
	}

	if IsFollowup(query) || IsBestQuery(query) {
		if phones := PhonesFromHistory(history); len(phones) > 0 {
			result := DefaultIntent()
			result.IsFollowup = true
			return result, nil
		}
	}

	rendered, err := prompt.Intent.Render(map[string]string{"query": query})
	if err != nil {
		return nil, err
	}

	messages := []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: "You are a query parser. Respond only with valid JSON."},
	}
	start := len(history) - historyContextTurns
	if start < 0 {
		start = 0
	}
	for _, turn := range history[start:] {
		if turn.Content == "" {
			continue
		}
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: constant.ChatMessageRoleUser, Content: rendered})

	raw, err := c.llm.Chat(ctx, messages,
		llm.WithJSONMode(),
		llm.WithTemperature(0.1),
		llm.WithMaxTokens(500),
	)
	if err != nil {
		return nil, err
	}

	parsed, ok := parseIntent(raw)
	if !ok {
		c.logger.Warn("intent", "failed to parse intent json, degrading to default", map[string]interface{}{
			"raw": truncate(raw, 200),
		})
		return DefaultIntent(), nil
	}
	return parsed, nil
}

func parseIntent(raw string) (*Intent, bool) {
	jsonText := ExtractJSON(raw)
	if jsonText == "" {
		return nil, false
	}

	var parsed Intent
	if err := json.Unmarshal([]byte(jsonText), &parsed); err != nil {
		return nil, false
	}

	return normalize(&parsed), true
}

// normalize fills defaults and lower-cases entity lists, the invariant all
// downstream matching relies on.
func normalize(in *Intent) *Intent {
	if in.Task == "" {
		in.Task = TaskQuery
	}
	if in.ComparisonType == "" {
		in.ComparisonType = ComparisonSingle
	}
	in.Entities.Companies = lowerAll(in.Entities.Companies)
	in.Entities.Models = lowerAll(in.Entities.Models)
	in.Entities.Features = lowerAll(in.Entities.Features)
	in.PriorityFeatures = lowerAll(in.PriorityFeatures)
	return in
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(strings.ToLower(v))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// ExtractJSON pulls the first balanced JSON object out of a model response,
// tolerating prose or code fences around it.
func ExtractJSON(raw string) string {
	start := strings.Index(raw, "{")
	if start == -1 {
		return ""
	}
	depth := 0
	for i := start; i < len(raw); i++ {
		switch raw[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1]
			}
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
