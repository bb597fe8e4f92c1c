// Package response builds the user-facing text: grounded summaries,
// general QA answers and structured comparison analyses.
package response

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"mobiadvisor-be/internal/constant"
	"mobiadvisor-be/internal/entity"
	"mobiadvisor-be/internal/pkg/logger"
	"mobiadvisor-be/pkg/advisor/intent"
	"mobiadvisor-be/pkg/advisor/prompt"
	"mobiadvisor-be/pkg/advisor/retrieval"
	"mobiadvisor-be/pkg/llm"
	"mobiadvisor-be/pkg/store"
)

const historyContextTurns = 4

type Generator struct {
	llm    llm.LLMProvider
	logger logger.ILogger
}

func NewGenerator(provider llm.LLMProvider, log logger.ILogger) *Generator {
	return &Generator{
		llm:    provider,
		logger: log,
	}
}

// Summarize produces the conversational answer grounded in the given
// phones. The prompt only ever sees deduplicated data for at most 4 phones.
// A failed model call degrades to a deterministic bullet list instead of
// propagating, so a summary failure can never lose already-retrieved results.
func (g *Generator) Summarize(ctx context.Context, query string, phones []*entity.Phone, history []store.ConversationTurn) string {
	grounded := retrieval.Dedup(phones)
	if len(grounded) > constant.MaxSummaryPhones {
		grounded = grounded[:constant.MaxSummaryPhones]
	}

	rendered, err := prompt.Summary.Render(map[string]string{
		"query":      query,
		"phone_data": phoneBlocks(grounded),
	})
	if err != nil {
		g.logger.Error("response", "summary template render failed", map[string]interface{}{
			"error": err.Error(),
		})
		return FallbackSummary(phones)
	}

	messages := g.withHistory(prompt.SystemPersona, history)
	messages = append(messages, llm.Message{Role: constant.ChatMessageRoleUser, Content: rendered})

	text, err := g.llm.Chat(ctx, messages, llm.WithTemperature(0.7), llm.WithMaxTokens(1000))
	if err != nil {
		g.logger.Warn("response", "summary generation failed, using fallback", map[string]interface{}{
			"error": err.Error(),
		})
		return FallbackSummary(phones)
	}
	return text
}

// AnswerGeneral answers a technology question without catalog grounding.
func (g *Generator) AnswerGeneral(ctx context.Context, query string, history []store.ConversationTurn) (string, error) {
	rendered, err := prompt.GeneralQA.Render(map[string]string{"query": query})
	if err != nil {
		return "", err
	}

	messages := g.withHistory(prompt.SystemPersona, history)
	messages = append(messages, llm.Message{Role: constant.ChatMessageRoleUser, Content: rendered})

	return g.llm.Chat(ctx, messages, llm.WithTemperature(0.7), llm.WithMaxTokens(500))
}

// CompareAnalysis asks for a strict-JSON category breakdown over the
// injected specs only.
func (g *Generator) CompareAnalysis(ctx context.Context, phones []*entity.Phone) (*store.CategoryAnalysis, error) {
	rendered, err := prompt.Compare.Render(map[string]string{
		"phone_data": phoneBlocks(phones),
	})
	if err != nil {
		return nil, err
	}

	raw, err := g.llm.Generate(ctx, rendered,
		llm.WithJSONMode(),
		llm.WithTemperature(0.3),
		llm.WithMaxTokens(800),
	)
	if err != nil {
		return nil, err
	}

	jsonText := intent.ExtractJSON(raw)
	if jsonText == "" {
		return nil, fmt.Errorf("comparison response contained no json: invalid_response")
	}

	var analysis store.CategoryAnalysis
	if err := json.Unmarshal([]byte(jsonText), &analysis); err != nil {
		return nil, fmt.Errorf("parse comparison analysis: %w", err)
	}
	return &analysis, nil
}

// FallbackSummary is the deterministic degradation: name and price only,
// never invented specs.
func FallbackSummary(phones []*entity.Phone) string {
	if len(phones) == 0 {
		return "I couldn't find any phones matching your criteria."
	}

	capped := phones
	if len(capped) > constant.MaxResponsePhones {
		capped = capped[:constant.MaxResponsePhones]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here are %d phones I found:\n\n", len(phones))
	for _, p := range capped {
		fmt.Fprintf(&b, "- **%s %s** - Rs %s\n", p.CompanyName, p.ModelName, formatPrice(p.PriceInr))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (g *Generator) withHistory(system string, history []store.ConversationTurn) []llm.Message {
	messages := []llm.Message{{Role: constant.ChatMessageRoleSystem, Content: system}}
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
	return messages
}

// phoneBlocks renders one structured block per phone. This is the grounding
// boundary: the model must never state a figure absent from these blocks.
func phoneBlocks(phones []*entity.Phone) string {
	if len(phones) == 0 {
		return "No phones found matching your criteria."
	}

	var b strings.Builder
	for i, p := range phones {
		fmt.Fprintf(&b, "\nPhone %d: %s %s\n", i+1, p.CompanyName, p.ModelName)
		fmt.Fprintf(&b, "- Price: Rs %s\n", formatPrice(p.PriceInr))
		fmt.Fprintf(&b, "- RAM: %gGB | Storage: %dGB\n", p.RamGb, p.MemoryGb)
		fmt.Fprintf(&b, "- Camera: %gMP rear, %gMP front\n", p.BackCameraMp, p.FrontCameraMp)
		fmt.Fprintf(&b, "- Battery: %dmAh\n", p.BatteryMah)
		fmt.Fprintf(&b, "- Screen: %g inches\n", p.ScreenSize)
		fmt.Fprintf(&b, "- Rating: %g/5\n", p.UserRating)
		processor := p.Processor
		if processor == "" {
			processor = "N/A"
		}
		fmt.Fprintf(&b, "- Processor: %s\n", processor)
	}
	return b.String()
}

// formatPrice adds thousand separators in the Indian grouping style.
func formatPrice(price int) string {
	s := fmt.Sprintf("%d", price)
	if len(s) <= 3 {
		return s
	}
	head := s[:len(s)-3]
	tail := s[len(s)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}
