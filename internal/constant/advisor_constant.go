package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	// Engine limits
	MaxHistoryTurns      = 10
	MaxResponsePhones    = 5
	MaxSummaryPhones     = 4
	MaxFallbackPhones    = 8
	MultiBrandTopPerSide = 3

	// Canned responses
	RejectionMessage   = "I'm sorry, I can only help with mobile phone shopping queries. How can I help you find the perfect phone?"
	EmptyResultMessage = "I couldn't find any phones matching your criteria. Try adjusting your filters or search terms."
	DegradedWarning    = "AI service temporarily unavailable"
	EmptyQueryMessage  = "Tell me what kind of phone you're looking for and I'll find some options for you."
)
