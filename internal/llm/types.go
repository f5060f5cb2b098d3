package llm

// Role is the author of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a conversation.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest asks a provider for the next assistant turn. System
// messages may appear anywhere in Messages; providers that take a separate
// instruction collect them.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
	// ThinkingBudget caps reasoning tokens on providers that support it.
	// Zero leaves the provider default.
	ThinkingBudget int
}

// CompletionResponse is a provider's answer.
type CompletionResponse struct {
	Content      string
	InputTokens  int
	OutputTokens int
	Model        string
	FinishReason string
}
