// Package assistant wraps a generative model for the docs portal: topic
// summaries and the support chat. Neither call ever fails; the portal shows
// a fixed message instead.
package assistant

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/ziadkadry99/nexus-docs/internal/llm"
)

const (
	SummaryUnavailable = "Service unavailable. Please try again later."
	SummaryEmpty       = "Unable to generate summary."
	ChatUnavailable    = "I'm currently experiencing high traffic. Please try again in a moment."
	ChatEmpty          = "I couldn't generate a response."

	// Welcome is the greeting every chat transcript starts with.
	Welcome = "Hello! I'm **EATGF AI**. How can I help you with your enterprise deployment today?"

	DefaultChatModel      = "gemini-3-pro-preview"
	DefaultSummaryModel   = "gemini-flash-lite-latest"
	DefaultThinkingBudget = 32768
)

// SuggestedPrompts are offered before the first question.
var SuggestedPrompts = []string{
	"How do I install EATGF CLI?",
	"What are the API rate limits?",
	"Explain the security architecture",
	"How to configure SSO?",
}

const summaryPrompt = "You are a technical documentation assistant. Summarize the following technical documentation content into 3 concise bullet points for a senior engineer:\n\n"

const systemInstruction = `You are EATGF AI, the dedicated enterprise support assistant for the Enterprise AI-Aligned Technical Governance Framework (EATGF).
Your goal is to provide accurate, technical, and helpful responses to developers and engineers using the platform.

Guidelines:
1. **Technical & Precise**: Use correct terminology. When explaining concepts, be specific.
2. **Markdown Formatting**: Use **bold** for emphasis, ` + "`inline code`" + ` for short snippets, and ` + "```language" + ` blocks for larger code examples.
3. **Context Awareness**: Assume questions relate to EATGF unless told otherwise. For example, "installation" means installing EATGF.
4. **Conciseness**: Keep answers focused and under 200 words unless a longer explanation is requested.
5. **Fallback**: If you do not know the answer, point the user to the official documentation or the API reference.
6. **Tone**: Professional, encouraging, and solution-oriented.`

// Operation names passed to Options.OnResult.
const (
	OpSummary = "summary"
	OpChat    = "chat"
)

// Outcomes passed to Options.OnResult.
const (
	OutcomeOK          = "ok"
	OutcomeEmpty       = "empty"
	OutcomeError       = "error"
	OutcomeUnavailable = "unavailable"
)

// Role is the author of a chat turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message of a chat transcript.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Options configures an Assistant.
type Options struct {
	ChatModel      string
	SummaryModel   string
	ThinkingBudget int
	// OnResult, when set, is called once per request with the operation
	// and its outcome.
	OnResult func(op, outcome string)
}

// DefaultOptions matches the hosted product.
func DefaultOptions() Options {
	return Options{
		ChatModel:      DefaultChatModel,
		SummaryModel:   DefaultSummaryModel,
		ThinkingBudget: DefaultThinkingBudget,
	}
}

// Assistant answers summary and chat requests.
type Assistant struct {
	provider llm.Provider
	opts     Options
	logger   *zap.Logger
}

// New creates an Assistant. A nil provider is allowed: every request then
// gets the unavailable message, which lets the portal run without a model.
func New(provider llm.Provider, opts Options, logger *zap.Logger) *Assistant {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assistant{provider: provider, opts: opts, logger: logger}
}

// Available reports whether a provider is configured.
func (a *Assistant) Available() bool {
	return a.provider != nil
}

// Summarize returns a three-bullet summary of text.
func (a *Assistant) Summarize(ctx context.Context, text string) string {
	if a.provider == nil {
		a.report(OpSummary, OutcomeUnavailable)
		return SummaryUnavailable
	}
	resp, err := a.provider.Complete(ctx, llm.CompletionRequest{
		Model:    a.opts.SummaryModel,
		Messages: []llm.Message{{Role: llm.RoleUser, Content: summaryPrompt + text}},
	})
	if err != nil {
		a.logger.Warn("summary request failed", zap.String("provider", a.provider.Name()), zap.Error(err))
		a.report(OpSummary, OutcomeError)
		return SummaryUnavailable
	}
	if strings.TrimSpace(resp.Content) == "" {
		a.report(OpSummary, OutcomeEmpty)
		return SummaryEmpty
	}
	a.report(OpSummary, OutcomeOK)
	return resp.Content
}

// Chat answers message given the transcript so far. history holds earlier
// turns, oldest first, and does not include message.
func (a *Assistant) Chat(ctx context.Context, message string, history []Turn) string {
	if a.provider == nil {
		a.report(OpChat, OutcomeUnavailable)
		return ChatUnavailable
	}

	msgs := []llm.Message{{Role: llm.RoleSystem, Content: systemInstruction}}
	for _, t := range PrepareHistory(history) {
		role := llm.RoleUser
		if t.Role == RoleAssistant {
			role = llm.RoleAssistant
		}
		msgs = append(msgs, llm.Message{Role: role, Content: t.Text})
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: message})

	resp, err := a.provider.Complete(ctx, llm.CompletionRequest{
		Model:          a.opts.ChatModel,
		Messages:       msgs,
		ThinkingBudget: a.opts.ThinkingBudget,
	})
	if err != nil {
		a.logger.Warn("chat request failed",
			zap.String("provider", a.provider.Name()),
			zap.Int("history", len(history)),
			zap.Error(err),
		)
		a.report(OpChat, OutcomeError)
		return ChatUnavailable
	}
	if strings.TrimSpace(resp.Content) == "" {
		a.report(OpChat, OutcomeEmpty)
		return ChatEmpty
	}
	a.report(OpChat, OutcomeOK)
	return resp.Content
}

// PrepareHistory returns the turns sent upstream. A transcript opens with
// the local greeting, which the model never said, so a leading assistant
// turn is dropped.
func PrepareHistory(history []Turn) []Turn {
	if len(history) > 0 && history[0].Role == RoleAssistant {
		return history[1:]
	}
	return history
}

func (a *Assistant) report(op, outcome string) {
	if a.opts.OnResult != nil {
		a.opts.OnResult(op, outcome)
	}
}
