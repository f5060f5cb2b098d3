package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/ziadkadry99/nexus-docs/internal/llm"
)

type fakeProvider struct {
	mu    sync.Mutex
	reqs  []llm.CompletionRequest
	reply string
	err   error
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	return &llm.CompletionResponse{Content: f.reply}, nil
}

func TestSummarize(t *testing.T) {
	p := &fakeProvider{reply: "- one\n- two\n- three"}
	var outcomes []string
	opts := DefaultOptions()
	opts.OnResult = func(op, outcome string) { outcomes = append(outcomes, op+"/"+outcome) }
	a := New(p, opts, nil)

	if got := a.Summarize(context.Background(), "Install the CLI."); got != p.reply {
		t.Errorf("got %q", got)
	}
	req := p.reqs[0]
	if req.Model != DefaultSummaryModel {
		t.Errorf("model = %q", req.Model)
	}
	if len(req.Messages) != 1 || !strings.HasSuffix(req.Messages[0].Content, "\n\nInstall the CLI.") {
		t.Errorf("unexpected prompt %+v", req.Messages)
	}
	if len(outcomes) != 1 || outcomes[0] != "summary/ok" {
		t.Errorf("outcomes = %v", outcomes)
	}
}

func TestSummarizeFailsOpen(t *testing.T) {
	a := New(&fakeProvider{err: errors.New("503")}, DefaultOptions(), nil)
	if got := a.Summarize(context.Background(), "x"); got != SummaryUnavailable {
		t.Errorf("got %q", got)
	}

	a = New(&fakeProvider{reply: "  "}, DefaultOptions(), nil)
	if got := a.Summarize(context.Background(), "x"); got != SummaryEmpty {
		t.Errorf("got %q", got)
	}

	a = New(nil, DefaultOptions(), nil)
	if a.Available() {
		t.Error("nil provider should not be available")
	}
	if got := a.Summarize(context.Background(), "x"); got != SummaryUnavailable {
		t.Errorf("got %q", got)
	}
}

func TestChatDropsGreeting(t *testing.T) {
	p := &fakeProvider{reply: "Run `eatgf install`."}
	a := New(p, DefaultOptions(), nil)

	history := []Turn{
		{Role: RoleAssistant, Text: Welcome},
		{Role: RoleUser, Text: "hi"},
		{Role: RoleAssistant, Text: "hello"},
	}
	if got := a.Chat(context.Background(), "how do I install?", history); got != p.reply {
		t.Errorf("got %q", got)
	}

	req := p.reqs[0]
	if req.Model != DefaultChatModel || req.ThinkingBudget != DefaultThinkingBudget {
		t.Errorf("unexpected request options %+v", req)
	}
	want := []llm.Role{llm.RoleSystem, llm.RoleUser, llm.RoleAssistant, llm.RoleUser}
	if len(req.Messages) != len(want) {
		t.Fatalf("got %d messages, want %d", len(req.Messages), len(want))
	}
	for i, r := range want {
		if req.Messages[i].Role != r {
			t.Errorf("message %d role = %q, want %q", i, req.Messages[i].Role, r)
		}
	}
	if !strings.HasPrefix(req.Messages[0].Content, "You are EATGF AI") {
		t.Error("system instruction missing")
	}
	if req.Messages[3].Content != "how do I install?" {
		t.Errorf("last message = %q", req.Messages[3].Content)
	}
}

func TestChatFailsOpen(t *testing.T) {
	a := New(&fakeProvider{err: context.DeadlineExceeded}, DefaultOptions(), nil)
	if got := a.Chat(context.Background(), "hi", nil); got != ChatUnavailable {
		t.Errorf("got %q", got)
	}
	a = New(&fakeProvider{}, DefaultOptions(), nil)
	if got := a.Chat(context.Background(), "hi", nil); got != ChatEmpty {
		t.Errorf("got %q", got)
	}
	a = New(nil, DefaultOptions(), nil)
	if got := a.Chat(context.Background(), "hi", nil); got != ChatUnavailable {
		t.Errorf("got %q", got)
	}
}

func TestPrepareHistory(t *testing.T) {
	user := []Turn{{Role: RoleUser, Text: "a"}, {Role: RoleAssistant, Text: "b"}}
	if got := PrepareHistory(user); len(got) != 2 {
		t.Errorf("a transcript opening with a user turn should be kept, got %v", got)
	}
	if got := PrepareHistory([]Turn{{Role: RoleAssistant, Text: Welcome}}); len(got) != 0 {
		t.Errorf("got %v", got)
	}
	if got := PrepareHistory(nil); len(got) != 0 {
		t.Errorf("got %v", got)
	}
}
