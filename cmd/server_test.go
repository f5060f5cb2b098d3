package cmd

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/ziadkadry99/nexus-docs/internal/apikeys"
	"github.com/ziadkadry99/nexus-docs/internal/chat"
	"github.com/ziadkadry99/nexus-docs/internal/content"
	"github.com/ziadkadry99/nexus-docs/internal/db"
	"github.com/ziadkadry99/nexus-docs/internal/session"
	"github.com/ziadkadry99/nexus-docs/internal/storage"
	"github.com/ziadkadry99/nexus-docs/internal/workspace"
)

func TestIdleEvictionDropsTranscripts(t *testing.T) {
	ctx := t.Context()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { database.Close() })
	store := chat.NewStore(database)

	reg, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	signer, err := apikeys.NewSigner("test-secret")
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	spaces := workspace.NewManager(workspace.Options{
		Registry:     reg,
		KV:           storage.NewMemory(),
		Signer:       signer,
		Sessions:     workspace.StubSessions(session.StubOptions{}),
		DefaultTopic: "intro",
		IdleTimeout:  30 * time.Minute,
		OnEvict:      dropTranscripts(store, zap.NewNop()),
		Now:          func() time.Time { return now },
	})

	spaces.Get("idle")
	spaces.Get("busy")
	idle, _ := store.CreateSession(ctx, "idle")
	busy, _ := store.CreateSession(ctx, "busy")

	now = now.Add(time.Hour)
	spaces.Touch("busy")
	if n := spaces.Sweep(ctx); n != 1 {
		t.Fatalf("swept %d, want 1", n)
	}
	if _, err := store.GetSession(ctx, idle.ID); err == nil {
		t.Error("idle client's transcript should be gone")
	}
	if _, err := store.GetSession(ctx, busy.ID); err != nil {
		t.Errorf("busy client's transcript should stay: %v", err)
	}
}
