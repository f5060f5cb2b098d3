package workspace

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/ziadkadry99/nexus-docs/internal/apikeys"
	"github.com/ziadkadry99/nexus-docs/internal/apperr"
	"github.com/ziadkadry99/nexus-docs/internal/content"
	"github.com/ziadkadry99/nexus-docs/internal/favorites"
	"github.com/ziadkadry99/nexus-docs/internal/navigation"
	"github.com/ziadkadry99/nexus-docs/internal/session"
	"github.com/ziadkadry99/nexus-docs/internal/storage"
)

func newManager(t *testing.T) *Manager {
	t.Helper()
	reg, err := content.Default()
	if err != nil {
		t.Fatal(err)
	}
	signer, err := apikeys.NewSigner("test-secret")
	if err != nil {
		t.Fatal(err)
	}
	return NewManager(Options{
		Registry:       reg,
		KV:             storage.NewMemory(),
		Signer:         signer,
		Sessions:       StubSessions(session.StubOptions{}),
		DefaultTopic:   "intro",
		DefaultVersion: "v2.4",
	})
}

func TestManagerCachesWorkspaces(t *testing.T) {
	m := newManager(t)
	a, _ := m.Get("a")
	again, _ := m.Get("a")
	b, _ := m.Get("b")
	if a != again || a == b || m.Len() != 2 {
		t.Errorf("unexpected caching: a=%p again=%p b=%p len=%d", a, again, b, m.Len())
	}
	m.Evict("a")
	if m.Len() != 1 {
		t.Errorf("evict left %d workspaces", m.Len())
	}
}

func TestHydrateFreshClient(t *testing.T) {
	ws, _ := newManager(t).Get("c1")
	snap, err := ws.Hydrate(t.Context())
	if err != nil {
		t.Fatal(err)
	}
	if snap.Profile != nil {
		t.Error("fresh client should be signed out")
	}
	if snap.Navigation.Page != navigation.RouteHome || snap.Navigation.ActiveTopic != "intro" {
		t.Errorf("navigation = %+v", snap.Navigation)
	}
	if len(snap.Favorites) != 1 || snap.Favorites[0].ID != "install" {
		t.Errorf("favorites = %+v", snap.Favorites)
	}
	if snap.Preferences.Version != "v2.4" {
		t.Errorf("preferences = %+v", snap.Preferences)
	}
}

func TestFavoritesFollowProfile(t *testing.T) {
	ctx := t.Context()
	ws, _ := newManager(t).Get("c1")
	item := favorites.Item{ID: "errors", Title: "Error Codes", Path: "docs"}

	if _, _, err := ws.ToggleFavorite(ctx, item); err != nil {
		t.Fatal(err)
	}
	if ws.FavoritesScope() != favorites.LocalScope {
		t.Fatalf("scope = %q", ws.FavoritesScope())
	}

	p, err := ws.Session.Login(ctx, "dev@example.com", "pw")
	if err != nil {
		t.Fatal(err)
	}
	ws.SignedIn(p)
	if ws.FavoritesScope() != favorites.UserScope(p.ID) {
		t.Errorf("scope = %q", ws.FavoritesScope())
	}
	userFavs, _ := ws.ListFavorites(ctx)
	if favorites.Contains(userFavs, "errors") {
		t.Error("local favorites leaked into the user scope")
	}

	if err := ws.Teardown(ctx); err != nil {
		t.Fatal(err)
	}
	if ws.Profile() != nil || ws.FavoritesScope() != favorites.LocalScope {
		t.Error("teardown should sign out and return to the local scope")
	}
	localFavs, _ := ws.ListFavorites(ctx)
	if !favorites.Contains(localFavs, "errors") {
		t.Error("local favorites should survive a logout")
	}
	if ws.Navigation().Page != navigation.RouteHome {
		t.Errorf("teardown should land on home, got %q", ws.Navigation().Page)
	}
}

func TestHydrateRestoresProfile(t *testing.T) {
	ctx := t.Context()
	m := newManager(t)
	ws, _ := m.Get("c1")
	p, _ := ws.Session.Signup(ctx, "Ada", "ada@example.com", "pw")

	// A restart loses the cache but not the stored profile.
	m.Evict("c1")
	ws, _ = m.Get("c1")
	snap, err := ws.Hydrate(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if snap.Profile == nil || snap.Profile.ID != p.ID {
		t.Fatalf("profile not restored: %+v", snap.Profile)
	}
	if ws.FavoritesScope() != favorites.UserScope(p.ID) {
		t.Errorf("scope = %q", ws.FavoritesScope())
	}
}

func TestFavoritesScopeSurvivesRestart(t *testing.T) {
	ctx := t.Context()
	m1 := newManager(t)
	ws1, _ := m1.Get("c1")
	p, err := ws1.Session.Login(ctx, "dev@example.com", "pw")
	if err != nil {
		t.Fatal(err)
	}
	ws1.SignedIn(p)

	// A second manager over the same storage has never seen the login.
	m2 := NewManager(m1.opts)
	ws2, _ := m2.Get("c1")
	item := favorites.Item{ID: "errors", Title: "Error Codes", Path: "docs"}
	if _, added, err := ws2.ToggleFavorite(ctx, item); err != nil || !added {
		t.Fatalf("toggle: added=%v err=%v", added, err)
	}
	if got := ws2.FavoritesScope(); got != favorites.UserScope(p.ID) {
		t.Errorf("scope = %q, want %q", got, favorites.UserScope(p.ID))
	}
	userFavs, _ := ws1.Favorites.List(ctx, favorites.UserScope(p.ID))
	if !favorites.Contains(userFavs, "errors") {
		t.Error("toggle should land in the user scope")
	}
	localFavs, _ := ws1.Favorites.List(ctx, favorites.LocalScope)
	if favorites.Contains(localFavs, "errors") {
		t.Error("toggle leaked into the local scope")
	}

	listed, err := ws2.ListFavorites(ctx)
	if err != nil || !favorites.Contains(listed, "errors") {
		t.Errorf("list = %+v, %v", listed, err)
	}
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestSweepDropsIdleWorkspaces(t *testing.T) {
	c := &clock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	var evicted []string
	m := newManager(t)
	m.opts.Now = c.Now
	m.opts.IdleTimeout = 30 * time.Minute
	m.opts.OnEvict = func(_ context.Context, id string) { evicted = append(evicted, id) }

	for i := 0; i < 100; i++ {
		if _, err := m.Get(fmt.Sprintf("crawler-%d", i)); err != nil {
			t.Fatal(err)
		}
	}
	reader, _ := m.Get("reader")
	if n := m.Sweep(t.Context()); n != 0 {
		t.Fatalf("nothing is idle yet, swept %d", n)
	}

	c.Advance(20 * time.Minute)
	m.Get("reader")
	c.Advance(20 * time.Minute)
	m.Touch("reader")
	m.Touch("never-seen")

	if n := m.Sweep(t.Context()); n != 100 {
		t.Errorf("swept %d, want 100", n)
	}
	if m.Len() != 1 || len(evicted) != 100 {
		t.Fatalf("len=%d evicted=%d", m.Len(), len(evicted))
	}
	if again, _ := m.Get("reader"); again != reader {
		t.Error("active workspace should stay cached")
	}

	c.Advance(time.Hour)
	m.Sweep(t.Context())
	if m.Len() != 0 {
		t.Errorf("idle reader should go, len=%d", m.Len())
	}
	if evicted[len(evicted)-1] != "reader" {
		t.Errorf("last eviction = %q", evicted[len(evicted)-1])
	}
}

func TestSweepDisabledWithoutTimeout(t *testing.T) {
	m := newManager(t)
	m.Get("a")
	if n := m.Sweep(t.Context()); n != 0 || m.Len() != 1 {
		t.Errorf("swept %d with no idle timeout", n)
	}

	// Run returns at once when there is nothing to sweep.
	done := make(chan struct{})
	go func() {
		m.Run(t.Context(), time.Millisecond)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run should return without an idle timeout")
	}
}

func TestMaxWorkspacesDropsLeastRecent(t *testing.T) {
	c := &clock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	var evicted []string
	m := newManager(t)
	m.opts.Now = c.Now
	m.opts.MaxWorkspaces = 3
	m.opts.OnEvict = func(_ context.Context, id string) { evicted = append(evicted, id) }

	for _, id := range []string{"a", "b", "c"} {
		m.Get(id)
		c.Advance(time.Second)
	}
	m.Get("a")
	c.Advance(time.Second)
	m.Get("d")

	if m.Len() != 3 {
		t.Fatalf("len = %d, want 3", m.Len())
	}
	if len(evicted) != 1 || evicted[0] != "b" {
		t.Errorf("evicted = %v, want [b]", evicted)
	}

	ctx := t.Context()
	for i := 0; i < 1000; i++ {
		ws, err := m.Get(fmt.Sprintf("anon-%d", i))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := ws.Hydrate(ctx); err != nil {
			t.Fatal(err)
		}
		c.Advance(time.Millisecond)
	}
	if m.Len() != 3 {
		t.Errorf("cache grew to %d", m.Len())
	}
}

func TestNavigationRevealsTopic(t *testing.T) {
	ws, _ := newManager(t).Get("c1")

	st := ws.Navigate(navigation.RouteDocs, "enc-keys")
	if st.Page != navigation.RouteDocs || st.ActiveTopic != "enc-keys" {
		t.Fatalf("state = %+v", st)
	}
	if !ws.exp.IsExpanded("encryption") {
		t.Error("parent of the active topic should be expanded")
	}

	if !ws.ToggleExpanded("encryption") || ws.exp.IsExpanded("encryption") {
		t.Error("toggle should collapse encryption")
	}
	ws.Sidebar()
	if len(ws.Expanded()) != 0 {
		t.Errorf("drawing the sidebar reopened %v", ws.Expanded())
	}
	if ws.ToggleExpanded("intro") {
		t.Error("leaf topics cannot be toggled")
	}

	st = ws.Select("quickstart")
	if st.ActiveTopic != "quickstart" {
		t.Errorf("select leaf: %+v", st)
	}
	if st = ws.Navigate(navigation.RouteAPI, ""); st.ActiveTopic != "quickstart" {
		t.Errorf("leaving docs should keep the topic, got %+v", st)
	}
}

func TestClientIDCookie(t *testing.T) {
	m := newManager(t)

	w := httptest.NewRecorder()
	id := m.ClientID(w, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName || cookies[0].Value != id {
		t.Fatalf("expected a new client cookie, got %+v", cookies)
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: id})
	w = httptest.NewRecorder()
	if got := m.ClientID(w, r); got != id {
		t.Errorf("got %q, want %q", got, id)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Error("a valid cookie should not be reissued")
	}
	if PeekClientID(r) != id {
		t.Error("PeekClientID should read the cookie")
	}

	bad := httptest.NewRequest(http.MethodGet, "/", nil)
	bad.AddCookie(&http.Cookie{Name: CookieName, Value: "../../etc"})
	if got := m.ClientID(httptest.NewRecorder(), bad); got == "../../etc" {
		t.Error("malformed client id accepted")
	}
	if PeekClientID(bad) != "anonymous" {
		t.Error("malformed cookie should peek as anonymous")
	}
}

func TestVerifyAPIKey(t *testing.T) {
	ctx := t.Context()
	m := newManager(t)
	ws, _ := m.Get("c1")

	rec, _, err := ws.Keys.CreateAPIKey(ctx, "ci")
	if err != nil {
		t.Fatal(err)
	}
	if err := m.Verify(ctx, Namespace("c1"), rec.ID); err != nil {
		t.Fatalf("verify: %v", err)
	}
	keys, _ := ws.Keys.APIKeys(ctx)
	if keys[0].LastUsed == nil {
		t.Error("verify should record the key as used")
	}

	if err := ws.Keys.RevokeAPIKey(ctx, rec.ID); err != nil {
		t.Fatal(err)
	}
	if err := m.Verify(ctx, Namespace("c1"), rec.ID); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("revoked key: expected not found, got %v", err)
	}
	if err := m.Verify(ctx, "other:c1", rec.ID); err == nil {
		t.Error("foreign namespace should fail")
	}
}

func TestSessionFactoryError(t *testing.T) {
	m := newManager(t)
	m.opts.Sessions = func(storage.KV, *session.Keyring) (session.Service, error) {
		return nil, errors.New("no backend")
	}
	if _, err := m.Get("c9"); err == nil {
		t.Error("expected factory error")
	}
	if m.Len() != 0 {
		t.Error("failed workspace should not be cached")
	}
}
