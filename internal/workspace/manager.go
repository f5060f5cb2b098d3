package workspace

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ziadkadry99/nexus-docs/internal/apikeys"
	"github.com/ziadkadry99/nexus-docs/internal/apperr"
	"github.com/ziadkadry99/nexus-docs/internal/content"
	"github.com/ziadkadry99/nexus-docs/internal/favorites"
	"github.com/ziadkadry99/nexus-docs/internal/navigation"
	"github.com/ziadkadry99/nexus-docs/internal/preferences"
	"github.com/ziadkadry99/nexus-docs/internal/session"
	"github.com/ziadkadry99/nexus-docs/internal/storage"
)

// CookieName carries the client id.
const CookieName = "nexus_client"

const namespacePrefix = "client:"

// SessionFactory builds the identity backend for one client namespace.
type SessionFactory func(kv storage.KV, keys *session.Keyring) (session.Service, error)

// StubSessions returns a factory for the demo backend.
func StubSessions(opts session.StubOptions) SessionFactory {
	return func(kv storage.KV, keys *session.Keyring) (session.Service, error) {
		return session.NewStub(kv, keys, opts), nil
	}
}

// SupabaseSessions returns a factory for the Supabase backend.
func SupabaseSessions(url, key string, logger *zap.Logger) SessionFactory {
	return func(kv storage.KV, keys *session.Keyring) (session.Service, error) {
		return session.NewSupabase(url, key, kv, keys, logger)
	}
}

// Options configures a Manager.
type Options struct {
	Registry       *content.Registry
	KV             storage.KV
	Signer         *apikeys.Signer
	Sessions       SessionFactory
	DefaultTopic   string
	DefaultVersion string
	// Seed is the favorites list a new scope starts with. Nil uses
	// favorites.DefaultSeed.
	Seed []favorites.Item
	// SecureCookie marks the client cookie Secure.
	SecureCookie bool
	// IdleTimeout is how long a workspace may go unused before Sweep
	// drops it. Zero disables idle eviction.
	IdleTimeout time.Duration
	// MaxWorkspaces caps the cache; Get drops the least recently used
	// workspace to make room. Zero means no cap.
	MaxWorkspaces int
	// OnEvict runs for every dropped workspace, outside the manager lock.
	OnEvict func(ctx context.Context, clientID string)
	Now     func() time.Time
}

// Manager creates and caches workspaces. Only navigation lives solely in
// the cache; everything else is persisted, so an evicted workspace is
// rebuilt on the client's next request.
type Manager struct {
	opts Options

	mu       sync.Mutex
	spaces   map[string]*Workspace
	lastSeen map[string]time.Time
}

// NewManager returns a Manager.
func NewManager(opts Options) *Manager {
	if opts.Sessions == nil {
		opts.Sessions = StubSessions(session.DefaultStubOptions)
	}
	if opts.Seed == nil {
		opts.Seed = favorites.DefaultSeed
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Manager{
		opts:     opts,
		spaces:   make(map[string]*Workspace),
		lastSeen: make(map[string]time.Time),
	}
}

// Namespace is the storage namespace of clientID, which is also the
// subject of the client's API keys.
func Namespace(clientID string) string {
	return namespacePrefix + clientID
}

// Get returns the workspace for clientID, creating it on first use.
func (m *Manager) Get(clientID string) (*Workspace, error) {
	ws, dropped, err := m.get(clientID)
	if dropped != "" {
		m.evicted(context.Background(), dropped)
	}
	return ws, err
}

func (m *Manager) get(clientID string) (*Workspace, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.opts.Now()
	if ws, ok := m.spaces[clientID]; ok {
		m.lastSeen[clientID] = now
		return ws, "", nil
	}

	ns := Namespace(clientID)
	kv := storage.Namespace(m.opts.KV, ns)
	keys := session.NewKeyring(kv, ns, m.opts.Signer)
	svc, err := m.opts.Sessions(kv, keys)
	if err != nil {
		return nil, "", err
	}

	ws := &Workspace{
		ClientID:  clientID,
		Session:   svc,
		Keys:      keys,
		Favorites: favorites.NewStore(kv, m.opts.Seed),
		Prefs:     preferences.NewStore(kv, m.opts.DefaultVersion),
		reg:       m.opts.Registry,
		nav:       navigation.NewState(m.opts.DefaultTopic),
		exp:       navigation.NewExpansion(),
	}
	ws.exp.Reveal(m.opts.Registry, m.opts.DefaultTopic)

	var dropped string
	if m.opts.MaxWorkspaces > 0 && len(m.spaces) >= m.opts.MaxWorkspaces {
		dropped = m.oldestLocked()
		m.dropLocked(dropped)
	}
	m.spaces[clientID] = ws
	m.lastSeen[clientID] = now
	return ws, dropped, nil
}

func (m *Manager) oldestLocked() string {
	var (
		oldest string
		at     time.Time
	)
	for id, seen := range m.lastSeen {
		if oldest == "" || seen.Before(at) {
			oldest, at = id, seen
		}
	}
	return oldest
}

func (m *Manager) dropLocked(clientID string) {
	delete(m.spaces, clientID)
	delete(m.lastSeen, clientID)
}

func (m *Manager) evicted(ctx context.Context, clientID string) {
	if m.opts.OnEvict != nil {
		m.opts.OnEvict(ctx, clientID)
	}
}

// Evict drops the cached workspace for clientID. Persisted state stays.
func (m *Manager) Evict(clientID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropLocked(clientID)
}

// Touch marks clientID's workspace as in use. It never creates one.
func (m *Manager) Touch(clientID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.spaces[clientID]; ok {
		m.lastSeen[clientID] = m.opts.Now()
	}
}

// Sweep drops every workspace unused for longer than the idle timeout and
// returns how many went.
func (m *Manager) Sweep(ctx context.Context) int {
	if m.opts.IdleTimeout <= 0 {
		return 0
	}
	cutoff := m.opts.Now().Add(-m.opts.IdleTimeout)

	m.mu.Lock()
	var idle []string
	for id, seen := range m.lastSeen {
		if seen.Before(cutoff) {
			idle = append(idle, id)
		}
	}
	for _, id := range idle {
		m.dropLocked(id)
	}
	m.mu.Unlock()

	for _, id := range idle {
		m.evicted(ctx, id)
	}
	return len(idle)
}

// Run sweeps every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if m.opts.IdleTimeout <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			m.Sweep(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Len returns the number of cached workspaces.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.spaces)
}

// ClientID returns the client id from the request cookie, issuing a new
// one when the cookie is missing or malformed.
func (m *Manager) ClientID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}
	id := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		Secure:   m.opts.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// PeekClientID returns the cookie's client id without issuing one.
func PeekClientID(r *http.Request) string {
	if c, err := r.Cookie(CookieName); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}
	return "anonymous"
}

// FromRequest returns the requesting client's workspace.
func (m *Manager) FromRequest(w http.ResponseWriter, r *http.Request) (*Workspace, error) {
	return m.Get(m.ClientID(w, r))
}

// Verify implements apikeys.Verifier: the key must still be on its
// namespace's keyring. A successful check records the key as used.
func (m *Manager) Verify(ctx context.Context, namespace, keyID string) error {
	clientID, ok := strings.CutPrefix(namespace, namespacePrefix)
	if !ok {
		return apperr.NotFound("workspace.verify", "unknown key namespace")
	}
	ws, err := m.Get(clientID)
	if err != nil {
		return err
	}
	return ws.Keys.Touch(ctx, keyID)
}

var _ apikeys.Verifier = (*Manager)(nil)
