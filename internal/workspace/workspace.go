// Package workspace holds the per-client application context: the state a
// browser would keep in local storage, plus in-memory navigation.
//
// A client is identified by the nexus_client cookie. Its workspace owns a
// storage namespace shared by the identity backend, the API keyring, the
// favorites store and the preferences store.
package workspace

import (
	"context"
	"sync"

	"github.com/ziadkadry99/nexus-docs/internal/content"
	"github.com/ziadkadry99/nexus-docs/internal/favorites"
	"github.com/ziadkadry99/nexus-docs/internal/navigation"
	"github.com/ziadkadry99/nexus-docs/internal/preferences"
	"github.com/ziadkadry99/nexus-docs/internal/session"
)

// Workspace is one client's context. It is safe for concurrent use.
type Workspace struct {
	ClientID  string
	Session   session.Service
	Keys      *session.Keyring
	Favorites *favorites.Store
	Prefs     *preferences.Store

	reg *content.Registry

	mu      sync.Mutex
	nav     navigation.State
	exp     *navigation.Expansion
	profile *session.Profile
}

// Snapshot is everything the shell needs to draw a page.
type Snapshot struct {
	ClientID    string                      `json:"client_id"`
	Profile     *session.Profile            `json:"user"`
	Preferences preferences.Preferences     `json:"preferences"`
	Navigation  navigation.State            `json:"navigation"`
	Favorites   []favorites.Item            `json:"favorites"`
	Sidebar     []navigation.SidebarSection `json:"sidebar"`
}

// Hydrate loads the persisted profile and preferences. It runs once per
// page load.
func (w *Workspace) Hydrate(ctx context.Context) (Snapshot, error) {
	profile, err := w.Session.CurrentUser(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	prefs, err := w.Prefs.Get(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	w.mu.Lock()
	w.profile = profile
	scope := w.scopeLocked()
	nav := w.nav
	sidebar := navigation.Sidebar(w.reg, w.nav, w.exp)
	w.mu.Unlock()

	favs, err := w.Favorites.List(ctx, scope)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		ClientID:    w.ClientID,
		Profile:     profile,
		Preferences: prefs,
		Navigation:  nav,
		Favorites:   favs,
		Sidebar:     sidebar,
	}, nil
}

// SignedIn records the profile a login, signup or profile update returned.
func (w *Workspace) SignedIn(p session.Profile) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.profile = &p
}

// Profile returns the active profile, or nil.
func (w *Workspace) Profile() *session.Profile {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.profile
}

// Teardown ends the session: the identity backend forgets the profile,
// favorites go back to the local scope and the reader lands on the home
// page.
func (w *Workspace) Teardown(ctx context.Context) error {
	if err := w.Session.Logout(ctx); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.profile = nil
	w.nav = w.nav.Navigate(navigation.RouteHome, "")
	return nil
}

// FavoritesScope is the scope favorites are read from and toggled in: the
// signed-in user's, or the local one. It reflects the profile last seen by
// Hydrate, SignedIn or a favorites call.
func (w *Workspace) FavoritesScope() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.scopeLocked()
}

func (w *Workspace) scopeLocked() string {
	if w.profile != nil {
		return favorites.UserScope(w.profile.ID)
	}
	return favorites.LocalScope
}

// activeScope re-reads the stored session, so a workspace rebuilt after a
// restart or an eviction still lands in the signed-in user's scope.
func (w *Workspace) activeScope(ctx context.Context) (string, error) {
	profile, err := w.Session.CurrentUser(ctx)
	if err != nil {
		return "", err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.profile = profile
	return w.scopeLocked(), nil
}

// ToggleFavorite toggles item in the active scope.
func (w *Workspace) ToggleFavorite(ctx context.Context, item favorites.Item) ([]favorites.Item, bool, error) {
	scope, err := w.activeScope(ctx)
	if err != nil {
		return nil, false, err
	}
	return w.Favorites.Toggle(ctx, scope, item)
}

// ListFavorites lists the active scope's favorites.
func (w *Workspace) ListFavorites(ctx context.Context) ([]favorites.Item, error) {
	scope, err := w.activeScope(ctx)
	if err != nil {
		return nil, err
	}
	return w.Favorites.List(ctx, scope)
}

// Navigation returns the current navigation state.
func (w *Workspace) Navigation() navigation.State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.nav
}

// Navigate moves to route, optionally selecting topic. Opening a topic
// reveals it in the sidebar.
func (w *Workspace) Navigate(r navigation.Route, topic string) navigation.State {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nav = w.nav.Navigate(r, topic)
	if w.nav.Page == navigation.RouteDocs {
		w.exp.Reveal(w.reg, w.nav.ActiveTopic)
	}
	return w.nav
}

// Select handles a click on a sidebar entry.
func (w *Workspace) Select(id string) navigation.State {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nav = navigation.Select(w.reg, w.nav, w.exp, id)
	return w.nav
}

// ToggleExpanded flips a sidebar parent open or closed and reports whether
// anything changed.
func (w *Workspace) ToggleExpanded(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.exp.Toggle(w.reg, id)
}

// Sidebar renders the sidebar for the current state.
func (w *Workspace) Sidebar() []navigation.SidebarSection {
	w.mu.Lock()
	defer w.mu.Unlock()
	return navigation.Sidebar(w.reg, w.nav, w.exp)
}

// Expanded lists the expanded sidebar parents.
func (w *Workspace) Expanded() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.exp.Expanded()
}
