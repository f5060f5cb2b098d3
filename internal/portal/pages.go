package portal

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/nexus-docs/internal/favorites"
	"github.com/ziadkadry99/nexus-docs/internal/navigation"
	"github.com/ziadkadry99/nexus-docs/internal/render"
	"github.com/ziadkadry99/nexus-docs/internal/session"
	"github.com/ziadkadry99/nexus-docs/internal/workspace"
)

const suggestedTopics = 4

func shellFor(snap workspace.Snapshot) render.Shell {
	return render.Shell{
		Lang:      snap.Preferences.Language,
		Theme:     snap.Preferences.Theme,
		Version:   snap.Preferences.Version,
		Profile:   snap.Profile,
		Favorites: snap.Favorites,
		Links:     render.ServerLinks,
	}
}

func (h *Handler) handleHome(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	ws.Navigate(navigation.RouteHome, "")
	snap, err := ws.Hydrate(r.Context())
	if err != nil {
		h.writePageError(w, r, err)
		return
	}
	h.writePage(w, r, func(buf *bytes.Buffer) error {
		return h.pages.Home(buf, shellFor(snap), h.index.Suggested(suggestedTopics))
	})
}

func (h *Handler) handleDocs(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "topicID")
	if id == "" {
		id = ws.Navigation().ActiveTopic
	}
	topic, err := h.renderer.Topic(id, render.ServerLinks)
	if err != nil {
		h.writePageError(w, r, err)
		return
	}
	ws.Navigate(navigation.RouteDocs, topic.Node.ID)

	snap, err := ws.Hydrate(r.Context())
	if err != nil {
		h.writePageError(w, r, err)
		return
	}
	favorite := favorites.Contains(snap.Favorites, topic.Node.ID)
	h.writePage(w, r, func(buf *bytes.Buffer) error {
		return h.pages.Docs(buf, shellFor(snap), topic, snap.Sidebar, favorite)
	})
}

func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	route := navigation.ParseRoute(chi.URLParam(r, "route"))
	switch route {
	case navigation.RouteHome:
		http.Redirect(w, r, render.ServerLinks.Page(route), http.StatusFound)
		return
	case navigation.RouteDocs:
		h.handleDocs(w, r)
		return
	}

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	ws.Navigate(route, "")
	snap, err := ws.Hydrate(r.Context())
	if err != nil {
		h.writePageError(w, r, err)
		return
	}

	var keys []session.APIKey
	if route == navigation.RouteProfile && snap.Profile != nil {
		if keys, err = ws.Session.APIKeys(r.Context()); err != nil {
			h.writePageError(w, r, err)
			return
		}
	}
	h.writePage(w, r, func(buf *bytes.Buffer) error {
		return h.pages.Page(buf, shellFor(snap), navigation.PageFor(route), keys)
	})
}

// writePage renders into a buffer first so a template failure still
// produces a clean 500.
func (h *Handler) writePage(w http.ResponseWriter, r *http.Request, draw func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := draw(&buf); err != nil {
		h.writePageError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (h *Handler) writePageError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("rendering page failed", zap.String("path", r.URL.Path), zap.Error(err))
	http.Error(w, "Something went wrong. Please try again.", http.StatusInternalServerError)
}
