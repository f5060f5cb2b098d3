package portal

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/nexus-docs/internal/apperr"
	"github.com/ziadkadry99/nexus-docs/internal/favorites"
	"github.com/ziadkadry99/nexus-docs/internal/i18n"
	"github.com/ziadkadry99/nexus-docs/internal/navigation"
	"github.com/ziadkadry99/nexus-docs/internal/preferences"
	"github.com/ziadkadry99/nexus-docs/internal/render"
)

type topicResponse struct {
	*render.Topic
	Fallback bool `json:"fallback"`
}

type navigateRequest struct {
	Page    string `json:"page" validate:"max=64"`
	TopicID string `json:"topic_id" validate:"max=128"`
	// Select applies a sidebar click instead of a plain navigation.
	Select string `json:"select" validate:"max=128"`
}

type navigationResponse struct {
	State    navigation.State            `json:"state"`
	Page     navigation.Page             `json:"page"`
	Sidebar  []navigation.SidebarSection `json:"sidebar"`
	Expanded []string                    `json:"expanded"`
}

type favoriteRequest struct {
	ID          string `json:"id" validate:"required,max=128"`
	Title       string `json:"title" validate:"max=200"`
	Path        string `json:"path" validate:"max=64"`
	Description string `json:"description" validate:"max=500"`
}

func (h *Handler) handleRegistry(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"default_topic": h.reg.DefaultID(),
		"sections":      h.reg.Sections(),
	})
}

func (h *Handler) handleTopic(w http.ResponseWriter, r *http.Request) {
	topic, err := h.renderer.Topic(chi.URLParam(r, "id"), render.ServerLinks)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, topicResponse{Topic: topic, Fallback: !topic.Found})
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.reg.Has(id) {
		h.writeError(w, r, apperr.NotFound("portal.summary", "topic not found"))
		return
	}
	summary := h.assistant.Summarize(r.Context(), string(h.reg.Body(id)))
	writeJSON(w, http.StatusOK, map[string]string{
		"topic_id": id,
		"summary":  summary,
	})
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	results := h.index.Search(q)
	if h.metrics != nil {
		h.metrics.SearchQueries.Inc()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"query":   q,
		"results": results,
	})
}

func (h *Handler) handleMessages(w http.ResponseWriter, r *http.Request) {
	lang, ok := i18n.ParseLang(chi.URLParam(r, "lang"))
	if !ok {
		h.writeError(w, r, apperr.NotFound("portal.messages", "unsupported language"))
		return
	}
	writeJSON(w, http.StatusOK, h.catalog.Messages(lang))
}

func (h *Handler) handleGetNavigation(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	h.writeNavigation(w, ws.Navigation(), ws.Sidebar(), ws.Expanded())
}

func (h *Handler) handleNavigate(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	var req navigateRequest
	if !h.decodeValid(w, r, "portal.navigate", &req) {
		return
	}

	var state navigation.State
	if req.Select != "" {
		state = ws.Select(req.Select)
	} else {
		state = ws.Navigate(navigation.ParseRoute(req.Page), req.TopicID)
	}
	h.writeNavigation(w, state, ws.Sidebar(), ws.Expanded())
}

func (h *Handler) handleExpand(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	if !ws.ToggleExpanded(id) {
		h.writeError(w, r, apperr.Validation("portal.expand", "topic has no children"))
		return
	}
	h.writeNavigation(w, ws.Navigation(), ws.Sidebar(), ws.Expanded())
}

func (h *Handler) writeNavigation(w http.ResponseWriter, s navigation.State, sidebar []navigation.SidebarSection, expanded []string) {
	writeJSON(w, http.StatusOK, navigationResponse{
		State:    s,
		Page:     navigation.PageFor(s.Page),
		Sidebar:  sidebar,
		Expanded: expanded,
	})
}

func (h *Handler) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	list, err := ws.ListFavorites(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"favorites": list})
}

func (h *Handler) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	var req favoriteRequest
	if !h.decodeValid(w, r, "portal.favorite", &req) {
		return
	}

	item := favorites.Item{ID: req.ID, Title: req.Title, Path: req.Path, Description: req.Description}
	// Topics are described by the registry, whatever the client sent.
	if res := h.reg.Resolve(req.ID); res.Found {
		item = favorites.ItemFor(res)
	}

	list, added, err := ws.ToggleFavorite(r.Context(), item)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if h.metrics != nil {
		h.metrics.ObserveFavoriteToggle(added)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"favorites": list,
		"added":     added,
	})
}

func (h *Handler) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	prefs, err := ws.Prefs.Get(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writePreferences(w, prefs)
}

func (h *Handler) handleSetPreferences(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	var req preferences.Update
	if err := decodeJSON(r, "portal.preferences", &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	prefs, err := ws.Prefs.Set(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writePreferences(w, prefs)
}

func writePreferences(w http.ResponseWriter, p preferences.Preferences) {
	writeJSON(w, http.StatusOK, map[string]any{
		"preferences": p,
		"versions":    preferences.Versions,
		"languages":   i18n.Langs,
	})
}
