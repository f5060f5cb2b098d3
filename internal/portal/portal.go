// Package portal serves the documentation browser: server-rendered pages
// and the JSON API behind their interactive parts.
package portal

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/nexus-docs/internal/apikeys"
	"github.com/ziadkadry99/nexus-docs/internal/apperr"
	"github.com/ziadkadry99/nexus-docs/internal/assistant"
	"github.com/ziadkadry99/nexus-docs/internal/content"
	"github.com/ziadkadry99/nexus-docs/internal/feedback"
	"github.com/ziadkadry99/nexus-docs/internal/i18n"
	"github.com/ziadkadry99/nexus-docs/internal/metrics"
	"github.com/ziadkadry99/nexus-docs/internal/render"
	"github.com/ziadkadry99/nexus-docs/internal/search"
	"github.com/ziadkadry99/nexus-docs/internal/workspace"
)

// Options wires a Handler.
type Options struct {
	Registry   *content.Registry
	Index      *search.Index
	Catalog    *i18n.Catalog
	Assistant  *assistant.Assistant
	Workspaces *workspace.Manager
	Feedback   *feedback.Store
	Signer     *apikeys.Signer
	// Metrics is optional.
	Metrics *metrics.Collector
	Logger  *zap.Logger
}

// Handler serves the portal routes.
type Handler struct {
	reg       *content.Registry
	renderer  *render.Renderer
	pages     *render.Pages
	index     *search.Index
	catalog   *i18n.Catalog
	assistant *assistant.Assistant
	spaces    *workspace.Manager
	feedback  *feedback.Store
	signer    *apikeys.Signer
	metrics   *metrics.Collector
	logger    *zap.Logger
}

// New creates a Handler.
func New(opts Options) (*Handler, error) {
	pages, err := render.NewPages(opts.Catalog)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		reg:       opts.Registry,
		renderer:  render.NewRenderer(opts.Registry),
		pages:     pages,
		index:     opts.Index,
		catalog:   opts.Catalog,
		assistant: opts.Assistant,
		spaces:    opts.Workspaces,
		feedback:  opts.Feedback,
		signer:    opts.Signer,
		metrics:   opts.Metrics,
		logger:    logger,
	}, nil
}

// RegisterRoutes mounts pages, assets and the JSON API.
func (h *Handler) RegisterRoutes(r chi.Router) {
	// Pages
	r.Get("/", h.handleHome)
	r.Get("/docs", h.handleDocs)
	r.Get("/docs/{topicID}", h.handleDocs)
	r.Get("/page/{route}", h.handlePage)
	r.Get("/"+render.StylesheetPath, h.handleAsset(render.StylesheetPath, "text/css; charset=utf-8"))
	r.Get("/"+render.ScriptPath, h.handleAsset(render.ScriptPath, "text/javascript; charset=utf-8"))

	// Content
	r.Get("/api/registry", h.handleRegistry)
	r.Get("/api/topics/{id}", h.handleTopic)
	r.Get("/api/topics/{id}/summary", h.handleSummary)
	r.Get("/api/search", h.handleSearch)
	r.Get("/api/i18n/{lang}", h.handleMessages)

	// Per-client state
	r.Get("/api/navigation", h.handleGetNavigation)
	r.Post("/api/navigation", h.handleNavigate)
	r.Post("/api/navigation/expand/{id}", h.handleExpand)
	r.Get("/api/favorites", h.handleListFavorites)
	r.Post("/api/favorites", h.handleToggleFavorite)
	r.Get("/api/preferences", h.handleGetPreferences)
	r.Put("/api/preferences", h.handleSetPreferences)

	// Session and keys
	r.Get("/api/session", h.handleSession)
	r.Post("/api/session/login", h.handleLogin)
	r.Post("/api/session/signup", h.handleSignup)
	r.Post("/api/session/social/{provider}", h.handleSocial)
	r.Post("/api/session/logout", h.handleLogout)
	r.Patch("/api/session/profile", h.handleUpdateProfile)
	r.Get("/api/keys", h.handleListKeys)
	r.Post("/api/keys", h.handleCreateKey)
	r.Delete("/api/keys/{id}", h.handleRevokeKey)

	feedback.RegisterRoutes(r, h.feedback)

	// Programmatic access
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(apikeys.Middleware(h.signer, h.spaces))
		r.Get("/search", h.handleSearch)
		r.Get("/topics/{id}", h.handleTopic)
		feedback.RegisterListRoute(r, h.feedback)
	})
}

func (h *Handler) handleAsset(name, contentType string) http.HandlerFunc {
	body := render.Assets()[name]
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Write([]byte(body))
	}
}

// workspace resolves the caller's workspace, issuing a client cookie on
// first contact.
func (h *Handler) workspace(w http.ResponseWriter, r *http.Request) (*workspace.Workspace, bool) {
	ws, err := h.spaces.FromRequest(w, r)
	if err != nil {
		h.writeError(w, r, err)
		return nil, false
	}
	return ws, true
}

func (h *Handler) observeSession(event string) {
	if h.metrics != nil {
		h.metrics.ObserveSession(event)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	msg := apperr.Message(err)
	if apperr.KindOf(err) == apperr.KindInternal {
		msg = "internal error"
	}
	writeJSON(w, status, map[string]string{
		"error": msg,
		"kind":  string(apperr.KindOf(err)),
	})
}

func decodeJSON(r *http.Request, op string, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.Validation(op, "invalid request body")
	}
	return nil
}
