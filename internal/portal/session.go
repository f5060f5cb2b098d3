package portal

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/nexus-docs/internal/session"
	"github.com/ziadkadry99/nexus-docs/internal/validate"
	"github.com/ziadkadry99/nexus-docs/internal/workspace"
)

// Required fields are checked by the identity backend so its messages
// reach the reader unchanged. These tags only bound sizes.
type loginRequest struct {
	Email    string `json:"email" validate:"max=254"`
	Password string `json:"password" validate:"max=256"`
}

type signupRequest struct {
	Name     string `json:"name" validate:"max=100"`
	Email    string `json:"email" validate:"max=254"`
	Password string `json:"password" validate:"max=256"`
}

type profileRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1,max=100"`
	Email  *string `json:"email" validate:"omitempty,email,max=254"`
	Avatar *string `json:"avatar" validate:"omitempty,url,max=2048"`
}

type createKeyRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	snap, err := ws.Hydrate(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	var req loginRequest
	if !h.decodeValid(w, r, "portal.login", &req) {
		return
	}
	p, err := ws.Session.Login(r.Context(), req.Email, req.Password)
	h.signedIn(w, r, ws, "login", p, err)
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	var req signupRequest
	if !h.decodeValid(w, r, "portal.signup", &req) {
		return
	}
	p, err := ws.Session.Signup(r.Context(), req.Name, req.Email, req.Password)
	h.signedIn(w, r, ws, "signup", p, err)
}

func (h *Handler) handleSocial(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	provider, err := session.ParseProvider(chi.URLParam(r, "provider"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	p, err := ws.Session.LoginWithSocial(r.Context(), provider)
	var redirect *session.RedirectError
	if errors.As(err, &redirect) {
		writeJSON(w, http.StatusOK, map[string]string{"redirect_url": redirect.URL})
		return
	}
	h.signedIn(w, r, ws, "social", p, err)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	if err := ws.Teardown(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.observeSession("logout")
	writeJSON(w, http.StatusOK, map[string]any{"user": nil, "navigation": ws.Navigation()})
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	var req profileRequest
	if !h.decodeValid(w, r, "portal.profile", &req) {
		return
	}
	p, err := ws.Session.UpdateProfile(r.Context(), session.ProfileUpdate{
		Name:   req.Name,
		Email:  req.Email,
		Avatar: req.Avatar,
	})
	h.signedIn(w, r, ws, "profile_update", p, err)
}

// signedIn finishes any call that returns the active profile.
func (h *Handler) signedIn(w http.ResponseWriter, r *http.Request, ws *workspace.Workspace, event string, p session.Profile, err error) {
	if err != nil {
		h.observeSession(event + "_failed")
		h.writeError(w, r, err)
		return
	}
	ws.SignedIn(p)
	h.observeSession(event)
	writeJSON(w, http.StatusOK, map[string]any{"user": p})
}

// requireProfile reports whether the caller is signed in, answering 401
// when not. API keys belong to signed-in readers only.
func (h *Handler) requireProfile(w http.ResponseWriter, r *http.Request) (*workspace.Workspace, bool) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return nil, false
	}
	p, err := ws.Session.CurrentUser(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return nil, false
	}
	if p == nil {
		h.writeError(w, r, session.ErrNoSession)
		return nil, false
	}
	return ws, true
}

func (h *Handler) handleListKeys(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.requireProfile(w, r)
	if !ok {
		return
	}
	keys, err := ws.Session.APIKeys(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"keys": keys})
}

func (h *Handler) handleCreateKey(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.requireProfile(w, r)
	if !ok {
		return
	}
	var req createKeyRequest
	if !h.decodeValid(w, r, "portal.create_key", &req) {
		return
	}
	rec, secret, err := ws.Session.CreateAPIKey(r.Context(), req.Name)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.observeSession("key_created")
	writeJSON(w, http.StatusCreated, map[string]any{"key": rec, "secret": secret})
}

func (h *Handler) handleRevokeKey(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.requireProfile(w, r)
	if !ok {
		return
	}
	if err := ws.Session.RevokeAPIKey(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.observeSession("key_revoked")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) decodeValid(w http.ResponseWriter, r *http.Request, op string, v any) bool {
	if err := decodeJSON(r, op, v); err != nil {
		h.writeError(w, r, err)
		return false
	}
	if err := validate.Struct(op, v); err != nil {
		h.writeError(w, r, err)
		return false
	}
	return true
}
