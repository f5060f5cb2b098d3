// Package chat serves the support chat widget over a websocket and keeps
// each conversation's transcript.
package chat

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/ziadkadry99/nexus-docs/internal/apperr"
	"github.com/ziadkadry99/nexus-docs/internal/assistant"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// chatRequest is the incoming websocket message.
type chatRequest struct {
	Type      string `json:"type"`       // "message" or "reset"
	SessionID string `json:"session_id"` // empty starts a new transcript
	Content   string `json:"content"`
}

// chatResponse is the outgoing websocket message.
type chatResponse struct {
	Type      string        `json:"type"` // "response" or "error"
	SessionID string        `json:"session_id"`
	Content   string        `json:"content"`
	HTML      template.HTML `json:"html,omitempty"`
}

type transcriptMessage struct {
	Role string        `json:"role"`
	Text string        `json:"text"`
	HTML template.HTML `json:"html"`
}

// Handler serves the chat endpoints.
type Handler struct {
	store     *Store
	assistant *assistant.Assistant
	logger    *zap.Logger

	// ClientID names the caller. Transcripts belong to the client that
	// started them. It defaults to "anonymous".
	ClientID func(r *http.Request) string
	// Touch, when set, runs for every chat message so an active
	// conversation keeps the client's workspace alive.
	Touch func(clientID string)
}

// NewHandler creates a chat handler.
func NewHandler(store *Store, a *assistant.Assistant, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: store, assistant: a, logger: logger}
}

// RegisterRoutes mounts the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/chat", h.handleWebSocket)
	r.Get("/api/chat/prompts", h.handlePrompts)
	r.Get("/api/chat/sessions/{id}", h.handleTranscript)
}

func (h *Handler) clientID(r *http.Request) string {
	if h.ClientID == nil {
		return "anonymous"
	}
	return h.ClientID(r)
}

func (h *Handler) touch(clientID string) {
	if h.Touch != nil {
		h.Touch(clientID)
	}
}

// owned returns the session with id when clientID started it. Other
// clients' sessions read as not found.
func (h *Handler) owned(ctx context.Context, clientID, id string) (*Session, error) {
	sess, err := h.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.ClientID != clientID {
		return nil, apperr.NotFound("chat.owned", "chat session not found")
	}
	return sess, nil
}

func (h *Handler) handlePrompts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"welcome":      assistant.Welcome,
		"welcome_html": assistant.Render(assistant.Welcome),
		"prompts":      assistant.SuggestedPrompts,
		"available":    h.assistant.Available(),
	})
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	if _, err := h.owned(ctx, h.clientID(r), id); err != nil {
		h.writeError(w, err)
		return
	}
	turns, err := h.store.History(ctx, id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	out := make([]transcriptMessage, 0, len(turns))
	for _, t := range turns {
		out = append(out, transcriptMessage{Role: string(t.Role), Text: t.Text, HTML: assistant.Render(t.Text)})
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	msg := apperr.Message(err)
	if apperr.KindOf(err) == apperr.KindInternal {
		h.logger.Error("chat request failed", zap.Error(err))
		msg = "internal error"
	}
	writeJSON(w, apperr.HTTPStatus(err), map[string]string{
		"error": msg,
		"kind":  string(apperr.KindOf(err)),
	})
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	clientID := h.clientID(r)

	// Reads happen on their own goroutine so that a disconnect cancels the
	// model call in flight.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	reqs := make(chan *chatRequest)
	go func() {
		defer cancel()
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					h.logger.Debug("websocket read failed", zap.Error(err))
				}
				return
			}
			var req chatRequest
			var next *chatRequest
			if err := json.Unmarshal(msg, &req); err == nil {
				next = &req
			}
			select {
			case reqs <- next:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case req := <-reqs:
			if req == nil {
				h.sendError(conn, "", "invalid message format")
				continue
			}
			switch req.Type {
			case "message":
				h.handleChatMessage(ctx, conn, clientID, *req)
			case "reset":
				h.handleReset(ctx, conn, clientID, *req)
			default:
				h.sendError(conn, req.SessionID, "unknown message type: "+req.Type)
			}
		}
	}
}

func (h *Handler) handleChatMessage(ctx context.Context, conn *websocket.Conn, clientID string, req chatRequest) {
	if req.Content == "" {
		h.sendError(conn, req.SessionID, "content is required")
		return
	}
	h.touch(clientID)

	sessionID, history, err := h.openSession(ctx, clientID, req.SessionID)
	if err != nil {
		h.sendError(conn, req.SessionID, "failed to open session")
		return
	}

	reply := h.assistant.Chat(ctx, req.Content, history)
	if ctx.Err() != nil {
		return
	}

	err = h.store.Append(ctx, sessionID,
		assistant.Turn{Role: assistant.RoleUser, Text: req.Content},
		assistant.Turn{Role: assistant.RoleAssistant, Text: reply},
	)
	if err != nil {
		h.logger.Warn("saving chat turn failed", zap.String("session_id", sessionID), zap.Error(err))
	}

	h.sendResponse(conn, chatResponse{
		Type:      "response",
		SessionID: sessionID,
		Content:   reply,
		HTML:      assistant.Render(reply),
	})
}

func (h *Handler) handleReset(ctx context.Context, conn *websocket.Conn, clientID string, req chatRequest) {
	h.touch(clientID)
	sessionID := req.SessionID
	_, err := h.owned(ctx, clientID, sessionID)
	if err == nil {
		err = h.store.Reset(ctx, sessionID)
	}
	if apperr.IsKind(err, apperr.KindNotFound) {
		var sess *Session
		sess, err = h.store.CreateSession(ctx, clientID)
		if err == nil {
			sessionID = sess.ID
		}
	}
	if err != nil {
		h.logger.Warn("resetting chat failed", zap.String("session_id", sessionID), zap.Error(err))
		h.sendError(conn, req.SessionID, "failed to reset session")
		return
	}
	h.sendResponse(conn, chatResponse{
		Type:      "response",
		SessionID: sessionID,
		Content:   assistant.Welcome,
		HTML:      assistant.Render(assistant.Welcome),
	})
}

// openSession loads the transcript for id, starting a new one unless id
// names one of clientID's sessions.
func (h *Handler) openSession(ctx context.Context, clientID, id string) (string, []assistant.Turn, error) {
	if id != "" {
		_, err := h.owned(ctx, clientID, id)
		if err == nil {
			var history []assistant.Turn
			if history, err = h.store.History(ctx, id); err == nil {
				return id, history, nil
			}
		}
		if !apperr.IsKind(err, apperr.KindNotFound) {
			h.logger.Warn("loading chat history failed", zap.String("session_id", id), zap.Error(err))
			return "", nil, err
		}
	}
	sess, err := h.store.CreateSession(ctx, clientID)
	if err != nil {
		h.logger.Warn("creating chat session failed", zap.Error(err))
		return "", nil, err
	}
	history, err := h.store.History(ctx, sess.ID)
	if err != nil {
		return "", nil, err
	}
	return sess.ID, history, nil
}

func (h *Handler) sendResponse(conn *websocket.Conn, resp chatResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		h.logger.Debug("websocket write failed", zap.Error(err))
	}
}

func (h *Handler) sendError(conn *websocket.Conn, sessionID, message string) {
	h.sendResponse(conn, chatResponse{Type: "error", SessionID: sessionID, Content: message})
}
