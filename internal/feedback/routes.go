package feedback

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/nexus-docs/internal/apperr"
)

// RegisterRoutes mounts the public submission routes.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Post("/api/feedback", handleFeedback(store))
	r.Post("/api/contact", handleContact(store))
}

// RegisterListRoute mounts the listing route. Callers put it behind
// authentication.
func RegisterListRoute(r chi.Router, store *Store) {
	r.Get("/feedback", handleList(store))
}

func handleFeedback(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req FeedbackRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		sub, err := store.SubmitFeedback(r.Context(), req)
		writeResult(w, sub, err)
	}
}

func handleContact(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ContactRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		sub, err := store.SubmitContact(r.Context(), req)
		writeResult(w, sub, err)
	}
}

func handleList(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := ListFilter{Kind: Kind(r.URL.Query().Get("kind"))}
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				filter.Limit = n
			}
		}
		subs, err := store.List(r.Context(), filter)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(subs)
	}
}

func writeResult(w http.ResponseWriter, sub *Submission, err error) {
	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		w.WriteHeader(apperr.HTTPStatus(err))
		json.NewEncoder(w).Encode(map[string]string{
			"error": apperr.Message(err),
			"kind":  string(apperr.KindOf(err)),
		})
		return
	}
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(sub)
}
