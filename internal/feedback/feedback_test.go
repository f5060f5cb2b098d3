package feedback

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/nexus-docs/internal/apperr"
	"github.com/ziadkadry99/nexus-docs/internal/db"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestSubmitFeedback(t *testing.T) {
	store := setupStore(t)
	ctx := t.Context()

	sub, err := store.SubmitFeedback(ctx, FeedbackRequest{Message: "  The install page is great  ", Page: "install", Rating: 5})
	if err != nil {
		t.Fatal(err)
	}
	if sub.ID == "" || sub.Kind != KindFeedback || sub.Message != "The install page is great" {
		t.Errorf("unexpected submission %+v", sub)
	}

	list, err := store.List(ctx, ListFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Page != "install" || list[0].Rating != 5 {
		t.Errorf("unexpected list %+v", list)
	}
}

func TestSubmitFeedbackValidation(t *testing.T) {
	store := setupStore(t)
	tests := []struct {
		name string
		req  FeedbackRequest
		want string
	}{
		{"blank message", FeedbackRequest{Message: "   "}, "message: this field is required"},
		{"rating out of range", FeedbackRequest{Message: "ok", Rating: 9}, "rating: must be at most 5"},
		{"long message", FeedbackRequest{Message: strings.Repeat("x", 5001)}, "message: must be at most 5000 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.SubmitFeedback(t.Context(), tt.req)
			if !apperr.IsKind(err, apperr.KindValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if !strings.Contains(apperr.Message(err), tt.want) {
				t.Errorf("message %q does not mention %q", apperr.Message(err), tt.want)
			}
		})
	}
}

func TestSubmitContact(t *testing.T) {
	store := setupStore(t)
	ctx := t.Context()

	_, err := store.SubmitContact(ctx, ContactRequest{FirstName: "Jane", LastName: "Doe", Email: "not-an-email", Message: "hi"})
	if !apperr.IsKind(err, apperr.KindValidation) || !strings.Contains(apperr.Message(err), "email:") {
		t.Fatalf("expected email validation error, got %v", err)
	}

	sub, err := store.SubmitContact(ctx, ContactRequest{FirstName: "Jane", LastName: "Doe", Email: "jane@company.com", Message: "Pricing?"})
	if err != nil {
		t.Fatal(err)
	}
	if sub.Name != "Jane Doe" || sub.Kind != KindContact {
		t.Errorf("unexpected submission %+v", sub)
	}

	store.SubmitFeedback(ctx, FeedbackRequest{Message: "x"})
	contacts, _ := store.List(ctx, ListFilter{Kind: KindContact})
	if len(contacts) != 1 {
		t.Errorf("expected 1 contact, got %d", len(contacts))
	}
	limited, _ := store.List(ctx, ListFilter{Limit: 1})
	if len(limited) != 1 {
		t.Errorf("expected limit to apply, got %d", len(limited))
	}
}

func TestRoutes(t *testing.T) {
	store := setupStore(t)
	r := chi.NewRouter()
	RegisterRoutes(r, store)
	r.Route("/admin", func(r chi.Router) { RegisterListRoute(r, store) })

	post := func(path, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body)))
		return w
	}

	if w := post("/api/feedback", `{"message":"nice","page":"intro"}`); w.Code != http.StatusCreated {
		t.Errorf("feedback: expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w := post("/api/contact", `{"first_name":"Jane"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("contact: expected 400, got %d", w.Code)
	}
	var body map[string]string
	json.NewDecoder(w.Body).Decode(&body)
	if body["kind"] != "validation" || !strings.Contains(body["error"], "last_name") {
		t.Errorf("unexpected error body %v", body)
	}

	if w := post("/api/feedback", `{`); w.Code != http.StatusBadRequest {
		t.Errorf("malformed body: expected 400, got %d", w.Code)
	}

	lw := httptest.NewRecorder()
	r.ServeHTTP(lw, httptest.NewRequest(http.MethodGet, "/admin/feedback?kind=feedback", nil))
	var subs []Submission
	json.NewDecoder(lw.Body).Decode(&subs)
	if len(subs) != 1 {
		t.Errorf("expected 1 listed submission, got %d", len(subs))
	}
}
