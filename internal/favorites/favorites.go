// Package favorites stores the reader's starred topics.
package favorites

import (
	"context"
	"sync"

	"github.com/ziadkadry99/nexus-docs/internal/apperr"
	"github.com/ziadkadry99/nexus-docs/internal/content"
	"github.com/ziadkadry99/nexus-docs/internal/storage"
)

// Item is a starred topic.
type Item struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Path        string `json:"path"`
	Description string `json:"description,omitempty"`
}

// KeyPrefix is the storage key prefix; the scope follows a colon.
const KeyPrefix = "nexus_favorites"

// LocalScope holds favorites of anonymous readers.
const LocalScope = "local"

// UserScope returns the scope holding a signed-in user's favorites.
func UserScope(userID string) string { return "user:" + userID }

// Key returns the storage key for scope.
func Key(scope string) string { return KeyPrefix + ":" + scope }

// DefaultSeed is what a reader starts with before starring anything.
var DefaultSeed = []Item{
	{ID: "install", Title: "Installation", Path: "docs", Description: "Getting Started > Installation"},
}

// ItemFor builds the item the star button toggles for a resolved topic.
func ItemFor(res content.Resolution) Item {
	return Item{
		ID:          res.Node.ID,
		Title:       res.Node.Label,
		Path:        "docs",
		Description: res.Description(),
	}
}

// Toggle returns a new list: when an item with the same id is present
// every such item is removed, otherwise item is appended. The input is
// not modified and the order of remaining items is preserved.
func Toggle(list []Item, item Item) (out []Item, added bool) {
	out = make([]Item, 0, len(list)+1)
	for _, f := range list {
		if f.ID != item.ID {
			out = append(out, f)
		}
	}
	if len(out) == len(list) {
		return append(out, item), true
	}
	return out, false
}

// Contains reports whether list has an item with id.
func Contains(list []Item, id string) bool {
	for _, f := range list {
		if f.ID == id {
			return true
		}
	}
	return false
}

// Store persists favorite lists per scope.
type Store struct {
	kv   storage.KV
	seed []Item

	mu sync.Mutex
}

// NewStore creates a store over kv. A nil seed means no initial favorites.
func NewStore(kv storage.KV, seed []Item) *Store {
	return &Store{kv: kv, seed: seed}
}

// List returns the favorites for scope. A missing or unreadable value
// yields a copy of the seed list.
func (s *Store) List(ctx context.Context, scope string) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, scope)
}

func (s *Store) load(ctx context.Context, scope string) ([]Item, error) {
	var list []Item
	ok, err := storage.GetJSON(ctx, s.kv, Key(scope), &list)
	if err != nil {
		return nil, err
	}
	if !ok {
		list = append([]Item{}, s.seed...)
	}
	if list == nil {
		list = []Item{}
	}
	return list, nil
}

// Toggle adds or removes item and returns the new list and whether the
// item was added.
func (s *Store) Toggle(ctx context.Context, scope string, item Item) ([]Item, bool, error) {
	if item.ID == "" {
		return nil, false, apperr.Validation("favorites.toggle", "favorite id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(ctx, scope)
	if err != nil {
		return nil, false, err
	}
	next, added := Toggle(list, item)
	if err := storage.SetJSON(ctx, s.kv, Key(scope), next); err != nil {
		return nil, false, err
	}
	return next, added, nil
}

// Contains reports whether id is a favorite in scope.
func (s *Store) Contains(ctx context.Context, scope, id string) (bool, error) {
	list, err := s.List(ctx, scope)
	if err != nil {
		return false, err
	}
	return Contains(list, id), nil
}

// Reset drops the stored list so the scope starts over from the seed.
func (s *Store) Reset(ctx context.Context, scope string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Delete(ctx, Key(scope))
}
