// Package storage holds the key-value layer that stands in for browser
// local storage. Every client gets its own namespace; values are opaque
// bytes, usually JSON.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// KV is a minimal key-value store.
type KV interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Namespaced prefixes every key with ns and a colon.
type Namespaced struct {
	kv     KV
	prefix string
}

// Namespace returns a view of kv where all keys live under ns.
func Namespace(kv KV, ns string) *Namespaced {
	return &Namespaced{kv: kv, prefix: ns + ":"}
}

func (n *Namespaced) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return n.kv.Get(ctx, n.prefix+key)
}

func (n *Namespaced) Set(ctx context.Context, key string, value []byte) error {
	return n.kv.Set(ctx, n.prefix+key, value)
}

func (n *Namespaced) Delete(ctx context.Context, key string) error {
	return n.kv.Delete(ctx, n.prefix+key)
}

// Prefix returns the namespace prefix without the trailing colon.
func (n *Namespaced) Prefix() string { return strings.TrimSuffix(n.prefix, ":") }

// GetJSON decodes the value at key into v. A missing key or a value that
// does not decode both report ok=false with a nil error; only backend
// failures are returned as errors.
func GetJSON(ctx context.Context, kv KV, key string, v any) (bool, error) {
	data, ok, err := kv.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, nil
	}
	return true, nil
}

// SetJSON encodes v and stores it at key.
func SetJSON(ctx context.Context, kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
