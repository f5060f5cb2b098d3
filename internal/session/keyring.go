package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/nexus-docs/internal/apikeys"
	"github.com/ziadkadry99/nexus-docs/internal/apperr"
	"github.com/ziadkadry99/nexus-docs/internal/storage"
)

// APIKey describes an issued key. The secret is never part of it.
type APIKey struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Prefix    string     `json:"prefix"`
	CreatedAt time.Time  `json:"createdAt"`
	LastUsed  *time.Time `json:"lastUsed"`
}

// Keyring stores the API key records of one storage namespace.
type Keyring struct {
	kv        storage.KV
	namespace string
	signer    *apikeys.Signer
	now       func() time.Time

	mu sync.Mutex
}

// NewKeyring returns the keyring for namespace. Secrets are minted by signer.
func NewKeyring(kv storage.KV, namespace string, signer *apikeys.Signer) *Keyring {
	return &Keyring{kv: kv, namespace: namespace, signer: signer, now: time.Now}
}

func (k *Keyring) load(ctx context.Context) ([]APIKey, error) {
	var keys []APIKey
	if _, err := storage.GetJSON(ctx, k.kv, KeysKey, &keys); err != nil {
		return nil, err
	}
	if keys == nil {
		keys = []APIKey{}
	}
	return keys, nil
}

// APIKeys lists the issued keys, oldest first.
func (k *Keyring) APIKeys(ctx context.Context) ([]APIKey, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.load(ctx)
}

// CreateAPIKey issues a key and returns its record together with the
// secret. The secret cannot be retrieved again.
func (k *Keyring) CreateAPIKey(ctx context.Context, name string) (APIKey, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return APIKey{}, "", apperr.Validation("session.create_key", "key name is required")
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	keys, err := k.load(ctx)
	if err != nil {
		return APIKey{}, "", err
	}

	id := uuid.New().String()
	secret, err := k.signer.Mint(k.namespace, id)
	if err != nil {
		return APIKey{}, "", err
	}
	rec := APIKey{
		ID:        id,
		Name:      name,
		Prefix:    apikeys.Prefix(secret),
		CreatedAt: k.now().UTC(),
	}
	if err := storage.SetJSON(ctx, k.kv, KeysKey, append(keys, rec)); err != nil {
		return APIKey{}, "", err
	}
	return rec, secret, nil
}

// RevokeAPIKey deletes the key with id. Revoked ids are never reissued.
func (k *Keyring) RevokeAPIKey(ctx context.Context, id string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	keys, err := k.load(ctx)
	if err != nil {
		return err
	}
	kept := keys[:0]
	for _, rec := range keys {
		if rec.ID != id {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(keys) {
		return apperr.NotFound("session.revoke_key", "api key not found")
	}
	return storage.SetJSON(ctx, k.kv, KeysKey, kept)
}

// Touch records a use of key id. It fails with a not-found error for
// unknown or revoked keys.
func (k *Keyring) Touch(ctx context.Context, id string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	keys, err := k.load(ctx)
	if err != nil {
		return err
	}
	for i := range keys {
		if keys[i].ID == id {
			now := k.now().UTC()
			keys[i].LastUsed = &now
			return storage.SetJSON(ctx, k.kv, KeysKey, keys)
		}
	}
	return apperr.NotFound("session.touch_key", "api key not found")
}
