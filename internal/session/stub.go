package session

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"github.com/ziadkadry99/nexus-docs/internal/storage"
)

// StubOptions configure the simulated backend.
type StubOptions struct {
	// Latency delays every operation except Logout and CurrentUser.
	Latency time.Duration
	// UpdateLatency delays UpdateProfile.
	UpdateLatency time.Duration
	Now           func() time.Time
}

// DefaultStubOptions mirror the delays of the hosted demo.
var DefaultStubOptions = StubOptions{Latency: 1500 * time.Millisecond, UpdateLatency: time.Second}

// Stub is a demo identity backend. Any non-empty email and password pair
// signs in; it is not an authentication mechanism.
type Stub struct {
	*Keyring

	kv   storage.KV
	opts StubOptions
}

var _ Service = (*Stub)(nil)

// NewStub returns a stub backend persisting to kv.
func NewStub(kv storage.KV, keys *Keyring, opts StubOptions) *Stub {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Stub{Keyring: keys, kv: kv, opts: opts}
}

func (s *Stub) CurrentUser(ctx context.Context) (*Profile, error) {
	var p Profile
	ok, err := storage.GetJSON(ctx, s.kv, ProfileKey, &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

func (s *Stub) Login(ctx context.Context, email, password string) (Profile, error) {
	if err := wait(ctx, s.opts.Latency); err != nil {
		return Profile{}, err
	}
	if email == "" || password == "" {
		return Profile{}, ErrInvalidCredentials
	}
	return s.save(ctx, s.newProfile("Demo User", email, AvatarURL("Demo User", defaultBackground)))
}

func (s *Stub) Signup(ctx context.Context, name, email, password string) (Profile, error) {
	if err := wait(ctx, s.opts.Latency); err != nil {
		return Profile{}, err
	}
	if name == "" || email == "" || password == "" {
		return Profile{}, ErrMissingFields
	}
	return s.save(ctx, s.newProfile(name, email, AvatarURL(name, defaultBackground)))
}

func (s *Stub) LoginWithSocial(ctx context.Context, provider Provider) (Profile, error) {
	provider, err := ParseProvider(string(provider))
	if err != nil {
		return Profile{}, err
	}
	if err := wait(ctx, s.opts.Latency); err != nil {
		return Profile{}, err
	}
	p := s.newProfile(
		provider.DisplayName(),
		"user@"+string(provider)+".com",
		AvatarURL(string(provider)+" User", provider.avatarBackground()),
	)
	return s.save(ctx, p)
}

func (s *Stub) UpdateProfile(ctx context.Context, u ProfileUpdate) (Profile, error) {
	if err := wait(ctx, s.opts.UpdateLatency); err != nil {
		return Profile{}, err
	}
	cur, err := s.CurrentUser(ctx)
	if err != nil {
		return Profile{}, err
	}
	if cur == nil {
		return Profile{}, ErrNoSession
	}
	return s.save(ctx, cur.Apply(u))
}

func (s *Stub) Logout(ctx context.Context) error {
	return s.kv.Delete(ctx, ProfileKey)
}

func (s *Stub) newProfile(name, email, avatar string) Profile {
	return Profile{
		ID:        "user_" + randomID(9),
		Name:      name,
		Email:     email,
		Avatar:    avatar,
		Role:      RoleUser,
		CreatedAt: timestamp(s.opts.Now()),
	}
}

func (s *Stub) save(ctx context.Context, p Profile) (Profile, error) {
	if err := storage.SetJSON(ctx, s.kv, ProfileKey, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomID(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(idAlphabet)))
	for i := range b {
		v, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		b[i] = idAlphabet[v.Int64()]
	}
	return string(b)
}
