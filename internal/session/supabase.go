package session

import (
	"context"
	"fmt"

	"github.com/supabase-community/gotrue-go"
	"github.com/supabase-community/gotrue-go/types"
	"github.com/supabase-community/supabase-go"
	"go.uber.org/zap"

	"github.com/ziadkadry99/nexus-docs/internal/apperr"
	"github.com/ziadkadry99/nexus-docs/internal/storage"
)

// Supabase authenticates against a Supabase project. The profile and the
// access token are cached in the client's namespace.
type Supabase struct {
	*Keyring

	auth   gotrue.Client
	kv     storage.KV
	logger *zap.Logger
}

var _ Service = (*Supabase)(nil)

// NewSupabase connects to the project at url with its anon key.
func NewSupabase(url, key string, kv storage.KV, keys *Keyring, logger *zap.Logger) (*Supabase, error) {
	client, err := supabase.NewClient(url, key, nil)
	if err != nil {
		return nil, fmt.Errorf("creating supabase client: %w", err)
	}
	return newSupabase(client.Auth, kv, keys, logger), nil
}

func newSupabase(auth gotrue.Client, kv storage.KV, keys *Keyring, logger *zap.Logger) *Supabase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Supabase{Keyring: keys, auth: auth, kv: kv, logger: logger}
}

func (s *Supabase) CurrentUser(ctx context.Context) (*Profile, error) {
	var p Profile
	ok, err := storage.GetJSON(ctx, s.kv, ProfileKey, &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

func (s *Supabase) Login(ctx context.Context, email, password string) (Profile, error) {
	if email == "" || password == "" {
		return Profile{}, ErrInvalidCredentials
	}
	resp, err := s.auth.SignInWithEmailPassword(email, password)
	if err != nil {
		s.logger.Debug("supabase sign-in failed", zap.Error(err))
		return Profile{}, &apperr.Error{Kind: apperr.KindValidation, Op: "session.login", Msg: ErrInvalidCredentials.Msg, Err: err}
	}
	return s.store(ctx, resp.Session)
}

func (s *Supabase) Signup(ctx context.Context, name, email, password string) (Profile, error) {
	if name == "" || email == "" || password == "" {
		return Profile{}, ErrMissingFields
	}
	resp, err := s.auth.Signup(types.SignupRequest{
		Email:    email,
		Password: password,
		Data:     map[string]interface{}{"name": name},
	})
	if err != nil {
		return Profile{}, apperr.External("session.signup", err)
	}
	if resp.Session.AccessToken == "" {
		// Email confirmation pending: no session yet, but the profile is real.
		return profileFromUser(resp.User), nil
	}
	return s.store(ctx, resp.Session)
}

// LoginWithSocial always returns a *RedirectError carrying the provider's
// authorization URL.
func (s *Supabase) LoginWithSocial(_ context.Context, provider Provider) (Profile, error) {
	provider, err := ParseProvider(string(provider))
	if err != nil {
		return Profile{}, err
	}
	p := types.ProviderGoogle
	if provider == ProviderGitHub {
		p = types.ProviderGitHub
	}
	resp, err := s.auth.Authorize(types.AuthorizeRequest{Provider: p, FlowType: types.FlowImplicit})
	if err != nil {
		return Profile{}, apperr.External("session.social", err)
	}
	return Profile{}, &RedirectError{URL: resp.AuthorizationURL}
}

func (s *Supabase) UpdateProfile(ctx context.Context, u ProfileUpdate) (Profile, error) {
	token, ok, err := s.kv.Get(ctx, TokenKey)
	if err != nil {
		return Profile{}, err
	}
	if !ok {
		return Profile{}, ErrNoSession
	}

	req := types.UpdateUserRequest{Data: map[string]interface{}{}}
	if u.Name != nil {
		req.Data["name"] = *u.Name
	}
	if u.Avatar != nil {
		req.Data["avatar_url"] = *u.Avatar
	}
	if u.Email != nil {
		req.Email = *u.Email
	}
	resp, err := s.auth.WithToken(string(token)).UpdateUser(req)
	if err != nil {
		return Profile{}, apperr.External("session.update", err)
	}

	p := profileFromUser(resp.User)
	// Supabase defers email changes until confirmed; keep what the user typed.
	if cur, _ := s.CurrentUser(ctx); cur != nil {
		p = cur.Apply(u)
	}
	if err := storage.SetJSON(ctx, s.kv, ProfileKey, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *Supabase) Logout(ctx context.Context) error {
	if token, ok, _ := s.kv.Get(ctx, TokenKey); ok {
		if err := s.auth.WithToken(string(token)).Logout(); err != nil {
			s.logger.Warn("supabase logout failed", zap.Error(err))
		}
	}
	if err := s.kv.Delete(ctx, TokenKey); err != nil {
		return err
	}
	return s.kv.Delete(ctx, ProfileKey)
}

func (s *Supabase) store(ctx context.Context, sess types.Session) (Profile, error) {
	p := profileFromUser(sess.User)
	if err := s.kv.Set(ctx, TokenKey, []byte(sess.AccessToken)); err != nil {
		return Profile{}, err
	}
	if err := storage.SetJSON(ctx, s.kv, ProfileKey, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func profileFromUser(u types.User) Profile {
	name, _ := u.UserMetadata["name"].(string)
	if name == "" {
		name, _ = u.UserMetadata["full_name"].(string)
	}
	if name == "" {
		name = u.Email
	}
	avatar, _ := u.UserMetadata["avatar_url"].(string)
	if avatar == "" {
		avatar = AvatarURL(name, defaultBackground)
	}
	role := RoleUser
	if r, _ := u.AppMetadata["role"].(string); r == string(RoleAdmin) {
		role = RoleAdmin
	}
	return Profile{
		ID:        u.ID.String(),
		Name:      name,
		Email:     u.Email,
		Avatar:    avatar,
		Role:      role,
		CreatedAt: timestamp(u.CreatedAt),
	}
}
