// Package session manages the signed-in profile and its API keys.
//
// Two backends satisfy Service: Stub, which accepts any non-empty
// credentials and keeps everything in the client's storage namespace, and
// Supabase, which authenticates against a Supabase project. Both persist
// the active profile under the same key so hydration does not care which
// backend wrote it.
package session

import (
	"net/url"
	"strings"
	"time"

	"github.com/ziadkadry99/nexus-docs/internal/apperr"
)

// Storage keys.
const (
	ProfileKey = "nexus_user"
	KeysKey    = "nexus_api_keys"
	TokenKey   = "nexus_access_token"
)

// Role is a profile's role.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Profile is the signed-in user. Field names match the persisted layout.
type Profile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Avatar    string `json:"avatar,omitempty"`
	Role      Role   `json:"role,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// ProfileUpdate is a partial profile. Nil fields are left untouched.
type ProfileUpdate struct {
	Name   *string `json:"name,omitempty"`
	Email  *string `json:"email,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

// Apply returns p with every non-nil field of u copied over it.
func (p Profile) Apply(u ProfileUpdate) Profile {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Email != nil {
		p.Email = *u.Email
	}
	if u.Avatar != nil {
		p.Avatar = *u.Avatar
	}
	return p
}

// Provider is a social login provider.
type Provider string

const (
	ProviderGitHub Provider = "github"
	ProviderGoogle Provider = "google"
)

// ParseProvider validates a provider name.
func ParseProvider(s string) (Provider, error) {
	switch p := Provider(strings.ToLower(s)); p {
	case ProviderGitHub, ProviderGoogle:
		return p, nil
	}
	return "", apperr.Validation("session.social", "unsupported provider")
}

// DisplayName is the name given to profiles created through p.
func (p Provider) DisplayName() string {
	if p == ProviderGitHub {
		return "GitHub User"
	}
	return "Google User"
}

func (p Provider) avatarBackground() string {
	if p == ProviderGitHub {
		return "333"
	}
	return "DB4437"
}

// Errors returned by every backend.
var (
	ErrInvalidCredentials = apperr.Validation("session.login", "Invalid credentials")
	ErrMissingFields      = apperr.Validation("session.signup", "Please fill in all fields")
	ErrNoSession          = apperr.Session("session.update", "No session found")
)

const avatarBase = "https://ui-avatars.com/api/"

// AvatarURL returns a generated avatar for name on a hex background.
func AvatarURL(name, background string) string {
	return avatarBase + "?name=" + url.QueryEscape(name) + "&background=" + background + "&color=fff"
}

const defaultBackground = "4361EE"

func timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
