package session

import (
	"context"
	"time"
)

// Service is what the portal needs from an identity backend.
type Service interface {
	// CurrentUser returns the active profile or nil.
	CurrentUser(ctx context.Context) (*Profile, error)
	Login(ctx context.Context, email, password string) (Profile, error)
	Signup(ctx context.Context, name, email, password string) (Profile, error)
	LoginWithSocial(ctx context.Context, provider Provider) (Profile, error)
	UpdateProfile(ctx context.Context, u ProfileUpdate) (Profile, error)
	// Logout clears the active profile. Calling it while signed out is
	// not an error.
	Logout(ctx context.Context) error

	APIKeys(ctx context.Context) ([]APIKey, error)
	CreateAPIKey(ctx context.Context, name string) (APIKey, string, error)
	RevokeAPIKey(ctx context.Context, id string) error
}

// RedirectError is returned by LoginWithSocial when the backend needs the
// browser to complete an OAuth flow elsewhere.
type RedirectError struct {
	URL string
}

func (e *RedirectError) Error() string { return "redirect to " + e.URL }

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
