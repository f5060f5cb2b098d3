package apikeys

import (
	"context"
	"errors"
	"net/http"
)

// Verifier confirms that a key still exists in its namespace and records
// its use. It returns an error for revoked keys.
type Verifier interface {
	Verify(ctx context.Context, namespace, keyID string) error
}

// VerifierFunc adapts a function to Verifier.
type VerifierFunc func(ctx context.Context, namespace, keyID string) error

func (f VerifierFunc) Verify(ctx context.Context, namespace, keyID string) error {
	return f(ctx, namespace, keyID)
}

type contextKey struct{}

// FromContext returns the claims stored by Middleware.
func FromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(contextKey{}).(*Claims)
	return c, ok
}

// Middleware requires a valid, unrevoked bearer key on every request.
func Middleware(s *Signer, v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := s.Parse(r.Header.Get("Authorization"))
			if err != nil {
				msg := "invalid api key"
				if errors.Is(err, ErrMissingKey) {
					msg = "missing api key"
				}
				http.Error(w, `{"error":"`+msg+`"}`, http.StatusUnauthorized)
				return
			}
			if err := v.Verify(r.Context(), claims.Namespace(), claims.KeyID()); err != nil {
				http.Error(w, `{"error":"api key revoked"}`, http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), contextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
