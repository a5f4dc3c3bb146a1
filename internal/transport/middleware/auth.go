package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/heartmarshall/mycoforage-backend/internal/auth"
	"github.com/heartmarshall/mycoforage-backend/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (auth.Identity, error)
}

// Auth authenticates requests carrying a Bearer token. Requests without a
// token pass through anonymously; services decide what anonymous callers may do.
// A present but invalid token is rejected with 401.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r) // Anonymous
				return
			}
			identity, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
				return
			}

			if h := userHolderFromCtx(r.Context()); h != nil {
				h.userID = identity.UserID.String()
			}

			ctx := ctxutil.WithUserID(r.Context(), identity.UserID)
			ctx = ctxutil.WithIdentity(ctx, ctxutil.Identity{Email: identity.Email, Name: identity.Name})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// userHolder lets the outer Logger see the user authenticated further down the chain.
type userHolder struct {
	userID string
}

type userHolderKey struct{}

func withUserHolder(ctx context.Context, h *userHolder) context.Context {
	return context.WithValue(ctx, userHolderKey{}, h)
}

func userHolderFromCtx(ctx context.Context) *userHolder {
	h, _ := ctx.Value(userHolderKey{}).(*userHolder)
	return h
}
