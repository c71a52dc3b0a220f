package http

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/elarafragrance/elara-backend/internal/auth/jwt"
	"github.com/elarafragrance/elara-backend/internal/entity"
	"github.com/go-chi/render"
)

const sessionCookieName = "elara_session"

const (
	roleAdmin = entity.RoleAdmin
	roleAgent = entity.RoleAgent
)

type ctxKey int

const sessionCtxKey ctxKey = iota

type session struct {
	AccountId int
	Role      entity.RoleName
}

// sessionToken pulls the token from the session cookie, falling back to an
// Authorization bearer header for API clients.
func sessionToken(r *http.Request) (string, error) {
	if c, err := r.Cookie(sessionCookieName); err == nil && c.Value != "" {
		return c.Value, nil
	}
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer "), nil
	}
	return "", fmt.Errorf("no session token")
}

// sessionCtx verifies the session token and puts the account id and role on
// the request context.
func (s *Server) sessionCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := sessionToken(r)
		if err != nil {
			render.Render(w, r, ErrUnauthorized(err))
			return
		}
		accountId, role, err := jwt.VerifyToken(s.jwtAuth, token)
		if err != nil {
			render.Render(w, r, ErrUnauthorized(fmt.Errorf("invalid session")))
			return
		}
		ctx := context.WithValue(r.Context(), sessionCtxKey, session{
			AccountId: accountId,
			Role:      role,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) requireRole(role entity.RoleName) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ses, ok := sessionFromCtx(r.Context())
			if !ok || ses.Role != role {
				render.Render(w, r, ErrForbidden(fmt.Errorf("insufficient role")))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func sessionFromCtx(ctx context.Context) (session, bool) {
	ses, ok := ctx.Value(sessionCtxKey).(session)
	return ses, ok
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.c.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
