package http

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/elarafragrance/elara-backend/internal/auth/jwt"
	"github.com/elarafragrance/elara-backend/internal/entity"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return &Server{
		c: &Config{
			JWTSecret:  "test-secret",
			SessionTTL: time.Hour,
		},
		jwtAuth: jwtauth.New("HS256", []byte("test-secret"), nil),
	}
}

func sessionEcho(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ses, ok := sessionFromCtx(r.Context())
		require.True(t, ok)
		w.Header().Set("X-Account-Id", strconv.Itoa(ses.AccountId))
		w.Header().Set("X-Role", string(ses.Role))
		w.WriteHeader(http.StatusOK)
	})
}

func TestSessionCtx(t *testing.T) {
	s := newTestServer(t)
	handler := s.sessionCtx(sessionEcho(t))

	t.Run("CookieToken", func(t *testing.T) {
		token, err := jwt.NewToken(s.jwtAuth, 7, entity.RoleCustomer, time.Hour)
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "7", w.Header().Get("X-Account-Id"))
		assert.Equal(t, "customer", w.Header().Get("X-Role"))
	})

	t.Run("BearerToken", func(t *testing.T) {
		token, err := jwt.NewToken(s.jwtAuth, 3, entity.RoleAgent, time.Hour)
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "agent", w.Header().Get("X-Role"))
	})

	t.Run("NoToken", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("GarbageToken", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "not-a-jwt"})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		token, err := jwt.NewToken(s.jwtAuth, 7, entity.RoleCustomer, -time.Minute)
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	s := newTestServer(t)
	handler := s.sessionCtx(s.requireRole(roleAdmin)(sessionEcho(t)))

	t.Run("AdminAllowed", func(t *testing.T) {
		token, err := jwt.NewToken(s.jwtAuth, 1, entity.RoleAdmin, time.Hour)
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("CustomerForbidden", func(t *testing.T) {
		token, err := jwt.NewToken(s.jwtAuth, 2, entity.RoleCustomer, time.Hour)
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
