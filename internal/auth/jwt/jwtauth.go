package jwt

import (
	"fmt"
	"strconv"
	"time"

	"github.com/elarafragrance/elara-backend/internal/entity"
	"github.com/go-chi/jwtauth/v5"
)

// NewToken creates a session JWT for an account. The subject carries the
// account id, the role claim gates admin and agent routes.
func NewToken(jwtAuth *jwtauth.JWTAuth, accountId int, role entity.RoleName, ttl time.Duration) (string, error) {
	claims := map[string]interface{}{
		"sub":  strconv.Itoa(accountId),
		"role": string(role),
		"exp":  time.Now().Add(ttl).Unix(),
	}
	_, ts, err := jwtAuth.Encode(claims)
	if err != nil {
		return "", err
	}
	return ts, nil
}

// VerifyToken validates a token and returns the account id and role claims.
func VerifyToken(jwtAuth *jwtauth.JWTAuth, token string) (int, entity.RoleName, error) {
	t, err := jwtauth.VerifyToken(jwtAuth, token)
	if err != nil {
		return 0, "", err
	}
	accountId, err := strconv.Atoi(t.Subject())
	if err != nil {
		return 0, "", fmt.Errorf("bad subject claim: %w", err)
	}
	roleClaim, _ := t.Get("role")
	role, _ := roleClaim.(string)
	return accountId, entity.RoleName(role), nil
}
