package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const LoginIDKey = "login_id"

func (h *Handler) signToken(loginID string) (string, error) {
	now := h.Cfg.Now()
	claims := jwt.RegisteredClaims{
		Subject:   loginID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(h.Cfg.TokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.Cfg.JWTSecret))
}

func (h *Handler) parseToken(header string) (string, error) {
	raw := strings.TrimSpace(header)
	if !strings.HasPrefix(raw, "Bearer ") {
		return "", errors.New("missing bearer token")
	}
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return []byte(h.Cfg.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return h.Cfg.Now() }),
	)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// Authenticate stores the caller's login id when a valid token is present
// and lets the request through either way.
func (h *Handler) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := h.parseToken(c.GetHeader("Authorization")); err == nil {
			h.mu.RLock()
			_, known := h.users[id]
			h.mu.RUnlock()
			if known {
				c.Set(LoginIDKey, id)
			}
		}
		c.Next()
	}
}

// AuthRequired rejects the request with HTTP 401 unless Authenticate found a user.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := loginIDFromContext(c); !ok {
			fail(c, http.StatusUnauthorized, 401, "unauthorized")
			c.Abort()
			return
		}
		c.Next()
	}
}

func loginIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(LoginIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
