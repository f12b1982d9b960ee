package middleware

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// ContextCookie carries the signed browser-context token.
	ContextCookie = "portal_ctx"
	// ContextIDKey is the echo.Context key holding the browser-context id.
	ContextIDKey = "context_id"

	contextClaim    = "ctx"
	contextIssuer   = "agency-portal"
	defaultTokenTTL = 365 * 24 * time.Hour
)

type BrowserContextConfig struct {
	Secret string
	Secure bool
	TTL    time.Duration
}

// BrowserContext identifies the calling browser by a signed cookie and
// injects its id into context. A missing, expired or tampered cookie is
// replaced by a fresh context, which starts logged out.
func BrowserContext(cfg BrowserContextConfig) echo.MiddlewareFunc {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if ck, err := c.Cookie(ContextCookie); err == nil {
				id = ParseContextToken(cfg.Secret, ck.Value)
			}

			if id == "" {
				id = uuid.NewString()
				signed, err := SignContextToken(cfg.Secret, id, ttl)
				if err != nil {
					return err
				}
				c.SetCookie(&http.Cookie{
					Name:     ContextCookie,
					Value:    signed,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(ContextIDKey, id)
			return next(c)
		}
	}
}

// SignContextToken issues an HS256 token naming a browser context.
func SignContextToken(secret, contextID string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		contextClaim: contextID,
		"iss":        contextIssuer,
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
	})
	return token.SignedString([]byte(secret))
}

// ParseContextToken returns the context id of a valid token, or "" when the
// token is malformed, expired, signed with another key or names no UUID.
func ParseContextToken(secret, raw string) string {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(contextIssuer))
	if err != nil || !tkn.Valid {
		return ""
	}

	id, _ := claims[contextClaim].(string)
	if _, err := uuid.Parse(id); err != nil {
		return ""
	}
	return id
}

// ContextID returns the browser-context id injected by BrowserContext.
func ContextID(c echo.Context) string {
	id, _ := c.Get(ContextIDKey).(string)
	return id
}
