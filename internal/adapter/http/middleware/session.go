package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/dozirovkaa/shop-api/configs"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ctxUserID = "session_user_id"
	ctxEmail  = "session_email"
)

// Session authenticates requests against the tokens our identity provider
// issues (HS256, sub = user id, email claim). The core never trusts a
// client-supplied user id: ownership checks always run against the token.
type Session struct {
	cfg configs.Config
}

func NewSession(cfg configs.Config) *Session {
	return &Session{cfg: cfg}
}

func (s *Session) Require() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			unauth(c, "invalid_request", "missing bearer token")
			return
		}

		raw := strings.TrimPrefix(auth, "Bearer ")
		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(s.cfg.Security.JWTSecret), nil
		}, jwt.WithLeeway(30*time.Second)) // small clock skew

		if err != nil || !token.Valid {
			unauth(c, "invalid_token", "invalid jwt")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			unauth(c, "invalid_token", "claims parsing error")
			return
		}
		if claims["iss"] != s.cfg.Security.Issuer || claims["aud"] != s.cfg.Security.Audience {
			unauth(c, "invalid_token", "iss/aud mismatch")
			return
		}

		sub, _ := claims["sub"].(string)
		if sub == "" {
			unauth(c, "invalid_token", "missing subject")
			return
		}
		email, _ := claims["email"].(string)

		c.Set(ctxUserID, sub)
		c.Set(ctxEmail, email)
		c.Next()
	}
}

// UserID returns the authenticated user's id, or "" outside Require().
func UserID(c *gin.Context) string { return c.GetString(ctxUserID) }

// Email returns the authenticated user's email, or "" outside Require().
func Email(c *gin.Context) string { return c.GetString(ctxEmail) }

func unauth(c *gin.Context, code, desc string) {
	c.Header("WWW-Authenticate", `Bearer error="`+code+`", error_description="`+desc+`"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": code, "error_description": desc})
}
