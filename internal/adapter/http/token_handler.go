package http

import (
	"net/http"
	"time"

	"github.com/dozirovkaa/shop-api/configs"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenHandler mints session tokens with the same shape the identity
// provider issues. Enabled only when security.dev_tokens is set; production
// traffic authenticates with provider-issued tokens.
type TokenHandler struct {
	cfg configs.Config
}

func NewTokenHandler(cfg configs.Config) *TokenHandler {
	return &TokenHandler{cfg: cfg}
}

type issueTokenReq struct {
	UserID string `json:"userId"`
	Email  string `json:"email" binding:"required,email"`
}

// POST /v1/token
func (h *TokenHandler) IssueToken(c *gin.Context) {
	var req issueTokenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	if req.UserID == "" {
		req.UserID = uuid.NewString()
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   h.cfg.Security.Issuer,
		"aud":   h.cfg.Security.Audience,
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"exp":   now.Add(h.cfg.Security.TTL).Unix(),
		"sub":   req.UserID,
		"email": req.Email,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.Security.JWTSecret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": signed,
		"token_type":   "Bearer",
		"expires_in":   int(h.cfg.Security.TTL.Seconds()),
	})
}
