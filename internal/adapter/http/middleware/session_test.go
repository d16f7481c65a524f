package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dozirovkaa/shop-api/configs"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func sessionConfig() configs.Config {
	var cfg configs.Config
	cfg.Security.JWTSecret = testSecret
	cfg.Security.Issuer = "shop-api"
	cfg.Security.Audience = "storefront"
	return cfg
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return raw
}

func sessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", NewSession(sessionConfig()).Require(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": UserID(c), "email": Email(c)})
	})
	return r
}

func doGet(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSession_ValidToken(t *testing.T) {
	raw := signToken(t, jwt.MapClaims{
		"iss":   "shop-api",
		"aud":   "storefront",
		"sub":   "user-42",
		"email": "ivan@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	w := doGet(sessionRouter(), "Bearer "+raw)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-42")
	assert.Contains(t, w.Body.String(), "ivan@example.com")
}

func TestSession_MissingHeader(t *testing.T) {
	w := doGet(sessionRouter(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Header().Get("WWW-Authenticate"), "invalid_request")
}

func TestSession_ExpiredToken(t *testing.T) {
	raw := signToken(t, jwt.MapClaims{
		"iss": "shop-api",
		"aud": "storefront",
		"sub": "user-42",
		"exp": time.Now().Add(-2 * time.Minute).Unix(),
	})

	w := doGet(sessionRouter(), "Bearer "+raw)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSession_WrongIssuer(t *testing.T) {
	raw := signToken(t, jwt.MapClaims{
		"iss": "someone-else",
		"aud": "storefront",
		"sub": "user-42",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	w := doGet(sessionRouter(), "Bearer "+raw)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSession_MissingSubject(t *testing.T) {
	raw := signToken(t, jwt.MapClaims{
		"iss": "shop-api",
		"aud": "storefront",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	w := doGet(sessionRouter(), "Bearer "+raw)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSession_WrongAlgorithm(t *testing.T) {
	// unsigned tokens never pass even with matching claims
	tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"iss": "shop-api",
		"aud": "storefront",
		"sub": "user-42",
	})
	raw, err := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	w := doGet(sessionRouter(), "Bearer "+raw)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
