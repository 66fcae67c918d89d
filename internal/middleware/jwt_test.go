package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, sub string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": sub, "exp": exp.Unix()}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func runJWT(t *testing.T, authHeader string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var holder string
	next := func(c echo.Context) error {
		holder, _ = c.Get("holder_id").(string)
		return c.NoContent(http.StatusOK)
	}
	require.NoError(t, JWTAuth(testSecret)(next)(c))
	return rec, holder
}

func TestJWTAuth(t *testing.T) {
	t.Run("valid token injects the holder id", func(t *testing.T) {
		token := signToken(t, testSecret, "42", time.Now().Add(time.Hour))
		rec, holder := runJWT(t, "Bearer "+token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "42", holder)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		rec, _ := runJWT(t, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong scheme is rejected", func(t *testing.T) {
		rec, _ := runJWT(t, "Basic abc123")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another secret is rejected", func(t *testing.T) {
		token := signToken(t, "other-secret", "42", time.Now().Add(time.Hour))
		rec, _ := runJWT(t, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token := signToken(t, testSecret, "42", time.Now().Add(-time.Minute))
		rec, _ := runJWT(t, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token without a subject is rejected", func(t *testing.T) {
		claims := jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		signed, err := tok.SignedString([]byte(testSecret))
		require.NoError(t, err)

		rec, _ := runJWT(t, "Bearer "+signed)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
