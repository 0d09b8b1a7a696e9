package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maghami/ticketline/internal/middleware"
	"github.com/maghami/ticketline/internal/utils"
)

const secret = "middleware-test-secret"

// stubCredentials answers every existence lookup with a fixed result.
type stubCredentials struct {
	present bool
	err     error
}

func (s stubCredentials) ExistsByUsername(context.Context, string) (bool, error) {
	return s.present, s.err
}

func callProtected(t *testing.T, users middleware.CredentialStore, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/events", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := middleware.JWTAuth(secret, users)(func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get("username").(string))
	})
	require.NoError(t, h(c))
	return rec
}

func TestJWTAuthMissingToken(t *testing.T) {
	rec := callProtected(t, stubCredentials{present: true}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Missing token"}`, rec.Body.String())
}

func TestJWTAuthRejectsNonBearerScheme(t *testing.T) {
	rec := callProtected(t, stubCredentials{present: true}, "Basic Zm9vOmJhcg==")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Missing token"}`, rec.Body.String())
}

func TestJWTAuthRejectsGarbageToken(t *testing.T) {
	rec := callProtected(t, stubCredentials{present: true}, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid or expired token"}`, rec.Body.String())
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	tok, err := utils.NewAccessToken(secret, 1, "gio", -time.Minute)
	require.NoError(t, err)

	rec := callProtected(t, stubCredentials{present: true}, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid or expired token"}`, rec.Body.String())
}

func TestJWTAuthRejectsTokenForDeletedUser(t *testing.T) {
	tok, err := utils.NewAccessToken(secret, 1, "gio", time.Minute)
	require.NoError(t, err)

	rec := callProtected(t, stubCredentials{present: false}, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid or expired token"}`, rec.Body.String())
}

func TestJWTAuthLookupFailure(t *testing.T) {
	tok, err := utils.NewAccessToken(secret, 1, "gio", time.Minute)
	require.NoError(t, err)

	rec := callProtected(t, stubCredentials{err: errors.New("db down")}, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestJWTAuthPassesIdentityToHandler(t *testing.T) {
	tok, err := utils.NewAccessToken(secret, 1, "gio", time.Minute)
	require.NoError(t, err)

	rec := callProtected(t, stubCredentials{present: true}, "Bearer "+tok.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gio", rec.Body.String())
}
