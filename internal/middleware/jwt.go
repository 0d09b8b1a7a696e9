package middleware // middleware contains reusable HTTP middleware functions

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/maghami/ticketline/internal/utils"
)

// CredentialStore is the user lookup the gateway performs after a
// token verifies. A token whose subject no longer exists is rejected
// even though its signature is valid.
type CredentialStore interface {
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's identity into the request context. The check
// runs once per request, before any protected handler executes. Handlers
// read the identity via c.Get("username") and c.Get("user_id").
//
// Rejections carry the same two messages the clients are documented
// against: "Missing token" when no usable Authorization header is
// present, and "Invalid or expired token" for every verification
// failure.
func JWTAuth(secret string, users CredentialStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Missing token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired token"})
			}

			// The token is cryptographically fine; now make sure the
			// subject still exists in the credential store.
			ok, err := users.ExistsByUsername(c.Request().Context(), claims.Username)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "authentication check failed"})
			}
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Invalid or expired token"})
			}

			c.Set("username", claims.Username)
			c.Set("user_id", claims.UserID)
			return next(c)
		}
	}
}
