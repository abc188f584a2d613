package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"exportapi/internal/auth"
)

// ClaimsLocalKey holds the verified *auth.Claims for the current request.
const ClaimsLocalKey = "claims"

type TokenIssuer interface {
	Issue() (auth.Token, error)
}

type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// IssueToken godoc
// @Summary      Issue an access token
// @Description  Returns a short-lived bearer token for the export endpoints.
// @Tags         auth
// @Produce      json
// @Success      200  {object}  auth.Token
// @Failure      500  {object}  errorPayload
// @Router       /api/auth/token [get]
func IssueToken(issuer TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok, err := issuer.Issue()
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, CodeInternal, "could not issue token", nil)
		}
		return c.JSON(tok)
	}
}

// RequireAuth rejects requests without a valid "Authorization: Bearer" token.
func RequireAuth(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return writeError(c, fiber.StatusUnauthorized, CodeUnauthorized, "missing authorization header", nil)
		}

		scheme, token, ok := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, auth.TokenType) || token == "" {
			return writeError(c, fiber.StatusUnauthorized, CodeUnauthorized, "authorization header must be: Bearer <token>", nil)
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				return writeError(c, fiber.StatusUnauthorized, CodeTokenExpired, "token has expired", nil)
			}
			return writeError(c, fiber.StatusUnauthorized, CodeUnauthorized, "invalid token", nil)
		}

		c.Locals(ClaimsLocalKey, claims)
		return c.Next()
	}
}
