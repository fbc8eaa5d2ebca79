package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/kopiyka/kopiyka/internal/auth"
	"github.com/kopiyka/kopiyka/internal/ledger"
)

// CallerIDKey is the fiber.Ctx locals key holding the authenticated account id.
const CallerIDKey = "account_id"

// TokenAuth validates bearer tokens and resolves the caller's account id,
// rejecting tokens for accounts that no longer exist.
func TokenAuth(tokens *auth.Tokens, store *ledger.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authz := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return fiber.NewError(http.StatusUnauthorized, auth.ErrTokenMissing.Error())
		}
		raw := strings.TrimSpace(authz[len("Bearer "):])

		accountID, err := tokens.Verify(raw)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				return fiber.NewError(http.StatusUnauthorized, err.Error())
			default:
				return fiber.NewError(http.StatusUnauthorized, auth.ErrTokenInvalid.Error())
			}
		}
		if !store.Exists(accountID) {
			return fiber.NewError(http.StatusUnauthorized, ledger.ErrAccountNotFound.Error())
		}

		c.Locals(CallerIDKey, accountID)
		return c.Next()
	}
}
