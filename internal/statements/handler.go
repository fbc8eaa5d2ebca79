package statements

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/kopiyka/kopiyka/internal/ledger"
)

// Handler exposes the read-only balance and transaction-history endpoints for
// the authenticated caller.
type Handler struct {
	store *ledger.Store
}

// NewHandler constructs a statements handler.
func NewHandler(store *ledger.Store) *Handler {
	return &Handler{store: store}
}

// Balance returns the caller's balance snapshot.
func (h *Handler) Balance(c *fiber.Ctx) error {
	callerID, _ := c.Locals("account_id").(int64)
	balances, err := h.store.Balances(callerID)
	if err != nil {
		if errors.Is(err, ledger.ErrAccountNotFound) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(balances)
}

// Transactions returns every log entry where the caller is actor or
// recipient, in append order.
func (h *Handler) Transactions(c *fiber.Ctx) error {
	callerID, _ := c.Locals("account_id").(int64)
	records, err := h.store.Transactions(callerID)
	if err != nil {
		if errors.Is(err, ledger.ErrAccountNotFound) {
			return fiber.NewError(http.StatusNotFound, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	return c.Status(http.StatusOK).JSON(records)
}
