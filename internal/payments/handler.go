package payments

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/kopiyka/kopiyka/internal/ledger"
)

// Handler exposes the transfer endpoint.
type Handler struct {
	service *Service
}

// NewHandler constructs a payments handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type transferRequest struct {
	FromAccountID int64           `json:"from_account_id"`
	ToAccountID   int64           `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
}

// Transfer moves funds from the caller's account to another account.
func (h *Handler) Transfer(c *fiber.Ctx) error {
	var req transferRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	callerID, _ := c.Locals("account_id").(int64)

	res, err := h.service.Transfer(c.UserContext(), TransferInput{
		CallerID: callerID,
		FromID:   req.FromAccountID,
		ToID:     req.ToAccountID,
		Amount:   req.Amount,
		Currency: req.Currency,
	})
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrUnauthorized):
			return fiber.NewError(http.StatusForbidden, err.Error())
		case errors.Is(err, ledger.ErrRecipientNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		case errors.Is(err, ledger.ErrAccountNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		case errors.Is(err, ledger.ErrInvalidAmount),
			errors.Is(err, ledger.ErrUnsupportedCurrency),
			errors.Is(err, ledger.ErrInsufficientFunds):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"from": fiber.Map{"account_id": res.FromID, "balances": res.FromBalances},
		"to":   fiber.Map{"account_id": res.ToID, "balances": res.ToBalances},
	})
}
