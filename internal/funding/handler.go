package funding

import (
	"context"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/kopiyka/kopiyka/internal/ledger"
)

// Handler exposes deposit and withdrawal endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs a funding HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type fundingRequest struct {
	AccountID int64           `json:"account_id"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
}

// Deposit credits the caller's account.
func (h *Handler) Deposit(c *fiber.Ctx) error {
	return h.apply(c, h.service.Deposit)
}

// Withdraw debits the caller's account.
func (h *Handler) Withdraw(c *fiber.Ctx) error {
	return h.apply(c, h.service.Withdraw)
}

func (h *Handler) apply(c *fiber.Ctx, op func(ctx context.Context, input Input) (ledger.Balances, error)) error {
	var req fundingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	callerID, _ := c.Locals("account_id").(int64)

	balances, err := op(c.UserContext(), Input{
		CallerID:  callerID,
		AccountID: req.AccountID,
		Amount:    req.Amount,
		Currency:  req.Currency,
	})
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrUnauthorized):
			return fiber.NewError(http.StatusForbidden, err.Error())
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

	return c.Status(http.StatusOK).JSON(balances)
}
