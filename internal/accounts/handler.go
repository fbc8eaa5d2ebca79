package accounts

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/kopiyka/kopiyka/internal/ledger"
)

// Handler exposes registration and login endpoints.
type Handler struct {
	service *Service
}

// NewHandler constructs an accounts HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type registerRequest struct {
	Username       string          `json:"username"`
	Password       string          `json:"password"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

type registerResponse struct {
	AccountID int64           `json:"account_id"`
	Balances  ledger.Balances `json:"balances"`
	Token     string          `json:"token"`
}

// Register opens a new account and returns its id, balances and token.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	res, err := h.service.Register(c.UserContext(), RegisterInput{
		Username:       req.Username,
		Password:       req.Password,
		InitialBalance: req.InitialBalance,
	})
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrUsernameInvalid),
			errors.Is(err, ledger.ErrUsernameExists),
			errors.Is(err, ledger.ErrInvalidAmount),
			errors.Is(err, ErrPasswordRequired):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusCreated).JSON(registerResponse{
		AccountID: res.AccountID,
		Balances:  res.Balances,
		Token:     res.Token,
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies credentials and returns a fresh token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	res, err := h.service.Login(c.UserContext(), LoginInput{Username: req.Username, Password: req.Password})
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return fiber.NewError(http.StatusUnauthorized, err.Error())
		}
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"account_id": res.AccountID,
		"token":      res.Token,
	})
}
