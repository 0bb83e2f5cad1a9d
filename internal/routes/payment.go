package routes

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/vaspay/vaspay/internal/payment"
)

type launchRequest struct {
	Amount      string `json:"amount"`
	ProductInfo string `json:"productinfo"`
	FirstName   string `json:"firstname"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

type resultRequest struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// RegisterPaymentRoutes wires the checkout bridge: the shell reports SDK
// readiness, asks for a launch, collects the signed payload, and posts the
// SDK's terminal result back.
func RegisterPaymentRoutes(router fiber.Router, launcher *payment.Launcher, bridge *payment.Bridge) {
	router.Post("/payment/sdk/ready", func(c *fiber.Ctx) error {
		bridge.SetReady()
		return c.SendStatus(http.StatusNoContent)
	})

	router.Post("/payment/launch", func(c *fiber.Ctx) error {
		if launcher == nil {
			return fiber.NewError(http.StatusServiceUnavailable, "payment gateway is not configured")
		}
		var req launchRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		err := launcher.Start(c.UserContext(), payment.Order{
			Amount:      req.Amount,
			ProductInfo: req.ProductInfo,
			FirstName:   req.FirstName,
			Email:       req.Email,
			Phone:       req.Phone,
		})
		if err != nil {
			if errors.Is(err, payment.ErrSDKUnavailable) {
				return fiber.NewError(http.StatusServiceUnavailable, err.Error())
			}
			return fiber.NewError(http.StatusBadGateway, err.Error())
		}
		payload, ok := bridge.Pending()
		if !ok {
			return fiber.NewError(http.StatusInternalServerError, "launch produced no payload")
		}
		return c.Status(http.StatusOK).JSON(payload)
	})

	router.Post("/payment/result", func(c *fiber.Ctx) error {
		var req resultRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		var err error
		if req.Error != "" {
			err = bridge.Fail(errors.New(req.Error))
		} else {
			err = bridge.Resolve(payment.Response{Status: req.Status, Message: req.Message})
		}
		if err != nil {
			return fiber.NewError(http.StatusConflict, err.Error())
		}
		return c.SendStatus(http.StatusNoContent)
	})
}
