package routes

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/vaspay/vaspay/internal/auth"
	"github.com/vaspay/vaspay/internal/pin"
)

type loginRequest struct {
	SessionToken   string        `json:"session_token"`
	PermanentToken string        `json:"permanent_token"`
	Profile        *auth.Profile `json:"profile"`
}

type pinRequest struct {
	Mobile string `json:"mobile"`
	PIN    string `json:"pin"`
}

type profileRequest struct {
	Profile auth.Profile `json:"profile"`
}

// RegisterAuthRoutes wires the session lifecycle endpoints consumed by the
// UI shell and its navigation guard.
func RegisterAuthRoutes(router fiber.Router, manager *auth.Manager, pinClient *pin.Client, pinLimiter fiber.Handler, logger *slog.Logger) {
	// The navigation guard calls this on every route change. The first
	// call triggers the one-time hydration.
	router.Get("/session", func(c *fiber.Ctx) error {
		manager.Hydrate(c.UserContext())
		snap := manager.Snapshot()
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"outcome": manager.Outcome().String(),
			"loading": snap.Loading,
			"profile": snap.Profile,
		})
	})

	// The login screen performs the credential RPC itself and hands the
	// issued tokens here for persistence.
	router.Post("/auth/login", func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		if err := manager.Login(c.UserContext(), req.SessionToken, req.Profile, req.PermanentToken); err != nil {
			if errors.Is(err, auth.ErrIncompleteCredentials) {
				return fiber.NewError(http.StatusBadRequest, err.Error())
			}
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{"outcome": manager.Outcome().String()})
	})

	router.Post("/auth/pin", pinLimiter, func(c *fiber.Ctx) error {
		if pinClient == nil {
			return fiber.NewError(http.StatusServiceUnavailable, "auth backend is not configured")
		}
		var req pinRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		manager.Hydrate(c.UserContext())
		snap := manager.Snapshot()
		if snap.PermanentToken == "" {
			return fiber.NewError(http.StatusUnauthorized, "no permanent token, full login required")
		}
		res, err := pinClient.Validate(c.UserContext(), snap.PermanentToken, req.PIN)
		if err != nil {
			if errors.Is(err, pin.ErrRejected) {
				return fiber.NewError(http.StatusUnauthorized, err.Error())
			}
			logger.Error("pin validation call failed", "error", err)
			return fiber.NewError(http.StatusBadGateway, "pin validation unavailable")
		}
		if err := manager.Login(c.UserContext(), res.SessionToken, &res.Profile, snap.PermanentToken); err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{"outcome": manager.Outcome().String()})
	})

	router.Post("/auth/logout", func(c *fiber.Ctx) error {
		if err := manager.Logout(c.UserContext()); err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{"outcome": manager.Outcome().String()})
	})

	// Session expiry without a full logout: the permanent token survives
	// and the guard routes to PIN validation.
	router.Post("/auth/session/clear", func(c *fiber.Ctx) error {
		if err := manager.ClearSessionToken(c.UserContext()); err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		return c.Status(http.StatusOK).JSON(fiber.Map{"outcome": manager.Outcome().String()})
	})

	router.Put("/profile", func(c *fiber.Ctx) error {
		var req profileRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		if err := manager.UpdateUserData(c.UserContext(), req.Profile); err != nil {
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(http.StatusNoContent)
	})
}
