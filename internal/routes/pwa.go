package routes

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/vaspay/vaspay/internal/pwa"
)

// RegisterPWARoutes wires the install-signal endpoints the web shell fires.
func RegisterPWARoutes(router fiber.Router, tracker *pwa.Tracker) {
	router.Post("/pwa/prompt", func(c *fiber.Ctx) error {
		tracker.CapturePrompt()
		return c.SendStatus(http.StatusNoContent)
	})

	router.Post("/pwa/installed", func(c *fiber.Ctx) error {
		tracker.MarkInstalled(c.UserContext())
		return c.SendStatus(http.StatusNoContent)
	})

	router.Get("/pwa/state", func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"prompt_available": tracker.PromptAvailable(),
			"installed":        tracker.Installed(c.UserContext()),
		})
	})
}
