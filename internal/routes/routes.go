package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/vaspay/vaspay/internal/alert"
	"github.com/vaspay/vaspay/internal/auth"
	"github.com/vaspay/vaspay/internal/config"
	"github.com/vaspay/vaspay/internal/middleware"
	"github.com/vaspay/vaspay/internal/payment"
	"github.com/vaspay/vaspay/internal/pin"
	"github.com/vaspay/vaspay/internal/pwa"
	"github.com/vaspay/vaspay/internal/store"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and the local UI-bridge API the shell talks to.
func Setup(app *fiber.App, d Deps) error {
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	RegisterHealthRoutes(app, d)

	// Storage tiers. The permanent token gets the sealed tier when the
	// platform has an encrypted surface and a key is configured; the web
	// platform falls back to the plain tier, which NewTokenStore logs as
	// an explicit trust downgrade.
	var plain store.Store
	switch d.Cfg.StoreBackend {
	case config.StoreBackendRedis:
		plain = store.NewRedis(d.Cache)
	case config.StoreBackendPostgres:
		plain = store.NewPostgres(d.DB)
	default:
		plain = store.NewMemory()
	}
	var secure store.Store
	if d.Cfg.Platform != config.PlatformWeb && len(d.Cfg.SealKey) > 0 {
		sealed, err := store.NewSealed(plain, d.Cfg.SealKey)
		if err != nil {
			return err
		}
		secure = sealed
	}
	tokens := store.NewTokenStore(plain, secure, d.Logger)

	manager := auth.NewManager(tokens, d.Cfg.SessionTTL, d.Logger)

	alerts := alert.NewRouter(d.Cfg.Platform, alert.NewLogPresenter(d.Logger), nil, d.Logger)

	var pinClient *pin.Client
	if d.Cfg.AuthBaseURL != "" {
		c, err := pin.NewClient(d.Cfg.AuthBaseURL)
		if err != nil {
			return err
		}
		pinClient = c
	}

	bridge := payment.NewBridge(d.Logger)
	var launcher *payment.Launcher
	if d.Cfg.GatewayURL != "" {
		gateway, err := payment.NewGatewayClient(d.Cfg.GatewayURL)
		if err != nil {
			return err
		}
		launcher = payment.NewLauncher(bridge, gateway, alerts, d.Cfg.SDKPollInterval, d.Cfg.SDKPollTimeout, d.Logger)
	}

	tracker := pwa.NewTracker(tokens, d.Logger)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	pinLimiter := middleware.PinRateLimit(d.Cache, d.Cfg.PinRateLimit)
	RegisterAuthRoutes(api, manager, pinClient, pinLimiter, d.Logger)
	RegisterPaymentRoutes(api, launcher, bridge)
	RegisterPWARoutes(api, tracker)

	return nil
}
