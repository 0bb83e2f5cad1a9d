package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName       = "VasPay"
	defaultAppEnv        = "development"
	defaultPort          = "8080"
	defaultLogLevel      = "info"
	defaultPlatform      = PlatformWeb
	defaultStoreBackend  = StoreBackendMemory
	defaultSessionTTL    = 10 * time.Minute
	defaultSDKPollEvery  = 50 * time.Millisecond
	defaultSDKPollFor    = 5 * time.Second
	defaultShutdownDelay = 10 * time.Second
	defaultPinRateLimit  = 5

	sessionTTLEnvVar       = "SESSION_TTL"
	sdkPollIntervalEnvVar  = "SDK_POLL_INTERVAL"
	sdkPollTimeoutEnvVar   = "SDK_POLL_TIMEOUT"
	shutdownSecondsEnvVar  = "SHUTDOWN_TIMEOUT_SECONDS"
	shutdownDurationEnvVar = "SHUTDOWN_TIMEOUT"
	sealKeyEnvVar          = "STORE_SEAL_KEY"
)

// Platform values recognised in VAS_PLATFORM.
const (
	PlatformWeb     = "web"
	PlatformAndroid = "android"
	PlatformIOS     = "ios"
)

// Store backend values recognised in STORE_BACKEND.
const (
	StoreBackendMemory   = "memory"
	StoreBackendRedis    = "redis"
	StoreBackendPostgres = "postgres"
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName  string
	AppEnv   string
	Port     string
	LogLevel string

	// Platform selects the host the UI shell runs on; it drives alert
	// routing and whether the secure storage tier is expected to exist.
	Platform string

	StoreBackend string
	DatabaseURL  string
	RedisURL     string

	// SealKey encrypts the permanent-token tier at rest. Empty means the
	// secure tier is unavailable and the plain tier is the fallback.
	SealKey []byte

	SessionTTL time.Duration

	// AuthBaseURL is the backend that issues tokens; PIN validation lives there.
	AuthBaseURL string

	// GatewayURL and MerchantKey configure the payment hash endpoint. These
	// are deployment secrets and have no built-in fallback.
	GatewayURL  string
	MerchantKey string

	SDKPollInterval time.Duration
	SDKPollTimeout  time.Duration

	ShutdownPeriod time.Duration
	PinRateLimit   int
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	cfg := Config{
		AppName:         getEnv("APP_NAME", defaultAppName),
		AppEnv:          getEnv("APP_ENV", defaultAppEnv),
		Port:            getEnv("PORT", defaultPort),
		LogLevel:        strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		Platform:        strings.ToLower(getEnv("VAS_PLATFORM", defaultPlatform)),
		StoreBackend:    strings.ToLower(getEnv("STORE_BACKEND", defaultStoreBackend)),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		SessionTTL:      defaultSessionTTL,
		AuthBaseURL:     os.Getenv("AUTH_BASE_URL"),
		GatewayURL:      os.Getenv("PAYMENT_GATEWAY_URL"),
		MerchantKey:     os.Getenv("PAYMENT_MERCHANT_KEY"),
		SDKPollInterval: defaultSDKPollEvery,
		SDKPollTimeout:  defaultSDKPollFor,
		ShutdownPeriod:  defaultShutdownDelay,
		PinRateLimit:    defaultPinRateLimit,
	}

	switch cfg.Platform {
	case PlatformWeb, PlatformAndroid, PlatformIOS:
	default:
		return Config{}, fmt.Errorf("invalid VAS_PLATFORM %q", cfg.Platform)
	}

	switch cfg.StoreBackend {
	case StoreBackendMemory:
	case StoreBackendRedis:
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("REDIS_URL must be set when STORE_BACKEND=redis")
		}
	case StoreBackendPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL must be set when STORE_BACKEND=postgres")
		}
	default:
		return Config{}, fmt.Errorf("invalid STORE_BACKEND %q", cfg.StoreBackend)
	}

	if v := os.Getenv(sealKeyEnvVar); v != "" {
		key, err := hex.DecodeString(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", sealKeyEnvVar, err)
		}
		cfg.SealKey = key
	}

	if v := os.Getenv(sessionTTLEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", sessionTTLEnvVar, err)
		}
		cfg.SessionTTL = d
	}

	if v := os.Getenv(sdkPollIntervalEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", sdkPollIntervalEnvVar, err)
		}
		cfg.SDKPollInterval = d
	}

	if v := os.Getenv(sdkPollTimeoutEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", sdkPollTimeoutEnvVar, err)
		}
		cfg.SDKPollTimeout = d
	}

	if v := os.Getenv(shutdownSecondsEnvVar); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownSecondsEnvVar, err)
		}
		cfg.ShutdownPeriod = time.Duration(seconds) * time.Second
	} else if v := os.Getenv(shutdownDurationEnvVar); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", shutdownDurationEnvVar, err)
		}
		cfg.ShutdownPeriod = d
	}

	if v := os.Getenv("PIN_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid PIN_RATE_LIMIT: %w", err)
		}
		cfg.PinRateLimit = n
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
