package config

import (
	"time"

	"github.com/joho/godotenv"
)

// WalletPreset is a named default account address offered by the control surface.
type WalletPreset struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Config holds the runtime configuration for the hyperliquid-adapter.
type Config struct {
	ServiceName string
	Env         string
	Venue       string
	LogLevel    string
	Port        int

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	HTTPBodyLimit    int

	// Venue connectivity. Every outbound call carries its own request
	// timeout; the universe+price fetch uses the shorter MetaTimeout.
	VenueBaseURL string
	InfoTimeout  time.Duration
	MetaTimeout  time.Duration

	RatePerSecond int
	RateBurst     int

	// Order submission policy: OrderMaxAttempts total attempts with a fixed
	// OrderRetryDelay between them. Cancellation is single-attempt.
	OrderMaxAttempts int
	OrderRetryDelay  time.Duration

	NATSURL string

	AWSRegion   string
	CacheTTL    time.Duration
	CleanupFreq time.Duration

	// QuoteCurrency is the stable unit portfolios are valued in. It is added
	// to every asset directory as a pseudo-asset priced at 1.0.
	QuoteCurrency string

	// SymbolOverridesPath optionally points to a JSON file of symbol to market-id
	// pairs that win over the automatic universe derivation.
	SymbolOverridesPath string

	WalletPresets []WalletPreset
}

// Load loads configuration from environment variables and optional .env file.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServiceName:         GetEnv("SERVICE_NAME", "hyperliquid-adapter"),
		Env:                 GetEnv("ENV", "dev"),
		Venue:               "hyperliquid",
		LogLevel:            GetEnv("LOG_LEVEL", "info"),
		Port:                GetEnvInt("HL_PORT", 9040),
		HTTPReadTimeout:     GetEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
		HTTPWriteTimeout:    GetEnvDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
		HTTPIdleTimeout:     GetEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		HTTPBodyLimit:       GetEnvInt("HTTP_BODY_LIMIT", 1*1024*1024),
		VenueBaseURL:        GetEnv("HL_BASE_URL", "https://api.hyperliquid.xyz"),
		InfoTimeout:         GetEnvDuration("HL_INFO_TIMEOUT", 10*time.Second),
		MetaTimeout:         GetEnvDuration("HL_META_TIMEOUT", 5*time.Second),
		RatePerSecond:       GetEnvInt("HL_RATE_PER_SECOND", 10),
		RateBurst:           GetEnvInt("HL_RATE_BURST", 20),
		OrderMaxAttempts:    GetEnvInt("ORDER_MAX_ATTEMPTS", 5),
		OrderRetryDelay:     GetEnvDuration("ORDER_RETRY_DELAY", 10*time.Second),
		NATSURL:             GetEnv("NATS_URL", "nats://localhost:4222"),
		AWSRegion:           GetEnv("AWS_REGION", "us-east-2"),
		CacheTTL:            GetEnvDuration("CACHE_TTL", 24*time.Hour),
		CleanupFreq:         GetEnvDuration("CACHE_CLEANUP_FREQ", 10*time.Minute),
		QuoteCurrency:       GetEnv("QUOTE_CURRENCY", "USDC"),
		SymbolOverridesPath: GetEnv("SYMBOL_OVERRIDES_PATH", ""),
		WalletPresets: []WalletPreset{
			{Name: "ledger", Address: GetEnv("LEDGER_ADDRESS", "0x87d1910BE2AaE6D9C22F15AC9009Ec8Ca8706BAd")},
			{Name: "trade", Address: GetEnv("TRADE_WALLET", "0x2a21Cc5D8Bcaa0D10078C99606B03Ee46C58817d")},
			{Name: "dex", Address: GetEnv("DEX_WALLET", "0x62E485fD0e5c7D32f8cCF11aa356A1179C76e400")},
		},
	}
}
