package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Env      string
	HTTPPort string
	DataFile string

	// WithdrawCode is the canonical verification code; it is hashed at
	// startup and never compared in plaintext.
	WithdrawCode      string
	RestrictionWindow time.Duration
	PaymentWindow     time.Duration

	MineDuration  time.Duration
	MineRewardMin int64
	MineRewardMax int64

	CodePrice int64

	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	RateRPS int
}

func Load() Config {
	return Config{
		Env:      get("APP_ENV", "dev"),
		HTTPPort: get("HTTP_PORT", "8080"),
		DataFile: get("WALLET_DATA_FILE", "wallet.db"),

		WithdrawCode:      get("WALLET_WITHDRAW_CODE", "GT1024W"),
		RestrictionWindow: getDur("WALLET_RESTRICTION_WINDOW", 10*time.Minute),
		PaymentWindow:     getDur("WALLET_PAYMENT_WINDOW", 10*time.Minute),

		MineDuration:  getDur("WALLET_MINE_DURATION", 10*time.Second),
		MineRewardMin: getInt64("WALLET_MINE_REWARD_MIN", 150000),
		MineRewardMax: getInt64("WALLET_MINE_REWARD_MAX", 200000),

		CodePrice: getInt64("WALLET_CODE_PRICE", 8000),

		AccessSecret:  get("JWT_ACCESS_SECRET", "changeme-access"),
		RefreshSecret: get("JWT_REFRESH_SECRET", "changeme-refresh"),
		AccessTTL:     getDur("JWT_ACCESS_TTL", 15*time.Minute),
		RefreshTTL:    getDur("JWT_REFRESH_TTL", 7*24*time.Hour),

		RateRPS: int(getInt64("RATE_RPS", 100)),
	}
}

func get(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}
