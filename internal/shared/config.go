package shared

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv       string
	HTTPAddr     string
	MetricsAddr  string
	StoreBackend string // "mysql" or "redis"
	MySQLDSN     string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	StripeBase   string
	StripeKey    string
	Currency     string
}

// Load reads a local .env (if present) and then the environment.
// Variables already set in the environment win over the file.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("could not read .env")
	}

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:       env("APP_ENV", "prod"),
		HTTPAddr:     env("HTTP_ADDR", ":8080"),
		MetricsAddr:  env("METRICS_ADDR", ""),
		StoreBackend: env("STORE_BACKEND", "mysql"),
		MySQLDSN:     env("MYSQL_DSN", "root:root@tcp(localhost:3306)/casarural?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:    env("REDIS_ADDR", "localhost:6379"),
		RedisPass:    env("REDIS_PASSWORD", ""),
		RedisDB:      atoi("REDIS_DB", 0),
		StripeBase:   env("STRIPE_BASE_URL", "https://api.stripe.com"),
		StripeKey:    env("STRIPE_API_KEY", ""),
		Currency:     env("PAYMENT_CURRENCY", "eur"),
	}
	if c.StripeKey == "" {
		log.Warn().Msg("STRIPE_API_KEY is empty; /create-payment will fail")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
