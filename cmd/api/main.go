package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "casarural/internal/adapters/http_server"
	"casarural/internal/adapters/observability"
	"casarural/internal/adapters/stripe"
	"casarural/internal/app"
	"casarural/internal/domain"
	"casarural/internal/shared"
	mysqlstore "casarural/internal/storage/mysql"
	redisstore "casarural/internal/storage/redis"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	store := openStore(cfg)

	var gateway domain.PaymentGateway
	if gw, err := stripe.New(cfg.StripeBase, cfg.StripeKey, 5); err != nil {
		log.Warn().Err(err).Msg("stripe client not configured; /create-payment will fail")
	} else {
		gateway = gw
	}

	svc := app.NewBookingService(store, gateway, cfg.Currency)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{S: svc})

	log.Info().Str("addr", cfg.HTTPAddr).Str("backend", cfg.StoreBackend).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

// openStore picks the persistence backend. Both implement the same port
// with the same observable behavior; the choice is configuration only.
func openStore(cfg shared.Config) domain.BookingStore {
	switch cfg.StoreBackend {
	case "redis":
		log.Info().Str("addr", cfg.RedisAddr).Msg("using redis booking store")
		return redisstore.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	case "mysql":
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatal().Err(err).Msg("sql.Open failed")
		}
		if err := db.Ping(); err != nil {
			log.Fatal().Err(err).Msg("db.Ping failed")
		}
		log.Info().Msg("database connection ok")
		return mysqlstore.New(db)
	default:
		log.Fatal().Str("backend", cfg.StoreBackend).Msg("unknown STORE_BACKEND")
		return nil
	}
}
