package main

import (
	"log"
	"os"
	"strings"

	"log/slog"

	"github.com/joho/godotenv"

	"wolfly.in/app/internal/backend"
	"wolfly.in/app/internal/config"
	apphttp "wolfly.in/app/internal/http"
	"wolfly.in/app/internal/modules/orders"
	"wolfly.in/app/internal/modules/session"
	"wolfly.in/app/internal/pincode"
)

func main() {
	// Load .env file (ignore error if not found - prod uses real env vars)
	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))

	api := backend.New(cfg.BackendBaseURL, cfg.RequestTimeout, logger)
	pincodes := pincode.New(cfg.PincodeBaseURL, cfg.RequestTimeout)
	sessions := session.NewStore(cfg.SessionTTL)
	vms := orders.NewStore(api, logger)

	r := apphttp.NewRouter(apphttp.Deps{
		Cfg:      cfg,
		Log:      logger,
		API:      api,
		Pincodes: pincodes,
		Sessions: sessions,
		Orders:   vms,
	})

	logger.Info("listening", slog.String("address", cfg.Address))
	if err := r.Run(cfg.Address); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func logLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
