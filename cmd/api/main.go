package main

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/device-telemetry-dashboard/internal/config"
	httpHandlers "github.com/ANIKETSHETTY47/device-telemetry-dashboard/internal/http"
	"github.com/ANIKETSHETTY47/device-telemetry-dashboard/internal/metrics"
	"github.com/ANIKETSHETTY47/device-telemetry-dashboard/internal/seed"
	"github.com/ANIKETSHETTY47/device-telemetry-dashboard/internal/service"
	"github.com/ANIKETSHETTY47/device-telemetry-dashboard/internal/status"
	"github.com/ANIKETSHETTY47/device-telemetry-dashboard/internal/store"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	_ = godotenv.Load()
	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	devices := store.NewDeviceStore()
	readings := store.NewReadingStore()

	defs := seed.Default()
	if path := config.SeedFile(); path != "" {
		loaded, err := seed.LoadFile(path)
		if err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("seed file load failed")
		}
		defs = loaded
	}
	seed.Apply(devices, readings, defs, config.SeedReadings(), time.Now())
	log.Info().Int("devices", len(defs)).Int("readings", readings.Count()).Msg("stores seeded")

	engine := status.NewEngine(config.WarningAfter(), config.OfflineAfter())
	svcs := service.New(devices, readings, engine)

	metrics.Register(readings)

	app := fiber.New()
	app.Use(cors.New(cors.Config{AllowOrigins: config.CORSOrigin()}))
	app.Use(httpHandlers.RequestLogger())
	app.Use(metrics.RequestCounter())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpHandlers.Register(app, svcs)

	addr := config.APIAddr()
	log.Info().Str("addr", addr).Msg("api listening")
	log.Fatal().Err(app.Listen(addr)).Msg("server exit")
}
