package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"
	_ "time/tzdata"

	"github.com/SergeyKozhin/calendar-import/internal/api"
	calendars_service "github.com/SergeyKozhin/calendar-import/internal/business/calendars"
	events_service "github.com/SergeyKozhin/calendar-import/internal/business/events"
	imports_service "github.com/SergeyKozhin/calendar-import/internal/business/imports"
	"github.com/SergeyKozhin/calendar-import/internal/config"
	"github.com/SergeyKozhin/calendar-import/internal/database"
	"github.com/SergeyKozhin/calendar-import/internal/database/calendars"
	"github.com/SergeyKozhin/calendar-import/internal/database/events"
	"github.com/SergeyKozhin/calendar-import/internal/model"
	"github.com/SergeyKozhin/calendar-import/internal/normalize"
	"github.com/SergeyKozhin/calendar-import/internal/pkg/gcal"
	"github.com/SergeyKozhin/calendar-import/internal/pkg/jwt"
	"github.com/SergeyKozhin/calendar-import/internal/redis"
	"github.com/SergeyKozhin/calendar-import/internal/transport"
	"github.com/xlab/closer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const accessTokenTTL = 24 * time.Hour

func main() {
	ctx := context.Background()

	logger, err := initLogger()
	if err != nil {
		log.Fatalf("unable to initializae logger: %v", err)
	}

	location, err := time.LoadLocation(config.DefaultTimezone())
	if err != nil {
		logger.Fatalw("unknown default timezone", "timezone", config.DefaultTimezone(), "err", err)
	}

	policy, ok := model.ParseDedupPolicy(config.DedupPolicy())
	if !ok {
		logger.Fatalw("unknown dedup policy", "policy", config.DedupPolicy())
	}

	if config.MigrateOnStart() {
		if err := database.Migrate(config.PostgresURL()); err != nil {
			logger.Fatalw("unable to migrate db", "err", err)
		}
	}

	db, err := database.NewPGX(ctx, config.PostgresURL())
	if err != nil {
		logger.Fatalw("unable to initializae db", "err", err)
	}
	calendarsRepository := calendars.NewRepository()
	eventsRepository := events.NewRepository()

	redisPool := redis.NewRedisPool(config.RedisURL(), logger)
	sessions := redis.NewSessionRegistry(redisPool, config.ImportSessionTTL())

	googleCalendar, err := gcal.NewClient(ctx, config.GoogleAPIKey(), config.GoogleCredentialsPath())
	switch {
	case errors.Is(err, gcal.ErrNotConfigured):
		logger.Warnw("google calendar relay disabled, no credentials configured")
	case err != nil:
		logger.Fatalw("unable to initializae google calendar client", "err", err)
	}

	normalizer := normalize.New(normalize.Options{
		Location:       location,
		Window:         config.ImportWindow(),
		MaxRecurrences: config.MaxRecurrences(),
		Strict:         config.StrictDates(),
	})

	fetcher := transport.NewFetcher(logger, transport.Options{
		GoogleRelayURL:   config.GoogleRelayURL(),
		CorsRelayURL:     config.CorsRelayURL(),
		MinContentLength: config.MinICSLength(),
		Timeout:          config.FetchTimeout(),
	})

	importsService := imports_service.NewService(imports_service.Deps{
		DB:                  db,
		Logger:              logger,
		Fetcher:             fetcher,
		Normalizer:          normalizer,
		Sessions:            sessions,
		CalendarsRepository: calendarsRepository,
		EventsRepository:    eventsRepository,
		Policy:              policy,
	})
	calendarsService := calendars_service.NewService(db, calendarsRepository, eventsRepository)
	eventsService := events_service.NewService(db, eventsRepository)

	relay := api.RelayOptions{
		Normalizer: normalizer,
		Window:     config.ImportWindow(),
		MaxResults: config.GoogleMaxResults(),
	}
	if googleCalendar != nil {
		relay.Calendar = googleCalendar
	}

	api, err := api.NewApi(
		logger,
		jwt.NewManager(config.Secret(), accessTokenTTL),
		db,
		importsService,
		calendarsService,
		eventsService,
		relay,
	)
	if err != nil {
		logger.Fatalw("unable to initializae api", "err", err)
	}

	errLogger, err := zap.NewStdLogAt(logger.Desugar(), zap.ErrorLevel)
	if err != nil {
		logger.Fatalw("error initiating server logger", "err", err)
	}

	server := &http.Server{
		Addr:     ":" + config.Port(),
		Handler:  api,
		ErrorLog: errLogger,
	}

	closer.Bind(func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorw("server shutdown", "err", err)
		}
	})

	go func() {
		logger.Infow("Started server", "port", config.Port(), "dedup_policy", policy)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalw("server error", "err", err)
		}
	}()

	closer.Hold()
}

func initLogger() (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error

	if config.Production() {
		logger, err = zap.NewProduction()
	} else {
		conf := zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err = conf.Build()
	}

	if err != nil {
		return nil, err
	}

	closer.Bind(func() {
		_ = logger.Sync()
	})

	return logger.Sugar(), nil
}
