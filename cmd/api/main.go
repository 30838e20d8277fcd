package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"meetingroom/internal/cache"
	"meetingroom/internal/config"
	"meetingroom/internal/database"
	"meetingroom/internal/modules/booking"
	"meetingroom/internal/modules/participant"
	"meetingroom/internal/modules/room"
	"meetingroom/internal/notify"
	"meetingroom/internal/pkg/logger"
	"meetingroom/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	appLog := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "meetingroom-api",
	})
	slog.SetDefault(appLog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		appLog.Error("database connect failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			appLog.Warn("database close failed", "error", err)
		}
	}()
	if err := repository.AutoMigrate(db); err != nil {
		appLog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	participantRepo := repository.NewParticipantRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	// Redis is optional: without it bookings are serialized per process and
	// day listings are always read from the database.
	var (
		locks    booking.RoomLocker = booking.NewLocalRoomLocker()
		dayCache booking.DayCache
		rdb      *redis.Client
	)
	if cfg.RedisEnabled() {
		rdb, err = cache.NewRedisClient(ctx, cache.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			appLog.Error("redis connect failed", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		defer rdb.Close()

		locks = cache.NewRoomLease(locks, rdb, cfg.RoomLockTTL, appLog)
		dayCache = cache.NewDayCache(rdb, cfg.DayCacheTTL)
		appLog.Info("redis enabled", "addr", cfg.RedisAddr)
	}

	hub := notify.NewHub(appLog)
	sinks := []notify.Sink{hub}
	if cfg.RabbitMQEnabled() {
		publisher, err := notify.NewAMQPPublisher(cfg.RabbitMQURL, cfg.EventsQueue)
		if err != nil {
			appLog.Error("rabbitmq connect failed", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()

		sinks = append(sinks, publisher)
		appLog.Info("rabbitmq enabled", "queue", cfg.EventsQueue)
	}

	bookingService := booking.NewService(
		bookingRepo,
		participantRepo,
		roomRepo,
		locks,
		dayCache,
		notify.NewFanout(sinks...),
		appLog,
	)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := newRouter(routerDeps{
		log:          appLog,
		corsOrigins:  cfg.CORSOrigins,
		participants: participant.NewService(participantRepo),
		rooms:        room.NewService(roomRepo),
		bookings:     bookingService,
		hub:          hub,
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	go func() {
		appLog.Info("http server listening", "addr", cfg.HTTPAddr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	appLog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("http shutdown failed", "error", err)
	}
}
