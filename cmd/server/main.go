package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotelier/internal/cache"
	"hotelier/internal/config"
	"hotelier/internal/database"
	"hotelier/internal/events"
	"hotelier/internal/metrics"
	"hotelier/internal/notifier"
	"hotelier/internal/service"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load()

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	logger := zerolog.New(output).With().Timestamp().Logger()

	cfg, err := config.Load(os.Getenv("HOTELIER_CONFIG_PATH"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := database.New(cfg.Database.Path, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("open db error")
	}
	defer db.Close()

	var (
		rdb       *redis.Client
		roomCache *cache.RoomCache
	)
	if cfg.Redis.Address != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		roomCache = cache.New(rdb, cfg.CacheTTL(), &logger)
	}

	bus := events.NewBus()
	bus.Subscribe(events.TypeReservationCreated, func(e events.Event) {
		if p, ok := e.Payload.(events.ReservationEvent); ok {
			logger.Debug().Int64("reservation_id", p.ReservationID).Int64("room_id", p.RoomID).Msg("reservation created")
		}
	})
	bus.Subscribe(events.TypeInvoiceGenerated, func(e events.Event) {
		if p, ok := e.Payload.(events.InvoiceEvent); ok {
			logger.Debug().Int64("invoice_id", p.InvoiceID).Float64("total", p.TotalAmount).Msg("invoice generated")
		}
	})

	// The composed core. The serving layer (HTTP, CLI) plugs in on top of
	// these; only the notifier scheduler drives them from inside this
	// process.
	core := struct {
		Reservations *service.ReservationService
		Rooms        *service.RoomService
		Invoices     *service.InvoiceService
		Occupancy    *service.OccupancyService
		Clients      *service.ClientService
	}{
		Reservations: service.NewReservationService(db, db, bus, &logger),
		Rooms:        service.NewRoomService(db, db, roomCache, &logger),
		Invoices:     service.NewInvoiceService(db, db, db, bus, &logger),
		Occupancy:    service.NewOccupancyService(db, db, &logger),
		Clients:      service.NewClientService(db, &logger),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := notifier.NewScheduler(&notifier.Config{
		CheckInterval:     cfg.NotifierCheckInterval(),
		MessagesPerSecond: cfg.Notifier.MessagesPerSecond,
	}, core.Reservations, &logger)
	scheduler.Start()
	defer scheduler.Stop()

	backup := database.NewBackupService(db, cfg.Backup, &logger)
	go backup.Start(ctx)

	if cfg.Monitoring.HealthCheckPort == 0 {
		cfg.Monitoring.HealthCheckPort = 8090
	}
	go startHealthServer(ctx, cfg.Monitoring.HealthCheckPort, db, rdb, &logger)

	if cfg.Monitoring.PrometheusEnabled {
		if cfg.Monitoring.PrometheusPort == 0 {
			cfg.Monitoring.PrometheusPort = 9090
		}
		metrics.Register()
		go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, &logger)
	}

	logger.Info().Msg("hotelier started")
	<-ctx.Done()
}

func startHealthServer(ctx context.Context, port int, db *database.DB, rdb *redis.Client, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, _ *http.Request) {
		ctxPing, cancel := context.WithTimeout(ctx, time.Second)
		defer cancel()
		if err := db.PingContext(ctxPing); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		if rdb != nil {
			if err := rdb.Ping(ctxPing).Err(); err != nil {
				http.Error(w, "redis not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("health server error")
	}
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
