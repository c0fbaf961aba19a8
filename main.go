package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"ms-reservations/internal/booking"
	"ms-reservations/internal/booking/booking_api"
	booking_db "ms-reservations/internal/booking/db"
	"ms-reservations/internal/catalog"
	"ms-reservations/internal/catalog/catalog_api"
	catalog_db "ms-reservations/internal/catalog/db"
	"ms-reservations/internal/checkin"
	"ms-reservations/internal/checkin/checkin_api"
	checkin_db "ms-reservations/internal/checkin/db"
	checkin_redis "ms-reservations/internal/checkin/redis"
	"ms-reservations/internal/config"
	"ms-reservations/internal/kafka"
	"ms-reservations/internal/logger"
)

func connectPostgres(cfg config.DatabaseConfig, log *logger.Logger) *bun.DB {
	var sqldb *sql.DB
	var err error
	maxRetries := 5

	for i := 0; i < maxRetries; i++ {
		log.Info("DATABASE", fmt.Sprintf("Connecting to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
		sqldb, err = sql.Open("postgres", cfg.DSN)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(context.Background(), cfg.AcquireTimeout)
			err = sqldb.PingContext(pingCtx)
			cancel()
		}
		if err == nil {
			break
		}
		log.Error("DATABASE", fmt.Sprintf("PostgreSQL connection failed: %v", err))
		if i < maxRetries-1 {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		log.Fatal("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err))
	}

	// Bounded pool: requests acquire a connection per transaction and
	// release it on every exit path.
	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.MaxLifetime)

	log.Info("DATABASE", "PostgreSQL connection successful")
	return bun.NewDB(sqldb, pgdialect.New())
}

func connectRedis(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) *redis.Client {
	if !cfg.Enabled {
		log.Warn("REDIS", "Redis disabled, check-in runs without the advisory lock")
		return nil
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.Addr})
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatal("REDIS", fmt.Sprintf("Redis connection error: %v", err))
	}
	log.Info("REDIS", fmt.Sprintf("Redis connection successful to %s", cfg.Addr))
	return client
}

func main() {
	log := logger.NewLogger()
	defer log.Close()

	log.Info("APP", "Starting reservation service")

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	}
	cfg := config.Load()

	ctx := context.Background()
	bunDB := connectPostgres(cfg.Database, log)
	defer bunDB.Close()

	redisClient := connectRedis(ctx, cfg.Redis, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	var producer *kafka.Producer
	if cfg.Kafka.Enabled {
		producer = kafka.NewProducer(cfg.Kafka.Brokers, kafka.Topics{
			ReservationCreated: cfg.Kafka.Topics.ReservationCreated,
			CheckInCompleted:   cfg.Kafka.Topics.CheckInCompleted,
		})
		defer producer.Close()

		topics := []string{cfg.Kafka.Topics.ReservationCreated, cfg.Kafka.Topics.CheckInCompleted}
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, topics); err != nil {
			log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		} else {
			log.Info("KAFKA", "Required topics ensured")
		}
	} else {
		log.Warn("KAFKA", "Kafka disabled, events will not be published")
	}

	catalogService := catalog.NewService(&catalog_db.DB{Bun: bunDB})

	var bookingKafka booking.KafkaPublisher
	var checkinKafka checkin.KafkaPublisher
	if producer != nil {
		bookingKafka = producer
		checkinKafka = producer
	}

	bookingService := booking.NewService(
		&booking_db.DB{Bun: bunDB},
		bookingKafka,
		log,
		cfg.Booking.CapacityCheckAtPurchase,
	)

	var locker checkin.TicketLocker
	if redisClient != nil {
		locker = checkin_redis.NewLock(redisClient)
	}
	checkinService := checkin.NewService(&checkin_db.DB{Bun: bunDB}, locker, checkinKafka, log)

	catalogHandler := &catalog_api.Handler{CatalogService: catalogService, Logger: log}
	bookingHandler := &booking_api.Handler{BookingService: bookingService, Logger: log}
	checkinHandler := &checkin_api.Handler{CheckInService: checkinService, Logger: log}

	r := chi.NewRouter()

	r.Get("/", catalogHandler.ListAirports)
	r.Route("/flights", func(r chi.Router) {
		r.Get("/{departure}", catalogHandler.FlightsFromAirport)
		r.Get("/{departure}/{arrival}", catalogHandler.NextAvailableFlights)
	})
	r.Post("/purchase/{flightID}", bookingHandler.Purchase)
	r.Get("/reservations/{code}", bookingHandler.GetReservation)
	r.Route("/checkin", func(r chi.Router) {
		r.Post("/{ticketID}", checkinHandler.CheckIn)
		r.Get("/{ticketID}/boardingpass", checkinHandler.BoardingPass)
	})
	log.Info("ROUTER", "Routes registered")

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("Reservation service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server shutdown failed: %v", err))
	} else {
		log.Info("HTTP", "Reservation service shutdown complete")
	}
}
